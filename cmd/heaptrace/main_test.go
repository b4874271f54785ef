// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"testing"
)

func writeTrace(t *testing.T, s string) string {
	f, err := os.CreateTemp("", "heaptrace-*.rep")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := f.WriteString(s); err != nil {
		t.Fatal(err)
	}
	return f.Name()
}

func TestParseAndReplay(t *testing.T) {
	path := writeTrace(t, `
# allocate two blocks, free the first, grow the second
a x0 32
a x1 64
f x0
c x2 4 16
r x1 256
f x1
f x2
`)
	defer os.Remove(path)

	ops, err := parseTrace(path)
	if err != nil {
		t.Fatal(err)
	}
	if g, e := len(ops), 7; g != e {
		t.Fatal(g, e)
	}

	if _, err := replay(ops); err != nil {
		t.Fatal(err)
	}
}

func TestParseRejectsUnknownOpcode(t *testing.T) {
	path := writeTrace(t, "z x0 1\n")
	defer os.Remove(path)

	if _, err := parseTrace(path); err == nil {
		t.Fatal("expected an error for an unknown opcode")
	}
}
