// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memregion

import (
	"math/rand"
	"testing"
)

func TestRegionGrows(t *testing.T) {
	r := New()
	if g, e := r.Low(), int64(0); g != e {
		t.Fatal(g, e)
	}
	if g, e := r.High(), int64(0); g != e {
		t.Fatal(g, e)
	}

	at, err := r.Extend(16)
	if err != nil {
		t.Fatal(err)
	}
	if g, e := at, int64(0); g != e {
		t.Fatal(g, e)
	}
	if g, e := r.High(), int64(16); g != e {
		t.Fatal(g, e)
	}

	at2, err := r.Extend(32)
	if err != nil {
		t.Fatal(err)
	}
	if g, e := at2, int64(16); g != e {
		t.Fatal(g, e)
	}
	if g, e := r.High(), int64(48); g != e {
		t.Fatal(g, e)
	}
	if g, e := len(r.Bytes()), 48; g != e {
		t.Fatal(g, e)
	}
}

// Extend must never corrupt bytes already handed out, even across a
// backing-array reallocation triggered by growth past capacity.
func TestRegionPreservesContentAcrossGrowth(t *testing.T) {
	r := New()
	rng := rand.New(rand.NewSource(1))

	var want []byte
	for i := 0; i < 4096; i++ {
		n := int64(1 + rng.Intn(63))
		at, err := r.Extend(n)
		if err != nil {
			t.Fatal(err)
		}

		chunk := make([]byte, n)
		rng.Read(chunk)
		copy(r.Bytes()[at:], chunk)
		want = append(want, chunk...)
	}

	if g, e := len(r.Bytes()), len(want); g != e {
		t.Fatal(g, e)
	}
	got := r.Bytes()
	for i, b := range want {
		if got[i] != b {
			t.Fatalf("byte %d: got %#x want %#x", i, got[i], b)
		}
	}
}

func TestRegionLimited(t *testing.T) {
	r := NewLimited(64)
	if _, err := r.Extend(64); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Extend(1); err == nil {
		t.Fatal("expected an error extending past the limit")
	}
}

func TestRegionNegativeExtend(t *testing.T) {
	r := New()
	if _, err := r.Extend(-1); err == nil {
		t.Fatal("expected an error for a negative extend")
	}
}
