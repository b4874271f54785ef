// Copyright 2011 Evan Shaw. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE-MMAP-GO file.

// Modifications (c) 2013 The Go Authors.

package mmapregion

import "testing"

func TestRegionReserveAndExtend(t *testing.T) {
	r, err := New(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if g, e := r.Low(), int64(0); g != e {
		t.Fatal(g, e)
	}
	if g, e := r.High(), int64(0); g != e {
		t.Fatal(g, e)
	}

	at, err := r.Extend(64)
	if err != nil {
		t.Fatal(err)
	}
	if g, e := at, int64(0); g != e {
		t.Fatal(g, e)
	}

	b := r.Bytes()
	if g, e := len(b), 64; g != e {
		t.Fatal(g, e)
	}

	// Anonymous mappings are demand-zeroed.
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not zero: %#x", i, v)
		}
	}

	b[0] = 0xAB
	b[63] = 0xCD
	if g, e := r.Bytes()[0], byte(0xAB); g != e {
		t.Fatal(g, e)
	}
}

func TestRegionExtendPastReservation(t *testing.T) {
	r, err := New(4096)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if _, err := r.Extend(4096); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Extend(1); err == nil {
		t.Fatal("expected an error extending past the reservation")
	}
}

func TestNewRejectsNonPositiveReservation(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected an error for a zero reservation")
	}
	if _, err := New(-1); err == nil {
		t.Fatal("expected an error for a negative reservation")
	}
}
