// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Heaptrace replays a trace of allocator operations against a heap.Allocator
// and reports whether every invariant CheckHeap knows about held after every
// step, the driver harness the allocator core itself is deliberately silent
// about (spec's "external collaborator" (b)).
//
// A trace is a text file, one operation per line:
//
//	a id size   allocate size bytes, remember the result under id
//	c id n size calloc n elements of size bytes, remember the result under id
//	r id size   reallocate the block remembered under id to size bytes
//	f id        free the block remembered under id
//
// Blank lines and lines starting with # are ignored.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/cznic/dmalloc/heap"
	"github.com/cznic/dmalloc/memregion"
)

var (
	oFile  = flag.String("f", "", "trace file to replay (required)")
	oCheck = flag.Bool("check", true, "run CheckHeap after every operation")
	oStats = flag.Bool("stats", false, "print heap.Stats after replay")
)

type op struct {
	kind  byte
	id    string
	a, b  int64
	lineN int
}

func parseTrace(path string) ([]op, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ops []op
	sc := bufio.NewScanner(f)
	for lineN := 1; sc.Scan(); lineN++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		o := op{kind: fields[0][0], lineN: lineN}
		switch o.kind {
		case 'a':
			o.id = fields[1]
			o.a, err = strconv.ParseInt(fields[2], 10, 64)
		case 'c':
			o.id = fields[1]
			o.a, err = strconv.ParseInt(fields[2], 10, 64)
			if err == nil {
				o.b, err = strconv.ParseInt(fields[3], 10, 64)
			}
		case 'r':
			o.id = fields[1]
			o.a, err = strconv.ParseInt(fields[2], 10, 64)
		case 'f':
			o.id = fields[1]
		default:
			return nil, fmt.Errorf("line %d: unknown opcode %q", lineN, line)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", lineN, err)
		}
		ops = append(ops, o)
	}
	return ops, sc.Err()
}

func replay(ops []op) (heap.Stats, error) {
	a := heap.NewAllocator(memregion.New())
	if err := a.Init(); err != nil {
		return heap.Stats{}, err
	}

	live := map[string]int64{}
	for _, o := range ops {
		var err error
		switch o.kind {
		case 'a':
			live[o.id], err = a.Allocate(o.a)
		case 'c':
			live[o.id], err = a.Calloc(o.a, o.b)
		case 'r':
			live[o.id], err = a.Realloc(live[o.id], o.a)
		case 'f':
			a.Free(live[o.id])
			delete(live, o.id)
		}
		if err != nil {
			return heap.Stats{}, fmt.Errorf("line %d: %v", o.lineN, err)
		}

		if *oCheck {
			if err := a.CheckHeap(); err != nil {
				return heap.Stats{}, fmt.Errorf("line %d: %v", o.lineN, err)
			}
		}
	}
	return a.Stats(), nil
}

func main() {
	flag.Parse()
	if *oFile == "" {
		log.Fatal("heaptrace: -f is required")
	}

	ops, err := parseTrace(*oFile)
	if err != nil {
		log.Fatal(err)
	}

	st, err := replay(ops)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("replayed %d operations, heap consistent", len(ops))
	if *oStats {
		fmt.Printf("%+v\n", st)
	}
}
