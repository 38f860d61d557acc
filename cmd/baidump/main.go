// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command baidump prints a human-readable dump of a .bai index's
// structure: the bin and chunk contents of each reference, its linear
// index, and the trailing unmapped count, if present.
//
// The textual form follows the binary layout line for line and is meant
// for eyeballing and test diffing, not as a published format (§6.4).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/biogo/bai"
)

func main() {
	ref := flag.Int("ref", -1, "dump only this reference id (default: all)")
	offsets := flag.Bool("offsets", false, "print every distinct virtual offset referenced by the index")
	debug := flag.Bool("debug", false, "print internal scan statistics")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: baidump [-ref n] [-offsets] [-debug] <path.bai>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	r, err := bai.Open(path, bai.FullEager, 0)
	if err != nil {
		log.Fatalf("baidump: %v", err)
	}
	defer r.Close()

	if *debug {
		fmt.Printf("n_ref=%d\n", r.NumRefs())
		if off, ok := r.StartOfLastLinearBin(); ok {
			fmt.Printf("start_of_last_linear_bin=%#x\n", off.Compact())
		} else {
			fmt.Println("start_of_last_linear_bin=<none>")
		}
	}

	if n, ok := r.Unmapped(); ok {
		fmt.Printf("no_coordinate_count=%d\n", n)
	} else {
		fmt.Println("no_coordinate_count=<absent>")
	}

	lo, hi := 0, r.NumRefs()
	if *ref >= 0 {
		lo, hi = *ref, *ref+1
	}

	idx := &bai.Index{Refs: make([]*bai.RefIndex, r.NumRefs())}
	for id := lo; id < hi; id++ {
		ri, err := r.ReferenceContent(id)
		if err != nil {
			log.Fatalf("baidump: reference %d: %v", id, err)
		}
		idx.Refs[id] = ri
		if *debug {
			fmt.Printf("ref=%d detail:\n%s", id, ri.Dump())
			continue
		}
		dumpReference(id, ri)
	}

	if *offsets {
		for id, offs := range idx.GetAllOffsets() {
			for _, o := range offs {
				fmt.Printf("ref=%d offset=%#x\n", id, o.Compact())
			}
		}
	}
}

func dumpReference(id int, ri *bai.RefIndex) {
	fmt.Printf("ref=%d\n", id)
	if ri.IsNull() {
		fmt.Println("  (no content)")
		return
	}
	for _, b := range ri.Bins() {
		fmt.Printf("  bin=%d n_chunk=%d\n", b.Number, len(b.Chunks))
		for _, chk := range b.Chunks {
			fmt.Printf("    chunk begin=%#x end=%#x\n", chk.Begin.Compact(), chk.End.Compact())
		}
	}
	if ri.Stats != nil {
		fmt.Printf("  meta mapped=%d unmapped=%d span=[%#x,%#x)\n",
			ri.Stats.Mapped, ri.Stats.Unmapped,
			ri.Stats.Chunk.Begin.Compact(), ri.Stats.Chunk.End.Compact())
	}
	for i, o := range ri.Intervals {
		fmt.Printf("  ioffset[%d]=%#x\n", i, o.Compact())
	}
}
