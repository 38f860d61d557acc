// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bai

import (
	"golang.org/x/exp/slices"

	"github.com/biogo/bai/bgzf"
)

// compareChunks orders bgzf.Chunks by (Begin, End) lexicographic order,
// matching the ordering invariant required of a Chunk list in §3.
func compareChunks(a, b bgzf.Chunk) int {
	ab, bb := a.Begin.Compact(), b.Begin.Compact()
	switch {
	case ab < bb:
		return -1
	case ab > bb:
		return 1
	}
	ae, be := a.End.Compact(), b.End.Compact()
	switch {
	case ae < be:
		return -1
	case ae > be:
		return 1
	}
	return 0
}

func sortChunks(chunks []bgzf.Chunk) {
	if !slices.IsSortedFunc(chunks, chunkLess) {
		slices.SortFunc(chunks, chunkLess)
	}
}

func chunkLess(a, b bgzf.Chunk) bool { return compareChunks(a, b) < 0 }

// Optimize implements the chunk-list coalescing algorithm of §4.2: sort
// ascending, drop chunks that end at or before minOffset (the linear-index
// pruning bound), then sweep left to right merging any chunk that lies in
// the same or an adjacent BGZF block as the chunk accumulated so far.
//
// The input slice is not mutated; Optimize returns a new slice (possibly
// sharing no backing array with chunks) holding the coalesced, pruned
// result.
func Optimize(chunks []bgzf.Chunk, minOffset bgzf.Offset) []bgzf.Chunk {
	if len(chunks) == 0 {
		return nil
	}

	sorted := make([]bgzf.Chunk, len(chunks))
	copy(sorted, chunks)
	slices.SortFunc(sorted, chunkLess)

	min := minOffset.Compact()
	pruned := sorted[:0:0]
	for _, c := range sorted {
		if c.End.Compact() <= min {
			continue
		}
		pruned = append(pruned, c)
	}
	if len(pruned) == 0 {
		return nil
	}

	out := make([]bgzf.Chunk, 0, len(pruned))
	last := pruned[0]
	for _, c := range pruned[1:] {
		if bgzf.Adjacent(last, c) {
			if c.End.Compact() > last.End.Compact() {
				last.End = c.End
			}
			continue
		}
		out = append(out, last)
		last = c
	}
	out = append(out, last)
	return out
}
