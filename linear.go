// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bai

import "github.com/biogo/bai/bgzf"

// tileWidth is the size, in bases, of each linear-index window (16kb).
const tileWidth = 1 << 14

// maxLinearIndexSize is the number of slots in the dense linear-index
// scratch array maintained during a build: MaxBins + 1 - levelStart[5]
// (32770) slots, enough for every 16kb window addressable by a leaf bin
// (32768 leaf bins).
const maxLinearIndexSize = MaxBins + 1 - 4681

// windowOf returns the 0-based 16kb-window index containing the 1-based
// genomic position pos. Positions at or before the start of the reference
// (pos <= 0) map to window 0.
func windowOf(pos int) int {
	if pos <= 0 {
		return 0
	}
	return (pos - 1) >> 14
}

// LinearIndex is the per-reference array whose w'th entry is the smallest
// virtual file offset of any record whose alignment starts in the w'th
// 16kb genomic window. It is used to prune chunk candidates that cannot
// contain a record overlapping a query's start position.
type LinearIndex []bgzf.Offset

// MinOffset returns the pruning offset for a query starting at the 1-based
// genomic position pos: the linear-index entry of the window containing
// pos, or the zero Offset if pos falls outside the recorded range.
func (l LinearIndex) MinOffset(pos int) bgzf.Offset {
	w := windowOf(pos)
	if w < 0 || w >= len(l) {
		return bgzf.Offset{}
	}
	return l[w]
}

// fillGaps replaces every zero-valued (unset) slot with the nearest
// non-zero predecessor, for samtools-compatible linear index output (§4.3,
// §9). It prunes at least as much as an unset (zero) slot would, without
// changing the correctness of MinOffset-driven pruning: no record overlaps
// an unset window, so any record a query starting there can match lies in
// the file after the records behind the carried-forward offset.
func fillGaps(l LinearIndex) {
	var last bgzf.Offset
	for i := range l {
		if l[i].Compact() == 0 {
			l[i] = last
			continue
		}
		last = l[i]
	}
}
