// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bai

import (
	"github.com/biogo/bai/bgzf"
)

// Span is a non-empty, ordered list of Chunks a caller must scan in the
// alignment file to find every record overlapping a query (§6.2). A zero
// Span (nil slice) represents "nothing to scan".
type Span []bgzf.Chunk

// IsEmpty reports whether s has no chunks to scan.
func (s Span) IsEmpty() bool { return len(s) == 0 }

// FirstOffset returns the virtual offset to begin scanning at. It panics
// if s is empty; callers should check IsEmpty first.
func (s Span) FirstOffset() bgzf.Offset { return s[0].Begin }

// ContentsFollowing returns a Span addressing the alignment data
// immediately after the last chunk of s — useful for resuming a scan (e.g.
// moving on to the unmapped tail) once s has been exhausted.
func (s Span) ContentsFollowing() Span {
	if s.IsEmpty() {
		return nil
	}
	last := s[len(s)-1]
	return Span{{Begin: last.End, End: bgzf.Offset{File: 1<<62 - 1, Block: 0xFFFF}}}
}

// Query returns the chunks that must be scanned to find every record on
// reference ref overlapping the 1-based inclusive interval [start, end].
// end <= 0 means "to the end of the reference" (§4.7).
//
// An out-of-range reference index yields an empty Span, not an error
// (§4.8). A region that normalizes to an empty interval also yields an
// empty Span.
func (r *Reader) Query(ref, start, end int) (Span, error) {
	if r.closed {
		return nil, ErrClosedIndex
	}
	if ref < 0 || ref >= len(r.locs) {
		return nil, nil
	}

	bins := RegionToBins(start, end)
	if len(bins) == 0 {
		return nil, nil
	}

	content, err := r.content(ref)
	if err != nil {
		return nil, err
	}
	if content.IsNull() {
		return nil, nil
	}

	var chunks []bgzf.Chunk
	for _, b := range bins {
		bin := content.lookupBin(b)
		if bin == nil {
			continue
		}
		chunks = append(chunks, bin.Chunks...)
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	minOffset := content.Intervals.MinOffset(start)
	result := Optimize(chunks, minOffset)
	if len(result) == 0 {
		return nil, nil
	}
	return Span(result), nil
}

// SpanForBin returns the chunks that must be scanned for records assigned
// to bin specifically, together with the chunks of every ancestor bin
// (one per covering level above bin) present in the reference's content,
// optimized as a single Span (§4.7 "Browse variant"). This exposes
// per-bin granularity useful for splitting a reference into independently
// scannable pieces.
func (r *Reader) SpanForBin(ref int, bin uint32) (Span, error) {
	if r.closed {
		return nil, ErrClosedIndex
	}
	if ref < 0 || ref >= len(r.locs) {
		return nil, nil
	}
	content, err := r.content(ref)
	if err != nil {
		return nil, err
	}
	if content.IsNull() {
		return nil, nil
	}

	var chunks []bgzf.Chunk
	for _, b := range ancestorsOf(bin) {
		bb := content.lookupBin(b)
		if bb == nil {
			continue
		}
		chunks = append(chunks, bb.Chunks...)
	}
	if len(chunks) == 0 {
		return nil, nil
	}
	return Span(Optimize(chunks, bgzf.Offset{})), nil
}

// ancestorsOf returns bin together with the bin number of its covering
// ancestor at every level above bin's own, root first. Ancestors are
// computed directly from bin's start coordinate and level, since they
// share bin's genomic start divided down to each coarser level's span.
func ancestorsOf(bin uint32) []uint32 {
	l, err := Level(bin)
	if err != nil {
		return []uint32{bin}
	}
	first, _ := FirstLocus(bin)
	beg := first - 1

	out := make([]uint32, 0, l+1)
	out = append(out, levelStart[0])
	for lvl := 1; lvl <= l; lvl++ {
		shift := levelShift[lvl-1]
		out = append(out, levelStart[lvl]+uint32(beg>>shift))
	}
	return out
}
