// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bai implements the BAM binning index (.bai) format: the fixed
// six-level binning scheme, a streaming builder, a bit-exact binary
// serializer, and a memory-mapped reader with a region-query engine.
//
// The package does not decode BAM or SAM records, parse SAM headers, or
// implement the BGZF codec; those are external collaborators specified
// only at their interface with this package (see RecordSpan and the bgzf
// sub-package).
package bai

import (
	"golang.org/x/exp/slices"

	"github.com/biogo/bai/bgzf"
	"github.com/biogo/bai/bgzf/index"
)

// Index is a fully decoded, in-memory BAI index: every reference's
// RefIndex plus the trailing no-coordinate count, if any. It is the shape
// produced by a Builder and consumed by Write, and is also what FullEager
// reading materializes behind a Reader.
type Index struct {
	Refs              []*RefIndex
	NoCoordinateCount *uint64
}

// FromBuilder finalizes b against a reference dictionary of size nRefs and
// returns the resulting Index.
func FromBuilder(b *Builder, nRefs int) *Index {
	b.Finish(nRefs)
	n := b.NoCoordinateCount()
	return &Index{Refs: b.References(), NoCoordinateCount: &n}
}

// NumRefs returns the number of references in the index.
func (i *Index) NumRefs() int { return len(i.Refs) }

// ReferenceStats returns the meta-bin statistics for reference id, and
// whether that reference carries any (a reference with null content does
// not).
func (i *Index) ReferenceStats(id int) (Stats, bool) {
	if id < 0 || id >= len(i.Refs) || i.Refs[id] == nil || i.Refs[id].Stats == nil {
		return Stats{}, false
	}
	return *i.Refs[id].Stats, true
}

// Unmapped returns the trailing no-coordinate record count, and whether
// the index carries one (an old-format index does not, §8 S8).
func (i *Index) Unmapped() (uint64, bool) {
	if i.NoCoordinateCount == nil {
		return 0, false
	}
	return *i.NoCoordinateCount, true
}

// Chunks returns the Span of chunks overlapping the 1-based interval
// [start, end] on reference id, computed directly against the in-memory
// Index (no file I/O). end <= 0 means "to the end of the reference".
func (i *Index) Chunks(id, start, end int) (Span, error) {
	if id < 0 || id >= len(i.Refs) {
		return nil, nil
	}
	ref := i.Refs[id]
	if ref == nil || ref.IsNull() {
		return nil, nil
	}
	bins := RegionToBins(start, end)
	if len(bins) == 0 {
		return nil, nil
	}
	var chunks []bgzf.Chunk
	for _, b := range bins {
		bin := ref.lookupBin(b)
		if bin == nil {
			continue
		}
		chunks = append(chunks, bin.Chunks...)
	}
	if len(chunks) == 0 {
		return nil, nil
	}
	minOffset := ref.Intervals.MinOffset(start)
	result := Optimize(chunks, minOffset)
	if len(result) == 0 {
		return nil, nil
	}
	return Span(result), nil
}

// MergeChunks applies s to every ordinary bin's chunk list in every
// reference, in place. This lets a caller reshape a built Index's chunk
// granularity (e.g. index.Squash to minimize bin count at the cost of scan
// precision) before serializing it. The meta-bin's synthetic stats chunks
// are never touched: they are not ordinary chunk lists, and r.table never
// holds them (see RefIndex).
func (i *Index) MergeChunks(s index.MergeStrategy) {
	if s == nil {
		return
	}
	for _, r := range i.Refs {
		if r == nil {
			continue
		}
		for _, b := range r.table {
			if b == nil {
				continue
			}
			sortChunks(b.Chunks)
			b.Chunks = s(b.Chunks)
		}
	}
}

// GetAllOffsets returns every distinct virtual offset referenced anywhere
// in the index — bin-chunk begin offsets and linear-index entries —
// grouped by reference id, ascending and de-duplicated. It is a debugging
// and tooling accessor, not used by Query itself.
func (i *Index) GetAllOffsets() map[int][]bgzf.Offset {
	out := make(map[int][]bgzf.Offset, len(i.Refs))
	for id, ref := range i.Refs {
		var offs []bgzf.Offset
		if ref != nil {
			for _, b := range ref.Bins() {
				for _, c := range b.Chunks {
					if c.Begin.Compact() != 0 {
						offs = append(offs, c.Begin)
					}
				}
			}
			for _, iv := range ref.Intervals {
				if iv.Compact() != 0 {
					offs = append(offs, iv)
				}
			}
		}
		slices.SortFunc(offs, offsetLess)
		offs = dedupOffsets(offs)
		out[id] = offs
	}
	return out
}

func offsetLess(a, b bgzf.Offset) bool { return a.Less(b) }

func dedupOffsets(offs []bgzf.Offset) []bgzf.Offset {
	if len(offs) == 0 {
		return offs
	}
	out := offs[:1]
	for _, o := range offs[1:] {
		if o != out[len(out)-1] {
			out = append(out, o)
		}
	}
	return out
}
