// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bai

import (
	"github.com/kortschak/utter"

	"github.com/biogo/bai/bgzf"
)

// Bin is one node of the binning tree, holding every chunk of the
// alignment file assigned to it.
type Bin struct {
	Number uint32
	Chunks []bgzf.Chunk
}

// Stats holds the per-reference metadata carried by the meta-bin (§3): the
// tightest virtual-offset span over the reference's aligned records, and
// the aligned/unaligned record counts.
type Stats struct {
	Chunk    bgzf.Chunk
	Mapped   uint64
	Unmapped uint64
}

// RefIndex is the per-reference reference index content (§3, C5): a sparse
// set of populated ordinary Bins in ascending bin-number order, a
// LinearIndex, and the Stats decoded from the meta-bin. A RefIndex with no
// populated bins and no intervals is the "null content" emitted for a
// reference that received no records (§4.4 "Seal a reference").
//
// Per §9's "single sparse representation" redesign note, ordinary bins are
// held in a nullable array addressed directly by bin number; Bins returns
// an ascending-order view skipping unpopulated slots. The meta-bin is not
// an ordinary bin: its two chunks repurpose Begin/End as counters, not
// virtual offsets (§3, §6.1), so it is never stored in table and is kept
// out of reach of any code that sorts or merges an ordinary bin's chunks.
// Stats is nil for a reference with no populated bins, matching table's
// emptiness.
type RefIndex struct {
	table []*Bin // dense, indexed by bin number; nil where unpopulated. Never holds MetaBin.
	n     int    // count of populated ordinary bins.

	Intervals LinearIndex
	Stats     *Stats
}

// newRefIndex returns a RefIndex whose sparse table is sized to hold every
// bin addressable for a reference of the given length. A length of 0 (or
// less) sizes the table to the maximum possible bin count, MaxBins.
func newRefIndex(length int) *RefIndex {
	size := int(MaxBinForLength(length)) + 1
	if length <= 0 {
		size = MaxBins
	}
	return &RefIndex{table: make([]*Bin, size)}
}

// binAt returns the Bin for the given ordinary bin number, growing the
// sparse table if necessary, creating the Bin if it is not already
// populated. bin must not be MetaBin; the meta-bin's counters live in
// Stats, set directly by the caller, not through the table.
func (r *RefIndex) binAt(bin uint32) *Bin {
	if int(bin) >= len(r.table) {
		grown := make([]*Bin, bin+1)
		copy(grown, r.table)
		r.table = grown
	}
	b := r.table[bin]
	if b == nil {
		b = &Bin{Number: bin}
		r.table[bin] = b
		r.n++
	}
	return b
}

// lookupBin returns the existing Bin for the given bin number, or nil if
// unpopulated.
func (r *RefIndex) lookupBin(bin uint32) *Bin {
	if int(bin) >= len(r.table) {
		return nil
	}
	return r.table[bin]
}

// Bins returns every populated ordinary Bin in ascending bin-number order.
// The meta-bin is never included; see Stats.
func (r *RefIndex) Bins() []*Bin {
	bins := make([]*Bin, 0, r.n)
	for _, b := range r.table {
		if b != nil {
			bins = append(bins, b)
		}
	}
	return bins
}

// IsNull reports whether r carries no information: no populated ordinary
// bins and no linear index entries.
func (r *RefIndex) IsNull() bool {
	return r.n == 0 && len(r.Intervals) == 0
}

// Dump returns a deeply pretty-printed representation of r's populated
// bins, stats, and linear index, for diagnostic tooling (cmd/baidump
// -debug) and for attaching to gocheck failure messages via c.Logf.
func (r *RefIndex) Dump() string {
	return utter.Sdump(r)
}

// sortChunks orders every ordinary Bin's chunk list ascending; RefIndex content
// built incrementally by Builder is already ordered by construction, but
// content read back from disk or merged from multiple sources is not
// guaranteed to be. The meta-bin's synthetic chunks are never touched,
// since table never holds them.
func (r *RefIndex) sortChunks() {
	for _, b := range r.table {
		if b == nil {
			continue
		}
		sortChunks(b.Chunks)
	}
}
