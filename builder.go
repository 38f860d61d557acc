// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bai

import (
	"github.com/biogo/bai/bgzf"
)

// RecordSpan describes the fields a record codec (an out-of-scope
// collaborator, §1) must supply the Builder for each alignment record, in
// the order the codec would naturally decode them.
type RecordSpan struct {
	// RefID is the 0-based index into the reference dictionary, or -1 for
	// a record with no reference ("no-coordinate" record).
	RefID int

	// Start is the 1-based alignment start position, or 0 if the record
	// has no coordinate.
	Start int

	// End is the 1-based alignment end position, or 0 if unknown.
	End int

	// Unmapped reports the record's unmapped flag. A record can be placed
	// (have a reference and a start) and still be flagged unmapped.
	Unmapped bool

	// Bin, if non-nil, is a pre-computed bin number to use instead of
	// recomputing one from Start/End via Bin(beg, end).
	Bin *uint32

	// Span is the chunk occupied by this record in the alignment file.
	// Every placed record occupies exactly one chunk.
	Span bgzf.Chunk
}

// placed reports whether the record has a reference and a start
// coordinate, i.e. it is not a "no-coordinate" record (§4.4 step 1).
func (r RecordSpan) placed() bool {
	return r.RefID >= 0 && r.Start > 0
}

// Builder is a streaming, single-pass accumulator that consumes alignment
// records in coordinate-sorted order and produces a RefIndex for each
// reference seen (C6). A Builder must be driven by a single goroutine and
// retains no per-record state once Add returns.
type Builder struct {
	refLengths []int // optional; used to presize each reference's sparse table.

	refs []*RefIndex // sealed references, indexed by RefID.

	curRef   int
	cur      *RefIndex
	lastBin  uint32
	haveLast bool

	firstOffset bgzf.Offset
	lastOffset  bgzf.Offset
	haveOffsets bool
	mapped      uint64
	unmapped    uint64

	largestWindow int
	haveWindow    bool

	lastRefSeen    int
	lastStartAdded int
	started        bool

	noCoordinateCount uint64
}

// NewBuilder returns a Builder ready to accept records in coordinate-sorted
// order. refLengths, if non-nil, gives the length of each reference in the
// dictionary by RefID and is used only to size each reference's sparse bin
// table up front; it does not bound how many references may be sealed.
func NewBuilder(refLengths []int) *Builder {
	return &Builder{
		refLengths: refLengths,
		curRef:     -1,
		lastRefSeen: -1,
	}
}

func (b *Builder) refLength(id int) int {
	if id < 0 || id >= len(b.refLengths) {
		return 0
	}
	return b.refLengths[id]
}

// Add folds one alignment record into the Builder's running state,
// following the per-record algorithm of §4.4.
func (b *Builder) Add(r RecordSpan) error {
	if !r.placed() {
		b.noCoordinateCount++
		return nil
	}
	if r.Span.Begin.Compact() == 0 && r.Span.End.Compact() == 0 {
		return ErrMissingFileSpan
	}

	if r.RefID < b.lastRefSeen {
		return ErrNotCoordinateSorted
	}
	if r.RefID == b.lastRefSeen && b.started && r.Start < b.lastStartAdded {
		return ErrNotCoordinateSorted
	}
	if r.RefID > b.lastRefSeen {
		b.sealThrough(r.RefID)
	}
	b.started = true
	b.lastStartAdded = r.Start

	if r.Unmapped {
		b.unmapped++
	} else {
		b.mapped++
	}

	var bin uint32
	if r.Bin != nil {
		bin = *r.Bin
	} else {
		end := r.End
		if end == 0 {
			end = r.Start
		}
		var err error
		bin, err = Bin(r.Start-1, end)
		if err != nil {
			return err
		}
	}

	target := b.cur.binAt(bin)
	if len(target.Chunks) > 0 {
		last := &target.Chunks[len(target.Chunks)-1]
		if bgzf.Adjacent(*last, r.Span) {
			if r.Span.End.Compact() > last.End.Compact() {
				last.End = r.Span.End
			}
		} else {
			target.Chunks = append(target.Chunks, r.Span)
		}
	} else {
		target.Chunks = append(target.Chunks, r.Span)
	}

	if !b.haveOffsets || r.Span.Begin.Compact() < b.firstOffset.Compact() {
		b.firstOffset = r.Span.Begin
	}
	if !b.haveOffsets || r.Span.End.Compact() > b.lastOffset.Compact() {
		b.lastOffset = r.Span.End
	}
	b.haveOffsets = true

	wStart := windowOf(r.Start)
	var wEnd int
	if r.End == 0 {
		wStart = windowOf(r.Start - 1)
		wEnd = wStart
	} else {
		wEnd = windowOf(r.End)
	}
	if !b.haveWindow || wEnd > b.largestWindow {
		b.largestWindow = wEnd
		b.haveWindow = true
	}
	b.ensureLinearSize(wEnd)
	for w := wStart; w <= wEnd; w++ {
		if b.cur.Intervals[w].Compact() == 0 || r.Span.Begin.Compact() < b.cur.Intervals[w].Compact() {
			b.cur.Intervals[w] = r.Span.Begin
		}
	}

	return nil
}

// ensureLinearSize grows the current reference's linear-index scratch
// array so that index w is addressable, bounded by maxLinearIndexSize.
func (b *Builder) ensureLinearSize(w int) {
	if w < len(b.cur.Intervals) {
		return
	}
	size := w + 1
	if size > maxLinearIndexSize {
		size = maxLinearIndexSize
	}
	grown := make(LinearIndex, size)
	copy(grown, b.cur.Intervals)
	b.cur.Intervals = grown
}

// sealThrough seals the currently open reference (if any) and every
// reference strictly between the last reference touched and upTo,
// emitting null content for each untouched reference, then opens upTo as
// the new current reference.
func (b *Builder) sealThrough(upTo int) {
	if b.cur != nil {
		b.seal()
	}
	for id := b.lastRefSeen + 1; id < upTo; id++ {
		b.sealEmpty(id)
	}
	b.lastRefSeen = upTo
	b.curRef = upTo
	b.cur = newRefIndex(b.refLength(upTo))
	b.haveOffsets = false
	b.mapped, b.unmapped = 0, 0
	b.largestWindow, b.haveWindow = 0, false
	b.started = false
}

// seal finalizes b.cur: truncates its linear index to the largest window
// actually touched, fills gaps for samtools parity, sets its meta-bin
// statistics, and appends it to b.refs.
func (b *Builder) seal() {
	r := b.cur
	if b.haveWindow {
		r.Intervals = r.Intervals[:b.largestWindow+1]
		fillGaps(r.Intervals)
	} else {
		r.Intervals = nil
	}
	if r.n > 0 {
		r.Stats = &Stats{
			Chunk:    bgzf.Chunk{Begin: b.firstOffset, End: b.lastOffset},
			Mapped:   b.mapped,
			Unmapped: b.unmapped,
		}
	}
	b.growRefs(b.curRef)
	b.refs[b.curRef] = r
}

// sealEmpty appends null content for a reference that received no records.
func (b *Builder) sealEmpty(id int) {
	b.growRefs(id)
	b.refs[id] = newRefIndex(0)
	b.refs[id].table = nil
}

func (b *Builder) growRefs(id int) {
	if id < len(b.refs) {
		return
	}
	grown := make([]*RefIndex, id+1)
	copy(grown, b.refs)
	b.refs = grown
}

// Finish seals the current reference (if any) and emits null content for
// every reference in the dictionary after the last one touched, up
// to nRefs exclusive. It must be called exactly once, after the last
// record has been added.
func (b *Builder) Finish(nRefs int) {
	if b.cur != nil {
		b.seal()
	}
	for id := b.lastRefSeen + 1; id < nRefs; id++ {
		b.sealEmpty(id)
	}
	b.growRefs(nRefs - 1)
}

// References returns the sealed per-reference content accumulated so far,
// indexed by RefID. Call Finish first to guarantee every reference through
// nRefs-1 is present.
func (b *Builder) References() []*RefIndex {
	return b.refs
}

// NoCoordinateCount returns the number of records folded into the Builder
// that carried no alignment coordinate (§4.4 step 1, §8 invariant 7).
func (b *Builder) NoCoordinateCount() uint64 {
	return b.noCoordinateCount
}
