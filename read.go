// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bai

import (
	"fmt"
	"io"

	"golang.org/x/exp/mmap"

	"github.com/biogo/bai/bgzf"
)

// refLoc records where reference id's block begins in the mapped file, so
// that a query can seek directly to it without re-skipping every preceding
// reference on every call.
type refLoc struct {
	offset       int64
	null         bool
	lastInterval bgzf.Offset
	hasInterval  bool
}

// Reader provides random access to a BAI file (C8). A Reader is opened once
// and holds a read-only memory map for its lifetime; Close releases it. A
// Reader is not safe for concurrent use — callers needing parallel queries
// should open their own Reader against the same path, which is cheap since
// the backing map is read-only.
type Reader struct {
	f    *mmap.ReaderAt
	locs []refLoc

	noCoordinateCount *uint64

	cache *refCache

	closed bool
}

// CachePolicy selects how a Reader retains decoded per-reference content
// between queries.
type CachePolicy int

const (
	// NoCache decodes a reference's content from the mapped file on every
	// query.
	NoCache CachePolicy = iota

	// LRU retains the most recently used references' decoded content, up
	// to a fixed capacity, evicting the least recently used entry to make
	// room for a new one.
	LRU

	// FullEager decodes and retains every reference's content when the
	// Reader is opened.
	FullEager
)

// Open memory-maps the BAI file at path and parses its structural layout
// (§4.6): the magic, n_ref, and the byte offset of each reference's block,
// without decoding bin or chunk contents. policy selects the caching
// behaviour used by subsequent queries; capacity is the LRU capacity and is
// ignored for other policies.
func Open(path string, policy CachePolicy, capacity int) (*Reader, error) {
	f, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	r := &Reader{f: f}
	if err := r.scan(); err != nil {
		f.Close()
		return nil, err
	}
	switch policy {
	case NoCache:
		r.cache = newRefCache(0)
	case FullEager:
		r.cache = newRefCache(len(r.locs))
		for id := range r.locs {
			if _, err := r.content(id); err != nil {
				f.Close()
				return nil, err
			}
		}
	default:
		if capacity < 1 {
			capacity = 1
		}
		r.cache = newRefCache(capacity)
	}
	return r, nil
}

// NumRefs returns the number of references addressed by the index.
func (r *Reader) NumRefs() int { return len(r.locs) }

// Unmapped returns the trailing no-coordinate-count field and true if the
// index carries one. An old-format index without the trailer reports
// (0, false) (§8 S8).
func (r *Reader) Unmapped() (uint64, bool) {
	if r.noCoordinateCount == nil {
		return 0, false
	}
	return *r.noCoordinateCount, true
}

// Close releases the Reader's memory map. Query, SpanForBin and
// ReferenceContent on a closed Reader return ErrClosedIndex; NumRefs,
// Unmapped and StartOfLastLinearBin keep answering from the values read
// at Open.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.f.Close()
}

// StartOfLastLinearBin returns the last non-zero linear-index entry of the
// last reference that has a linear index, or (Offset{}, false) if no
// reference has one (§4.6, §4.7, §8 S7).
func (r *Reader) StartOfLastLinearBin() (bgzf.Offset, bool) {
	for i := len(r.locs) - 1; i >= 0; i-- {
		if r.locs[i].hasInterval {
			return r.locs[i].lastInterval, true
		}
	}
	return bgzf.Offset{}, false
}

// ReferenceContent returns the fully decoded RefIndex for reference id,
// using the cache policy the Reader was opened with. It is a lower-level
// accessor than Query, useful for tooling that needs direct access to a
// reference's bin table rather than a region query's result.
func (r *Reader) ReferenceContent(id int) (*RefIndex, error) {
	return r.content(id)
}

// content returns the decoded RefIndex for reference id, using the cache
// policy the Reader was opened with.
func (r *Reader) content(id int) (*RefIndex, error) {
	if r.closed {
		return nil, ErrClosedIndex
	}
	if id < 0 || id >= len(r.locs) {
		return nil, ErrNoReference
	}
	if ri, ok := r.cache.get(id); ok {
		return ri, nil
	}
	loc := r.locs[id]
	if loc.null {
		ri := &RefIndex{}
		r.cache.put(id, ri)
		return ri, nil
	}
	cur := NewCursor(r.f)
	cur.Seek(loc.offset)
	ri, err := decodeRef(cur)
	if err != nil {
		return nil, fmt.Errorf("bai: reference %d: %w", id, err)
	}
	r.cache.put(id, ri)
	return ri, nil
}

// scan walks the whole file once, verifying the magic, recording n_ref,
// and locating each reference's block without decoding chunk contents.
func (r *Reader) scan() error {
	cur := NewCursor(r.f)

	m, err := cur.Bytes(4)
	if err != nil {
		return err
	}
	if m[0] != magic[0] || m[1] != magic[1] || m[2] != magic[2] || m[3] != magic[3] {
		return ErrInvalidMagic
	}

	nRef, err := cur.Uint32()
	if err != nil {
		return err
	}
	r.locs = make([]refLoc, nRef)

	for i := range r.locs {
		loc := refLoc{offset: cur.Pos()}

		nBin, err := cur.Uint32()
		if err != nil {
			return fmt.Errorf("bai: reference %d: %w", i, err)
		}
		for b := uint32(0); b < nBin; b++ {
			if _, err := cur.Uint32(); err != nil { // bin number
				return fmt.Errorf("bai: reference %d: %w", i, err)
			}
			nChunk, err := cur.Uint32()
			if err != nil {
				return fmt.Errorf("bai: reference %d: %w", i, err)
			}
			cur.Skip(int64(nChunk) * 16)
		}

		nIntv, err := cur.Uint32()
		if err != nil {
			return fmt.Errorf("bai: reference %d: %w", i, err)
		}
		for k := uint32(0); k < nIntv; k++ {
			v, err := cur.Uint64()
			if err != nil {
				return fmt.Errorf("bai: reference %d: %w", i, err)
			}
			if k == nIntv-1 {
				loc.lastInterval = bgzf.OffsetFor(v)
				loc.hasInterval = true
			}
		}

		loc.null = nBin == 0 && nIntv == 0
		r.locs[i] = loc
	}

	var n uint64
	n, err = cur.Uint64()
	if err == nil {
		r.noCoordinateCount = &n
	} else if err != io.EOF {
		return err
	}

	return nil
}

// decodeRef fully decodes one reference's bin table, meta-bin, and linear
// index starting at the Cursor's current position.
func decodeRef(cur *Cursor) (*RefIndex, error) {
	nBin, err := cur.Uint32()
	if err != nil {
		return nil, err
	}
	ri := &RefIndex{}
	for b := uint32(0); b < nBin; b++ {
		number, err := cur.Uint32()
		if err != nil {
			return nil, err
		}
		nChunk, err := cur.Uint32()
		if err != nil {
			return nil, err
		}
		if number == MetaBin {
			if nChunk != 2 {
				return nil, fmt.Errorf("malformed meta-bin: %d chunks", nChunk)
			}
			chunks, err := readChunks(cur, nChunk)
			if err != nil {
				return nil, err
			}
			ri.Stats = &Stats{
				Chunk:    chunks[0],
				Mapped:   chunks[1].Begin.Compact(),
				Unmapped: chunks[1].End.Compact(),
			}
			continue
		}
		chunks, err := readChunks(cur, nChunk)
		if err != nil {
			return nil, err
		}
		bin := ri.binAt(number)
		bin.Chunks = chunks
	}

	nIntv, err := cur.Uint32()
	if err != nil {
		return nil, err
	}
	intervals := make(LinearIndex, nIntv)
	for i := range intervals {
		v, err := cur.Uint64()
		if err != nil {
			return nil, err
		}
		intervals[i] = bgzf.OffsetFor(v)
	}
	ri.Intervals = intervals

	return ri, nil
}

func readChunks(cur *Cursor, n uint32) ([]bgzf.Chunk, error) {
	chunks := make([]bgzf.Chunk, n)
	for i := range chunks {
		beg, err := cur.Uint64()
		if err != nil {
			return nil, err
		}
		end, err := cur.Uint64()
		if err != nil {
			return nil, err
		}
		chunks[i] = bgzf.Chunk{Begin: bgzf.OffsetFor(beg), End: bgzf.OffsetFor(end)}
	}
	return chunks, nil
}
