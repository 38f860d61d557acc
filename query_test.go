// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bai

import (
	"os"
	"path/filepath"

	"gopkg.in/check.v1"

	"github.com/biogo/bai/bgzf"
)

// openTemp writes refs to a temporary .bai file and opens it for reading,
// registering cleanup with c.
func openTemp(c *check.C, refs []*RefIndex, noCoordinateCount *uint64, policy CachePolicy) *Reader {
	dir := c.MkDir()
	path := filepath.Join(dir, "test.bai")
	c.Assert(WriteFile(path, refs, noCoordinateCount), check.Equals, nil)
	r, err := Open(path, policy, 4)
	c.Assert(err, check.Equals, nil)
	return r
}

func (s *S) TestQuerySingleRecordHit(c *check.C) {
	refs := buildSingleRecordIndex(c)
	var count uint64 = 0
	r := openTemp(c, refs, &count, LRU)
	defer r.Close()

	// S5: query (ref=0, start=50, end=60) returns the sole chunk.
	span, err := r.Query(0, 50, 60)
	c.Assert(err, check.Equals, nil)
	c.Assert(span.IsEmpty(), check.Equals, false)
	c.Assert(span, check.HasLen, 1)
	c.Check(span[0].Begin, check.Equals, bgzf.OffsetFor(0x10000))
	c.Check(span[0].End, check.Equals, bgzf.OffsetFor(0x10100))
}

func (s *S) TestQueryMiss(c *check.C) {
	refs := buildSingleRecordIndex(c)
	r := openTemp(c, refs, nil, NoCache)
	defer r.Close()

	// A query against a window far beyond the only populated leaf bin's
	// span must select a disjoint set of candidate bins and return empty.
	span, err := r.Query(0, 20000, 20100)
	c.Assert(err, check.Equals, nil)
	c.Check(span.IsEmpty(), check.Equals, true)
}

func (s *S) TestQueryOutOfRangeReference(c *check.C) {
	refs := buildSingleRecordIndex(c)
	r := openTemp(c, refs, nil, NoCache)
	defer r.Close()

	span, err := r.Query(5, 1, 10)
	c.Assert(err, check.Equals, nil)
	c.Check(span.IsEmpty(), check.Equals, true)
}

func (s *S) TestQueryOnClosedReader(c *check.C) {
	refs := buildSingleRecordIndex(c)
	r := openTemp(c, refs, nil, NoCache)
	c.Assert(r.Close(), check.Equals, nil)

	_, err := r.Query(0, 1, 10)
	c.Check(err, check.Equals, ErrClosedIndex)
}

func (s *S) TestUnmappedTrailerPresent(c *check.C) {
	refs := buildSingleRecordIndex(c)
	var count uint64 = 42
	r := openTemp(c, refs, &count, NoCache)
	defer r.Close()

	n, ok := r.Unmapped()
	c.Check(ok, check.Equals, true)
	c.Check(n, check.Equals, uint64(42))
}

func (s *S) TestUnmappedTrailerAbsent(c *check.C) {
	// S8: a .bai lacking the trailing no_coordinate_count reads
	// successfully and reports it absent.
	refs := buildSingleRecordIndex(c)
	r := openTemp(c, refs, nil, NoCache)
	defer r.Close()

	_, ok := r.Unmapped()
	c.Check(ok, check.Equals, false)
}

func (s *S) TestStartOfLastLinearBinAcrossReferences(c *check.C) {
	b := NewBuilder(nil)
	span0 := bgzf.Chunk{Begin: bgzf.OffsetFor(10), End: bgzf.OffsetFor(11)}
	span1 := bgzf.Chunk{Begin: bgzf.OffsetFor(20), End: bgzf.OffsetFor(21)}
	c.Assert(b.Add(RecordSpan{RefID: 0, Start: 1, End: 2, Span: span0}), check.Equals, nil)
	c.Assert(b.Add(RecordSpan{RefID: 1, Start: 1, End: 2, Span: span1}), check.Equals, nil)
	b.Finish(2)

	r := openTemp(c, b.References(), nil, NoCache)
	defer r.Close()

	off, ok := r.StartOfLastLinearBin()
	c.Assert(ok, check.Equals, true)
	c.Check(off, check.Equals, bgzf.OffsetFor(20))
}

func (s *S) TestFullEagerPolicyMatchesNoCache(c *check.C) {
	refs := buildSingleRecordIndex(c)
	eager := openTemp(c, refs, nil, FullEager)
	defer eager.Close()
	lazy := openTemp(c, refs, nil, NoCache)
	defer lazy.Close()

	a, err := eager.Query(0, 50, 60)
	c.Assert(err, check.Equals, nil)
	b, err := lazy.Query(0, 50, 60)
	c.Assert(err, check.Equals, nil)
	c.Check(a, check.DeepEquals, b)
}

func (s *S) TestAncestorsOfIncludesRoot(c *check.C) {
	anc := ancestorsOf(4681)
	c.Assert(len(anc) >= 1, check.Equals, true)
	c.Check(anc[0], check.Equals, levelStart[0])
	c.Check(anc[len(anc)-1], check.Equals, uint32(4681))
}

func (s *S) TestSpanForBinFindsOwnChunks(c *check.C) {
	refs := buildSingleRecordIndex(c)
	r := openTemp(c, refs, nil, NoCache)
	defer r.Close()

	span, err := r.SpanForBin(0, 4681)
	c.Assert(err, check.Equals, nil)
	c.Assert(span.IsEmpty(), check.Equals, false)
	c.Check(span[0].Begin, check.Equals, bgzf.OffsetFor(0x10000))
}

func (s *S) TestOpenRejectsBadMagic(c *check.C) {
	dir := c.MkDir()
	path := filepath.Join(dir, "bad.bai")
	c.Assert(os.WriteFile(path, []byte{0, 0, 0, 0}, 0o644), check.Equals, nil)

	_, err := Open(path, NoCache, 1)
	c.Check(err, check.Equals, ErrInvalidMagic)
}
