// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bai

import (
	"gopkg.in/check.v1"

	"github.com/biogo/bai/bgzf"
)

func (s *S) TestBuilderEmptyStream(c *check.C) {
	b := NewBuilder(nil)
	b.Finish(3)

	refs := b.References()
	c.Assert(refs, check.HasLen, 3)
	for _, r := range refs {
		c.Check(r.IsNull(), check.Equals, true)
	}
	c.Check(b.NoCoordinateCount(), check.Equals, uint64(0))
}

func (s *S) TestBuilderSingleRecord(c *check.C) {
	b := NewBuilder(nil)
	err := b.Add(RecordSpan{
		RefID: 0,
		Start: 1,
		End:   100,
		Span:  bgzf.Chunk{Begin: off(0, 0x100), End: off(0, 0x1100)},
	})
	c.Assert(err, check.Equals, nil)
	b.Finish(1)

	refs := b.References()
	c.Assert(refs, check.HasLen, 1)
	ref := refs[0]
	c.Check(ref.IsNull(), check.Equals, false)
	c.Logf("built reference:\n%s", ref.Dump())

	leaf := ref.lookupBin(4681)
	c.Assert(leaf, check.NotNil)
	c.Assert(leaf.Chunks, check.HasLen, 1)
	c.Check(leaf.Chunks[0].Begin, check.Equals, off(0, 0x100))
	c.Check(leaf.Chunks[0].End, check.Equals, off(0, 0x1100))

	c.Assert(ref.Stats, check.NotNil)
	c.Check(ref.Stats.Mapped, check.Equals, uint64(1))
	c.Check(ref.Stats.Unmapped, check.Equals, uint64(0))
}

func (s *S) TestBuilderNoCoordinateRecords(c *check.C) {
	b := NewBuilder(nil)
	c.Assert(b.Add(RecordSpan{RefID: -1}), check.Equals, nil)
	c.Assert(b.Add(RecordSpan{RefID: -1}), check.Equals, nil)
	b.Finish(1)
	c.Check(b.NoCoordinateCount(), check.Equals, uint64(2))
}

func (s *S) TestBuilderRejectsOutOfOrderReference(c *check.C) {
	b := NewBuilder(nil)
	span := bgzf.Chunk{Begin: off(0, 0), End: off(0, 1)}
	c.Assert(b.Add(RecordSpan{RefID: 1, Start: 1, End: 2, Span: span}), check.Equals, nil)
	err := b.Add(RecordSpan{RefID: 0, Start: 1, End: 2, Span: span})
	c.Check(err, check.Equals, ErrNotCoordinateSorted)
}

func (s *S) TestBuilderRejectsOutOfOrderStart(c *check.C) {
	b := NewBuilder(nil)
	span := bgzf.Chunk{Begin: off(0, 0), End: off(0, 1)}
	c.Assert(b.Add(RecordSpan{RefID: 0, Start: 100, End: 200, Span: span}), check.Equals, nil)
	err := b.Add(RecordSpan{RefID: 0, Start: 50, End: 60, Span: span})
	c.Check(err, check.Equals, ErrNotCoordinateSorted)
}

func (s *S) TestBuilderRejectsMissingSpan(c *check.C) {
	b := NewBuilder(nil)
	err := b.Add(RecordSpan{RefID: 0, Start: 1, End: 2})
	c.Check(err, check.Equals, ErrMissingFileSpan)
}

func (s *S) TestBuilderFillsUntouchedReferences(c *check.C) {
	b := NewBuilder(nil)
	span := bgzf.Chunk{Begin: off(0, 0), End: off(0, 1)}
	c.Assert(b.Add(RecordSpan{RefID: 2, Start: 1, End: 2, Span: span}), check.Equals, nil)
	b.Finish(4)

	refs := b.References()
	c.Assert(refs, check.HasLen, 4)
	c.Check(refs[0].IsNull(), check.Equals, true)
	c.Check(refs[1].IsNull(), check.Equals, true)
	c.Check(refs[2].IsNull(), check.Equals, false)
	c.Check(refs[3].IsNull(), check.Equals, true)
}

func (s *S) TestBuilderLinearIndexPerReference(c *check.C) {
	b := NewBuilder(nil)
	span0 := bgzf.Chunk{Begin: off(10, 0), End: off(10, 1)}
	span1 := bgzf.Chunk{Begin: off(20, 0), End: off(20, 1)}
	c.Assert(b.Add(RecordSpan{RefID: 0, Start: 1, End: 2, Span: span0}), check.Equals, nil)
	c.Assert(b.Add(RecordSpan{RefID: 1, Start: 1, End: 2, Span: span1}), check.Equals, nil)
	b.Finish(2)

	refs := b.References()
	c.Assert(refs[1].Intervals, check.HasLen, 1)
	c.Check(refs[1].Intervals[0], check.Equals, off(20, 0))
}
