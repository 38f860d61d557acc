// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bai

import (
	"gopkg.in/check.v1"

	"github.com/biogo/bai/bgzf"
)

func (s *S) TestRefIndexIsNull(c *check.C) {
	r := newRefIndex(0)
	c.Check(r.IsNull(), check.Equals, true)

	r.binAt(4681).Chunks = append(r.binAt(4681).Chunks, chunk(0, 10))
	c.Check(r.IsNull(), check.Equals, false)
}

func (s *S) TestRefIndexBinAtGrows(c *check.C) {
	r := newRefIndex(1)
	c.Check(len(r.table) < int(MaxBins), check.Equals, true)

	b := r.binAt(MaxBins - 1)
	c.Check(b.Number, check.Equals, uint32(MaxBins-1))
	c.Check(len(r.table) >= int(MaxBins), check.Equals, true)

	// Looking it up again must return the same Bin, not a fresh one.
	c.Check(r.lookupBin(MaxBins-1), check.Equals, b)
}

func (s *S) TestRefIndexLookupMissing(c *check.C) {
	r := newRefIndex(0)
	c.Check(r.lookupBin(9), check.IsNil)
}

func (s *S) TestRefIndexBinsAscending(c *check.C) {
	r := newRefIndex(0)
	r.binAt(585)
	r.binAt(1)
	r.binAt(73)
	bins := r.Bins()
	c.Assert(bins, check.HasLen, 3)
	c.Check(bins[0].Number, check.Equals, uint32(1))
	c.Check(bins[1].Number, check.Equals, uint32(73))
	c.Check(bins[2].Number, check.Equals, uint32(585))
}

func (s *S) TestRefIndexSortChunks(c *check.C) {
	r := newRefIndex(0)
	b := r.binAt(4681)
	b.Chunks = []bgzf.Chunk{chunk(100, 110), chunk(0, 10)}
	r.sortChunks()
	c.Check(b.Chunks[0], check.Equals, chunk(0, 10))
	c.Check(b.Chunks[1], check.Equals, chunk(100, 110))
}
