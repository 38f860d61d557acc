// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bai

import (
	"gopkg.in/check.v1"

	"github.com/biogo/bai/bgzf"
)

func off(file int64, block uint16) bgzf.Offset { return bgzf.Offset{File: file, Block: block} }

func chunk(beginFile, endFile int64) bgzf.Chunk {
	return bgzf.Chunk{Begin: off(beginFile, 0), End: off(endFile, 0)}
}

func (s *S) TestOptimizeSortsAndMerges(c *check.C) {
	// Unsorted input; (50,60) and (60,65) lie in adjacent blocks and merge,
	// as do (0,5) and (5,10); the two resulting groups are 40 blocks apart
	// and stay separate.
	chunks := []bgzf.Chunk{
		chunk(50, 60),
		chunk(0, 5),
		chunk(60, 65),
		chunk(5, 10),
	}
	got := Optimize(chunks, bgzf.Offset{})
	c.Assert(got, check.HasLen, 2)
	c.Check(got[0].Begin, check.Equals, off(0, 0))
	c.Check(got[0].End, check.Equals, off(10, 0))
	c.Check(got[1].Begin, check.Equals, off(50, 0))
	c.Check(got[1].End, check.Equals, off(65, 0))
}

func (s *S) TestOptimizePrunesBelowMinOffset(c *check.C) {
	chunks := []bgzf.Chunk{chunk(0, 10), chunk(1000, 1010)}
	got := Optimize(chunks, off(500, 0))
	c.Assert(got, check.HasLen, 1)
	c.Check(got[0], check.Equals, chunk(1000, 1010))
}

func (s *S) TestOptimizeEmpty(c *check.C) {
	c.Check(Optimize(nil, bgzf.Offset{}), check.IsNil)
	c.Check(Optimize([]bgzf.Chunk{chunk(0, 1)}, off(100, 0)), check.IsNil)
}

func (s *S) TestOptimizeDoesNotMutateInput(c *check.C) {
	chunks := []bgzf.Chunk{chunk(10, 20), chunk(0, 5)}
	orig := append([]bgzf.Chunk(nil), chunks...)
	_ = Optimize(chunks, bgzf.Offset{})
	c.Check(chunks, check.DeepEquals, orig)
}
