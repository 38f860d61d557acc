// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bai

import "errors"

var (
	// ErrInvalidMagic is returned when a stream claiming to be a BAI index
	// does not begin with the "BAI\x01" magic.
	ErrInvalidMagic = errors.New("bai: magic number mismatch")

	// ErrInvalidRegion is returned by Bin when given an interval with end
	// at or before beg. RegionToBins reports such an interval as an empty
	// result instead.
	ErrInvalidRegion = errors.New("bai: invalid region")

	// ErrNoReference is returned by Reader.ReferenceContent given a
	// reference index that is out of range. Query, SpanForBin and
	// Index.Chunks return an empty Span for such an index instead.
	ErrNoReference = errors.New("bai: no reference")

	// ErrNotCoordinateSorted is returned by Builder.Add when records are
	// not presented in ascending coordinate order.
	ErrNotCoordinateSorted = errors.New("bai: records are not coordinate sorted")

	// ErrMissingFileSpan is returned by Builder.Add when a placed record is
	// not accompanied by the chunk it occupies in the alignment file.
	ErrMissingFileSpan = errors.New("bai: record has no file span")

	// ErrClosedIndex is returned by Query, SpanForBin and ReferenceContent
	// on a Reader that has been closed.
	ErrClosedIndex = errors.New("bai: operation on closed index")

	// ErrOutOfRange is returned when a bin number is not addressable by
	// the fixed six-level binning scheme.
	ErrOutOfRange = errors.New("bai: bin number out of range")
)
