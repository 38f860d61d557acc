// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bai

// Package-level constants describing the fixed six-level binning scheme
// defined by the SAM specification (section 5, "Indexing BAM").
const (
	// genomicSpan is the size, in bases, of the per-reference coordinate
	// space the binning scheme covers (2^29).
	genomicSpan = 1 << 29

	// MaxBins is the number of addressable bins per reference, plus one.
	// Bin numbers 0..MaxBins-2 (37448) are real tree nodes; MaxBins itself (37450)
	// is reserved for the per-reference metadata bin.
	MaxBins = 37450

	// MetaBin is the reserved bin number carrying the per-reference
	// aligned-span and mapped/unmapped counters (§3).
	MetaBin = MaxBins

	indexWordBits = 29
	nextBinShift  = 3
)

// level start bin numbers, finest (leaf, level 5) first is *not* the
// convention used here: levelStart is indexed by level number, 0 being the
// single whole-reference bin and 5 being the 16kb leaf level, matching the
// L = [0, 1, 9, 73, 585, 4681] sequence from the spec.
var levelStart = [6]uint32{0, 1, 9, 73, 585, 4681}

// levelShift[l] is the bit shift that turns a 0-based genomic coordinate
// into the index of its containing bin at level l+1 (levelShift[0] is the
// shift for level 1, the coarsest non-root level; levelShift[4] is the
// shift for level 5, the 16kb leaf level).
var levelShift = [5]uint32{26, 23, 20, 17, 14}

func init() {
	// levelShift is derived mechanically from indexWordBits and
	// nextBinShift; the literal above must agree with that derivation.
	for l := 0; l < 5; l++ {
		if levelShift[l] != uint32(indexWordBits)-uint32(l+1)*nextBinShift {
			panic("bai: levelShift table inconsistent with level definition")
		}
	}
}

// Bin returns the bin number of the smallest bin able to contain the
// 0-based, half-open interval [beg, end). It returns ErrInvalidRegion if
// end <= beg.
func Bin(beg, end int) (uint32, error) {
	if end <= beg {
		return 0, ErrInvalidRegion
	}
	end--
	for l := 4; l >= 0; l-- {
		s := levelShift[l]
		if beg>>s == end>>s {
			return levelStart[l+1] + uint32(beg>>s), nil
		}
	}
	return levelStart[0], nil
}

// Level returns the tree depth (0 = whole-reference root, 5 = 16kb leaf) of
// bin. It returns ErrOutOfRange if bin is not a valid tree bin (bin >=
// MaxBins, including MetaBin).
func Level(bin uint32) (int, error) {
	if bin >= MaxBins {
		return 0, ErrOutOfRange
	}
	for l := 5; l > 0; l-- {
		if bin >= levelStart[l] {
			return l, nil
		}
	}
	return 0, nil
}

// levelSpan is the genomic span, in bases, covered by a single bin at level
// l.
func levelSpan(l int) int {
	return genomicSpan >> (uint(l) * nextBinShift)
}

// FirstLocus returns the 1-based start coordinate of the genomic interval
// covered by bin.
func FirstLocus(bin uint32) (int, error) {
	l, err := Level(bin)
	if err != nil {
		return 0, err
	}
	return int(bin-levelStart[l])*levelSpan(l) + 1, nil
}

// LastLocus returns the 1-based, inclusive end coordinate of the genomic
// interval covered by bin.
func LastLocus(bin uint32) (int, error) {
	l, err := Level(bin)
	if err != nil {
		return 0, err
	}
	first, _ := FirstLocus(bin)
	return first + levelSpan(l) - 1, nil
}

// MaxBinForLength returns the bin number of the last (rightmost) leaf bin
// that can hold a position within a reference of the given length, for
// sizing a sparse bin table when the reference dictionary is known ahead of
// time.
func MaxBinForLength(length int) uint32 {
	if length <= 0 {
		return levelStart[5]
	}
	return levelStart[5] + uint32((length-1)>>14)
}

// RegionToBins returns, in ascending order, every bin that could contain a
// record overlapping the 1-based inclusive interval [start, end]. end <= 0
// means "to the end of the reference". The returned bin 0 is always
// present. An empty result means the normalized interval is empty (start
// beyond end).
func RegionToBins(start, end int) []uint32 {
	const coordMask = 0x1FFFFFFF // 2^29 - 1

	if start <= 0 {
		start = 0
	} else {
		start--
	}
	start &= coordMask

	if end <= 0 {
		end = coordMask
	} else {
		end--
	}
	end &= coordMask

	if start > end {
		return nil
	}

	bins := make([]uint32, 0, 1+((end>>14)-(start>>14)+1))
	bins = append(bins, levelStart[0])
	for l := 1; l <= 5; l++ {
		s := levelShift[l-1]
		lo := levelStart[l] + uint32(start>>s)
		hi := levelStart[l] + uint32(end>>s)
		for b := lo; b <= hi; b++ {
			bins = append(bins, b)
		}
	}
	return bins
}
