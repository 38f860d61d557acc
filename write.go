// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bai

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/biogo/bai/bgzf"
)

var magic = [4]byte{'B', 'A', 'I', 0x1}

// WriteFile writes a BAI index for refs to a new file at path, following
// BAM's file-naming convention (§6.3) that the caller is expected to
// already have applied. If Write fails partway through, WriteFile removes
// the partially written file before returning the error (§4.5).
func WriteFile(path string, refs []*RefIndex, noCoordinateCount *uint64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	return Write(f, refs, noCoordinateCount)
}

// Write serializes refs — one RefIndex per reference, in dictionary order
// — to w as a BAI file (§6.1). noCoordinateCount, if non-nil, is written
// as the optional trailing unmapped-without-coordinate count; passing nil
// omits the trailer, producing an old-format index (§8 S8).
//
// Write does not delete partial output on error; that is the caller's
// responsibility when w is backed by a file the caller can remove (§4.5).
func Write(w io.Writer, refs []*RefIndex, noCoordinateCount *uint64) error {
	bw := bufio.NewWriter(w)

	if err := binary.Write(bw, binary.LittleEndian, magic); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(refs))); err != nil {
		return err
	}
	for i, r := range refs {
		if err := writeRef(bw, r); err != nil {
			return fmt.Errorf("bai: reference %d: %w", i, err)
		}
	}
	if noCoordinateCount != nil {
		if err := binary.Write(bw, binary.LittleEndian, *noCoordinateCount); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// writeRef writes one reference's ordinary bins followed by its meta-bin,
// if it has stats, so that n_bin on disk accounts for both (§6.1).
func writeRef(w io.Writer, r *RefIndex) error {
	if r == nil || r.IsNull() {
		if err := binary.Write(w, binary.LittleEndian, uint32(0)); err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, uint32(0))
	}

	r.sortChunks()
	bins := r.Bins()
	nBin := uint32(len(bins))
	if r.Stats != nil {
		nBin++
	}
	if err := binary.Write(w, binary.LittleEndian, nBin); err != nil {
		return err
	}
	for _, b := range bins {
		if err := binary.Write(w, binary.LittleEndian, b.Number); err != nil {
			return fmt.Errorf("failed to write bin number: %w", err)
		}
		if err := writeChunks(w, b.Chunks); err != nil {
			return err
		}
	}
	if r.Stats != nil {
		if err := binary.Write(w, binary.LittleEndian, uint32(MetaBin)); err != nil {
			return fmt.Errorf("failed to write meta-bin number: %w", err)
		}
		meta := []bgzf.Chunk{
			r.Stats.Chunk,
			{Begin: bgzf.OffsetFor(r.Stats.Mapped), End: bgzf.OffsetFor(r.Stats.Unmapped)},
		}
		if err := writeChunks(w, meta); err != nil {
			return err
		}
	}
	return writeIntervals(w, r.Intervals)
}

func writeChunks(w io.Writer, chunks []bgzf.Chunk) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(chunks))); err != nil {
		return fmt.Errorf("failed to write chunk count: %w", err)
	}
	for _, c := range chunks {
		if err := binary.Write(w, binary.LittleEndian, c.Begin.Compact()); err != nil {
			return fmt.Errorf("failed to write chunk begin: %w", err)
		}
		if err := binary.Write(w, binary.LittleEndian, c.End.Compact()); err != nil {
			return fmt.Errorf("failed to write chunk end: %w", err)
		}
	}
	return nil
}

func writeIntervals(w io.Writer, l LinearIndex) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(l))); err != nil {
		return err
	}
	for _, o := range l {
		if err := binary.Write(w, binary.LittleEndian, o.Compact()); err != nil {
			return fmt.Errorf("failed to write linear index entry: %w", err)
		}
	}
	return nil
}
