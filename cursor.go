// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bai

import (
	"encoding/binary"
	"io"
)

// byteSource is the read-only random-access source a Cursor walks. It is
// satisfied by *mmap.ReaderAt and by *bytes.Reader (the latter is used by
// tests that exercise the parser without a real file).
type byteSource interface {
	ReadAt(p []byte, off int64) (int, error)
}

// Cursor is an explicit file-offset pointer over a byteSource, replacing
// the stateful "buffer with a hidden position" pattern of a conventional
// memory-mapped reader (§9 "explicit cursor" redesign note). Every read
// method advances pos by exactly the number of bytes it consumes and
// returns io.EOF (or io.ErrUnexpectedEOF, for a short read into a
// multi-byte field) when the source is exhausted.
type Cursor struct {
	src byteSource
	pos int64
}

// NewCursor returns a Cursor over src starting at byte offset 0.
func NewCursor(src byteSource) *Cursor { return &Cursor{src: src} }

// Pos returns the Cursor's current byte offset.
func (c *Cursor) Pos() int64 { return c.pos }

// Seek moves the Cursor to an absolute byte offset.
func (c *Cursor) Seek(pos int64) { c.pos = pos }

// Skip advances the Cursor by n bytes without reading them.
func (c *Cursor) Skip(n int64) { c.pos += n }

func (c *Cursor) read(buf []byte) error {
	n, err := c.src.ReadAt(buf, c.pos)
	c.pos += int64(n)
	if err != nil {
		if err == io.EOF && n == len(buf) {
			return nil
		}
		if err == io.EOF && n > 0 {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

// Bytes reads n bytes at the Cursor's current position and advances past
// them.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := c.read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Uint32 reads a little-endian uint32 at the Cursor's current position.
func (c *Cursor) Uint32() (uint32, error) {
	var buf [4]byte
	if err := c.read(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// Uint64 reads a little-endian uint64 at the Cursor's current position.
func (c *Cursor) Uint64() (uint64, error) {
	var buf [8]byte
	if err := c.read(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}
