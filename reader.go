// seehuhn.de/go/epdf - bitmap fonts for e-ink readers
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package epdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"seehuhn.de/go/epdf/bitmap"
)

// Reader gives access to the glyphs of an EPDF font file.
//
// Only the header is read when the Reader is created.  All other data is
// read on demand, one glyph at a time.  A Reader has no mutable state, so
// concurrent lookups are safe whenever the underlying io.ReaderAt
// allows concurrent reads.
type Reader struct {
	r      io.ReaderAt
	size   int64
	header Header
}

// Open opens the named font file for reading.  After use, Close() must be
// called to close the file the Reader is reading from.
func Open(fname string) (*Reader, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	fi, err := fd.Stat()
	if err != nil {
		fd.Close()
		return nil, err
	}
	r, err := NewReader(fd, fi.Size())
	if err != nil {
		fd.Close()
		return nil, err
	}
	return r, nil
}

// Parse returns a Reader for a font file held in memory.
func Parse(data []byte) (*Reader, error) {
	return NewReader(bytes.NewReader(data), int64(len(data)))
}

// NewReader reads the header of a font file of the given size and returns
// a Reader for the file.
func NewReader(data io.ReaderAt, size int64) (*Reader, error) {
	r := &Reader{
		r:    data,
		size: size,
	}

	buf := make([]byte, HeaderSize)
	err := r.readAt(buf, 0)
	if err != nil {
		return nil, err
	}
	h, err := decodeHeader(buf)
	if err != nil {
		return nil, err
	}
	r.header = *h

	return r, nil
}

// Close closes the file underlying the reader.  This call only has an effect
// if the io.ReaderAt passed to NewReader() has a Close() method, or if the
// Reader was created using Open().  Otherwise, Close() has no effect and
// returns nil.
func (r *Reader) Close() error {
	closer, ok := r.r.(io.Closer)
	if ok {
		return closer.Close()
	}
	return nil
}

// Header returns a copy of the file header.
func (r *Reader) Header() Header {
	return r.header
}

// Height returns the font height in pixels.
func (r *Reader) Height() int {
	return int(r.header.Height)
}

// Depth returns the bit depth of the glyph bitmaps.
func (r *Reader) Depth() bitmap.Depth {
	return r.header.Depth
}

// NumGlyphs returns the number of glyphs in the font.
func (r *Reader) NumGlyphs() int {
	return int(r.header.GlyphCount)
}

// readAt fills buf with data from the given file position.
func (r *Reader) readAt(buf []byte, pos int64) error {
	if pos+int64(len(buf)) > r.size {
		return &FormatError{Pos: r.size, Err: errTruncated}
	}
	n, err := r.r.ReadAt(buf, pos)
	if n == len(buf) {
		return nil
	}
	if err == nil || err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
		return &FormatError{Pos: pos + int64(n), Err: errTruncated}
	}
	return fmt.Errorf("epdf: read at byte %d: %w", pos, err)
}

func (r *Reader) interval(i int) (Interval, error) {
	var buf [IntervalRecordSize]byte
	pos := int64(r.header.OffsetIntervals) + int64(i)*IntervalRecordSize
	err := r.readAt(buf[:], pos)
	if err != nil {
		return Interval{}, err
	}
	return decodeInterval(buf[:]), nil
}

// Intervals returns the interval table of the font.
func (r *Reader) Intervals() ([]Interval, error) {
	n := int64(r.header.IntervalCount)
	start := int64(r.header.OffsetIntervals)
	if start+n*IntervalRecordSize > r.size {
		return nil, &FormatError{Pos: r.size, Err: errTruncated}
	}

	buf := make([]byte, n*IntervalRecordSize)
	err := r.readAt(buf, start)
	if err != nil {
		return nil, err
	}
	res := make([]Interval, n)
	for i := range res {
		res[i] = decodeInterval(buf[i*IntervalRecordSize:])
	}
	return res, nil
}

// findInterval uses binary search to locate the interval containing c.
func (r *Reader) findInterval(c rune) (Interval, bool, error) {
	lo, hi := 0, int(r.header.IntervalCount)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		iv, err := r.interval(mid)
		if err != nil {
			return Interval{}, false, err
		}
		switch {
		case c < iv.Start:
			hi = mid
		case c > iv.End:
			lo = mid + 1
		default:
			return iv, true, nil
		}
	}
	return Interval{}, false, nil
}

// Lookup returns the glyph for code point c, including its packed bitmap.
//
// If the font has no glyph for c, a *NotFoundError is returned.
// If the font tables point outside the file, a *CorruptIndexError is
// returned.
func (r *Reader) Lookup(c rune) (*Glyph, error) {
	iv, ok, err := r.findInterval(c)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NotFoundError{CodePoint: c}
	}
	idx := uint64(iv.IndexOffset) + uint64(c-iv.Start)
	return r.glyphAt(c, idx)
}

func (r *Reader) glyphAt(c rune, idx uint64) (*Glyph, error) {
	if idx >= uint64(r.header.GlyphCount) {
		return nil, &CorruptIndexError{
			CodePoint: c,
			Index:     uint32(idx),
			Reason:    fmt.Sprintf("glyph count is %d", r.header.GlyphCount),
		}
	}

	var buf [GlyphRecordSize]byte
	pos := int64(r.header.OffsetGlyphs) + int64(idx)*GlyphRecordSize
	err := r.readAt(buf[:], pos)
	if err != nil {
		return nil, err
	}
	g, dataLen := decodeGlyphRecord(buf[:])
	g.CodePoint = c

	end := uint64(g.Offset) + uint64(dataLen)
	if blobSize := uint64(r.header.BitmapSize()); end > blobSize {
		return nil, &CorruptIndexError{
			CodePoint: c,
			Index:     uint32(idx),
			Reason:    fmt.Sprintf("bitmap data %d-%d outside %d byte bitmap section", g.Offset, end, blobSize),
		}
	}

	// A truncated bitmap section gives short data, and the missing
	// pixels read as zero.
	dataPos := int64(r.header.OffsetBitmaps) + int64(g.Offset)
	n := min(int64(dataLen), max(r.size-dataPos, 0))
	g.Data = make([]byte, n)
	err = r.readAt(g.Data, dataPos)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Bitmap returns the unpacked bitmap of the glyph for code point c.
func (r *Reader) Bitmap(c rune) (*bitmap.Bitmap, error) {
	g, err := r.Lookup(c)
	if err != nil {
		return nil, err
	}
	return bitmap.Unpack(g.Data, int(g.Width), int(g.Height), r.header.Depth), nil
}

// Glyphs iterates over all glyphs of the font, in code point order.
// If an error occurs, it is yielded together with a nil glyph and the
// iteration stops.
func (r *Reader) Glyphs() iter.Seq2[*Glyph, error] {
	return func(yield func(*Glyph, error) bool) {
		intervals, err := r.Intervals()
		if err != nil {
			yield(nil, err)
			return
		}
		for _, iv := range intervals {
			for c := iv.Start; c <= iv.End && c >= iv.Start; c++ {
				g, err := r.glyphAt(c, uint64(iv.IndexOffset)+uint64(c-iv.Start))
				if err != nil {
					yield(nil, err)
					return
				}
				if !yield(g, nil) {
					return
				}
			}
		}
	}
}
