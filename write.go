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
	"errors"
	"io"
	"math"
)

var errTooLarge = errors.New("epdf: font data exceeds 4GiB")

// layout describes where every part of a glyph table goes in the file.
type layout struct {
	header    Header
	codes     []rune
	intervals []Interval
	offsets   []uint32 // bitmap offsets, indexed like codes
}

func (t *GlyphTable) layout() (*layout, error) {
	codes := t.CodePoints()
	intervals := MergeIntervals(codes)

	offsets := make([]uint32, len(codes))
	var blobSize uint64
	for i, r := range codes {
		offsets[i] = uint32(blobSize)
		blobSize += uint64(len(t.glyphs[r].Data))
		if blobSize > math.MaxUint32 {
			return nil, errTooLarge
		}
	}

	offsetIntervals := uint64(HeaderSize)
	offsetGlyphs := offsetIntervals + IntervalRecordSize*uint64(len(intervals))
	offsetBitmaps := offsetGlyphs + GlyphRecordSize*uint64(len(codes))
	fileSize := offsetBitmaps + blobSize
	if fileSize > math.MaxUint32 {
		return nil, errTooLarge
	}

	l := &layout{
		header: Header{
			IntervalCount:   uint32(len(intervals)),
			FileSize:        uint32(fileSize),
			Height:          uint32(t.height),
			GlyphCount:      uint32(len(codes)),
			Ascender:        t.Ascender,
			Descender:       t.Descender,
			Depth:           t.depth,
			OffsetIntervals: uint32(offsetIntervals),
			OffsetGlyphs:    uint32(offsetGlyphs),
			OffsetBitmaps:   uint32(offsetBitmaps),
		},
		codes:     codes,
		intervals: intervals,
		offsets:   offsets,
	}
	return l, nil
}

// Encode returns the font file for the glyphs in the table.
//
// The sections are written in the fixed order header, intervals, glyph
// records, bitmap data.  Glyph records and bitmaps are sorted by code point.
func (t *GlyphTable) Encode() ([]byte, error) {
	l, err := t.layout()
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, l.header.FileSize)
	buf = l.header.appendBinary(buf)
	for _, iv := range l.intervals {
		buf = iv.appendBinary(buf)
	}
	for i, r := range l.codes {
		rec := *t.glyphs[r]
		rec.Offset = l.offsets[i]
		buf = rec.appendRecord(buf)
	}
	for _, r := range l.codes {
		buf = append(buf, t.glyphs[r].Data...)
	}
	return buf, nil
}

// WriteTo writes the font file to w.
// This implements the [io.WriterTo] interface.
func (t *GlyphTable) WriteTo(w io.Writer) (int64, error) {
	data, err := t.Encode()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}
