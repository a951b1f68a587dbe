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
	"fmt"
	"unicode"

	"seehuhn.de/go/epdf/bitmap"
)

// Validate performs a full consistency check of the font file.
//
// Lookups tolerate some damage, for example truncated bitmap data.
// Validate instead checks that the header, the interval table and every
// glyph record agree with each other and with the file size.
func (r *Reader) Validate() error {
	h := &r.header

	if h.Height > MaxGlyphSize {
		return r.invalid(0x0C, "font height %d exceeds %d", h.Height, MaxGlyphSize)
	}

	// section placement
	intervalsEnd := uint64(h.OffsetIntervals) + IntervalRecordSize*uint64(h.IntervalCount)
	glyphsEnd := uint64(h.OffsetGlyphs) + GlyphRecordSize*uint64(h.GlyphCount)
	switch {
	case h.OffsetIntervals < HeaderSize:
		return r.invalid(0x24, "interval table overlaps header")
	case uint64(h.OffsetGlyphs) < intervalsEnd:
		return r.invalid(0x28, "glyph table overlaps interval table")
	case uint64(h.OffsetBitmaps) < glyphsEnd:
		return r.invalid(0x2C, "bitmap section overlaps glyph table")
	case h.FileSize < h.OffsetBitmaps:
		return r.invalid(0x08, "file size %d before start of bitmap section", h.FileSize)
	case int64(h.FileSize) > r.size:
		return &FormatError{Pos: r.size, Err: errTruncated}
	}

	// interval table
	intervals, err := r.Intervals()
	if err != nil {
		return err
	}
	var next uint64
	for i, iv := range intervals {
		pos := int64(h.OffsetIntervals) + int64(i)*IntervalRecordSize
		if iv.Start < 0 || iv.End < iv.Start || iv.End > unicode.MaxRune {
			return r.invalid(pos, "invalid interval %s-%s",
				formatCodePoint(iv.Start), formatCodePoint(iv.End))
		}
		if i > 0 && iv.Start <= intervals[i-1].End+1 {
			return r.invalid(pos, "interval %s-%s not separated from its predecessor",
				formatCodePoint(iv.Start), formatCodePoint(iv.End))
		}
		if uint64(iv.IndexOffset) != next {
			return r.invalid(pos+8, "interval index offset %d, expected %d", iv.IndexOffset, next)
		}
		next += uint64(iv.Len())
	}
	if next != uint64(h.GlyphCount) {
		return r.invalid(0x10, "intervals cover %d code points, but there are %d glyphs",
			next, h.GlyphCount)
	}

	// glyph records
	var expectedOffset uint32
	idx := 0
	for g, err := range r.Glyphs() {
		if err != nil {
			return err
		}
		if uint32(g.Height) != h.Height {
			pos := int64(h.OffsetGlyphs) + int64(idx)*GlyphRecordSize + 1
			return r.invalid(pos, "glyph %s has height %d, font height is %d",
				formatCodePoint(g.CodePoint), g.Height, h.Height)
		}
		want := bitmap.PackedLen(int(g.Width), int(g.Height), h.Depth)
		if len(g.Data) != want {
			return &CorruptIndexError{
				CodePoint: g.CodePoint,
				Reason:    fmt.Sprintf("%d bytes of bitmap data, expected %d", len(g.Data), want),
			}
		}
		if g.Offset != expectedOffset {
			return &CorruptIndexError{
				CodePoint: g.CodePoint,
				Reason:    fmt.Sprintf("bitmap data at offset %d, expected %d", g.Offset, expectedOffset),
			}
		}
		expectedOffset += uint32(len(g.Data))
		idx++
	}
	if expectedOffset != h.BitmapSize() {
		return r.invalid(0x08, "%d unused bytes in bitmap section", h.BitmapSize()-expectedOffset)
	}

	return nil
}

func (r *Reader) invalid(pos int64, format string, args ...any) error {
	return &FormatError{Pos: pos, Err: fmt.Errorf(format, args...)}
}
