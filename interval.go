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
	"golang.org/x/exp/slices"
)

// Interval describes a run of consecutive code points, Start to End
// inclusive.  IndexOffset is the glyph index of the glyph for Start.
type Interval struct {
	Start, End  rune
	IndexOffset uint32
}

// Len returns the number of code points in the interval.
func (iv Interval) Len() int {
	return int(iv.End-iv.Start) + 1
}

// Contains reports whether r lies in the interval.
func (iv Interval) Contains(r rune) bool {
	return iv.Start <= r && r <= iv.End
}

// GlyphIndex returns the index of the glyph for code point r.
// The result is only meaningful if iv.Contains(r).
func (iv Interval) GlyphIndex(r rune) uint32 {
	return iv.IndexOffset + uint32(r-iv.Start)
}

// MergeIntervals returns the shortest list of intervals which covers
// exactly the given code points.  The intervals are sorted, and
// IndexOffset is set so that glyph indices count up from zero in
// code point order.
//
// Duplicate code points are ignored.  The argument is not modified.
func MergeIntervals(codes []rune) []Interval {
	if len(codes) == 0 {
		return nil
	}
	sorted := slices.Clone(codes)
	slices.Sort(sorted)

	var res []Interval
	cur := Interval{Start: sorted[0], End: sorted[0]}
	var next uint32
	for _, c := range sorted[1:] {
		switch {
		case c == cur.End:
			// duplicate
		case c == cur.End+1:
			cur.End = c
		default:
			res = append(res, cur)
			next += uint32(cur.Len())
			cur = Interval{Start: c, End: c, IndexOffset: next}
		}
	}
	res = append(res, cur)
	return res
}

func (iv Interval) appendBinary(buf []byte) []byte {
	buf = ByteOrder.AppendUint32(buf, uint32(iv.Start))
	buf = ByteOrder.AppendUint32(buf, uint32(iv.End))
	buf = ByteOrder.AppendUint32(buf, iv.IndexOffset)
	return buf
}

func decodeInterval(buf []byte) Interval {
	return Interval{
		Start:       rune(ByteOrder.Uint32(buf[0:])),
		End:         rune(ByteOrder.Uint32(buf[4:])),
		IndexOffset: ByteOrder.Uint32(buf[8:]),
	}
}
