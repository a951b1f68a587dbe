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

// Package epdf reads and writes EPDF bitmap font files.
//
// EPDF files store a sparse subset of Unicode as bit-packed 1-bit or 2-bit
// glyph bitmaps, for use by e-ink readers with little memory.  A reader can
// locate a single glyph without loading the whole file.
//
// A file consists of four sections, in this order:
//
//   - a 48 byte header,
//   - the interval table, one 12 byte record per run of consecutive
//     code points,
//   - the glyph table, one 13 byte record per glyph, sorted by code point,
//   - the bitmap data, the concatenation of all packed glyph bitmaps.
//
// All integers are stored in little-endian byte order, see [ByteOrder].
//
// A [GlyphTable] is used to create a font file:
//
//	t, err := epdf.NewGlyphTable(16, bitmap.Depth1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = t.Add('A', bm, epdf.Metrics{AdvanceX: 8})
//	...
//	_, err = t.WriteTo(out)
//
// A [Reader] is used to look up glyphs in an existing file:
//
//	f, err := epdf.Open("font.epdfont")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//	g, err := f.Lookup('A')
//
// Readers do not keep any per-lookup state, and can be used concurrently.
package epdf
