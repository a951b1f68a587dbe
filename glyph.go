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

// Metrics holds the placement information stored with each glyph.
type Metrics struct {
	AdvanceX uint8 // horizontal distance to the next glyph, in pixels
	Left     int8  // left side bearing
	Top      int8  // top bearing
}

// Glyph is one glyph of a font, with its bitmap in packed form.
type Glyph struct {
	CodePoint rune
	Width     uint8
	Height    uint8
	Metrics

	// Data holds the packed bitmap, see [bitmap.Bitmap.Pack].
	Data []byte

	// Offset is the position of Data within the bitmap section of
	// the file.  It is set by the writer and by the reader.
	Offset uint32
}

// appendRecord appends the 13 byte glyph table record for g.
func (g *Glyph) appendRecord(buf []byte) []byte {
	buf = append(buf,
		g.Width,
		g.Height,
		g.AdvanceX,
		byte(g.Left),
		0, // padding
		byte(g.Top),
		0, // padding
	)
	buf = ByteOrder.AppendUint16(buf, uint16(len(g.Data)))
	buf = ByteOrder.AppendUint32(buf, g.Offset)
	return buf
}

// decodeGlyphRecord parses a 13 byte glyph record.  It returns the glyph
// (without data) and the data length.
func decodeGlyphRecord(buf []byte) (*Glyph, uint16) {
	g := &Glyph{
		Width:  buf[0],
		Height: buf[1],
		Metrics: Metrics{
			AdvanceX: buf[2],
			Left:     int8(buf[3]),
			Top:      int8(buf[5]),
		},
		Offset: ByteOrder.Uint32(buf[9:]),
	}
	return g, ByteOrder.Uint16(buf[7:])
}
