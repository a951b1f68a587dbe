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

package bitmap

// packer appends fixed-width bit groups to a byte slice, most significant
// bits first.  Since the group width divides 8, a group never straddles
// a byte boundary.
type packer struct {
	bytes   []byte
	byteIdx int
	bitPos  int
	numBits int // bits per append operation
}

func newPacker(numElems int, depth Depth) *packer {
	n := depth.pixelsPerByte()
	return &packer{
		bytes:   make([]byte, (numElems+n-1)/n),
		numBits: int(depth),
	}
}

func (p *packer) appendBits(bits uint8) {
	p.bytes[p.byteIdx] |= bits << (8 - p.bitPos - p.numBits)
	p.bitPos += p.numBits
	if p.bitPos == 8 {
		p.byteIdx++
		p.bitPos = 0
	}
}

// Pack returns the packed representation of the bitmap.
// The result has length PackedLen(b.Width, b.Height, b.Depth).
//
// Pack panics if the bitmap depth is invalid.
func (b *Bitmap) Pack() []byte {
	p := newPacker(b.Width*b.Height, b.Depth)
	for y := 0; y < b.Height; y++ {
		row := b.Pix[y*b.Width : (y+1)*b.Width]
		for _, v := range row {
			p.appendBits(b.Depth.normalize(v))
		}
	}
	return p.bytes
}

// Unpack decodes packed pixel data into a new bitmap.
//
// Unpack never fails: pixels which lie beyond the end of data are zero.
func Unpack(data []byte, width, height int, depth Depth) *Bitmap {
	b := New(width, height, depth)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			b.Pix[y*width+x] = PixelAt(data, width, x, y, depth)
		}
	}
	return b
}

// PixelAt reads the pixel at (x, y) directly from packed data, for a grid
// with the given width.  If the pixel lies beyond the end of data, the
// value 0 is returned.
func PixelAt(data []byte, width, x, y int, depth Depth) uint8 {
	if x < 0 || y < 0 || x >= width {
		return 0
	}
	n := depth.pixelsPerByte()
	i := y*width + x
	byteIdx := i / n
	if byteIdx >= len(data) {
		return 0
	}
	shift := (n - 1 - i%n) * int(depth)
	return (data[byteIdx] >> shift) & depth.MaxValue()
}
