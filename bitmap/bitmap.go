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

// Package bitmap implements the pixel grids stored in EPDF font files.
//
// A grid is packed into a single continuous bit stream: pixels are visited
// in row-major order and each pixel contributes Depth bits, most significant
// bits first.  Rows are not aligned to byte boundaries; only the final byte
// of a glyph is padded with zero bits.
package bitmap

import (
	"errors"
	"fmt"
)

// Depth is the number of bits used per pixel.
type Depth uint8

// These are the bit depths supported by the EPDF format.
const (
	Depth1 Depth = 1 // monochrome
	Depth2 Depth = 2 // four gray levels
)

// IsValid reports whether d is a supported bit depth.
func (d Depth) IsValid() bool {
	return d == Depth1 || d == Depth2
}

// MaxValue returns the largest pixel value which can be stored at depth d.
func (d Depth) MaxValue() uint8 {
	return uint8(1)<<d - 1
}

func (d Depth) String() string {
	switch d {
	case Depth1:
		return "1-bit"
	case Depth2:
		return "2-bit"
	default:
		return fmt.Sprintf("Depth(%d)", uint8(d))
	}
}

// pixelsPerByte panics if d is not a valid depth.
func (d Depth) pixelsPerByte() int {
	if !d.IsValid() {
		panic("bitmap: invalid depth " + d.String())
	}
	return 8 / int(d)
}

// PackedLen returns the number of bytes needed to store a packed
// width×height grid at the given depth.
func PackedLen(width, height int, depth Depth) int {
	n := depth.pixelsPerByte()
	return (width*height + n - 1) / n
}

// ErrDepth is returned when a bitmap uses an unsupported bit depth.
var ErrDepth = errors.New("bitmap: unsupported bit depth")

// Bitmap is a rectangular grid of pixel values.
//
// Pix holds one byte per pixel in row-major order, so that the pixel at (x, y)
// is Pix[y*Width+x].  For Depth1, any non-zero value counts as a set pixel.
// For Depth2, only the low two bits of each value are used.
type Bitmap struct {
	Width, Height int
	Depth         Depth
	Pix           []uint8
}

// New allocates a blank bitmap.
func New(width, height int, depth Depth) *Bitmap {
	return &Bitmap{
		Width:  width,
		Height: height,
		Depth:  depth,
		Pix:    make([]uint8, width*height),
	}
}

// Check verifies that the bitmap dimensions and depth are consistent.
func (b *Bitmap) Check() error {
	if !b.Depth.IsValid() {
		return ErrDepth
	}
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("bitmap: invalid size %dx%d", b.Width, b.Height)
	}
	if len(b.Pix) != b.Width*b.Height {
		return fmt.Errorf("bitmap: %d pixel values for a %dx%d grid",
			len(b.Pix), b.Width, b.Height)
	}
	return nil
}

// At returns the pixel value at (x, y), or 0 if the position is outside
// the bitmap.
func (b *Bitmap) At(x, y int) uint8 {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return 0
	}
	return b.Pix[y*b.Width+x]
}

// Set sets the pixel at (x, y).  Positions outside the bitmap are ignored.
func (b *Bitmap) Set(x, y int, v uint8) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	b.Pix[y*b.Width+x] = v
}

// Normalize maps every pixel to the value it will have after packing:
// non-zero values become 1 for Depth1, and values are masked to
// two bits for Depth2.
func (b *Bitmap) Normalize() {
	for i, v := range b.Pix {
		b.Pix[i] = b.Depth.normalize(v)
	}
}

func (d Depth) normalize(v uint8) uint8 {
	if d == Depth1 {
		if v != 0 {
			return 1
		}
		return 0
	}
	return v & 0x03
}

// IsBlank reports whether all pixels are zero.
func (b *Bitmap) IsBlank() bool {
	for _, v := range b.Pix {
		if b.Depth.normalize(v) != 0 {
			return false
		}
	}
	return true
}
