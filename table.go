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

	"golang.org/x/exp/slices"

	"seehuhn.de/go/epdf/bitmap"
)

// GlyphTable collects the glyphs of a font before it is written.
//
// All glyphs in a table share the same height and bit depth.  Adding a glyph
// for a code point which is already present replaces the earlier glyph.
type GlyphTable struct {
	height int
	depth  bitmap.Depth

	// Ascender and Descender are copied into the file header.
	Ascender, Descender int32

	glyphs map[rune]*Glyph
}

// NewGlyphTable returns an empty table for glyphs of the given height and
// bit depth.
func NewGlyphTable(height int, depth bitmap.Depth) (*GlyphTable, error) {
	if !depth.IsValid() {
		return nil, bitmap.ErrDepth
	}
	if height < 0 || height > MaxGlyphSize {
		return nil, fmt.Errorf("epdf: invalid font height %d", height)
	}
	t := &GlyphTable{
		height: height,
		depth:  depth,
		glyphs: make(map[rune]*Glyph),
	}
	return t, nil
}

// Height returns the pixel height of all glyphs in the table.
func (t *GlyphTable) Height() int {
	return t.height
}

// Depth returns the bit depth of all glyphs in the table.
func (t *GlyphTable) Depth() bitmap.Depth {
	return t.depth
}

// Len returns the number of glyphs in the table.
func (t *GlyphTable) Len() int {
	return len(t.glyphs)
}

// Add packs bm and stores it as the glyph for code point r.
//
// The bitmap height and depth must match the table.  If the table already
// has a glyph for r, it is replaced.
func (t *GlyphTable) Add(r rune, bm *bitmap.Bitmap, m Metrics) error {
	if r < 0 || r > unicode.MaxRune {
		return &ValidationError{CodePoint: r, Reason: "code point out of range"}
	}
	if bm == nil {
		return &ValidationError{CodePoint: r, Reason: "nil bitmap"}
	}
	if err := bm.Check(); err != nil {
		return &ValidationError{CodePoint: r, Reason: "malformed bitmap", Err: err}
	}
	if bm.Height != t.height {
		return &ValidationError{
			CodePoint: r,
			Reason:    fmt.Sprintf("bitmap height %d does not match font height %d", bm.Height, t.height),
		}
	}
	if bm.Depth != t.depth {
		return &ValidationError{
			CodePoint: r,
			Reason:    fmt.Sprintf("bitmap depth %s does not match font depth %s", bm.Depth, t.depth),
		}
	}
	if bm.Width > MaxGlyphSize {
		return &ValidationError{
			CodePoint: r,
			Reason:    fmt.Sprintf("bitmap width %d exceeds %d", bm.Width, MaxGlyphSize),
		}
	}

	t.glyphs[r] = &Glyph{
		CodePoint: r,
		Width:     uint8(bm.Width),
		Height:    uint8(bm.Height),
		Metrics:   m,
		Data:      bm.Pack(),
	}
	return nil
}

// Get returns the glyph for code point r.
func (t *GlyphTable) Get(r rune) (*Glyph, bool) {
	g, ok := t.glyphs[r]
	return g, ok
}

// Delete removes the glyph for code point r, if any.
func (t *GlyphTable) Delete(r rune) {
	delete(t.glyphs, r)
}

// CodePoints returns the code points of all glyphs in increasing order.
// This is the order of the glyph records in the file.
func (t *GlyphTable) CodePoints() []rune {
	codes := make([]rune, 0, len(t.glyphs))
	for r := range t.glyphs {
		codes = append(codes, r)
	}
	slices.Sort(codes)
	return codes
}
