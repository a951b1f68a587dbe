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

// Package render rasterizes TrueType and OpenType glyphs into bitmaps
// suitable for EPDF fonts.
//
// All glyphs are drawn into a cell of fixed height.  The cell width is
// either the advance width of a reference character (by default U+5750 "坐",
// which gives a square cell for CJK fonts), or the advance width of each
// individual glyph.
package render

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/epdf/bitmap"
)

// ErrNoGlyph is returned by [Renderer.Render] for code points which the
// font does not map to a glyph.
var ErrNoGlyph = errors.New("render: no glyph in font")

// maxCell is the largest cell dimension which fits the EPDF glyph records.
const maxCell = 255

// Options control how glyphs are rendered.
// The zero value selects 12pt, 72dpi, 1-bit output without anti-aliasing.
type Options struct {
	Size float64 // font size in points
	DPI  float64

	Depth bitmap.Depth

	// AntiAlias enables the LightThreshold cut-off for 1-bit output.
	// Without anti-aliasing, pixels with at least 50% coverage are set.
	// 2-bit output is always anti-aliased.
	AntiAlias bool

	// LightThreshold is the coverage (0-255) a pixel must exceed to be
	// set in anti-aliased 1-bit output.  The value 0 selects 127.
	LightThreshold uint8

	// GridFit enables hinting, snapping outlines to the pixel grid.
	GridFit bool

	LineSpacing int // extra pixels between lines
	CharSpacing int // extra pixels between characters

	// OldLineAlignment places all of the line spacing below the glyph,
	// instead of distributing it evenly above and below.
	OldLineAlignment bool

	// Vertical rotates all glyphs by 90 degrees clockwise, for reading
	// with the device turned sideways.
	Vertical bool

	// Proportional makes each glyph as wide as its advance width,
	// instead of using the same width for all glyphs.
	Proportional bool

	// Squeeze horizontally scales glyphs which are too wide for their
	// cell, instead of clipping them.
	Squeeze bool

	// Border draws the outline of the glyph cell.
	Border bool

	// Reference is the character which determines the cell width.
	// If it is zero or not present in the font, U+5750 and then "M" are
	// tried.
	Reference rune
}

// Glyph is a rendered glyph.
type Glyph struct {
	Bitmap *bitmap.Bitmap

	// Advance is the distance to the next glyph in pixels, including the
	// character spacing.
	Advance int

	// Baseline is the distance from the top of the bitmap to the baseline.
	Baseline int
}

// Renderer draws glyphs of one font at one size.
// A Renderer must not be used concurrently.
type Renderer struct {
	font *opentype.Font
	face font.Face
	buf  sfnt.Buffer
	opt  Options

	cellWidth, cellHeight int
	baseline              int
	penX                  int
}

// New creates a renderer for the font in data, which must be in TrueType
// or OpenType format.
func New(data []byte, opt *Options) (*Renderer, error) {
	r := &Renderer{}
	if opt != nil {
		r.opt = *opt
	}
	if r.opt.Size == 0 {
		r.opt.Size = 12
	}
	if r.opt.DPI == 0 {
		r.opt.DPI = 72
	}
	if r.opt.Depth == 0 {
		r.opt.Depth = bitmap.Depth1
	}
	if r.opt.LightThreshold == 0 {
		r.opt.LightThreshold = 127
	}
	if !r.opt.Depth.IsValid() {
		return nil, bitmap.ErrDepth
	}
	if r.opt.Size < 0 || r.opt.DPI < 0 {
		return nil, fmt.Errorf("render: invalid size %gpt at %gdpi", r.opt.Size, r.opt.DPI)
	}
	if r.opt.Vertical && r.opt.Proportional {
		return nil, errors.New("render: vertical glyphs cannot be proportional")
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	hinting := font.HintingNone
	if r.opt.GridFit {
		hinting = font.HintingFull
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    r.opt.Size,
		DPI:     r.opt.DPI,
		Hinting: hinting,
	})
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	r.font = f
	r.face = face

	err = r.measure()
	if err != nil {
		face.Close()
		return nil, err
	}
	return r, nil
}

// Close releases the resources held by the renderer.
func (r *Renderer) Close() error {
	return r.face.Close()
}

func (r *Renderer) measure() error {
	m := r.face.Metrics()
	ascent := m.Ascent.Ceil()
	descent := m.Descent.Ceil()

	r.cellHeight = ascent + descent + r.opt.LineSpacing
	top := r.opt.LineSpacing / 2
	if r.opt.OldLineAlignment {
		top = 0
	}
	r.baseline = top + ascent
	r.penX = r.opt.CharSpacing / 2

	var advance fixed.Int26_6
	found := false
	for _, ref := range []rune{r.opt.Reference, '坐', 'M'} {
		if ref == 0 || !r.HasGlyph(ref) {
			continue
		}
		adv, ok := r.face.GlyphAdvance(ref)
		if ok {
			advance = adv
			found = true
			break
		}
	}
	if !found {
		advance = m.Height
	}
	r.cellWidth = advance.Ceil() + r.opt.CharSpacing

	w, h := r.CellSize()
	if w <= 0 || h <= 0 || w > maxCell || h > maxCell {
		return fmt.Errorf("render: glyph cell %dx%d outside 1x1 to %dx%d", w, h, maxCell, maxCell)
	}
	return nil
}

// CellSize returns the size of the bitmaps produced by the renderer.
// If proportional rendering is enabled, only the height is fixed and
// the width is that of the reference character.
func (r *Renderer) CellSize() (width, height int) {
	if r.opt.Vertical {
		return r.cellHeight, r.cellWidth
	}
	return r.cellWidth, r.cellHeight
}

// Depth returns the bit depth of the rendered bitmaps.
func (r *Renderer) Depth() bitmap.Depth {
	return r.opt.Depth
}

// HasGlyph reports whether the font maps c to a glyph.
func (r *Renderer) HasGlyph(c rune) bool {
	idx, err := r.font.GlyphIndex(&r.buf, c)
	return err == nil && idx != 0
}

// Render draws the glyph for code point c.
//
// If the font has no glyph for c, an error wrapping [ErrNoGlyph] is
// returned.
func (r *Renderer) Render(c rune) (*Glyph, error) {
	if !r.HasGlyph(c) {
		return nil, fmt.Errorf("%w: U+%04X", ErrNoGlyph, c)
	}
	bounds, advance, ok := r.face.GlyphBounds(c)
	if !ok {
		return nil, fmt.Errorf("%w: U+%04X", ErrNoGlyph, c)
	}

	cellWidth := r.cellWidth
	if r.opt.Proportional {
		cellWidth = max(advance.Ceil()+r.opt.CharSpacing, 0)
		if cellWidth > maxCell {
			return nil, fmt.Errorf("render: U+%04X is %d pixels wide", c, cellWidth)
		}
	}

	img := image.NewGray(image.Rect(0, 0, cellWidth, r.cellHeight))
	inkRight := r.penX + bounds.Max.X.Ceil()
	if r.opt.Squeeze && inkRight > cellWidth && cellWidth > 0 {
		wide := image.NewGray(image.Rect(0, 0, inkRight, r.cellHeight))
		r.draw(wide, c)
		xdraw.ApproxBiLinear.Scale(img, img.Bounds(), wide, wide.Bounds(), xdraw.Src, nil)
	} else {
		r.draw(img, c)
	}

	bm := r.quantize(img)
	if r.opt.Border {
		drawBorder(bm)
	}
	if r.opt.Vertical {
		bm = rotate(bm)
	}

	g := &Glyph{
		Bitmap:   bm,
		Advance:  advance.Ceil() + r.opt.CharSpacing,
		Baseline: r.baseline,
	}
	if r.opt.Vertical {
		// rotated glyphs have no horizontal baseline
		g.Advance = bm.Width
		g.Baseline = 0
	}
	return g, nil
}

func (r *Renderer) draw(dst *image.Gray, c rune) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: r.face,
		Dot:  fixed.P(r.penX, r.baseline),
	}
	d.DrawString(string(c))
}

// quantize converts glyph coverage to pixel values.
func (r *Renderer) quantize(img *image.Gray) *bitmap.Bitmap {
	b := img.Bounds()
	bm := bitmap.New(b.Dx(), b.Dy(), r.opt.Depth)

	var cutoff uint8 = 127
	if r.opt.AntiAlias {
		cutoff = r.opt.LightThreshold
	}
	for y := 0; y < bm.Height; y++ {
		for x := 0; x < bm.Width; x++ {
			v := img.GrayAt(b.Min.X+x, b.Min.Y+y).Y
			switch r.opt.Depth {
			case bitmap.Depth2:
				bm.Pix[y*bm.Width+x] = v >> 6
			default:
				if v > cutoff {
					bm.Pix[y*bm.Width+x] = 1
				}
			}
		}
	}
	return bm
}

func drawBorder(bm *bitmap.Bitmap) {
	v := bm.Depth.MaxValue()
	for x := 0; x < bm.Width; x++ {
		bm.Set(x, 0, v)
		bm.Set(x, bm.Height-1, v)
	}
	for y := 0; y < bm.Height; y++ {
		bm.Set(0, y, v)
		bm.Set(bm.Width-1, y, v)
	}
}

// rotate returns bm turned by 90 degrees clockwise.
func rotate(bm *bitmap.Bitmap) *bitmap.Bitmap {
	res := bitmap.New(bm.Height, bm.Width, bm.Depth)
	for y := 0; y < bm.Height; y++ {
		for x := 0; x < bm.Width; x++ {
			res.Set(bm.Height-1-y, x, bm.At(x, y))
		}
	}
	return res
}
