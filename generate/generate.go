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

// Package generate builds EPDF fonts by rendering a range of code points.
//
// Rendering runs sequentially, one code point at a time.  Code points which
// cannot be rendered are left out of the font; the resulting font is still
// valid, lookups for the missing code points simply fail.
package generate

import (
	"context"
	"errors"
	"log"

	"seehuhn.de/go/epdf"
	"seehuhn.de/go/epdf/bitmap"
	"seehuhn.de/go/epdf/render"
)

// Source produces the glyph bitmaps for a font.
// [*render.Renderer] implements this interface.
type Source interface {
	// CellSize returns the size of the glyph bitmaps.  All bitmaps have
	// the given height.
	CellSize() (width, height int)

	// Depth returns the bit depth of the glyph bitmaps.
	Depth() bitmap.Depth

	// Render draws the glyph for one code point.
	Render(c rune) (*render.Glyph, error)
}

// Generator renders glyphs and collects them in a [epdf.GlyphTable].
type Generator struct {
	Source Source

	// Ranges lists the candidate code points.
	// If this is nil, DefaultRanges is used.
	Ranges Ranges

	// Filter, if set, is called before rendering.  Code points for which
	// Filter returns false are left out of the font.
	Filter func(rune) bool

	// Metrics computes the advance and bearings stored for each glyph.
	// If this is nil, SimpleMetrics is used.
	Metrics MetricsPolicy

	// Progress, if set, is called after every code point with the number
	// of code points processed so far and the total number of candidates.
	Progress func(done, total int)

	// Logger, if set, receives a message for every glyph which failed
	// to render for reasons other than a missing glyph.
	Logger *log.Logger
}

// Stats summarizes a run of the generator.
type Stats struct {
	Candidates int // number of code points in the ranges
	Added      int // glyphs added to the font
	Filtered   int // code points rejected by the filter
	Skipped    int // code points which could not be rendered
}

// Run renders all candidate code points and returns the resulting glyph
// table.
//
// The context is checked between glyphs.  If it is cancelled, Run returns
// the glyphs rendered so far together with the context's error.
func (g *Generator) Run(ctx context.Context) (*epdf.GlyphTable, *Stats, error) {
	ranges := g.Ranges
	if ranges == nil {
		ranges = DefaultRanges
	}
	metrics := g.Metrics
	if metrics == nil {
		metrics = SimpleMetrics
	}

	_, height := g.Source.CellSize()
	table, err := epdf.NewGlyphTable(height, g.Source.Depth())
	if err != nil {
		return nil, nil, err
	}

	stats := &Stats{Candidates: ranges.Len()}
	done := 0
	for c := range ranges.All() {
		if err := ctx.Err(); err != nil {
			return table, stats, err
		}

		if g.Filter != nil && !g.Filter(c) {
			stats.Filtered++
		} else if glyph, err := g.Source.Render(c); err != nil {
			stats.Skipped++
			if g.Logger != nil && !errors.Is(err, render.ErrNoGlyph) {
				g.Logger.Printf("skipping U+%04X: %v", c, err)
			}
		} else {
			err = table.Add(c, glyph.Bitmap, metrics(glyph))
			if err != nil {
				return table, stats, err
			}
			stats.Added++
		}

		done++
		if g.Progress != nil {
			g.Progress(done, stats.Candidates)
		}
	}

	return table, stats, nil
}
