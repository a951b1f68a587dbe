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

package generate

import (
	"seehuhn.de/go/epdf"
	"seehuhn.de/go/epdf/render"
)

// MetricsPolicy decides the advance width and bearings stored for a glyph.
type MetricsPolicy func(g *render.Glyph) epdf.Metrics

// SimpleMetrics uses the bitmap width as the advance width and sets both
// bearings to zero.  Since every bitmap covers its whole glyph cell, this
// is sufficient for readers which place glyphs cell by cell.
func SimpleMetrics(g *render.Glyph) epdf.Metrics {
	return epdf.Metrics{
		AdvanceX: clampUint8(g.Bitmap.Width),
	}
}

// FontMetrics uses the advance width reported by the renderer, and stores
// the baseline position as the top bearing.
func FontMetrics(g *render.Glyph) epdf.Metrics {
	return epdf.Metrics{
		AdvanceX: clampUint8(g.Advance),
		Top:      clampInt8(g.Baseline),
	}
}

func clampUint8(x int) uint8 {
	return uint8(min(max(x, 0), 255))
}

func clampInt8(x int) int8 {
	return int8(min(max(x, -128), 127))
}
