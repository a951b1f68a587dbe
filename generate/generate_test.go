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
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/epdf"
	"seehuhn.de/go/epdf/bitmap"
	"seehuhn.de/go/epdf/render"
)

// testSource renders every glyph as a bitmap with the code point's low
// bits in the first row.
type testSource struct {
	height  int
	fail    map[rune]bool
	missing map[rune]bool
}

func (s *testSource) CellSize() (int, int) { return 8, s.height }

func (s *testSource) Depth() bitmap.Depth { return bitmap.Depth1 }

func (s *testSource) Render(c rune) (*render.Glyph, error) {
	if s.fail[c] {
		return nil, errors.New("rasterizer failure")
	}
	if s.missing[c] {
		return nil, render.ErrNoGlyph
	}
	bm := bitmap.New(8, 3, bitmap.Depth1)
	for x := 0; x < 8; x++ {
		bm.Set(x, 0, uint8(c>>(7-x))&1)
	}
	return &render.Glyph{Bitmap: bm, Advance: 6, Baseline: 2}, nil
}

func TestRunSkipsFailures(t *testing.T) {
	var logBuf bytes.Buffer
	g := &Generator{
		Source: &testSource{
			height:  3,
			fail:    map[rune]bool{'c': true},
			missing: map[rune]bool{'e': true},
		},
		Ranges: Ranges{{'a', 'j'}},
		Logger: log.New(&logBuf, "", 0),
	}
	table, stats, err := g.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	wantStats := &Stats{Candidates: 10, Added: 8, Skipped: 2}
	if d := cmp.Diff(wantStats, stats); d != "" {
		t.Errorf("wrong stats (-want +got):\n%s", d)
	}

	logText := logBuf.String()
	if !strings.Contains(logText, "U+0063") {
		t.Errorf("rasterizer failure not logged: %q", logText)
	}
	if strings.Contains(logText, "U+0065") {
		t.Errorf("missing glyph was logged: %q", logText)
	}

	data, err := table.Encode()
	if err != nil {
		t.Fatal(err)
	}
	r, err := epdf.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Validate(); err != nil {
		t.Fatal(err)
	}
	for c := rune('a'); c <= 'j'; c++ {
		g, err := r.Lookup(c)
		if c == 'c' || c == 'e' {
			var notFound *epdf.NotFoundError
			if !errors.As(err, &notFound) {
				t.Errorf("Lookup(%q): got %v, want NotFoundError", c, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Lookup(%q): %v", c, err)
			continue
		}
		if g.Data[0] != byte(c) {
			t.Errorf("Lookup(%q): found glyph for %q", c, rune(g.Data[0]))
		}
		if g.AdvanceX != 8 || g.Left != 0 || g.Top != 0 {
			t.Errorf("Lookup(%q): unexpected metrics %+v", c, g.Metrics)
		}
	}
}

func TestRunFilter(t *testing.T) {
	g := &Generator{
		Source: &testSource{height: 3},
		Ranges: Ranges{{0x30, 0x39}, {0x41, 0x46}},
		Filter: func(c rune) bool { return c%2 == 0 },
	}
	table, stats, err := g.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Filtered != 8 || stats.Added != 8 {
		t.Errorf("wrong stats %+v", stats)
	}
	for _, c := range table.CodePoints() {
		if c%2 != 0 {
			t.Errorf("filtered code point %d in table", c)
		}
	}
}

func TestRunCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var progress []int
	g := &Generator{
		Source: &testSource{height: 3},
		Ranges: Ranges{{0, 99}},
		Progress: func(done, total int) {
			if total != 100 {
				t.Errorf("total = %d, want 100", total)
			}
			progress = append(progress, done)
			if done == 3 {
				cancel()
			}
		},
	}
	table, _, err := g.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if table.Len() != 3 {
		t.Errorf("table has %d glyphs, want 3", table.Len())
	}
	if d := cmp.Diff([]int{1, 2, 3}, progress); d != "" {
		t.Errorf("wrong progress (-want +got):\n%s", d)
	}

	// the partial table is a valid font
	data, err := table.Encode()
	if err != nil {
		t.Fatal(err)
	}
	r, err := epdf.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Validate(); err != nil {
		t.Error(err)
	}
}

func TestRunValidationError(t *testing.T) {
	// the source claims a cell height which its bitmaps do not have
	g := &Generator{
		Source: &testSource{height: 5},
		Ranges: Ranges{{'a', 'z'}},
	}
	_, _, err := g.Run(context.Background())
	var validation *epdf.ValidationError
	if !errors.As(err, &validation) {
		t.Errorf("got %v, want ValidationError", err)
	}
}

func TestMetricsPolicies(t *testing.T) {
	glyph := &render.Glyph{
		Bitmap:   bitmap.New(12, 20, bitmap.Depth1),
		Advance:  300,
		Baseline: 15,
	}
	if d := cmp.Diff(epdf.Metrics{AdvanceX: 12}, SimpleMetrics(glyph)); d != "" {
		t.Errorf("SimpleMetrics (-want +got):\n%s", d)
	}
	if d := cmp.Diff(epdf.Metrics{AdvanceX: 255, Top: 15}, FontMetrics(glyph)); d != "" {
		t.Errorf("FontMetrics (-want +got):\n%s", d)
	}
	glyph.Baseline = 200
	glyph.Advance = -3
	if d := cmp.Diff(epdf.Metrics{AdvanceX: 0, Top: 127}, FontMetrics(glyph)); d != "" {
		t.Errorf("FontMetrics (-want +got):\n%s", d)
	}
}

func TestEndToEnd(t *testing.T) {
	rnd, err := render.New(goregular.TTF, &render.Options{Size: 14, Depth: bitmap.Depth2})
	if err != nil {
		t.Fatal(err)
	}
	defer rnd.Close()

	info, err := ReadFontInfo(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	filter, err := CMapFilter(info)
	if err != nil {
		t.Fatal(err)
	}

	g := &Generator{
		Source:  rnd,
		Ranges:  Ranges{{0x20, 0x7E}, {0x4E00, 0x4E0F}},
		Filter:  filter,
		Metrics: FontMetrics,
	}
	table, stats, err := g.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Added != 0x7E-0x20+1 {
		t.Errorf("%d glyphs added, want %d", stats.Added, 0x7E-0x20+1)
	}
	if stats.Filtered != 16 {
		t.Errorf("%d code points filtered, want 16", stats.Filtered)
	}

	var buf bytes.Buffer
	if _, err := table.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	r, err := epdf.Parse(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Validate(); err != nil {
		t.Fatal(err)
	}
	intervals, err := r.Intervals()
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]epdf.Interval{{0x20, 0x7E, 0}}, intervals); d != "" {
		t.Errorf("wrong intervals (-want +got):\n%s", d)
	}

	want, err := rnd.Render('g')
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.Bitmap('g')
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(want.Bitmap, got); d != "" {
		t.Errorf("bitmap for 'g' differs (-want +got):\n%s", d)
	}

	_, err = r.Lookup(0x4E00)
	var notFound *epdf.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Lookup(U+4E00): got %v, want NotFoundError", err)
	}
}

func TestFileName(t *testing.T) {
	info, err := ReadFontInfo(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if got := FileName(info); got != "Go.epdfont" {
		t.Errorf("FileName() = %q, want %q", got, "Go.epdfont")
	}
}
