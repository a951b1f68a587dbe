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

// Epdfgen converts a TrueType or OpenType font into an EPDF bitmap font.
//
// Usage:
//
//	epdfgen [options] font.ttf [output.epdfont]
//
// If no output file is given, the name is derived from the font's family
// name.  The font name "go" selects the built-in Go Regular font.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/epdf/bitmap"
	"seehuhn.de/go/epdf/generate"
	"seehuhn.de/go/epdf/render"
)

func main() {
	size := flag.Float64("size", 24, "font size in points")
	dpi := flag.Float64("dpi", 72, "output resolution")
	twoBit := flag.Bool("2bit", false, "write 2-bit grayscale glyphs")
	antiAlias := flag.Bool("aa", false, "anti-alias 1-bit glyphs, using -threshold")
	threshold := flag.Uint("threshold", 127, "coverage cut-off for anti-aliased 1-bit glyphs (0-255)")
	gridFit := flag.Bool("gridfit", false, "hint glyph outlines")
	lineSpacing := flag.Int("linespacing", 0, "extra pixels between lines")
	charSpacing := flag.Int("charspacing", 0, "extra pixels between characters")
	oldAlign := flag.Bool("oldalign", false, "put all line spacing below the glyphs")
	vertical := flag.Bool("vertical", false, "rotate glyphs for sideways reading")
	proportional := flag.Bool("proportional", false, "use the advance width of each glyph as its bitmap width")
	squeeze := flag.Bool("squeeze", false, "scale down glyphs which are too wide for the cell")
	border := flag.Bool("border", false, "draw the glyph cell outline")
	ref := flag.String("ref", "", "reference character for the cell width")
	rangeList := flag.String("ranges", "", "code points to include, e.g. \"0x20-0x7E,U+4E00-U+9FFF\"")
	metrics := flag.String("metrics", "simple", "glyph metrics: \"simple\" or \"font\"")
	quiet := flag.Bool("q", false, "do not report progress")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("epdfgen: ")

	if flag.NArg() < 1 || flag.NArg() > 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] font.ttf [output.epdfont]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	var data []byte
	if fname := flag.Arg(0); fname == "go" {
		data = goregular.TTF
	} else {
		var err error
		data, err = os.ReadFile(fname)
		if err != nil {
			log.Fatal(err)
		}
	}

	opt := &render.Options{
		Size:             *size,
		DPI:              *dpi,
		Depth:            bitmap.Depth1,
		AntiAlias:        *antiAlias,
		LightThreshold:   uint8(min(*threshold, 255)),
		GridFit:          *gridFit,
		LineSpacing:      *lineSpacing,
		CharSpacing:      *charSpacing,
		OldLineAlignment: *oldAlign,
		Vertical:         *vertical,
		Proportional:     *proportional,
		Squeeze:          *squeeze,
		Border:           *border,
	}
	if *twoBit {
		opt.Depth = bitmap.Depth2
	}
	if *ref != "" {
		opt.Reference = []rune(*ref)[0]
	}

	g := &generate.Generator{
		Logger: log.Default(),
	}
	switch *metrics {
	case "simple":
		g.Metrics = generate.SimpleMetrics
	case "font":
		g.Metrics = generate.FontMetrics
	default:
		log.Fatalf("unknown metrics policy %q", *metrics)
	}
	if *rangeList != "" {
		ranges, err := generate.ParseRanges(*rangeList)
		if err != nil {
			log.Fatal(err)
		}
		g.Ranges = ranges
	}

	info, err := generate.ReadFontInfo(data)
	if err != nil {
		log.Fatal(err)
	}
	filter, err := generate.CMapFilter(info)
	if err != nil {
		log.Printf("no usable character map, trying all code points: %v", err)
	} else {
		g.Filter = filter
	}

	outName := flag.Arg(1)
	if outName == "" {
		outName = generate.FileName(info)
	}

	rnd, err := render.New(data, opt)
	if err != nil {
		log.Fatal(err)
	}
	defer rnd.Close()
	g.Source = rnd

	if !*quiet {
		w, h := rnd.CellSize()
		log.Printf("%s, cell size %dx%d, %d-bit", info.FamilyName, w, h, opt.Depth)
		g.Progress = func(done, total int) {
			if done%10000 == 0 || done == total {
				log.Printf("%d/%d code points", done, total)
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	table, stats, err := g.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Printf("interrupted, writing %d glyphs", table.Len())
	} else if err != nil {
		log.Fatal(err)
	}

	out, err := os.Create(outName)
	if err != nil {
		log.Fatal(err)
	}
	n, err := table.WriteTo(out)
	if err != nil {
		out.Close()
		log.Fatal(err)
	}
	err = out.Close()
	if err != nil {
		log.Fatal(err)
	}

	if !*quiet {
		log.Printf("%d glyphs (%d filtered, %d skipped), %d bytes written to %s",
			stats.Added, stats.Filtered, stats.Skipped, n, outName)
	}
}
