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

// Epdfdump prints the contents of an EPDF bitmap font.
//
// Usage:
//
//	epdfdump [-c chars] [-u U+XXXX,...] [-v] font.epdfont
//
// Without -c or -u, the file header and the interval table are shown.
// The -v flag checks the file for structural problems.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"
	"golang.org/x/text/unicode/runenames"

	"seehuhn.de/go/epdf"
	"seehuhn.de/go/epdf/bitmap"
	"seehuhn.de/go/epdf/generate"
)

var (
	blocks = []string{"  ", "░░", "▒▒", "██"}
	ascii  = []string{"  ", "..", "++", "##"}
)

func main() {
	chars := flag.String("c", "", "characters to draw")
	codes := flag.String("u", "", "code points to draw, e.g. \"U+4E00,0x41-0x43\"")
	verify := flag.Bool("v", false, "validate the file structure")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("epdfdump: ")

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] font.epdfont\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	r, err := epdf.Open(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()

	var todo []rune
	todo = append(todo, []rune(*chars)...)
	if *codes != "" {
		ranges, err := generate.ParseRanges(*codes)
		if err != nil {
			log.Fatal(err)
		}
		for c := range ranges.All() {
			todo = append(todo, c)
		}
	}

	if *verify {
		err := r.Validate()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("file structure is valid")
	}

	if len(todo) == 0 {
		err = showHeader(r)
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	shades := ascii
	if term.IsTerminal(int(os.Stdout.Fd())) {
		shades = blocks
	}
	for _, c := range todo {
		err := showGlyph(r, c, shades)
		var notFound *epdf.NotFoundError
		if errors.As(err, &notFound) {
			fmt.Printf("U+%04X: not in font\n\n", c)
		} else if err != nil {
			log.Fatal(err)
		}
	}
}

func showHeader(r *epdf.Reader) error {
	h := r.Header()
	fmt.Printf("height:    %d\n", h.Height)
	fmt.Printf("depth:     %s\n", h.Depth)
	fmt.Printf("ascender:  %d\n", h.Ascender)
	fmt.Printf("descender: %d\n", h.Descender)
	fmt.Printf("glyphs:    %d\n", h.GlyphCount)
	fmt.Printf("file size: %d\n", h.FileSize)
	fmt.Printf("sections:  intervals@%d glyphs@%d bitmaps@%d\n",
		h.OffsetIntervals, h.OffsetGlyphs, h.OffsetBitmaps)

	intervals, err := r.Intervals()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("%d intervals\n", len(intervals))
	for _, iv := range intervals {
		fmt.Printf("  U+%04X-U+%04X  %6d glyphs, first index %d\n",
			iv.Start, iv.End, iv.Len(), iv.IndexOffset)
	}
	return nil
}

func showGlyph(r *epdf.Reader, c rune, shades []string) error {
	g, err := r.Lookup(c)
	if err != nil {
		return err
	}
	bm := bitmap.Unpack(g.Data, int(g.Width), int(g.Height), r.Depth())

	name := runenames.Name(c)
	if name == "" {
		name = "<unnamed>"
	}
	fmt.Printf("U+%04X %s: %dx%d, advance %d, left %d, top %d, %d bytes\n",
		c, name, g.Width, g.Height, g.AdvanceX, g.Left, g.Top, len(g.Data))

	// a 1-bit pixel is drawn with the darkest shade
	scale := 3 / int(r.Depth().MaxValue())
	var line strings.Builder
	for y := 0; y < bm.Height; y++ {
		line.Reset()
		line.WriteByte('|')
		for x := 0; x < bm.Width; x++ {
			line.WriteString(shades[int(bm.At(x, y))*scale])
		}
		line.WriteByte('|')
		fmt.Println(line.String())
	}
	fmt.Println()
	return nil
}
