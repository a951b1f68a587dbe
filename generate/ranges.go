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
	"fmt"
	"iter"
	"strconv"
	"strings"
	"unicode"
)

// Range is a closed range of code points.
type Range struct {
	First, Last rune
}

// Ranges is a list of code point ranges.  Overlapping ranges are allowed,
// but code points in the overlap are visited more than once by [Ranges.All].
type Ranges []Range

// DefaultRanges covers the Basic Multilingual Plane and the CJK
// extension blocks B to G.
var DefaultRanges = Ranges{
	{0x0000, 0xFFFF},
	{0x20000, 0x2A6DF}, // Extension B
	{0x2A700, 0x2EBEF}, // Extensions C to F
	{0x30000, 0x3134F}, // Extension G
}

// Len returns the number of code points in the ranges.
func (rr Ranges) Len() int {
	n := 0
	for _, r := range rr {
		if r.Last >= r.First {
			n += int(r.Last-r.First) + 1
		}
	}
	return n
}

// Contains reports whether c lies in one of the ranges.
func (rr Ranges) Contains(c rune) bool {
	for _, r := range rr {
		if r.First <= c && c <= r.Last {
			return true
		}
	}
	return false
}

// All iterates over all code points in the ranges, in the order given.
func (rr Ranges) All() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range rr {
			for c := r.First; c <= r.Last && c >= r.First; c++ {
				if !yield(c) {
					return
				}
			}
		}
	}
}

func (rr Ranges) String() string {
	parts := make([]string, len(rr))
	for i, r := range rr {
		if r.First == r.Last {
			parts[i] = fmt.Sprintf("U+%04X", r.First)
		} else {
			parts[i] = fmt.Sprintf("U+%04X-U+%04X", r.First, r.Last)
		}
	}
	return strings.Join(parts, ",")
}

// ParseRanges parses a comma separated list of code points and code point
// ranges, for example "0x20-0x7E,U+4E00-U+9FFF,65".  Numbers with a "0x" or
// "U+" prefix are hexadecimal, other numbers are decimal.
func ParseRanges(s string) (Ranges, error) {
	var res Ranges
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		first, err := parseCodePoint(lo)
		if err != nil {
			return nil, err
		}
		last := first
		if isRange {
			last, err = parseCodePoint(hi)
			if err != nil {
				return nil, err
			}
		}
		if last < first {
			return nil, fmt.Errorf("generate: empty range %q", part)
		}
		res = append(res, Range{First: first, Last: last})
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("generate: no code points in %q", s)
	}
	return res, nil
}

func parseCodePoint(s string) (rune, error) {
	s = strings.TrimSpace(s)
	base := 10
	for _, prefix := range []string{"0x", "0X", "U+", "u+"} {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			s = rest
			base = 16
			break
		}
	}
	x, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("generate: invalid code point %q", s)
	}
	if x > unicode.MaxRune {
		return 0, fmt.Errorf("generate: code point %q out of range", s)
	}
	return rune(x), nil
}
