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
	"errors"
	"fmt"
	"strconv"
)

var (
	errMagic     = errors.New("invalid magic number")
	errTruncated = errors.New("unexpected end of file")
	errDepthFlag = errors.New("invalid bit depth flag")
)

// FormatError indicates that a file is not a valid EPDF font file.
type FormatError struct {
	Pos int64
	Err error
}

func (err *FormatError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	tail := ""
	if err.Pos > 0 {
		tail = " (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
	}
	return "epdf: not a valid font file" + middle + tail
}

func (err *FormatError) Unwrap() error {
	return err.Err
}

// ValidationError is returned when a glyph cannot be added to a
// [GlyphTable].
type ValidationError struct {
	CodePoint rune
	Reason    string
	Err       error
}

func (err *ValidationError) Error() string {
	msg := "epdf: invalid glyph " + formatCodePoint(err.CodePoint) + ": " + err.Reason
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *ValidationError) Unwrap() error {
	return err.Err
}

// NotFoundError is returned when a font has no glyph for a code point.
type NotFoundError struct {
	CodePoint rune
}

func (err *NotFoundError) Error() string {
	return "epdf: no glyph for " + formatCodePoint(err.CodePoint)
}

// CorruptIndexError indicates that the interval table or the glyph table
// of a font file points outside the data it describes.
type CorruptIndexError struct {
	CodePoint rune
	Index     uint32
	Reason    string
}

func (err *CorruptIndexError) Error() string {
	return fmt.Sprintf("epdf: corrupt index for %s (glyph %d): %s",
		formatCodePoint(err.CodePoint), err.Index, err.Reason)
}

func formatCodePoint(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}
