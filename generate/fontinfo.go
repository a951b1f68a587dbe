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
	"strings"

	"seehuhn.de/go/sfnt"
)

// ReadFontInfo parses the tables of a TrueType or OpenType font.
func ReadFontInfo(data []byte) (*sfnt.Font, error) {
	return sfnt.Read(bytes.NewReader(data))
}

// CMapFilter returns a filter which accepts the code points mapped by
// the font's character map.  Used as [Generator.Filter], this avoids
// rendering code points which the font cannot display.
func CMapFilter(info *sfnt.Font) (func(rune) bool, error) {
	subtable, err := info.CMapTable.GetBest()
	if err != nil {
		return nil, err
	}
	return func(c rune) bool {
		return subtable.Lookup(c) != 0
	}, nil
}

// FileName returns a file name for an EPDF version of the font.
func FileName(info *sfnt.Font) string {
	name := strings.TrimSpace(info.FamilyName)
	if name == "" {
		name = "font"
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '×':
			return 'x'
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	return name + ".epdfont"
}
