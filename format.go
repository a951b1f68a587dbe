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
	"encoding/binary"

	"seehuhn.de/go/epdf/bitmap"
)

// ByteOrder is the byte order of all multi-byte integers in an EPDF file.
// Firmware reading the files must use the same order.
var ByteOrder = binary.LittleEndian

// Magic is the signature at the start of every EPDF file.
const Magic = "EPDF"

// Sizes of the fixed-size parts of a font file, in bytes.
const (
	HeaderSize         = 48
	IntervalRecordSize = 12
	GlyphRecordSize    = 13
)

// Limits imposed by the field widths of the file format.
const (
	MaxGlyphSize  = 255 // glyph width and height
	MaxDataLength = 1<<16 - 1
)

// Header is the fixed-size header at the start of a font file.
type Header struct {
	IntervalCount uint32
	FileSize      uint32
	Height        uint32
	GlyphCount    uint32

	// Ascender and Descender are not used by current readers and
	// are normally zero.
	Ascender  int32
	Descender int32

	Depth bitmap.Depth

	OffsetIntervals uint32
	OffsetGlyphs    uint32
	OffsetBitmaps   uint32
}

// BitmapSize returns the length of the bitmap data section, as implied
// by the header.  The result is zero if the header is inconsistent.
func (h *Header) BitmapSize() uint32 {
	if h.FileSize < h.OffsetBitmaps {
		return 0
	}
	return h.FileSize - h.OffsetBitmaps
}

// appendBinary appends the 48 byte encoding of the header to buf.
func (h *Header) appendBinary(buf []byte) []byte {
	var is2Bit uint32
	if h.Depth == bitmap.Depth2 {
		is2Bit = 1
	}

	buf = append(buf, Magic...)
	buf = ByteOrder.AppendUint32(buf, h.IntervalCount)
	buf = ByteOrder.AppendUint32(buf, h.FileSize)
	buf = ByteOrder.AppendUint32(buf, h.Height)
	buf = ByteOrder.AppendUint32(buf, h.GlyphCount)
	buf = ByteOrder.AppendUint32(buf, uint32(h.Ascender))
	buf = ByteOrder.AppendUint32(buf, 0) // reserved
	buf = ByteOrder.AppendUint32(buf, uint32(h.Descender))
	buf = ByteOrder.AppendUint32(buf, is2Bit)
	buf = ByteOrder.AppendUint32(buf, h.OffsetIntervals)
	buf = ByteOrder.AppendUint32(buf, h.OffsetGlyphs)
	buf = ByteOrder.AppendUint32(buf, h.OffsetBitmaps)
	return buf
}

// decodeHeader parses the first HeaderSize bytes of buf.
func decodeHeader(buf []byte) (*Header, error) {
	if len(buf) < HeaderSize {
		return nil, &FormatError{Pos: int64(len(buf)), Err: errTruncated}
	}
	if string(buf[:4]) != Magic {
		return nil, &FormatError{Err: errMagic}
	}

	h := &Header{
		IntervalCount:   ByteOrder.Uint32(buf[0x04:]),
		FileSize:        ByteOrder.Uint32(buf[0x08:]),
		Height:          ByteOrder.Uint32(buf[0x0C:]),
		GlyphCount:      ByteOrder.Uint32(buf[0x10:]),
		Ascender:        int32(ByteOrder.Uint32(buf[0x14:])),
		Descender:       int32(ByteOrder.Uint32(buf[0x1C:])),
		OffsetIntervals: ByteOrder.Uint32(buf[0x24:]),
		OffsetGlyphs:    ByteOrder.Uint32(buf[0x28:]),
		OffsetBitmaps:   ByteOrder.Uint32(buf[0x2C:]),
	}
	switch ByteOrder.Uint32(buf[0x20:]) {
	case 0:
		h.Depth = bitmap.Depth1
	case 1:
		h.Depth = bitmap.Depth2
	default:
		return nil, &FormatError{Pos: 0x20, Err: errDepthFlag}
	}
	return h, nil
}
