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

package bitmap

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPackExample(t *testing.T) {
	b := &Bitmap{
		Width:  3,
		Height: 2,
		Depth:  Depth1,
		Pix: []uint8{
			1, 0, 1,
			0, 1, 0,
		},
	}
	packed := b.Pack()
	if d := cmp.Diff([]byte{0xA8}, packed); d != "" {
		t.Fatalf("packed data differs (-want +got):\n%s", d)
	}

	got := Unpack([]byte{0xA8}, 3, 2, Depth1)
	if d := cmp.Diff(b, got); d != "" {
		t.Errorf("unpacked bitmap differs (-want +got):\n%s", d)
	}
}

func TestPackNotRowAligned(t *testing.T) {
	// A 5-pixel row followed by a second row: the second row starts in
	// bit 2 of the first byte.
	b := &Bitmap{
		Width:  5,
		Height: 2,
		Depth:  Depth1,
		Pix: []uint8{
			1, 1, 1, 1, 1,
			0, 0, 0, 1, 1,
		},
	}
	want := []byte{0b11111000, 0b11000000}
	if d := cmp.Diff(want, b.Pack()); d != "" {
		t.Errorf("packed data differs (-want +got):\n%s", d)
	}
}

func TestPack2Bit(t *testing.T) {
	b := &Bitmap{
		Width:  3,
		Height: 2,
		Depth:  Depth2,
		Pix: []uint8{
			3, 2, 1,
			0, 1, 7, // 7 is masked to 3
		},
	}
	want := []byte{0b11_10_01_00, 0b01_11_0000}
	if d := cmp.Diff(want, b.Pack()); d != "" {
		t.Errorf("packed data differs (-want +got):\n%s", d)
	}
}

func TestOneBitCollapse(t *testing.T) {
	b := &Bitmap{Width: 4, Height: 1, Depth: Depth1, Pix: []uint8{0, 2, 255, 1}}
	got := Unpack(b.Pack(), 4, 1, Depth1)
	want := []uint8{0, 1, 1, 1}
	if d := cmp.Diff(want, got.Pix); d != "" {
		t.Errorf("unexpected pixels (-want +got):\n%s", d)
	}
}

func TestPackedLen(t *testing.T) {
	cases := []struct {
		w, h  int
		depth Depth
		want  int
	}{
		{0, 0, Depth1, 0},
		{0, 16, Depth2, 0},
		{1, 1, Depth1, 1},
		{8, 1, Depth1, 1},
		{3, 3, Depth1, 2},
		{1, 1, Depth2, 1},
		{4, 1, Depth2, 1},
		{5, 1, Depth2, 2},
		{16, 16, Depth1, 32},
		{16, 16, Depth2, 64},
	}
	for _, c := range cases {
		got := PackedLen(c.w, c.h, c.depth)
		if got != c.want {
			t.Errorf("PackedLen(%d, %d, %s) = %d, want %d", c.w, c.h, c.depth, got, c.want)
		}
		b := New(c.w, c.h, c.depth)
		if n := len(b.Pack()); n != c.want {
			t.Errorf("%dx%d %s: Pack returned %d bytes, want %d", c.w, c.h, c.depth, n, c.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, depth := range []Depth{Depth1, Depth2} {
		for range 100 {
			w := rng.Intn(40)
			h := rng.Intn(40)
			b := New(w, h, depth)
			for i := range b.Pix {
				b.Pix[i] = uint8(rng.Intn(int(depth.MaxValue()) + 1))
			}
			got := Unpack(b.Pack(), w, h, depth)
			if d := cmp.Diff(b, got); d != "" {
				t.Fatalf("%dx%d %s: round trip failed (-want +got):\n%s", w, h, depth, d)
			}
		}
	}
}

func TestPixelAtTruncated(t *testing.T) {
	data := []byte{0xFF}
	for i := 0; i < 16; i++ {
		want := uint8(1)
		if i >= 8 {
			want = 0
		}
		if got := PixelAt(data, 4, i%4, i/4, Depth1); got != want {
			t.Errorf("pixel %d: got %d, want %d", i, got, want)
		}
	}

	if got := PixelAt(nil, 10, 3, 2, Depth2); got != 0 {
		t.Errorf("empty data: got %d, want 0", got)
	}
	if got := PixelAt(data, 4, 5, 0, Depth1); got != 0 {
		t.Errorf("x outside row: got %d, want 0", got)
	}

	b := Unpack([]byte{0xE4}, 3, 3, Depth2)
	want := []uint8{
		3, 2, 1,
		0, 0, 0,
		0, 0, 0,
	}
	if d := cmp.Diff(want, b.Pix); d != "" {
		t.Errorf("unexpected pixels (-want +got):\n%s", d)
	}
}

func TestCheck(t *testing.T) {
	b := New(3, 2, Depth2)
	if err := b.Check(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	b.Pix = b.Pix[:5]
	if err := b.Check(); err == nil {
		t.Error("short pixel slice not detected")
	}
	b = New(3, 2, Depth(4))
	if err := b.Check(); err != ErrDepth {
		t.Errorf("got %v, want %v", err, ErrDepth)
	}
}

func TestAtSet(t *testing.T) {
	b := New(2, 2, Depth2)
	b.Set(1, 0, 3)
	b.Set(-1, 0, 3)
	b.Set(0, 2, 3)
	if got := b.At(1, 0); got != 3 {
		t.Errorf("At(1, 0) = %d, want 3", got)
	}
	if got := b.At(5, 5); got != 0 {
		t.Errorf("At(5, 5) = %d, want 0", got)
	}
	if b.IsBlank() {
		t.Error("bitmap with one set pixel reported as blank")
	}
}

func FuzzPackRoundTrip(f *testing.F) {
	f.Add([]byte{1, 0, 1, 0, 1, 0}, uint8(3), false)
	f.Add([]byte{3, 2, 1, 0, 1, 2, 3}, uint8(7), true)
	f.Fuzz(func(t *testing.T, pix []byte, width uint8, twoBit bool) {
		if width == 0 {
			return
		}
		w := int(width)
		h := len(pix) / w
		depth := Depth1
		if twoBit {
			depth = Depth2
		}
		b := &Bitmap{Width: w, Height: h, Depth: depth, Pix: pix[:w*h]}
		packed := b.Pack()
		if len(packed) != PackedLen(w, h, depth) {
			t.Fatalf("wrong packed length %d", len(packed))
		}
		got := Unpack(packed, w, h, depth)
		b.Normalize()
		if d := cmp.Diff(b, got); d != "" {
			t.Fatalf("round trip failed (-want +got):\n%s", d)
		}
	})
}
