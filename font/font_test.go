// seehuhn.de/go/pdfout - serialise vector graphics as PDF
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

package font

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdfout"
)

func TestSubsetTag(t *testing.T) {
	tag := subsetTag([]byte("font program"))
	if len(tag) != 6 {
		t.Fatalf("tag %q has length %d, want 6", tag, len(tag))
	}
	for _, c := range tag {
		if c < 'A' || c > 'Z' {
			t.Errorf("tag %q contains %q", tag, c)
		}
	}
	if again := subsetTag([]byte("font program")); again != tag {
		t.Errorf("tag is not deterministic: %q != %q", again, tag)
	}
	if other := subsetTag([]byte("another font program")); other == tag {
		t.Errorf("different data produced the same tag %q", tag)
	}
}

func TestFitsLatin(t *testing.T) {
	cases := []struct {
		name   string
		glyphs []Glyph
		want   bool
	}{
		{
			name: "plain ascii",
			glyphs: []Glyph{
				{GID: 0, CID: 0},
				{GID: 5, CID: 65, Text: "A"},
				{GID: 6, CID: 66, Text: "B"},
			},
			want: true,
		},
		{
			name: "latin-1 accent",
			glyphs: []Glyph{
				{GID: 0, CID: 0},
				{GID: 9, CID: 0xe9, Text: "é"},
			},
			want: true,
		},
		{
			name: "code above 255",
			glyphs: []Glyph{
				{GID: 0, CID: 0},
				{GID: 5, CID: 300, Text: "A"},
			},
			want: false,
		},
		{
			name: "non-latin text",
			glyphs: []Glyph{
				{GID: 0, CID: 0},
				{GID: 5, CID: 65, Text: "α"},
			},
			want: false,
		},
		{
			name: "ligature",
			glyphs: []Glyph{
				{GID: 0, CID: 0},
				{GID: 5, CID: 65, Text: "ffi"},
			},
			want: false,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := &Subset{Glyphs: c.glyphs}
			if got := s.fitsLatin(); got != c.want {
				t.Errorf("fitsLatin = %v, want %v", got, c.want)
			}
		})
	}
}

func TestEncodeCompositeWidths(t *testing.T) {
	glyphs := []Glyph{
		{CID: 0, Width: 500},
		{CID: 1, Width: 600},
		{CID: 2, Width: 620},
		{CID: 10, Width: 400},
	}
	got := encodeCompositeWidths(glyphs)
	want := pdfout.Array{
		pdfout.Integer(0), pdfout.Array{
			pdfout.Number(500), pdfout.Number(600), pdfout.Number(620),
		},
		pdfout.Integer(10), pdfout.Array{pdfout.Number(400)},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("W array (-want +got):\n%s", d)
	}
}

func TestEncodeSimpleWidths(t *testing.T) {
	glyphs := []Glyph{
		{CID: 0, Width: 500},
		{CID: 65, Width: 600},
		{CID: 67, Width: 650},
	}
	first, last, widths := encodeSimpleWidths(glyphs[1:])
	if first != 65 || last != 67 {
		t.Errorf("range [%d, %d], want [65, 67]", first, last)
	}
	want := pdfout.Array{
		pdfout.Number(600), pdfout.Number(0), pdfout.Number(650),
	}
	if d := cmp.Diff(want, widths); d != "" {
		t.Errorf("Widths (-want +got):\n%s", d)
	}
}

func TestMakeToUnicode(t *testing.T) {
	glyphs := []Glyph{
		{CID: 0},
		{CID: 66, Text: "B"},
		{CID: 65, Text: "A"},
		{CID: 70}, // no text
	}
	info := makeToUnicode(glyphs, true)

	if !info.TwoByte {
		t.Error("TwoByte not set")
	}
	want := []toUnicodeSingle{
		{Code: 0, Text: "�"},
		{Code: 65, Text: "A"},
		{Code: 66, Text: "B"},
		{Code: 70, Text: "�"},
	}
	if d := cmp.Diff(want, info.Singles); d != "" {
		t.Errorf("singles (-want +got):\n%s", d)
	}

	if got := info.Single(info.Singles[1]); got != "<0041> <0041>" {
		t.Errorf("Single(A) = %q", got)
	}
	if got := info.CodeSpace(); got != "<0000> <ffff>" {
		t.Errorf("CodeSpace = %q", got)
	}
}
