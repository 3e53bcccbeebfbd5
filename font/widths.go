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
	"slices"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/pdfout"
)

// encodeCompositeWidths builds the W array of a CIDFont dictionary
// from the per-glyph widths.  Runs of consecutive CIDs are grouped as
// "start [w1 w2 ...]" entries.
func encodeCompositeWidths(glyphs []Glyph) pdfout.Array {
	gg := slices.Clone(glyphs)
	slices.SortFunc(gg, func(a, b Glyph) int {
		return int(a.CID) - int(b.CID)
	})

	var W pdfout.Array
	i := 0
	for i < len(gg) {
		j := i + 1
		for j < len(gg) && gg[j].CID == gg[j-1].CID+1 {
			j++
		}
		ww := make(pdfout.Array, 0, j-i)
		for _, g := range gg[i:j] {
			ww = append(ww, pdfout.Number(g.Width))
		}
		W = append(W, pdfout.Integer(gg[i].CID), ww)
		i = j
	}
	return W
}

// encodeSimpleWidths builds the FirstChar, LastChar and Widths entries
// of a simple font dictionary.  Codes equal the CIDs assigned by the
// subsetter.
func encodeSimpleWidths(glyphs []Glyph) (pdfout.Integer, pdfout.Integer, pdfout.Array) {
	byCode := make(map[int]float64)
	for _, g := range glyphs {
		byCode[int(g.CID)] = g.Width
	}
	codes := maps.Keys(byCode)
	first := slices.Min(codes)
	last := slices.Max(codes)

	widths := make(pdfout.Array, 0, last-first+1)
	for c := first; c <= last; c++ {
		widths = append(widths, pdfout.Number(byCode[c]))
	}
	return pdfout.Integer(first), pdfout.Integer(last), widths
}
