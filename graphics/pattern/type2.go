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

// Package pattern emits PDF pattern dictionaries.
package pattern

import (
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfout"
)

// Type2 represents the pattern dictionary for a shading pattern
// (pattern type 2).
//
// See section 8.7.4.3 of ISO 32000-2:2020.
type Type2 struct {
	// Shading is the reference to the embedded shading dictionary.
	Shading pdfout.Reference

	// Matrix maps pattern space to the default coordinate space of the
	// page or form the pattern is used on.
	Matrix matrix.Matrix
}

// Embed writes the pattern dictionary to the file and returns its
// reference.
func (p *Type2) Embed(w *pdfout.Writer) (pdfout.Reference, error) {
	dict := pdfout.Dict{
		"PatternType": pdfout.Integer(2),
		"Shading":     p.Shading,
	}
	if p.Matrix != matrix.Identity && p.Matrix != matrix.Zero {
		m := make(pdfout.Array, 6)
		for i, x := range p.Matrix {
			m[i] = pdfout.Number(x)
		}
		dict["Matrix"] = m
	}

	ref := w.Alloc()
	err := w.Put(ref, dict)
	if err != nil {
		return 0, err
	}
	return ref, nil
}
