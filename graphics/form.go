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

package graphics

import (
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfout"
)

// Form represents a PDF Form XObject.
//
// See section 8.10 of ISO 32000-2:2020 for details.
type Form struct {
	BBox      *pdfout.Rectangle
	Matrix    matrix.Matrix
	Resources *Resources

	// Group, if non-nil, is a transparency group attributes
	// dictionary.
	Group pdfout.Dict
}

// Embed writes the Form XObject with the given body to the file, under
// the given reference.  The reference must have been allocated by the
// caller, so that forms can be referred to before their content is
// known.
func (f *Form) Embed(w *pdfout.Writer, ref pdfout.Reference, body []byte) error {
	dict := pdfout.Dict{
		"Subtype":  pdfout.Name("Form"),
		"FormType": pdfout.Integer(1),
		"BBox":     f.BBox,
	}
	if f.Matrix != matrix.Identity && f.Matrix != matrix.Zero {
		m := make(pdfout.Array, 6)
		for i, x := range f.Matrix {
			m[i] = pdfout.Number(x)
		}
		dict["Matrix"] = m
	}
	if f.Resources != nil && !f.Resources.IsEmpty() {
		dict["Resources"] = f.Resources.AsDict()
	}
	if f.Group != nil {
		dict["Group"] = f.Group
	}

	stm, err := w.OpenStream(ref, dict, pdfout.FilterFlate{})
	if err != nil {
		return err
	}
	_, err = stm.Write(body)
	if err != nil {
		return err
	}
	return stm.Close()
}
