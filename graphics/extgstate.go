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
	"seehuhn.de/go/pdfout"
)

// ExtGState describes a graphics state parameter dictionary.
//
// See section 8.4.5 of ISO 32000-2:2020.
type ExtGState struct {
	// StrokeAlpha and FillAlpha are the constant alpha values.  They
	// are only written when SetAlpha is true.
	StrokeAlpha float64
	FillAlpha   float64
	SetAlpha    bool

	// SoftMask is either a soft-mask dictionary or the name "None".
	SoftMask pdfout.Object

	BlendMode pdfout.Name
}

// Embed writes the parameter dictionary to the file and returns its
// reference.
func (g *ExtGState) Embed(w *pdfout.Writer) (pdfout.Object, error) {
	dict := pdfout.Dict{
		"Type": pdfout.Name("ExtGState"),
	}
	if g.SetAlpha {
		dict["CA"] = pdfout.Number(g.StrokeAlpha)
		dict["ca"] = pdfout.Number(g.FillAlpha)
	}
	if g.SoftMask != nil {
		dict["SMask"] = g.SoftMask
	}
	if g.BlendMode != "" {
		dict["BM"] = g.BlendMode
	}

	ref := w.Alloc()
	err := w.Put(ref, dict)
	if err != nil {
		return nil, err
	}
	return ref, nil
}
