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

package pattern

import (
	"fmt"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfout"
	"seehuhn.de/go/pdfout/graphics"
)

// Type1 represents a tiling pattern (pattern type 1): one content
// cell, repeated with the given steps.
//
// See section 8.7.3 of ISO 32000-2:2020.
type Type1 struct {
	BBox         *pdfout.Rectangle
	XStep, YStep float64
	Matrix       matrix.Matrix

	// TilingType is 1 (constant spacing), 2 (no distortion) or
	// 3 (constant spacing, faster tiling).
	TilingType int

	Resources *graphics.Resources
}

// Embed writes the tiling pattern with the given cell content to the
// file, under the given reference.  The reference must have been
// allocated by the caller.
func (p *Type1) Embed(w *pdfout.Writer, ref pdfout.Reference, body []byte) error {
	if p.TilingType < 1 || p.TilingType > 3 {
		return fmt.Errorf("invalid tiling type: %d", p.TilingType)
	}
	if p.XStep == 0 || p.YStep == 0 {
		return fmt.Errorf("invalid step size: (%f, %f)", p.XStep, p.YStep)
	}

	dict := pdfout.Dict{
		"PatternType": pdfout.Integer(1),
		"PaintType":   pdfout.Integer(1),
		"TilingType":  pdfout.Integer(p.TilingType),
		"BBox":        p.BBox,
		"XStep":       pdfout.Number(p.XStep),
		"YStep":       pdfout.Number(p.YStep),
	}
	if p.Resources != nil {
		dict["Resources"] = p.Resources.AsDict()
	}
	if p.Matrix != matrix.Identity && p.Matrix != matrix.Zero {
		m := make(pdfout.Array, 6)
		for i, x := range p.Matrix {
			m[i] = pdfout.Number(x)
		}
		dict["Matrix"] = m
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
