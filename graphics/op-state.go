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
	"fmt"
	"slices"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfout"
)

// This file implements the "Graphics state operators" defined in
// table 56 of ISO 32000-2:2020.

// PushGraphicsState saves the current graphics state.
//
// This implements the PDF graphics operator "q".
func (w *Writer) PushGraphicsState() {
	if !w.isValid("PushGraphicsState", objPage) {
		return
	}

	w.stack = append(w.stack, w.State.Clone())

	_, w.Err = fmt.Fprintln(w.Content, "q")
}

// PopGraphicsState restores the previously saved graphics state.
//
// This implements the PDF graphics operator "Q".
func (w *Writer) PopGraphicsState() {
	if !w.isValid("PopGraphicsState", objPage) {
		return
	}

	if len(w.stack) == 0 {
		w.Err = fmt.Errorf("PopGraphicsState: stack underflow")
		return
	}
	w.State = w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]

	_, w.Err = fmt.Fprintln(w.Content, "Q")
}

// Transform applies the given matrix to the coordinate system.
//
// This implements the PDF graphics operator "cm".
func (w *Writer) Transform(m matrix.Matrix) {
	if !w.isValid("Transform", objPage) {
		return
	}
	if m == matrix.Identity {
		return
	}

	w.CTM = m.Mul(w.CTM)
	w.Set |= StateCTM

	_, w.Err = fmt.Fprintln(w.Content,
		w.coord(m[0]), w.coord(m[1]), w.coord(m[2]),
		w.coord(m[3]), w.coord(m[4]), w.coord(m[5]), "cm")
}

// SetLineWidth sets the line width.
//
// This implements the PDF graphics operator "w".
func (w *Writer) SetLineWidth(width float64) {
	if !w.isValid("SetLineWidth", objPage) {
		return
	}
	if w.Set&StateLineWidth != 0 && width == w.LineWidth {
		return
	}

	w.LineWidth = width
	w.Set |= StateLineWidth

	_, w.Err = fmt.Fprintln(w.Content, w.coord(width), "w")
}

// SetLineCap sets the line cap style.
//
// This implements the PDF graphics operator "J".
func (w *Writer) SetLineCap(cap LineCapStyle) {
	if !w.isValid("SetLineCap", objPage) {
		return
	}
	if w.Set&StateLineCap != 0 && cap == w.LineCap {
		return
	}

	w.LineCap = cap
	w.Set |= StateLineCap

	_, w.Err = fmt.Fprintln(w.Content, int(cap), "J")
}

// SetLineJoin sets the line join style.
//
// This implements the PDF graphics operator "j".
func (w *Writer) SetLineJoin(join LineJoinStyle) {
	if !w.isValid("SetLineJoin", objPage) {
		return
	}
	if w.Set&StateLineJoin != 0 && join == w.LineJoin {
		return
	}

	w.LineJoin = join
	w.Set |= StateLineJoin

	_, w.Err = fmt.Fprintln(w.Content, int(join), "j")
}

// SetMiterLimit sets the miter limit.
//
// This implements the PDF graphics operator "M".
func (w *Writer) SetMiterLimit(limit float64) {
	if !w.isValid("SetMiterLimit", objPage) {
		return
	}
	if w.Set&StateMiterLimit != 0 && limit == w.MiterLimit {
		return
	}

	w.MiterLimit = limit
	w.Set |= StateMiterLimit

	_, w.Err = fmt.Fprintln(w.Content, w.coord(limit), "M")
}

// SetLineDash sets the dash pattern and phase.
//
// This implements the PDF graphics operator "d".
func (w *Writer) SetLineDash(pattern []float64, phase float64) {
	if !w.isValid("SetLineDash", objPage) {
		return
	}
	if w.Set&StateDash != 0 &&
		slices.Equal(pattern, w.DashPattern) &&
		phase == w.DashPhase {
		return
	}

	w.DashPattern = slices.Clone(pattern)
	w.DashPhase = phase
	w.Set |= StateDash

	if w.Err != nil {
		return
	}
	_, w.Err = fmt.Fprint(w.Content, "[")
	for i, x := range pattern {
		if w.Err != nil {
			return
		}
		if i > 0 {
			fmt.Fprint(w.Content, " ")
		}
		_, w.Err = fmt.Fprint(w.Content, w.coord(x))
	}
	if w.Err != nil {
		return
	}
	_, w.Err = fmt.Fprintln(w.Content, "]", w.coord(phase), "d")
}

// SetExtGState applies a graphics state parameter dictionary.
// The resource must already be embedded in the file; obj is its
// indirect reference and key identifies it for deduplication.
//
// This implements the PDF graphics operator "gs".
func (w *Writer) SetExtGState(key any, obj pdfout.Object) {
	if !w.isValid("SetExtGState", objPage) {
		return
	}

	name := w.ResourceName(CatExtGState, key, obj)
	if w.Set&StateExtGState != 0 && name == w.ExtGState {
		return
	}

	w.ExtGState = name
	w.Set |= StateExtGState

	err := name.PDF(w.Content)
	if err != nil {
		w.Err = err
		return
	}
	_, w.Err = fmt.Fprintln(w.Content, " gs")
}
