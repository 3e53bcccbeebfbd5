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

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfout"
)

// This file implements the "Text object operators" and "Text-showing
// operators" defined in tables 105, 107 and 109 of ISO 32000-2:2020.

// TextBegin starts a new text object.
//
// This implements the PDF graphics operator "BT".
func (w *Writer) TextBegin() {
	if !w.isValid("TextBegin", objPage) {
		return
	}
	w.currentObject = objText

	_, w.Err = fmt.Fprintln(w.Content, "BT")
}

// TextEnd ends the current text object.
//
// This implements the PDF graphics operator "ET".
func (w *Writer) TextEnd() {
	if !w.isValid("TextEnd", objText) {
		return
	}
	w.currentObject = objPage

	_, w.Err = fmt.Fprintln(w.Content, "ET")
}

// TextSetFont selects the font and font size.  The font dictionary
// must already be embedded in the file; obj is its indirect reference
// and key identifies it for deduplication.
//
// This implements the PDF graphics operator "Tf".
func (w *Writer) TextSetFont(key any, obj pdfout.Object, size float64) {
	if !w.isValid("TextSetFont", objPage|objText) {
		return
	}

	name := w.ResourceName(CatFont, key, obj)
	if w.Set&StateFont != 0 && name == w.Font && size == w.FontSize {
		return
	}
	w.Font = name
	w.FontSize = size
	w.Set |= StateFont

	err := name.PDF(w.Content)
	if err != nil {
		w.Err = err
		return
	}
	_, w.Err = fmt.Fprintln(w.Content, "", w.coord(size), "Tf")
}

// TextSetMatrix sets the text matrix and the text line matrix.
//
// This implements the PDF graphics operator "Tm".
func (w *Writer) TextSetMatrix(m matrix.Matrix) {
	if !w.isValid("TextSetMatrix", objText) {
		return
	}

	_, w.Err = fmt.Fprintln(w.Content,
		w.coord(m[0]), w.coord(m[1]), w.coord(m[2]),
		w.coord(m[3]), w.coord(m[4]), w.coord(m[5]), "Tm")
}

// TextShow shows a string of character codes using the current font.
//
// This implements the PDF graphics operator "Tj".
func (w *Writer) TextShow(s pdfout.String) {
	if !w.isValid("TextShow", objText) {
		return
	}
	if w.Set&StateFont == 0 {
		w.Err = fmt.Errorf("TextShow: no font set")
		return
	}

	err := s.PDF(w.Content)
	if err != nil {
		w.Err = err
		return
	}
	_, w.Err = fmt.Fprintln(w.Content, " Tj")
}

// TextShowPositioned shows strings of character codes interleaved with
// horizontal adjustments.  The elements of args must be [pdfout.String],
// [pdfout.Integer], [pdfout.Real] or [pdfout.Number] values; numbers
// move the current position left by the given amount, expressed in
// thousandths of a text space unit.
//
// This implements the PDF graphics operator "TJ".
func (w *Writer) TextShowPositioned(args pdfout.Array) {
	if !w.isValid("TextShowPositioned", objText) {
		return
	}
	if w.Set&StateFont == 0 {
		w.Err = fmt.Errorf("TextShowPositioned: no font set")
		return
	}

	err := args.PDF(w.Content)
	if err != nil {
		w.Err = err
		return
	}
	_, w.Err = fmt.Fprintln(w.Content, " TJ")
}
