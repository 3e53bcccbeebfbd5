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

	"seehuhn.de/go/pdfout"
)

// DrawXObject paints the given XObject.  The XObject must already be
// embedded in the file; obj is its indirect reference and key
// identifies it for deduplication.
//
// This implements the PDF graphics operator "Do".
func (w *Writer) DrawXObject(key any, obj pdfout.Object) {
	if !w.isValid("DrawXObject", objPage) {
		return
	}

	name := w.ResourceName(CatXObject, key, obj)
	err := name.PDF(w.Content)
	if err != nil {
		w.Err = err
		return
	}
	_, w.Err = fmt.Fprintln(w.Content, " Do")
}

// DrawShading paints the given shading over the current clipping
// region.  The shading dictionary must already be embedded in the
// file; obj is its indirect reference and key identifies it for
// deduplication.
//
// This implements the PDF graphics operator "sh".
func (w *Writer) DrawShading(key any, obj pdfout.Object) {
	if !w.isValid("DrawShading", objPage) {
		return
	}

	name := w.ResourceName(CatShading, key, obj)
	err := name.PDF(w.Content)
	if err != nil {
		w.Err = err
		return
	}
	_, w.Err = fmt.Fprintln(w.Content, " sh")
}
