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

// This file implements the "Colour operators" defined in table 73 of
// ISO 32000-2:2020.

// SetFillGray sets the fill colour in the DeviceGray colour space.
//
// This implements the PDF graphics operator "g".
func (w *Writer) SetFillGray(gray float64) {
	w.setColor(false, colorValue{space: "DeviceGray", n: 1, values: [4]float64{gray}})
}

// SetStrokeGray sets the stroke colour in the DeviceGray colour space.
//
// This implements the PDF graphics operator "G".
func (w *Writer) SetStrokeGray(gray float64) {
	w.setColor(true, colorValue{space: "DeviceGray", n: 1, values: [4]float64{gray}})
}

// SetFillRGB sets the fill colour in the DeviceRGB colour space.
//
// This implements the PDF graphics operator "rg".
func (w *Writer) SetFillRGB(r, g, b float64) {
	w.setColor(false, colorValue{space: "DeviceRGB", n: 3, values: [4]float64{r, g, b}})
}

// SetStrokeRGB sets the stroke colour in the DeviceRGB colour space.
//
// This implements the PDF graphics operator "RG".
func (w *Writer) SetStrokeRGB(r, g, b float64) {
	w.setColor(true, colorValue{space: "DeviceRGB", n: 3, values: [4]float64{r, g, b}})
}

func (w *Writer) setColor(stroke bool, c colorValue) {
	if !w.isValid("setColor", objPage) {
		return
	}

	var cur *colorValue
	var bit StateBits
	if stroke {
		cur = &w.StrokeColor
		bit = StateStrokeColor
	} else {
		cur = &w.FillColor
		bit = StateFillColor
	}
	if w.Set&bit != 0 && c == *cur {
		return
	}
	*cur = c
	w.Set |= bit

	var op string
	switch {
	case c.space == "DeviceGray" && stroke:
		op = "G"
	case c.space == "DeviceGray":
		op = "g"
	case c.space == "DeviceRGB" && stroke:
		op = "RG"
	case c.space == "DeviceRGB":
		op = "rg"
	default:
		w.Err = fmt.Errorf("setColor: unsupported colour space %q", c.space)
		return
	}

	args := make([]any, 0, 5)
	for i := range c.n {
		args = append(args, w.coord(c.values[i]))
	}
	args = append(args, op)
	_, w.Err = fmt.Fprintln(w.Content, args...)
}

// SetFillPattern sets the fill colour to a pattern.  The pattern must
// already be embedded in the file; obj is its indirect reference and
// key identifies it for deduplication.
//
// This implements the PDF graphics operators "cs" and "scn".
func (w *Writer) SetFillPattern(key any, obj pdfout.Object) {
	w.setPattern(false, key, obj)
}

// SetStrokePattern sets the stroke colour to a pattern.
//
// This implements the PDF graphics operators "CS" and "SCN".
func (w *Writer) SetStrokePattern(key any, obj pdfout.Object) {
	w.setPattern(true, key, obj)
}

func (w *Writer) setPattern(stroke bool, key any, obj pdfout.Object) {
	if !w.isValid("setPattern", objPage) {
		return
	}

	name := w.ResourceName(CatPattern, key, obj)
	c := colorValue{space: "Pattern", pattern: name}

	var cur *colorValue
	var bit StateBits
	if stroke {
		cur = &w.StrokeColor
		bit = StateStrokeColor
	} else {
		cur = &w.FillColor
		bit = StateFillColor
	}
	if w.Set&bit != 0 && c == *cur {
		return
	}
	needCS := w.Set&bit == 0 || cur.space != "Pattern"
	*cur = c
	w.Set |= bit

	csOp, scnOp := "cs", "scn"
	if stroke {
		csOp, scnOp = "CS", "SCN"
	}

	if needCS {
		_, w.Err = fmt.Fprintln(w.Content, "/Pattern", csOp)
		if w.Err != nil {
			return
		}
	}
	err := name.PDF(w.Content)
	if err != nil {
		w.Err = err
		return
	}
	_, w.Err = fmt.Fprintln(w.Content, "", scnOp)
}
