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

// Package function implements the PDF function objects used by shadings
// and soft masks.
package function

import (
	"math"

	"seehuhn.de/go/pdfout"
)

// Func represents a PDF function.
type Func interface {
	// FunctionType returns the PDF function type (2 or 3).
	FunctionType() int

	// Shape returns the number of input and output values.
	Shape() (int, int)

	// Apply evaluates the function.  This mirrors the behaviour a
	// conforming reader applies to the embedded representation.
	Apply(x float64) []float64

	// Embed writes the function to the PDF file as an indirect object
	// and returns a reference to it.
	Embed(w *pdfout.Writer) (pdfout.Object, error)
}

func clip(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// interpolate maps x from the interval [xMin, xMax] to [yMin, yMax].
func interpolate(x, xMin, xMax, yMin, yMax float64) float64 {
	if xMax == xMin {
		return yMin
	}
	return yMin + (x-xMin)/(xMax-xMin)*(yMax-yMin)
}

func isRange(min, max float64) bool {
	return min <= max && !math.IsInf(min, 0) && !math.IsInf(max, 0)
}

func arrayFromFloats(x []float64) pdfout.Array {
	res := make(pdfout.Array, len(x))
	for i, xi := range x {
		res[i] = pdfout.Number(xi)
	}
	return res
}
