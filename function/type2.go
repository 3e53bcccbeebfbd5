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

package function

import (
	"fmt"
	"math"

	"seehuhn.de/go/pdfout"
)

// Type2 represents an exponential interpolation function,
// y_j = C0_j + x^N * (C1_j - C0_j), over the domain [XMin, XMax].
type Type2 struct {
	// XMin and XMax define the input domain.  Inputs outside the domain
	// are clipped.
	XMin, XMax float64

	// C0 is the function value at x = 0.
	C0 []float64

	// C1 is the function value at x = 1.
	// C1 must have the same length as C0.
	C1 []float64

	// N is the interpolation exponent.  Linear interpolation uses N = 1.
	N float64
}

// FunctionType returns 2.
func (f *Type2) FunctionType() int {
	return 2
}

// Shape returns the number of input and output values of the function.
func (f *Type2) Shape() (int, int) {
	return 1, len(f.C0)
}

// Apply evaluates the function at x.
func (f *Type2) Apply(x float64) []float64 {
	x = clip(x, f.XMin, f.XMax)

	var xPowN float64
	switch f.N {
	case 0:
		xPowN = 1
	case 1:
		xPowN = x
	default:
		xPowN = math.Pow(x, f.N)
	}

	res := make([]float64, len(f.C0))
	for i := range res {
		res[i] = f.C0[i] + xPowN*(f.C1[i]-f.C0[i])
	}
	return res
}

// Embed writes the function to the PDF file.
func (f *Type2) Embed(w *pdfout.Writer) (pdfout.Object, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	dict := pdfout.Dict{
		"FunctionType": pdfout.Integer(2),
		"Domain":       pdfout.Array{pdfout.Number(f.XMin), pdfout.Number(f.XMax)},
		"C0":           arrayFromFloats(f.C0),
		"C1":           arrayFromFloats(f.C1),
		"N":            pdfout.Number(f.N),
	}

	ref := w.Alloc()
	err := w.Put(ref, dict)
	if err != nil {
		return nil, err
	}
	return ref, nil
}

func (f *Type2) validate() error {
	if !isRange(f.XMin, f.XMax) {
		return fmt.Errorf("invalid domain [%g, %g]", f.XMin, f.XMax)
	}
	if len(f.C0) < 1 || len(f.C0) != len(f.C1) {
		return fmt.Errorf("invalid C0/C1 lengths %d, %d", len(f.C0), len(f.C1))
	}
	if math.IsNaN(f.N) || math.IsInf(f.N, 0) {
		return fmt.Errorf("invalid exponent %g", f.N)
	}
	return nil
}
