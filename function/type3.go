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

	"seehuhn.de/go/pdfout"
)

// Type3 represents a stitching function: the domain is partitioned by
// Bounds, and on each part one of the sub-functions applies, with its
// input re-mapped according to Encode.
type Type3 struct {
	// XMin and XMax define the input domain.
	XMin, XMax float64

	// Functions are the k sub-functions.  All must take one input and
	// produce the same number of outputs.
	Functions []Func

	// Bounds are the k-1 interior partition points, in increasing order.
	Bounds []float64

	// Encode maps each subdomain to the corresponding function's domain,
	// as [min0, max0, min1, max1, ...].  It must contain 2k values.
	Encode []float64
}

// FunctionType returns 3.
func (f *Type3) FunctionType() int {
	return 3
}

// Shape returns the number of input and output values of the function.
func (f *Type3) Shape() (int, int) {
	_, n := f.Functions[0].Shape()
	return 1, n
}

// Apply evaluates the function at x.
//
// Subdomains are half-open intervals, closed on the left, except that the
// last one is closed on both sides.
func (f *Type3) Apply(x float64) []float64 {
	x = clip(x, f.XMin, f.XMax)

	k := len(f.Functions)
	idx := 0
	lo := f.XMin
	for idx < k-1 && x >= f.Bounds[idx] {
		lo = f.Bounds[idx]
		idx++
	}
	hi := f.XMax
	if idx < k-1 {
		hi = f.Bounds[idx]
	}

	var xEnc float64
	if hi > lo {
		xEnc = interpolate(x, lo, hi, f.Encode[2*idx], f.Encode[2*idx+1])
	} else {
		// zero-width subdomain, can only be hit at its right endpoint
		xEnc = f.Encode[2*idx+1]
	}
	return f.Functions[idx].Apply(xEnc)
}

// Embed writes the function and its sub-functions to the PDF file.
func (f *Type3) Embed(w *pdfout.Writer) (pdfout.Object, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	funcs := make(pdfout.Array, len(f.Functions))
	for i, sub := range f.Functions {
		obj, err := sub.Embed(w)
		if err != nil {
			return nil, err
		}
		funcs[i] = obj
	}

	dict := pdfout.Dict{
		"FunctionType": pdfout.Integer(3),
		"Domain":       pdfout.Array{pdfout.Number(f.XMin), pdfout.Number(f.XMax)},
		"Functions":    funcs,
		"Bounds":       arrayFromFloats(f.Bounds),
		"Encode":       arrayFromFloats(f.Encode),
	}

	ref := w.Alloc()
	err := w.Put(ref, dict)
	if err != nil {
		return nil, err
	}
	return ref, nil
}

func (f *Type3) validate() error {
	k := len(f.Functions)
	if k == 0 {
		return fmt.Errorf("stitching function with no sub-functions")
	}
	if !isRange(f.XMin, f.XMax) {
		return fmt.Errorf("invalid domain [%g, %g]", f.XMin, f.XMax)
	}
	if len(f.Bounds) != k-1 {
		return fmt.Errorf("expected %d bounds, got %d", k-1, len(f.Bounds))
	}
	prev := f.XMin
	for _, b := range f.Bounds {
		if b < prev || b > f.XMax {
			return fmt.Errorf("bound %g outside [%g, %g]", b, prev, f.XMax)
		}
		prev = b
	}
	if len(f.Encode) != 2*k {
		return fmt.Errorf("expected %d encode values, got %d", 2*k, len(f.Encode))
	}
	_, n := f.Functions[0].Shape()
	for _, sub := range f.Functions[1:] {
		m, nSub := sub.Shape()
		if m != 1 || nSub != n {
			return fmt.Errorf("sub-function shapes do not match")
		}
	}
	return nil
}
