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

package shading

import (
	"errors"

	"seehuhn.de/go/pdfout/function"
)

// stopValues selects the function output values at a stop.
type stopValues func(Stop) []float64

func rgbValues(s Stop) []float64 {
	return []float64{s.R, s.G, s.B}
}

func grayValues(s Stop) []float64 {
	return []float64{s.R}
}

// buildGradientFunc converts the colour stops into a PDF function and
// returns it together with its domain [lo, hi].
//
// For the non-repeating extend modes the domain is [0, 1].  For repeat
// and reflect the stitched unit function is wrapped in an outer
// stitching function covering [floor(tMin), ceil(tMax)], with the
// encode direction alternating per integer span when reflecting.
func buildGradientFunc(stops []Stop, extend Extend, tMin, tMax float64, sel stopValues) (function.Func, float64, float64, error) {
	inner, err := buildStopFunc(stops, sel)
	if err != nil {
		return nil, 0, 0, err
	}

	if extend != ExtendRepeat && extend != ExtendReflect {
		return inner, 0, 1, nil
	}

	lo := floorInt(tMin)
	hi := ceilInt(tMax)
	if hi <= lo {
		hi = lo + 1
	}
	n := int(hi - lo)

	if n == 1 && lo == 0 && extend == ExtendRepeat {
		return inner, 0, 1, nil
	}

	funcs := make([]function.Func, n)
	bounds := make([]float64, n-1)
	encode := make([]float64, 0, 2*n)
	for i := range n {
		funcs[i] = inner
		if i > 0 {
			bounds[i-1] = lo + float64(i)
		}
		k := int(lo) + i
		if extend == ExtendReflect && (k%2+2)%2 == 1 {
			encode = append(encode, 1, 0)
		} else {
			encode = append(encode, 0, 1)
		}
	}

	outer := &function.Type3{
		XMin:      lo,
		XMax:      hi,
		Functions: funcs,
		Bounds:    bounds,
		Encode:    encode,
	}
	return outer, lo, hi, nil
}

// buildStopFunc converts the colour stops into a function on [0, 1].
//
// Stops are first normalised: offsets are clamped to be non-decreasing
// in [0, 1], and boundary stops are synthesised at 0 and 1 where
// missing.  Adjacent stops sharing an offset produce a zero-width
// stitching interval, so a hard colour step renders without bleed on
// either side.  Two normalised stops give a single interpolation
// function, more give a stitching function over the pairwise
// interpolations.
func buildStopFunc(stops []Stop, sel stopValues) (function.Func, error) {
	if len(stops) == 0 {
		return nil, errors.New("gradient with no stops")
	}

	norm := normalizeStops(stops)

	if len(norm) == 2 {
		return &function.Type2{
			XMin: 0,
			XMax: 1,
			C0:   sel(norm[0]),
			C1:   sel(norm[1]),
			N:    1,
		}, nil
	}

	k := len(norm) - 1
	funcs := make([]function.Func, k)
	bounds := make([]float64, k-1)
	encode := make([]float64, 0, 2*k)
	for i := range k {
		funcs[i] = &function.Type2{
			XMin: 0,
			XMax: 1,
			C0:   sel(norm[i]),
			C1:   sel(norm[i+1]),
			N:    1,
		}
		if i > 0 {
			bounds[i-1] = norm[i].Offset
		}
		encode = append(encode, 0, 1)
	}

	return &function.Type3{
		XMin:      0,
		XMax:      1,
		Functions: funcs,
		Bounds:    bounds,
		Encode:    encode,
	}, nil
}

// normalizeStops clamps the stop offsets into non-decreasing order in
// [0, 1] and synthesises boundary stops at 0 and 1 where missing.
func normalizeStops(stops []Stop) []Stop {
	norm := make([]Stop, 0, len(stops)+2)

	prev := 0.0
	for _, s := range stops {
		off := s.Offset
		if off < prev {
			off = prev
		}
		if off > 1 {
			off = 1
		}
		s.Offset = off
		prev = off
		norm = append(norm, s)
	}

	if norm[0].Offset > 0 {
		first := norm[0]
		first.Offset = 0
		norm = append([]Stop{first}, norm...)
	}
	if norm[len(norm)-1].Offset < 1 {
		last := norm[len(norm)-1]
		last.Offset = 1
		norm = append(norm, last)
	}

	if len(norm) == 1 {
		norm = append(norm, norm[0])
	}

	return norm
}
