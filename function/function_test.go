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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestType2Endpoints(t *testing.T) {
	f := &Type2{
		XMin: 0,
		XMax: 1,
		C0:   []float64{0.25, 0.5, 0.75},
		C1:   []float64{1, 0, 0.5},
		N:    1,
	}

	// endpoint values must be exact, without floating point drift
	if d := cmp.Diff(f.C0, f.Apply(0)); d != "" {
		t.Errorf("Apply(0) (-want +got):\n%s", d)
	}
	if d := cmp.Diff(f.C1, f.Apply(1)); d != "" {
		t.Errorf("Apply(1) (-want +got):\n%s", d)
	}

	got := f.Apply(0.5)
	want := []float64{0.625, 0.25, 0.625}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("Apply(0.5)[%d] = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestType2Clip(t *testing.T) {
	f := &Type2{
		XMin: 0,
		XMax: 1,
		C0:   []float64{0},
		C1:   []float64{1},
		N:    1,
	}
	if got := f.Apply(-2)[0]; got != 0 {
		t.Errorf("Apply(-2) = %g, want 0", got)
	}
	if got := f.Apply(3)[0]; got != 1 {
		t.Errorf("Apply(3) = %g, want 1", got)
	}
}

func TestType3Selection(t *testing.T) {
	ramp := func(a, b float64) Func {
		return &Type2{XMin: 0, XMax: 1, C0: []float64{a}, C1: []float64{b}, N: 1}
	}

	f := &Type3{
		XMin:      0,
		XMax:      1,
		Functions: []Func{ramp(0, 1), ramp(1, 0)},
		Bounds:    []float64{0.5},
		Encode:    []float64{0, 1, 0, 1},
	}

	cases := []struct {
		x, want float64
	}{
		{0, 0},
		{0.25, 0.5},
		{0.5, 1}, // bounds are closed on the left of the following interval
		{0.75, 0.5},
		{1, 0},
	}
	for _, c := range cases {
		if got := f.Apply(c.x)[0]; math.Abs(got-c.want) > 1e-12 {
			t.Errorf("Apply(%g) = %g, want %g", c.x, got, c.want)
		}
	}
}

func TestType3ZeroWidth(t *testing.T) {
	ramp := func(a, b float64) Func {
		return &Type2{XMin: 0, XMax: 1, C0: []float64{a}, C1: []float64{b}, N: 1}
	}

	// a hard step at 0.5: ramp up to 0.2, jump to 0.8, ramp up to 1
	f := &Type3{
		XMin:      0,
		XMax:      1,
		Functions: []Func{ramp(0, 0.2), ramp(0.2, 0.8), ramp(0.8, 1)},
		Bounds:    []float64{0.5, 0.5},
		Encode:    []float64{0, 1, 0, 1, 0, 1},
	}

	// just below the step the left ramp still applies
	if got := f.Apply(0.5 - 1e-9)[0]; math.Abs(got-0.2) > 1e-6 {
		t.Errorf("Apply(0.5-eps) = %g, want 0.2", got)
	}
	// at the step the right side applies exactly, with no bleed from
	// the zero-width interval
	if got := f.Apply(0.5)[0]; got != 0.8 {
		t.Errorf("Apply(0.5) = %g, want 0.8", got)
	}
	if got := f.Apply(1)[0]; got != 1 {
		t.Errorf("Apply(1) = %g, want 1", got)
	}
}

func TestType3Encode(t *testing.T) {
	ramp := &Type2{XMin: 0, XMax: 1, C0: []float64{0}, C1: []float64{1}, N: 1}

	// a mirrored copy: the second subdomain runs the ramp backwards
	f := &Type3{
		XMin:      0,
		XMax:      2,
		Functions: []Func{ramp, ramp},
		Bounds:    []float64{1},
		Encode:    []float64{0, 1, 1, 0},
	}
	for _, d := range []float64{0.1, 0.3, 0.7} {
		a := f.Apply(1 - d)[0]
		b := f.Apply(1 + d)[0]
		if math.Abs(a-b) > 1e-12 {
			t.Errorf("Apply(%g) = %g, Apply(%g) = %g, want equal",
				1-d, a, 1+d, b)
		}
	}
}
