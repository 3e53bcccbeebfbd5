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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeStops(t *testing.T) {
	cases := []struct {
		name string
		in   []Stop
		want []Stop
	}{
		{
			name: "interior stops get boundary copies",
			in: []Stop{
				{Offset: 0.25, R: 1},
				{Offset: 0.75, G: 1},
			},
			want: []Stop{
				{Offset: 0, R: 1},
				{Offset: 0.25, R: 1},
				{Offset: 0.75, G: 1},
				{Offset: 1, G: 1},
			},
		},
		{
			name: "single stop is duplicated",
			in:   []Stop{{Offset: 0.5, B: 1}},
			want: []Stop{
				{Offset: 0, B: 1},
				{Offset: 0.5, B: 1},
				{Offset: 1, B: 1},
			},
		},
		{
			name: "decreasing offsets are clamped",
			in: []Stop{
				{Offset: 0, R: 1},
				{Offset: 0.6, G: 1},
				{Offset: 0.4, B: 1},
				{Offset: 2, A: 1},
			},
			want: []Stop{
				{Offset: 0, R: 1},
				{Offset: 0.6, G: 1},
				{Offset: 0.6, B: 1},
				{Offset: 1, A: 1},
			},
		},
		{
			name: "already complete",
			in: []Stop{
				{Offset: 0, R: 1},
				{Offset: 1, G: 1},
			},
			want: []Stop{
				{Offset: 0, R: 1},
				{Offset: 1, G: 1},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := normalizeStops(c.in)
			if d := cmp.Diff(c.want, got); d != "" {
				t.Errorf("normalizeStops (-want +got):\n%s", d)
			}
		})
	}
}

func TestBuildStopFuncTwoStops(t *testing.T) {
	stops := []Stop{
		{Offset: 0, R: 0.25, G: 0.5, B: 0.75},
		{Offset: 1, R: 1, G: 0, B: 0.5},
	}
	f, err := buildStopFunc(stops, rgbValues)
	if err != nil {
		t.Fatal(err)
	}
	if f.FunctionType() != 2 {
		t.Errorf("two stops produced a type %d function, want 2",
			f.FunctionType())
	}
	if d := cmp.Diff([]float64{0.25, 0.5, 0.75}, f.Apply(0)); d != "" {
		t.Errorf("Apply(0) (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]float64{1, 0, 0.5}, f.Apply(1)); d != "" {
		t.Errorf("Apply(1) (-want +got):\n%s", d)
	}
}

func TestBuildStopFuncHardStep(t *testing.T) {
	// doubled offset gives a hard step from green to blue at 0.5
	stops := []Stop{
		{Offset: 0, R: 1},
		{Offset: 0.5, G: 1},
		{Offset: 0.5, B: 1},
		{Offset: 1, B: 1},
	}
	f, err := buildStopFunc(stops, rgbValues)
	if err != nil {
		t.Fatal(err)
	}

	eps := 1e-9
	below := f.Apply(0.5 - eps)
	if math.Abs(below[1]-1) > 1e-6 || below[2] > 1e-6 {
		t.Errorf("Apply(0.5-eps) = %v, want green", below)
	}
	at := f.Apply(0.5)
	if d := cmp.Diff([]float64{0, 0, 1}, at); d != "" {
		t.Errorf("Apply(0.5) (-want +got):\n%s", d)
	}
}

func TestBuildGradientFuncPlain(t *testing.T) {
	stops := []Stop{
		{Offset: 0, R: 1},
		{Offset: 1, B: 1},
	}
	f, lo, hi, err := buildGradientFunc(stops, ExtendPad, 0, 1, rgbValues)
	if err != nil {
		t.Fatal(err)
	}
	if lo != 0 || hi != 1 {
		t.Errorf("domain [%g, %g], want [0, 1]", lo, hi)
	}
	if f.FunctionType() != 2 {
		t.Errorf("got a type %d function, want 2", f.FunctionType())
	}
}

func TestBuildGradientFuncRepeat(t *testing.T) {
	stops := []Stop{
		{Offset: 0, R: 1},
		{Offset: 1, B: 1},
	}
	f, lo, hi, err := buildGradientFunc(stops, ExtendRepeat, -0.5, 2.5, rgbValues)
	if err != nil {
		t.Fatal(err)
	}
	if lo != -1 || hi != 3 {
		t.Fatalf("domain [%g, %g], want [-1, 3]", lo, hi)
	}

	// the function is periodic with period 1
	for _, x := range []float64{-0.9, 0.1, 0.7, 1.3} {
		a := f.Apply(x)
		b := f.Apply(x + 1)
		for i := range a {
			if math.Abs(a[i]-b[i]) > 1e-9 {
				t.Errorf("Apply(%g) = %v, Apply(%g) = %v, want equal",
					x, a, x+1, b)
			}
		}
	}
}

func TestBuildGradientFuncReflect(t *testing.T) {
	stops := []Stop{
		{Offset: 0, R: 1},
		{Offset: 1, B: 1},
	}
	f, lo, hi, err := buildGradientFunc(stops, ExtendReflect, 0, 2, rgbValues)
	if err != nil {
		t.Fatal(err)
	}
	if lo != 0 || hi != 2 {
		t.Fatalf("domain [%g, %g], want [0, 2]", lo, hi)
	}

	// the second span mirrors the first
	for _, d := range []float64{0.1, 0.25, 0.4} {
		a := f.Apply(1 - d)
		b := f.Apply(1 + d)
		for i := range a {
			if math.Abs(a[i]-b[i]) > 1e-9 {
				t.Errorf("Apply(%g) = %v, Apply(%g) = %v, want equal",
					1-d, a, 1+d, b)
			}
		}
	}
}

func TestBuildGradientFuncUnitRepeat(t *testing.T) {
	stops := []Stop{
		{Offset: 0, R: 1},
		{Offset: 1, B: 1},
	}
	// a single repeat span over [0, 1] needs no outer wrapper
	f, lo, hi, err := buildGradientFunc(stops, ExtendRepeat, 0.2, 0.8, rgbValues)
	if err != nil {
		t.Fatal(err)
	}
	if lo != 0 || hi != 1 {
		t.Errorf("domain [%g, %g], want [0, 1]", lo, hi)
	}
	if f.FunctionType() != 2 {
		t.Errorf("got a type %d function, want 2", f.FunctionType())
	}
}

func TestBuildStopFuncEmpty(t *testing.T) {
	_, err := buildStopFunc(nil, rgbValues)
	if err == nil {
		t.Error("no error for empty stop list")
	}
}
