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

// Package shading emits PDF shading dictionaries for gradients.
//
// Gradients are described by colour stops on a parameter interval,
// together with an extend mode.  The package converts the stops into
// PDF function trees and the gradient geometry into axial or radial
// shading dictionaries.
package shading

import (
	"errors"
	"math"

	"seehuhn.de/go/pdfout"
)

// Shading is a shading dictionary which can be written to a PDF file.
type Shading interface {
	Embed(w *pdfout.Writer) (pdfout.Reference, error)
}

// Stop is one colour stop of a gradient.  Offset is in the range
// [0, 1]; colour components and alpha are in [0, 1].
type Stop struct {
	Offset  float64
	R, G, B float64
	A       float64
}

// Extend describes how a gradient behaves outside its stop interval.
type Extend int

// The valid extend modes.
const (
	ExtendNone Extend = iota
	ExtendPad
	ExtendRepeat
	ExtendReflect
)

// Axial is an axial (linear) gradient shading.
//
// The axis runs from (X0, Y0) at parameter 0 to (X1, Y1) at
// parameter 1.  TMin and TMax give the parameter interval which is
// visible in the target area; they are only used for the repeating
// extend modes.
type Axial struct {
	X0, Y0, X1, Y1 float64
	Stops          []Stop
	Extend         Extend
	TMin, TMax     float64

	gray bool
}

// Embed writes the shading dictionary and its function tree to the
// file and returns the reference to the shading dictionary.
func (s *Axial) Embed(w *pdfout.Writer) (pdfout.Reference, error) {
	fn, lo, hi, err := buildGradientFunc(s.Stops, s.Extend, s.TMin, s.TMax, s.values())
	if err != nil {
		return 0, err
	}
	fnObj, err := fn.Embed(w)
	if err != nil {
		return 0, err
	}

	dx := s.X1 - s.X0
	dy := s.Y1 - s.Y0
	dict := pdfout.Dict{
		"ShadingType": pdfout.Integer(2),
		"ColorSpace":  s.colorSpace(),
		"Coords": pdfout.Array{
			pdfout.Number(s.X0 + lo*dx), pdfout.Number(s.Y0 + lo*dy),
			pdfout.Number(s.X0 + hi*dx), pdfout.Number(s.Y0 + hi*dy),
		},
		"Function": fnObj,
	}
	if lo != 0 || hi != 1 {
		dict["Domain"] = pdfout.Array{pdfout.Number(lo), pdfout.Number(hi)}
	}
	if s.Extend != ExtendNone {
		dict["Extend"] = pdfout.Array{pdfout.Boolean(true), pdfout.Boolean(true)}
	}

	ref := w.Alloc()
	err = w.Put(ref, dict)
	if err != nil {
		return 0, err
	}
	return ref, nil
}

// AlphaShading returns a copy of the shading whose colour at each stop
// is the gray value of the stop's alpha.  The result is used to paint
// luminosity soft masks.
func (s *Axial) AlphaShading() *Axial {
	c := *s
	c.Stops = alphaToGray(s.Stops)
	c.gray = true
	return &c
}

func (s *Axial) values() stopValues {
	if s.gray {
		return grayValues
	}
	return rgbValues
}

func (s *Axial) colorSpace() pdfout.Name {
	if s.gray {
		return "DeviceGray"
	}
	return "DeviceRGB"
}

// Radial is a radial gradient shading between two circles.
type Radial struct {
	X0, Y0, R0 float64
	X1, Y1, R1 float64
	Stops      []Stop
	Extend     Extend
	TMin, TMax float64

	gray bool
}

// Embed writes the shading dictionary and its function tree to the
// file and returns the reference to the shading dictionary.
func (s *Radial) Embed(w *pdfout.Writer) (pdfout.Reference, error) {
	fn, lo, hi, err := buildGradientFunc(s.Stops, s.Extend, s.TMin, s.TMax, s.values())
	if err != nil {
		return 0, err
	}
	fnObj, err := fn.Embed(w)
	if err != nil {
		return 0, err
	}

	// Extrapolate the circles to cover the function domain.
	x0 := s.X0 + lo*(s.X1-s.X0)
	y0 := s.Y0 + lo*(s.Y1-s.Y0)
	r0 := s.R0 + lo*(s.R1-s.R0)
	x1 := s.X0 + hi*(s.X1-s.X0)
	y1 := s.Y0 + hi*(s.Y1-s.Y0)
	r1 := s.R0 + hi*(s.R1-s.R0)
	if r0 < 0 || r1 < 0 {
		return 0, errors.New("radial shading: negative radius")
	}

	dict := pdfout.Dict{
		"ShadingType": pdfout.Integer(3),
		"ColorSpace":  s.colorSpace(),
		"Coords": pdfout.Array{
			pdfout.Number(x0), pdfout.Number(y0), pdfout.Number(r0),
			pdfout.Number(x1), pdfout.Number(y1), pdfout.Number(r1),
		},
		"Function": fnObj,
	}
	if lo != 0 || hi != 1 {
		dict["Domain"] = pdfout.Array{pdfout.Number(lo), pdfout.Number(hi)}
	}
	if s.Extend != ExtendNone {
		dict["Extend"] = pdfout.Array{pdfout.Boolean(true), pdfout.Boolean(true)}
	}

	ref := w.Alloc()
	err = w.Put(ref, dict)
	if err != nil {
		return 0, err
	}
	return ref, nil
}

// AlphaShading returns a copy of the shading whose colour at each stop
// is the gray value of the stop's alpha.
func (s *Radial) AlphaShading() *Radial {
	c := *s
	c.Stops = alphaToGray(s.Stops)
	c.gray = true
	return &c
}

func (s *Radial) values() stopValues {
	if s.gray {
		return grayValues
	}
	return rgbValues
}

func (s *Radial) colorSpace() pdfout.Name {
	if s.gray {
		return "DeviceGray"
	}
	return "DeviceRGB"
}

// ConstantAlpha reports whether all stops share the same alpha value,
// and returns that value.  Gradients with constant alpha can be
// painted with a plain constant-alpha graphics state instead of a soft
// mask.
func ConstantAlpha(stops []Stop) (float64, bool) {
	if len(stops) == 0 {
		return 1, true
	}
	a := stops[0].A
	for _, s := range stops[1:] {
		if s.A != a {
			return 0, false
		}
	}
	return a, true
}

func alphaToGray(stops []Stop) []Stop {
	res := make([]Stop, len(stops))
	for i, s := range stops {
		res[i] = Stop{Offset: s.Offset, R: s.A, G: s.A, B: s.A, A: 1}
	}
	return res
}

// floorInt and ceilInt clamp to sane values for pathological parameter
// intervals.
func floorInt(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return math.Floor(x)
}

func ceilInt(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 1
	}
	return math.Ceil(x)
}
