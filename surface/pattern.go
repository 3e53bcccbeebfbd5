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

package surface

import (
	"strconv"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfout/graphics/shading"
)

// Pattern describes the paint source of a drawing operation.  The set
// of pattern kinds is closed; emitters switch over it exhaustively.
type Pattern interface {
	isPattern()
}

// Solid is a single translucent colour.
type Solid struct {
	R, G, B float64
	A       float64
}

func (Solid) isPattern() {}

// Gradient is an axial or radial gradient.  The stop list, the
// pattern-to-page matrix and the visible parameter interval
// [TMin, TMax] come from the caller's gradient parameter math.
type Gradient struct {
	// Radial selects the radial geometry; otherwise the gradient is
	// axial from (X0, Y0) to (X1, Y1) and R0, R1 are unused.
	Radial bool

	X0, Y0, R0 float64
	X1, Y1, R1 float64

	Stops  []shading.Stop
	Extend shading.Extend

	TMin, TMax float64

	// Matrix maps gradient space to page space.
	Matrix matrix.Matrix
}

func (*Gradient) isPattern() {}

// key returns the structural identity of the gradient, used for
// shading deduplication.  Two gradients with equal keys produce
// byte-identical shading dictionaries.
func (p *Gradient) key() string {
	buf := make([]byte, 0, 256)
	if p.Radial {
		buf = append(buf, 'r')
	} else {
		buf = append(buf, 'a')
	}
	buf = append(buf, byte('0'+p.Extend))
	for _, x := range []float64{p.X0, p.Y0, p.R0, p.X1, p.Y1, p.R1, p.TMin, p.TMax} {
		buf = strconv.AppendFloat(buf, x, 'g', -1, 64)
		buf = append(buf, ',')
	}
	for _, s := range p.Stops {
		for _, x := range []float64{s.Offset, s.R, s.G, s.B, s.A} {
			buf = strconv.AppendFloat(buf, x, 'g', -1, 64)
			buf = append(buf, ',')
		}
	}
	return string(buf)
}

// colorShading returns the shading for the colour part of the
// gradient, ignoring alpha.
func (p *Gradient) colorShading() shading.Shading {
	if p.Radial {
		return &shading.Radial{
			X0: p.X0, Y0: p.Y0, R0: p.R0,
			X1: p.X1, Y1: p.Y1, R1: p.R1,
			Stops:  p.Stops,
			Extend: p.Extend,
			TMin:   p.TMin, TMax: p.TMax,
		}
	}
	return &shading.Axial{
		X0: p.X0, Y0: p.Y0,
		X1: p.X1, Y1: p.Y1,
		Stops:  p.Stops,
		Extend: p.Extend,
		TMin:   p.TMin, TMax: p.TMax,
	}
}

// alphaShading returns the grayscale shading encoding the alpha ramp
// of the gradient, for use inside a luminosity soft mask.
func (p *Gradient) alphaShading() shading.Shading {
	switch s := p.colorShading().(type) {
	case *shading.Axial:
		return s.AlphaShading()
	case *shading.Radial:
		return s.AlphaShading()
	}
	panic("unreachable")
}

// SurfacePattern paints with the content of another surface, either a
// raster image or a recording.
type SurfacePattern struct {
	Source SourceSurface

	Extend shading.Extend

	// Matrix maps source-surface space (pixels for images, y growing
	// downwards, origin in the top-left corner) to page space.
	Matrix matrix.Matrix

	// SourceExtents is the part of the source required for this use,
	// in source-surface space.  It is computed by the caller's clip
	// machinery.
	SourceExtents rect.Rect

	// Smoothing requests image interpolation in the viewer.
	Smoothing bool
}

func (*SurfacePattern) isPattern() {}

// key returns the structural identity of the tiling pattern: source
// content, extend mode and placement.  The source extents are not
// part of the identity, they only grow the interned surface entry.
func (p *SurfacePattern) key() string {
	buf := make([]byte, 0, 64)
	buf = strconv.AppendUint(buf, p.Source.SurfaceID(), 10)
	buf = append(buf, byte('0'+p.Extend))
	return string(buf) + matrixKey(p.Matrix)
}

// MeshPattern paints with a Coons patch mesh.
type MeshPattern struct {
	Mesh *shading.Mesh

	// Matrix maps mesh space to page space.
	Matrix matrix.Matrix
}

func (*MeshPattern) isPattern() {}
