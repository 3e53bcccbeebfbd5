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
	"math"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfout/graphics"
)

// Path is a flattened path descriptor, ready to be replayed into a
// content stream.  Paths are built by the caller's geometry code and
// used verbatim here.
type Path struct {
	elems []pathElem
}

type pathElemKind byte

const (
	pathMoveTo pathElemKind = iota
	pathLineTo
	pathCurveTo
	pathClose
)

type pathElem struct {
	kind pathElemKind
	pt   [6]float64
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.elems = append(p.elems, pathElem{kind: pathMoveTo, pt: [6]float64{x, y}})
}

// LineTo adds a straight line segment.
func (p *Path) LineTo(x, y float64) {
	p.elems = append(p.elems, pathElem{kind: pathLineTo, pt: [6]float64{x, y}})
}

// CurveTo adds a cubic Bézier segment.
func (p *Path) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	p.elems = append(p.elems,
		pathElem{kind: pathCurveTo, pt: [6]float64{x1, y1, x2, y2, x3, y3}})
}

// ClosePath closes the current subpath.
func (p *Path) ClosePath() {
	p.elems = append(p.elems, pathElem{kind: pathClose})
}

// Rectangle adds a closed rectangular subpath.
func (p *Path) Rectangle(x, y, width, height float64) {
	p.MoveTo(x, y)
	p.LineTo(x+width, y)
	p.LineTo(x+width, y+height)
	p.LineTo(x, y+height)
	p.ClosePath()
}

// IsEmpty reports whether the path contains no segments.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.elems) == 0
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	if p == nil {
		return nil
	}
	elems := make([]pathElem, len(p.elems))
	copy(elems, p.elems)
	return &Path{elems: elems}
}

// Bounds returns the control-point bounding box of the path.  For
// Bézier segments this over-estimates the ink extent, which is safe
// for clipping and mask boxes.
func (p *Path) Bounds() rect.Rect {
	b := rect.Rect{
		LLx: math.Inf(+1), LLy: math.Inf(+1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	numPts := map[pathElemKind]int{
		pathMoveTo:  1,
		pathLineTo:  1,
		pathCurveTo: 3,
	}
	for _, e := range p.elems {
		for i := 0; i < numPts[e.kind]; i++ {
			x, y := e.pt[2*i], e.pt[2*i+1]
			b.LLx = math.Min(b.LLx, x)
			b.LLy = math.Min(b.LLy, y)
			b.URx = math.Max(b.URx, x)
			b.URy = math.Max(b.URy, y)
		}
	}
	if b.LLx > b.URx {
		return rect.Rect{}
	}
	return b
}

func (p *Path) replay(g *graphics.Writer) {
	for _, e := range p.elems {
		switch e.kind {
		case pathMoveTo:
			g.MoveTo(e.pt[0], e.pt[1])
		case pathLineTo:
			g.LineTo(e.pt[0], e.pt[1])
		case pathCurveTo:
			g.CurveTo(e.pt[0], e.pt[1], e.pt[2], e.pt[3], e.pt[4], e.pt[5])
		case pathClose:
			g.ClosePath()
		}
	}
}

// Clip restricts drawing to a region.  Either Boxes or Path is set,
// never both.  A nil *Clip means no clipping.
//
// The box list describes the clip region as a union of axis-aligned
// rectangles; it is clipped as a single nonzero-winding path.  All
// rectangles share one orientation, so overlapping boxes do not
// cancel.
type Clip struct {
	Boxes   []rect.Rect
	Path    *Path
	EvenOdd bool
}

// Extents returns the bounding box of the clip region.
func (c *Clip) Extents() rect.Rect {
	if c.Path != nil {
		return c.Path.Bounds()
	}
	var b rect.Rect
	for i, box := range c.Boxes {
		if i == 0 {
			b = box
			continue
		}
		b = union(b, box)
	}
	return b
}

func (c *Clip) clone() *Clip {
	if c == nil {
		return nil
	}
	boxes := make([]rect.Rect, len(c.Boxes))
	copy(boxes, c.Boxes)
	return &Clip{Boxes: boxes, Path: c.Path.Clone(), EvenOdd: c.EvenOdd}
}

func (c *Clip) apply(g *graphics.Writer) {
	if c.Path != nil {
		c.Path.replay(g)
		if c.EvenOdd {
			g.ClipEvenOdd()
		} else {
			g.ClipNonZero()
		}
		g.EndPath()
		return
	}
	for _, box := range c.Boxes {
		g.Rectangle(box.LLx, box.LLy, box.URx-box.LLx, box.URy-box.LLy)
	}
	g.ClipNonZero()
	g.EndPath()
}

// StrokeStyle collects the pen parameters of a stroke operation.
type StrokeStyle struct {
	LineWidth   float64
	Cap         graphics.LineCapStyle
	Join        graphics.LineJoinStyle
	MiterLimit  float64
	DashPattern []float64
	DashPhase   float64
}

func (s *StrokeStyle) clone() *StrokeStyle {
	if s == nil {
		return nil
	}
	c := *s
	c.DashPattern = make([]float64, len(s.DashPattern))
	copy(c.DashPattern, s.DashPattern)
	return &c
}

func (s *StrokeStyle) apply(g *graphics.Writer) {
	g.SetLineWidth(s.LineWidth)
	g.SetLineCap(s.Cap)
	g.SetLineJoin(s.Join)
	if s.MiterLimit > 0 {
		g.SetMiterLimit(s.MiterLimit)
	}
	if len(s.DashPattern) > 0 {
		g.SetLineDash(s.DashPattern, s.DashPhase)
	}
}

// union returns the smallest rectangle containing both a and b.
func union(a, b rect.Rect) rect.Rect {
	return rect.Rect{
		LLx: math.Min(a.LLx, b.LLx),
		LLy: math.Min(a.LLy, b.LLy),
		URx: math.Max(a.URx, b.URx),
		URy: math.Max(a.URy, b.URy),
	}
}

// intersect returns the intersection of a and b, or an empty rectangle
// if they do not overlap.
func intersect(a, b rect.Rect) rect.Rect {
	r := rect.Rect{
		LLx: math.Max(a.LLx, b.LLx),
		LLy: math.Max(a.LLy, b.LLy),
		URx: math.Min(a.URx, b.URx),
		URy: math.Min(a.URy, b.URy),
	}
	if r.LLx >= r.URx || r.LLy >= r.URy {
		return rect.Rect{}
	}
	return r
}

func isEmptyRect(r rect.Rect) bool {
	return r.LLx >= r.URx || r.LLy >= r.URy
}
