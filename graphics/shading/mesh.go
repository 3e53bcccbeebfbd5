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
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/pdfout"
)

// Mesh is a Coons patch mesh shading (shading type 6), built patch by
// patch.
//
// Each patch is described by four cubic Bezier boundary curves and
// four corner colours.  A patch under construction must be finished
// with [Mesh.EndPatch] before the mesh can be embedded.
type Mesh struct {
	patches []meshPatch
	cur     *meshPatch
}

type meshPoint struct {
	X, Y float64
}

type meshPatch struct {
	// pts are the 12 boundary control points, starting at the first
	// corner and going around the patch.
	pts []meshPoint

	colors   [4][3]float64
	haveCol  [4]bool
	numSides int
	started  bool
}

// BeginPatch starts a new patch.
func (m *Mesh) BeginPatch() error {
	if m.cur != nil {
		return errors.New("mesh: patch already started")
	}
	m.cur = &meshPatch{}
	return nil
}

// MoveTo sets the first corner of the current patch.
func (m *Mesh) MoveTo(x, y float64) error {
	if m.cur == nil || m.cur.started {
		return errors.New("mesh: unexpected MoveTo")
	}
	m.cur.pts = append(m.cur.pts, meshPoint{x, y})
	m.cur.started = true
	return nil
}

// CurveTo adds one side of the current patch as a cubic Bezier curve.
func (m *Mesh) CurveTo(x1, y1, x2, y2, x3, y3 float64) error {
	if m.cur == nil || !m.cur.started || m.cur.numSides >= 4 {
		return errors.New("mesh: unexpected CurveTo")
	}
	m.cur.pts = append(m.cur.pts,
		meshPoint{x1, y1}, meshPoint{x2, y2}, meshPoint{x3, y3})
	m.cur.numSides++
	return nil
}

// LineTo adds one side of the current patch as a straight line,
// promoted to a degenerate Bezier curve.
func (m *Mesh) LineTo(x, y float64) error {
	if m.cur == nil || !m.cur.started || m.cur.numSides >= 4 {
		return errors.New("mesh: unexpected LineTo")
	}
	n := len(m.cur.pts)
	p0 := m.cur.pts[n-1]
	c1 := meshPoint{p0.X + (x-p0.X)/3, p0.Y + (y-p0.Y)/3}
	c2 := meshPoint{p0.X + 2*(x-p0.X)/3, p0.Y + 2*(y-p0.Y)/3}
	m.cur.pts = append(m.cur.pts, c1, c2, meshPoint{x, y})
	m.cur.numSides++
	return nil
}

// SetCornerColor sets the colour of corner i (0 to 3) of the current
// patch.
func (m *Mesh) SetCornerColor(i int, r, g, b float64) error {
	if m.cur == nil || i < 0 || i > 3 {
		return errors.New("mesh: unexpected SetCornerColor")
	}
	m.cur.colors[i] = [3]float64{r, g, b}
	m.cur.haveCol[i] = true
	return nil
}

// EndPatch finishes the current patch.  A missing fourth side is
// synthesised as a straight line back to the first corner; missing
// corner colours are copied from the previous corner.
func (m *Mesh) EndPatch() error {
	p := m.cur
	if p == nil || !p.started || p.numSides < 3 {
		return errors.New("mesh: patch incomplete")
	}

	if p.numSides == 3 {
		first := p.pts[0]
		err := m.LineTo(first.X, first.Y)
		if err != nil {
			return err
		}
	}
	// drop the closing corner, it equals the first one
	p.pts = p.pts[:12]

	for i := range 4 {
		if !p.haveCol[i] {
			p.colors[i] = p.colors[(i+3)%4]
		}
	}

	m.patches = append(m.patches, *p)
	m.cur = nil
	return nil
}

// Embed writes the mesh shading to the file and returns the reference
// to the shading dictionary.
func (m *Mesh) Embed(w *pdfout.Writer) (pdfout.Reference, error) {
	if m.cur != nil {
		return 0, fmt.Errorf("mesh shading: %w", pdfout.ErrIncomplete)
	}
	if len(m.patches) == 0 {
		return 0, errors.New("mesh shading: no patches")
	}

	xMin := math.Inf(1)
	xMax := math.Inf(-1)
	yMin := math.Inf(1)
	yMax := math.Inf(-1)
	for _, p := range m.patches {
		for _, pt := range p.pts {
			xMin = math.Min(xMin, pt.X)
			xMax = math.Max(xMax, pt.X)
			yMin = math.Min(yMin, pt.Y)
			yMax = math.Max(yMax, pt.Y)
		}
	}
	if xMax <= xMin {
		xMax = xMin + 1
	}
	if yMax <= yMin {
		yMax = yMin + 1
	}

	dict := pdfout.Dict{
		"ShadingType":       pdfout.Integer(6),
		"ColorSpace":        pdfout.Name("DeviceRGB"),
		"BitsPerCoordinate": pdfout.Integer(32),
		"BitsPerComponent":  pdfout.Integer(8),
		"BitsPerFlag":       pdfout.Integer(8),
		"Decode": pdfout.Array{
			pdfout.Number(xMin), pdfout.Number(xMax),
			pdfout.Number(yMin), pdfout.Number(yMax),
			pdfout.Integer(0), pdfout.Integer(1),
			pdfout.Integer(0), pdfout.Integer(1),
			pdfout.Integer(0), pdfout.Integer(1),
		},
	}

	ref := w.Alloc()
	stm, err := w.OpenStream(ref, dict, pdfout.FilterFlate{})
	if err != nil {
		return 0, err
	}

	var buf [4]byte
	coord := func(v, lo, hi float64) error {
		t := (v - lo) / (hi - lo)
		binary.BigEndian.PutUint32(buf[:], uint32(math.Round(t*math.MaxUint32)))
		_, err := stm.Write(buf[:])
		return err
	}
	for _, p := range m.patches {
		_, err = stm.Write([]byte{0}) // new patch, no shared edge
		if err != nil {
			return 0, err
		}
		for _, pt := range p.pts {
			if err := coord(pt.X, xMin, xMax); err != nil {
				return 0, err
			}
			if err := coord(pt.Y, yMin, yMax); err != nil {
				return 0, err
			}
		}
		for _, col := range p.colors {
			for _, c := range col {
				_, err = stm.Write([]byte{uint8(math.Round(clamp01(c) * 255))})
				if err != nil {
					return 0, err
				}
			}
		}
	}
	err = stm.Close()
	if err != nil {
		return 0, err
	}

	return ref, nil
}

func clamp01(x float64) float64 {
	return math.Min(1, math.Max(0, x))
}
