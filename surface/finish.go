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
	"bytes"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfout"
	"seehuhn.de/go/pdfout/graphics"
	"seehuhn.de/go/pdfout/graphics/color"
	"seehuhn.de/go/pdfout/graphics/image"
	"seehuhn.de/go/pdfout/graphics/pattern"
	"seehuhn.de/go/pdfout/graphics/shading"
)

// bigStep is the tile advance used when a pattern must not repeat
// within any realistic target area.
const bigStep = 1e6

// Emitting one deferred item can enqueue further items on any queue:
// a soft-mask group references its mask surface, a tiling pattern
// references its cell content, and replaying a recording runs
// arbitrary drawing operations.  The queues are therefore plain
// slices walked by index, and the drain loops run until no queue
// grows any more.  Termination relies on the registry's
// deduplication: content must not be cyclically self-referential.

// drainPageQueues emits all page-scoped deferred work: soft-mask
// groups, tiling patterns and images.  Recorded surfaces stay queued,
// since later pages can still grow their required extents.
func (s *Surface) drainPageQueues() error {
	for {
		progress := false
		if err := s.drainSmasks(&progress); err != nil {
			return s.fail(err)
		}
		if err := s.drainPatterns(&progress); err != nil {
			return s.fail(err)
		}
		if err := s.drainImages(&progress); err != nil {
			return s.fail(err)
		}
		if !progress {
			return nil
		}
	}
}

// drainAll drains all four queues to a fixed point.
func (s *Surface) drainAll() error {
	for {
		progress := false
		if err := s.drainSmasks(&progress); err != nil {
			return s.fail(err)
		}
		if err := s.drainPatterns(&progress); err != nil {
			return s.fail(err)
		}
		if err := s.drainImages(&progress); err != nil {
			return s.fail(err)
		}
		if err := s.drainRecordings(&progress); err != nil {
			return s.fail(err)
		}
		if !progress {
			return nil
		}
		s.finishRounds++
	}
}

func (s *Surface) drainSmasks(progress *bool) error {
	n := len(s.smaskQueue)
	for i := s.smaskDone; i < n; i++ {
		if err := s.emitSmaskGroup(s.smaskQueue[i]); err != nil {
			return err
		}
		*progress = true
	}
	s.smaskDone = n
	return nil
}

func (s *Surface) drainPatterns(progress *bool) error {
	n := len(s.patternQueue)
	for i := s.patternDone; i < n; i++ {
		if err := s.emitPattern(s.patternQueue[i]); err != nil {
			return err
		}
		*progress = true
	}
	s.patternDone = n
	return nil
}

func (s *Surface) drainImages(progress *bool) error {
	n := len(s.imageQueue)
	for i := s.imageDone; i < n; i++ {
		if err := s.emitSurfaceEntry(s.imageQueue[i]); err != nil {
			return err
		}
		*progress = true
	}
	s.imageDone = n
	return nil
}

func (s *Surface) drainRecordings(progress *bool) error {
	n := len(s.recordingQueue)
	for i := s.recordingDone; i < n; i++ {
		if err := s.emitSurfaceEntry(s.recordingQueue[i]); err != nil {
			return err
		}
		*progress = true
	}
	s.recordingDone = n
	return nil
}

// emitSmaskGroup writes the transparency-group form and the graphics
// state dictionary of one deferred soft mask, at the object numbers
// the content stream has already referenced.
func (s *Surface) emitSmaskGroup(grp *smaskGroup) error {
	buf := &bytes.Buffer{}
	gw := graphics.NewWriter(buf)
	restore := s.pushTarget(gw, grp.extents)
	err := s.writeGroupContent(grp)
	restore()
	if err != nil {
		return err
	}
	if gw.Err != nil {
		return gw.Err
	}

	cs, err := color.DeviceGray.Embed(s.out)
	if err != nil {
		return err
	}
	form := &graphics.Form{
		BBox:      pdfRect(grp.extents),
		Resources: gw.Resources,
		Group: pdfout.Dict{
			"Type": pdfout.Name("Group"),
			"S":    pdfout.Name("Transparency"),
			"CS":   cs,
			"I":    pdfout.Boolean(true),
		},
	}
	err = form.Embed(s.out, grp.groupRef, buf.Bytes())
	if err != nil {
		return err
	}

	gs := pdfout.Dict{
		"Type": pdfout.Name("ExtGState"),
		"SMask": pdfout.Dict{
			"Type": pdfout.Name("Mask"),
			"S":    pdfout.Name("Luminosity"),
			"G":    grp.groupRef,
		},
		"CA": pdfout.Number(grp.alpha),
		"ca": pdfout.Number(grp.alpha),
	}
	return s.out.Put(grp.gstateRef, gs)
}

// writeGroupContent draws the grayscale mask content into the current
// target.  The luminance of the result modulates the alpha of the
// operation which created the group.
func (s *Surface) writeGroupContent(grp *smaskGroup) error {
	if grp.kind == opMask {
		return s.writeMaskContent(grp)
	}

	// The alpha ramp of the source gradient, as a gray shading.
	p := grp.source.(*Gradient)
	stroke := grp.kind == opStroke
	err := s.setGraySource(p, stroke)
	if err != nil {
		return err
	}

	g := s.g
	switch grp.kind {
	case opPaint:
		b := grp.extents
		g.Rectangle(b.LLx, b.LLy, b.URx-b.LLx, b.URy-b.LLy)
		g.Fill()
	case opFill:
		grp.path.replay(g)
		if grp.evenOdd {
			g.FillEvenOdd()
		} else {
			g.Fill()
		}
	case opStroke:
		grp.style.apply(g)
		grp.path.replay(g)
		g.Stroke()
	case opShowGlyphs:
		return s.showText(grp.run)
	}
	return g.Err
}

// writeMaskContent draws the mask pattern of a Mask operation.
func (s *Surface) writeMaskContent(grp *smaskGroup) error {
	switch mask := grp.mask.(type) {
	case *Gradient:
		err := s.setGraySource(mask, false)
		if err != nil {
			return err
		}
		b := grp.extents
		s.g.Rectangle(b.LLx, b.LLy, b.URx-b.LLx, b.URy-b.LLy)
		s.g.Fill()
		return s.g.Err
	case *SurfacePattern:
		// the luminance of the painted surface becomes the mask
		return s.paint(mask, 1)
	default:
		panic("unexpected mask pattern kind")
	}
}

// setGraySource selects the grayscale alpha shading of the gradient
// as paint source.  Each group embeds its own copy; gray trees are
// not interned.
func (s *Surface) setGraySource(p *Gradient, stroke bool) error {
	sRef, err := p.alphaShading().Embed(s.out)
	if err != nil {
		return err
	}
	pat := &pattern.Type2{Shading: sRef, Matrix: p.Matrix}
	ref, err := pat.Embed(s.out)
	if err != nil {
		return err
	}
	if stroke {
		s.g.SetStrokePattern(ref, ref)
	} else {
		s.g.SetFillPattern(ref, ref)
	}
	return nil
}

// emitPattern writes the tiling pattern dictionary of one deferred
// surface pattern.
func (s *Surface) emitPattern(pw *patternWork) error {
	e := pw.entry

	buf := &bytes.Buffer{}
	gw := graphics.NewWriter(buf)

	// the pattern cell, in source-surface space
	var cell rect.Rect
	var base matrix.Matrix
	if e.asImage {
		w, h := float64(e.width), float64(e.height)
		cell = rect.Rect{URx: w, URy: h}
		base = matrix.Matrix{w, 0, 0, -h, 0, h}
	} else {
		cell = e.required
		base = matrix.Identity
	}
	draw := func(m matrix.Matrix) {
		gw.PushGraphicsState()
		gw.Transform(m)
		gw.DrawXObject(e.id, e.ref)
		gw.PopGraphicsState()
	}

	w := cell.URx - cell.LLx
	h := cell.URy - cell.LLy
	bbox := cell
	xStep, yStep := w, h
	switch pw.pat.Extend {
	case shading.ExtendNone:
		xStep, yStep = bigStep, bigStep
		draw(base)
	case shading.ExtendRepeat:
		draw(base)
	case shading.ExtendReflect:
		// four mirrored copies form one period
		bbox.URx = cell.LLx + 2*w
		bbox.URy = cell.LLy + 2*h
		xStep, yStep = 2*w, 2*h
		mirrors := []matrix.Matrix{
			matrix.Identity,
			{-1, 0, 0, 1, 2 * cell.URx, 0},
			{1, 0, 0, -1, 0, 2 * cell.URy},
			{-1, 0, 0, -1, 2 * cell.URx, 2 * cell.URy},
		}
		for _, m := range mirrors {
			draw(base.Mul(m))
		}
	}
	if gw.Err != nil {
		return gw.Err
	}

	pat := &pattern.Type1{
		BBox:       pdfRect(bbox),
		XStep:      xStep,
		YStep:      yStep,
		Matrix:     pw.pat.Matrix,
		TilingType: 1,
		Resources:  gw.Resources,
	}
	return pat.Embed(s.out, pw.ref, buf.Bytes())
}

// emitSurfaceEntry writes the object of one interned source surface.
func (s *Surface) emitSurfaceEntry(e *surfaceEntry) error {
	if e.emitted {
		return nil
	}
	e.emitted = true

	switch src := e.src.(type) {
	case *ImageSource:
		if e.jpeg != nil {
			return e.jpeg.Embed(s.out, e.ref)
		}
		im := image.FromImage(src.Img)
		im.Interpolate = e.smoothing
		return im.Embed(s.out, e.ref)

	case *RecordingSource:
		buf := &bytes.Buffer{}
		gw := graphics.NewWriter(buf)
		restore := s.pushTarget(gw, e.required)
		err := src.Replay(s)
		restore()
		if err != nil {
			return err
		}
		if gw.Err != nil {
			return gw.Err
		}
		cs, err := color.DeviceRGB.Embed(s.out)
		if err != nil {
			return err
		}
		form := &graphics.Form{
			BBox:      pdfRect(e.required),
			Resources: gw.Resources,
			// an isolated group, so that replayed content cannot
			// blend with the backdrop it is composited onto
			Group: pdfout.Dict{
				"Type": pdfout.Name("Group"),
				"S":    pdfout.Name("Transparency"),
				"CS":   cs,
				"I":    pdfout.Boolean(true),
			},
		}
		return form.Embed(s.out, e.ref, buf.Bytes())
	}
	panic("unknown source surface kind")
}
