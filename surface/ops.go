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
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/pdfout"
	"seehuhn.de/go/pdfout/font"
	"seehuhn.de/go/pdfout/graphics/image"
	"seehuhn.de/go/pdfout/graphics/shading"
)

// TextRun is one run of glyphs from a single font subset, positioned
// by a text matrix.
type TextRun struct {
	Key    FontKey
	Subset *font.Subset
	Size   float64
	Matrix matrix.Matrix
	Glyphs []glyph.ID
}

func (r *TextRun) clone() *TextRun {
	c := *r
	c.Glyphs = make([]glyph.ID, len(r.Glyphs))
	copy(c.Glyphs, r.Glyphs)
	return &c
}

// analyzePattern says whether the pattern can be represented.  It is
// called in the analysis pass and must not change any state.
func (s *Surface) analyzePattern(p Pattern) error {
	switch p := p.(type) {
	case Solid:
		return nil
	case *Gradient:
		if len(p.Stops) == 0 {
			return fmt.Errorf("gradient without stops: %w", pdfout.ErrUnsupported)
		}
		return nil
	case *SurfacePattern:
		if p.Extend == shading.ExtendPad {
			// edge replication has no tiling-pattern equivalent
			return fmt.Errorf("pad extend on surface pattern: %w", pdfout.ErrUnsupported)
		}
		if img, ok := p.Source.(*ImageSource); ok {
			if img.Img == nil {
				if _, ok := image.ProbeJPEG(img.JPEGData); !ok {
					return fmt.Errorf("undecodable image data: %w", pdfout.ErrUnsupported)
				}
			}
		}
		return nil
	case *MeshPattern:
		return nil
	default:
		panic("unknown pattern kind")
	}
}

// beginOp validates the common preconditions of a render-pass
// operation.
func (s *Surface) beginOp() error {
	if s.g == nil {
		panic("surface: no open page")
	}
	return s.err
}

// needsScopedState says whether the operation must be bracketed in
// q/Q because it installs a graphics state dictionary (alpha or soft
// mask) which must not leak into following operations.
func needsScopedState(p Pattern) bool {
	switch p := p.(type) {
	case Solid:
		return p.A != 1
	case *Gradient:
		a, ok := shading.ConstantAlpha(p.Stops)
		return !ok || a != 1
	default:
		return false
	}
}

// applyAlpha installs a constant-alpha graphics state.  Alpha one is
// the default and needs no operator.
func (s *Surface) applyAlpha(a float64) error {
	if a == 1 {
		return nil
	}
	obj, err := s.reg.internAlpha(a)
	if err != nil {
		return err
	}
	s.g.SetExtGState(a, obj)
	return nil
}

// internSurfaceUse interns one use of a surface pattern's source and
// queues the entry for emission on first sight.
func (s *Surface) internSurfaceUse(p *SurfacePattern) (*surfaceEntry, error) {
	extending := p.Extend != shading.ExtendNone
	entry, isNew, err := s.reg.internSurface(p.Source, p.SourceExtents, extending, p.Smoothing)
	if err != nil {
		return nil, err
	}
	if isNew {
		if entry.asImage {
			s.imageQueue = append(s.imageQueue, entry)
		} else {
			s.recordingQueue = append(s.recordingQueue, entry)
		}
	}
	return entry, nil
}

// setSource selects the paint source in the content stream.
// alphaScale is an extra constant alpha multiplied into the source's
// own alpha (from a solid mask).  When the source needs a deferred
// soft mask, the returned group has its forward-referenced graphics
// state already installed; the caller fills in the geometry.
func (s *Surface) setSource(p Pattern, stroke bool, alphaScale float64) (*smaskGroup, error) {
	g := s.g
	switch p := p.(type) {
	case Solid:
		if stroke {
			g.SetStrokeRGB(p.R, p.G, p.B)
		} else {
			g.SetFillRGB(p.R, p.G, p.B)
		}
		return nil, s.applyAlpha(p.A * alphaScale)

	case *Gradient:
		var grp *smaskGroup
		if a, ok := shading.ConstantAlpha(p.Stops); ok {
			if err := s.applyAlpha(a * alphaScale); err != nil {
				return nil, err
			}
		} else {
			// The alpha ramp becomes a luminosity soft mask,
			// emitted later; the graphics state dictionary is
			// referenced before it exists.
			grp = &smaskGroup{
				source:    p,
				alpha:     alphaScale,
				gstateRef: s.out.Alloc(),
				groupRef:  s.out.Alloc(),
			}
			g.SetExtGState(grp.gstateRef, grp.gstateRef)
			s.smaskQueue = append(s.smaskQueue, grp)
		}
		ref, err := s.reg.internShadingPattern(p)
		if err != nil {
			return nil, err
		}
		if stroke {
			g.SetStrokePattern(ref, ref)
		} else {
			g.SetFillPattern(ref, ref)
		}
		return grp, nil

	case *SurfacePattern:
		entry, err := s.internSurfaceUse(p)
		if err != nil {
			return nil, err
		}
		// One pattern dictionary per structural identity; later
		// uses reuse the deferred reference.
		key := p.key()
		ref, ok := s.reg.tilings[key]
		if !ok {
			ref = s.out.Alloc()
			s.reg.tilings[key] = ref
			s.patternQueue = append(s.patternQueue, &patternWork{
				ref:   ref,
				entry: entry,
				pat:   p,
			})
		}
		if stroke {
			g.SetStrokePattern(ref, ref)
		} else {
			g.SetFillPattern(ref, ref)
		}
		return nil, s.applyAlpha(alphaScale)

	case *MeshPattern:
		ref, err := s.reg.internMeshPattern(p)
		if err != nil {
			return nil, err
		}
		if stroke {
			g.SetStrokePattern(ref, ref)
		} else {
			g.SetFillPattern(ref, ref)
		}
		return nil, s.applyAlpha(alphaScale)

	default:
		panic("unknown pattern kind")
	}
}

// Paint fills the whole clipped area with the source.
func (s *Surface) Paint(source Pattern) error {
	if s.pass == PassAnalyze {
		return s.analyzePattern(source)
	}
	if err := s.beginOp(); err != nil {
		return err
	}
	return s.paint(source, 1)
}

// paint implements Paint, with an extra constant alpha factored in
// from a solid mask.
func (s *Surface) paint(source Pattern, extraAlpha float64) error {
	g := s.g
	box := s.paintExtents()
	if isEmptyRect(box) {
		return nil
	}

	// An unrepeated image can be placed directly, without a pattern.
	if sp, ok := source.(*SurfacePattern); ok && sp.Extend == shading.ExtendNone && isImage(sp.Source) {
		entry, err := s.internSurfaceUse(sp)
		if err != nil {
			return s.fail(err)
		}
		g.PushGraphicsState()
		if err := s.applyAlpha(extraAlpha); err != nil {
			return s.fail(err)
		}
		w, h := float64(entry.width), float64(entry.height)
		unitToSource := matrix.Matrix{w, 0, 0, -h, 0, h}
		g.Transform(unitToSource.Mul(sp.Matrix))
		g.DrawXObject(entry.id, entry.ref)
		g.PopGraphicsState()
		return s.endOp()
	}

	scoped := extraAlpha != 1 || needsScopedState(source)
	if scoped {
		g.PushGraphicsState()
	}
	grp, err := s.setSource(source, false, extraAlpha)
	if err != nil {
		return s.fail(err)
	}
	g.Rectangle(box.LLx, box.LLy, box.URx-box.LLx, box.URy-box.LLy)
	g.Fill()
	if scoped {
		g.PopGraphicsState()
	}
	if grp != nil {
		grp.kind = opPaint
		grp.extents = box
	}
	return s.endOp()
}

// Mask paints the source, modulated by the alpha of the mask.  A
// solid mask folds into a constant alpha; any other mask becomes a
// deferred luminosity soft mask.
func (s *Surface) Mask(source, mask Pattern) error {
	if s.pass == PassAnalyze {
		if err := s.analyzePattern(source); err != nil {
			return err
		}
		if err := s.analyzePattern(mask); err != nil {
			return err
		}
		if _, ok := mask.(*MeshPattern); ok {
			return fmt.Errorf("mesh pattern as mask: %w", pdfout.ErrUnsupported)
		}
		if g, ok := source.(*Gradient); ok {
			if _, constant := shading.ConstantAlpha(g.Stops); !constant {
				if _, solid := mask.(Solid); !solid {
					// would need two soft masks at once
					return fmt.Errorf("translucent gradient under mask: %w", pdfout.ErrUnsupported)
				}
			}
		}
		return nil
	}
	if err := s.beginOp(); err != nil {
		return err
	}

	if m, ok := mask.(Solid); ok {
		return s.paint(source, m.A)
	}

	g := s.g
	box := s.paintExtents()
	if isEmptyRect(box) {
		return nil
	}
	grp := &smaskGroup{
		kind:      opMask,
		extents:   box,
		source:    source,
		mask:      mask,
		alpha:     1,
		gstateRef: s.out.Alloc(),
		groupRef:  s.out.Alloc(),
	}
	g.PushGraphicsState()
	g.SetExtGState(grp.gstateRef, grp.gstateRef)
	if _, err := s.setSource(source, false, 1); err != nil {
		return s.fail(err)
	}
	g.Rectangle(box.LLx, box.LLy, box.URx-box.LLx, box.URy-box.LLy)
	g.Fill()
	g.PopGraphicsState()
	s.smaskQueue = append(s.smaskQueue, grp)
	return s.endOp()
}

// Fill fills the path with the source.
func (s *Surface) Fill(path *Path, source Pattern, evenOdd bool) error {
	if s.pass == PassAnalyze {
		return s.analyzePattern(source)
	}
	if err := s.beginOp(); err != nil {
		return err
	}
	if path.IsEmpty() {
		return nil
	}

	g := s.g
	scoped := needsScopedState(source)
	if scoped {
		g.PushGraphicsState()
	}
	grp, err := s.setSource(source, false, 1)
	if err != nil {
		return s.fail(err)
	}
	path.replay(g)
	if evenOdd {
		g.FillEvenOdd()
	} else {
		g.Fill()
	}
	if scoped {
		g.PopGraphicsState()
	}
	if grp != nil {
		grp.kind = opFill
		grp.extents = intersect(path.Bounds(), s.paintExtents())
		grp.path = path.Clone()
		grp.evenOdd = evenOdd
	}
	return s.endOp()
}

// Stroke strokes the path with the source.
func (s *Surface) Stroke(path *Path, source Pattern, style *StrokeStyle) error {
	if s.pass == PassAnalyze {
		return s.analyzePattern(source)
	}
	if err := s.beginOp(); err != nil {
		return err
	}
	if path.IsEmpty() {
		return nil
	}

	g := s.g
	scoped := needsScopedState(source)
	if scoped {
		g.PushGraphicsState()
	}
	grp, err := s.setSource(source, true, 1)
	if err != nil {
		return s.fail(err)
	}
	style.apply(g)
	path.replay(g)
	g.Stroke()
	if scoped {
		g.PopGraphicsState()
	}
	if grp != nil {
		grp.kind = opStroke
		b := path.Bounds()
		pad := style.LineWidth
		b.LLx -= pad
		b.LLy -= pad
		b.URx += pad
		b.URy += pad
		grp.extents = intersect(b, s.paintExtents())
		grp.path = path.Clone()
		grp.style = style.clone()
	}
	return s.endOp()
}

// ShowGlyphs draws a glyph run with the source.
func (s *Surface) ShowGlyphs(run *TextRun, source Pattern) error {
	if s.pass == PassAnalyze {
		if err := s.analyzePattern(source); err != nil {
			return err
		}
		if run.Subset == nil || len(run.Subset.Glyphs) == 0 {
			return fmt.Errorf("empty font subset: %w", pdfout.ErrUnsupported)
		}
		return nil
	}
	if err := s.beginOp(); err != nil {
		return err
	}
	if len(run.Glyphs) == 0 {
		return nil
	}

	g := s.g
	scoped := needsScopedState(source)
	if scoped {
		g.PushGraphicsState()
	}
	grp, err := s.setSource(source, false, 1)
	if err != nil {
		return s.fail(err)
	}
	if err := s.showText(run); err != nil {
		return s.fail(err)
	}
	if scoped {
		g.PopGraphicsState()
	}
	if grp != nil {
		grp.kind = opShowGlyphs
		grp.extents = s.paintExtents()
		grp.run = run.clone()
	}
	return s.endOp()
}

// showText emits one glyph run into the current content stream.
func (s *Surface) showText(run *TextRun) error {
	emb, err := s.reg.internFont(run.Key, run.Subset)
	if err != nil {
		return err
	}
	g := s.g
	g.TextBegin()
	g.TextSetFont(run.Key, emb.Ref, run.Size)
	g.TextSetMatrix(run.Matrix)
	var out pdfout.String
	for _, gid := range run.Glyphs {
		out = emb.AppendCode(out, gid)
	}
	g.TextShow(out)
	g.TextEnd()
	return g.Err
}

func isImage(src SourceSurface) bool {
	_, ok := src.(*ImageSource)
	return ok
}
