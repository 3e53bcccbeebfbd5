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
	"strconv"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfout"
	"seehuhn.de/go/pdfout/font"
	"seehuhn.de/go/pdfout/graphics"
	"seehuhn.de/go/pdfout/graphics/image"
	"seehuhn.de/go/pdfout/graphics/pattern"
	"seehuhn.de/go/pdfout/graphics/shading"
)

// FontKey identifies one font subset.  FontID is the identity of the
// original font, SubsetID distinguishes the subsets the caller's
// subsetter has cut from it.
type FontKey struct {
	FontID   uint64
	SubsetID uint32
}

// registry deduplicates shareable resources by content identity.
// Exactly one object is emitted per identity; all later uses reuse
// the first reference.
type registry struct {
	w *pdfout.Writer

	surfaces map[uint64]*surfaceEntry
	shadings map[string]pdfout.Reference
	patterns map[string]pdfout.Reference
	tilings  map[string]pdfout.Reference
	meshes   map[meshKey]pdfout.Reference
	alphas   map[float64]pdfout.Object
	fonts    map[FontKey]*font.Embedded
}

// meshKey identifies one use of a mesh shading: the mesh itself plus
// the placement matrix.
type meshKey struct {
	mesh *shading.Mesh
	mat  matrix.Matrix
}

func newRegistry(w *pdfout.Writer) *registry {
	return &registry{
		w:        w,
		surfaces: make(map[uint64]*surfaceEntry),
		shadings: make(map[string]pdfout.Reference),
		patterns: make(map[string]pdfout.Reference),
		tilings:  make(map[string]pdfout.Reference),
		meshes:   make(map[meshKey]pdfout.Reference),
		alphas:   make(map[float64]pdfout.Object),
		fonts:    make(map[FontKey]*font.Embedded),
	}
}

// internSurface interns one use of a source surface.  On the first
// use the entry is created and a "test" emission fixes the encoding
// (image or form) and, for images, the pixel size; no bytes are
// written yet, so later uses can still grow the required extents.  On
// later uses the use extents are unioned into the entry, or the entry
// is marked unbounded when the referencing pattern extends beyond its
// box.
func (r *registry) internSurface(src SourceSurface, use rect.Rect, extending, smoothing bool) (*surfaceEntry, bool, error) {
	if e, ok := r.surfaces[src.SurfaceID()]; ok {
		if extending {
			e.unbounded = true
			e.required = e.natural
		} else if !e.unbounded {
			e.required = intersect(union(e.required, use), e.natural)
		}
		e.smoothing = e.smoothing || smoothing
		return e, false, nil
	}

	e := &surfaceEntry{
		id:        src.SurfaceID(),
		src:       src,
		smoothing: smoothing,
	}
	switch src := src.(type) {
	case *ImageSource:
		e.asImage = true
		e.bounded = true
		if jpg, ok := image.ProbeJPEG(src.JPEGData); ok {
			e.jpeg = jpg
			e.width = jpg.Width
			e.height = jpg.Height
			e.opaque = true
		} else if src.Img != nil {
			b := src.Img.Bounds()
			e.width = b.Dx()
			e.height = b.Dy()
			if op, ok := src.Img.(interface{ Opaque() bool }); ok {
				e.opaque = op.Opaque()
			}
		} else {
			return nil, false, fmt.Errorf("image surface %d has no data", src.ID)
		}
		e.natural = rect.Rect{URx: float64(e.width), URy: float64(e.height)}
	case *RecordingSource:
		if src.Extents != nil {
			e.natural = *src.Extents
			e.bounded = true
		} else {
			e.natural = src.InkExtents
		}
	default:
		panic("unknown source surface kind")
	}

	if extending {
		e.unbounded = true
		e.required = e.natural
	} else {
		e.required = intersect(use, e.natural)
	}

	e.ref = r.w.Alloc()
	r.surfaces[e.id] = e
	return e, true, nil
}

// internShading embeds the colour shading of the gradient, reusing an
// earlier embedding if a structurally equal gradient was seen before.
func (r *registry) internShading(g *Gradient) (pdfout.Reference, error) {
	key := g.key()
	if ref, ok := r.shadings[key]; ok {
		return ref, nil
	}
	ref, err := g.colorShading().Embed(r.w)
	if err != nil {
		return 0, err
	}
	r.shadings[key] = ref
	return ref, nil
}

// internShadingPattern embeds the shading pattern dictionary for the
// gradient, keyed by gradient identity plus matrix.
func (r *registry) internShadingPattern(g *Gradient) (pdfout.Reference, error) {
	key := g.key() + matrixKey(g.Matrix)
	if ref, ok := r.patterns[key]; ok {
		return ref, nil
	}
	sRef, err := r.internShading(g)
	if err != nil {
		return 0, err
	}
	pat := &pattern.Type2{Shading: sRef, Matrix: g.Matrix}
	ref, err := pat.Embed(r.w)
	if err != nil {
		return 0, err
	}
	r.patterns[key] = ref
	return ref, nil
}

// internMeshPattern embeds the mesh shading and its shading pattern
// dictionary, keyed by mesh identity plus matrix.
func (r *registry) internMeshPattern(p *MeshPattern) (pdfout.Reference, error) {
	key := meshKey{mesh: p.Mesh, mat: p.Matrix}
	if ref, ok := r.meshes[key]; ok {
		return ref, nil
	}
	sRef, err := p.Mesh.Embed(r.w)
	if err != nil {
		return 0, err
	}
	pat := &pattern.Type2{Shading: sRef, Matrix: p.Matrix}
	ref, err := pat.Embed(r.w)
	if err != nil {
		return 0, err
	}
	r.meshes[key] = ref
	return ref, nil
}

// internAlpha returns the graphics state dictionary setting the given
// constant alpha.  Alphas are keyed by exact floating point value.
func (r *registry) internAlpha(a float64) (pdfout.Object, error) {
	if obj, ok := r.alphas[a]; ok {
		return obj, nil
	}
	gs := &graphics.ExtGState{
		StrokeAlpha: a,
		FillAlpha:   a,
		SetAlpha:    true,
	}
	obj, err := gs.Embed(r.w)
	if err != nil {
		return nil, err
	}
	r.alphas[a] = obj
	return obj, nil
}

// internFont embeds the font subset on first use.
func (r *registry) internFont(key FontKey, subset *font.Subset) (*font.Embedded, error) {
	if emb, ok := r.fonts[key]; ok {
		return emb, nil
	}
	ref := r.w.Alloc()
	emb, err := subset.Embed(r.w, ref)
	if err != nil {
		return nil, err
	}
	r.fonts[key] = emb
	return emb, nil
}

func matrixKey(m matrix.Matrix) string {
	buf := make([]byte, 0, 64)
	for _, x := range m {
		buf = strconv.AppendFloat(buf, x, 'g', -1, 64)
		buf = append(buf, ',')
	}
	return string(buf)
}
