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
	"errors"
	goimage "image"
	"image/color"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfout"
	"seehuhn.de/go/pdfout/graphics/shading"
)

// newTestSurface returns a surface in the render pass, writing an
// uncompressed PDF 1.4 file into buf.
func newTestSurface(t *testing.T) (*Surface, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	w, err := pdfout.NewWriter(buf, &pdfout.WriterOptions{
		Version:       pdfout.V1_4,
		NoCompression: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	s := New(w, &Options{Version: pdfout.V1_4, NoCompression: true})
	s.SetPass(PassRender)
	return s, buf
}

func opaqueImage(w, h int) *goimage.NRGBA {
	img := goimage.NewNRGBA(goimage.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{byte(x), byte(y), 0, 255})
		}
	}
	return img
}

func TestSolidPaint(t *testing.T) {
	s, buf := newTestSurface(t)

	if err := s.StartPage(100, 100); err != nil {
		t.Fatal(err)
	}
	if err := s.Paint(Solid{R: 1, A: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.ShowPage(); err != nil {
		t.Fatal(err)
	}
	if err := s.Finish(); err != nil {
		t.Fatal(err)
	}

	out := buf.Bytes()
	if !bytes.Contains(out, []byte("1 0 0 rg\n0 0 100 100 re\nf\n")) {
		t.Error("solid paint operators not found")
	}
	// an opaque solid paint needs no graphics state dictionary, no
	// pattern and no q/Q bracket
	for _, bad := range []string{"/ExtGState", "/Pattern", "q\n"} {
		if bytes.Contains(out, []byte(bad)) {
			t.Errorf("unexpected %q in output", bad)
		}
	}
	if !bytes.Contains(out, []byte("/Count 1")) {
		t.Error("missing /Count 1")
	}
}

func TestSolidAlphaScoped(t *testing.T) {
	s, buf := newTestSurface(t)

	if err := s.StartPage(100, 100); err != nil {
		t.Fatal(err)
	}
	if err := s.Paint(Solid{R: 1, A: 0.5}); err != nil {
		t.Fatal(err)
	}
	if err := s.ShowPage(); err != nil {
		t.Fatal(err)
	}
	if err := s.Finish(); err != nil {
		t.Fatal(err)
	}

	out := buf.Bytes()
	if !bytes.Contains(out, []byte("/CA 0.5")) {
		t.Error("missing /CA 0.5")
	}
	if !bytes.Contains(out, []byte("q\n")) || !bytes.Contains(out, []byte("Q\n")) {
		t.Error("translucent paint is not bracketed in q/Q")
	}
}

func TestClipRestrictsPaint(t *testing.T) {
	s, buf := newTestSurface(t)

	if err := s.StartPage(100, 100); err != nil {
		t.Fatal(err)
	}
	clip := &Clip{Boxes: []rect.Rect{{LLx: 10, LLy: 10, URx: 30, URy: 30}}}
	if err := s.SetClip(clip); err != nil {
		t.Fatal(err)
	}
	if err := s.Paint(Solid{B: 1, A: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.ShowPage(); err != nil {
		t.Fatal(err)
	}
	if err := s.Finish(); err != nil {
		t.Fatal(err)
	}

	out := buf.Bytes()
	if !bytes.Contains(out, []byte("10 10 20 20 re\nW\nn\n")) {
		t.Error("clip path not found")
	}
	// the paint rectangle is the clip extent
	if !bytes.Contains(out, []byte("10 10 20 20 re\nf\n")) {
		t.Error("paint is not restricted to the clip")
	}
}

func TestImageDedup(t *testing.T) {
	s, buf := newTestSurface(t)

	// Two different placements of the same image: two tiling
	// patterns, but only one image object.
	img := &ImageSource{ID: 1, Img: opaqueImage(2, 2)}
	pat1 := &SurfacePattern{
		Source:        img,
		Extend:        shading.ExtendNone,
		Matrix:        matrix.Identity,
		SourceExtents: rect.Rect{URx: 2, URy: 2},
	}
	pat2 := &SurfacePattern{
		Source:        img,
		Extend:        shading.ExtendNone,
		Matrix:        matrix.Translate(10, 10),
		SourceExtents: rect.Rect{URx: 2, URy: 2},
	}

	if err := s.StartPage(100, 100); err != nil {
		t.Fatal(err)
	}
	if err := s.Paint(pat1); err != nil {
		t.Fatal(err)
	}
	if err := s.Paint(pat2); err != nil {
		t.Fatal(err)
	}
	if err := s.ShowPage(); err != nil {
		t.Fatal(err)
	}

	if len(s.reg.surfaces) != 1 {
		t.Errorf("%d surface entries, want 1", len(s.reg.surfaces))
	}
	if len(s.imageQueue) != 1 {
		t.Errorf("%d image queue items, want 1", len(s.imageQueue))
	}

	if err := s.Finish(); err != nil {
		t.Fatal(err)
	}

	out := buf.Bytes()
	if n := bytes.Count(out, []byte("/Subtype /Image")); n != 1 {
		t.Errorf("%d image objects, want 1", n)
	}
	if n := bytes.Count(out, []byte("/X1 Do")); n != 2 {
		t.Errorf("%d draw operators, want 2", n)
	}
}

func TestTilingPatternDedup(t *testing.T) {
	s, buf := newTestSurface(t)

	img := &ImageSource{ID: 1, Img: opaqueImage(2, 2)}
	pat := &SurfacePattern{
		Source:        img,
		Extend:        shading.ExtendRepeat,
		Matrix:        matrix.Identity,
		SourceExtents: rect.Rect{URx: 2, URy: 2},
	}

	if err := s.StartPage(100, 100); err != nil {
		t.Fatal(err)
	}
	if err := s.Paint(pat); err != nil {
		t.Fatal(err)
	}
	if err := s.Paint(pat); err != nil {
		t.Fatal(err)
	}
	if err := s.ShowPage(); err != nil {
		t.Fatal(err)
	}

	if len(s.patternQueue) != 1 {
		t.Errorf("%d pattern queue items, want 1", len(s.patternQueue))
	}

	if err := s.Finish(); err != nil {
		t.Fatal(err)
	}

	out := buf.Bytes()
	if n := bytes.Count(out, []byte("/PatternType 1")); n != 1 {
		t.Errorf("%d tiling pattern objects, want 1", n)
	}
	if n := bytes.Count(out, []byte("0 0 100 100 re\nf\n")); n != 2 {
		t.Errorf("%d paint operations, want 2", n)
	}
}

func TestInternSurfaceExtents(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := pdfout.NewWriter(buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	r := newRegistry(w)

	natural := rect.Rect{URx: 100, URy: 100}
	src := &RecordingSource{
		ID:      7,
		Extents: &natural,
		Replay:  func(*Surface) error { return nil },
	}

	e, isNew, err := r.internSurface(src, rect.Rect{URx: 10, URy: 10}, false, false)
	if err != nil {
		t.Fatal(err)
	}
	if !isNew {
		t.Fatal("first use is not new")
	}
	if e.required != (rect.Rect{URx: 10, URy: 10}) {
		t.Errorf("required = %v after first use", e.required)
	}

	// later uses grow the union, clamped to the natural extent
	use2 := rect.Rect{LLx: 50, LLy: 50, URx: 200, URy: 80}
	e2, isNew, err := r.internSurface(src, use2, false, false)
	if err != nil {
		t.Fatal(err)
	}
	if isNew || e2 != e {
		t.Fatal("second use did not reuse the entry")
	}
	want := rect.Rect{URx: 100, URy: 80}
	if e.required != want {
		t.Errorf("required = %v, want %v", e.required, want)
	}

	// an extending use needs the full natural extent
	_, _, err = r.internSurface(src, rect.Rect{URx: 1, URy: 1}, true, false)
	if err != nil {
		t.Fatal(err)
	}
	if !e.unbounded || e.required != natural {
		t.Errorf("required = %v after extending use, want %v",
			e.required, natural)
	}

	// once unbounded, further bounded uses change nothing
	_, _, err = r.internSurface(src, rect.Rect{URx: 2, URy: 2}, false, false)
	if err != nil {
		t.Fatal(err)
	}
	if e.required != natural {
		t.Errorf("required = %v shrank again", e.required)
	}
}

func TestGradientSoftMask(t *testing.T) {
	s, buf := newTestSurface(t)

	grad := &Gradient{
		X0: 0, Y0: 0, X1: 100, Y1: 0,
		Stops: []shading.Stop{
			{Offset: 0, R: 1, A: 0},
			{Offset: 1, R: 1, A: 1},
		},
		Matrix: matrix.Identity,
	}

	path := &Path{}
	path.Rectangle(10, 10, 50, 50)

	if err := s.StartPage(100, 100); err != nil {
		t.Fatal(err)
	}
	if err := s.Fill(path, grad, false); err != nil {
		t.Fatal(err)
	}
	if len(s.smaskQueue) != 1 {
		t.Fatalf("%d soft-mask groups queued, want 1", len(s.smaskQueue))
	}
	if err := s.ShowPage(); err != nil {
		t.Fatal(err)
	}
	if s.smaskDone != 1 {
		t.Errorf("smaskDone = %d, want 1", s.smaskDone)
	}
	if err := s.Finish(); err != nil {
		t.Fatal(err)
	}

	out := buf.Bytes()
	for _, want := range []string{
		"/SMask", "/Luminosity", "/Group", "/Transparency",
		"/ShadingType 2", "/PatternType 2", "/DeviceGray",
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("missing %q in output", want)
		}
	}
}

func TestConstantAlphaGradient(t *testing.T) {
	s, buf := newTestSurface(t)

	grad := &Gradient{
		X0: 0, Y0: 0, X1: 100, Y1: 0,
		Stops: []shading.Stop{
			{Offset: 0, R: 1, A: 1},
			{Offset: 1, B: 1, A: 1},
		},
		Matrix: matrix.Identity,
	}

	if err := s.StartPage(100, 100); err != nil {
		t.Fatal(err)
	}
	if err := s.Paint(grad); err != nil {
		t.Fatal(err)
	}
	if err := s.ShowPage(); err != nil {
		t.Fatal(err)
	}
	if len(s.smaskQueue) != 0 {
		t.Errorf("opaque gradient queued a soft mask")
	}
	if err := s.Finish(); err != nil {
		t.Fatal(err)
	}

	out := buf.Bytes()
	if bytes.Contains(out, []byte("/SMask")) {
		t.Error("opaque gradient produced a soft mask")
	}
	if !bytes.Contains(out, []byte("/ShadingType 2")) {
		t.Error("missing shading dictionary")
	}
}

func TestGradientShadingDedup(t *testing.T) {
	s, buf := newTestSurface(t)

	mk := func() *Gradient {
		return &Gradient{
			X0: 0, Y0: 0, X1: 100, Y1: 0,
			Stops: []shading.Stop{
				{Offset: 0, R: 1, A: 1},
				{Offset: 1, B: 1, A: 1},
			},
			Matrix: matrix.Identity,
		}
	}

	if err := s.StartPage(100, 100); err != nil {
		t.Fatal(err)
	}
	// two structurally equal gradients, distinct values
	if err := s.Paint(mk()); err != nil {
		t.Fatal(err)
	}
	if err := s.Paint(mk()); err != nil {
		t.Fatal(err)
	}
	if err := s.ShowPage(); err != nil {
		t.Fatal(err)
	}
	if err := s.Finish(); err != nil {
		t.Fatal(err)
	}

	out := buf.Bytes()
	if n := bytes.Count(out, []byte("/ShadingType 2")); n != 1 {
		t.Errorf("%d shading dictionaries, want 1", n)
	}
	if n := bytes.Count(out, []byte("/PatternType 2")); n != 1 {
		t.Errorf("%d pattern dictionaries, want 1", n)
	}
}

func TestAnalyzeUnsupported(t *testing.T) {
	s, _ := newTestSurface(t)
	s.SetPass(PassAnalyze)

	pat := &SurfacePattern{
		Source: &ImageSource{ID: 1, Img: opaqueImage(2, 2)},
		Extend: shading.ExtendPad,
	}
	err := s.Paint(pat)
	if !errors.Is(err, pdfout.ErrUnsupported) {
		t.Errorf("Paint returned %v, want ErrUnsupported", err)
	}
	// analysis failures must not poison the document
	if s.Err() != nil {
		t.Errorf("document error latched: %v", s.Err())
	}

	if err := s.Paint(Solid{A: 1}); err != nil {
		t.Errorf("analysis of a solid paint failed: %v", err)
	}
}

func TestNestedRecordings(t *testing.T) {
	s, buf := newTestSurface(t)

	box := rect.Rect{URx: 10, URy: 10}
	tile := func(src SourceSurface) *SurfacePattern {
		return &SurfacePattern{
			Source:        src,
			Extend:        shading.ExtendRepeat,
			Matrix:        matrix.Identity,
			SourceExtents: box,
		}
	}

	rec3 := &RecordingSource{
		ID:      103,
		Extents: &box,
		Replay: func(s *Surface) error {
			return s.Paint(Solid{B: 1, A: 1})
		},
	}
	rec2 := &RecordingSource{
		ID:      102,
		Extents: &box,
		Replay: func(s *Surface) error {
			return s.Paint(tile(rec3))
		},
	}
	rec1 := &RecordingSource{
		ID:      101,
		Extents: &box,
		Replay: func(s *Surface) error {
			return s.Paint(tile(rec2))
		},
	}

	if err := s.StartPage(100, 100); err != nil {
		t.Fatal(err)
	}
	if err := s.Paint(tile(rec1)); err != nil {
		t.Fatal(err)
	}
	if err := s.ShowPage(); err != nil {
		t.Fatal(err)
	}

	// recordings are deferred to Finish; only the outermost is known
	// so far
	if len(s.recordingQueue) != 1 {
		t.Fatalf("%d recordings queued after ShowPage, want 1",
			len(s.recordingQueue))
	}

	if err := s.Finish(); err != nil {
		t.Fatal(err)
	}

	// each nesting level surfaces in its own finish round
	if s.finishRounds != 3 {
		t.Errorf("finishRounds = %d, want 3", s.finishRounds)
	}
	if s.recordingDone != 3 {
		t.Errorf("recordingDone = %d, want 3", s.recordingDone)
	}

	out := buf.Bytes()
	if n := bytes.Count(out, []byte("/PatternType 1")); n != 3 {
		t.Errorf("%d tiling patterns, want 3", n)
	}
	if n := bytes.Count(out, []byte("/Subtype /Form")); n != 3 {
		t.Errorf("%d form XObjects, want 3", n)
	}
}

func TestSolidMaskFolds(t *testing.T) {
	s, buf := newTestSurface(t)

	if err := s.StartPage(100, 100); err != nil {
		t.Fatal(err)
	}
	err := s.Mask(Solid{R: 1, A: 0.8}, Solid{A: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.smaskQueue) != 0 {
		t.Error("solid mask queued a soft-mask group")
	}
	if err := s.ShowPage(); err != nil {
		t.Fatal(err)
	}
	if err := s.Finish(); err != nil {
		t.Fatal(err)
	}

	// 0.8 * 0.5 = 0.4, a single combined alpha
	if !bytes.Contains(buf.Bytes(), []byte("/CA 0.4")) {
		t.Error("mask alpha not folded into the source alpha")
	}
}

func TestFinishTwice(t *testing.T) {
	s, _ := newTestSurface(t)

	if err := s.StartPage(10, 10); err != nil {
		t.Fatal(err)
	}
	if err := s.ShowPage(); err != nil {
		t.Fatal(err)
	}
	if err := s.Finish(); err != nil {
		t.Fatal(err)
	}
	if err := s.Finish(); err != pdfout.ErrClosed {
		t.Errorf("second Finish returned %v, want ErrClosed", err)
	}
}
