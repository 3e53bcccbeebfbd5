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

// Package surface turns a session of drawing operations into a PDF
// document.
//
// The caller drives each page twice: first in the analysis pass,
// where every operation only answers whether it can be represented
// (unsupported operations are reported as [pdfout.ErrUnsupported] so
// the caller can substitute a rasterized fallback), then in the
// render pass, where operators are emitted.  Shared resources are
// interned by content identity and written at most once; resources
// whose final shape is not known while a page is open (soft-mask
// groups, tiling patterns, recorded surfaces) are deferred into work
// queues and the content stream references them by pre-allocated
// object number.
package surface

import (
	"bytes"
	"errors"
	goimage "image"

	"golang.org/x/text/language"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfout"
	"seehuhn.de/go/pdfout/graphics"
	"seehuhn.de/go/pdfout/graphics/color"
	"seehuhn.de/go/pdfout/graphics/image"
	"seehuhn.de/go/pdfout/metadata"
	"seehuhn.de/go/pdfout/pagetree"
)

// Pass selects the behaviour of the drawing operations.
type Pass int

// The two passes of the driver.
const (
	PassAnalyze Pass = iota
	PassRender
)

// Options controls document-wide settings.  The zero value selects
// PDF 1.4, compressed streams and no metadata.
type Options struct {
	// Version is the PDF version of the output.  It is fixed for the
	// lifetime of the document and gates feature availability
	// (compressed object streams and the cross-reference stream need
	// PDF 1.5).
	Version pdfout.Version

	// NoCompression disables Flate compression of content streams.
	NoCompression bool

	// Info, if non-nil, is written as the document information
	// dictionary and, if WriteXMP is set, mirrored into an XMP
	// metadata stream.
	Info     *pdfout.Info
	WriteXMP bool

	// Lang is the natural language of the document.
	Lang language.Tag

	// OutputProfile, if non-nil, is an ICC profile describing the
	// intended output device.  It is embedded as an output intent.
	OutputProfile []byte
}

// Surface is one PDF document being written.
type Surface struct {
	out   *pdfout.Writer
	pages *pagetree.Writer
	reg   *registry

	opt Options

	pass Pass
	err  error

	page *pageState

	// current content target; swapped while groups and recordings
	// are being recorded
	g         *graphics.Writer
	buf       *bytes.Buffer
	targetBox rect.Rect
	clip      *Clip
	clipDepth int

	// deferred work, drained to a fixed point
	smaskQueue     []*smaskGroup
	smaskDone      int
	patternQueue   []*patternWork
	patternDone    int
	imageQueue     []*surfaceEntry
	imageDone      int
	recordingQueue []*surfaceEntry
	recordingDone  int

	finishRounds int
	finished     bool
}

type pageState struct {
	width, height float64
	ref           pdfout.Reference
	contentRef    pdfout.Reference
	thumb         pdfout.Reference
}

// New prepares a new document written to w.
func New(w *pdfout.Writer, opt *Options) *Surface {
	if opt == nil {
		opt = &Options{}
	}
	s := &Surface{
		out: w,
		opt: *opt,
	}
	s.pages = pagetree.NewWriter(w)
	s.reg = newRegistry(w)
	if opt.Info != nil {
		w.Info = opt.Info
	}
	return s
}

// Create prepares a new document written to the named file.
func Create(name string, opt *Options) (*Surface, error) {
	if opt == nil {
		opt = &Options{}
	}
	w, err := pdfout.Create(name, &pdfout.WriterOptions{
		Version:       opt.Version,
		NoCompression: opt.NoCompression,
	})
	if err != nil {
		return nil, err
	}
	return New(w, opt), nil
}

// SetPass switches between the analysis and the render pass.
func (s *Surface) SetPass(p Pass) {
	s.pass = p
}

// Err returns the first unrecoverable error.  Once set, the whole
// document is invalid.
func (s *Surface) Err() error {
	return s.err
}

// fail latches unrecoverable errors.  Incomplete resource
// constructions are fatal for the resource, not for the document.
func (s *Surface) fail(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pdfout.ErrIncomplete) {
		return err
	}
	if s.err == nil {
		s.err = err
	}
	return err
}

// endOp propagates content writer errors into the document error.
func (s *Surface) endOp() error {
	if s.g != nil && s.g.Err != nil {
		return s.fail(s.g.Err)
	}
	return s.err
}

// StartPage begins a new page of the given size (in PDF units of
// 1/72 inch).  A page must be finished with [Surface.ShowPage] before
// the next one can be started.
func (s *Surface) StartPage(width, height float64) error {
	if s.page != nil {
		panic("surface: page already open")
	}
	if s.finished {
		panic("surface: document finished")
	}
	if s.err != nil {
		return s.err
	}

	s.page = &pageState{
		width:      width,
		height:     height,
		ref:        s.out.Alloc(),
		contentRef: s.out.Alloc(),
	}
	s.buf = &bytes.Buffer{}
	s.g = graphics.NewWriter(s.buf)
	s.targetBox = rect.Rect{URx: width, URy: height}
	s.clip = nil
	s.clipDepth = 0
	return nil
}

// SetClip replaces the clip region of the current content stream.
// A nil clip removes clipping.
func (s *Surface) SetClip(c *Clip) error {
	if s.pass == PassAnalyze {
		return nil
	}
	if s.g == nil {
		panic("surface: no open page")
	}
	if s.err != nil {
		return s.err
	}

	if s.clipDepth > 0 {
		s.g.PopGraphicsState()
		s.clipDepth = 0
	}
	s.clip = c.clone()
	if c != nil {
		s.g.PushGraphicsState()
		s.clip.apply(s.g)
		s.clipDepth = 1
	}
	return s.endOp()
}

// AddThumbnail attaches a reduced-size preview image to the current
// page.
func (s *Surface) AddThumbnail(src goimage.Image) error {
	if s.pass == PassAnalyze {
		return nil
	}
	if s.page == nil {
		panic("surface: no open page")
	}
	if s.err != nil {
		return s.err
	}

	tn := image.Thumbnail(src, 106)
	ref, err := image.EmbedThumbnail(s.out, tn)
	if err != nil {
		return s.fail(err)
	}
	s.page.thumb = ref
	return nil
}

// ShowPage finishes the current page: page-scoped deferred work is
// emitted, the buffered operators become the page's content stream,
// and the page joins the page tree.
func (s *Surface) ShowPage() error {
	if s.pass == PassAnalyze {
		return nil
	}
	if s.page == nil {
		panic("surface: no open page")
	}
	if s.err != nil {
		return s.err
	}

	if s.clipDepth > 0 {
		s.g.PopGraphicsState()
		s.clipDepth = 0
	}
	if err := s.endOp(); err != nil {
		return err
	}

	// Soft-mask groups, tiling patterns and images are final now;
	// recorded surfaces stay queued since later pages can still grow
	// their extents.
	err := s.drainPageQueues()
	if err != nil {
		return err
	}

	page := s.page
	var filters []pdfout.Filter
	if !s.opt.NoCompression {
		filters = append(filters, pdfout.FilterFlate{})
	}
	stm, err := s.out.OpenStream(page.contentRef, pdfout.Dict{}, filters...)
	if err != nil {
		return s.fail(err)
	}
	_, err = stm.Write(s.buf.Bytes())
	if err != nil {
		return s.fail(err)
	}
	err = stm.Close()
	if err != nil {
		return s.fail(err)
	}

	dict := pdfout.Dict{
		"Contents": page.contentRef,
		"MediaBox": &pdfout.Rectangle{URx: page.width, URy: page.height},
	}
	if !s.g.Resources.IsEmpty() {
		dict["Resources"] = s.g.Resources.AsDict()
	}
	if page.thumb != 0 {
		dict["Thumb"] = page.thumb
	}
	err = s.pages.AddPage(page.ref, dict)
	if err != nil {
		return s.fail(err)
	}

	s.page = nil
	s.g = nil
	s.buf = nil
	s.clip = nil
	return nil
}

// Finish drains all remaining deferred work, writes the metadata and
// the page tree, and closes the file.
func (s *Surface) Finish() error {
	if s.page != nil {
		panic("surface: page still open")
	}
	if s.finished {
		return pdfout.ErrClosed
	}
	s.finished = true
	if s.err != nil {
		return s.err
	}

	err := s.drainAll()
	if err != nil {
		return err
	}

	catalog := &pdfout.Catalog{Lang: s.opt.Lang}
	if len(s.opt.OutputProfile) > 0 {
		sp, err := color.ICCBased(s.opt.OutputProfile)
		if err != nil {
			return s.fail(err)
		}
		profRef, err := sp.EmbedProfile(s.out)
		if err != nil {
			return s.fail(err)
		}
		intent := pdfout.Dict{
			"Type":                      pdfout.Name("OutputIntent"),
			"S":                         pdfout.Name("GTS_PDFA1"),
			"OutputConditionIdentifier": pdfout.TextString("Custom"),
			"DestOutputProfile":         profRef,
		}
		iRef := s.out.Alloc()
		if err := s.out.Put(iRef, intent); err != nil {
			return s.fail(err)
		}
		catalog.OutputIntents = pdfout.Array{iRef}
	}
	if s.opt.WriteXMP && s.opt.Info != nil {
		mRef := s.out.Alloc()
		err = metadata.Embed(s.out, mRef, s.opt.Info)
		if err != nil {
			return s.fail(err)
		}
		catalog.MetaData = mRef
	}

	pagesRef, err := s.pages.Close()
	if err != nil {
		return s.fail(err)
	}
	catalog.Pages = pagesRef
	s.out.Catalog = catalog

	return s.fail(s.out.Close())
}

// pushTarget redirects drawing operations into gw until the returned
// function is called.  Recorded surfaces and soft-mask groups are
// replayed through this.
func (s *Surface) pushTarget(gw *graphics.Writer, box rect.Rect) func() {
	savedG := s.g
	savedBuf := s.buf
	savedBox := s.targetBox
	savedClip := s.clip
	savedDepth := s.clipDepth

	s.g = gw
	s.buf = nil
	s.targetBox = box
	s.clip = nil
	s.clipDepth = 0

	return func() {
		s.g = savedG
		s.buf = savedBuf
		s.targetBox = savedBox
		s.clip = savedClip
		s.clipDepth = savedDepth
	}
}

// paintExtents returns the area covered by an unbounded paint
// operation: the target box, restricted by the current clip.
func (s *Surface) paintExtents() rect.Rect {
	box := s.targetBox
	if s.clip != nil {
		box = intersect(box, s.clip.Extents())
	}
	return box
}

func pdfRect(r rect.Rect) *pdfout.Rectangle {
	return &pdfout.Rectangle{LLx: r.LLx, LLy: r.LLy, URx: r.URx, URy: r.URy}
}
