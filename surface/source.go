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
	goimage "image"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfout"
	"seehuhn.de/go/pdfout/graphics/image"
)

// SourceSurface is the content of a [SurfacePattern]: either a raster
// image or a recording of drawing operations.  The set of source
// kinds is closed.
//
// SurfaceID is a content unique id: two sources with the same id must
// have identical content.  Exactly one object is emitted per id, no
// matter how often the source is used.
type SourceSurface interface {
	SurfaceID() uint64
}

// ImageSource is a raster image source surface.
//
// If JPEGData is non-nil it is probed for passthrough embedding
// before Img is considered.
type ImageSource struct {
	ID       uint64
	Img      goimage.Image
	JPEGData []byte
}

// SurfaceID implements the [SourceSurface] interface.
func (s *ImageSource) SurfaceID() uint64 { return s.ID }

// RecordingSource is a recorded sequence of drawing operations which
// can be replayed on demand.  Replay receives the surface it is being
// replayed onto and issues ordinary drawing calls; replaying may
// reference further patterns and surfaces.
type RecordingSource struct {
	ID uint64

	// Extents is the natural extent of the recording, or nil if the
	// recording is unbounded.
	Extents *rect.Rect

	// InkExtents is the bounding box of the recorded ink.  It is used
	// as the natural extent when Extents is nil.
	InkExtents rect.Rect

	Replay func(s *Surface) error
}

// SurfaceID implements the [SourceSurface] interface.
func (s *RecordingSource) SurfaceID() uint64 { return s.ID }

// surfaceEntry is the registry's record of one interned source
// surface.  The entry is mutated on every reuse and emitted once, in
// the finish loop.
type surfaceEntry struct {
	id  uint64
	src SourceSurface

	// natural is the natural extent of the source; bounded says
	// whether it is authoritative (for unbounded recordings it is the
	// ink bounding box).
	natural rect.Rect
	bounded bool

	// required is the running union of all use extents, intersected
	// with natural.  When a use extends beyond its box (extend mode
	// other than "none"), unbounded is set and required grows to the
	// full natural extent.
	required  rect.Rect
	unbounded bool

	// Results of the test emission: asImage says whether the source
	// is encoded as an image XObject rather than a form; for images,
	// width/height give the pixel size determining the placement
	// scale.
	asImage       bool
	width, height int
	jpeg          *image.JPEG
	opaque        bool
	smoothing     bool

	ref     pdfout.Reference
	emitted bool
}

// PixelSize returns the pixel dimensions decided by the test
// emission.  For recordings both values are zero.
func (e *surfaceEntry) PixelSize() (int, int) {
	return e.width, e.height
}
