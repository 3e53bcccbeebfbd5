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
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfout"
)

// opKind says which drawing operation created a deferred work item.
type opKind int

const (
	opPaint opKind = iota
	opMask
	opFill
	opStroke
	opShowGlyphs
)

// smaskGroup is a deferred luminosity soft mask.  It is created when
// an operation's compositing cannot be expressed with a constant
// alpha; the content stream has already emitted a forward reference
// to gstateRef.  The finisher consumes each group exactly once,
// writing the transparency-group form at groupRef and the graphics
// state dictionary at gstateRef.
type smaskGroup struct {
	kind    opKind
	extents rect.Rect

	// operand copies, captured at operation time
	source  Pattern
	mask    Pattern
	path    *Path
	evenOdd bool
	style   *StrokeStyle
	run     *TextRun

	// alpha is an extra constant alpha applied together with the
	// soft mask.
	alpha float64

	gstateRef pdfout.Reference
	groupRef  pdfout.Reference
}

// patternWork is a deferred tiling pattern.  The content stream
// already references ref; the finisher writes the pattern dictionary
// once the underlying surface entry's extents are final.
type patternWork struct {
	ref   pdfout.Reference
	entry *surfaceEntry
	pat   *SurfacePattern
}
