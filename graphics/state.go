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

package graphics

import (
	"slices"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfout"
)

// State holds the graphics state parameters tracked by the content
// stream writer, together with a bit mask saying which parameters have
// been written to the stream.  Parameters which have not been written
// have the PDF default values.
type State struct {
	*Parameters
	Set StateBits
}

// Clone returns a copy which shares no data with s.
func (s State) Clone() State {
	return State{
		Parameters: s.Parameters.Clone(),
		Set:        s.Set,
	}
}

// Parameters collects the graphics state parameters.
//
// See section 8.4 of ISO 32000-2:2020.
type Parameters struct {
	// CTM maps user coordinates to device coordinates.
	CTM matrix.Matrix

	StrokeColor colorValue
	FillColor   colorValue

	LineWidth   float64
	LineCap     LineCapStyle
	LineJoin    LineJoinStyle
	MiterLimit  float64
	DashPattern []float64
	DashPhase   float64

	ExtGState pdfout.Name

	Font     pdfout.Name
	FontSize float64
}

// Clone returns a copy which shares no data with p.
func (p *Parameters) Clone() *Parameters {
	q := *p
	q.DashPattern = slices.Clone(p.DashPattern)
	return &q
}

// colorValue is the projection of a colour onto the operand values of
// the colour setting operators.  Two equal values need no operator
// between them.
type colorValue struct {
	space   pdfout.Name
	pattern pdfout.Name
	n       int
	values  [4]float64
}

// LineCapStyle is the style used for the endpoints of stroked paths.
type LineCapStyle uint8

// The valid line cap styles.
const (
	LineCapButt   LineCapStyle = 0
	LineCapRound  LineCapStyle = 1
	LineCapSquare LineCapStyle = 2
)

// LineJoinStyle is the style used where stroked path segments meet.
type LineJoinStyle uint8

// The valid line join styles.
const (
	LineJoinMiter LineJoinStyle = 0
	LineJoinRound LineJoinStyle = 1
	LineJoinBevel LineJoinStyle = 2
)

// StateBits is a bit mask for the fields of the State struct.
type StateBits uint32

// Possible values for StateBits.
const (
	StateCTM StateBits = 1 << iota
	StateStrokeColor
	StateFillColor
	StateLineWidth
	StateLineCap
	StateLineJoin
	StateMiterLimit
	StateDash // pattern and phase
	StateExtGState
	StateFont // includes size
)

// NewState returns a graphics state holding the PDF default values.
func NewState() State {
	param := &Parameters{
		CTM:        matrix.Identity,
		LineWidth:  1,
		MiterLimit: 10,
	}
	return State{Parameters: param, Set: 0}
}
