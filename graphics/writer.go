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

// Package graphics writes PDF content streams.
//
// The [Writer] tracks the graphics state and suppresses operators which
// would not change it, so that callers can set parameters
// unconditionally before every drawing operation.
package graphics

import (
	"fmt"
	"io"

	"seehuhn.de/go/pdfout"
	"seehuhn.de/go/pdfout/internal/float"
)

// Writer writes a PDF content stream.
type Writer struct {
	Content   io.Writer
	Resources *Resources
	Err       error

	currentObject objectType

	State
	stack []State

	resName map[catRes]pdfout.Name
}

// NewWriter allocates a new Writer.
func NewWriter(out io.Writer) *Writer {
	return &Writer{
		Content:       out,
		Resources:     &Resources{},
		currentObject: objPage,

		State: NewState(),

		resName: make(map[catRes]pdfout.Name),
	}
}

// NewStream resets the writer for a new content stream.  The new
// content stream shares the resource dictionary with the previous one.
func (w *Writer) NewStream(out io.Writer) {
	w.Content = out
	w.currentObject = objPage
	w.State = NewState()
	w.stack = w.stack[:0]
	w.Err = nil
}

// isValid returns true if the current graphics object is one of the
// given types and if w.Err is nil.  Otherwise it sets w.Err and returns
// false.
func (w *Writer) isValid(cmd string, ss objectType) bool {
	if w.Err != nil {
		return false
	}

	if w.currentObject&ss != 0 {
		return true
	}

	w.Err = fmt.Errorf("unexpected state %q for %q", w.currentObject, cmd)
	return false
}

func (w *Writer) coord(x float64) string {
	return float.Format(x, 5)
}

// See Figure 9 (p. 113) of PDF 32000-1:2008.
type objectType int

const (
	objPage objectType = 1 << iota
	objPath
	objText
	objClippingPath
)

func (s objectType) String() string {
	switch s {
	case objPage:
		return "page"
	case objPath:
		return "path"
	case objText:
		return "text"
	case objClippingPath:
		return "clipping path"
	default:
		return fmt.Sprintf("objectType(%d)", int(s))
	}
}
