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

// Package pagetree writes the page tree of a PDF file.
//
// Pages are written to the file as they are finished; only their
// references are kept in memory.  The root node is allocated up front
// so that page dictionaries can point to their parent before the tree
// is complete.
package pagetree

import (
	"errors"

	"seehuhn.de/go/pdfout"
)

// Writer builds the page tree of a PDF file.
type Writer struct {
	Out *pdfout.Writer

	rootRef pdfout.Reference
	kids    pdfout.Array
	closed  bool
}

// NewWriter allocates a new page tree for the given file.
func NewWriter(out *pdfout.Writer) *Writer {
	return &Writer{
		Out:     out,
		rootRef: out.Alloc(),
	}
}

// Ref returns the reference of the page tree root.  The reference is
// valid before the tree is closed, so that page dictionaries can refer
// to their parent.
func (t *Writer) Ref() pdfout.Reference {
	return t.rootRef
}

// AddPage writes a page dictionary to the file under the given
// reference and appends it to the tree.  The reference must have been
// allocated by the caller; this allows content streams to refer to
// their page before the page dictionary is written.
func (t *Writer) AddPage(ref pdfout.Reference, dict pdfout.Dict) error {
	if t.closed {
		return errors.New("page tree is closed")
	}

	dict["Type"] = pdfout.Name("Page")
	dict["Parent"] = t.rootRef
	err := t.Out.Put(ref, dict)
	if err != nil {
		return err
	}
	t.kids = append(t.kids, ref)
	return nil
}

// NumPages returns the number of pages added so far.
func (t *Writer) NumPages() int {
	return len(t.kids)
}

// Close writes the root node and returns its reference.
func (t *Writer) Close() (pdfout.Reference, error) {
	if t.closed {
		return 0, errors.New("page tree is closed")
	}
	t.closed = true

	dict := pdfout.Dict{
		"Type":  pdfout.Name("Pages"),
		"Kids":  t.kids,
		"Count": pdfout.Integer(len(t.kids)),
	}
	err := t.Out.Put(t.rootRef, dict)
	if err != nil {
		return 0, err
	}
	return t.rootRef, nil
}
