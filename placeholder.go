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

package pdfout

import (
	"errors"
	"fmt"
	"io"
)

// Placeholder is a space reserved in the PDF file for a value which is only
// known after the containing object has been written.  The main use is the
// /Length entry of stream dictionaries.
//
// If the underlying writer is seekable, the value is patched into the
// reserved space once it becomes known.  Otherwise, the placeholder turns
// into a reference to a small indirect object which is written later.
type Placeholder struct {
	pdf   *Writer
	size  int
	value Object
	pos   []int64
	ref   Reference
}

func (pdf *Writer) newPlaceholder(size int) *Placeholder {
	return &Placeholder{pdf: pdf, size: size}
}

// PDF implements the [Object] interface.
func (x *Placeholder) PDF(w io.Writer) error {
	if x.value != nil {
		return x.value.PDF(w)
	}

	if pw, ok := w.(*posWriter); ok && pw == x.pdf.w && x.pdf.ws != nil {
		x.pos = append(x.pos, pw.pos)
		buf := make([]byte, x.size)
		for i := range buf {
			buf[i] = ' '
		}
		_, err := w.Write(buf)
		return err
	}

	if x.ref == 0 {
		x.ref = x.pdf.Alloc()
	}
	return x.ref.PDF(w)
}

// Set fills in the value of the placeholder.
func (x *Placeholder) Set(obj Object) error {
	if x.ref != 0 {
		return x.pdf.Put(x.ref, obj)
	}

	if len(x.pos) == 0 {
		x.value = obj
		return nil
	}

	text := Format(obj)
	if len(text) > x.size {
		return fmt.Errorf("placeholder value %q overflows %d bytes", text, x.size)
	}
	if x.pdf.ws == nil {
		return errors.New("placeholder cannot be patched")
	}
	for _, pos := range x.pos {
		_, err := x.pdf.ws.Seek(pos, io.SeekStart)
		if err != nil {
			return err
		}
		_, err = io.WriteString(x.pdf.ws, text)
		if err != nil {
			return err
		}
	}
	_, err := x.pdf.ws.Seek(x.pdf.w.pos, io.SeekStart)
	x.value = obj
	return err
}
