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
	"bytes"
	"fmt"
	"io"
	"math/bits"
)

// writeXRefTable writes the cross-reference information in the classic
// fixed-width table format, followed by the trailer dictionary.
func (pdf *Writer) writeXRefTable(trailer Dict) error {
	trailer["Size"] = Integer(pdf.nextNumber)
	_, err := fmt.Fprintf(pdf.w, "xref\n0 %d\n", pdf.nextNumber)
	if err != nil {
		return err
	}
	for number := uint32(0); number < pdf.nextNumber; number++ {
		entry := pdf.xref[number]
		if entry.InObjStm != 0 {
			panic("pdfout: object streams in a classic xref table")
		}
		if entry.isFree() {
			_, err = fmt.Fprintf(pdf.w, "%010d %05d f\r\n",
				entry.nextFree(), entry.Generation)
		} else {
			_, err = fmt.Fprintf(pdf.w, "%010d %05d n\r\n",
				entry.Pos, entry.Generation)
		}
		if err != nil {
			return err
		}
	}

	_, err = pdf.w.Write([]byte("trailer\n"))
	if err != nil {
		return err
	}
	return trailer.PDF(pdf.w)
}

// writeXRefStream writes the cross-reference information as a binary
// cross-reference stream (PDF 1.5 and later).  The stream object receives
// an entry for itself.
func (pdf *Writer) writeXRefStream(trailer Dict) error {
	ref := pdf.Alloc()
	size := pdf.nextNumber

	// The stream needs an entry for itself, at the position where it is
	// about to be written.
	self := &xrefEntry{Pos: pdf.w.pos}
	lookup := func(number uint32) *xrefEntry {
		if number == ref.Number() {
			return self
		}
		return pdf.xref[number]
	}

	// Each entry is three fields: type, then two type-dependent values.
	// Field widths are the smallest that fit the data.
	var maxField2 uint64
	var maxField3 uint64
	for number := uint32(0); number < size; number++ {
		f2, f3 := lookup(number).streamFields()
		if f2 > maxField2 {
			maxField2 = f2
		}
		if f3 > maxField3 {
			maxField3 = f3
		}
	}
	w2 := (bits.Len64(maxField2) + 7) / 8
	w3 := (bits.Len64(maxField3) + 7) / 8
	if w2 == 0 {
		w2 = 1
	}
	if w3 == 0 {
		w3 = 1
	}

	data := &bytes.Buffer{}
	for number := uint32(0); number < size; number++ {
		entry := lookup(number)
		var tp byte
		switch {
		case entry.isFree():
			tp = 0
		case entry.InObjStm != 0:
			tp = 2
		default:
			tp = 1
		}
		f2, f3 := entry.streamFields()
		data.WriteByte(tp)
		encodeBigEndian(data, f2, w2)
		encodeBigEndian(data, f3, w3)
	}

	dict := Dict{
		"Type": Name("XRef"),
		"Size": Integer(size),
		"W":    Array{Integer(1), Integer(w2), Integer(w3)},
	}
	for key, val := range trailer {
		dict[key] = val
	}

	// The stream is written by hand rather than through [Writer.OpenStream]:
	// the Length entry must be a direct object, since a reader cannot
	// resolve references before it has parsed this stream.  All entry data
	// is already in memory, so the length is known up front.
	body := data.Bytes()
	if !pdf.noCompress {
		filter := FilterFlate{}
		comp := &bytes.Buffer{}
		enc, err := filter.Encode(pdf.Version, nopCloser{comp})
		if err != nil {
			return err
		}
		_, err = enc.Write(body)
		if err != nil {
			return err
		}
		err = enc.Close()
		if err != nil {
			return err
		}
		name, parms, err := filter.Info(pdf.Version)
		if err != nil {
			return err
		}
		appendFilter(dict, name, parms)
		body = comp.Bytes()
	}
	dict["Length"] = Integer(len(body))

	_, err := fmt.Fprintf(pdf.w, "%d %d obj\n", ref.Number(), ref.Generation())
	if err != nil {
		return err
	}
	err = dict.PDF(pdf.w)
	if err != nil {
		return err
	}
	_, err = pdf.w.Write([]byte("\nstream\n"))
	if err != nil {
		return err
	}
	_, err = pdf.w.Write(body)
	if err != nil {
		return err
	}
	_, err = pdf.w.Write([]byte("\nendstream\nendobj\n"))
	return err
}

// nopCloser adds a no-op Close method to a writer, for encoding filter
// output into a buffer.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// streamFields returns the second and third field of the cross-reference
// stream entry.
func (e *xrefEntry) streamFields() (uint64, uint64) {
	switch {
	case e.isFree():
		gen := e.Generation
		if gen == 65535 {
			gen = 0
		}
		return uint64(e.nextFree()), uint64(gen)
	case e.InObjStm != 0:
		return uint64(e.InObjStm), uint64(e.Pos)
	default:
		return uint64(e.Pos), uint64(e.Generation)
	}
}

func encodeBigEndian(buf *bytes.Buffer, x uint64, w int) {
	for i := w - 1; i >= 0; i-- {
		buf.WriteByte(byte(x >> (i * 8)))
	}
}
