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
	"errors"
	"fmt"
	"io"
	"os"
)

// WriterOptions control the behaviour of a [Writer].
type WriterOptions struct {
	// Version is the PDF version of the output file.  The zero value
	// selects PDF 1.4.  The version is fixed for the lifetime of the
	// document and gates feature availability.
	Version Version

	// ID is the PDF file identifier, a slice of two byte slices.
	// If this is nil, no identifier is written.
	ID [][]byte

	// NoCompression disables the Flate compression of object streams
	// and of the cross-reference stream.  Mainly useful for debugging.
	NoCompression bool
}

// Writer writes a PDF file, one indirect object at a time.
//
// The Writer is the object store of the document: object numbers are
// allocated with [Writer.Alloc] and are never reused; the byte position of
// every object is recorded when its content is written with [Writer.Put],
// [Writer.OpenStream] or [Writer.WriteCompressed].  An object number may be
// allocated long before its content is known, so that forward references
// can be embedded in earlier objects.
//
// At most one stream may be open at any time.  Opening a second stream, or
// writing objects while a stream is open, is a programmer error and panics.
type Writer struct {
	// Version is the PDF version of the file being written.
	Version Version

	// Catalog must be set before Close is called.  It becomes the
	// document catalog (the /Root of the trailer).
	Catalog *Catalog

	// Info, if non-nil, becomes the document information dictionary.
	Info *Info

	w          *posWriter
	ws         io.WriteSeeker // non-nil if the sink supports patching
	id         [][]byte
	noCompress bool

	xref       map[uint32]*xrefEntry
	nextNumber uint32

	inStream bool
	isClosed bool
}

// xrefEntry records the location of one indirect object.
//
// For ordinary objects, Pos is the byte offset of the object in the file.
// For objects packed into a compressed object stream, InObjStm is the
// number of the containing stream and Pos is the index within it.
// Pos < 0 marks a free entry.
type xrefEntry struct {
	Pos        int64
	InObjStm   uint32
	Generation uint16
}

func (e *xrefEntry) isFree() bool {
	return e == nil || e.Pos < 0 && e.InObjStm == 0
}

// NewWriter prepares a new PDF file, writing the output to w.
//
// If w is an [io.WriteSeeker], stream lengths are patched in place;
// otherwise a small indirect object is written for each stream length.
func NewWriter(w io.Writer, opt *WriterOptions) (*Writer, error) {
	if opt == nil {
		opt = &WriterOptions{}
	}
	ver := opt.Version
	if ver == 0 {
		ver = V1_4
	}
	verString, err := ver.ToString()
	if err != nil {
		return nil, err
	}

	pdf := &Writer{
		Version:    ver,
		w:          &posWriter{w: w},
		id:         opt.ID,
		noCompress: opt.NoCompression,
		xref:       make(map[uint32]*xrefEntry),
		nextNumber: 1,
	}
	if ws, ok := w.(io.WriteSeeker); ok {
		pdf.ws = ws
	}
	pdf.xref[0] = &xrefEntry{Pos: -1, Generation: 65535}

	// The comment in the second line marks the file as binary.
	_, err = fmt.Fprintf(pdf.w, "%%PDF-%s\n%%\x80\x80\x80\x80\n", verString)
	if err != nil {
		return nil, err
	}

	return pdf, nil
}

// Create creates the named PDF file and opens it for output.  A previous
// file with the same name is overwritten.  After writing is complete,
// [Writer.Close] must be called to write the trailer; this also closes the
// underlying file.
func Create(name string, opt *WriterOptions) (*Writer, error) {
	fd, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	return NewWriter(fd, opt)
}

// Alloc allocates an object number for an indirect object.
func (pdf *Writer) Alloc() Reference {
	ref := NewReference(pdf.nextNumber, 0)
	pdf.nextNumber++
	return ref
}

// Put writes an indirect object to the file and records its position.
//
// The reference must have been returned by [Writer.Alloc] and must not have
// been written before.  A nil object marks the reference as free.
func (pdf *Writer) Put(ref Reference, obj Object) error {
	err := pdf.checkWritable(ref)
	if err != nil {
		return err
	}

	if obj == nil {
		pdf.xref[ref.Number()] = &xrefEntry{Pos: -1, Generation: ref.Generation()}
		return nil
	}

	pos := pdf.w.pos
	_, err = fmt.Fprintf(pdf.w, "%d %d obj\n", ref.Number(), ref.Generation())
	if err != nil {
		return err
	}
	err = obj.PDF(pdf.w)
	if err != nil {
		return err
	}
	_, err = pdf.w.Write([]byte("\nendobj\n"))
	if err != nil {
		return err
	}

	pdf.xref[ref.Number()] = &xrefEntry{Pos: pos, Generation: ref.Generation()}
	return nil
}

// OpenStream begins a new stream object.  The dictionary is written
// immediately, with the /Length entry filled in when the returned
// WriteCloser is closed.  The given filters are applied to the data in
// order; their names are added to the stream dictionary.
//
// No other objects can be written until the stream is closed.
func (pdf *Writer) OpenStream(ref Reference, dict Dict, filters ...Filter) (io.WriteCloser, error) {
	err := pdf.checkWritable(ref)
	if err != nil {
		return nil, err
	}

	streamDict := make(Dict, len(dict)+3)
	for key, val := range dict {
		streamDict[key] = val
	}

	length := pdf.newPlaceholder(12)
	if _, present := streamDict["Length"]; !present {
		streamDict["Length"] = length
	}
	for _, filter := range filters {
		name, parms, err := filter.Info(pdf.Version)
		if err != nil {
			return nil, err
		}
		appendFilter(streamDict, name, parms)
	}

	pos := pdf.w.pos
	_, err = fmt.Fprintf(pdf.w, "%d %d obj\n", ref.Number(), ref.Generation())
	if err != nil {
		return nil, err
	}
	err = streamDict.PDF(pdf.w)
	if err != nil {
		return nil, err
	}
	_, err = pdf.w.Write([]byte("\nstream\n"))
	if err != nil {
		return nil, err
	}

	pdf.inStream = true
	pdf.xref[ref.Number()] = &xrefEntry{Pos: pos, Generation: ref.Generation()}

	var w io.WriteCloser = &streamWriter{pdf: pdf, length: length, start: pdf.w.pos}
	for _, filter := range filters {
		w, err = filter.Encode(pdf.Version, w)
		if err != nil {
			return nil, err
		}
	}
	return w, nil
}

// streamWriter is the innermost layer of an open stream: it counts the
// encoded bytes and finishes the stream object on Close.
type streamWriter struct {
	pdf    *Writer
	length *Placeholder
	start  int64
}

func (s *streamWriter) Write(p []byte) (int, error) {
	return s.pdf.w.Write(p)
}

func (s *streamWriter) Close() error {
	pdf := s.pdf
	length := pdf.w.pos - s.start
	_, err := pdf.w.Write([]byte("\nendstream\nendobj\n"))
	if err != nil {
		return err
	}
	pdf.inStream = false
	return s.length.Set(Integer(length))
}

// WriteCompressed writes a group of objects into a single compressed
// object stream (PDF 1.5 and later).  All references must have generation
// zero.  [Placeholder] values cannot be used, as the objects are encoded
// into a buffer where placeholders cannot be patched.
func (pdf *Writer) WriteCompressed(refs []Reference, objects ...Object) error {
	if len(refs) != len(objects) {
		panic("pdfout: mismatched refs and objects")
	}

	// Object streams need PDF 1.5.  For older versions the objects are
	// simply written individually.
	if pdf.Version < V1_5 {
		for i, obj := range objects {
			if err := pdf.Put(refs[i], obj); err != nil {
				return err
			}
		}
		return nil
	}
	for i, ref := range refs {
		if err := pdf.checkWritable(ref); err != nil {
			return err
		}
		if ref.Generation() != 0 {
			return errors.New("compressed objects must have generation 0")
		}
		if _, isPlaceholder := objects[i].(*Placeholder); isPlaceholder {
			return errors.New("cannot compress placeholders")
		}
	}

	// The object stream consists of a series of "number offset" pairs,
	// followed by the concatenated objects.
	head := &bytes.Buffer{}
	body := &bytes.Buffer{}
	for i, obj := range objects {
		fmt.Fprintf(head, "%d %d\n", refs[i].Number(), body.Len())
		err := obj.PDF(body)
		if err != nil {
			return err
		}
		body.WriteByte('\n')
	}

	container := pdf.Alloc()
	dict := Dict{
		"Type":  Name("ObjStm"),
		"N":     Integer(len(objects)),
		"First": Integer(head.Len()),
	}
	var filters []Filter
	if !pdf.noCompress {
		filters = append(filters, FilterFlate{})
	}
	w, err := pdf.OpenStream(container, dict, filters...)
	if err != nil {
		return err
	}
	_, err = w.Write(head.Bytes())
	if err != nil {
		return err
	}
	_, err = w.Write(body.Bytes())
	if err != nil {
		return err
	}
	err = w.Close()
	if err != nil {
		return err
	}

	for i, ref := range refs {
		pdf.xref[ref.Number()] = &xrefEntry{
			Pos:      int64(i),
			InObjStm: container.Number(),
		}
	}
	return nil
}

// Close writes the cross-reference data and the trailer, and closes the
// underlying writer if it has a Close method.
//
// The cross-reference encoding is fixed by the PDF version chosen at
// [NewWriter] time: a classic table below 1.5, a binary cross-reference
// stream from 1.5 on.  Every allocated object number receives exactly one
// entry; numbers which were never written become part of the free list.
func (pdf *Writer) Close() error {
	if pdf.isClosed {
		return ErrClosed
	}
	if pdf.inStream {
		panic("pdfout: stream still open")
	}
	if pdf.Catalog == nil || pdf.Catalog.Pages == 0 {
		return errors.New("missing document catalog")
	}

	rootRef := pdf.Alloc()
	err := pdf.Put(rootRef, pdf.Catalog.AsDict())
	if err != nil {
		return err
	}
	var infoRef Reference
	if pdf.Info != nil {
		infoRef = pdf.Alloc()
		err = pdf.Put(infoRef, pdf.Info.AsDict())
		if err != nil {
			return err
		}
	}

	pdf.linkFreeEntries()

	trailer := Dict{
		"Root": rootRef,
	}
	if infoRef != 0 {
		trailer["Info"] = infoRef
	}
	if len(pdf.id) == 2 {
		trailer["ID"] = Array{String(pdf.id[0]), String(pdf.id[1])}
	}

	xRefPos := pdf.w.pos
	if pdf.Version < V1_5 {
		err = pdf.writeXRefTable(trailer)
	} else {
		err = pdf.writeXRefStream(trailer)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(pdf.w, "\nstartxref\n%d\n%%%%EOF\n", xRefPos)
	if err != nil {
		return err
	}

	pdf.isClosed = true
	if closer, ok := pdf.w.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// IsClosed reports whether Close has been called.
func (pdf *Writer) IsClosed() bool {
	return pdf.isClosed
}

func (pdf *Writer) checkWritable(ref Reference) error {
	if pdf.isClosed {
		return ErrClosed
	}
	if pdf.inStream {
		panic("pdfout: stream still open")
	}
	number := ref.Number()
	if number == 0 || number >= pdf.nextNumber {
		return fmt.Errorf("invalid object number %d", number)
	}
	if _, seen := pdf.xref[number]; seen {
		return fmt.Errorf("object %d already written", number)
	}
	return nil
}

// linkFreeEntries chains all free entries into the singly linked list
// required by the PDF cross-reference format.  Entry 0 is the list head,
// and the last entry points back to object 0.
func (pdf *Writer) linkFreeEntries() {
	var free []uint32
	for number := uint32(0); number < pdf.nextNumber; number++ {
		if pdf.xref[number].isFree() {
			free = append(free, number)
		}
	}
	for i, number := range free {
		var next uint32
		if i+1 < len(free) {
			next = free[i+1]
		}
		entry := pdf.xref[number]
		if entry == nil {
			entry = &xrefEntry{Generation: 65535}
			pdf.xref[number] = entry
		}
		entry.Pos = -1 - int64(next) // -1 encodes "next free is 0"
	}
}

// nextFree returns the number of the next free object for a free entry.
func (e *xrefEntry) nextFree() uint32 {
	return uint32(-1 - e.Pos)
}

type posWriter struct {
	w   io.Writer
	pos int64
}

func (w *posWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	return n, err
}
