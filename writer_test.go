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
	"testing"
)

// writeSample writes a small document with two allocated-but-never-written
// object numbers, so that the cross-reference tests can exercise the free
// list.  It returns the file contents and the total number of objects.
func writeSample(t *testing.T, v Version) ([]byte, uint32) {
	t.Helper()

	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, &WriterOptions{
		Version:       v,
		NoCompression: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	a := w.Alloc()
	gap1 := w.Alloc() // stays free
	b := w.Alloc()
	gap2 := w.Alloc() // stays free
	_ = gap1
	_ = gap2

	err = w.Put(a, Integer(7))
	if err != nil {
		t.Fatal(err)
	}
	err = w.Put(b, Name("marker"))
	if err != nil {
		t.Fatal(err)
	}

	pages := w.Alloc()
	err = w.Put(pages, Dict{
		"Type":  Name("Pages"),
		"Kids":  Array{},
		"Count": Integer(0),
	})
	if err != nil {
		t.Fatal(err)
	}
	w.Catalog = &Catalog{Pages: pages}

	err = w.Close()
	if err != nil {
		t.Fatal(err)
	}
	// Close allocates further objects (the catalog, and for PDF 1.5+
	// the cross-reference stream), so the final count is read back here.
	return buf.Bytes(), w.nextNumber
}

// startXRefPos extracts the byte offset recorded after the startxref
// keyword.
func startXRefPos(t *testing.T, body []byte) int64 {
	t.Helper()
	idx := bytes.LastIndex(body, []byte("startxref\n"))
	if idx < 0 {
		t.Fatal("startxref not found")
	}
	var pos int64
	_, err := fmt.Sscanf(string(body[idx:]), "startxref\n%d", &pos)
	if err != nil {
		t.Fatal(err)
	}
	return pos
}

func TestXRefTable(t *testing.T) {
	body, size := writeSample(t, V1_4)

	pos := startXRefPos(t, body)
	if !bytes.HasPrefix(body[pos:], []byte("xref\n")) {
		t.Fatalf("startxref does not point at the xref keyword")
	}

	var n uint32
	_, err := fmt.Sscanf(string(body[pos:]), "xref\n0 %d", &n)
	if err != nil {
		t.Fatal(err)
	}
	if n != size {
		t.Errorf("xref table covers %d objects, expected %d", n, size)
	}

	start := bytes.IndexByte(body[pos:], '\n') + int(pos) + 1
	start = bytes.IndexByte(body[start:], '\n') + start + 1

	type entry struct {
		field1 int64
		field2 int
		tp     byte
	}
	entries := make([]entry, n)
	for i := uint32(0); i < n; i++ {
		line := body[start+int(i)*20 : start+int(i+1)*20]
		if line[18] != '\r' || line[19] != '\n' {
			t.Fatalf("entry %d is not terminated by CR LF", i)
		}
		var e entry
		_, err := fmt.Sscanf(string(line[:17]), "%d %d", &e.field1, &e.field2)
		if err != nil {
			t.Fatal(err)
		}
		e.tp = line[17]
		entries[i] = e
	}

	// every written object must be reachable through its table entry
	for i := uint32(1); i < n; i++ {
		if entries[i].tp != 'n' {
			continue
		}
		head := fmt.Sprintf("%d 0 obj", i)
		if !bytes.HasPrefix(body[entries[i].field1:], []byte(head)) {
			t.Errorf("entry %d points at %q, expected %q",
				i, body[entries[i].field1:entries[i].field1+10], head)
		}
	}

	// the free entries form a singly linked list starting at object 0
	// and terminated by a pointer back to object 0
	if entries[0].tp != 'f' || entries[0].field2 != 65535 {
		t.Errorf("entry 0 is not the head of the free list")
	}
	numFree := 0
	for _, e := range entries {
		if e.tp == 'f' {
			numFree++
		}
	}
	seen := make(map[uint32]bool)
	next := uint32(entries[0].field1)
	for next != 0 {
		if seen[next] {
			t.Fatalf("free list visits object %d twice", next)
		}
		seen[next] = true
		if next >= n || entries[next].tp != 'f' {
			t.Fatalf("free list points at non-free object %d", next)
		}
		next = uint32(entries[next].field1)
	}
	if len(seen) != numFree-1 {
		t.Errorf("free list visits %d objects, expected %d",
			len(seen), numFree-1)
	}
}

func TestXRefStream(t *testing.T) {
	body, size := writeSample(t, V1_7)

	pos := startXRefPos(t, body)

	var streamNumber uint32
	_, err := fmt.Sscanf(string(body[pos:]), "%d 0 obj", &streamNumber)
	if err != nil {
		t.Fatal(err)
	}

	dictEnd := bytes.Index(body[pos:], []byte("stream\n"))
	if dictEnd < 0 {
		t.Fatal("stream keyword not found")
	}
	dict := body[pos : pos+int64(dictEnd)]
	if !bytes.Contains(dict, []byte("/Type /XRef")) {
		t.Error("missing /Type /XRef")
	}
	if !bytes.Contains(dict, []byte(fmt.Sprintf("/Size %d", size))) {
		t.Errorf("missing /Size %d", size)
	}

	var w2, w3 int
	wIdx := bytes.Index(dict, []byte("/W ["))
	if wIdx < 0 {
		t.Fatal("missing /W array")
	}
	_, err = fmt.Sscanf(string(dict[wIdx:]), "/W [1 %d %d]", &w2, &w3)
	if err != nil {
		t.Fatal(err)
	}

	data := body[pos+int64(dictEnd)+7:]
	end := bytes.Index(data, []byte("\nendstream"))
	if end < 0 {
		t.Fatal("endstream not found")
	}
	data = data[:end]

	stride := 1 + w2 + w3
	if len(data) != stride*int(size) {
		t.Fatalf("stream holds %d bytes, expected %d entries of %d bytes",
			len(data), size, stride)
	}

	// A reader cannot resolve references before it has parsed this very
	// stream, so the Length entry must be a direct integer.
	if !bytes.Contains(dict, []byte(fmt.Sprintf("/Length %d\n", len(data)))) {
		t.Errorf("xref stream does not have a direct /Length %d entry",
			len(data))
	}

	decode := func(b []byte) uint64 {
		var x uint64
		for _, c := range b {
			x = x<<8 | uint64(c)
		}
		return x
	}

	for i := uint32(0); i < size; i++ {
		row := data[int(i)*stride : int(i+1)*stride]
		tp := row[0]
		f2 := decode(row[1 : 1+w2])

		switch tp {
		case 0:
			// free entry; field 2 is the next free object
			if f2 >= uint64(size) {
				t.Errorf("entry %d: free pointer %d out of range", i, f2)
			}
		case 1:
			head := fmt.Sprintf("%d 0 obj", i)
			if !bytes.HasPrefix(body[f2:], []byte(head)) {
				t.Errorf("entry %d points at %q, expected %q",
					i, body[f2:f2+10], head)
			}
		default:
			t.Errorf("entry %d: unexpected type %d in uncompressed file",
				i, tp)
		}
	}

	// the stream contains an entry for itself
	selfRow := data[int(streamNumber)*stride : int(streamNumber+1)*stride]
	if selfRow[0] != 1 || decode(selfRow[1:1+w2]) != uint64(pos) {
		t.Errorf("self entry of the cross-reference stream is wrong")
	}
}

func TestPutTwice(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	ref := w.Alloc()
	if err := w.Put(ref, Integer(1)); err != nil {
		t.Fatal(err)
	}
	if err := w.Put(ref, Integer(2)); err == nil {
		t.Error("second Put of the same reference succeeded")
	}
}

func TestCloseTwice(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	pages := w.Alloc()
	err = w.Put(pages, Dict{
		"Type":  Name("Pages"),
		"Kids":  Array{},
		"Count": Integer(0),
	})
	if err != nil {
		t.Fatal(err)
	}
	w.Catalog = &Catalog{Pages: pages}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != ErrClosed {
		t.Errorf("second Close returned %v, expected ErrClosed", err)
	}
}
