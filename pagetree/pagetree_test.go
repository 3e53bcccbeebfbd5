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

package pagetree

import (
	"bytes"
	"fmt"
	"testing"

	"seehuhn.de/go/pdfout"
)

func TestPageTree(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := pdfout.NewWriter(buf, &pdfout.WriterOptions{
		NoCompression: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	tree := NewWriter(w)
	if tree.Ref() == 0 {
		t.Fatal("root reference not allocated")
	}

	var pageRefs []pdfout.Reference
	for i := 0; i < 3; i++ {
		ref := w.Alloc()
		err := tree.AddPage(ref, pdfout.Dict{
			"MediaBox": &pdfout.Rectangle{URx: 100, URy: 100},
		})
		if err != nil {
			t.Fatal(err)
		}
		pageRefs = append(pageRefs, ref)
	}
	if tree.NumPages() != 3 {
		t.Errorf("NumPages = %d, want 3", tree.NumPages())
	}

	root, err := tree.Close()
	if err != nil {
		t.Fatal(err)
	}
	if root != tree.Ref() {
		t.Errorf("Close returned %v, want %v", root, tree.Ref())
	}

	w.Catalog = &pdfout.Catalog{Pages: root}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	body := buf.Bytes()
	if !bytes.Contains(body, []byte("/Count 3")) {
		t.Error("missing /Count 3")
	}
	for _, ref := range pageRefs {
		if !bytes.Contains(body, []byte(fmt.Sprintf("%d 0 obj", ref.Number()))) {
			t.Errorf("page %v not written", ref)
		}
	}
	if !bytes.Contains(body, []byte(fmt.Sprintf("/Parent %d 0 R", root.Number()))) {
		t.Error("pages do not point back at the tree root")
	}
}

func TestPageTreeClosed(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := pdfout.NewWriter(buf, nil)
	if err != nil {
		t.Fatal(err)
	}

	tree := NewWriter(w)
	if _, err := tree.Close(); err != nil {
		t.Fatal(err)
	}

	ref := w.Alloc()
	if err := tree.AddPage(ref, pdfout.Dict{}); err == nil {
		t.Error("AddPage after Close succeeded")
	}
	if _, err := tree.Close(); err == nil {
		t.Error("second Close succeeded")
	}
}
