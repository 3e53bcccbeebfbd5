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

package metadata_test

import (
	"bytes"
	"testing"
	"time"

	"seehuhn.de/go/pdfout"
	"seehuhn.de/go/pdfout/metadata"
)

func TestEmbed(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := pdfout.NewWriter(buf, &pdfout.WriterOptions{
		Version: pdfout.V1_7,
	})
	if err != nil {
		t.Fatal(err)
	}

	info := &pdfout.Info{
		Title:        "Test & Co. <Document>",
		Author:       "A. N. Author",
		Producer:     "pdfout",
		CreationDate: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
	mRef := w.Alloc()
	err = metadata.Embed(w, mRef, info)
	if err != nil {
		t.Fatal(err)
	}

	pages := w.Alloc()
	err = w.Put(pages, pdfout.Dict{
		"Type":  pdfout.Name("Pages"),
		"Kids":  pdfout.Array{},
		"Count": pdfout.Integer(0),
	})
	if err != nil {
		t.Fatal(err)
	}
	w.Catalog = &pdfout.Catalog{Pages: pages, MetaData: mRef}
	err = w.Close()
	if err != nil {
		t.Fatal(err)
	}
	body := buf.Bytes()

	// The packet must be readable by tools which scan the raw file,
	// so all of this has to appear in plain text.
	for _, want := range []string{
		"/Type /Metadata",
		"/Subtype /XML",
		"rdf:RDF",
		"A. N. Author",
		"Test &amp; Co. &lt;Document&gt;",
	} {
		if !bytes.Contains(body, []byte(want)) {
			t.Errorf("output does not contain %q", want)
		}
	}
}
