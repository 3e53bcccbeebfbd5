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
	"bytes"
	"strings"
	"testing"

	"seehuhn.de/go/pdfout"
)

func TestColorSuppression(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)

	w.SetFillRGB(1, 0, 0)
	w.SetFillRGB(1, 0, 0) // no change, no output
	w.SetFillRGB(0, 1, 0)
	w.SetFillRGB(1, 0, 0)
	if w.Err != nil {
		t.Fatal(w.Err)
	}

	want := "1 0 0 rg\n0 1 0 rg\n1 0 0 rg\n"
	if got := buf.String(); got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestLineWidthSuppression(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)

	w.SetLineWidth(2)
	w.SetLineWidth(2)
	w.SetLineWidth(0.5)
	if w.Err != nil {
		t.Fatal(w.Err)
	}

	want := "2 w\n.5 w\n"
	if got := buf.String(); got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestStateRestore(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)

	w.SetFillGray(0.5)
	w.PushGraphicsState()
	w.SetFillGray(0.5) // unchanged inside q
	w.SetFillGray(0)
	w.PopGraphicsState()
	// Q has restored the gray fill, so setting it again is a no-op,
	// but the inner value must be re-emitted
	w.SetFillGray(0.5)
	w.SetFillGray(0)
	if w.Err != nil {
		t.Fatal(w.Err)
	}

	want := ".5 g\nq\n0 g\nQ\n0 g\n"
	if got := buf.String(); got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestPopUnderflow(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)

	w.PopGraphicsState()
	if w.Err == nil {
		t.Error("no error for unbalanced Q")
	}
}

func TestResourceNames(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)

	refA := pdfout.NewReference(7, 0)
	refB := pdfout.NewReference(8, 0)

	nameA := w.ResourceName(CatXObject, "a", refA)
	nameB := w.ResourceName(CatXObject, "b", refB)
	if nameA == nameB {
		t.Errorf("distinct resources share the name %q", nameA)
	}
	if again := w.ResourceName(CatXObject, "a", refA); again != nameA {
		t.Errorf("second lookup returned %q, want %q", again, nameA)
	}

	if len(w.Resources.XObject) != 2 {
		t.Errorf("XObject dict has %d entries, want 2", len(w.Resources.XObject))
	}
	if w.Resources.XObject[nameA] != refA {
		t.Errorf("resource %q is %v, want %v",
			nameA, w.Resources.XObject[nameA], refA)
	}
	if !strings.HasPrefix(string(nameA), "X") {
		t.Errorf("XObject resource name %q has the wrong prefix", nameA)
	}
}

func TestTextStateNesting(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)

	w.TextBegin()
	w.TextSetFont("f", pdfout.NewReference(3, 0), 12)
	w.TextShow(pdfout.String("AB"))
	w.TextEnd()
	if w.Err != nil {
		t.Fatal(w.Err)
	}

	// path operators are invalid inside a text object
	w.NewStream(buf)
	w.TextBegin()
	w.MoveTo(0, 0)
	if w.Err == nil {
		t.Error("no error for a path operator inside BT/ET")
	}
}
