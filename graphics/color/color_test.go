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

package color

import (
	"testing"

	"seehuhn.de/go/pdfout"
)

func TestDeviceSpaces(t *testing.T) {
	cases := []struct {
		space Space
		name  pdfout.Name
		n     int
	}{
		{DeviceGray, "DeviceGray", 1},
		{DeviceRGB, "DeviceRGB", 3},
	}
	for _, c := range cases {
		if got := c.space.Channels(); got != c.n {
			t.Errorf("%s has %d channels, want %d", c.name, got, c.n)
		}
		obj, err := c.space.Embed(nil)
		if err != nil {
			t.Fatal(err)
		}
		if obj != c.name {
			t.Errorf("Embed returned %v, want %v", obj, c.name)
		}
	}
}

func TestICCBasedInvalid(t *testing.T) {
	if _, err := ICCBased(nil); err == nil {
		t.Error("no error for missing profile")
	}
	if _, err := ICCBased([]byte("not a profile")); err == nil {
		t.Error("no error for malformed profile")
	}
}
