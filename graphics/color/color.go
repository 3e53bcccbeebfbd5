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

// Package color implements the colour spaces used by the PDF output
// backend.
package color

import (
	"seehuhn.de/go/pdfout"
)

// Space represents a PDF colour space.
type Space interface {
	// Channels returns the number of colour components.
	Channels() int

	// Embed returns the PDF representation of the colour space.  Device
	// spaces are returned by name; other spaces are written to the file
	// and returned by reference.
	Embed(w *pdfout.Writer) (pdfout.Object, error)
}

// DeviceGray is the device grayscale colour space.
var DeviceGray Space = deviceSpace{name: "DeviceGray", channels: 1}

// DeviceRGB is the device RGB colour space.
var DeviceRGB Space = deviceSpace{name: "DeviceRGB", channels: 3}

type deviceSpace struct {
	name     pdfout.Name
	channels int
}

func (s deviceSpace) Channels() int {
	return s.channels
}

func (s deviceSpace) Embed(w *pdfout.Writer) (pdfout.Object, error) {
	return s.name, nil
}
