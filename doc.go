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

// Package pdfout writes PDF files, one indirect object at a time.
//
// The package implements the low-level machinery needed to turn a session
// of vector drawing operations into a PDF document: an append-only object
// store with forward references, stream contexts with transparent
// compression, compressed object streams, and the two encodings of the
// cross-reference data.
//
// The drawing-session frontend lives in the [seehuhn.de/go/pdfout/surface]
// package; the packages below graphics/ convert patterns, images and fonts
// into the corresponding PDF object sequences.
package pdfout
