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

import "errors"

var (
	// ErrUnsupported indicates that a drawing operation cannot be
	// represented in the output.  The error is reported during the analysis
	// pass, so that the caller can substitute a rasterised fallback; it is
	// never returned while replaying pre-validated operations.
	ErrUnsupported = errors.New("operation not representable in PDF output")

	// ErrClosed is returned when writing to a Writer after Close was called.
	ErrClosed = errors.New("file already closed")

	// ErrIncomplete indicates that a multi-step resource builder was
	// finished before all required parts were supplied.  The resource is
	// unusable, other resources in the same document are not affected.
	ErrIncomplete = errors.New("incomplete resource construction")

	errVersion = errors.New("unsupported PDF version")
)
