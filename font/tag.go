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

package font

import (
	"hash/fnv"
)

// subsetTag returns the six-letter tag which marks the font as a
// subset, derived deterministically from the font program.
//
// See section 9.9.2 of ISO 32000-2:2020.
func subsetTag(data []byte) string {
	h := fnv.New32a()
	h.Write(data)
	x := h.Sum32()

	var tag [6]byte
	for i := range tag {
		tag[i] = 'A' + byte(x%26)
		x /= 26
	}
	return string(tag[:])
}
