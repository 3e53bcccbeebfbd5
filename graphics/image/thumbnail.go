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

package image

import (
	goimage "image"

	"golang.org/x/image/draw"

	"seehuhn.de/go/pdfout"
)

// Thumbnail scales src down so that neither dimension exceeds maxDim
// and prepares the result for embedding as a page thumbnail image.
func Thumbnail(src goimage.Image, maxDim int) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxDim || h > maxDim {
		if w >= h {
			h = h * maxDim / w
			w = maxDim
		} else {
			w = w * maxDim / h
			h = maxDim
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		dst := goimage.NewNRGBA(goimage.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
		src = dst
	}
	return FromImage(src)
}

// EmbedThumbnail writes the thumbnail stream for a page and returns
// its reference.  Thumbnail streams carry no Type entry.
func EmbedThumbnail(w *pdfout.Writer, im *Image) (pdfout.Reference, error) {
	ref := w.Alloc()
	err := im.embed(w, ref, pdfout.Dict{})
	if err != nil {
		return 0, err
	}
	return ref, nil
}
