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

// Package image embeds raster images as PDF image XObjects.
//
// Images are first analysed to find the cheapest faithful encoding:
// full-colour images are written as 8-bit DeviceRGB, grayscale images
// as 8-bit DeviceGray, and bilevel images as 1-bit DeviceGray.  A
// non-trivial alpha channel becomes a companion soft-mask stream; a
// bilevel alpha channel becomes a 1-bit stencil mask instead.
package image

import (
	"image"
	"image/draw"
	"io"

	"seehuhn.de/go/pdfout"
)

// Image is a raster image prepared for embedding.
type Image struct {
	Width, Height int

	pix *image.NRGBA

	gray bool
	mono bool

	alpha alphaKind

	// Interpolate enables image smoothing in the viewer.
	Interpolate bool
}

type alphaKind int

const (
	alphaOpaque alphaKind = iota
	alphaBilevel
	alphaFull
)

// FromImage converts src for embedding, classifying colour depth and
// alpha usage.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	pix := image.NewNRGBA(b)
	draw.Draw(pix, pix.Bounds(), src, b.Min, draw.Src)

	im := &Image{
		Width:  b.Dx(),
		Height: b.Dy(),
		pix:    pix,
		gray:   true,
		mono:   true,
	}

	for i := 0; i < len(pix.Pix); i += 4 {
		r, g, bb, a := pix.Pix[i], pix.Pix[i+1], pix.Pix[i+2], pix.Pix[i+3]
		if r != g || g != bb {
			im.gray = false
			im.mono = false
		} else if r != 0 && r != 255 {
			im.mono = false
		}
		switch a {
		case 255:
		case 0:
			if im.alpha == alphaOpaque {
				im.alpha = alphaBilevel
			}
		default:
			im.alpha = alphaFull
		}
	}

	return im
}

// Embed writes the image XObject to the file, under the given
// reference.  The reference must have been allocated by the caller.
func (im *Image) Embed(w *pdfout.Writer, ref pdfout.Reference) error {
	dict := pdfout.Dict{
		"Type": pdfout.Name("XObject"),
	}
	return im.embed(w, ref, dict)
}

// embed writes the image stream, adding the sample format entries to
// dict.
func (im *Image) embed(w *pdfout.Writer, ref pdfout.Reference, dict pdfout.Dict) error {
	dict["Subtype"] = pdfout.Name("Image")
	dict["Width"] = pdfout.Integer(im.Width)
	dict["Height"] = pdfout.Integer(im.Height)
	if im.Interpolate {
		dict["Interpolate"] = pdfout.Boolean(true)
	}

	switch {
	case im.mono:
		dict["ColorSpace"] = pdfout.Name("DeviceGray")
		dict["BitsPerComponent"] = pdfout.Integer(1)
	case im.gray:
		dict["ColorSpace"] = pdfout.Name("DeviceGray")
		dict["BitsPerComponent"] = pdfout.Integer(8)
	default:
		dict["ColorSpace"] = pdfout.Name("DeviceRGB")
		dict["BitsPerComponent"] = pdfout.Integer(8)
	}

	switch im.alpha {
	case alphaBilevel:
		maskRef := w.Alloc()
		err := im.embedStencilMask(w, maskRef)
		if err != nil {
			return err
		}
		dict["Mask"] = maskRef
	case alphaFull:
		maskRef := w.Alloc()
		err := im.embedSoftMask(w, maskRef)
		if err != nil {
			return err
		}
		dict["SMask"] = maskRef
	}

	stm, err := w.OpenStream(ref, dict, pdfout.FilterFlate{})
	if err != nil {
		return err
	}
	err = im.writeSamples(stm)
	if err != nil {
		return err
	}
	return stm.Close()
}

func (im *Image) writeSamples(stm io.Writer) error {
	pix := im.pix.Pix

	switch {
	case im.mono:
		rowLen := (im.Width + 7) / 8
		row := make([]byte, rowLen)
		for y := range im.Height {
			clear(row)
			for x := range im.Width {
				i := im.pix.PixOffset(im.pix.Rect.Min.X+x, im.pix.Rect.Min.Y+y)
				if pix[i] != 0 {
					row[x/8] |= 0x80 >> (x % 8)
				}
			}
			if _, err := stm.Write(row); err != nil {
				return err
			}
		}
	case im.gray:
		row := make([]byte, im.Width)
		for y := range im.Height {
			for x := range im.Width {
				i := im.pix.PixOffset(im.pix.Rect.Min.X+x, im.pix.Rect.Min.Y+y)
				row[x] = pix[i]
			}
			if _, err := stm.Write(row); err != nil {
				return err
			}
		}
	default:
		row := make([]byte, 3*im.Width)
		for y := range im.Height {
			for x := range im.Width {
				i := im.pix.PixOffset(im.pix.Rect.Min.X+x, im.pix.Rect.Min.Y+y)
				copy(row[3*x:], pix[i:i+3])
			}
			if _, err := stm.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// embedStencilMask writes a 1-bit image mask marking the fully
// transparent pixels.
func (im *Image) embedStencilMask(w *pdfout.Writer, ref pdfout.Reference) error {
	dict := pdfout.Dict{
		"Type":             pdfout.Name("XObject"),
		"Subtype":          pdfout.Name("Image"),
		"Width":            pdfout.Integer(im.Width),
		"Height":           pdfout.Integer(im.Height),
		"ImageMask":        pdfout.Boolean(true),
		"BitsPerComponent": pdfout.Integer(1),
	}

	stm, err := w.OpenStream(ref, dict, pdfout.FilterFlate{})
	if err != nil {
		return err
	}

	// sample value 1 masks the pixel out
	rowLen := (im.Width + 7) / 8
	row := make([]byte, rowLen)
	for y := range im.Height {
		clear(row)
		for x := range im.Width {
			i := im.pix.PixOffset(im.pix.Rect.Min.X+x, im.pix.Rect.Min.Y+y)
			if im.pix.Pix[i+3] == 0 {
				row[x/8] |= 0x80 >> (x % 8)
			}
		}
		if _, err := stm.Write(row); err != nil {
			return err
		}
	}
	return stm.Close()
}

// embedSoftMask writes the alpha channel as an 8-bit DeviceGray image.
func (im *Image) embedSoftMask(w *pdfout.Writer, ref pdfout.Reference) error {
	dict := pdfout.Dict{
		"Type":             pdfout.Name("XObject"),
		"Subtype":          pdfout.Name("Image"),
		"Width":            pdfout.Integer(im.Width),
		"Height":           pdfout.Integer(im.Height),
		"ColorSpace":       pdfout.Name("DeviceGray"),
		"BitsPerComponent": pdfout.Integer(8),
	}

	stm, err := w.OpenStream(ref, dict, pdfout.FilterFlate{})
	if err != nil {
		return err
	}

	row := make([]byte, im.Width)
	for y := range im.Height {
		for x := range im.Width {
			i := im.pix.PixOffset(im.pix.Rect.Min.X+x, im.pix.Rect.Min.Y+y)
			row[x] = im.pix.Pix[i+3]
		}
		if _, err := stm.Write(row); err != nil {
			return err
		}
	}
	return stm.Close()
}

// IsOpaque reports whether the image has no transparent pixels.
func (im *Image) IsOpaque() bool {
	return im.alpha == alphaOpaque
}
