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
	"bytes"
	"image/color"
	"image/jpeg"

	"seehuhn.de/go/pdfout"
)

// JPEG is a pre-compressed JPEG image which is passed through into the
// file unchanged, using the DCTDecode filter.
type JPEG struct {
	Width, Height int
	Gray          bool

	data []byte
}

// ProbeJPEG checks whether data is a JPEG stream which can be embedded
// without re-encoding.  Probing has no side effects; on failure the
// caller falls back to re-encoding raw samples.
func ProbeJPEG(data []byte) (*JPEG, bool) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}

	var gray bool
	switch cfg.ColorModel {
	case color.GrayModel, color.Gray16Model:
		gray = true
	case color.YCbCrModel, color.NRGBAModel, color.RGBAModel:
		gray = false
	default:
		// CMYK and exotic colour models need transcoding
		return nil, false
	}

	return &JPEG{
		Width:  cfg.Width,
		Height: cfg.Height,
		Gray:   gray,
		data:   data,
	}, true
}

// Embed writes the JPEG data to the file as an image XObject, under
// the given reference.
func (im *JPEG) Embed(w *pdfout.Writer, ref pdfout.Reference) error {
	cs := pdfout.Name("DeviceRGB")
	if im.Gray {
		cs = pdfout.Name("DeviceGray")
	}
	dict := pdfout.Dict{
		"Type":             pdfout.Name("XObject"),
		"Subtype":          pdfout.Name("Image"),
		"Width":            pdfout.Integer(im.Width),
		"Height":           pdfout.Integer(im.Height),
		"ColorSpace":       cs,
		"BitsPerComponent": pdfout.Integer(8),
		"Filter":           pdfout.Name("DCTDecode"),
	}

	stm, err := w.OpenStream(ref, dict)
	if err != nil {
		return err
	}
	_, err = stm.Write(im.data)
	if err != nil {
		return err
	}
	return stm.Close()
}
