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
	"bytes"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/pdfout"
)

// Descriptor represents a PDF font descriptor.
//
// See section 9.8.1 of ISO 32000-2:2020.
type Descriptor struct {
	FontName string

	IsFixedPitch bool
	IsSerif      bool
	IsSymbolic   bool
	IsScript     bool
	IsItalic     bool

	FontBBox    *pdfout.Rectangle
	ItalicAngle float64
	Ascent      float64
	Descent     float64
	CapHeight   float64
	StemV       float64
}

// Font descriptor flags.
// See table 121 of ISO 32000-2:2020.
const (
	flagFixedPitch  = 1 << 0
	flagSerif       = 1 << 1
	flagSymbolic    = 1 << 2
	flagScript      = 1 << 3
	flagNonsymbolic = 1 << 5
	flagItalic      = 1 << 6
)

// AsDict returns the font descriptor dictionary.
func (d *Descriptor) AsDict() pdfout.Dict {
	var flags int
	if d.IsFixedPitch {
		flags |= flagFixedPitch
	}
	if d.IsSerif {
		flags |= flagSerif
	}
	if d.IsSymbolic {
		flags |= flagSymbolic
	} else {
		flags |= flagNonsymbolic
	}
	if d.IsScript {
		flags |= flagScript
	}
	if d.IsItalic {
		flags |= flagItalic
	}

	dict := pdfout.Dict{
		"Type":        pdfout.Name("FontDescriptor"),
		"FontName":    pdfout.Name(d.FontName),
		"Flags":       pdfout.Integer(flags),
		"FontBBox":    d.FontBBox,
		"ItalicAngle": pdfout.Number(d.ItalicAngle),
		"Ascent":      pdfout.Number(d.Ascent),
		"Descent":     pdfout.Number(d.Descent),
		"CapHeight":   pdfout.Number(d.CapHeight),
		"StemV":       pdfout.Number(d.StemV),
	}
	return dict
}

// descriptorFromSFNT extracts descriptor metrics from a TrueType or
// OpenType font program.
func descriptorFromSFNT(data []byte, fontName string) (*Descriptor, error) {
	sf, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	q := 1000 / float64(sf.UnitsPerEm)
	bbox := sf.FontBBox()

	return &Descriptor{
		FontName:     fontName,
		IsFixedPitch: sf.IsFixedPitch(),
		IsSerif:      sf.IsSerif,
		IsSymbolic:   true,
		IsScript:     sf.IsScript,
		IsItalic:     sf.IsItalic,
		FontBBox: &pdfout.Rectangle{
			LLx: bbox.LLx.AsFloat(q),
			LLy: bbox.LLy.AsFloat(q),
			URx: bbox.URx.AsFloat(q),
			URy: bbox.URy.AsFloat(q),
		},
		ItalicAngle: sf.ItalicAngle,
		Ascent:      sf.Ascent.AsFloat(q),
		Descent:     sf.Descent.AsFloat(q),
		CapHeight:   sf.CapHeight.AsFloat(q),
		StemV:       80,
	}, nil
}

// descriptorFromCFF extracts descriptor metrics from a bare CFF font
// program.  A bare CFF carries no ascender or descender, so these are
// taken from the union of the glyph bounding boxes.
func descriptorFromCFF(data []byte, fontName string) (*Descriptor, error) {
	cf, err := cff.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bbox := &pdfout.Rectangle{}
	for gid := range len(cf.Glyphs) {
		b := cf.GlyphBBoxPDF(cf.FontMatrix, glyph.ID(gid))
		if b.LLx == 0 && b.LLy == 0 && b.URx == 0 && b.URy == 0 {
			continue
		}
		bbox.Extend(&pdfout.Rectangle{
			LLx: b.LLx, LLy: b.LLy, URx: b.URx, URy: b.URy,
		})
	}

	var italicAngle float64
	if cf.FontInfo != nil {
		italicAngle = cf.FontInfo.ItalicAngle
	}

	return &Descriptor{
		FontName:    fontName,
		IsSymbolic:  true,
		IsItalic:    italicAngle != 0,
		FontBBox:    bbox,
		ItalicAngle: italicAngle,
		Ascent:      bbox.URy,
		Descent:     bbox.LLy,
		CapHeight:   bbox.URy,
		StemV:       80,
	}, nil
}
