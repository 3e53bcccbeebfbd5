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
	"fmt"

	"seehuhn.de/go/pdfout"
)

// embedSimpleTrueType writes the subset as a simple TrueType font with
// single-byte codes.  This only applies when the subset fits a Latin
// encoding; the font program's cmap must map the assigned codes.
func (s *Subset) embedSimpleTrueType(w *pdfout.Writer, ref pdfout.Reference) (*Embedded, error) {
	if s.Format != FormatTrueType || !s.fitsLatin() {
		return nil, pdfout.ErrUnsupported
	}

	fontName := subsetTag(s.FontData) + "+" + s.PostScriptName
	desc, err := descriptorFromSFNT(s.FontData, fontName)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", s.PostScriptName, pdfout.ErrUnsupported)
	}

	descRef := w.Alloc()
	fontFileRef := w.Alloc()
	toUnicodeRef := w.Alloc()

	first, last, widths := encodeSimpleWidths(s.Glyphs)
	fontDict := pdfout.Dict{
		"Type":           pdfout.Name("Font"),
		"Subtype":        pdfout.Name("TrueType"),
		"BaseFont":       pdfout.Name(fontName),
		"FirstChar":      first,
		"LastChar":       last,
		"Widths":         widths,
		"FontDescriptor": descRef,
		"ToUnicode":      toUnicodeRef,
	}

	descDict := desc.AsDict()
	descDict["FontFile2"] = fontFileRef

	err = w.WriteCompressed(
		[]pdfout.Reference{ref, descRef},
		fontDict, descDict)
	if err != nil {
		return nil, err
	}

	err = s.writeFontFile2(w, fontFileRef)
	if err != nil {
		return nil, err
	}

	tu := makeToUnicode(s.Glyphs, false)
	err = tu.Embed(w, toUnicodeRef)
	if err != nil {
		return nil, err
	}

	return &Embedded{Ref: ref, Composite: false, codes: s.codeMap()}, nil
}

// embedCompositeTrueType writes the subset as a Type0 font with a
// CIDFontType2 descendant and two-byte Identity-H codes.
func (s *Subset) embedCompositeTrueType(w *pdfout.Writer, ref pdfout.Reference) (*Embedded, error) {
	if s.Format != FormatTrueType && s.Format != FormatOpenType {
		return nil, pdfout.ErrUnsupported
	}

	fontName := subsetTag(s.FontData) + "+" + s.PostScriptName
	desc, err := descriptorFromSFNT(s.FontData, fontName)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", s.PostScriptName, pdfout.ErrUnsupported)
	}

	cidFontRef := w.Alloc()
	descRef := w.Alloc()
	fontFileRef := w.Alloc()
	toUnicodeRef := w.Alloc()

	fontDict := pdfout.Dict{
		"Type":            pdfout.Name("Font"),
		"Subtype":         pdfout.Name("Type0"),
		"BaseFont":        pdfout.Name(fontName),
		"Encoding":        pdfout.Name("Identity-H"),
		"DescendantFonts": pdfout.Array{cidFontRef},
		"ToUnicode":       toUnicodeRef,
	}

	cidFontDict := pdfout.Dict{
		"Type":     pdfout.Name("Font"),
		"Subtype":  pdfout.Name("CIDFontType2"),
		"BaseFont": pdfout.Name(fontName),
		"CIDSystemInfo": pdfout.Dict{
			"Registry":   pdfout.String("Adobe"),
			"Ordering":   pdfout.String("Identity"),
			"Supplement": pdfout.Integer(0),
		},
		"FontDescriptor": descRef,
		"W":              encodeCompositeWidths(s.Glyphs),
	}

	cidToGIDRef, isIdentity := s.cidToGIDMap(w)
	if isIdentity {
		cidFontDict["CIDToGIDMap"] = pdfout.Name("Identity")
	} else {
		cidFontDict["CIDToGIDMap"] = cidToGIDRef
	}

	descDict := desc.AsDict()
	var fontFileKey pdfout.Name
	if s.Format == FormatTrueType {
		fontFileKey = "FontFile2"
	} else {
		fontFileKey = "FontFile3"
	}
	descDict[fontFileKey] = fontFileRef

	err = w.WriteCompressed(
		[]pdfout.Reference{ref, cidFontRef, descRef},
		fontDict, cidFontDict, descDict)
	if err != nil {
		return nil, err
	}

	if s.Format == FormatTrueType {
		err = s.writeFontFile2(w, fontFileRef)
	} else {
		err = s.writeFontFile3(w, fontFileRef, "OpenType")
	}
	if err != nil {
		return nil, err
	}

	if !isIdentity {
		err = s.writeCIDToGID(w, cidToGIDRef)
		if err != nil {
			return nil, err
		}
	}

	tu := makeToUnicode(s.Glyphs, true)
	err = tu.Embed(w, toUnicodeRef)
	if err != nil {
		return nil, err
	}

	return &Embedded{Ref: ref, Composite: true, codes: s.codeMap()}, nil
}

// embedCompositeCFF writes the subset as a Type0 font with a
// CIDFontType0 descendant carrying a bare CFF font program.
func (s *Subset) embedCompositeCFF(w *pdfout.Writer, ref pdfout.Reference) (*Embedded, error) {
	if s.Format != FormatCFF {
		return nil, pdfout.ErrUnsupported
	}

	fontName := subsetTag(s.FontData) + "+" + s.PostScriptName
	desc, err := descriptorFromCFF(s.FontData, fontName)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", s.PostScriptName, pdfout.ErrUnsupported)
	}

	cidFontRef := w.Alloc()
	descRef := w.Alloc()
	fontFileRef := w.Alloc()
	toUnicodeRef := w.Alloc()

	fontDict := pdfout.Dict{
		"Type":            pdfout.Name("Font"),
		"Subtype":         pdfout.Name("Type0"),
		"BaseFont":        pdfout.Name(fontName + "-Identity-H"),
		"Encoding":        pdfout.Name("Identity-H"),
		"DescendantFonts": pdfout.Array{cidFontRef},
		"ToUnicode":       toUnicodeRef,
	}

	cidFontDict := pdfout.Dict{
		"Type":     pdfout.Name("Font"),
		"Subtype":  pdfout.Name("CIDFontType0"),
		"BaseFont": pdfout.Name(fontName),
		"CIDSystemInfo": pdfout.Dict{
			"Registry":   pdfout.String("Adobe"),
			"Ordering":   pdfout.String("Identity"),
			"Supplement": pdfout.Integer(0),
		},
		"FontDescriptor": descRef,
		"W":              encodeCompositeWidths(s.Glyphs),
	}

	descDict := desc.AsDict()
	descDict["FontFile3"] = fontFileRef

	err = w.WriteCompressed(
		[]pdfout.Reference{ref, cidFontRef, descRef},
		fontDict, cidFontDict, descDict)
	if err != nil {
		return nil, err
	}

	err = s.writeFontFile3(w, fontFileRef, "CIDFontType0C")
	if err != nil {
		return nil, err
	}

	tu := makeToUnicode(s.Glyphs, true)
	err = tu.Embed(w, toUnicodeRef)
	if err != nil {
		return nil, err
	}

	return &Embedded{Ref: ref, Composite: true, codes: s.codeMap()}, nil
}

// writeFontFile2 embeds a TrueType font program.
// See section 9.9 of ISO 32000-2:2020.
func (s *Subset) writeFontFile2(w *pdfout.Writer, ref pdfout.Reference) error {
	dict := pdfout.Dict{
		"Length1": pdfout.Integer(len(s.FontData)),
	}
	stm, err := w.OpenStream(ref, dict, pdfout.FilterFlate{})
	if err != nil {
		return err
	}
	_, err = stm.Write(s.FontData)
	if err != nil {
		return err
	}
	return stm.Close()
}

// writeFontFile3 embeds a CFF or OpenType font program.
func (s *Subset) writeFontFile3(w *pdfout.Writer, ref pdfout.Reference, subtype pdfout.Name) error {
	dict := pdfout.Dict{
		"Subtype": subtype,
	}
	stm, err := w.OpenStream(ref, dict, pdfout.FilterFlate{})
	if err != nil {
		return err
	}
	_, err = stm.Write(s.FontData)
	if err != nil {
		return err
	}
	return stm.Close()
}

// cidToGIDMap decides between the Identity map and an explicit map
// stream.  The returned reference is only valid when the map is not
// the identity.
func (s *Subset) cidToGIDMap(w *pdfout.Writer) (pdfout.Reference, bool) {
	isIdentity := true
	maxCID := 0
	for _, g := range s.Glyphs {
		if int(g.CID) != int(g.GID) {
			isIdentity = false
		}
		if int(g.CID) > maxCID {
			maxCID = int(g.CID)
		}
	}
	if isIdentity {
		return 0, true
	}
	return w.Alloc(), false
}

func (s *Subset) writeCIDToGID(w *pdfout.Writer, ref pdfout.Reference) error {
	maxCID := 0
	for _, g := range s.Glyphs {
		if int(g.CID) > maxCID {
			maxCID = int(g.CID)
		}
	}
	buf := make([]byte, 2*(maxCID+1))
	for _, g := range s.Glyphs {
		buf[2*int(g.CID)] = byte(g.GID >> 8)
		buf[2*int(g.CID)+1] = byte(g.GID)
	}

	stm, err := w.OpenStream(ref, nil, pdfout.FilterFlate{})
	if err != nil {
		return err
	}
	_, err = stm.Write(buf)
	if err != nil {
		return err
	}
	return stm.Close()
}
