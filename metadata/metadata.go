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

// Package metadata writes the document-level XMP metadata stream.
//
// The same [pdfout.Info] values which feed the classic document
// information dictionary are mirrored into the XMP packet, so that
// both representations of the metadata agree.
package metadata

import (
	"golang.org/x/text/language"

	"seehuhn.de/go/xmp"

	"seehuhn.de/go/pdfout"
)

// pdfSchema is the XMP namespace for PDF metadata.
// See https://developer.adobe.com/xmp/docs/XMPNamespaces/pdf/
type pdfSchema struct {
	_        xmp.Namespace `xmp:"http://ns.adobe.com/pdf/1.3/"`
	_        xmp.Prefix    `xmp:"pdf"`
	Keywords xmp.Text
	Producer xmp.AgentName
}

// Embed writes info as an XMP metadata stream under the given
// reference.  The reference belongs into the Metadata entry of the
// document catalog.
func Embed(w *pdfout.Writer, ref pdfout.Reference, info *pdfout.Info) error {
	xDefault := language.MustParse("x-default")

	dc := &xmp.DublinCore{}
	if info.Title != "" {
		dc.Title.Set(xDefault, info.Title)
	}
	if info.Author != "" {
		dc.Creator.Append(xmp.NewProperName(info.Author))
	}
	if info.Subject != "" {
		dc.Description.Set(xDefault, info.Subject)
	}

	basic := &xmp.Basic{}
	if info.Creator != "" {
		basic.CreatorTool = xmp.NewAgentName(info.Creator)
	}
	if !info.CreationDate.IsZero() {
		basic.CreateDate = xmp.NewDate(info.CreationDate)
	}
	if !info.ModDate.IsZero() {
		basic.ModifyDate = xmp.NewDate(info.ModDate)
	}

	p := &pdfSchema{}
	if info.Keywords != "" {
		p.Keywords = xmp.NewText(info.Keywords)
	}
	if info.Producer != "" {
		p.Producer = xmp.NewAgentName(info.Producer)
	}

	packet := xmp.NewPacket()
	packet.Set(dc, basic, p)

	dict := pdfout.Dict{
		"Type":    pdfout.Name("Metadata"),
		"Subtype": pdfout.Name("XML"),
	}
	// The stream is left uncompressed so that XMP-aware tools can
	// find the packet by scanning the file.
	body, err := w.OpenStream(ref, dict)
	if err != nil {
		return err
	}
	err = packet.Write(body, nil)
	if err != nil {
		return err
	}
	return body.Close()
}
