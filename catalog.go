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

import (
	"time"

	"golang.org/x/text/language"
)

// Catalog represents the document catalog, the root object of the document.
// The only required field is Pages.
type Catalog struct {
	// Pages is the root node of the page tree.
	Pages Reference

	// MetaData refers to the document-level XMP metadata stream.
	MetaData Reference

	// Outlines refers to the document outline, if any.
	Outlines Reference

	// Lang is the natural language of the document text.
	Lang language.Tag

	// PageLabels maps page indices to page labels.
	PageLabels Object

	// OutputIntents lists the output intent dictionaries of the
	// document.
	OutputIntents Array
}

// AsDict returns the PDF dictionary for the catalog.
func (c *Catalog) AsDict() Dict {
	dict := Dict{
		"Type":  Name("Catalog"),
		"Pages": c.Pages,
	}
	if c.MetaData != 0 {
		dict["Metadata"] = c.MetaData
	}
	if c.Outlines != 0 {
		dict["Outlines"] = c.Outlines
	}
	if !c.Lang.IsRoot() {
		dict["Lang"] = TextString(c.Lang.String())
	}
	if c.PageLabels != nil {
		dict["PageLabels"] = c.PageLabels
	}
	if c.OutputIntents != nil {
		dict["OutputIntents"] = c.OutputIntents
	}
	return dict
}

// Info represents the document information dictionary.
// All fields are optional.
type Info struct {
	Title    string
	Author   string
	Subject  string
	Keywords string

	// Creator names the application which created the original document.
	Creator string

	// Producer names the application which produced the PDF output.
	Producer string

	CreationDate time.Time
	ModDate      time.Time
}

// AsDict returns the PDF dictionary for the document information.
func (i *Info) AsDict() Dict {
	dict := Dict{}
	for key, val := range map[Name]string{
		"Title":    i.Title,
		"Author":   i.Author,
		"Subject":  i.Subject,
		"Keywords": i.Keywords,
		"Creator":  i.Creator,
		"Producer": i.Producer,
	} {
		if val != "" {
			dict[key] = TextString(val)
		}
	}
	if !i.CreationDate.IsZero() {
		dict["CreationDate"] = Date(i.CreationDate)
	}
	if !i.ModDate.IsZero() {
		dict["ModDate"] = Date(i.ModDate)
	}
	return dict
}

// Date creates a PDF String encoding the given date and time.
func Date(t time.Time) String {
	s := t.Format("D:20060102150405-0700")
	k := len(s) - 2
	s = s[:k] + "'" + s[k:]
	return String(s)
}
