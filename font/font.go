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

// Package font embeds font subsets as PDF font dictionaries.
//
// The subsetting itself happens outside this package: a [Subset] is an
// opaque font program together with per-glyph metadata, as produced by
// the font subsetting collaborator.  Embedding tries the possible font
// dictionary types in order of fidelity and uses the first one which
// supports the subset's outline format; if none does, the caller
// receives [pdfout.ErrUnsupported] and can substitute rasterised
// output.
package font

import (
	"errors"
	"fmt"

	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/pdfout"
)

// Format identifies the encoding of a subset's font program.
type Format int

// The known font program formats.
const (
	FormatTrueType Format = iota + 1
	FormatCFF
	FormatOpenType
)

// Glyph describes one glyph of a subset.
type Glyph struct {
	// GID is the glyph id within the subsetted font program.
	GID glyph.ID

	// CID is the character id assigned by the subsetter.  CIDs must be
	// unique within a subset; CID 0 is .notdef.
	CID cid.CID

	// Width is the advance width, in 1/1000 units of text space.
	Width float64

	// Text is the unicode text the glyph represents, used for text
	// extraction.  Glyphs with empty text map to U+FFFD.
	Text string
}

// Subset is one font subset to be embedded: an opaque font program
// plus the glyphs it contains.
type Subset struct {
	// FontData is the subsetted font program.
	FontData []byte

	// Format says how FontData is encoded.
	Format Format

	// PostScriptName is the PostScript name of the original font.
	PostScriptName string

	// Glyphs lists the glyphs of the subset.  Glyphs[0] must be
	// .notdef (CID 0).
	Glyphs []Glyph
}

// Embedded is a font dictionary written to a PDF file.
type Embedded struct {
	Ref       pdfout.Reference
	Composite bool

	codes map[glyph.ID]cid.CID
}

// Embed writes the font under the given reference, which must have
// been allocated by the caller.  Embedding strategies are tried in
// order; the first one which supports the subset wins.
func (s *Subset) Embed(w *pdfout.Writer, ref pdfout.Reference) (*Embedded, error) {
	if len(s.Glyphs) == 0 || s.Glyphs[0].CID != 0 {
		return nil, errors.New("font subset does not start with .notdef")
	}

	attempts := []func(*pdfout.Writer, pdfout.Reference) (*Embedded, error){
		s.embedSimpleTrueType,
		s.embedCompositeTrueType,
		s.embedCompositeCFF,
	}
	for _, try := range attempts {
		res, err := try(w, ref)
		if errors.Is(err, pdfout.ErrUnsupported) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return res, nil
	}
	return nil, fmt.Errorf("font %q: %w", s.PostScriptName, pdfout.ErrUnsupported)
}

// fitsLatin reports whether the subset can use a single-byte encoding:
// few enough glyphs, and every glyph mapping to a single Latin-1 rune.
func (s *Subset) fitsLatin() bool {
	if len(s.Glyphs) > 256 {
		return false
	}
	for _, g := range s.Glyphs[1:] {
		if g.CID > 255 {
			return false
		}
		rr := []rune(g.Text)
		if len(rr) != 1 || rr[0] > 0xff {
			return false
		}
	}
	return true
}

// AppendCode appends the character code of the given glyph to s.
// Composite fonts use two-byte codes, simple fonts one-byte codes.
func (e *Embedded) AppendCode(s pdfout.String, gid glyph.ID) pdfout.String {
	c := e.codes[gid]
	if e.Composite {
		return append(s, byte(c>>8), byte(c))
	}
	return append(s, byte(c))
}

func (s *Subset) codeMap() map[glyph.ID]cid.CID {
	m := make(map[glyph.ID]cid.CID, len(s.Glyphs))
	for _, g := range s.Glyphs {
		m[g.GID] = g.CID
	}
	return m
}
