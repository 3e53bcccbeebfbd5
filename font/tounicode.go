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
	"slices"
	"text/template"
	"unicode/utf16"

	"seehuhn.de/go/pdfout"
)

// toUnicodeInfo describes the ToUnicode CMap of an embedded font.
type toUnicodeInfo struct {
	// TwoByte selects two-byte character codes.
	TwoByte bool

	Singles []toUnicodeSingle
}

type toUnicodeSingle struct {
	Code int
	Text string
}

// makeToUnicode builds the mapping from character codes to text.
// Glyphs without text map to the Unicode replacement character, so
// that text extraction never silently drops characters.
func makeToUnicode(glyphs []Glyph, twoByte bool) *toUnicodeInfo {
	info := &toUnicodeInfo{TwoByte: twoByte}
	for _, g := range glyphs {
		text := g.Text
		if text == "" {
			text = "�"
		}
		info.Singles = append(info.Singles, toUnicodeSingle{
			Code: int(g.CID),
			Text: text,
		})
	}
	slices.SortFunc(info.Singles, func(a, b toUnicodeSingle) int {
		return a.Code - b.Code
	})
	return info
}

// Embed writes the CMap stream under the given reference.
func (info *toUnicodeInfo) Embed(w *pdfout.Writer, ref pdfout.Reference) error {
	stm, err := w.OpenStream(ref, nil, pdfout.FilterFlate{})
	if err != nil {
		return err
	}
	err = toUnicodeTmpl.Execute(stm, info)
	if err != nil {
		return err
	}
	return stm.Close()
}

func (info *toUnicodeInfo) formatCode(code int) string {
	if info.TwoByte {
		return fmt.Sprintf("<%04x>", code)
	}
	return fmt.Sprintf("<%02x>", code)
}

func (info *toUnicodeInfo) CodeSpace() string {
	if info.TwoByte {
		return "<0000> <ffff>"
	}
	return "<00> <ff>"
}

func (info *toUnicodeInfo) Single(s toUnicodeSingle) string {
	var text []byte
	for _, x := range utf16.Encode([]rune(s.Text)) {
		text = append(text, byte(x>>8), byte(x))
	}
	return fmt.Sprintf("%s <%02X>", info.formatCode(s.Code), text)
}

// Chunks splits the singles into blocks small enough for one
// beginbfchar section.
func (info *toUnicodeInfo) Chunks() [][]toUnicodeSingle {
	const chunkSize = 100

	var res [][]toUnicodeSingle
	x := info.Singles
	for len(x) >= chunkSize {
		res = append(res, x[:chunkSize])
		x = x[chunkSize:]
	}
	if len(x) > 0 {
		res = append(res, x)
	}
	return res
}

var toUnicodeTmpl = template.Must(template.New("CMap").Parse(`/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CIDSystemInfo
<< /Registry (Adobe)
/Ordering (UCS)
/Supplement 0
>> def
/CMapName /Adobe-Identity-UCS def
/CMapType 2 def
1 begincodespacerange
{{.CodeSpace}}
endcodespacerange
{{range .Chunks -}}
{{len .}} beginbfchar
{{range . -}}
{{$.Single .}}
{{end -}}
endbfchar
{{end -}}
endcmap
CMapName currentdict /CMap defineresource pop
end
end
`))
