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
	goimage "image"
	"image/color"
	"image/jpeg"
	"testing"

	"seehuhn.de/go/pdfout"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		fill  func(im *goimage.NRGBA)
		gray  bool
		mono  bool
		alpha alphaKind
	}{
		{
			name: "colour opaque",
			fill: func(im *goimage.NRGBA) {
				im.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
				im.SetNRGBA(1, 0, color.NRGBA{0, 0, 255, 255})
			},
			gray:  false,
			mono:  false,
			alpha: alphaOpaque,
		},
		{
			name: "gray opaque",
			fill: func(im *goimage.NRGBA) {
				im.SetNRGBA(0, 0, color.NRGBA{100, 100, 100, 255})
				im.SetNRGBA(1, 0, color.NRGBA{200, 200, 200, 255})
			},
			gray:  true,
			mono:  false,
			alpha: alphaOpaque,
		},
		{
			name: "black and white",
			fill: func(im *goimage.NRGBA) {
				im.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 255})
				im.SetNRGBA(1, 0, color.NRGBA{255, 255, 255, 255})
			},
			gray:  true,
			mono:  true,
			alpha: alphaOpaque,
		},
		{
			name: "bilevel alpha",
			fill: func(im *goimage.NRGBA) {
				im.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
				im.SetNRGBA(1, 0, color.NRGBA{0, 0, 0, 0})
			},
			gray:  false,
			mono:  false,
			alpha: alphaBilevel,
		},
		{
			name: "full alpha",
			fill: func(im *goimage.NRGBA) {
				im.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 128})
			},
			gray:  false,
			mono:  false,
			alpha: alphaFull,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := goimage.NewNRGBA(goimage.Rect(0, 0, 2, 2))
			for i := range src.Pix {
				if i%4 == 3 {
					src.Pix[i] = 255
				}
			}
			c.fill(src)

			im := FromImage(src)
			if im.Width != 2 || im.Height != 2 {
				t.Errorf("size %dx%d, want 2x2", im.Width, im.Height)
			}
			if im.gray != c.gray {
				t.Errorf("gray = %v, want %v", im.gray, c.gray)
			}
			if im.mono != c.mono {
				t.Errorf("mono = %v, want %v", im.mono, c.mono)
			}
			if im.alpha != c.alpha {
				t.Errorf("alpha = %v, want %v", im.alpha, c.alpha)
			}
			if im.IsOpaque() != (c.alpha == alphaOpaque) {
				t.Errorf("IsOpaque = %v", im.IsOpaque())
			}
		})
	}
}

func TestProbeJPEG(t *testing.T) {
	src := goimage.NewGray(goimage.Rect(0, 0, 7, 5))
	buf := &bytes.Buffer{}
	err := jpeg.Encode(buf, src, nil)
	if err != nil {
		t.Fatal(err)
	}

	jp, ok := ProbeJPEG(buf.Bytes())
	if !ok {
		t.Fatal("valid JPEG rejected")
	}
	if jp.Width != 7 || jp.Height != 5 {
		t.Errorf("size %dx%d, want 7x5", jp.Width, jp.Height)
	}
	if !jp.Gray {
		t.Error("grayscale JPEG not classified as gray")
	}
}

func TestProbeJPEGInvalid(t *testing.T) {
	if _, ok := ProbeJPEG([]byte("not a JPEG")); ok {
		t.Error("garbage accepted as JPEG")
	}
	if _, ok := ProbeJPEG(nil); ok {
		t.Error("empty data accepted as JPEG")
	}
}

func TestThumbnailSize(t *testing.T) {
	src := goimage.NewNRGBA(goimage.Rect(0, 0, 400, 300))
	im := Thumbnail(src, 106)
	if im.Width != 106 {
		t.Errorf("width = %d, want 106", im.Width)
	}
	if im.Height != 79 {
		t.Errorf("height = %d, want 79", im.Height)
	}

	// images already small enough are kept as they are
	small := goimage.NewNRGBA(goimage.Rect(0, 0, 50, 60))
	im = Thumbnail(small, 106)
	if im.Width != 50 || im.Height != 60 {
		t.Errorf("size %dx%d, want 50x60", im.Width, im.Height)
	}
}

func TestEmbedThumbnail(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := pdfout.NewWriter(buf, nil)
	if err != nil {
		t.Fatal(err)
	}

	src := goimage.NewNRGBA(goimage.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			src.SetNRGBA(x, y, color.NRGBA{uint8(40 * x), uint8(40 * y), 100, 255})
		}
	}
	im := Thumbnail(src, 106)
	_, err = EmbedThumbnail(w, im)
	if err != nil {
		t.Fatal(err)
	}

	// thumbnail streams carry no Type entry
	body := buf.Bytes()
	if bytes.Contains(body, []byte("/Type /XObject")) {
		t.Error("thumbnail stream has a Type entry")
	}
	if !bytes.Contains(body, []byte("/Subtype /Image")) {
		t.Error("missing /Subtype /Image")
	}

	// ordinary image XObjects keep it
	ref := w.Alloc()
	err = im.Embed(w, ref)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("/Type /XObject")) {
		t.Error("image XObject lacks /Type /XObject")
	}
}
