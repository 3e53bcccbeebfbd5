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

package color

import (
	"errors"
	"fmt"

	"seehuhn.de/go/icc"

	"seehuhn.de/go/pdfout"
)

// SpaceICCBased is a colour space described by an embedded ICC profile.
type SpaceICCBased struct {
	N       int
	Ranges  []float64
	profile []byte
}

// ICCBased returns a new ICC-based colour space for the given profile
// data.  The number of components and the component ranges are taken
// from the profile header.
func ICCBased(profile []byte) (*SpaceICCBased, error) {
	if len(profile) == 0 {
		return nil, errors.New("ICCBased: missing profile")
	}

	p, err := icc.Decode(profile)
	if err != nil {
		return nil, err
	}

	n := p.ColorSpace.NumComponents()
	if n != 1 && n != 3 && n != 4 {
		return nil, fmt.Errorf("ICCBased: invalid number of components %d", n)
	}

	var ranges []float64
	switch p.ColorSpace {
	case icc.GraySpace:
		ranges = []float64{0, 1}
	case icc.RGBSpace:
		ranges = []float64{0, 1, 0, 1, 0, 1}
	case icc.CMYKSpace:
		ranges = []float64{0, 1, 0, 1, 0, 1, 0, 1}
	case icc.CIELabSpace:
		ranges = []float64{0, 100, -128, 127, -128, 127}
	default:
		return nil, fmt.Errorf("ICCBased: unsupported colour space %v", p.ColorSpace)
	}

	res := &SpaceICCBased{
		N:       n,
		Ranges:  ranges,
		profile: profile,
	}
	return res, nil
}

// Channels returns the number of colour components.
func (s *SpaceICCBased) Channels() int {
	return s.N
}

// Embed writes the profile stream and returns the colour space array.
func (s *SpaceICCBased) Embed(w *pdfout.Writer) (pdfout.Object, error) {
	sRef, err := s.EmbedProfile(w)
	if err != nil {
		return nil, err
	}
	return pdfout.Array{pdfout.Name("ICCBased"), sRef}, nil
}

// EmbedProfile writes the ICC profile stream and returns its
// reference.  The same stream can serve as the destination profile of
// an output intent.
func (s *SpaceICCBased) EmbedProfile(w *pdfout.Writer) (pdfout.Reference, error) {
	dict := pdfout.Dict{
		"N": pdfout.Integer(s.N),
	}

	needsRange := false
	for i := range s.N {
		if s.Ranges[2*i] != 0 || s.Ranges[2*i+1] != 1 {
			needsRange = true
			break
		}
	}
	if needsRange {
		rr := make(pdfout.Array, len(s.Ranges))
		for i, x := range s.Ranges {
			rr[i] = pdfout.Number(x)
		}
		dict["Range"] = rr
	}

	sRef := w.Alloc()
	body, err := w.OpenStream(sRef, dict, pdfout.FilterFlate{})
	if err != nil {
		return 0, err
	}
	_, err = body.Write(s.profile)
	if err != nil {
		return 0, err
	}
	err = body.Close()
	if err != nil {
		return 0, err
	}
	return sRef, nil
}
