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

package graphics

import (
	"strconv"

	"seehuhn.de/go/pdfout"
)

// Resources describes the resource dictionary of a content stream.
type Resources struct {
	ExtGState  pdfout.Dict
	ColorSpace pdfout.Dict
	Pattern    pdfout.Dict
	Shading    pdfout.Dict
	XObject    pdfout.Dict
	Font       pdfout.Dict
}

// IsEmpty reports whether no resources have been recorded.
func (r *Resources) IsEmpty() bool {
	return len(r.ExtGState) == 0 &&
		len(r.ColorSpace) == 0 &&
		len(r.Pattern) == 0 &&
		len(r.Shading) == 0 &&
		len(r.XObject) == 0 &&
		len(r.Font) == 0
}

// AsDict returns the resource dictionary.  Empty categories are
// omitted.
func (r *Resources) AsDict() pdfout.Dict {
	dict := pdfout.Dict{}
	if len(r.ExtGState) > 0 {
		dict["ExtGState"] = r.ExtGState
	}
	if len(r.ColorSpace) > 0 {
		dict["ColorSpace"] = r.ColorSpace
	}
	if len(r.Pattern) > 0 {
		dict["Pattern"] = r.Pattern
	}
	if len(r.Shading) > 0 {
		dict["Shading"] = r.Shading
	}
	if len(r.XObject) > 0 {
		dict["XObject"] = r.XObject
	}
	if len(r.Font) > 0 {
		dict["Font"] = r.Font
	}
	return dict
}

// ResourceCategory selects a field of the resource dictionary.
// These correspond to the fields in the Resources dictionary.
//
// See section 7.8.3 of ISO 32000-2:2020.
type ResourceCategory byte

// The valid resource categories.
const (
	CatExtGState ResourceCategory = iota + 1
	CatColorSpace
	CatPattern
	CatShading
	CatXObject
	CatFont
)

type catRes struct {
	cat ResourceCategory
	res any
}

func (w *Writer) getCategoryDict(category ResourceCategory) *pdfout.Dict {
	var field *pdfout.Dict
	switch category {
	case CatExtGState:
		field = &w.Resources.ExtGState
	case CatColorSpace:
		field = &w.Resources.ColorSpace
	case CatPattern:
		field = &w.Resources.Pattern
	case CatShading:
		field = &w.Resources.Shading
	case CatXObject:
		field = &w.Resources.XObject
	case CatFont:
		field = &w.Resources.Font
	default:
		panic("invalid resource category")
	}

	if *field == nil {
		*field = pdfout.Dict{}
	}

	return field
}

func (w *Writer) generateName(category ResourceCategory, dict *pdfout.Dict) pdfout.Name {
	var name pdfout.Name

	prefix := getCategoryPrefix(category)
	numUsed := len(*dict)
	for k := numUsed + 1; ; k-- {
		name = prefix + pdfout.Name(strconv.Itoa(k))
		if _, isUsed := (*dict)[name]; !isUsed {
			break
		}
	}

	return name
}

func getCategoryPrefix(category ResourceCategory) pdfout.Name {
	switch category {
	case CatExtGState:
		return "E"
	case CatColorSpace:
		return "C"
	case CatPattern:
		return "P"
	case CatShading:
		return "S"
	case CatXObject:
		return "X"
	case CatFont:
		return "F"
	default:
		panic("invalid resource category")
	}
}

// ResourceName returns the name used to refer to the given resource
// from within the content stream.  The resource is identified by key;
// obj is its embedded form, usually an indirect reference.  The first
// call for a key adds the resource to the resource dictionary, later
// calls return the same name.
func (w *Writer) ResourceName(category ResourceCategory, key any, obj pdfout.Object) pdfout.Name {
	k := catRes{category, key}
	if name, ok := w.resName[k]; ok {
		return name
	}

	dict := w.getCategoryDict(category)
	name := w.generateName(category, dict)
	(*dict)[name] = obj

	w.resName[k] = name
	return name
}
