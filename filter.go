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
	"compress/zlib"
	"io"
)

// Filter represents a PDF stream filter, used to transparently compress
// stream data as it is written.
type Filter interface {
	// Encode wraps w so that data written to the returned WriteCloser is
	// encoded before being passed on to w.  Closing the returned
	// WriteCloser flushes the encoder but does not close w.
	Encode(ver Version, w io.WriteCloser) (io.WriteCloser, error)

	// Info returns the name of the filter and the decode parameters, for
	// use in the stream dictionary.
	Info(ver Version) (Name, Dict, error)
}

// FilterFlate is the FlateDecode filter, using zlib compressed data.
type FilterFlate struct {
	// Level is the zlib compression level, in the range accepted by
	// [compress/zlib].  The zero value selects the default level.
	Level int
}

// Encode implements the [Filter] interface.
func (f FilterFlate) Encode(ver Version, w io.WriteCloser) (io.WriteCloser, error) {
	level := f.Level
	if level == 0 {
		level = zlib.DefaultCompression
	}
	zw, err := zlib.NewWriterLevel(w, level)
	if err != nil {
		return nil, err
	}
	return &flateWriter{zw: zw, next: w}, nil
}

// Info implements the [Filter] interface.
func (f FilterFlate) Info(ver Version) (Name, Dict, error) {
	return "FlateDecode", nil, nil
}

type flateWriter struct {
	zw   *zlib.Writer
	next io.WriteCloser
}

func (w *flateWriter) Write(p []byte) (int, error) {
	return w.zw.Write(p)
}

func (w *flateWriter) Close() error {
	err := w.zw.Close()
	if err != nil {
		return err
	}
	return w.next.Close()
}

// appendFilter records the name and decode parameters of an additional
// filter in a stream dictionary.
func appendFilter(dict Dict, name Name, parms Dict) {
	switch filter := dict["Filter"].(type) {
	case nil:
		dict["Filter"] = name
		if len(parms) > 0 {
			dict["DecodeParms"] = parms
		}
	case Name:
		dict["Filter"] = Array{filter, name}
		oldParms, _ := dict["DecodeParms"].(Dict)
		if len(oldParms) > 0 || len(parms) > 0 {
			var p0, p1 Object
			if len(oldParms) > 0 {
				p0 = oldParms
			}
			if len(parms) > 0 {
				p1 = parms
			}
			dict["DecodeParms"] = Array{p0, p1}
		}
	case Array:
		dict["Filter"] = append(filter, name)
		oldParms, _ := dict["DecodeParms"].(Array)
		for len(oldParms) < len(filter) {
			oldParms = append(oldParms, nil)
		}
		var p1 Object
		if len(parms) > 0 {
			p1 = parms
		}
		dict["DecodeParms"] = append(oldParms, p1)
	}
}
