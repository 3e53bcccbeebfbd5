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

import "strconv"

// Version represents a version of the PDF standard.
//
// The version of the output file is fixed when the [Writer] is created.  It
// gates the availability of features: compressed object streams and the
// binary cross-reference stream require [V1_5] or later.
type Version int

// The PDF versions which can be written by this library.  Since all output
// uses transparency groups and soft masks, versions before 1.4 are not
// supported.
const (
	_ Version = iota
	V1_4
	V1_5
	V1_6
	V1_7
	V2_0
)

// ParseVersion parses a PDF version string such as "1.5".
func ParseVersion(verString string) (Version, error) {
	switch verString {
	case "1.4":
		return V1_4, nil
	case "1.5":
		return V1_5, nil
	case "1.6":
		return V1_6, nil
	case "1.7":
		return V1_7, nil
	case "2.0":
		return V2_0, nil
	}
	return 0, errVersion
}

// ToString returns the string representation of ver, e.g. "1.7".  If ver
// does not correspond to a supported PDF version, an error is returned.
func (ver Version) ToString() (string, error) {
	if ver >= V1_4 && ver <= V1_7 {
		return "1." + string([]byte{byte(ver-V1_4) + '4'}), nil
	}
	if ver == V2_0 {
		return "2.0", nil
	}
	return "", errVersion
}

func (ver Version) String() string {
	versionString, err := ver.ToString()
	if err != nil {
		versionString = "pdfout.Version(" + strconv.Itoa(int(ver)) + ")"
	}
	return versionString
}

// CheckVersion returns an error if the PDF version of w is below minVersion.
// The operation string is used in the error message.
func CheckVersion(w *Writer, operation string, minVersion Version) error {
	if w.Version >= minVersion {
		return nil
	}
	return &VersionError{
		Operation: operation,
		Earliest:  minVersion,
	}
}

// VersionError is returned when trying to use a feature which is not
// available in the PDF version being written.
type VersionError struct {
	Operation string
	Earliest  Version
}

func (err *VersionError) Error() string {
	return (err.Operation + " requires PDF version " +
		err.Earliest.String() + " or newer")
}
