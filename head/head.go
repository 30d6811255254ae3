// text-renderer - reading glyph outlines from TrueType font files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
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

// Package head reads the fields of the "head" table which are needed to
// locate glyph outlines.
// https://docs.microsoft.com/en-us/typography/opentype/spec/head
package head

import (
	"seehuhn.de/go/postscript/funit"

	"github.com/RefinedDev/text-renderer/parser"
)

// Byte offsets of the fields within the "head" table.
const (
	unitsPerEmOffset       = 18
	bboxOffset             = 36
	indexToLocFormatOffset = 50
)

// Info contains information from the "head" table.
type Info struct {
	UnitsPerEm uint16
	FontBBox   funit.Rect16

	// LocaFormat is the indexToLocFormat field.  The value 0 indicates
	// short (16-bit, halved) "loca" entries, any other value indicates long
	// (32-bit) entries.
	LocaFormat int16
}

// HasLongOffsets returns true if the "loca" table uses 32-bit entries.
func (info *Info) HasLongOffsets() bool {
	return info.LocaFormat != 0
}

// Read reads the "head" table which starts at the given file offset.
// All reads use absolute seeks; the final position of p is unspecified.
func Read(p *parser.Parser, offset int64) (*Info, error) {
	info := &Info{}

	var err error
	p.SeekPos(offset + unitsPerEmOffset)
	info.UnitsPerEm, err = p.ReadUint16()
	if err != nil {
		return nil, err
	}

	p.SeekPos(offset + bboxOffset)
	var bbox [4]int16
	for i := range bbox {
		bbox[i], err = p.ReadInt16()
		if err != nil {
			return nil, err
		}
	}
	info.FontBBox = funit.Rect16{
		LLx: funit.Int16(bbox[0]),
		LLy: funit.Int16(bbox[1]),
		URx: funit.Int16(bbox[2]),
		URy: funit.Int16(bbox[3]),
	}

	p.SeekPos(offset + indexToLocFormatOffset)
	info.LocaFormat, err = p.ReadInt16()
	if err != nil {
		return nil, err
	}

	return info, nil
}
