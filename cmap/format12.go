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

package cmap

import (
	"fmt"

	"github.com/RefinedDev/text-renderer/glyph"
	"github.com/RefinedDev/text-renderer/parser"
)

// maxCodePoint is the largest valid Unicode code point.
const maxCodePoint = 0x10_FFFF

// decodeFormat12 reads a format 12 subtable.  The parser must be
// positioned directly after the format field.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-12-segmented-coverage
func decodeFormat12(p *parser.Parser) (Index, error) {
	p.Discard(10) // reserved, length, language
	numGroups, err := p.ReadUint32()
	if err != nil {
		return nil, err
	}

	idx := Index{}
	var size uint32
	for i := uint32(0); i < numGroups; i++ {
		startCharCode, err := p.ReadUint32()
		if err != nil {
			return nil, err
		}
		endCharCode, err := p.ReadUint32()
		if err != nil {
			return nil, err
		}
		startGlyphID, err := p.ReadUint32()
		if err != nil {
			return nil, err
		}

		if endCharCode < startCharCode || endCharCode > maxCodePoint {
			return nil, malformedGroup(i, "invalid character range 0x%X-0x%X", startCharCode, endCharCode)
		}
		size += endCharCode - startCharCode + 1
		if size > maxCodePoint+1 {
			return nil, malformedGroup(i, "more than %d code points", maxCodePoint+1)
		}

		for c := startCharCode; c <= endCharCode; c++ {
			idx[c] = glyph.ID(startGlyphID + (c - startCharCode))
		}
	}

	return idx, nil
}

func malformedGroup(i uint32, format string, a ...interface{}) error {
	return &parser.InvalidFontError{
		SubSystem: "sfnt/cmap",
		Reason:    fmt.Sprintf("group %d: ", i) + fmt.Sprintf(format, a...),
	}
}
