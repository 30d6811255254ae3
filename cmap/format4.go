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
	"github.com/RefinedDev/text-renderer/glyph"
	"github.com/RefinedDev/text-renderer/parser"
)

// decodeFormat4 reads a format 4 subtable.  The parser must be positioned
// directly after the format field.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-4-segment-mapping-to-delta-values
func decodeFormat4(p *parser.Parser) (Index, error) {
	p.Discard(4) // length, language
	segCountX2, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	segCount := int(segCountX2 / 2)
	p.Discard(6) // searchRange, entrySelector, rangeShift

	endCode, err := readWords(p, segCount)
	if err != nil {
		return nil, err
	}
	p.Discard(2) // reservedPad
	startCode, err := readWords(p, segCount)
	if err != nil {
		return nil, err
	}
	idDelta, err := readWords(p, segCount)
	if err != nil {
		return nil, err
	}

	// idRangeOffset values are relative to their own position in the file.
	idRangeOffset := make([]uint16, segCount)
	rangeOffsetPos := make([]int64, segCount)
	for k := range idRangeOffset {
		rangeOffsetPos[k] = p.Pos()
		idRangeOffset[k], err = p.ReadUint16()
		if err != nil {
			return nil, err
		}
	}

	idx := Index{}
	for k := 0; k < segCount; k++ {
		start := uint32(startCode[k])
		end := uint32(endCode[k])
		delta := idDelta[k]

		if idRangeOffset[k] == 0 {
			for code := start; code <= end; code++ {
				idx[code] = glyph.ID(uint16(code) + delta)
			}
			continue
		}

		for code := start; code <= end; code++ {
			pos := rangeOffsetPos[k] + int64(idRangeOffset[k]) + 2*int64(code-start)
			var value uint16
			err := p.At(pos, func() error {
				var err error
				value, err = p.ReadUint16()
				return err
			})
			if err != nil {
				return nil, err
			}
			if value != 0 {
				idx[code] = glyph.ID(value + delta)
			}
		}
	}

	return idx, nil
}

func readWords(p *parser.Parser, n int) ([]uint16, error) {
	res := make([]uint16, n)
	for i := range res {
		var err error
		res[i], err = p.ReadUint16()
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}
