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

// Package maxp reads the number of glyphs from a "maxp" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/maxp
package maxp

import "github.com/RefinedDev/text-renderer/parser"

// Info contains information from the "maxp" table.
type Info struct {
	// NumGlyphs is number of glyphs in the font.
	NumGlyphs int
}

// Read reads the "maxp" table which starts at the given file offset.
// The version field is not checked.
func Read(p *parser.Parser, offset int64) (*Info, error) {
	p.SeekPos(offset)
	p.Discard(4) // version
	numGlyphs, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	return &Info{NumGlyphs: int(numGlyphs)}, nil
}
