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

package glyf

// compositeSentinel is the contour count used for composite glyphs.
// It is stored as the bytes 0xFF 0xFF.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/glyf#glyph-headers
const compositeSentinel int16 = -1

// CompositeGlyph marks a glyph which is built from other glyphs.
//
// The component records are not decoded; consumers must decide how to
// render such glyphs.
type CompositeGlyph struct{}
