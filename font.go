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

// Package sfnt reads glyph outlines and the Unicode character map from
// TrueType font files.
//
// The tables are decoded one after the other: the table directory, the
// glyph locations, the glyph outlines and finally the character map.
// Any error aborts the whole parse.  A successfully parsed Font is not
// modified afterwards and can be used concurrently.
package sfnt

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"seehuhn.de/go/postscript/funit"

	"github.com/RefinedDev/text-renderer/cmap"
	"github.com/RefinedDev/text-renderer/glyf"
	"github.com/RefinedDev/text-renderer/glyph"
	"github.com/RefinedDev/text-renderer/header"
	"github.com/RefinedDev/text-renderer/outline"
)

// Font contains the glyph outlines and character map of a TrueType font.
type Font struct {
	Header    *header.Info
	Locations *glyf.Locations
	Glyphs    glyf.Glyphs
	CMap      cmap.Index

	UnitsPerEm uint16
	FontBBox   funit.Rect16
	LocaFormat int16 // 0 for short "loca" entries, 1 for long entries
}

var (
	// ErrGlyphOutOfRange is returned for glyph indices not present in the font.
	ErrGlyphOutOfRange = errors.New("sfnt: glyph index out of range")

	// ErrNoGlyph indicates that a character is not mapped to a glyph.
	ErrNoGlyph = errors.New("sfnt: no glyph for character")

	// ErrCompositeGlyph indicates that a glyph is built from other glyphs.
	// Outlines of composite glyphs are not available.
	ErrCompositeGlyph = errors.New("sfnt: composite glyph")
)

// NumGlyphs returns the number of glyphs in the font.
// This includes the ".notdef" glyph.
func (f *Font) NumGlyphs() int {
	return len(f.Glyphs)
}

// Glyph returns the glyph with the given index.  The result is nil for
// glyphs without an outline, for example for the space character.
func (f *Font) Glyph(gid glyph.ID) (*glyf.Glyph, error) {
	if int64(gid) >= int64(len(f.Glyphs)) {
		return nil, fmt.Errorf("%w: %s", ErrGlyphOutOfRange, gid)
	}
	return f.Glyphs[gid], nil
}

// GlyphIndex returns the glyph used to display the given character.
// The second return value is false if the font has no glyph for r.
func (f *Font) GlyphIndex(r rune) (glyph.ID, bool) {
	return f.CMap.Lookup(r)
}

// Outline returns the flattened contours of the glyph used for the given
// character, in font units.  See outline.Flatten for the meaning of res.
//
// Characters without a glyph give ErrNoGlyph, composite glyphs give
// ErrCompositeGlyph.  A blank glyph has no contours.
func (f *Font) Outline(r rune, res int) ([]outline.Polyline, error) {
	gid, ok := f.GlyphIndex(r)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrNoGlyph, r)
	}
	g, err := f.Glyph(gid)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, nil
	}
	if g.IsComposite() {
		return nil, fmt.Errorf("%w: %s", ErrCompositeGlyph, gid)
	}
	simple, _ := g.Simple()
	return outline.Flatten(simple, res), nil
}

func tracer() tracing.Trace {
	return tracing.Select("sfnt")
}
