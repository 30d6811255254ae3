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

// Package glyf reads glyph outlines from the "glyf" and "loca" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/glyf
// https://docs.microsoft.com/en-us/typography/opentype/spec/loca
package glyf

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"seehuhn.de/go/postscript/funit"

	"github.com/RefinedDev/text-renderer/glyph"
	"github.com/RefinedDev/text-renderer/parser"
)

// Glyphs contains the decoded glyphs of a font, indexed by glyph ID.
// Blank glyphs are represented by nil.
type Glyphs []*Glyph

// Glyph represents a single glyph in a TrueType font.
type Glyph struct {
	// Rect16 is the bounding box stored in the glyph header.  This is zero
	// for composite glyphs, since their header is not read beyond the
	// contour count.
	funit.Rect16

	Data any // either *SimpleGlyph or CompositeGlyph
}

// Simple returns the outline data of a simple glyph.  The second return
// value is false for composite glyphs.
func (g *Glyph) Simple() (*SimpleGlyph, bool) {
	if g == nil {
		return nil, false
	}
	s, ok := g.Data.(*SimpleGlyph)
	return s, ok
}

// IsComposite returns true if g is a composite glyph.
func (g *Glyph) IsComposite() bool {
	if g == nil {
		return false
	}
	_, ok := g.Data.(CompositeGlyph)
	return ok
}

// Decode decodes the glyphs at the given locations, in glyph ID order.
// Any error aborts decoding; it is returned as a *GlyphError which
// identifies the glyph.
func Decode(p *parser.Parser, locs *Locations) (Glyphs, error) {
	gp := p.Fork("glyf")

	gg := make(Glyphs, len(locs.Offsets))
	var numComposite, numBlank int
	for i, offs := range locs.Offsets {
		if locs.IsBlank(i) {
			numBlank++
			continue
		}
		g, err := DecodeGlyph(gp, offs)
		if err != nil {
			return nil, &GlyphError{GID: glyph.ID(i), Err: err}
		}
		if g.IsComposite() {
			numComposite++
		}
		gg[i] = g
	}
	tracer().Debugf("glyf: %d glyphs, %d composite, %d blank", len(gg), numComposite, numBlank)

	return gg, nil
}

// DecodeGlyph decodes the glyph record which starts at the given file
// offset.
//
// If the contour count is -1, the glyph is a composite glyph.  In this case
// only the contour count is read and Data is set to CompositeGlyph{}.
func DecodeGlyph(p *parser.Parser, offset int64) (*Glyph, error) {
	p.SeekPos(offset)
	numContours, err := p.ReadInt16()
	if err != nil {
		return nil, err
	}
	if numContours == compositeSentinel {
		return &Glyph{Data: CompositeGlyph{}}, nil
	} else if numContours < 0 {
		return nil, &parser.InvalidFontError{
			SubSystem: "sfnt/glyf",
			Reason:    fmt.Sprintf("invalid number of contours %d", numContours),
		}
	}

	var bbox [4]int16
	for i := range bbox {
		bbox[i], err = p.ReadInt16()
		if err != nil {
			return nil, err
		}
	}

	simple, err := decodeSimple(p, int(numContours))
	if err != nil {
		return nil, err
	}

	g := &Glyph{
		Rect16: funit.Rect16{
			LLx: funit.Int16(bbox[0]),
			LLy: funit.Int16(bbox[1]),
			URx: funit.Int16(bbox[2]),
			URy: funit.Int16(bbox[3]),
		},
		Data: simple,
	}
	return g, nil
}

// GlyphError wraps an error encountered while decoding a glyph.
type GlyphError struct {
	GID glyph.ID
	Err error
}

func (err *GlyphError) Error() string {
	return fmt.Sprintf("glyf: glyph %d: %v", err.GID, err.Err)
}

func (err *GlyphError) Unwrap() error {
	return err.Err
}

func tracer() tracing.Trace {
	return tracing.Select("sfnt")
}
