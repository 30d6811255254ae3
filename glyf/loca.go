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

import (
	"github.com/RefinedDev/text-renderer/head"
	"github.com/RefinedDev/text-renderer/header"
	"github.com/RefinedDev/text-renderer/maxp"
	"github.com/RefinedDev/text-renderer/parser"
)

// Locations gives the position of every glyph record in the font file.
type Locations struct {
	// Offsets contains one absolute file offset per glyph.  Several glyphs
	// may share the same offset.
	Offsets []int64

	// GlyfStart and GlyfEnd delimit the "glyf" table in the file.
	GlyfStart, GlyfEnd int64
}

// NumGlyphs returns the number of glyphs described by the "loca" table.
func (l *Locations) NumGlyphs() int {
	return len(l.Offsets)
}

// IsBlank returns true if the glyph record for gid has zero length: either
// the next glyph starts at the same offset, or the glyph starts at the end
// of the "glyf" table.
func (l *Locations) IsBlank(gid int) bool {
	if gid+1 < len(l.Offsets) {
		return l.Offsets[gid] == l.Offsets[gid+1]
	}
	return l.Offsets[gid] >= l.GlyfEnd
}

// DecodeLoca reads the "loca" table, using the glyph count from "maxp"
// and the offset format from "head".  The "maxp", "head", "loca" and "glyf"
// tables must all be present, otherwise a *header.MissingTableError for
// the first missing table is returned before any table data is read.
func DecodeLoca(p *parser.Parser, toc *header.Info) (*Locations, error) {
	err := toc.Require("maxp", "head", "loca", "glyf")
	if err != nil {
		return nil, err
	}
	maxpRec := toc.Toc["maxp"]
	headRec := toc.Toc["head"]
	locaRec := toc.Toc["loca"]
	glyfRec := toc.Toc["glyf"]

	maxpInfo, err := maxp.Read(p.Fork("maxp"), int64(maxpRec.Offset))
	if err != nil {
		return nil, err
	}
	headInfo, err := head.Read(p.Fork("head"), int64(headRec.Offset))
	if err != nil {
		return nil, err
	}

	glyfStart := int64(glyfRec.Offset)
	res := &Locations{
		Offsets:   make([]int64, maxpInfo.NumGlyphs),
		GlyfStart: glyfStart,
		GlyfEnd:   glyfStart + int64(glyfRec.Length),
	}

	lp := p.Fork("loca")
	lp.SeekPos(int64(locaRec.Offset))
	for i := range res.Offsets {
		var offs int64
		if headInfo.HasLongOffsets() {
			x, err := lp.ReadUint32()
			if err != nil {
				return nil, err
			}
			offs = int64(x)
		} else {
			x, err := lp.ReadUint16()
			if err != nil {
				return nil, err
			}
			offs = 2 * int64(x)
		}
		res.Offsets[i] = glyfStart + offs
	}
	tracer().Debugf("loca: %d glyphs, long offsets: %t", maxpInfo.NumGlyphs, headInfo.HasLongOffsets())

	return res, nil
}
