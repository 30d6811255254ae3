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

package sfnt

import (
	"io"
	"os"

	"github.com/RefinedDev/text-renderer/cmap"
	"github.com/RefinedDev/text-renderer/glyf"
	"github.com/RefinedDev/text-renderer/head"
	"github.com/RefinedDev/text-renderer/header"
	"github.com/RefinedDev/text-renderer/parser"
)

// ReadFile reads a TrueType font from a file.
func ReadFile(fname string) (*Font, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Read reads a TrueType font from an io.Reader.
func Read(r io.Reader) (*Font, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a TrueType font held in memory.
// The returned Font keeps no reference to data.
func Parse(data []byte) (*Font, error) {
	p := parser.New(data)

	toc, err := header.Read(p)
	if err != nil {
		return nil, err
	}
	if toc.ScalerType != header.ScalerTypeTrueType && toc.ScalerType != header.ScalerTypeApple {
		tracer().Infof("unexpected scaler type 0x%08x", toc.ScalerType)
	}

	locs, err := glyf.DecodeLoca(p, toc)
	if err != nil {
		return nil, err
	}

	glyphs, err := glyf.Decode(p, locs)
	if err != nil {
		return nil, err
	}

	cmapIndex, err := cmap.Decode(p, toc)
	if err != nil {
		return nil, err
	}

	// DecodeLoca has already checked that "head" is present.
	headInfo, err := head.Read(p.Fork("head"), int64(toc.Toc["head"].Offset))
	if err != nil {
		return nil, err
	}

	f := &Font{
		Header:     toc,
		Locations:  locs,
		Glyphs:     glyphs,
		CMap:       cmapIndex,
		UnitsPerEm: headInfo.UnitsPerEm,
		FontBBox:   headInfo.FontBBox,
		LocaFormat: headInfo.LocaFormat,
	}
	tracer().Debugf("parsed font: %d glyphs, %d code points", f.NumGlyphs(), len(f.CMap))
	return f, nil
}
