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

// Package cmap decodes the Unicode character map of a TrueType font.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap
//
// Only subtables with platform ID 0 (Unicode) are considered.  Of these,
// encoding 4 (full Unicode range) is preferred over encoding 3 (BMP only).
// Subtable formats 4 and 12 are supported.
package cmap

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/RefinedDev/text-renderer/glyph"
	"github.com/RefinedDev/text-renderer/header"
	"github.com/RefinedDev/text-renderer/parser"
)

// Platform and encoding IDs of the subtables this package can use.
const (
	platformUnicode     = 0
	encodingUnicodeBMP  = 3
	encodingUnicodeFull = 4
)

var (
	// ErrUnsupportedCharacterMap indicates that the "cmap" table has no
	// Unicode subtable.
	ErrUnsupportedCharacterMap = errors.New("cmap: no Unicode subtable found")

	// ErrUnsupportedCharacterMapFormat is matched by all
	// *UnsupportedFormatError values.
	ErrUnsupportedCharacterMapFormat = errors.New("cmap: unsupported subtable format")
)

// UnsupportedFormatError is returned when the selected subtable uses a
// format other than 4 or 12.
type UnsupportedFormatError struct {
	Format uint16
}

func (err *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("cmap: unsupported subtable format %d", err.Format)
}

// Is allows to use errors.Is(err, ErrUnsupportedCharacterMapFormat).
func (err *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedCharacterMapFormat
}

// Index maps Unicode code points to glyph indices.
type Index map[uint32]glyph.ID

// Lookup returns the glyph index for the given rune.
// The second return value is false if the rune is not mapped.
func (idx Index) Lookup(r rune) (glyph.ID, bool) {
	if r < 0 {
		return 0, false
	}
	gid, ok := idx[uint32(r)]
	return gid, ok
}

// Runes returns all mapped code points in increasing order.
func (idx Index) Runes() []rune {
	codes := maps.Keys(idx)
	slices.Sort(codes)
	res := make([]rune, len(codes))
	for i, c := range codes {
		res[i] = rune(c)
	}
	return res
}

// CodeRange returns the smallest and largest mapped code point.
// For an empty index, both values are zero.
func (idx Index) CodeRange() (low, high rune) {
	first := true
	for c := range idx {
		cr := rune(c)
		if first || cr < low {
			low = cr
		}
		if first || cr > high {
			high = cr
		}
		first = false
	}
	return
}

// Decode reads the "cmap" table and returns the mapping given by its
// preferred Unicode subtable.
func Decode(p *parser.Parser, toc *header.Info) (Index, error) {
	rec, err := toc.Find("cmap")
	if err != nil {
		return nil, err
	}
	base := int64(rec.Offset)

	p = p.Fork("cmap")
	p.SeekPos(base)
	p.Discard(2) // version
	numTables, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	var subtable int64
	found := false
	for i := 0; i < int(numTables); i++ {
		platformID, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		encodingID, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		offset, err := p.ReadUint32()
		if err != nil {
			return nil, err
		}
		if platformID != platformUnicode {
			continue
		}
		switch {
		case encodingID == encodingUnicodeFull:
			subtable = int64(offset)
			found = true
		case encodingID == encodingUnicodeBMP && !found:
			subtable = int64(offset)
			found = true
		}
	}
	if !found {
		return nil, ErrUnsupportedCharacterMap
	}

	p.SeekPos(base + subtable)
	format, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	tracer().Debugf("cmap: using format %d subtable at offset %d", format, subtable)

	var idx Index
	switch format {
	case 4:
		idx, err = decodeFormat4(p)
	case 12:
		idx, err = decodeFormat12(p)
	default:
		return nil, &UnsupportedFormatError{Format: format}
	}
	if err != nil {
		return nil, err
	}
	tracer().Debugf("cmap: %d code points mapped", len(idx))

	return idx, nil
}

func tracer() tracing.Trace {
	return tracing.Select("sfnt")
}
