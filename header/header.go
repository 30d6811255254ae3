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

// Package header reads the table directory at the start of an sfnt file.
// https://docs.microsoft.com/en-us/typography/opentype/spec/otff#table-directory
package header

import (
	"errors"
	"fmt"
	"sort"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/maps"

	"github.com/RefinedDev/text-renderer/parser"
)

// Scaler types found in the first four bytes of an sfnt file.
const (
	ScalerTypeTrueType = 0x00010000
	ScalerTypeCFF      = 0x4F54544F
	ScalerTypeApple    = 0x74727565
)

// Info describes the table directory of an sfnt file.
type Info struct {
	ScalerType uint32
	Toc        map[string]Record
}

// Record gives the location of a table within the font file.
type Record struct {
	Offset uint32
	Length uint32
}

// Read reads the table directory.  The parser must be positioned at the
// start of the font file; after a successful return it is positioned
// directly after the directory, 12+16*numTables bytes from the start.
//
// Checksums are not verified.  If a tag occurs more than once, the last
// record wins.
func Read(p *parser.Parser) (*Info, error) {
	scalerType, err := p.ReadUint32()
	if err != nil {
		return nil, err
	}
	numTables, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	p.Discard(6) // searchRange, entrySelector, rangeShift

	info := &Info{
		ScalerType: scalerType,
		Toc:        make(map[string]Record, numTables),
	}
	for i := 0; i < int(numTables); i++ {
		tag, err := p.ReadTag()
		if err != nil {
			return nil, err
		}
		p.Discard(4) // checksum
		offset, err := p.ReadUint32()
		if err != nil {
			return nil, err
		}
		length, err := p.ReadUint32()
		if err != nil {
			return nil, err
		}
		info.Toc[tag] = Record{
			Offset: offset,
			Length: length,
		}
	}
	tracer().Debugf("table directory: scaler type 0x%08x, %d records", scalerType, numTables)

	return info, nil
}

// Has returns true if the font contains the given table.
func (info *Info) Has(tag string) bool {
	_, ok := info.Toc[tag]
	return ok
}

// Find returns the directory record for the given table.
// If the table is not present, a *MissingTableError is returned.
func (info *Info) Find(tag string) (Record, error) {
	rec, ok := info.Toc[tag]
	if !ok {
		return Record{}, &MissingTableError{Tag: tag}
	}
	return rec, nil
}

// Require checks, in the given order, that all of the listed tables are
// present.  The error names the first missing table.
func (info *Info) Require(tags ...string) error {
	for _, tag := range tags {
		if _, err := info.Find(tag); err != nil {
			return err
		}
	}
	return nil
}

// Tags returns the table tags, ordered by their position in the file.
func (info *Info) Tags() []string {
	tags := maps.Keys(info.Toc)
	sort.Slice(tags, func(i, j int) bool {
		oi, oj := info.Toc[tags[i]].Offset, info.Toc[tags[j]].Offset
		if oi != oj {
			return oi < oj
		}
		return tags[i] < tags[j]
	})
	return tags
}

// ErrMissingRequiredTable is matched by all *MissingTableError values.
var ErrMissingRequiredTable = errors.New("missing required table")

// MissingTableError is returned when a table needed for decoding the font
// is absent from the table directory.
type MissingTableError struct {
	Tag string
}

func (err *MissingTableError) Error() string {
	return fmt.Sprintf("sfnt: missing required table %q", err.Tag)
}

// Is allows to use errors.Is(err, ErrMissingRequiredTable).
func (err *MissingTableError) Is(target error) bool {
	return target == ErrMissingRequiredTable
}

func tracer() tracing.Trace {
	return tracing.Select("sfnt")
}
