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

// Package debug builds small synthetic TrueType fonts for use in unit tests.
//
// The encoders in this package only produce the tables needed by the
// outline reader: "head", "maxp", "loca", "glyf" and "cmap".
package debug

import (
	"bytes"
	"encoding/binary"
	"math/bits"
	"sort"
)

// Point is a point in a glyph outline, in font design units.
type Point struct {
	X, Y    int16
	OnCurve bool
}

// Simple glyph flags.
const (
	flagOnCurve    = 0x01
	flagXShortVec  = 0x02
	flagYShortVec  = 0x04
	flagRepeat     = 0x08
	flagXSameOrPos = 0x10
	flagYSameOrPos = 0x20
)

// EncodeSimpleGlyph returns the "glyf" record of a simple glyph, including
// the contour count and the bounding box.  Flags are run-length encoded.
func EncodeSimpleGlyph(contours [][]Point, instructions []byte) []byte {
	var points []Point
	var endPts []uint16
	for _, c := range contours {
		points = append(points, c...)
		endPts = append(endPts, uint16(len(points)-1))
	}

	var xMin, yMin, xMax, yMax int16
	for i, pt := range points {
		if i == 0 || pt.X < xMin {
			xMin = pt.X
		}
		if i == 0 || pt.X > xMax {
			xMax = pt.X
		}
		if i == 0 || pt.Y < yMin {
			yMin = pt.Y
		}
		if i == 0 || pt.Y > yMax {
			yMax = pt.Y
		}
	}

	flags := make([]byte, len(points))
	xDeltas := make([]int16, len(points))
	yDeltas := make([]int16, len(points))
	var prevX, prevY int16
	for i, pt := range points {
		xDeltas[i] = pt.X - prevX
		yDeltas[i] = pt.Y - prevY
		prevX, prevY = pt.X, pt.Y

		if pt.OnCurve {
			flags[i] |= flagOnCurve
		}
		flags[i] |= coordFlags(xDeltas[i], flagXShortVec, flagXSameOrPos)
		flags[i] |= coordFlags(yDeltas[i], flagYShortVec, flagYSameOrPos)
	}

	buf := be16(nil, uint16(len(contours)))
	for _, v := range []int16{xMin, yMin, xMax, yMax} {
		buf = be16(buf, uint16(v))
	}
	for _, e := range endPts {
		buf = be16(buf, e)
	}
	buf = be16(buf, uint16(len(instructions)))
	buf = append(buf, instructions...)

	for i := 0; i < len(flags); {
		flag := flags[i]
		run := 1
		for i+run < len(flags) && flags[i+run] == flag && run < 256 {
			run++
		}
		if run > 1 {
			buf = append(buf, flag|flagRepeat, byte(run-1))
		} else {
			buf = append(buf, flag)
		}
		i += run
	}

	buf = appendCoords(buf, flags, xDeltas, flagXShortVec, flagXSameOrPos)
	buf = appendCoords(buf, flags, yDeltas, flagYShortVec, flagYSameOrPos)

	if len(buf)%2 != 0 {
		buf = append(buf, 0)
	}
	return buf
}

func coordFlags(delta int16, shortFlag, sameOrPosFlag byte) byte {
	switch {
	case delta == 0:
		return sameOrPosFlag
	case delta > 0 && delta <= 255:
		return shortFlag | sameOrPosFlag
	case delta < 0 && delta >= -255:
		return shortFlag
	default:
		return 0
	}
}

func appendCoords(buf []byte, flags []byte, deltas []int16, shortFlag, sameOrPosFlag byte) []byte {
	for i, flag := range flags {
		if flag&shortFlag != 0 {
			if flag&sameOrPosFlag != 0 {
				buf = append(buf, byte(deltas[i]))
			} else {
				buf = append(buf, byte(-deltas[i]))
			}
		} else if flag&sameOrPosFlag == 0 {
			buf = be16(buf, uint16(deltas[i]))
		}
	}
	return buf
}

// EncodeCompositeGlyph returns a "glyf" record with contour count -1.
// Each component references a glyph with a zero (x, y) offset.
func EncodeCompositeGlyph(components ...uint16) []byte {
	buf := be16(nil, 0xFFFF)
	buf = append(buf, make([]byte, 8)...)
	for i, gid := range components {
		var flags uint16 = 0x0002 // ARGS_ARE_XY_VALUES
		if i < len(components)-1 {
			flags |= 0x0020 // MORE_COMPONENTS
		}
		buf = be16(buf, flags)
		buf = be16(buf, gid)
		buf = append(buf, 0, 0)
	}
	return buf
}

// EncodeGlyf concatenates glyph records into a "glyf" table.  The returned
// offsets have one more entry than there are glyphs.
func EncodeGlyf(glyphs [][]byte) ([]byte, []int) {
	var glyf []byte
	offs := make([]int, 0, len(glyphs)+1)
	for _, g := range glyphs {
		offs = append(offs, len(glyf))
		glyf = append(glyf, g...)
	}
	offs = append(offs, len(glyf))
	return glyf, offs
}

// EncodeLoca encodes glyph offsets as a "loca" table.  Short entries
// store half the offset.
func EncodeLoca(offs []int, long bool) []byte {
	var buf []byte
	for _, o := range offs {
		if long {
			buf = be32(buf, uint32(o))
		} else {
			buf = be16(buf, uint16(o/2))
		}
	}
	return buf
}

// EncodeHead returns a 54 byte "head" table.
func EncodeHead(unitsPerEm uint16, locaFormat int16) []byte {
	buf := make([]byte, 54)
	binary.BigEndian.PutUint32(buf[0:4], 0x00010000)  // version
	binary.BigEndian.PutUint32(buf[12:16], 0x5F0F3CF5) // magicNumber
	binary.BigEndian.PutUint16(buf[18:20], unitsPerEm)
	binary.BigEndian.PutUint16(buf[50:52], uint16(locaFormat))
	return buf
}

// EncodeMaxp returns a version 0.5 "maxp" table.
func EncodeMaxp(numGlyphs int) []byte {
	return []byte{0x00, 0x00, 0x50, 0x00, byte(numGlyphs >> 8), byte(numGlyphs)}
}

// CmapRecord describes one encoding record of a "cmap" table.
type CmapRecord struct {
	PlatformID uint16
	EncodingID uint16
	Subtable   []byte
}

// EncodeCmap builds a "cmap" table.  Identical subtables are stored once.
func EncodeCmap(records ...CmapRecord) []byte {
	header := be16(nil, 0)
	header = be16(header, uint16(len(records)))

	var body []byte
	var offs []int
	start := 4 + 8*len(records)
recordLoop:
	for i, r := range records {
		for j := 0; j < i; j++ {
			if bytes.Equal(records[j].Subtable, r.Subtable) {
				offs = append(offs, offs[j])
				continue recordLoop
			}
		}
		offs = append(offs, start+len(body))
		body = append(body, r.Subtable...)
	}
	for i, r := range records {
		header = be16(header, r.PlatformID)
		header = be16(header, r.EncodingID)
		header = be32(header, uint32(offs[i]))
	}
	return append(header, body...)
}

// Format4Segment describes one segment of a format 4 subtable.
// If GlyphIDs is non-nil, the segment uses the glyphIdArray and must have
// one entry per code point.
type Format4Segment struct {
	Start, End uint16
	Delta      int16
	GlyphIDs   []uint16
}

// EncodeFormat4 returns a format 4 subtable.  A final segment for 0xFFFF
// is appended, if the last segment does not end there.
func EncodeFormat4(segments []Format4Segment) []byte {
	if len(segments) == 0 || segments[len(segments)-1].End != 0xFFFF {
		segments = append(segments, Format4Segment{Start: 0xFFFF, End: 0xFFFF, Delta: 1})
	}
	segCount := len(segments)

	var endCode, startCode, idDelta, idRangeOffset, glyphIDArray []uint16
	for i, s := range segments {
		endCode = append(endCode, s.End)
		startCode = append(startCode, s.Start)
		idDelta = append(idDelta, uint16(s.Delta))
		if s.GlyphIDs == nil {
			idRangeOffset = append(idRangeOffset, 0)
			continue
		}
		offs := 2 * (segCount - i + len(glyphIDArray))
		idRangeOffset = append(idRangeOffset, uint16(offs))
		glyphIDArray = append(glyphIDArray, s.GlyphIDs...)
	}

	sel := bits.Len(uint(segCount)) - 1
	searchRange := 2 * (1 << sel)
	length := 2 * (8 + 4*segCount + len(glyphIDArray))

	buf := be16(nil, 4)
	buf = be16(buf, uint16(length))
	buf = be16(buf, 0) // language
	buf = be16(buf, uint16(2*segCount))
	buf = be16(buf, uint16(searchRange))
	buf = be16(buf, uint16(sel))
	buf = be16(buf, uint16(2*segCount-searchRange))
	for _, x := range endCode {
		buf = be16(buf, x)
	}
	buf = be16(buf, 0) // reservedPad
	for _, words := range [][]uint16{startCode, idDelta, idRangeOffset, glyphIDArray} {
		for _, x := range words {
			buf = be16(buf, x)
		}
	}
	return buf
}

// Format12Group describes one sequential map group of a format 12 subtable.
type Format12Group struct {
	StartCharCode uint32
	EndCharCode   uint32
	StartGlyphID  uint32
}

// EncodeFormat12 returns a format 12 subtable.
func EncodeFormat12(groups []Format12Group) []byte {
	l := uint32(16 + 12*len(groups))
	buf := be16(nil, 12)
	buf = be16(buf, 0) // reserved
	buf = be32(buf, l)
	buf = be32(buf, 0) // language
	buf = be32(buf, uint32(len(groups)))
	for _, g := range groups {
		buf = be32(buf, g.StartCharCode)
		buf = be32(buf, g.EndCharCode)
		buf = be32(buf, g.StartGlyphID)
	}
	return buf
}

// WriteFont assembles an sfnt file from the given tables.  Tables are
// stored in tag order, each padded to a multiple of four bytes.
func WriteFont(tables map[string][]byte) []byte {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	numTables := len(names)
	entrySelector := 0
	if numTables > 0 {
		entrySelector = bits.Len(uint(numTables)) - 1
	}
	searchRange := 16 << entrySelector

	buf := be32(nil, 0x00010000)
	buf = be16(buf, uint16(numTables))
	buf = be16(buf, uint16(searchRange))
	buf = be16(buf, uint16(entrySelector))
	buf = be16(buf, uint16(16*numTables-searchRange))

	offset := 12 + 16*numTables
	for _, name := range names {
		body := tables[name]
		buf = append(buf, name...)
		buf = be32(buf, checksum(body))
		buf = be32(buf, uint32(offset))
		buf = be32(buf, uint32(len(body)))
		offset += 4 * ((len(body) + 3) / 4)
	}
	for _, name := range names {
		body := tables[name]
		buf = append(buf, body...)
		for len(buf)%4 != 0 {
			buf = append(buf, 0)
		}
	}
	return buf
}

// Tables returns the tables of a TrueType font with the given glyph
// records and "cmap" table.  The "loca" table uses the long format if
// long is set.
func Tables(glyphs [][]byte, cmap []byte, long bool) map[string][]byte {
	glyf, offs := EncodeGlyf(glyphs)
	var locaFormat int16
	if long {
		locaFormat = 1
	}
	tables := map[string][]byte{
		"head": EncodeHead(1000, locaFormat),
		"maxp": EncodeMaxp(len(glyphs)),
		"loca": EncodeLoca(offs, long),
		"glyf": glyf,
	}
	if cmap != nil {
		tables["cmap"] = cmap
	}
	return tables
}

// Triangle is the outline of the glyph used by MakeTriangleFont.
var Triangle = []Point{
	{X: 100, Y: 0, OnCurve: true},
	{X: 500, Y: 0, OnCurve: true},
	{X: 300, Y: 700, OnCurve: true},
}

// MakeTriangleFont returns a minimal TrueType font with two glyphs: an
// empty .notdef glyph with a single point, and a triangle mapped to 'A'.
func MakeTriangleFont() []byte {
	glyphs := [][]byte{
		EncodeSimpleGlyph([][]Point{{{X: 0, Y: 0, OnCurve: true}}}, nil),
		EncodeSimpleGlyph([][]Point{Triangle}, nil),
	}
	cmap := EncodeCmap(CmapRecord{
		PlatformID: 0,
		EncodingID: 3,
		Subtable:   EncodeFormat4([]Format4Segment{{Start: 'A', End: 'A', Delta: 1 - 'A'}}),
	})
	return WriteFont(Tables(glyphs, cmap, false))
}

func checksum(data []byte) uint32 {
	var sum uint32
	for i := 0; i < len(data); i += 4 {
		var word [4]byte
		copy(word[:], data[i:])
		sum += binary.BigEndian.Uint32(word[:])
	}
	return sum
}

func be16(buf []byte, x uint16) []byte {
	return append(buf, byte(x>>8), byte(x))
}

func be32(buf []byte, x uint32) []byte {
	return append(buf, byte(x>>24), byte(x>>16), byte(x>>8), byte(x))
}
