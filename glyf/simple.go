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
	"seehuhn.de/go/postscript/funit"

	"github.com/RefinedDev/text-renderer/parser"
)

// A Point is a point in a glyph outline.
type Point struct {
	X, Y    funit.Int16
	OnCurve bool
}

// A Contour describes a connected part of a glyph outline.
type Contour []Point

// SimpleGlyph is a glyph which stores its own contours.
type SimpleGlyph struct {
	// Points lists the points of all contours, in order.
	Points []Point

	// EndPts gives, for each contour, the index in Points of the last point
	// of the contour.  The values are strictly increasing and the last
	// value is len(Points)-1.
	EndPts []uint16
}

// NumContours returns the number of contours of the glyph.
func (g *SimpleGlyph) NumContours() int {
	return len(g.EndPts)
}

// Contours splits the point list of the glyph into contours.
// The returned contours share memory with g.Points.
func (g *SimpleGlyph) Contours() []Contour {
	if len(g.EndPts) == 0 {
		return nil
	}
	cc := make([]Contour, len(g.EndPts))
	start := 0
	for i, end := range g.EndPts {
		cc[i] = g.Points[start : int(end)+1]
		start = int(end) + 1
	}
	return cc
}

func decodeSimple(p *parser.Parser, numContours int) (*SimpleGlyph, error) {
	endPts := make([]uint16, numContours)
	for i := range endPts {
		end, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		if i > 0 && end <= endPts[i-1] {
			return nil, errInvalidContours
		}
		endPts[i] = end
	}

	var numPoints int
	if numContours > 0 {
		numPoints = int(endPts[numContours-1]) + 1
	}

	instructionLength, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	p.Discard(int(instructionLength))

	flags := make([]byte, numPoints)
	for i := 0; i < numPoints; {
		flag, err := p.ReadUint8()
		if err != nil {
			return nil, err
		}
		flags[i] = flag
		i++
		if flag&flagRepeat != 0 {
			count, err := p.ReadUint8()
			if err != nil {
				return nil, err
			}
			// runs which extend past the last point are cut short
			for ; count > 0 && i < numPoints; count-- {
				flags[i] = flag
				i++
			}
		}
	}

	xx, err := readCoords(p, flags, flagXShortVec, flagXSameOrPos)
	if err != nil {
		return nil, err
	}
	yy, err := readCoords(p, flags, flagYShortVec, flagYSameOrPos)
	if err != nil {
		return nil, err
	}

	points := make([]Point, numPoints)
	for i, flag := range flags {
		points[i] = Point{
			X:       xx[i],
			Y:       yy[i],
			OnCurve: flag&flagOnCurve != 0,
		}
	}

	return &SimpleGlyph{
		Points: points,
		EndPts: endPts,
	}, nil
}

// readCoords decodes the delta-encoded coordinates for one axis.
func readCoords(p *parser.Parser, flags []byte, shortFlag, sameOrPosFlag byte) ([]funit.Int16, error) {
	res := make([]funit.Int16, len(flags))
	var x funit.Int16
	for i, flag := range flags {
		if flag&shortFlag != 0 {
			b, err := p.ReadUint8()
			if err != nil {
				return nil, err
			}
			if flag&sameOrPosFlag != 0 {
				x += funit.Int16(b)
			} else {
				x -= funit.Int16(b)
			}
		} else if flag&sameOrPosFlag == 0 {
			dx, err := p.ReadInt16()
			if err != nil {
				return nil, err
			}
			x += funit.Int16(dx)
		}
		res[i] = x
	}
	return res, nil
}

// https://docs.microsoft.com/en-us/typography/opentype/spec/glyf#simpleGlyphFlags
const (
	flagOnCurve    = 0x01 // ON_CURVE_POINT
	flagXShortVec  = 0x02 // X_SHORT_VECTOR
	flagYShortVec  = 0x04 // Y_SHORT_VECTOR
	flagRepeat     = 0x08 // REPEAT_FLAG
	flagXSameOrPos = 0x10 // X_IS_SAME_OR_POSITIVE_X_SHORT_VECTOR
	flagYSameOrPos = 0x20 // Y_IS_SAME_OR_POSITIVE_Y_SHORT_VECTOR
)

var errInvalidContours = &parser.InvalidFontError{
	SubSystem: "sfnt/glyf",
	Reason:    "contour end points are not increasing",
}
