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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/RefinedDev/text-renderer/internal/debug"
	"github.com/RefinedDev/text-renderer/parser"
)

func decodeBytes(t *testing.T, data []byte) (*Glyph, *parser.Parser) {
	t.Helper()
	p := parser.New(data)
	g, err := DecodeGlyph(p, 0)
	if err != nil {
		t.Fatalf("DecodeGlyph: %v", err)
	}
	return g, p
}

func TestTriangle(t *testing.T) {
	data := debug.EncodeSimpleGlyph([][]debug.Point{debug.Triangle}, nil)
	g, _ := decodeBytes(t, data)

	simple, ok := g.Simple()
	if !ok {
		t.Fatalf("expected simple glyph, got %T", g.Data)
	}
	want := &SimpleGlyph{
		Points: []Point{
			{X: 100, Y: 0, OnCurve: true},
			{X: 500, Y: 0, OnCurve: true},
			{X: 300, Y: 700, OnCurve: true},
		},
		EndPts: []uint16{2},
	}
	if d := cmp.Diff(want, simple); d != "" {
		t.Error(d)
	}
	if g.LLx != 100 || g.LLy != 0 || g.URx != 500 || g.URy != 700 {
		t.Errorf("wrong bounding box %v", g.Rect16)
	}
}

func TestDecodeContours(t *testing.T) {
	contours := [][]debug.Point{
		{
			{X: 100, Y: 100, OnCurve: true},
			{X: 200, Y: 100, OnCurve: true},
			{X: 150, Y: 200, OnCurve: true},
		},
		{
			{X: 300, Y: 100, OnCurve: true},
			{X: 350, Y: 150, OnCurve: false},
			{X: 300, Y: 200, OnCurve: true},
			{X: 250, Y: 150, OnCurve: false},
		},
		{
			{X: 0, Y: 0, OnCurve: true},
			{X: 1000, Y: -500, OnCurve: true},
			{X: -2000, Y: 3000, OnCurve: false},
			{X: -2000, Y: 3000, OnCurve: true},
		},
	}
	data := debug.EncodeSimpleGlyph(contours, []byte{0x01, 0x02, 0x03})
	g, _ := decodeBytes(t, data)
	simple, ok := g.Simple()
	if !ok {
		t.Fatalf("expected simple glyph, got %T", g.Data)
	}

	var got [][]debug.Point
	for _, c := range simple.Contours() {
		var cc []debug.Point
		for _, pt := range c {
			cc = append(cc, debug.Point{X: int16(pt.X), Y: int16(pt.Y), OnCurve: pt.OnCurve})
		}
		got = append(got, cc)
	}
	if d := cmp.Diff(contours, got); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff([]uint16{2, 6, 10}, simple.EndPts); d != "" {
		t.Error(d)
	}
}

func TestEmptySimpleGlyph(t *testing.T) {
	data := debug.EncodeSimpleGlyph(nil, nil)
	g, p := decodeBytes(t, data)
	simple, ok := g.Simple()
	if !ok {
		t.Fatalf("expected simple glyph, got %T", g.Data)
	}
	if len(simple.Points) != 0 || simple.NumContours() != 0 || simple.Contours() != nil {
		t.Errorf("unexpected outline %v", simple)
	}
	if p.Pos() != 12 {
		t.Errorf("cursor at %d, want 12", p.Pos())
	}
}

// glyphHeader returns the first bytes of a simple glyph record with the
// given contour end points and no instructions.
func glyphHeader(endPts ...uint16) []byte {
	buf := []byte{byte(len(endPts) >> 8), byte(len(endPts))}
	buf = append(buf, make([]byte, 8)...)
	for _, e := range endPts {
		buf = append(buf, byte(e>>8), byte(e))
	}
	return append(buf, 0, 0)
}

func TestFlagRepeat(t *testing.T) {
	const sameXY = flagOnCurve | flagXSameOrPos | flagYSameOrPos

	data := glyphHeader(6)
	data = append(data,
		// points 0-5
		sameXY|flagRepeat, 5,
		// point 6: x is +10, y is an int16 delta of -20
		flagOnCurve|flagXShortVec|flagXSameOrPos,
		10,
		0xFF, 0xEC,
	)
	g, p := decodeBytes(t, data)
	simple, _ := g.Simple()

	want := []Point{
		{0, 0, true}, {0, 0, true}, {0, 0, true},
		{0, 0, true}, {0, 0, true}, {0, 0, true},
		{10, -20, true},
	}
	if d := cmp.Diff(want, simple.Points); d != "" {
		t.Error(d)
	}
	if p.Pos() != int64(len(data)) {
		t.Errorf("cursor at %d, want %d", p.Pos(), len(data))
	}
}

func TestFlagRepeatTruncated(t *testing.T) {
	const sameXY = flagOnCurve | flagXSameOrPos | flagYSameOrPos

	// Only three points are needed, but the run asks for six.
	data := glyphHeader(2)
	data = append(data, sameXY|flagRepeat, 5)
	end := len(data)
	data = append(data, 0xAA, 0xBB) // not part of the glyph

	g, p := decodeBytes(t, data)
	simple, _ := g.Simple()
	if len(simple.Points) != 3 {
		t.Fatalf("got %d points, want 3", len(simple.Points))
	}
	if p.Pos() != int64(end) {
		t.Errorf("cursor at %d, want %d", p.Pos(), end)
	}
}

func TestShortVectorSign(t *testing.T) {
	data := glyphHeader(2)
	data = append(data,
		// (+5, -7), (-3, 0), (0, +2)
		flagXShortVec|flagXSameOrPos|flagYShortVec,
		flagXShortVec|flagYSameOrPos,
		flagOnCurve|flagXSameOrPos|flagYShortVec|flagYSameOrPos,
		5, 3,
		7, 2,
	)
	g, _ := decodeBytes(t, data)
	simple, _ := g.Simple()
	want := []Point{
		{5, -7, false},
		{2, -7, false},
		{2, -5, true},
	}
	if d := cmp.Diff(want, simple.Points); d != "" {
		t.Error(d)
	}
}

func TestInstructionsSkipped(t *testing.T) {
	data := debug.EncodeSimpleGlyph([][]debug.Point{debug.Triangle}, []byte{0xB0, 0x01, 0x2C})
	g, _ := decodeBytes(t, data)
	simple, _ := g.Simple()
	if len(simple.Points) != 3 || simple.Points[2].Y != 700 {
		t.Errorf("instructions were not skipped: %v", simple.Points)
	}
}

func TestNonIncreasingEndPoints(t *testing.T) {
	data := glyphHeader(3, 3)
	p := parser.New(data)
	_, err := DecodeGlyph(p, 0)
	var invalid *parser.InvalidFontError
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidFontError, got %v", err)
	}
}

func TestTruncatedGlyph(t *testing.T) {
	full := debug.EncodeSimpleGlyph([][]debug.Point{debug.Triangle}, nil)
	for l := 1; l < len(full)-1; l++ {
		p := parser.New(full[:l])
		_, err := DecodeGlyph(p, 0)
		if !errors.Is(err, parser.ErrUnexpectedEndOfData) {
			t.Errorf("length %d: got %v", l, err)
		}
	}
}
