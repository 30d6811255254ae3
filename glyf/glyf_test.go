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
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/RefinedDev/text-renderer/header"
	"github.com/RefinedDev/text-renderer/internal/debug"
	"github.com/RefinedDev/text-renderer/parser"
)

func readFont(t testing.TB, data []byte) (*parser.Parser, *header.Info) {
	t.Helper()
	p := parser.New(data)
	toc, err := header.Read(p)
	if err != nil {
		t.Fatal(err)
	}
	return p, toc
}

func testGlyphs() [][]byte {
	square := []debug.Point{
		{X: 0, Y: 0, OnCurve: true},
		{X: 0, Y: 500, OnCurve: true},
		{X: 500, Y: 500, OnCurve: true},
		{X: 500, Y: 0, OnCurve: true},
	}
	return [][]byte{
		debug.EncodeSimpleGlyph([][]debug.Point{square}, nil),
		nil, // blank, shares its offset with glyph 2
		debug.EncodeSimpleGlyph([][]debug.Point{debug.Triangle}, nil),
		debug.EncodeCompositeGlyph(0, 2),
		nil, // blank, at the end of "glyf"
	}
}

func TestDecodeLoca(t *testing.T) {
	for _, long := range []bool{false, true} {
		data := debug.WriteFont(debug.Tables(testGlyphs(), nil, long))
		p, toc := readFont(t, data)

		locs, err := DecodeLoca(p, toc)
		if err != nil {
			t.Fatal(err)
		}
		if locs.NumGlyphs() != 5 {
			t.Fatalf("long=%t: got %d glyphs, want 5", long, locs.NumGlyphs())
		}

		base := int64(toc.Toc["glyf"].Offset)
		if locs.GlyfStart != base {
			t.Errorf("long=%t: GlyfStart = %d, want %d", long, locs.GlyfStart, base)
		}
		_, offs := debug.EncodeGlyf(testGlyphs())
		for i, o := range locs.Offsets {
			if o < base {
				t.Errorf("long=%t: offset %d is before the glyf table", long, i)
			}
			if o != base+int64(offs[i]) {
				t.Errorf("long=%t: offset %d = %d, want %d", long, i, o, base+int64(offs[i]))
			}
		}

		wantBlank := []bool{false, true, false, false, true}
		for i, want := range wantBlank {
			if got := locs.IsBlank(i); got != want {
				t.Errorf("long=%t: IsBlank(%d) = %t", long, i, got)
			}
		}
	}
}

func TestDecodeLocaMissingTable(t *testing.T) {
	for _, tag := range []string{"maxp", "head", "loca", "glyf"} {
		tables := debug.Tables(testGlyphs(), nil, false)
		delete(tables, tag)
		p, toc := readFont(t, debug.WriteFont(tables))

		_, err := DecodeLoca(p, toc)
		var missing *header.MissingTableError
		if !errors.As(err, &missing) || missing.Tag != tag {
			t.Errorf("without %q: got %v", tag, err)
		}
	}
}

func TestDecode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfnt")
	defer teardown()

	data := debug.WriteFont(debug.Tables(testGlyphs(), nil, false))
	p, toc := readFont(t, data)
	locs, err := DecodeLoca(p, toc)
	if err != nil {
		t.Fatal(err)
	}

	gg, err := Decode(p, locs)
	if err != nil {
		t.Fatal(err)
	}
	if len(gg) != 5 {
		t.Fatalf("got %d glyphs, want 5", len(gg))
	}

	if s, ok := gg[0].Simple(); !ok || s.NumContours() != 1 || len(s.Points) != 4 {
		t.Errorf("glyph 0: unexpected data %v", gg[0])
	}
	if gg[1] != nil || gg[4] != nil {
		t.Error("blank glyphs should be nil")
	}
	s, ok := gg[2].Simple()
	if !ok {
		t.Fatalf("glyph 2: expected simple glyph")
	}
	want := []Point{
		{X: 100, Y: 0, OnCurve: true},
		{X: 500, Y: 0, OnCurve: true},
		{X: 300, Y: 700, OnCurve: true},
	}
	if d := cmp.Diff(want, s.Points); d != "" {
		t.Error(d)
	}
	if !gg[3].IsComposite() {
		t.Errorf("glyph 3: expected composite glyph")
	}
}

func TestDecodeErrorNamesGlyph(t *testing.T) {
	triangle := debug.EncodeSimpleGlyph([][]debug.Point{debug.Triangle}, nil)
	glyphs := [][]byte{triangle, triangle[:14]}
	data := debug.WriteFont(debug.Tables(glyphs, nil, true))

	// Cut the font directly after the truncated glyph record, so that
	// reading the flags runs out of data.
	p, toc := readFont(t, data)
	locs, err := DecodeLoca(p, toc)
	if err != nil {
		t.Fatal(err)
	}
	end := locs.Offsets[1] + 14
	p = parser.New(data[:end])

	_, err = Decode(p, locs)
	var glyphErr *GlyphError
	if !errors.As(err, &glyphErr) {
		t.Fatalf("expected GlyphError, got %v", err)
	}
	if glyphErr.GID != 1 {
		t.Errorf("error for glyph %d, want 1", glyphErr.GID)
	}
	if !errors.Is(err, parser.ErrUnexpectedEndOfData) {
		t.Errorf("error does not wrap ErrUnexpectedEndOfData: %v", err)
	}
}

func TestGoRegular(t *testing.T) {
	p, toc := readFont(t, goregular.TTF)
	locs, err := DecodeLoca(p, toc)
	if err != nil {
		t.Fatal(err)
	}
	gg, err := Decode(p, locs)
	if err != nil {
		t.Fatal(err)
	}
	if len(gg) != locs.NumGlyphs() {
		t.Fatalf("got %d glyphs, want %d", len(gg), locs.NumGlyphs())
	}

	numSimple := 0
	for gid, g := range gg {
		s, ok := g.Simple()
		if !ok {
			continue
		}
		numSimple++
		if len(s.EndPts) > 0 && int(s.EndPts[len(s.EndPts)-1]) != len(s.Points)-1 {
			t.Errorf("glyph %d: contours do not cover the point list", gid)
		}
	}
	if numSimple == 0 {
		t.Error("no simple glyphs found")
	}
}

func BenchmarkDecode(b *testing.B) {
	p, toc := readFont(b, goregular.TTF)
	locs, err := DecodeLoca(p, toc)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err = Decode(p, locs)
	}

	if err != nil {
		b.Fatal(err)
	}
}

func FuzzDecodeGlyph(f *testing.F) {
	f.Add(debug.EncodeSimpleGlyph([][]debug.Point{debug.Triangle}, nil))
	f.Add(debug.EncodeCompositeGlyph(1))
	f.Add([]byte{})
	f.Add(make([]byte, 10))

	f.Fuzz(func(t *testing.T, data []byte) {
		g, err := DecodeGlyph(parser.New(data), 0)
		if err != nil {
			return
		}
		s, ok := g.Simple()
		if !ok {
			return
		}
		total := 0
		for _, c := range s.Contours() {
			total += len(c)
		}
		if total != len(s.Points) {
			t.Errorf("contours cover %d of %d points", total, len(s.Points))
		}
	})
}
