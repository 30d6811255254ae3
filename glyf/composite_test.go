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

	"seehuhn.de/go/postscript/funit"

	"github.com/RefinedDev/text-renderer/internal/debug"
	"github.com/RefinedDev/text-renderer/parser"
)

func TestCompositeDetection(t *testing.T) {
	data := []byte{0xAA, 0xBB}
	data = append(data, debug.EncodeCompositeGlyph(3, 4)...)

	p := parser.New(data)
	g, err := DecodeGlyph(p, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !g.IsComposite() {
		t.Fatalf("expected composite glyph, got %T", g.Data)
	}
	if _, ok := g.Simple(); ok {
		t.Error("composite glyph reported as simple")
	}
	if g.Rect16 != (funit.Rect16{}) {
		t.Errorf("composite glyph has bounding box %v", g.Rect16)
	}
	// only the contour count may be consumed
	if p.Pos() != 4 {
		t.Errorf("cursor at %d, want 4", p.Pos())
	}
}

func TestCompositeWithoutComponents(t *testing.T) {
	// The marker is recognised even if nothing follows the contour count.
	p := parser.New([]byte{0xFF, 0xFF})
	g, err := DecodeGlyph(p, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !g.IsComposite() {
		t.Errorf("expected composite glyph, got %T", g.Data)
	}
}

func TestNegativeContourCount(t *testing.T) {
	data := append([]byte{0xFF, 0xFE}, make([]byte, 16)...)
	p := parser.New(data)
	_, err := DecodeGlyph(p, 0)
	var invalid *parser.InvalidFontError
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidFontError, got %v", err)
	}
}
