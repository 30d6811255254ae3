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

// Package outline turns the contours of a simple TrueType glyph into
// quadratic Bézier segments and flattens them into polylines.
//
// A TrueType contour is a cyclic list of on-curve and off-curve points.
// Two consecutive off-curve points imply an on-curve point half way between
// them.  Two consecutive on-curve points describe a straight line, which
// here is represented as a quadratic segment with the control point at the
// midpoint.
package outline

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"github.com/RefinedDev/text-renderer/glyf"
)

// DefaultResolution is the number of line segments used per quadratic
// segment, if no positive resolution is given.
const DefaultResolution = 10

// A Point is a point of a reconstructed contour.
type Point struct {
	vec.Vec2
	OnCurve bool
}

// A Polyline is a closed sequence of points in font units.
// The last point equals the first one.
type Polyline []vec.Vec2

// Reconstruct converts a contour into a cyclic sequence of alternating
// on-curve and off-curve points, starting with an on-curve point.
// Between two consecutive points of the same type, a point of the
// opposite type is inserted at their midpoint.
//
// If the contour has no on-curve point, the sequence starts at the
// midpoint of the last and first point.
func Reconstruct(contour glyf.Contour) []Point {
	n := len(contour)
	if n == 0 {
		return nil
	}

	start := -1
	for i, pt := range contour {
		if pt.OnCurve {
			start = i
			break
		}
	}

	res := make([]Point, 0, 2*n+1)
	synthetic := start < 0
	if synthetic {
		res = append(res, Point{
			Vec2:    midpoint(contour[n-1], contour[0]),
			OnCurve: true,
		})
		start = 0
	}

	for k := 0; k < n; k++ {
		cur := contour[(start+k)%n]
		next := contour[(start+k+1)%n]
		res = append(res, Point{Vec2: toVec(cur), OnCurve: cur.OnCurve})
		if synthetic && k == n-1 {
			// the closing midpoint is the synthetic start point
			break
		}
		if cur.OnCurve == next.OnCurve {
			res = append(res, Point{
				Vec2:    midpoint(cur, next),
				OnCurve: !cur.OnCurve,
			})
		}
	}
	return res
}

// Flatten approximates every contour of g by a closed polyline.  Each
// quadratic segment is evaluated at res uniformly spaced parameter values.
// If res < 1, DefaultResolution is used.
func Flatten(g *glyf.SimpleGlyph, res int) []Polyline {
	if res < 1 {
		res = DefaultResolution
	}

	var lines []Polyline
	for _, c := range g.Contours() {
		pts := Reconstruct(c)
		if len(pts) == 0 {
			continue
		}
		m := len(pts)
		line := make(Polyline, 0, m/2*res+1)
		for j := 0; j+1 < m; j += 2 {
			p0, p1, p2 := pts[j].Vec2, pts[j+1].Vec2, pts[(j+2)%m].Vec2
			for k := 0; k < res; k++ {
				t := float64(k) / float64(res)
				line = append(line, quadratic(p0, p1, p2, t))
			}
		}
		line = append(line, pts[0].Vec2)
		lines = append(lines, line)
	}
	return lines
}

// Path returns the outline of g as a sequence of quadratic Bézier
// segments.  Each contour starts with a MoveTo and ends with a Close.
func Path(g *glyf.SimpleGlyph) path.Path {
	return func(yield func(path.Command, []path.Point) bool) {
		var buf [2]path.Point
		for _, c := range g.Contours() {
			pts := Reconstruct(c)
			m := len(pts)
			if m == 0 {
				continue
			}

			buf[0] = toPathPoint(pts[0].Vec2)
			if !yield(path.CmdMoveTo, buf[:1]) {
				return
			}
			for j := 0; j+1 < m; j += 2 {
				buf[0] = toPathPoint(pts[j+1].Vec2)
				buf[1] = toPathPoint(pts[(j+2)%m].Vec2)
				if !yield(path.CmdQuadTo, buf[:2]) {
					return
				}
			}
			if !yield(path.CmdClose, nil) {
				return
			}
		}
	}
}

// Transform applies the affine transformation M to all points.
// The input is not modified.
func Transform(lines []Polyline, M matrix.Matrix) []Polyline {
	res := make([]Polyline, len(lines))
	for i, line := range lines {
		out := make(Polyline, len(line))
		for j, v := range line {
			out[j] = vec.Vec2{
				X: M[0]*v.X + M[2]*v.Y + M[4],
				Y: M[1]*v.X + M[3]*v.Y + M[5],
			}
		}
		res[i] = out
	}
	return res
}

// quadratic evaluates the quadratic Bézier curve with control points
// p0, p1, p2 at t, using repeated linear interpolation.
func quadratic(p0, p1, p2 vec.Vec2, t float64) vec.Vec2 {
	a := lerp(p0, p1, t)
	b := lerp(p1, p2, t)
	return lerp(a, b, t)
}

func lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return vec.Vec2{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
	}
}

func midpoint(a, b glyf.Point) vec.Vec2 {
	return vec.Vec2{
		X: (float64(a.X) + float64(b.X)) / 2,
		Y: (float64(a.Y) + float64(b.Y)) / 2,
	}
}

func toVec(p glyf.Point) vec.Vec2 {
	return vec.Vec2{X: float64(p.X), Y: float64(p.Y)}
}

func toPathPoint(v vec.Vec2) path.Point {
	return path.Point{X: v.X, Y: v.Y}
}
