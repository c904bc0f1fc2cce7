// Geometric primitives shared by the router and the writers.

package layout

import (
	"math"
	"strconv"
	"strings"
)

// Point represents a 2D coordinate. Y grows downward.
type Point struct {
	X, Y float64
}

// Eq reports whether two points coincide.
func (p Point) Eq(q Point) bool {
	return p.X == q.X && p.Y == q.Y
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the centre point.
func (r Rect) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

// Contains reports whether p lies inside or on the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Overlap returns the overlap area between two rectangles, 0 when apart.
func Overlap(a, b Rect) float64 {
	w := math.Min(a.Right(), b.Right()) - math.Max(a.X, b.X)
	h := math.Min(a.Bottom(), b.Bottom()) - math.Max(a.Y, b.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Line is a drawn segment.
type Line struct {
	From, To Point
}

// formatNum prints a coordinate the shortest way it round-trips, so 180
// prints as "180" and 607.5 as "607.5".
func formatNum(v float64) string {
	if v == 0 {
		return "0" // avoid "-0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PathData renders points as an SVG path of absolute move/line commands:
// "M x0 y0 L x1 y1 ...".
func PathData(points []Point) string {
	if len(points) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, p := range points {
		if i == 0 {
			sb.WriteString("M ")
		} else {
			sb.WriteString(" L ")
		}
		sb.WriteString(formatNum(p.X))
		sb.WriteByte(' ')
		sb.WriteString(formatNum(p.Y))
	}
	return sb.String()
}

// Bounds returns the bounding rectangle of a point set.
func Bounds(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{minX, minY, maxX - minX, maxY - minY}
}
