package main

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ha1tch/idef0-toolkit/pkg/layout"
)

// CellKind tells the renderer how to style a cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellLine
	CellArrowhead
	CellArrowLabel
	CellBox
	CellBoxLabel
	CellNumber
)

// Cell is one character of the terminal canvas. A zero Rune marks the
// second column of a wide character.
type Cell struct {
	Rune rune
	Kind CellKind
}

// Grid is a Drawing rasterised to character cells.
type Grid struct {
	Cols, Rows int
	Cells      [][]Cell

	lines [][]uint8 // line connection masks
	sx    float64
	sy    float64
}

// Line connection bits.
const (
	up uint8 = 1 << iota
	down
	left
	right
)

var lineGlyphs = map[uint8]rune{
	up:                       '│',
	down:                     '│',
	up | down:                '│',
	left:                     '─',
	right:                    '─',
	left | right:             '─',
	down | right:             '┌',
	down | left:              '┐',
	up | right:               '└',
	up | left:                '┘',
	up | down | right:        '├',
	up | down | left:         '┤',
	left | right | down:      '┬',
	left | right | up:        '┴',
	up | down | left | right: '┼',
}

// Rasterize scales a drawing onto a cols x rows character grid. Arrows are
// drawn first, then their labels, then the boxes on top.
func Rasterize(dr *layout.Drawing, cols, rows int) *Grid {
	g := &Grid{Cols: cols, Rows: rows}
	if cols <= 0 || rows <= 0 {
		return g
	}
	g.Cells = make([][]Cell, rows)
	g.lines = make([][]uint8, rows)
	for y := range g.Cells {
		g.Cells[y] = make([]Cell, cols)
		g.lines[y] = make([]uint8, cols)
	}
	if dr.Width > 0 {
		g.sx = float64(cols-1) / dr.Width
	}
	if dr.Height > 0 {
		g.sy = float64(rows-1) / dr.Height
	}

	for _, r := range dr.Routes {
		g.route(r)
	}
	for y := range g.lines {
		for x, m := range g.lines[y] {
			if m != 0 && g.Cells[y][x].Kind == CellEmpty {
				g.Cells[y][x] = Cell{lineGlyphs[m], CellLine}
			}
		}
	}
	for _, r := range dr.Routes {
		if r.Label == "" {
			continue
		}
		x, y := g.col(r.LabelAt.X), g.row(r.LabelAt.Y)
		if r.Anchor == layout.AnchorMiddle {
			x -= runewidth.StringWidth(r.Label) / 2
		}
		g.text(x, y, r.Label, CellArrowLabel, cols)
	}
	for _, b := range dr.Boxes {
		g.box(b)
	}
	return g
}

func (g *Grid) col(x float64) int { return int(math.Round(x * g.sx)) }
func (g *Grid) row(y float64) int { return int(math.Round(y * g.sy)) }

func (g *Grid) in(x, y int) bool {
	return x >= 0 && x < g.Cols && y >= 0 && y < g.Rows
}

func (g *Grid) addLine(x, y int, m uint8) {
	if g.in(x, y) {
		g.lines[y][x] |= m
	}
}

func (g *Grid) route(r layout.Route) {
	if len(r.Points) < 2 {
		return
	}

	var pts [][2]int
	for _, p := range r.Points {
		c := [2]int{g.col(p.X), g.row(p.Y)}
		if len(pts) == 0 || pts[len(pts)-1] != c {
			pts = append(pts, c)
		}
	}

	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		if a[0] != b[0] && a[1] != b[1] {
			// Diagonal in cell space: horizontal first, then vertical.
			corner := [2]int{b[0], a[1]}
			g.segment(a, corner)
			g.segment(corner, b)
			continue
		}
		g.segment(a, b)
	}

	if len(pts) < 2 {
		return
	}
	prev, end := pts[len(pts)-2], pts[len(pts)-1]
	dx, dy := sign(end[0]-prev[0]), sign(end[1]-prev[1])
	if dy != 0 && end[0] != prev[0] {
		dx = 0
	}
	// The head sits one cell short of the end, outside the target box.
	hx, hy := end[0]-dx, end[1]-dy
	head := '>'
	switch {
	case dx < 0:
		head = '<'
	case dy > 0:
		head = 'v'
	case dy < 0:
		head = '^'
	}
	if g.in(hx, hy) {
		g.Cells[hy][hx] = Cell{head, CellArrowhead}
	}
}

func (g *Grid) segment(a, b [2]int) {
	if a[1] == b[1] {
		x0, x1 := a[0], b[0]
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		for x := x0; x <= x1; x++ {
			var m uint8
			if x < x1 {
				m |= right
			}
			if x > x0 {
				m |= left
			}
			g.addLine(x, a[1], m)
		}
		return
	}
	y0, y1 := a[1], b[1]
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		var m uint8
		if y < y1 {
			m |= down
		}
		if y > y0 {
			m |= up
		}
		g.addLine(a[0], y, m)
	}
}

func (g *Grid) box(b layout.Box) {
	x0, y0 := g.col(b.Rect.X), g.row(b.Rect.Y)
	x1, y1 := g.col(b.Rect.Right()), g.row(b.Rect.Bottom())
	if x1-x0 < 2 || y1-y0 < 2 {
		return
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !g.in(x, y) {
				continue
			}
			r := ' '
			switch {
			case y == y0 && x == x0:
				r = '┌'
			case y == y0 && x == x1:
				r = '┐'
			case y == y1 && x == x0:
				r = '└'
			case y == y1 && x == x1:
				r = '┘'
			case y == y0 || y == y1:
				r = '─'
			case x == x0 || x == x1:
				r = '│'
			}
			g.Cells[y][x] = Cell{r, CellBox}
		}
	}

	inner := x1 - x0 - 1
	number := b.Number
	if number != "" && runewidth.StringWidth(number) < inner {
		g.text(x1-runewidth.StringWidth(number), y1-1, number, CellNumber, x1)
	}

	// Label lines, centred, leaving the number row free.
	labelRows := y1 - y0 - 2
	if labelRows < 1 {
		labelRows = 1
	}
	measure := layout.MeasureFunc(func(s string) float64 { return float64(runewidth.StringWidth(s)) })
	lines := layout.Wrap(strings.Join(b.LabelLines, " "), float64(inner-1), measure)
	if len(lines) > labelRows {
		lines = lines[:labelRows]
		last := len(lines) - 1
		lines[last] = runewidth.Truncate(lines[last]+"…", inner-1, "…")
	}
	top := y0 + 1 + (labelRows-len(lines))/2
	for i, line := range lines {
		line = runewidth.Truncate(line, inner, "…")
		x := x0 + 1 + (inner-runewidth.StringWidth(line))/2
		g.text(x, top+i, line, CellBoxLabel, x1)
	}
}

// text writes s starting at column x, stopping before column limit.
func (g *Grid) text(x, y int, s string, kind CellKind, limit int) {
	if y < 0 || y >= g.Rows {
		return
	}
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > limit || x+w > g.Cols {
			return
		}
		if x >= 0 {
			g.Cells[y][x] = Cell{r, kind}
			if w == 2 {
				g.Cells[y][x+1] = Cell{0, kind}
			}
		}
		x += w
	}
}

// String renders the grid as plain text, one line per row.
func (g *Grid) String() string {
	var sb strings.Builder
	for _, row := range g.Cells {
		for _, c := range row {
			switch {
			case c.Rune == 0 && c.Kind != CellEmpty:
			case c.Rune == 0:
				sb.WriteByte(' ')
			default:
				sb.WriteRune(c.Rune)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
