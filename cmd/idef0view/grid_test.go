package main

import (
	"strings"
	"testing"

	"github.com/ha1tch/idef0-toolkit/pkg/idef0"
	"github.com/ha1tch/idef0-toolkit/pkg/layout"
)

func singleBoxDrawing() *layout.Drawing {
	return &layout.Drawing{
		Width:  100,
		Height: 50,
		Boxes: []layout.Box{{
			NodeID:     "A0",
			Rect:       layout.Rect{X: 20, Y: 10, W: 40, H: 20},
			Number:     "1",
			LabelLines: []string{"Sell"},
		}},
		Routes: []layout.Route{{
			EdgeID:  "order",
			Side:    idef0.SideLeft,
			Points:  []layout.Point{{X: 0, Y: 20}, {X: 20, Y: 20}},
			Label:   "Order",
			LabelAt: layout.Point{X: 2, Y: 18},
			Anchor:  layout.AnchorStart,
		}},
	}
}

func TestRasterizeBox(t *testing.T) {
	g := Rasterize(singleBoxDrawing(), 101, 51)

	tests := []struct {
		x, y int
		want rune
		kind CellKind
	}{
		{20, 10, '┌', CellBox},
		{60, 10, '┐', CellBox},
		{20, 30, '└', CellBox},
		{60, 30, '┘', CellBox},
		{40, 10, '─', CellBox},
		{20, 20, '│', CellBox},
		{59, 29, '1', CellNumber},
		{19, 20, '>', CellArrowhead},
		{5, 20, '─', CellLine},
		{2, 18, 'O', CellArrowLabel},
	}
	for _, tt := range tests {
		got := g.Cells[tt.y][tt.x]
		if got.Rune != tt.want || got.Kind != tt.kind {
			t.Errorf("cell (%d,%d) = %q/%d, want %q/%d", tt.x, tt.y, got.Rune, got.Kind, tt.want, tt.kind)
		}
	}

	lines := strings.Split(g.String(), "\n")
	if !strings.Contains(lines[19], "Sell") {
		t.Errorf("row 19 = %q, want box label", lines[19])
	}
}

func TestRasterizeCorner(t *testing.T) {
	dr := &layout.Drawing{
		Width:  10,
		Height: 10,
		Routes: []layout.Route{{
			Points: []layout.Point{{X: 0, Y: 2}, {X: 5, Y: 2}, {X: 5, Y: 8}},
		}},
	}
	g := Rasterize(dr, 11, 11)

	if got := g.Cells[2][5].Rune; got != '┐' {
		t.Errorf("corner = %q, want '┐'", got)
	}
	if got := g.Cells[7][5].Rune; got != 'v' {
		t.Errorf("arrowhead = %q, want 'v'", got)
	}
}

func TestRasterizeTruncatesLongLabels(t *testing.T) {
	dr := singleBoxDrawing()
	dr.Boxes[0].LabelLines = []string{strings.Repeat("word ", 200)}
	g := Rasterize(dr, 101, 51)

	for y := 11; y < 30; y++ {
		for x := 21; x < 60; x++ {
			if k := g.Cells[y][x].Kind; k != CellBox && k != CellBoxLabel && k != CellNumber {
				t.Fatalf("cell (%d,%d) kind %d inside box", x, y, k)
			}
		}
	}
	if !strings.Contains(g.String(), "…") {
		t.Error("expected an ellipsis on the last label line")
	}
}

func TestRasterizeEmpty(t *testing.T) {
	g := Rasterize(singleBoxDrawing(), 0, 0)
	if len(g.Cells) != 0 {
		t.Errorf("got %d rows, want 0", len(g.Cells))
	}
}

func TestRasterizeBuiltins(t *testing.T) {
	for _, name := range idef0.BuiltinNames() {
		d, err := idef0.Builtin(name)
		if err != nil {
			t.Fatal(err)
		}
		dr := layout.Compute(d, layout.DefaultOptions())
		g := Rasterize(dr, 140, 50)

		boxes := 0
		for _, row := range g.Cells {
			for _, c := range row {
				if c.Rune == '┌' && c.Kind == CellBox {
					boxes++
				}
			}
		}
		if boxes != len(d.Nodes) {
			t.Errorf("%s: %d boxes drawn, want %d", name, boxes, len(d.Nodes))
		}
	}
}
