package layout

import (
	"strings"
	"testing"

	"github.com/ha1tch/idef0-toolkit/pkg/idef0"
)

func TestContextDrawing(t *testing.T) {
	d := idef0.ContextDiagram()
	dr := Compute(d, DefaultOptions())

	if len(dr.Boxes) != 1 {
		t.Fatalf("Expected 1 box, got %d", len(dr.Boxes))
	}
	box := dr.Boxes[0]
	if box.Rect != (Rect{450, 350, 300, 180}) {
		t.Errorf("A0 box at %+v", box.Rect)
	}
	if box.Number != "0" {
		t.Errorf("Context box number = %q, want 0", box.Number)
	}

	if len(dr.Routes) != len(d.Edges) {
		t.Errorf("Expected %d routes, got %d", len(d.Edges), len(dr.Routes))
	}
	for _, r := range dr.Routes {
		if r.Start().Eq(r.End()) {
			t.Errorf("%s: degenerate route %v", r.EdgeID, r.Points)
		}
	}
	if len(dr.Warnings) != 0 {
		t.Errorf("Unexpected warnings: %v", dr.Warnings)
	}
}

func TestDecompositionHasNoWarnings(t *testing.T) {
	dr := Compute(idef0.DecompositionDiagram(), DefaultOptions())
	for _, w := range dr.Warnings {
		t.Errorf("Unexpected warning: %s", w)
	}
	if dr.Heading != "A0: Декомпозиция (A0)" {
		t.Errorf("Unexpected heading %q", dr.Heading)
	}
}

func TestExternalInputsAreHorizontal(t *testing.T) {
	for _, d := range []*idef0.Diagram{idef0.ContextDiagram(), idef0.DecompositionDiagram()} {
		dr := Compute(d, DefaultOptions())
		for _, e := range d.Edges {
			if !e.FromBoundary() || e.Side != idef0.SideLeft {
				continue
			}
			r, ok := dr.Route(e.ID)
			if !ok {
				t.Fatalf("%s: no route", e.ID)
			}
			if len(r.Points) != 2 || r.Points[0].Y != r.Points[1].Y {
				t.Errorf("%s: expected horizontal line, got %v", e.ID, r.Points)
			}
		}
	}
}

func TestDanglingReferenceResolvesToZero(t *testing.T) {
	d := &idef0.Diagram{
		Nodes: []idef0.Node{{ID: "A1", X: 100, Y: 100, Width: 220, Height: 120}},
		Edges: []idef0.Edge{
			{ID: "lost", SourceID: "A1", TargetID: "A9", Label: "?", Side: idef0.SideLeft},
		},
	}

	dr := Compute(d, DefaultOptions())

	r, _ := dr.Route("lost")
	if !r.End().Eq(Point{0, 0}) {
		t.Errorf("Dangling target should resolve to origin, got %v", r.End())
	}
	if len(dr.Warnings) == 0 {
		t.Fatal("Expected a warning for the dangling reference")
	}
	if dr.Warnings[0].EdgeID != "lost" {
		t.Errorf("Warning names edge %q", dr.Warnings[0].EdgeID)
	}
}

func TestFallbackIsWarned(t *testing.T) {
	d := &idef0.Diagram{
		Nodes: []idef0.Node{
			{ID: "A1", X: 100, Y: 100, Width: 100, Height: 100},
			{ID: "A2", X: 400, Y: 100, Width: 100, Height: 100},
		},
		Edges: []idef0.Edge{
			{ID: "back", SourceID: "A2", TargetID: "A1", Side: idef0.SideLeft},
		},
	}

	dr := Compute(d, DefaultOptions())

	found := false
	for _, w := range dr.Warnings {
		if w.EdgeID == "back" && strings.Contains(w.Message, "drawn straight") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected fallback warning, got %v", dr.Warnings)
	}
}

func TestNumberCell(t *testing.T) {
	d := idef0.DecompositionDiagram()
	dr := Compute(d, DefaultOptions())

	box := dr.Boxes[0] // A1 at 100,100 220x120
	h, v := box.NumberRules[0], box.NumberRules[1]
	if h.From != (Point{280, 195}) || h.To != (Point{320, 195}) {
		t.Errorf("Horizontal rule %v", h)
	}
	if v.From != (Point{280, 195}) || v.To != (Point{280, 220}) {
		t.Errorf("Vertical rule %v", v)
	}
	if box.NumberAt != (Point{300, 212}) {
		t.Errorf("Number at %v", box.NumberAt)
	}
	if box.Number != "1" {
		t.Errorf("Number = %q", box.Number)
	}
	if box.LabelArea.H != 95 {
		t.Errorf("Label area height = %.1f, want 95", box.LabelArea.H)
	}
}

func TestLabelLinesFitBox(t *testing.T) {
	opts := DefaultOptions()
	opts.Measurer = EstimateMeasurer(14)
	dr := Compute(idef0.DecompositionDiagram(), opts)

	for _, b := range dr.Boxes {
		if len(b.LabelLines) == 0 {
			t.Errorf("%s: no label lines", b.NodeID)
		}
		if len(b.LabelLines) != len(b.LabelAt) {
			t.Errorf("%s: %d lines but %d anchors", b.NodeID, len(b.LabelLines), len(b.LabelAt))
		}
		for _, p := range b.LabelAt {
			if !b.LabelArea.Contains(p) {
				t.Errorf("%s: label baseline %v outside label area %+v", b.NodeID, p, b.LabelArea)
			}
		}
	}
}

func TestWrap(t *testing.T) {
	m := MeasureFunc(func(s string) float64 { return float64(len([]rune(s))) })

	lines := Wrap("one two three four", 9, m)
	want := []string{"one two", "three", "four"}
	if len(lines) != len(want) {
		t.Fatalf("Wrap = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	if got := Wrap("   ", 10, m); got != nil {
		t.Errorf("Expected no lines for blank text, got %q", got)
	}

	long := Wrap("supercalifragilistic", 5, m)
	if len(long) != 1 {
		t.Errorf("Long word should stay whole, got %q", long)
	}
}

func TestDefaultMeasurer(t *testing.T) {
	m := DefaultMeasurer()
	short := m.Measure("ab")
	long := m.Measure("abcdef")
	if short <= 0 || long <= short {
		t.Errorf("Unexpected widths: %.2f, %.2f", short, long)
	}
}

func TestPathData(t *testing.T) {
	got := PathData([]Point{{10, 180}, {607.5, 180}, {607.5, -0.0}})
	want := "M 10 180 L 607.5 180 L 607.5 0"
	if got != want {
		t.Errorf("PathData = %q, want %q", got, want)
	}
	if PathData(nil) != "" {
		t.Error("Empty path should be empty string")
	}
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want float64
	}{
		{"apart", Rect{0, 0, 10, 10}, Rect{20, 0, 10, 10}, 0},
		{"touching", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, 0},
		{"same", Rect{0, 0, 10, 10}, Rect{0, 0, 10, 10}, 100},
		{"quarter", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, 25},
	}
	for _, tt := range tests {
		if got := Overlap(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: Overlap = %.1f, want %.1f", tt.name, got, tt.want)
		}
	}
}
