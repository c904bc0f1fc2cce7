package layout

import (
	"math"
	"testing"

	"github.com/ha1tch/idef0-toolkit/pkg/idef0"
)

func singleBox() *idef0.Diagram {
	return &idef0.Diagram{
		Code: "A0",
		Nodes: []idef0.Node{
			{ID: "A1", Label: "Sell", X: 100, Y: 100, Width: 220, Height: 120, Number: "1"},
		},
	}
}

func TestExternalInputScenario(t *testing.T) {
	d := singleBox()
	e := idef0.Edge{ID: "in", SourceID: idef0.External, TargetID: "A1", Label: "Leads", Side: idef0.SideLeft, Offset: 20}
	d.Edges = []idef0.Edge{e}

	r := RouteEdge(d, e, DefaultOptions())

	if got, want := r.PathData(), "M 10 180 L 100 180"; got != want {
		t.Errorf("PathData = %q, want %q", got, want)
	}
	if r.Strategy != StrategyExternalInput {
		t.Errorf("Expected external-input, got %s", r.Strategy)
	}
}

func TestResolveEndpoints(t *testing.T) {
	d := singleBox()
	opts := DefaultOptions()

	tests := []struct {
		name       string
		edge       idef0.Edge
		start, end Point
	}{
		{
			name:  "input",
			edge:  idef0.Edge{SourceID: idef0.External, TargetID: "A1", Side: idef0.SideLeft, Offset: -20},
			start: Point{10, 140},
			end:   Point{100, 140},
		},
		{
			name:  "control",
			edge:  idef0.Edge{SourceID: idef0.External, TargetID: "A1", Side: idef0.SideTop, Offset: 20},
			start: Point{230, 10},
			end:   Point{230, 100},
		},
		{
			name:  "mechanism",
			edge:  idef0.Edge{SourceID: idef0.External, TargetID: "A1", Side: idef0.SideBottom, Offset: -30},
			start: Point{180, 990},
			end:   Point{180, 220},
		},
		{
			name:  "output",
			edge:  idef0.Edge{SourceID: "A1", TargetID: idef0.External, Side: idef0.SideRight, Offset: 10},
			start: Point{320, 170},
			end:   Point{1390, 170},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := ResolveEndpoints(d, tt.edge, opts)
			if !ok {
				t.Fatal("Expected endpoints to resolve")
			}
			if !start.Eq(tt.start) {
				t.Errorf("start = %v, want %v", start, tt.start)
			}
			if !end.Eq(tt.end) {
				t.Errorf("end = %v, want %v", end, tt.end)
			}
		})
	}
}

func TestForwardRouteHasThreeSegments(t *testing.T) {
	d := idef0.DecompositionDiagram()
	opts := DefaultOptions()

	for _, e := range d.Edges {
		if e.FromBoundary() || e.ToBoundary() || e.SourceSide == idef0.SideTop {
			continue
		}
		r := RouteEdge(d, e, opts)
		if r.Strategy != StrategyForward {
			t.Errorf("%s: expected forward, got %s", e.ID, r.Strategy)
			continue
		}
		if len(r.Points) != 4 {
			t.Errorf("%s: expected 4 points, got %d", e.ID, len(r.Points))
			continue
		}
		if r.Points[1].X != r.Points[2].X {
			t.Errorf("%s: middle x differ: %.1f vs %.1f", e.ID, r.Points[1].X, r.Points[2].X)
		}
		if r.Points[0].Y != r.Points[1].Y || r.Points[2].Y != r.Points[3].Y {
			t.Errorf("%s: outer segments should be horizontal: %v", e.ID, r.Points)
		}
	}
}

func TestForwardMidpoint(t *testing.T) {
	d := idef0.DecompositionDiagram()
	e, _ := d.Edge("d-a1-to-a3-1")

	r := RouteEdge(d, e, DefaultOptions())

	// A1 right edge 320, A3 left edge 600: 320 + 30 + 280/4
	if r.Points[1].X != 420 {
		t.Errorf("Expected midX 420, got %.1f", r.Points[1].X)
	}
	// exit at A1 centre 160 - 40, entry at A3 centre 570 - 40
	if r.Points[0].Y != 120 || r.Points[3].Y != 530 {
		t.Errorf("Unexpected endpoints %v", r.Points)
	}
}

func TestFeedbackRoutesAboveBothNodes(t *testing.T) {
	d := idef0.DecompositionDiagram()
	e, _ := d.Edge("d-a4-to-a3-ctrl")
	src, _ := d.Node("A4")
	tgt, _ := d.Node("A3")

	r := RouteEdge(d, e, DefaultOptions())

	if r.Strategy != StrategyFeedback {
		t.Fatalf("Expected feedback, got %s", r.Strategy)
	}
	if len(r.Points) != 4 {
		t.Fatalf("Expected 4 points, got %d", len(r.Points))
	}

	topY := r.Points[1].Y
	if topY >= src.Y || topY >= tgt.Y {
		t.Errorf("Feedback top %.1f should be above both nodes (%.1f, %.1f)", topY, src.Y, tgt.Y)
	}
	if topY != 440 {
		t.Errorf("Expected topY 440 (500 - 60), got %.1f", topY)
	}
	if r.Points[1].Y != r.Points[2].Y {
		t.Error("Elevated segment should be horizontal")
	}
}

func TestFeedbackLabelCentredAboveArc(t *testing.T) {
	d := idef0.DecompositionDiagram()
	e, _ := d.Edge("d-a4-to-a3-ctrl")

	r := RouteEdge(d, e, DefaultOptions())

	wantX := (r.Points[0].X + r.Points[2].X) / 2
	if math.Abs(r.LabelAt.X-wantX) > 1e-9 {
		t.Errorf("Label x = %.1f, want %.1f", r.LabelAt.X, wantX)
	}
	if r.LabelAt.Y != r.Points[1].Y-5 {
		t.Errorf("Label y = %.1f, want %.1f", r.LabelAt.Y, r.Points[1].Y-5)
	}
	if r.Anchor != AnchorMiddle {
		t.Errorf("Expected middle anchor, got %s", r.Anchor)
	}
}

func TestLabelOffsets(t *testing.T) {
	tests := []struct {
		side idef0.Side
		dx   float64
		dy   float64
	}{
		{idef0.SideLeft, 10, -5},
		{idef0.SideRight, 10, -5},
		{idef0.SideTop, 5, 15},
		{idef0.SideBottom, 5, -15},
	}

	for _, tt := range tests {
		r := Route{Side: tt.side, Strategy: StrategyExternalInput, Points: []Point{{50, 60}, {90, 60}}}
		at, anchor := PlaceLabel(r)
		if at.X != 50+tt.dx || at.Y != 60+tt.dy {
			t.Errorf("%s: label at %v, want (%.0f,%.0f)", tt.side, at, 50+tt.dx, 60+tt.dy)
		}
		if anchor != AnchorStart {
			t.Errorf("%s: expected start anchor", tt.side)
		}
	}
}

func TestExternalControlIsVertical(t *testing.T) {
	d := idef0.ContextDiagram()
	opts := DefaultOptions()

	for _, e := range d.Edges {
		if !e.FromBoundary() || e.Side == idef0.SideLeft {
			continue
		}
		r := RouteEdge(d, e, opts)
		if r.Strategy != StrategyExternalControl {
			t.Errorf("%s: expected external-control, got %s", e.ID, r.Strategy)
		}
		if r.Points[0].X != r.Points[1].X {
			t.Errorf("%s: not vertical: %v", e.ID, r.Points)
		}
	}
}

func TestBackwardEdgeFallsBack(t *testing.T) {
	d := &idef0.Diagram{
		Nodes: []idef0.Node{
			{ID: "A1", X: 100, Y: 100, Width: 100, Height: 100},
			{ID: "A2", X: 400, Y: 100, Width: 100, Height: 100},
		},
	}
	e := idef0.Edge{ID: "back", SourceID: "A2", TargetID: "A1", Side: idef0.SideLeft}

	if s := Classify(d, e); s != StrategyFallback {
		t.Errorf("Expected fallback for right-to-left edge, got %s", s)
	}
}

func TestStrategyString(t *testing.T) {
	if StrategyFeedback.String() != "feedback" {
		t.Errorf("Unexpected name %q", StrategyFeedback.String())
	}
	if Strategy(42).String() != "unknown" {
		t.Error("Out-of-range strategy should be unknown")
	}
}
