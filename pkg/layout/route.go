// Orthogonal edge routing for IDEF0 arrows.
//
// Every edge shape maps to exactly one Strategy. The strategies are tried in
// a fixed order; the first whose shape matches wins. Edges that match none
// are drawn as a straight line and reported as a warning.

package layout

import (
	"math"

	"github.com/ha1tch/idef0-toolkit/pkg/idef0"
)

// Strategy names the routing rule applied to an edge.
type Strategy int

const (
	StrategyExternalInput   Strategy = iota // boundary -> left side, horizontal
	StrategyForward                         // node -> node further right, three segments
	StrategyFeedback                        // top -> top, arcs above both nodes
	StrategyExternalControl                 // boundary -> top/bottom side, vertical
	StrategyExternalOutput                  // right side -> boundary, horizontal
	StrategyFallback                        // unanticipated shape, straight line
)

var strategyNames = [...]string{
	StrategyExternalInput:   "external-input",
	StrategyForward:         "forward",
	StrategyFeedback:        "feedback",
	StrategyExternalControl: "external-control",
	StrategyExternalOutput:  "external-output",
	StrategyFallback:        "fallback",
}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return "unknown"
	}
	return strategyNames[s]
}

// Anchor is the SVG text-anchor of a label.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
)

// Route is the routed geometry of one edge.
type Route struct {
	EdgeID   string
	Side     idef0.Side
	Strategy Strategy
	Points   []Point
	Label    string
	LabelAt  Point
	Anchor   Anchor
}

// PathData returns the route as an SVG path string.
func (r Route) PathData() string {
	return PathData(r.Points)
}

// Segments returns the straight segments of the route.
func (r Route) Segments() []Line {
	if len(r.Points) < 2 {
		return nil
	}
	lines := make([]Line, 0, len(r.Points)-1)
	for i := 1; i < len(r.Points); i++ {
		lines = append(lines, Line{r.Points[i-1], r.Points[i]})
	}
	return lines
}

// Start returns the first point of the route.
func (r Route) Start() Point {
	if len(r.Points) == 0 {
		return Point{}
	}
	return r.Points[0]
}

// End returns the last point of the route, where the arrowhead sits.
func (r Route) End() Point {
	if len(r.Points) == 0 {
		return Point{}
	}
	return r.Points[len(r.Points)-1]
}

// Classify picks the routing strategy for an edge. Dangling references are
// classified by the shape they declare; a missing node only affects the
// resolved coordinates.
func Classify(d *idef0.Diagram, e idef0.Edge) Strategy {
	if e.FromBoundary() && e.Side == idef0.SideLeft {
		return StrategyExternalInput
	}

	src, srcOK := d.Node(e.SourceID)
	tgt, tgtOK := d.Node(e.TargetID)
	if srcOK && tgtOK && !e.FromBoundary() && !e.ToBoundary() {
		if e.SourceSide != idef0.SideTop && tgt.X > src.X {
			return StrategyForward
		}
		if e.IsFeedback() {
			return StrategyFeedback
		}
	}

	if e.FromBoundary() && (e.Side == idef0.SideTop || e.Side == idef0.SideBottom) {
		return StrategyExternalControl
	}
	if e.ToBoundary() && e.Side == idef0.SideRight {
		return StrategyExternalOutput
	}
	return StrategyFallback
}

// ResolveEndpoints computes where an edge starts and ends. ok is false when
// a referenced node is missing or a side has no defined anchor; the
// unresolved coordinates are left at 0.
func ResolveEndpoints(d *idef0.Diagram, e idef0.Edge, opts Options) (start, end Point, ok bool) {
	src, srcOK := d.Node(e.SourceID)
	tgt, tgtOK := d.Node(e.TargetID)
	startOK, endOK := false, false

	if e.FromBoundary() {
		if tgtOK {
			switch e.Side {
			case idef0.SideLeft:
				start, startOK = Point{opts.Margin, tgt.CenterY() + e.Offset}, true
			case idef0.SideTop:
				start, startOK = Point{tgt.CenterX() + e.Offset, opts.Margin}, true
			case idef0.SideBottom:
				start, startOK = Point{tgt.CenterX() + e.Offset, opts.Height - opts.Margin}, true
			}
		}
	} else if srcOK {
		switch e.ExitSide() {
		case idef0.SideRight:
			start, startOK = Point{src.Right(), src.CenterY() + e.Offset}, true
		case idef0.SideTop:
			start, startOK = Point{src.CenterX() + e.Offset, src.Y}, true
		}
	}

	if e.ToBoundary() {
		if e.Side == idef0.SideRight && srcOK {
			end, endOK = Point{opts.Width - opts.Margin, src.CenterY() + e.Offset}, true
		}
	} else if tgtOK {
		switch e.Side {
		case idef0.SideLeft:
			end, endOK = Point{tgt.X, tgt.CenterY() + e.Offset}, true
		case idef0.SideTop:
			end, endOK = Point{tgt.CenterX() + e.Offset, tgt.Y}, true
		case idef0.SideBottom:
			end, endOK = Point{tgt.CenterX() + e.Offset, tgt.Bottom()}, true
		}
	}

	return start, end, startOK && endOK
}

// RouteEdge routes a single edge. The returned route carries its label
// position.
func RouteEdge(d *idef0.Diagram, e idef0.Edge, opts Options) Route {
	start, end, _ := ResolveEndpoints(d, e, opts)
	strategy := Classify(d, e)

	r := Route{
		EdgeID:   e.ID,
		Side:     e.Side,
		Strategy: strategy,
		Label:    e.Label,
	}

	switch strategy {
	case StrategyForward:
		src, _ := d.Node(e.SourceID)
		tgt, _ := d.Node(e.TargetID)
		midX := src.Right() + opts.Clearance + (tgt.X-src.Right())/4
		r.Points = []Point{start, {midX, start.Y}, {midX, end.Y}, end}

	case StrategyFeedback:
		src, _ := d.Node(e.SourceID)
		tgt, _ := d.Node(e.TargetID)
		topY := math.Min(src.Y, tgt.Y) - opts.FeedbackRise
		r.Points = []Point{start, {start.X, topY}, {end.X, topY}, end}

	default:
		r.Points = []Point{start, end}
	}

	r.LabelAt, r.Anchor = PlaceLabel(r)
	return r
}

// PlaceLabel positions an edge label next to the start of its route. The
// placement is a fixed offset per side and does not avoid collisions.
func PlaceLabel(r Route) (Point, Anchor) {
	if len(r.Points) == 0 {
		return Point{}, AnchorMiddle
	}
	s := r.Points[0]

	if r.Strategy == StrategyFeedback && len(r.Points) >= 3 {
		topY := r.Points[1].Y
		midX := (s.X + r.Points[2].X) / 2
		return Point{midX, topY - 5}, AnchorMiddle
	}

	switch r.Side {
	case idef0.SideLeft, idef0.SideRight:
		return Point{s.X + 10, s.Y - 5}, AnchorStart
	case idef0.SideTop:
		return Point{s.X + 5, s.Y + 15}, AnchorStart
	case idef0.SideBottom:
		return Point{s.X + 5, s.Y - 15}, AnchorStart
	}
	return s, AnchorMiddle
}
