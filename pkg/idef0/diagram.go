// Package idef0 provides the IDEF0 diagram model: activity boxes, the four
// arrow classes that connect them, and the built-in diagram catalog.
package idef0

// External marks an edge endpoint that lies on the system boundary rather
// than on a node.
const External = "EXTERNAL"

// Side names one side of an activity box.
//
// For an edge, Side is the entry side on the target node, or the exit side
// when the target is External.
type Side string

const (
	SideTop    Side = "TOP"    // controls
	SideBottom Side = "BOTTOM" // mechanisms
	SideLeft   Side = "LEFT"   // inputs
	SideRight  Side = "RIGHT"  // outputs
)

// Valid reports whether s is one of the four box sides.
func (s Side) Valid() bool {
	switch s {
	case SideTop, SideBottom, SideLeft, SideRight:
		return true
	}
	return false
}

// Kind distinguishes the two levels of diagram the toolkit ships.
type Kind string

const (
	KindContext       Kind = "context"
	KindDecomposition Kind = "decomposition"
)

// ContextCode is the diagram code of a top-level context diagram.
// Boxes on a context diagram are always numbered 0.
const ContextCode = "A-0"

// Node is an activity box. X and Y locate the top-left corner.
type Node struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Number string  `json:"number,omitempty"`
}

// CenterX returns the horizontal centre of the box.
func (n Node) CenterX() float64 { return n.X + n.Width/2 }

// CenterY returns the vertical centre of the box.
func (n Node) CenterY() float64 { return n.Y + n.Height/2 }

// Right returns the x coordinate of the right edge.
func (n Node) Right() float64 { return n.X + n.Width }

// Bottom returns the y coordinate of the bottom edge.
func (n Node) Bottom() float64 { return n.Y + n.Height }

// Edge is an arrow between two nodes or between a node and the boundary.
type Edge struct {
	ID         string  `json:"id"`
	SourceID   string  `json:"sourceId"`
	TargetID   string  `json:"targetId"`
	Label      string  `json:"label"`
	Side       Side    `json:"side"`
	SourceSide Side    `json:"sourceSide,omitempty"` // empty means RIGHT
	Offset     float64 `json:"offset,omitempty"`     // spread along the side
}

// FromBoundary reports whether the edge starts on the system boundary.
func (e Edge) FromBoundary() bool { return e.SourceID == External }

// ToBoundary reports whether the edge ends on the system boundary.
func (e Edge) ToBoundary() bool { return e.TargetID == External }

// ExitSide returns the side the edge leaves its source node from.
func (e Edge) ExitSide() Side {
	if e.SourceSide == "" {
		return SideRight
	}
	return e.SourceSide
}

// IsFeedback reports whether the edge is a top-to-top feedback loop.
func (e Edge) IsFeedback() bool {
	return e.SourceSide == SideTop && e.Side == SideTop
}

// Diagram is one IDEF0 sheet.
type Diagram struct {
	Title string `json:"title"`
	Code  string `json:"code"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node looks up a node by id.
func (d *Diagram) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Edge looks up an edge by id.
func (d *Diagram) Edge(id string) (Edge, bool) {
	for _, e := range d.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return Edge{}, false
}

// IsContext reports whether this is a top-level context diagram.
func (d *Diagram) IsContext() bool {
	return d.Code == ContextCode
}

// Kind returns the diagram level.
func (d *Diagram) Kind() Kind {
	if d.IsContext() {
		return KindContext
	}
	return KindDecomposition
}

// DisplayNumber returns the number drawn in a node's corner cell.
func (d *Diagram) DisplayNumber(n Node) string {
	if d.IsContext() {
		return "0"
	}
	return n.Number
}

// Heading returns "code: title" as shown above the drawing.
func (d *Diagram) Heading() string {
	if d.Code == "" {
		return d.Title
	}
	return d.Code + ": " + d.Title
}

// Clone returns a deep copy of the diagram.
func (d *Diagram) Clone() *Diagram {
	c := &Diagram{
		Title: d.Title,
		Code:  d.Code,
		Nodes: make([]Node, len(d.Nodes)),
		Edges: make([]Edge, len(d.Edges)),
	}
	copy(c.Nodes, d.Nodes)
	copy(c.Edges, d.Edges)
	return c
}

// Stats counts edges per arrow class.
type Stats struct {
	Nodes      int
	Inputs     int
	Controls   int
	Mechanisms int
	Outputs    int
	Internal   int // node-to-node, feedback included
	Feedback   int
}

// Stats summarises the diagram's arrows by IDEF0 class.
func (d *Diagram) Stats() Stats {
	s := Stats{Nodes: len(d.Nodes)}
	for _, e := range d.Edges {
		switch {
		case e.ToBoundary():
			s.Outputs++
		case e.FromBoundary():
			switch e.Side {
			case SideLeft:
				s.Inputs++
			case SideTop:
				s.Controls++
			case SideBottom:
				s.Mechanisms++
			}
		default:
			s.Internal++
			if e.IsFeedback() {
				s.Feedback++
			}
		}
	}
	return s
}
