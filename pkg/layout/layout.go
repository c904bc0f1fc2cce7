// Package layout turns an IDEF0 diagram into drawable geometry: node boxes
// with their number cells and wrapped labels, orthogonally routed arrows,
// and label anchors. It performs no I/O; the writers in idef0file consume
// the Drawing it produces.
package layout

import (
	"fmt"

	"github.com/ha1tch/idef0-toolkit/pkg/idef0"
)

// Options controls canvas size and the fixed routing distances.
type Options struct {
	Width        float64 // canvas width
	Height       float64 // canvas height
	Margin       float64 // inset of the boundary from the canvas edge
	Clearance    float64 // run right of the source before a forward jog
	FeedbackRise float64 // height of a feedback arc above the higher node

	NumberCellWidth  float64
	NumberCellHeight float64
	LabelPadding     float64 // inner padding of the label area
	LabelFontSize    float64
	LineHeight       float64 // multiple of LabelFontSize

	Measurer Measurer // nil uses DefaultMeasurer
}

// DefaultOptions returns the fixed 1400x1000 sheet geometry.
func DefaultOptions() Options {
	return Options{
		Width:            1400,
		Height:           1000,
		Margin:           10,
		Clearance:        30,
		FeedbackRise:     60,
		NumberCellWidth:  40,
		NumberCellHeight: 25,
		LabelPadding:     8,
		LabelFontSize:    14,
		LineHeight:       1.25,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Width == 0 {
		o.Width = def.Width
	}
	if o.Height == 0 {
		o.Height = def.Height
	}
	if o.Margin == 0 {
		o.Margin = def.Margin
	}
	if o.Clearance == 0 {
		o.Clearance = def.Clearance
	}
	if o.FeedbackRise == 0 {
		o.FeedbackRise = def.FeedbackRise
	}
	if o.NumberCellWidth == 0 {
		o.NumberCellWidth = def.NumberCellWidth
	}
	if o.NumberCellHeight == 0 {
		o.NumberCellHeight = def.NumberCellHeight
	}
	if o.LabelPadding == 0 {
		o.LabelPadding = def.LabelPadding
	}
	if o.LabelFontSize == 0 {
		o.LabelFontSize = def.LabelFontSize
	}
	if o.LineHeight == 0 {
		o.LineHeight = def.LineHeight
	}
	if o.Measurer == nil {
		o.Measurer = DefaultMeasurer()
	}
	return o
}

// Box is the drawable form of a node.
type Box struct {
	NodeID string
	Rect   Rect

	// Corner cell holding the box number.
	NumberRules [2]Line
	Number      string
	NumberAt    Point // centre-anchored baseline

	// Label area above the number cell, and the wrapped label lines with
	// their centre-anchored baselines.
	LabelArea  Rect
	LabelLines []string
	LabelAt    []Point
}

// Warning records geometry that was drawn but is probably wrong.
type Warning struct {
	EdgeID  string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("edge %q: %s", w.EdgeID, w.Message)
}

// Drawing is the complete geometry of one diagram.
type Drawing struct {
	Width, Height float64
	Title         string
	Code          string
	Heading       string
	Boxes         []Box
	Routes        []Route
	Warnings      []Warning
}

// Route returns the route of the given edge.
func (dr *Drawing) Route(edgeID string) (Route, bool) {
	for _, r := range dr.Routes {
		if r.EdgeID == edgeID {
			return r, true
		}
	}
	return Route{}, false
}

// Compute lays out a diagram. It never fails: dangling references resolve
// to 0-valued coordinates and unanticipated edge shapes are drawn straight,
// and both are recorded in Drawing.Warnings.
func Compute(d *idef0.Diagram, opts Options) *Drawing {
	opts = opts.withDefaults()

	dr := &Drawing{
		Width:   opts.Width,
		Height:  opts.Height,
		Title:   d.Title,
		Code:    d.Code,
		Heading: d.Heading(),
	}

	for _, e := range d.Edges {
		r := RouteEdge(d, e, opts)
		if _, _, ok := ResolveEndpoints(d, e, opts); !ok {
			dr.Warnings = append(dr.Warnings, Warning{e.ID, "unresolved endpoint, drawn from origin"})
		}
		if r.Strategy == StrategyFallback {
			dr.Warnings = append(dr.Warnings, Warning{e.ID, fmt.Sprintf("no routing rule for %s edge %s -> %s, drawn straight", e.Side, e.SourceID, e.TargetID)})
		}
		dr.Routes = append(dr.Routes, r)
	}

	for _, n := range d.Nodes {
		dr.Boxes = append(dr.Boxes, layoutBox(d, n, opts))
	}

	return dr
}

func layoutBox(d *idef0.Diagram, n idef0.Node, opts Options) Box {
	b := Box{
		NodeID: n.ID,
		Rect:   Rect{n.X, n.Y, n.Width, n.Height},
		Number: d.DisplayNumber(n),
	}

	cellLeft := n.Right() - opts.NumberCellWidth
	cellTop := n.Bottom() - opts.NumberCellHeight
	b.NumberRules = [2]Line{
		{Point{cellLeft, cellTop}, Point{n.Right(), cellTop}},
		{Point{cellLeft, cellTop}, Point{cellLeft, n.Bottom()}},
	}
	b.NumberAt = Point{n.Right() - opts.NumberCellWidth/2, n.Bottom() - 8}

	b.LabelArea = Rect{n.X, n.Y, n.Width, n.Height - opts.NumberCellHeight}
	b.LabelLines = Wrap(n.Label, b.LabelArea.W-2*opts.LabelPadding, opts.Measurer)

	// Centre the block of lines vertically; each baseline sits about a third
	// of an em below the line's centre.
	lineH := opts.LabelFontSize * opts.LineHeight
	blockH := lineH * float64(len(b.LabelLines))
	center := b.LabelArea.Center()
	top := center.Y - blockH/2
	for i := range b.LabelLines {
		y := top + lineH*float64(i) + lineH/2 + opts.LabelFontSize*0.35
		b.LabelAt = append(b.LabelAt, Point{center.X, y})
	}

	return b
}
