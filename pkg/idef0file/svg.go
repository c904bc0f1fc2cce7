package idef0file

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/ha1tch/idef0-toolkit/pkg/layout"
)

// SVGOptions controls SVG rendering.
type SVGOptions struct {
	FontSize    int  // box label font size
	LabelSize   int  // arrow label font size (0 = FontSize - 2)
	NumberSize  int  // box number font size (0 = FontSize - 2)
	StrokeWidth float64
	ShowHeading bool // draw the "code: title" heading inside the top margin
}

// DefaultSVGOptions returns sensible defaults.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		FontSize:    14,
		StrokeWidth: 1.5,
	}
}

func (o SVGOptions) withDefaults() SVGOptions {
	if o.FontSize == 0 {
		o.FontSize = 14
	}
	if o.LabelSize == 0 {
		o.LabelSize = o.FontSize - 2
	}
	if o.NumberSize == 0 {
		o.NumberSize = o.FontSize - 2
	}
	if o.StrokeWidth == 0 {
		o.StrokeWidth = 1.5
	}
	return o
}

// num formats a coordinate for an attribute value.
func num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// GenerateSVG renders a laid-out diagram as a standalone SVG document.
// Arrows are drawn under the boxes; every arrow label carries a white halo
// so it stays legible where it crosses a line.
func GenerateSVG(dr *layout.Drawing, opts SVGOptions) string {
	opts = opts.withDefaults()
	w, h := num(dr.Width), num(dr.Height)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">
<title>%s</title>
<defs>
  <marker id="arrowhead" markerWidth="10" markerHeight="7" refX="9" refY="3.5" orient="auto">
    <polygon points="0 0, 10 3.5, 0 7" fill="#333"/>
  </marker>
</defs>
<style>
  .box { fill: white; stroke: #333; stroke-width: 2; }
  .number-rule { stroke: #333; stroke-width: 1; }
  .box-label { font-family: sans-serif; font-size: %dpx; text-anchor: middle; fill: #111; }
  .box-number { font-family: sans-serif; font-size: %dpx; text-anchor: middle; fill: #333; }
  .arrow { fill: none; stroke: #333; stroke-width: %s; marker-end: url(#arrowhead); }
  .arrow-label { font-family: sans-serif; font-size: %dpx; fill: #333; stroke: white; stroke-width: 3; paint-order: stroke; }
  .heading { font-family: sans-serif; font-size: %dpx; font-weight: bold; }
</style>
`, w, h, w, h, html.EscapeString(dr.Heading),
		opts.FontSize, opts.NumberSize, num(opts.StrokeWidth), opts.LabelSize, opts.FontSize))

	// Background
	sb.WriteString(fmt.Sprintf(`<rect width="%s" height="%s" fill="white"/>
`, w, h))

	if opts.ShowHeading && dr.Heading != "" {
		sb.WriteString(fmt.Sprintf(`<text x="20" y="%d" class="heading">%s</text>
`, opts.FontSize+6, html.EscapeString(dr.Heading)))
	}

	sb.WriteString("<g class=\"arrows\">\n")
	for _, r := range dr.Routes {
		writeRoute(&sb, r)
	}
	sb.WriteString("</g>\n")

	sb.WriteString("<g class=\"boxes\">\n")
	for _, b := range dr.Boxes {
		writeBox(&sb, b)
	}
	sb.WriteString("</g>\n")

	sb.WriteString("</svg>\n")
	return sb.String()
}

func writeRoute(sb *strings.Builder, r layout.Route) {
	sb.WriteString(fmt.Sprintf(`<path id="%s" d="%s" class="arrow"/>
`, html.EscapeString(r.EdgeID), r.PathData()))

	if r.Label == "" {
		return
	}
	sb.WriteString(fmt.Sprintf(`<text x="%s" y="%s" text-anchor="%s" class="arrow-label">%s</text>
`, num(r.LabelAt.X), num(r.LabelAt.Y), r.Anchor, html.EscapeString(r.Label)))
}

func writeBox(sb *strings.Builder, b layout.Box) {
	sb.WriteString(fmt.Sprintf(`<g id="%s">
`, html.EscapeString(b.NodeID)))
	sb.WriteString(fmt.Sprintf(`  <rect x="%s" y="%s" width="%s" height="%s" class="box"/>
`, num(b.Rect.X), num(b.Rect.Y), num(b.Rect.W), num(b.Rect.H)))

	for _, l := range b.NumberRules {
		sb.WriteString(fmt.Sprintf(`  <line x1="%s" y1="%s" x2="%s" y2="%s" class="number-rule"/>
`, num(l.From.X), num(l.From.Y), num(l.To.X), num(l.To.Y)))
	}
	sb.WriteString(fmt.Sprintf(`  <text x="%s" y="%s" class="box-number">%s</text>
`, num(b.NumberAt.X), num(b.NumberAt.Y), html.EscapeString(b.Number)))

	for i, line := range b.LabelLines {
		p := b.LabelAt[i]
		sb.WriteString(fmt.Sprintf(`  <text x="%s" y="%s" class="box-label">%s</text>
`, num(p.X), num(p.Y), html.EscapeString(line)))
	}
	sb.WriteString("</g>\n")
}
