package idef0file

import (
	"fmt"
	"strings"

	"github.com/ha1tch/idef0-toolkit/pkg/idef0"
)

// boundaryNode is the DOT name of the diagram boundary.
const boundaryNode = "boundary"

// sideStyle maps an arrow class to a DOT edge style.
var sideStyle = map[idef0.Side]string{
	idef0.SideLeft:   "solid",
	idef0.SideRight:  "solid",
	idef0.SideTop:    "dashed",
	idef0.SideBottom: "dotted",
}

// GenerateDOT converts a diagram to Graphviz DOT format. Boundary arrows
// connect to a single "boundary" node; controls are dashed and mechanisms
// dotted.
func GenerateDOT(d *idef0.Diagram, title string) string {
	var sb strings.Builder

	sb.WriteString("digraph IDEF0 {\n")
	sb.WriteString("    rankdir=LR;\n")
	sb.WriteString("    node [fontname=\"Helvetica\", fontsize=11, shape=box];\n")
	sb.WriteString("    edge [fontname=\"Helvetica\", fontsize=10];\n")
	sb.WriteString("\n")

	if title == "" {
		title = d.Heading()
	}
	if title != "" {
		sb.WriteString("    labelloc=\"t\";\n")
		sb.WriteString(fmt.Sprintf("    label=\"%s\";\n", escapeDOT(title)))
		sb.WriteString("\n")
	}

	usesBoundary := false
	for _, e := range d.Edges {
		if e.FromBoundary() || e.ToBoundary() {
			usesBoundary = true
			break
		}
	}
	if usesBoundary {
		sb.WriteString(fmt.Sprintf("    %s [shape=plaintext, label=\"\"];\n", boundaryNode))
	}

	for _, n := range d.Nodes {
		label := n.Label + "\n" + d.DisplayNumber(n)
		sb.WriteString(fmt.Sprintf("    \"%s\" [label=\"%s\"];\n", escapeDOT(n.ID), escapeDOT(label)))
	}
	sb.WriteString("\n")

	for _, e := range d.Edges {
		from, to := dotName(e.SourceID), dotName(e.TargetID)
		attrs := []string{fmt.Sprintf("label=\"%s\"", escapeDOT(e.Label))}
		if style, ok := sideStyle[e.Side]; ok && style != "solid" {
			attrs = append(attrs, "style="+style)
		}
		if e.IsFeedback() {
			attrs = append(attrs, "constraint=false")
		}
		sb.WriteString(fmt.Sprintf("    %s -> %s [%s];\n", from, to, strings.Join(attrs, ", ")))
	}

	sb.WriteString("}\n")

	return sb.String()
}

func dotName(id string) string {
	if id == idef0.External {
		return boundaryNode
	}
	return "\"" + escapeDOT(id) + "\""
}

func escapeDOT(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
