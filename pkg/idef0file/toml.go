package idef0file

import (
	"bytes"

	"github.com/BurntSushi/toml"

	"github.com/ha1tch/idef0-toolkit/pkg/idef0"
)

// tomlDiagram is the TOML representation of a diagram:
//
//	title = "..."
//	code = "A0"
//
//	[[nodes]]
//	id = "A1"
//	...
//
//	[[edges]]
//	id = "e1"
//	source = "EXTERNAL"
//	...
type tomlDiagram struct {
	Title string     `toml:"title"`
	Code  string     `toml:"code"`
	Nodes []tomlNode `toml:"nodes"`
	Edges []tomlEdge `toml:"edges"`
}

type tomlNode struct {
	ID     string  `toml:"id"`
	Label  string  `toml:"label"`
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Number string  `toml:"number,omitempty"`
}

type tomlEdge struct {
	ID         string  `toml:"id"`
	Source     string  `toml:"source"`
	Target     string  `toml:"target"`
	Label      string  `toml:"label"`
	Side       string  `toml:"side"`
	SourceSide string  `toml:"source_side,omitempty"`
	Offset     float64 `toml:"offset,omitempty"`
}

// ParseTOML parses a diagram from TOML.
func ParseTOML(data []byte) (*idef0.Diagram, error) {
	var t tomlDiagram
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&t); err != nil {
		return nil, err
	}

	d := &idef0.Diagram{Title: t.Title, Code: t.Code}
	for _, n := range t.Nodes {
		d.Nodes = append(d.Nodes, idef0.Node(n))
	}
	for _, e := range t.Edges {
		d.Edges = append(d.Edges, idef0.Edge{
			ID:         e.ID,
			SourceID:   e.Source,
			TargetID:   e.Target,
			Label:      e.Label,
			Side:       idef0.Side(e.Side),
			SourceSide: idef0.Side(e.SourceSide),
			Offset:     e.Offset,
		})
	}

	return normalize(d), nil
}

// ToTOML converts a diagram to TOML.
func ToTOML(d *idef0.Diagram) ([]byte, error) {
	t := tomlDiagram{Title: d.Title, Code: d.Code}
	for _, n := range d.Nodes {
		t.Nodes = append(t.Nodes, tomlNode(n))
	}
	for _, e := range d.Edges {
		t.Edges = append(t.Edges, tomlEdge{
			ID:         e.ID,
			Source:     e.SourceID,
			Target:     e.TargetID,
			Label:      e.Label,
			Side:       string(e.Side),
			SourceSide: string(e.SourceSide),
			Offset:     e.Offset,
		})
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
