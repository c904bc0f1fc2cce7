package idef0file

import (
	"encoding/json"

	"github.com/ha1tch/idef0-toolkit/pkg/idef0"
)

// jsonDiagram is the JSON representation of a diagram. Field names follow
// the camelCase used by the diagram data files.
type jsonDiagram struct {
	Title string     `json:"title"`
	Code  string     `json:"code"`
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

type jsonNode struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Number string  `json:"number,omitempty"`
}

type jsonEdge struct {
	ID         string   `json:"id"`
	SourceID   string   `json:"sourceId"`
	TargetID   string   `json:"targetId"`
	Label      string   `json:"label"`
	Side       string   `json:"side"`
	SourceSide string   `json:"sourceSide,omitempty"`
	Offset     *float64 `json:"offset,omitempty"`
}

// ParseJSON parses a diagram from JSON.
func ParseJSON(data []byte) (*idef0.Diagram, error) {
	var j jsonDiagram
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}

	d := &idef0.Diagram{Title: j.Title, Code: j.Code}
	for _, n := range j.Nodes {
		d.Nodes = append(d.Nodes, idef0.Node(n))
	}
	for _, e := range j.Edges {
		edge := idef0.Edge{
			ID:         e.ID,
			SourceID:   e.SourceID,
			TargetID:   e.TargetID,
			Label:      e.Label,
			Side:       idef0.Side(e.Side),
			SourceSide: idef0.Side(e.SourceSide),
		}
		if e.Offset != nil {
			edge.Offset = *e.Offset
		}
		d.Edges = append(d.Edges, edge)
	}

	return normalize(d), nil
}

// ToJSON converts a diagram to JSON.
func ToJSON(d *idef0.Diagram, pretty bool) ([]byte, error) {
	j := jsonDiagram{
		Title: d.Title,
		Code:  d.Code,
		Nodes: make([]jsonNode, 0, len(d.Nodes)),
		Edges: make([]jsonEdge, 0, len(d.Edges)),
	}

	for _, n := range d.Nodes {
		j.Nodes = append(j.Nodes, jsonNode(n))
	}
	for _, e := range d.Edges {
		je := jsonEdge{
			ID:         e.ID,
			SourceID:   e.SourceID,
			TargetID:   e.TargetID,
			Label:      e.Label,
			Side:       string(e.Side),
			SourceSide: string(e.SourceSide),
		}
		if e.Offset != 0 {
			off := e.Offset
			je.Offset = &off
		}
		j.Edges = append(j.Edges, je)
	}

	if pretty {
		return json.MarshalIndent(j, "", "  ")
	}
	return json.Marshal(j)
}
