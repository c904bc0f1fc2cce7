package idef0

import (
	"errors"
	"fmt"
)

var (
	ErrNoNodes           = errors.New("diagram has no nodes")
	ErrDanglingReference = errors.New("dangling node reference")
	ErrBothExternal      = errors.New("both endpoints are external")
	ErrSelfLoop          = errors.New("edge loops to its own node")
	ErrInvalidSide       = errors.New("invalid side")
	ErrDuplicateID       = errors.New("duplicate id")
)

// Validate checks the diagram is well-formed. All problems are reported,
// joined into a single error.
func (d *Diagram) Validate() error {
	var errs []error

	if len(d.Nodes) == 0 {
		errs = append(errs, ErrNoNodes)
	}

	nodes := make(map[string]bool, len(d.Nodes))
	for i, n := range d.Nodes {
		if n.ID == "" {
			errs = append(errs, fmt.Errorf("node %d: empty id", i))
			continue
		}
		if n.ID == External {
			errs = append(errs, fmt.Errorf("node %d: id %q is reserved", i, External))
		}
		if nodes[n.ID] {
			errs = append(errs, fmt.Errorf("node %q: %w", n.ID, ErrDuplicateID))
		}
		nodes[n.ID] = true
		if n.Width <= 0 || n.Height <= 0 {
			errs = append(errs, fmt.Errorf("node %q: non-positive size %gx%g", n.ID, n.Width, n.Height))
		}
	}

	edges := make(map[string]bool, len(d.Edges))
	for i, e := range d.Edges {
		name := e.ID
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		} else if edges[e.ID] {
			errs = append(errs, fmt.Errorf("edge %q: %w", e.ID, ErrDuplicateID))
		}
		edges[e.ID] = true

		if !e.Side.Valid() {
			errs = append(errs, fmt.Errorf("edge %q: %w %q", name, ErrInvalidSide, e.Side))
		}
		if e.SourceSide != "" && !e.SourceSide.Valid() {
			errs = append(errs, fmt.Errorf("edge %q: %w source side %q", name, ErrInvalidSide, e.SourceSide))
		}

		if e.FromBoundary() && e.ToBoundary() {
			errs = append(errs, fmt.Errorf("edge %q: %w", name, ErrBothExternal))
			continue
		}
		if !e.FromBoundary() && !nodes[e.SourceID] {
			errs = append(errs, fmt.Errorf("edge %q: source %q: %w", name, e.SourceID, ErrDanglingReference))
		}
		if !e.ToBoundary() && !nodes[e.TargetID] {
			errs = append(errs, fmt.Errorf("edge %q: target %q: %w", name, e.TargetID, ErrDanglingReference))
		}
		if e.SourceID == e.TargetID {
			errs = append(errs, fmt.Errorf("edge %q: %w %q", name, ErrSelfLoop, e.SourceID))
		}
	}

	return errors.Join(errs...)
}

// DanglingEdges returns the ids of edges that reference a node missing from
// the diagram.
func (d *Diagram) DanglingEdges() []string {
	var ids []string
	for _, e := range d.Edges {
		_, srcOK := d.Node(e.SourceID)
		_, tgtOK := d.Node(e.TargetID)
		if (!e.FromBoundary() && !srcOK) || (!e.ToBoundary() && !tgtOK) {
			ids = append(ids, e.ID)
		}
	}
	return ids
}
