// Package idef0file reads and writes IDEF0 diagrams: JSON and TOML diagram
// files, plus SVG, PNG and Graphviz DOT renderings of a laid-out Drawing.
package idef0file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ha1tch/idef0-toolkit/pkg/idef0"
)

// Format is a diagram file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the file format from a path's extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unknown file format: %s", ext)
}

// ReadFile reads a diagram from a .json or .toml file.
func ReadFile(path string) (*idef0.Diagram, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data, format)
}

// Parse decodes diagram data in the given format.
func Parse(data []byte, format Format) (*idef0.Diagram, error) {
	var (
		d   *idef0.Diagram
		err error
	)
	switch format {
	case FormatJSON:
		d, err = ParseJSON(data)
	case FormatTOML:
		d, err = ParseTOML(data)
	default:
		return nil, fmt.Errorf("unknown file format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}
	return d, nil
}

// Encode serialises a diagram in the given format. JSON output is indented.
func Encode(d *idef0.Diagram, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ToJSON(d, true)
	case FormatTOML:
		return ToTOML(d)
	}
	return nil, fmt.Errorf("unknown file format: %s", format)
}

// WriteFile writes a diagram, choosing the format from the extension.
func WriteFile(path string, d *idef0.Diagram) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := Encode(d, format)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// normalize converts the title and every label to NFC.
func normalize(d *idef0.Diagram) *idef0.Diagram {
	d.Title = norm.NFC.String(d.Title)
	for i := range d.Nodes {
		d.Nodes[i].Label = norm.NFC.String(d.Nodes[i].Label)
	}
	for i := range d.Edges {
		d.Edges[i].Label = norm.NFC.String(d.Edges[i].Label)
	}
	return d
}
