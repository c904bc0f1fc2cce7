package idef0file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/idef0-toolkit/pkg/idef0"
)

func TestJSONReadsWhatItWrites(t *testing.T) {
	for _, d := range []*idef0.Diagram{idef0.ContextDiagram(), idef0.DecompositionDiagram()} {
		data, err := ToJSON(d, false)
		require.NoError(t, err)

		got, err := ParseJSON(data)
		require.NoError(t, err)
		assert.Equal(t, d, got, d.Code)
	}
}

func TestTOMLReadsWhatItWrites(t *testing.T) {
	for _, d := range []*idef0.Diagram{idef0.ContextDiagram(), idef0.DecompositionDiagram()} {
		data, err := ToTOML(d)
		require.NoError(t, err)

		got, err := ParseTOML(data)
		require.NoError(t, err)
		assert.Equal(t, d, got, d.Code)
	}
}

func TestParseJSONFieldNames(t *testing.T) {
	data := []byte(`{
		"title": "Sales",
		"code": "A0",
		"nodes": [{"id": "A1", "label": "Sell", "x": 100, "y": 100, "width": 220, "height": 120, "number": "1"}],
		"edges": [
			{"id": "in", "sourceId": "EXTERNAL", "targetId": "A1", "label": "Leads", "side": "LEFT", "offset": 20},
			{"id": "fb", "sourceId": "A1", "targetId": "A1", "label": "x", "side": "TOP", "sourceSide": "TOP"}
		]
	}`)

	d, err := ParseJSON(data)
	require.NoError(t, err)

	require.Len(t, d.Edges, 2)
	assert.Equal(t, idef0.External, d.Edges[0].SourceID)
	assert.Equal(t, idef0.SideLeft, d.Edges[0].Side)
	assert.Equal(t, 20.0, d.Edges[0].Offset)
	assert.Equal(t, idef0.SideTop, d.Edges[1].SourceSide)
	assert.Zero(t, d.Edges[1].Offset)
}

func TestParseNormalizesLabels(t *testing.T) {
	decomposed := "\u0438\u0306" // и + combining breve
	data := []byte(`{"title": "` + decomposed + `", "nodes": [{"id": "A1", "label": "` + decomposed + `"}]}`)

	d, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "\u0439", d.Title)
	assert.Equal(t, "\u0439", d.Nodes[0].Label)
}

func TestParseJSONRejectsGarbage(t *testing.T) {
	_, err := ParseJSON([]byte("{nodes"))
	assert.Error(t, err)
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	d := idef0.DecompositionDiagram()

	for _, name := range []string{"a0.json", "a0.toml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, d))

		got, err := ReadFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, d, got, name)
	}
}

func TestUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagram.yaml")
	require.NoError(t, os.WriteFile(path, []byte("x: 1"), 0644))

	_, err := ReadFile(path)
	assert.ErrorContains(t, err, "unknown file format")

	_, err = FormatFromPath("diagram.JSON")
	assert.NoError(t, err)
}
