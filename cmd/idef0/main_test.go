package main

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/idef0-toolkit/pkg/idef0"
	"github.com/ha1tch/idef0-toolkit/pkg/idef0file"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	color.NoColor = true
	var out, errOut bytes.Buffer
	a := newApp(&out, &errOut)
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestList(t *testing.T) {
	out, _, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "context")
	assert.Contains(t, out, "decomposition")
	assert.Contains(t, out, "A-0: ")
	assert.Contains(t, out, "(4 nodes, 29 edges)")
}

func TestInfo(t *testing.T) {
	out, _, err := run(t, "info", "-d", "decomposition")
	require.NoError(t, err)
	assert.Contains(t, out, "A0: ")
	assert.Contains(t, out, "feedback")
	assert.NotContains(t, out, "Warnings")
}

func TestValidate(t *testing.T) {
	out, _, err := run(t, "validate", "-d", "context")
	require.NoError(t, err)
	assert.Contains(t, out, "context: valid context diagram with 1 nodes, 13 edges")
}

func brokenDiagramFile(t *testing.T) string {
	t.Helper()
	d := &idef0.Diagram{
		Code:  "A0",
		Nodes: []idef0.Node{{ID: "A1", Label: "Sell", X: 100, Y: 100, Width: 220, Height: 120, Number: "1"}},
		Edges: []idef0.Edge{{ID: "lost", SourceID: "A1", TargetID: "A9", Side: idef0.SideLeft}},
	}
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, idef0file.WriteFile(path, d))
	return path
}

func TestValidateReportsProblems(t *testing.T) {
	_, _, err := run(t, "validate", "-f", brokenDiagramFile(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, idef0.ErrDanglingReference)
}

func TestRenderSVGToStdout(t *testing.T) {
	out, _, err := run(t, "render", "-d", "context")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "</svg>")
}

func TestRenderRefusesInvalidUnlessLenient(t *testing.T) {
	path := brokenDiagramFile(t)

	_, _, err := run(t, "render", "-f", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--lenient")

	out, errOut, err := run(t, "render", "-f", path, "--lenient")
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")
	assert.Contains(t, errOut, "Warning:")
	assert.Contains(t, errOut, `"lost"`)
}

func TestRenderPNGFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a0.png")
	out, _, err := run(t, "render", "-d", "decomposition", "-o", path, "--scale", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Rendered")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 700, img.Bounds().Dx())
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	_, _, err := run(t, "render", "-o", "out.gif")
	assert.ErrorContains(t, err, "unsupported render format")
}

func TestDot(t *testing.T) {
	out, _, err := run(t, "dot", "-d", "decomposition", "-t", "Sales")
	require.NoError(t, err)
	assert.Contains(t, out, "digraph IDEF0")
	assert.Contains(t, out, `label="Sales"`)
}

func TestExportThenRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a0.toml")
	_, _, err := run(t, "export", "-d", "decomposition", "-o", path)
	require.NoError(t, err)

	d, err := idef0file.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, idef0.DecompositionDiagram(), d)

	out, _, err := run(t, "export", "-d", "context", "--format", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, "[[nodes]]")
}

func TestFileAndDiagramExclusive(t *testing.T) {
	_, _, err := run(t, "info", "-d", "context", "-f", "x.json")
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestUnknownDiagram(t *testing.T) {
	_, _, err := run(t, "info", "-d", "A7")
	assert.ErrorContains(t, err, "unknown diagram")
}

func TestEdit(t *testing.T) {
	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewGray(image.Rect(0, 0, 2, 2))))
	result := base64.StdEncoding.EncodeToString([]byte("edited"))

	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		_, _ = io.Copy(io.Discard, r.Body)
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"image/png","data":"`+result+`"}}]}}]}`)
	}))
	defer srv.Close()

	t.Setenv("API_KEY", "cli-key")
	t.Setenv("IDEF0_API_BASE", srv.URL)

	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	outPath := filepath.Join(dir, "out.png")
	require.NoError(t, os.WriteFile(in, img.Bytes(), 0644))

	_, _, err := run(t, "edit", "-i", in, "-p", "make it pop", "-o", outPath)
	require.NoError(t, err)

	assert.Equal(t, "cli-key", gotKey)
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("edited"), data)
}

func TestEditRequiresPrompt(t *testing.T) {
	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewGray(image.Rect(0, 0, 2, 2))))
	in := filepath.Join(t.TempDir(), "in.png")
	require.NoError(t, os.WriteFile(in, img.Bytes(), 0644))

	_, _, err := run(t, "edit", "-i", in, "-o", filepath.Join(t.TempDir(), "out.png"))
	assert.ErrorContains(t, err, "please enter a description")
}
