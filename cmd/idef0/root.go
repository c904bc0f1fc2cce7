package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ha1tch/idef0-toolkit/internal/config"
	"github.com/ha1tch/idef0-toolkit/pkg/idef0"
	"github.com/ha1tch/idef0-toolkit/pkg/idef0file"
)

// app carries state shared by all subcommands.
type app struct {
	out    io.Writer
	errOut io.Writer

	cfg config.Config
	log *slog.Logger

	// --diagram / --file
	diagramName string
	diagramFile string

	red    func(a ...interface{}) string
	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:    out,
		errOut: errOut,
		cfg:    config.Default(),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		red:    color.New(color.FgRed, color.Bold).SprintFunc(),
		green:  color.New(color.FgGreen).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "idef0",
		Short: "IDEF0 diagram toolkit",
		Long: `idef0 lays out and renders IDEF0 function models (context and
decomposition diagrams) as SVG, PNG or Graphviz DOT, converts diagram files
between JSON and TOML, and edits images through the Gemini API.`,
		Example: `  idef0 list
  idef0 render -d decomposition -o a0.svg
  idef0 render -f model.toml -o model.png --scale 2
  idef0 dot -d context | dot -Tpng -o a-0.png
  idef0 edit -i photo.png -p "add a retro filter" -o out.png`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().StringVarP(&a.diagramName, "diagram", "d", "", "built-in diagram: context (A-0) or decomposition (A0)")
	root.PersistentFlags().StringVarP(&a.diagramFile, "file", "f", "", "diagram file (.json or .toml)")

	root.AddCommand(
		newListCmd(a),
		newInfoCmd(a),
		newValidateCmd(a),
		newRenderCmd(a),
		newDotCmd(a),
		newExportCmd(a),
		newEditCmd(a),
	)
	return root
}

// init loads configuration and sets up logging to stderr.
func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(cfg, a.errOut)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger
	return nil
}

// loadDiagram returns the diagram selected by --file or --diagram.
func (a *app) loadDiagram() (*idef0.Diagram, string, error) {
	if a.diagramFile != "" {
		if a.diagramName != "" {
			return nil, "", fmt.Errorf("--file and --diagram are mutually exclusive")
		}
		d, err := idef0file.ReadFile(a.diagramFile)
		if err != nil {
			return nil, "", fmt.Errorf("loading %s: %w", a.diagramFile, err)
		}
		a.log.Debug("Loaded diagram file", "path", a.diagramFile, "nodes", len(d.Nodes), "edges", len(d.Edges))
		return d, a.diagramFile, nil
	}

	d, err := idef0.Builtin(a.diagramName)
	if err != nil {
		return nil, "", err
	}
	return d, string(d.Kind()), nil
}

func (a *app) fail(err error) {
	fmt.Fprintf(a.errOut, "%s %v\n", a.red("Error:"), err)
}

func (a *app) success(format string, args ...interface{}) {
	fmt.Fprintln(a.out, a.green(fmt.Sprintf(format, args...)))
}

func (a *app) warn(format string, args ...interface{}) {
	fmt.Fprintln(a.errOut, a.yellow("Warning: "+fmt.Sprintf(format, args...)))
}
