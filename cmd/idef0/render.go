package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/idef0-toolkit/pkg/idef0"
	"github.com/ha1tch/idef0-toolkit/pkg/idef0file"
	"github.com/ha1tch/idef0-toolkit/pkg/layout"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		output  string
		format  string
		scale   float64
		lenient bool
		heading bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a diagram to SVG or PNG",
		Long: `Render lays out a diagram and writes it as SVG or PNG. The format follows
the output extension unless --format is given; without -o, SVG is written to
stdout. Invalid diagrams are refused unless --lenient is set, in which case
dangling references are drawn from the origin and reported as warnings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, name, err := a.loadDiagram()
			if err != nil {
				return err
			}

			if format == "" {
				format = "svg"
				if output != "" {
					format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
				}
			}
			if format != "svg" && format != "png" {
				return fmt.Errorf("unsupported render format %q (want svg or png)", format)
			}
			if format == "png" && output == "" {
				return fmt.Errorf("PNG output needs -o")
			}

			dr, err := a.layout(d, name, lenient)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			switch format {
			case "svg":
				opts := idef0file.DefaultSVGOptions()
				opts.ShowHeading = heading
				buf.WriteString(idef0file.GenerateSVG(dr, opts))
			case "png":
				opts := idef0file.DefaultPNGOptions()
				opts.Scale = scale
				if err := idef0file.RenderPNG(dr, &buf, opts); err != nil {
					return err
				}
			}

			if output == "" {
				_, err := a.out.Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
				return err
			}
			a.success("Rendered %s to %s", name, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.svg or .png)")
	cmd.Flags().StringVar(&format, "format", "", "svg or png (default from extension)")
	cmd.Flags().Float64Var(&scale, "scale", 1, "PNG pixels per diagram unit")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "render invalid diagrams, reporting problems as warnings")
	cmd.Flags().BoolVar(&heading, "heading", false, "draw the diagram heading in the SVG")
	return cmd
}

// layout validates and lays out a diagram, printing layout warnings.
func (a *app) layout(d *idef0.Diagram, name string, lenient bool) (*layout.Drawing, error) {
	if err := d.Validate(); err != nil {
		if !lenient {
			return nil, fmt.Errorf("%s is invalid (use --lenient to render anyway):\n%w", name, err)
		}
		a.log.Warn("Rendering invalid diagram", "diagram", name, "error", err)
	}

	dr := layout.Compute(d, a.cfg.LayoutOptions())
	for _, w := range dr.Warnings {
		a.warn("%s", w)
	}
	return dr, nil
}
