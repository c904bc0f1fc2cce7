package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ha1tch/idef0-toolkit/pkg/idef0file"
)

func newDotCmd(a *app) *cobra.Command {
	var output, title string

	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Generate Graphviz DOT output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := a.loadDiagram()
			if err != nil {
				return err
			}

			dot := idef0file.GenerateDOT(d, title)

			if output == "" {
				_, err := fmt.Fprint(a.out, dot)
				return err
			}
			if err := os.WriteFile(output, []byte(dot), 0644); err != nil {
				return err
			}
			a.success("Wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "graph label (default the diagram heading)")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a diagram as JSON or TOML",
		Long: `Export writes the selected diagram in the diagram file format, so built-in
diagrams can be copied and edited. The format follows the output extension;
without -o the diagram is written to stdout in --format (default json).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, name, err := a.loadDiagram()
			if err != nil {
				return err
			}

			if output != "" {
				if err := idef0file.WriteFile(output, d); err != nil {
					return err
				}
				a.success("Exported %s to %s", name, output)
				return nil
			}

			data, err := idef0file.Encode(d, idef0file.Format(format))
			if err != nil {
				return err
			}
			_, err = a.out.Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json or .toml)")
	cmd.Flags().StringVar(&format, "format", "json", "stdout format: json or toml")
	return cmd
}
