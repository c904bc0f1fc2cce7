package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a diagram for dangling references and malformed edges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, name, err := a.loadDiagram()
			if err != nil {
				return err
			}

			if err := d.Validate(); err != nil {
				n := 1
				var joined interface{ Unwrap() []error }
				if errors.As(err, &joined) {
					n = len(joined.Unwrap())
				}
				return fmt.Errorf("%s: %d problem(s)\n%w", name, n, err)
			}

			a.success("%s: valid %s diagram with %d nodes, %d edges", name, d.Kind(), len(d.Nodes), len(d.Edges))
			return nil
		},
	}
}
