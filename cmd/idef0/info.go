package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ha1tch/idef0-toolkit/pkg/idef0"
	"github.com/ha1tch/idef0-toolkit/pkg/layout"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	keyStyle   = lipgloss.NewStyle().Width(13).Foreground(lipgloss.Color("8"))
	nameStyle  = lipgloss.NewStyle().Width(15).Bold(true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in diagrams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range idef0.BuiltinNames() {
				d, err := idef0.Builtin(name)
				if err != nil {
					return err
				}
				s := d.Stats()
				fmt.Fprintf(a.out, "%s %s  (%d nodes, %d edges)\n",
					nameStyle.Render(name), d.Heading(), s.Nodes, len(d.Edges))
			}
			return nil
		},
	}
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show diagram information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := a.loadDiagram()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, renderInfo(d, layout.Compute(d, a.cfg.LayoutOptions())))
			return nil
		},
	}
}

func renderInfo(d *idef0.Diagram, dr *layout.Drawing) string {
	s := d.Stats()
	row := func(k string, v interface{}) string {
		return keyStyle.Render(k) + fmt.Sprint(v)
	}

	lines := []string{
		titleStyle.Render(d.Heading()),
		"",
		row("Kind", d.Kind()),
		row("Nodes", s.Nodes),
		row("Inputs", s.Inputs),
		row("Controls", s.Controls),
		row("Mechanisms", s.Mechanisms),
		row("Outputs", s.Outputs),
		row("Internal", fmt.Sprintf("%d (%d feedback)", s.Internal, s.Feedback)),
	}

	routes := make(map[layout.Strategy]int)
	for _, r := range dr.Routes {
		routes[r.Strategy]++
	}
	var parts []string
	for st := layout.StrategyExternalInput; st <= layout.StrategyFallback; st++ {
		if n := routes[st]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", st, n))
		}
	}
	lines = append(lines, row("Routes", strings.Join(parts, ", ")))

	if len(dr.Warnings) > 0 {
		lines = append(lines, row("Warnings", len(dr.Warnings)))
	}

	var boxes []string
	for _, n := range d.Nodes {
		boxes = append(boxes, fmt.Sprintf("%s  %s", d.DisplayNumber(n), n.Label))
	}
	if len(boxes) > 0 {
		lines = append(lines, "", strings.Join(boxes, "\n"))
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
