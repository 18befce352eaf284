package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/lox/holdem-equity/internal/ranges"
	"github.com/lox/holdem-equity/internal/tui"
)

// RangesCmd lists the archetypes available to odds and serve
type RangesCmd struct {
	Names  []string `arg:"" optional:"" help:"Archetypes to show (default all)"`
	Combos bool     `help:"List every concrete hand in each archetype"`
}

func (c *RangesCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	table, err := cfg.RangeTable()
	if err != nil {
		return err
	}
	return c.display(os.Stdout, table)
}

func (c *RangesCmd) display(out io.Writer, table *ranges.Table) error {
	names := c.Names
	if len(names) == 0 {
		names = table.Names()
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		tui.LabelStyle.Render("range"),
		tui.LabelStyle.Render("combos"),
		tui.LabelStyle.Render("share"),
		tui.LabelStyle.Render("hands"))

	for _, name := range names {
		hands, err := table.Hands(name)
		if err != nil {
			return err
		}
		size := table.Size(name)
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			tui.HandStyle.Render(strings.ToLower(name)),
			size,
			formatPercent(float64(size)/1326),
			strings.Join(hands, ","))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !c.Combos {
		return nil
	}
	for _, name := range names {
		combos, err := table.Combos(name)
		if err != nil {
			return err
		}
		codes := make([]string, len(combos))
		for i, combo := range combos {
			codes[i] = combo.String()
		}
		_, _ = fmt.Fprintf(out, "\n%s\n%s\n", tui.LabelStyle.Render(strings.ToLower(name)), strings.Join(codes, " "))
	}
	return nil
}
