package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-equity/internal/deck"
	"github.com/lox/holdem-equity/internal/equity"
	"github.com/lox/holdem-equity/internal/fileutil"
	"github.com/lox/holdem-equity/internal/ranges"
	"github.com/lox/holdem-equity/internal/tui"
)

// OddsCmd runs a Monte Carlo equity estimate for one hand
type OddsCmd struct {
	Hand          string        `arg:"" help:"Player hole cards, e.g. 'AhKd'"`
	Board         string        `short:"b" help:"Community board cards (e.g., 'Td7s8h')"`
	Opponent      []string      `short:"o" help:"Opponent range archetype, repeat for each opponent" default:"random"`
	Iterations    int           `short:"i" help:"Number of Monte Carlo iterations (default from config)"`
	Seed          *int64        `help:"Random seed for reproducible results"`
	Workers       int           `short:"w" help:"Worker goroutines (default from config, then CPU count)"`
	Timeout       time.Duration `help:"Stop after this long and report the trials finished"`
	Possibilities bool          `short:"p" help:"Show detailed hand type probabilities"`
	Progress      bool          `help:"Show a live progress bar"`
	JSON          bool          `help:"Print the result as JSON"`
	Output        string        `help:"Also write the JSON result to this file" type:"path"`
}

func (c *OddsCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger := g.logger(log.WarnLevel)

	table, err := cfg.RangeTable()
	if err != nil {
		return err
	}

	in := equity.Input{
		PlayerHand:     c.Hand,
		BoardCards:     c.Board,
		OpponentTypes:  c.Opponent,
		NumSimulations: c.Iterations,
	}
	if in.NumSimulations == 0 {
		in.NumSimulations = cfg.Simulation.Trials
	}
	req, err := in.Request()
	if err != nil {
		return err
	}

	simConfig := cfg.EquityConfig(table, logger)
	if c.Seed != nil {
		simConfig.Seed = *c.Seed
	}
	if c.Workers > 0 {
		simConfig.Workers = c.Workers
	}
	if c.Timeout > 0 {
		simConfig.MaxDuration = c.Timeout
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	var result *equity.Result
	if c.Progress && !c.JSON {
		result, err = tui.Track(ctx, deck.FormatCards(req.Player), req.Trials,
			func(ctx context.Context, progress func(done, total int)) (*equity.Result, error) {
				simConfig.Progress = progress
				return equity.New(simConfig).Estimate(ctx, req)
			}, logger, tea.WithOutput(os.Stderr))
	} else {
		result, err = equity.New(simConfig).Estimate(ctx, req)
	}
	if err != nil {
		return err
	}

	if result.Cancelled {
		logger.Warn("Simulation stopped early",
			"completed", result.Completed,
			"requested", result.Trials)
	}

	out := equity.NewOutput(result)
	if c.Output != "" {
		if err := fileutil.WriteJSON(c.Output, out); err != nil {
			return err
		}
		logger.Debug("Wrote result", "path", c.Output)
	}

	if c.JSON {
		return writeJSON(os.Stdout, out)
	}
	displayResults(os.Stdout, req, result, c.Possibilities)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// handSummary labels hole cards with their class and preflop percentile,
// e.g. "AA, 100.0 percentile"
func handSummary(cards []deck.Card) string {
	combo := ranges.NewCombo(cards[0], cards[1])
	return fmt.Sprintf("%s, %.1f percentile", combo.Class(), ranges.Percentile(combo)*100)
}

func opponentList(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
