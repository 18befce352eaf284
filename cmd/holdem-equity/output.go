package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/lox/holdem-equity/internal/equity"
	"github.com/lox/holdem-equity/internal/evaluator"
	"github.com/lox/holdem-equity/internal/tui"
)

func displayResults(out io.Writer, req equity.Request, result *equity.Result, showPossibilities bool) {
	// Display header
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "%s\t%s  %s\n",
		tui.LabelStyle.Render("hand"),
		tui.FormatCards(req.Player),
		tui.InfoStyle.Render(handSummary(req.Player)))
	if len(req.Board) > 0 {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", tui.LabelStyle.Render("board"), tui.FormatCards(req.Board))
	}
	_, _ = fmt.Fprintf(w, "%s\t%s\n", tui.LabelStyle.Render("vs"), opponentList(req.Opponents))
	_ = w.Flush()
	_, _ = fmt.Fprintln(out)

	// Outcome table
	lower, upper := result.ConfidenceInterval()
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "%s\t%s\n", tui.LabelStyle.Render("win"), tui.WinStyle.Render(formatPercent(result.WinRate())))
	_, _ = fmt.Fprintf(w, "%s\t%s\n", tui.LabelStyle.Render("tie"), tui.TieStyle.Render(formatPercent(result.TieRate())))
	_, _ = fmt.Fprintf(w, "%s\t%s\n", tui.LabelStyle.Render("lose"), tui.LossStyle.Render(formatPercent(result.LossRate())))
	_, _ = fmt.Fprintf(w, "%s\t%s  %s\n",
		tui.LabelStyle.Render("equity"),
		tui.HandStyle.Render(formatPercent(result.Equity())),
		tui.InfoStyle.Render(fmt.Sprintf("(95%% CI %s to %s)", formatPercent(lower), formatPercent(upper))))
	_ = w.Flush()

	// Per opponent breakdown only says something new in multiway pots
	if len(result.Opponents) > 1 {
		_, _ = fmt.Fprintln(out)
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintf(w, "%s\t%s\n", tui.LabelStyle.Render("opponent"), tui.LabelStyle.Render("wins"))
		for i, name := range result.Opponents {
			_, _ = fmt.Fprintf(w, "%s\t%s\n",
				equity.OpponentLabel(i, name),
				tui.LossStyle.Render(formatPercent(result.OpponentWinRate(i))))
		}
		_ = w.Flush()
	}

	// Display possibilities breakdown if requested
	if showPossibilities {
		_, _ = fmt.Fprintln(out)
		displayPossibilities(out, result)
	}

	// Display footer
	_, _ = fmt.Fprintln(out)
	footer := fmt.Sprintf("%d iterations in %v (seed %d)",
		result.Completed, result.Elapsed.Truncate(time.Millisecond), result.Seed)
	if result.Discarded > 0 {
		footer += fmt.Sprintf(", %d discarded", result.Discarded)
	}
	if result.Cancelled {
		footer += tui.WarningStyle.Render(fmt.Sprintf(", stopped early at %d/%d", result.Completed+result.Discarded, result.Trials))
	}
	_, _ = fmt.Fprintln(out, tui.InfoStyle.Render(footer))
}

func displayPossibilities(out io.Writer, result *equity.Result) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "%s\t%s\n", tui.LabelStyle.Render("hand type"), tui.LabelStyle.Render("player"))

	for _, category := range evaluator.Categories() {
		rate := result.CategoryRate(category)
		cell := "."
		if rate > 0 {
			cell = formatPercent(rate)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", category, tui.HandStyle.Render(cell))
	}
	_ = w.Flush()
}

func formatPercent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}
