package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/lox/holdem-equity/internal/deck"
	"github.com/lox/holdem-equity/internal/equity"
	"github.com/lox/holdem-equity/internal/evaluator"
	"github.com/lox/holdem-equity/internal/tui"
)

// RankCmd names the best hand in a set of cards
type RankCmd struct {
	Cards  string `arg:"" help:"5 to 7 cards, e.g. 'AsKsQsJsTs9h2c'"`
	Versus string `help:"Another 5 to 7 cards to compare against"`
	JSON   bool   `help:"Print the result as JSON"`
}

func (c *RankCmd) Run(g *Globals) error {
	if c.JSON {
		out, err := equity.RankHand(c.Cards)
		if err != nil {
			return err
		}
		return writeJSON(os.Stdout, out)
	}
	return c.display(os.Stdout)
}

func (c *RankCmd) display(out io.Writer) error {
	hand, err := describe(c.Cards)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	printHand(w, "hand", hand)

	if c.Versus != "" {
		other, err := describe(c.Versus)
		if err != nil {
			return fmt.Errorf("versus: %w", err)
		}
		printHand(w, "versus", other)
		_ = w.Flush()

		_, explanation := evaluator.Explain(hand.Rank, other.Rank)
		_, _ = fmt.Fprintf(out, "\n%s\n", tui.HandStyle.Render(explanation))
		return nil
	}

	return w.Flush()
}

func printHand(w io.Writer, label string, hand evaluator.Hand) {
	_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n",
		tui.LabelStyle.Render(label),
		tui.HandStyle.Render(hand.Rank.String()),
		tui.FormatCards(hand.Cards[:]))
}

func describe(cards string) (evaluator.Hand, error) {
	parsed, err := deck.ParseCards(cards)
	if err != nil {
		return evaluator.Hand{}, err
	}
	if err := deck.CheckDistinct(parsed...); err != nil {
		return evaluator.Hand{}, err
	}
	return evaluator.Describe(parsed)
}
