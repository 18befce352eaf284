// Package equity estimates a hold'em player's chance of winning against
// opponents drawn from named ranges by Monte Carlo simulation.
package equity

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-equity/internal/deck"
	"github.com/lox/holdem-equity/internal/evaluator"
	"github.com/lox/holdem-equity/internal/randutil"
	"github.com/lox/holdem-equity/internal/ranges"
)

// ErrInvalidRequest is wrapped by every request shape error.
var ErrInvalidRequest = errors.New("invalid request")

const defaultProgressEvery = 1000

// Config holds configuration for a Simulator
type Config struct {
	Ranges  *ranges.Table
	Workers int
	// Seed fixes the random streams. Zero picks a fresh seed per call.
	Seed int64
	// DefaultTrials is used by Calculate when an input leaves the trial
	// count unset. Zero means DefaultTrials.
	DefaultTrials int
	// MaxDuration stops dispatching trials once elapsed. Zero means no limit.
	MaxDuration time.Duration
	// Progress is called from worker goroutines every ProgressEvery trials.
	Progress      func(done, total int)
	ProgressEvery int
	Clock         quartz.Clock
	Logger        *log.Logger
}

// Request describes one equity question
type Request struct {
	Player    []deck.Card
	Board     []deck.Card
	Opponents []string
	Trials    int
}

// Simulator runs equity estimates. It is safe for concurrent use.
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a simulator, filling in defaults for unset fields
func New(config Config) *Simulator {
	if config.Ranges == nil {
		config.Ranges = ranges.DefaultTable()
	}
	if config.Workers <= 0 {
		config.Workers = min(runtime.NumCPU(), 8)
	}
	if config.DefaultTrials <= 0 {
		config.DefaultTrials = DefaultTrials
	}
	if config.ProgressEvery <= 0 {
		config.ProgressEvery = defaultProgressEvery
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Simulator{
		config: config,
		logger: config.Logger.WithPrefix("equity"),
	}
}

// Ranges returns the archetype table the simulator samples from
func (s *Simulator) Ranges() *ranges.Table {
	return s.config.Ranges
}

// Estimate validates the request and runs its trials across the worker pool.
// Input errors are returned before any trial runs. Cancelling ctx or
// reaching MaxDuration stops further trials; the result then covers the
// trials that finished and has Cancelled set.
func (s *Simulator) Estimate(ctx context.Context, req Request) (*Result, error) {
	combos, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	seed := randutil.Seed(s.config.Seed)
	workers := min(s.config.Workers, req.Trials)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if s.config.MaxDuration > 0 {
		timer := s.config.Clock.AfterFunc(s.config.MaxDuration, cancel)
		defer timer.Stop()
	}

	s.logger.Debug("Starting simulation",
		"trials", req.Trials,
		"opponents", len(req.Opponents),
		"workers", workers,
		"seed", seed)

	start := s.config.Clock.Now()
	tallies := make([]tally, workers)
	var done atomic.Int64

	g := new(errgroup.Group)
	for w := range workers {
		n := req.Trials / workers
		if w < req.Trials%workers {
			n++
		}

		g.Go(func() error {
			t := newTrial(req, combos, randutil.Stream(seed, w))
			out := &tallies[w]
			for range n {
				if ctx.Err() != nil {
					return nil
				}
				if err := t.run(out); err != nil {
					return err
				}

				d := done.Add(1)
				if s.config.Progress != nil && d%int64(s.config.ProgressEvery) == 0 {
					s.config.Progress(int(d), req.Trials)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		Opponents:   append([]string(nil), req.Opponents...),
		Trials:      req.Trials,
		PerOpponent: make([]int, len(req.Opponents)),
		Seed:        seed,
		Elapsed:     s.config.Clock.Since(start),
	}
	for _, t := range tallies {
		t.addTo(result)
	}
	result.Cancelled = result.Completed+result.Discarded < req.Trials

	s.logger.Debug("Simulation finished",
		"completed", result.Completed,
		"discarded", result.Discarded,
		"cancelled", result.Cancelled,
		"elapsed", result.Elapsed)

	return result, nil
}

// prepare checks the request and resolves every opponent's combos
func (s *Simulator) prepare(req Request) ([][]ranges.Combo, error) {
	if len(req.Player) != 2 {
		return nil, fmt.Errorf("%w: player needs exactly 2 cards, got %d", ErrInvalidRequest, len(req.Player))
	}
	switch len(req.Board) {
	case 0, 3, 4, 5:
	default:
		return nil, fmt.Errorf("%w: board must have 0, 3, 4 or 5 cards, got %d", ErrInvalidRequest, len(req.Board))
	}
	if req.Trials <= 0 {
		return nil, fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidRequest, req.Trials)
	}

	known := make([]deck.Card, 0, len(req.Player)+len(req.Board))
	known = append(known, req.Player...)
	known = append(known, req.Board...)
	for _, c := range known {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: invalid card %v", ErrInvalidRequest, c)
		}
	}
	if err := deck.CheckDistinct(known...); err != nil {
		return nil, err
	}

	combos := make([][]ranges.Combo, len(req.Opponents))
	for i, name := range req.Opponents {
		c, err := s.config.Ranges.Combos(name)
		if err != nil {
			return nil, err
		}
		combos[i] = c
	}
	return combos, nil
}

// tally is one worker's private counters
type tally struct {
	completed, discarded     int
	wins, ties, opponentWins int
	perOpponent              []int
	categories               [evaluator.NumCategories]int
}

func (t *tally) addTo(r *Result) {
	r.Completed += t.completed
	r.Discarded += t.discarded
	r.Wins += t.wins
	r.Ties += t.ties
	r.OpponentWins += t.opponentWins
	for i, n := range t.perOpponent {
		r.PerOpponent[i] += n
	}
	for i, n := range t.categories {
		r.Categories[i] += n
	}
}

// trial holds the reusable state for running trials on one worker
type trial struct {
	player  []deck.Card
	board   []deck.Card
	combos  [][]ranges.Combo
	rng     *rand.Rand
	holes   [][]deck.Card
	ranks   []evaluator.HandRank
	avail   []ranges.Combo
	scratch []deck.Card
}

func newTrial(req Request, combos [][]ranges.Combo, rng *rand.Rand) *trial {
	return &trial{
		player:  req.Player,
		board:   req.Board,
		combos:  combos,
		rng:     rng,
		holes:   make([][]deck.Card, len(combos)),
		ranks:   make([]evaluator.HandRank, len(combos)),
		scratch: make([]deck.Card, 0, 7),
	}
}

// run plays one trial and records its outcome. A trial the deck cannot
// supply is counted as discarded and nothing else is recorded.
func (t *trial) run(out *tally) error {
	if out.perOpponent == nil {
		out.perOpponent = make([]int, len(t.combos))
	}

	board, err := t.deal()
	if err != nil {
		var insufficient *deck.InsufficientCardsError
		if errors.As(err, &insufficient) {
			out.discarded++
			return nil
		}
		return fmt.Errorf("dealing trial: %w", err)
	}

	player := t.evaluate(t.player, board)
	best := player
	for i, hole := range t.holes {
		t.ranks[i] = t.evaluate(hole, board)
		if t.ranks[i].Beats(best) {
			best = t.ranks[i]
		}
	}

	switch {
	case player != best:
		out.opponentWins++
		for i, r := range t.ranks {
			if r == best {
				out.perOpponent[i]++
			}
		}
	case t.shared(best):
		out.ties++
	default:
		out.wins++
	}

	out.completed++
	out.categories[player.Category-1]++
	return nil
}

// deal draws every opponent's hole cards and completes the board from a
// fresh deck. Opponents take a combo from their range that is still in the
// deck, or two random cards when none is left.
func (t *trial) deal() ([]deck.Card, error) {
	d := deck.NewDeck(t.rng)
	d.Remove(t.player...)
	d.Remove(t.board...)

	for i, combos := range t.combos {
		t.avail = t.avail[:0]
		for _, c := range combos {
			if d.ContainsAll(c.Set()) {
				t.avail = append(t.avail, c)
			}
		}

		if len(t.avail) == 0 {
			hole, err := d.Deal(2)
			if err != nil {
				return nil, err
			}
			t.holes[i] = hole
			continue
		}

		c := t.avail[t.rng.IntN(len(t.avail))]
		d.Remove(c.A, c.B)
		t.holes[i] = c.Cards()
	}

	rest, err := d.Deal(5 - len(t.board))
	if err != nil {
		return nil, err
	}
	board := make([]deck.Card, 0, 5)
	board = append(board, t.board...)
	return append(board, rest...), nil
}

func (t *trial) evaluate(hole, board []deck.Card) evaluator.HandRank {
	t.scratch = append(t.scratch[:0], hole...)
	t.scratch = append(t.scratch, board...)
	return evaluator.MustBestHand(t.scratch)
}

func (t *trial) shared(best evaluator.HandRank) bool {
	for _, r := range t.ranks {
		if r == best {
			return true
		}
	}
	return false
}
