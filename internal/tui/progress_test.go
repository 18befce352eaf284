package tui

import (
	"context"
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-equity/internal/deck"
	"github.com/lox/holdem-equity/internal/equity"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}) // Quiet logger for tests
}

func TestProgressModel(t *testing.T) {
	t.Run("progress only moves forward", func(t *testing.T) {
		m := NewProgressModel("AhAd", 1000, nil, testLogger())

		m.Update(ProgressMsg{Done: 500, Total: 1000})
		m.Update(ProgressMsg{Done: 300, Total: 1000})
		assert.Equal(t, 500, m.done)
		assert.InDelta(t, 0.5, m.fraction(), 1e-9)
		assert.Contains(t, m.View(), "500/1000")
		assert.Contains(t, m.View(), "AhAd")
	})

	t.Run("done quits and keeps the outcome", func(t *testing.T) {
		m := NewProgressModel("AhAd", 1000, nil, testLogger())
		result := &equity.Result{Trials: 1000, Completed: 990, Discarded: 10}

		_, cmd := m.Update(DoneMsg{Result: result})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, m.View())

		got, err := m.Outcome()
		require.NoError(t, err)
		assert.Same(t, result, got)
		assert.Equal(t, 1000, m.done)
	})

	t.Run("interrupt cancels once", func(t *testing.T) {
		calls := 0
		m := NewProgressModel("AhAd", 1000, func() { calls++ }, testLogger())

		m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		assert.Equal(t, 1, calls)
		assert.Contains(t, m.View(), "stopping")
	})

	t.Run("zero total renders empty bar", func(t *testing.T) {
		m := NewProgressModel("x", 0, nil, testLogger())
		assert.Zero(t, m.fraction())
		assert.NotEmpty(t, m.View())
	})
}

func TestRenderBar(t *testing.T) {
	assert.Equal(t, BarStyle.Render("")+InfoStyle.Render("░░░░"), renderBar(0, 4))
	assert.Equal(t, BarStyle.Render("██")+InfoStyle.Render("░░"), renderBar(0.5, 4))
	assert.Equal(t, BarStyle.Render("████")+InfoStyle.Render(""), renderBar(1, 4))
}

func headlessOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	}
}

func TestTrack(t *testing.T) {
	sim := equity.New(equity.Config{Seed: 3, Workers: 2, ProgressEvery: 100, Logger: testLogger()})
	req := equity.Request{
		Player:    deck.MustParseCards("AhAd"),
		Opponents: []string{"random"},
		Trials:    2000,
	}

	result, err := Track(context.Background(), "AhAd", req.Trials,
		func(ctx context.Context, progress func(done, total int)) (*equity.Result, error) {
			return equity.New(equity.Config{
				Seed:          3,
				Workers:       2,
				ProgressEvery: 100,
				Logger:        testLogger(),
				Progress:      progress,
			}).Estimate(ctx, req)
		}, testLogger(), headlessOptions()...)
	require.NoError(t, err)
	assert.Equal(t, 2000, result.Completed)
	assert.False(t, result.Cancelled)

	direct, err := sim.Estimate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, direct.Wins, result.Wins, "progress display does not change the outcome")
}

func TestTrackReturnsEstimateError(t *testing.T) {
	boom := errors.New("boom")
	result, err := Track(context.Background(), "x", 10,
		func(context.Context, func(int, int)) (*equity.Result, error) {
			return nil, boom
		}, testLogger(), headlessOptions()...)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, boom)
}

func TestFormatCards(t *testing.T) {
	out := FormatCards(deck.MustParseCards("AhKs"))
	assert.Contains(t, out, "A♥")
	assert.Contains(t, out, "K♠")
	assert.Equal(t, InfoStyle.Render("-"), FormatCards(nil))
}
