// Package tui renders equity results and live simulation progress in the
// terminal.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-equity/internal/equity"
)

const barWidth = 30

// ProgressMsg reports trials finished so far
type ProgressMsg struct {
	Done  int
	Total int
}

// DoneMsg carries the outcome of the simulation
type DoneMsg struct {
	Result *equity.Result
	Err    error
}

// ProgressModel is the Bubble Tea model shown while a simulation runs
type ProgressModel struct {
	spinner    spinner.Model
	title      string
	done       int
	total      int
	cancel     context.CancelFunc
	cancelling bool
	finished   bool
	result     *equity.Result
	err        error
	logger     *log.Logger
}

// NewProgressModel creates a progress display for total trials. cancel is
// called when the user interrupts.
func NewProgressModel(title string, total int, cancel context.CancelFunc, logger *log.Logger) *ProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = BarStyle

	return &ProgressModel{
		spinner: s,
		title:   title,
		total:   total,
		cancel:  cancel,
		logger:  logger.WithPrefix("tui"),
	}
}

// Init starts the spinner
func (m *ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles progress, completion and key messages
func (m *ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProgressMsg:
		// Workers report out of order; never move backwards.
		if msg.Done > m.done {
			m.done = msg.Done
		}
		if msg.Total > 0 {
			m.total = msg.Total
		}
		return m, nil

	case DoneMsg:
		m.finished = true
		m.result = msg.Result
		m.err = msg.Err
		if msg.Result != nil {
			m.done = msg.Result.Completed + msg.Result.Discarded
		}
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			if !m.cancelling {
				m.logger.Debug("Interrupted, stopping simulation")
				m.cancelling = true
				if m.cancel != nil {
					m.cancel()
				}
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the spinner, bar and counts
func (m *ProgressModel) View() string {
	if m.finished {
		return ""
	}

	status := fmt.Sprintf("%d/%d", m.done, m.total)
	if m.cancelling {
		status += " " + WarningStyle.Render("stopping")
	}

	return fmt.Sprintf("%s %s %s %3.0f%% %s\n",
		m.spinner.View(),
		LabelStyle.Render(m.title),
		renderBar(m.fraction(), barWidth),
		m.fraction()*100,
		InfoStyle.Render(status))
}

// Outcome returns what the simulation produced once DoneMsg has arrived
func (m *ProgressModel) Outcome() (*equity.Result, error) {
	return m.result, m.err
}

func (m *ProgressModel) fraction() float64 {
	if m.total <= 0 {
		return 0
	}
	return min(float64(m.done)/float64(m.total), 1)
}

func renderBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	return BarStyle.Render(strings.Repeat("█", filled)) +
		InfoStyle.Render(strings.Repeat("░", width-filled))
}

// EstimateFunc runs a simulation, reporting progress through the callback
type EstimateFunc func(ctx context.Context, progress func(done, total int)) (*equity.Result, error)

// Track runs estimate behind a live progress display and returns its
// outcome. Interrupting the display cancels ctx for estimate, which then
// returns whatever trials finished.
func Track(ctx context.Context, title string, total int, estimate EstimateFunc, logger *log.Logger, opts ...tea.ProgramOption) (*equity.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewProgressModel(title, total, cancel, logger)
	p := tea.NewProgram(model, opts...)

	go func() {
		result, err := estimate(ctx, func(done, total int) {
			p.Send(ProgressMsg{Done: done, Total: total})
		})
		p.Send(DoneMsg{Result: result, Err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress display failed: %w", err)
	}

	return final.(*ProgressModel).Outcome()
}
