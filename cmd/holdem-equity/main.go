package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/holdem-equity/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config  string `short:"c" help:"Path to HCL or TOML configuration file" default:"holdem-equity.hcl" type:"path"`
	Verbose bool   `help:"Enable debug logging"`
	NoColor bool   `help:"Disable coloured output"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Odds    OddsCmd          `cmd:"" help:"Estimate a hand's equity against opponent ranges"`
	Rank    RankCmd          `cmd:"" help:"Rank the best five card hand among 5 to 7 cards"`
	Ranges  RangesCmd        `cmd:"" help:"List the opponent range archetypes"`
	Serve   ServeCmd         `cmd:"" help:"Serve equity calculations over HTTP and WebSocket"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem-equity"),
		kong.Description("Texas Hold'em equity against range-based opponents"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// logger builds the command line logger at level, or debug under --verbose
func (g *Globals) logger(level log.Level) *log.Logger {
	if g.Verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: g.Verbose,
	})
}

// loadConfig reads and validates the configuration file
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupSignalHandler creates a context that is cancelled on interrupt signals
func setupSignalHandler(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
