package main

import (
	"context"
	"time"

	"github.com/lox/holdem-equity/internal/equity"
	"github.com/lox/holdem-equity/internal/server"
)

// ServeCmd runs the HTTP and WebSocket server
type ServeCmd struct {
	Addr     string `short:"a" help:"Server address to bind to (overrides config)"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	// Apply command line overrides
	if c.LogLevel != "" {
		cfg.Server.LogLevel = c.LogLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	addr := cfg.Address()
	if c.Addr != "" {
		addr = c.Addr
	}

	logger := g.logger(cfg.LogLevel())

	table, err := cfg.RangeTable()
	if err != nil {
		return err
	}
	sim := equity.New(cfg.EquityConfig(table, logger))
	srv := server.NewServer(sim, logger)

	logger.Info("Starting equity server",
		"addr", addr,
		"ranges", len(table.Names()),
		"workers", cfg.Simulation.Workers,
		"timeout", cfg.Timeout())

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	// Start server in background
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start(addr)
	}()

	// Wait for shutdown or error
	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
