package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alexanderramin/planner/internal/api"
	"github.com/alexanderramin/planner/internal/cli"
	"github.com/alexanderramin/planner/internal/config"
	"github.com/alexanderramin/planner/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))

	// Wire the API client and controller for a given origin; --api
	// rebuilds them after flag parsing.
	connect := func(baseURL string) *service.Controller {
		var opts []api.Option
		if cfg.API.LogCalls {
			opts = append(opts, api.WithObserver(api.NewSlogObserver(logger)))
		}
		client := api.New(api.Config{
			BaseURL:   baseURL,
			Retries:   cfg.API.Retries,
			BaseDelay: cfg.API.RetryBase(),
			Timeout:   cfg.API.Timeout(),
		}, opts...)
		return service.NewController(client, nil,
			service.WithObserver(service.NewSlogUseCaseObserver(logger)))
	}

	app := &cli.App{
		Controller: connect(cfg.API.URL),
		Config:     cfg,
		Logger:     logger,
		Connect:    connect,
	}

	// Detect interactive terminal: no arguments on a terminal starts the TUI.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
