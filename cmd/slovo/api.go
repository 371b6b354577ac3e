package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slovotetris/internal/platform/web"
)

var (
	flagHTTPAddr    string
	flagGameTimeout time.Duration
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP JSON API",
	Long: `Start an HTTP server that plays games over JSON, the backend a browser
or Mini App front-end talks to. Games live in memory; finished games, games
idle for --game-timeout and games still open at shutdown are saved.

Examples:
  slovo api
  slovo api --http :9000
  slovo api --game-timeout 30m --log-level debug

Try it:
  curl -X POST localhost:8080/api/games -d '{"mode":"blocks"}'`,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP listen address (default from config: :8080)")
	apiCmd.Flags().DurationVar(&flagGameTimeout, "game-timeout", web.DefaultIdleTimeout, "Drop games idle for this long")
}

func runAPI(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, "slovo-api")
	if err != nil {
		return err
	}

	addr := a.cfg.Server.HTTPAddr
	if flagHTTPAddr != "" {
		addr = flagHTTPAddr
	}

	store, err := a.openStore()
	if err != nil {
		a.logger.Warn("could not open scores database, scores will not be kept", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	srv := web.New(web.Config{
		NewGame:     a.newGame,
		Words:       a.words,
		Store:       store,
		IdleTimeout: flagGameTimeout,
		Logger:      a.logger,
	})
	return srv.ListenAndServe(ctx, addr)
}
