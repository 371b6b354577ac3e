package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/vovakirdan/slovotetris/internal/config"
	"github.com/vovakirdan/slovotetris/internal/game"
	"github.com/vovakirdan/slovotetris/internal/lexicon"
	"github.com/vovakirdan/slovotetris/internal/registry"
	"github.com/vovakirdan/slovotetris/internal/storage"
)

// dictLoadTimeout bounds how long commands that need the full dictionary
// wait for it.
const dictLoadTimeout = 30 * time.Second

// app is what every command shares: configuration, logger and dictionary.
type app struct {
	cfg    config.Config
	logger *log.Logger
	words  *lexicon.Provider
	loaded <-chan error
}

// newApp reads .env, the config file, the environment and the flags, in
// that order, and starts loading the dictionary in the background.
func newApp(ctx context.Context, prefix string) (*app, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cannot read .env: %w", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("bad --log-level: %w", err)
	}
	logger.SetLevel(level)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	config.ApplyEnv(&cfg)
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return nil, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		logger: logger,
		words:  lexicon.NewProvider(nil),
	}
	a.loadWords(ctx)
	return a, nil
}

// loadWords installs the configured word list once it is read. Until then,
// and if it cannot be read, the built-in words are used.
func (a *app) loadWords(ctx context.Context) {
	path := a.cfg.Lexicon.Path
	if path == "" {
		fallback := a.words.Lexicon().Stats()
		a.logger.Debug("using built-in dictionary", "words", fallback.Added)
		return
	}

	minLen, maxLen := a.cfg.Lexicon.MinLen, a.cfg.Lexicon.MaxLen
	done := a.words.Load(ctx, func(context.Context) (*lexicon.Lexicon, error) {
		return lexicon.ReadFile(path, minLen, maxLen)
	})

	reported := make(chan error, 1)
	a.loaded = reported
	go func() {
		err := <-done
		var full *lexicon.Lexicon
		if err == nil {
			full, err = a.words.Loaded()
		}
		if err != nil {
			a.logger.Warn("dictionary not loaded, using built-in words", "path", path, "error", err)
			reported <- err
			return
		}

		stats := full.Stats()
		a.logger.Info("dictionary loaded",
			"path", path,
			"words", stats.Added,
			"duplicates", stats.Duplicates,
			"skipped", stats.Skipped,
		)
		reported <- nil
	}()
}

// waitWords blocks until the configured dictionary is installed or has
// failed to load. The provider keeps serving the built-in words on failure.
func (a *app) waitWords(ctx context.Context) {
	if a.loaded == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, dictLoadTimeout)
	defer cancel()

	select {
	case <-a.loaded:
	case <-ctx.Done():
		a.logger.Warn("still loading dictionary, using built-in words")
	}
}

// newGame creates a game of mode from the configuration. A --seed flag
// overrides the seed the caller picked.
func (a *app) newGame(mode string, seed int64) (*game.State, error) {
	if !registry.Exists(mode) {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	if flagSeed != 0 {
		seed = flagSeed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := a.cfg.GameOptions(seed)
	opts.Mode = mode
	return game.New(a.words, opts)
}

// openStore opens the score database. Commands that can run without one
// log the error and carry on with a nil store.
func (a *app) openStore() (*storage.Store, error) {
	store, err := storage.Open(a.cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("scores database opened", "path", a.cfg.Storage.Path)
	return store, nil
}
