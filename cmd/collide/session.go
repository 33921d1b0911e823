package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-collide/internal/config"
	"github.com/vovakirdan/tui-collide/internal/core"
	"github.com/vovakirdan/tui-collide/internal/storage"
)

// loadConfig reads the config file and applies the command line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}

	preset, err := config.ParseSpeedPreset(flagSpeed)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplySpeedPreset(&cfg, preset)

	if flagAxes != "" {
		cfg.Collision.Axes = flagAxes
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openLogger writes logs to the --log file. The returned close function is
// never nil. Without a usable file logging is discarded so the alt screen
// stays clean.
func openLogger(prefix string) (*log.Logger, func()) {
	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           log.InfoLevel,
	}
	if os.Getenv("COLLIDE_DEBUG") != "" {
		opts.Level = log.DebugLevel
	}

	path := expandHome(flagLogPath)
	if path == "" {
		return log.NewWithOptions(io.Discard, opts), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot create log directory: %v\n", err)
		return log.NewWithOptions(io.Discard, opts), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return log.NewWithOptions(io.Discard, opts), func() {}
	}
	return log.NewWithOptions(f, opts), func() { f.Close() }
}

// runtimeConfig sizes the session from the terminal. Explicit --width and
// --height win. When neither is available the size stays zero and the
// session fails with a missing surface.
func runtimeConfig() core.RuntimeConfig {
	width, height := flagWidth, flagHeight
	if width <= 0 || height <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the runs database, returning nil with a warning on failure.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, path[2:])
}
