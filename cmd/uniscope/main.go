// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

// uniscope is an interactive terminal UI for exploring a Unison
// codebase: a workspace of open definitions with per-item zoom and
// documentation folding, a namespace sidebar, and a fuzzy finder.
//
// Two modes of operation:
//
// API mode (default): connects to UCM's local HTTP API (--api) and
// fetches definitions on demand, with an on-disk cache so repeat
// lookups work at memory speed.
//
// Snapshot mode (--snapshot): loads a JSONC snapshot file and browses
// it entirely offline. No server required.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/unison-tools/uniscope/lib/codebase"
	"github.com/unison-tools/uniscope/lib/config"
	"github.com/unison-tools/uniscope/lib/ref"
	"github.com/unison-tools/uniscope/lib/version"
	"github.com/unison-tools/uniscope/lib/workspace"
	"github.com/unison-tools/uniscope/lib/workspaceui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var apiURL string
	var snapshotPath string
	var namespace string
	var openRefs []string
	var configPath string
	var logOutput string

	flagSet := pflag.NewFlagSet("uniscope", pflag.ContinueOnError)
	flagSet.StringVar(&apiURL, "api", "", "base URL of UCM's local HTTP API, e.g. http://127.0.0.1:5858/api")
	flagSet.StringVar(&snapshotPath, "snapshot", "", "browse a JSONC snapshot file instead of a live server")
	flagSet.StringVar(&namespace, "namespace", "", "root namespace for the sidebar (default: codebase root)")
	flagSet.StringArrayVar(&openRefs, "open", nil, "definition to open at startup (repeatable); name, name#hash, or kind:name#hash")
	flagSet.StringVar(&configPath, "config", "", "path to uniscope.yaml (default: $UNISCOPE_CONFIG)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (in addition to the status bar)")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing so it works without any
	// other flags being valid.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("uniscope")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if snapshotPath != "" {
		cfg.Snapshot.Path = snapshotPath
	}
	if namespace != "" {
		cfg.UI.Namespace = namespace
	}
	if logOutput != "" {
		cfg.Logging.File = logOutput
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("uniscope requires an interactive terminal")
	}

	tuiHandler := workspaceui.NewTUILogHandler(slog.LevelWarn)
	logger, closeLog, err := buildLogger(cfg.Logging, tuiHandler)
	if err != nil {
		return err
	}
	defer closeLog()

	source, err := buildSource(cfg, logger)
	if err != nil {
		return err
	}

	initial, err := parseOpenRefs(openRefs)
	if err != nil {
		return err
	}

	var root ref.Name
	if cfg.UI.Namespace != "" {
		root, err = ref.ParseName(cfg.UI.Namespace)
		if err != nil {
			return fmt.Errorf("invalid --namespace: %w", err)
		}
	}

	zoom, err := parseZoom(cfg.UI.DefaultZoom)
	if err != nil {
		return err
	}

	model := workspaceui.NewModel(workspaceui.ModelConfig{
		Source:      source,
		Initial:     initial,
		Root:        root,
		DefaultZoom: &zoom,
		Logger:      logger,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	tuiHandler.SetProgram(program)

	_, err = program.Run()
	return err
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// buildSource picks the codebase backend: a snapshot file when
// configured, otherwise the live API with an optional disk cache.
func buildSource(cfg *config.Config, logger *slog.Logger) (codebase.Source, error) {
	if cfg.Snapshot.Path != "" {
		source, err := codebase.LoadSnapshot(cfg.Snapshot.Path)
		if err != nil {
			return nil, fmt.Errorf("loading snapshot: %w", err)
		}
		return source, nil
	}

	var cache *codebase.Cache
	if !cfg.Cache.Disabled {
		var err error
		cache, err = codebase.NewCache(cfg.Cache.Dir, logger)
		if err != nil {
			// A broken cache directory degrades to uncached operation
			// rather than blocking startup.
			logger.Warn("definition cache unavailable", "dir", cfg.Cache.Dir, "error", err)
		}
	}

	return codebase.NewAPISource(codebase.APIConfig{
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.API.Timeout},
		Cache:      cache,
		Logger:     logger,
	})
}

// buildLogger assembles the slog fanout: warnings and errors to the
// TUI status bar, everything at the configured level to the JSON log
// file when one is set.
func buildLogger(cfg config.LoggingConfig, tuiHandler *workspaceui.TUILogHandler) (*slog.Logger, func(), error) {
	if cfg.File == "" {
		return slog.New(tuiHandler), func() {}, nil
	}

	file, err := os.Create(cfg.File)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file %s: %w", cfg.File, err)
	}
	level, err := parseLevel(cfg.Level)
	if err != nil {
		file.Close()
		return nil, nil, err
	}
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(fanoutHandler{tuiHandler, fileHandler}), func() { file.Close() }, nil
}

func parseLevel(name string) (slog.Level, error) {
	switch name {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

func parseZoom(name string) (workspace.Zoom, error) {
	switch name {
	case "far":
		return workspace.ZoomFar, nil
	case "medium":
		return workspace.ZoomMedium, nil
	case "near":
		return workspace.ZoomNear, nil
	default:
		return 0, fmt.Errorf("unknown zoom level %q", name)
	}
}

// parseOpenRefs parses --open values. "kind:name#hash" selects the
// kind explicitly; bare names and name#hash forms default to terms.
func parseOpenRefs(values []string) ([]ref.Reference, error) {
	references := make([]ref.Reference, 0, len(values))
	for _, value := range values {
		var reference ref.Reference
		if strings.Contains(value, ":") {
			if err := reference.UnmarshalText([]byte(value)); err != nil {
				return nil, fmt.Errorf("invalid --open %q: %w", value, err)
			}
		} else {
			var err error
			reference, err = ref.ParseReference(ref.Term, value)
			if err != nil {
				return nil, fmt.Errorf("invalid --open %q: %w", value, err)
			}
		}
		references = append(references, reference)
	}
	return references, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `uniscope — interactive terminal UI for exploring a Unison codebase.

Connects to UCM's local HTTP API by default. Start UCM, note the API
URL it prints, and pass it with --api. Use --snapshot to browse a
JSONC snapshot file offline instead.

Keys: j/k move between open definitions, z cycles zoom, enter and
f1-9 fold documentation sections, x closes, / opens the fuzzy finder,
Tab switches to the namespace sidebar, q quits.

Usage:
  uniscope [flags]

Examples:
  # Browse a running UCM codebase
  uniscope --api http://127.0.0.1:5858/api

  # Open definitions at startup
  uniscope --api http://127.0.0.1:5858/api --open base.List.map --open base.List.filter

  # Browse a snapshot offline, sidebar rooted at base
  uniscope --snapshot codebase.jsonc --namespace base

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

// fanoutHandler is a slog.Handler that sends each record to multiple
// underlying handlers. A record is enabled if any sub-handler is
// enabled for that level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
