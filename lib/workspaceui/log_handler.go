// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package workspaceui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the model for display in the
// status bar.
type logRecordMsg struct {
	// Summary is the one-line message shown in the status bar.
	Summary string

	// Level is the slog level for styling (warn vs error).
	Level slog.Level
}

// logRecordFadeMsg clears the log message from the status bar and
// restores the help line.
type logRecordFadeMsg struct{}

// logRecordFadeDelay is how long log messages stay visible before the
// status bar fades back to the keyboard help line.
const logRecordFadeDelay = 5 * time.Second

// TUILogHandler is a slog.Handler that routes records into the
// running bubbletea program as messages, so warnings surface in the
// status bar instead of corrupting the alt screen. Records below the
// configured level, or arriving before SetProgram, are dropped.
//
// Handlers derived via WithAttrs/WithGroup share the same program
// pointer: one SetProgram call covers them all.
type TUILogHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
}

// NewTUILogHandler creates a handler delivering records at or above
// level. Call SetProgram once the tea.Program exists.
func NewTUILogHandler(level slog.Level) *TUILogHandler {
	return &TUILogHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram sets the program that receives log messages. Safe to
// call from any goroutine.
func (handler *TUILogHandler) SetProgram(program *tea.Program) {
	handler.program.Store(program)
}

func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record as "message (key=value, ...)" and sends
// it to the program.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}

	var attrParts []string
	for _, attr := range handler.attrs {
		attrParts = append(attrParts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
		return true
	})

	summary := record.Message
	if len(attrParts) > 0 {
		summary += " (" + strings.Join(attrParts, ", ") + ")"
	}

	program.Send(logRecordMsg{Summary: summary, Level: record.Level})
	return nil
}

// WithAttrs returns a derived handler with the attributes appended.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := make([]slog.Attr, 0, len(handler.attrs)+len(attrs))
	combined = append(combined, handler.attrs...)
	combined = append(combined, attrs...)
	return &TUILogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   combined,
	}
}

// WithGroup returns the handler unchanged apart from the group name
// being ignored: status bar summaries are flat one-liners, and the
// JSON file handler carries the structured form.
func (handler *TUILogHandler) WithGroup(string) slog.Handler {
	return handler
}
