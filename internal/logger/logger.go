// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package logger holds the logger shared by every package
// of the module.
package logger

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all records.
// Enabled returns false so callers skip formatting.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var ptr atomic.Pointer[slog.Logger]

func init() { ptr.Store(slog.New(nopHandler{})) }

// Set replaces the shared logger.
// A nil l restores the silent default.
func Set(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	ptr.Store(l)
}

// Get returns the shared logger.
func Get() *slog.Logger { return ptr.Load() }
