// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultIsSilent(t *testing.T) {
	if Get().Enabled(context.Background(), slog.LevelError) {
		t.Fatal("Get().Enabled(LevelError)\nhave true\nwant false")
	}
}

func TestSet(t *testing.T) {
	var buf bytes.Buffer
	Set(slog.New(slog.NewTextHandler(&buf, nil)))
	defer Set(nil)
	Get().Info("frame rendered", "n", 1)
	if s := buf.String(); !strings.Contains(s, "frame rendered") {
		t.Fatalf("Get().Info: output\nhave %q\nwant frame rendered", s)
	}
	Set(nil)
	if Get().Enabled(context.Background(), slog.LevelError) {
		t.Fatal("Set(nil): Enabled\nhave true\nwant false")
	}
}
