package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":        zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"DEBUG":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"error":   zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q) failed: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %s want %s", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected unknown level error")
	}
}

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "assist.log")
	logger, err := New("info", path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("command dispatched", zap.String("command", "stop"))
	logger.Debug("hidden at info level")
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log failed: %v", err)
	}
	text := string(raw)
	if !strings.Contains(text, `"command":"stop"`) {
		t.Fatalf("expected structured field in log, got %q", text)
	}
	if !strings.Contains(text, `"logger":"assist"`) {
		t.Fatalf("expected named logger, got %q", text)
	}
	if strings.Contains(text, "hidden at info level") {
		t.Fatalf("debug entry should be filtered at info level")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("chatty", ""); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
