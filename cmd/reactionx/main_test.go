package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/reaction-x/internal/config"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		flagDBPath, flagLogLevel, flagLogFile = "", "", ""
	})
}

func TestDBPath(t *testing.T) {
	resetFlags(t)
	cfg := config.DefaultDeviceConfig()

	if got := dbPath(cfg); got != cfg.Storage.Path {
		t.Errorf("dbPath() = %q, want %q", got, cfg.Storage.Path)
	}
	flagDBPath = "/tmp/other.db"
	if got := dbPath(cfg); got != "/tmp/other.db" {
		t.Errorf("dbPath() with --db = %q", got)
	}
}

func TestNewLogger(t *testing.T) {
	resetFlags(t)
	cfg := config.DefaultDeviceConfig()

	var sb strings.Builder
	logger, closeLog, err := newLogger(cfg, "test", &sb)
	if err != nil {
		t.Fatalf("newLogger() failed: %v", err)
	}
	defer closeLog()
	if logger.GetLevel() != log.InfoLevel {
		t.Errorf("level = %v, want info from config", logger.GetLevel())
	}

	flagLogLevel = "DEBUG"
	logger, _, err = newLogger(cfg, "test", &sb)
	if err != nil {
		t.Fatalf("newLogger() failed: %v", err)
	}
	if logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug from flag", logger.GetLevel())
	}

	flagLogLevel = "loud"
	if _, _, err := newLogger(cfg, "test", &sb); err == nil {
		t.Error("newLogger() accepted an unknown level")
	}
}

func TestNewLoggerFile(t *testing.T) {
	resetFlags(t)
	cfg := config.DefaultDeviceConfig()
	flagLogFile = filepath.Join(t.TempDir(), "reactionx.log")

	logger, closeLog, err := newLogger(cfg, "test", nil)
	if err != nil {
		t.Fatalf("newLogger() failed: %v", err)
	}
	logger.Info("round scored", "ms", 321)
	closeLog()

	data, err := os.ReadFile(flagLogFile)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "round scored") || !strings.Contains(string(data), "ms=321") {
		t.Errorf("log file = %q", data)
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23235":         "23235",
		"127.0.0.1:2222": "2222",
		"[::1]:22":       "22",
		"nonsense":       "nonsense",
	}
	for addr, want := range tests {
		if got := portOf(addr); got != want {
			t.Errorf("portOf(%q) = %q, want %q", addr, got, want)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"play", "serve", "replay", "history", "config"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}
