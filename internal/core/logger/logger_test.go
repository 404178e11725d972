package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewWithRotate_WritesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	l, cleanup := NewWithRotate("info", true, FileRotate{
		Enable:    true,
		Filename:  file,
		MaxSizeMB: 1,
	})
	l.Info("session created", zap.Int64("session_id", 7))
	l.Debug("below level")
	cleanup()

	b, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	out := string(b)
	if !strings.Contains(out, `"session_id":7`) {
		t.Errorf("expected json field in %q", out)
	}
	if strings.Contains(out, "below level") {
		t.Errorf("debug line should be filtered at info level")
	}
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	l, cleanup := New("nonsense", true)
	defer cleanup()
	if !l.Core().Enabled(zapcore.InfoLevel) || l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("expected info level")
	}
}

func TestToWriter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := ToWriter(zap.New(core), zapcore.WarnLevel)
	if _, err := w.Write([]byte("gin debug line\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries = %d", len(entries))
	}
	if entries[0].Message != "gin debug line" || entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("entry = %+v", entries[0])
	}
}
