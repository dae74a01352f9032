package vstage

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestLogger_DefaultIsSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	if l.Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger should discard all levels")
	}
}

func TestSetLogger_RoundTrip(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, nil))
	SetLogger(custom)

	if Logger() != custom {
		t.Error("Logger() did not return the configured logger")
	}

	Logger().Info("stage test message")
	if buf.Len() == 0 {
		t.Error("configured logger produced no output")
	}
}

func TestSetLogger_NilRestoresSilent(t *testing.T) {
	SetLogger(slog.Default())
	SetLogger(nil)

	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("nil logger should restore the silent default")
	}
}
