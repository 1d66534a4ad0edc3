package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestNewTeeHandlerCollapses(t *testing.T) {
	if _, ok := newTeeHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler when every member is nil")
	}
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := newTeeHandler(nil, inner, nil); h != inner {
		t.Fatal("expected single member to be returned unwrapped")
	}
}

func TestTeeHandlerRoutesByLevel(t *testing.T) {
	var info, warn bytes.Buffer
	h := newTeeHandler(
		slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug to be disabled")
	}

	logger := slog.New(h)
	logger.Info("extracting audio")
	if info.Len() == 0 {
		t.Fatal("expected info output")
	}
	if warn.Len() != 0 {
		t.Fatalf("expected warn member to skip info record, got %s", warn.String())
	}

	logger.Warn("cleanup failed")
	if !bytes.Contains(warn.Bytes(), []byte("cleanup failed")) {
		t.Fatalf("expected warn output, got %s", warn.String())
	}
}

func TestTeeHandlerPropagatesAttrsAndGroups(t *testing.T) {
	var a, b bytes.Buffer
	h := newTeeHandler(slog.NewJSONHandler(&a, nil), slog.NewJSONHandler(&b, nil))
	logger := slog.New(h.WithAttrs([]slog.Attr{slog.String(FieldVideoID, "talk")}).WithGroup("ffmpeg"))
	logger.Info("progress", slog.Int("frame", 10))

	for name, buf := range map[string]*bytes.Buffer{"a": &a, "b": &b} {
		if !bytes.Contains(buf.Bytes(), []byte(`"video_id":"talk"`)) {
			t.Fatalf("%s: expected video_id attribute, got %s", name, buf.String())
		}
		if !bytes.Contains(buf.Bytes(), []byte(`"ffmpeg":{"frame":10}`)) {
			t.Fatalf("%s: expected grouped attribute, got %s", name, buf.String())
		}
	}
}
