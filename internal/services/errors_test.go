package services_test

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"testing"

	"vidsub/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExtraction, "extract", "ffmpeg", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExtraction) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"extract", "ffmpeg", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestKind(t *testing.T) {
	cases := map[string]error{
		"":              nil,
		"setup":         services.Wrap(services.ErrSetup, "run", "", "ffmpeg missing", nil),
		"extraction":    services.Wrap(services.ErrExtraction, "extract", "", "", errors.New("x")),
		"format":        services.Wrap(services.ErrFormat, "subtitle", "", "empty body", nil),
		"transcription": &services.TranscriptionError{Category: services.CategoryOther},
		"unknown":       errors.New("plain"),
	}
	for want, err := range cases {
		if got := services.Kind(err); got != want {
			t.Fatalf("Kind(%v) = %q, want %q", err, got, want)
		}
	}
}

func TestClassifyTranscription(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want services.TranscriptionCategory
	}{
		{"nil", nil, services.CategoryNone},
		{"deadline", fmt.Errorf("whisper: %w", context.DeadlineExceeded), services.CategoryTimeout},
		{"canceled", context.Canceled, services.CategoryTimeout},
		{"binary missing", &exec.Error{Name: "whisper", Err: exec.ErrNotFound}, services.CategoryToolchain},
		{"model missing", fmt.Errorf("load: %w", services.ErrModelMissing), services.CategoryToolchain},
		{"input missing", fmt.Errorf("stat audio: %w", fs.ErrNotExist), services.CategoryMissingInput},
		{"other", errors.New("exit status 1"), services.CategoryOther},
		{"explicit", &services.TranscriptionError{Category: services.CategoryMissingInput, Err: errors.New("x")}, services.CategoryMissingInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.ClassifyTranscription(tt.err); got != tt.want {
				t.Fatalf("ClassifyTranscription = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTranscriptionErrorMatchesMarker(t *testing.T) {
	err := fmt.Errorf("video a: %w", services.NewTranscriptionError(context.DeadlineExceeded))
	if !errors.Is(err, services.ErrTranscription) {
		t.Fatalf("expected ErrTranscription marker, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected cause to be retained")
	}
	if got := services.TranscriptionCategoryOf(err); got != services.CategoryTimeout {
		t.Fatalf("category = %q, want timeout", got)
	}
	if got := services.TranscriptionCategoryOf(errors.New("unrelated")); got != services.CategoryNone {
		t.Fatalf("expected no category for unrelated error, got %q", got)
	}
}
