package services_test

import (
	"context"
	"testing"

	"vidsub/internal/services"
)

func TestContextAnnotations(t *testing.T) {
	ctx := services.WithRunID(
		services.WithStage(
			services.WithVideoID(context.Background(), "lecture_01"),
			"transcribe"),
		"run-123")

	checks := []struct {
		name   string
		lookup func(context.Context) (string, bool)
		want   string
	}{
		{"video", services.VideoIDFromContext, "lecture_01"},
		{"stage", services.StageFromContext, "transcribe"},
		{"run", services.RunIDFromContext, "run-123"},
	}
	for _, c := range checks {
		if got, ok := c.lookup(ctx); !ok || got != c.want {
			t.Errorf("%s = %q (%v), want %q", c.name, got, ok, c.want)
		}
	}
}

func TestBlankAnnotationsAreIgnored(t *testing.T) {
	base := context.Background()
	if services.WithVideoID(base, "") != base || services.WithStage(base, "") != base || services.WithRunID(base, "") != base {
		t.Fatal("expected blank values to return the original context")
	}
	if _, ok := services.StageFromContext(services.WithStage(base, "extract")); !ok {
		t.Fatal("expected stage to be set")
	}
	if _, ok := services.VideoIDFromContext(base); ok {
		t.Fatal("expected no video id on a bare context")
	}
}
