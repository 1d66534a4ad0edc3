package srt

import (
	"strings"
	"testing"
	"time"
)

func TestValidateRenderedDocument(t *testing.T) {
	report := Validate(Render(Segment("a。b。c", DefaultSlot)))
	if !report.OK() {
		t.Fatalf("unexpected issues: %v", report.Issues)
	}
	if report.Cues != 3 || report.First != 0 || report.Last != 9*time.Second {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestValidateFlagsProblems(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "  \n", "empty_subtitle_file"},
		{"bad index", "3\n00:00:00,000 --> 00:00:01,000\nx\n", "out of sequence"},
		{"inverted", "1\n00:00:02,000 --> 00:00:01,000\nx\n", "not before end"},
		{"no timing", "1\nhello\n", "missing timing line"},
		{"garbage timestamp", "1\nxx --> yy\nz\n", "invalid timestamp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Validate(tt.content)
			if report.OK() {
				t.Fatal("expected issues")
			}
			if !strings.Contains(strings.Join(report.Issues, ";"), tt.want) {
				t.Fatalf("expected %q in %v", tt.want, report.Issues)
			}
		})
	}
}
