package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"vidsub/internal/pipeline"
	"vidsub/internal/services"
)

// renderSummary formats the end-of-run report: one row per video followed by
// the counts and the output directory.
func renderSummary(summary pipeline.Summary, colorize bool) string {
	var b strings.Builder
	if len(summary.Results) > 0 {
		rows := make([][]string, 0, len(summary.Results))
		for _, r := range summary.Results {
			rows = append(rows, []string{
				r.VideoName,
				r.Status(),
				subtitleLabel(r),
				formatElapsed(r.Duration),
				resultNote(r),
			})
		}
		b.WriteString(renderTable([]string{"Video", "Status", "Subtitles", "Time", "Notes"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}))
		b.WriteByte('\n')
	}

	kind := statusOK
	switch {
	case summary.Interrupted:
		kind = statusWarn
	case summary.Failed > 0:
		kind = statusError
	case summary.Degraded > 0:
		kind = statusWarn
	}
	counts := fmt.Sprintf("%d succeeded, %d failed", summary.Succeeded, summary.Failed)
	if summary.Degraded > 0 {
		counts += fmt.Sprintf(" (%d with placeholder transcripts)", summary.Degraded)
	}
	b.WriteString(renderStatusLine("Videos", kind, counts, colorize) + "\n")
	if summary.Interrupted {
		b.WriteString(renderStatusLine("Interrupted", statusWarn, fmt.Sprintf("%d video(s) not started", summary.Skipped), colorize) + "\n")
	}
	b.WriteString(renderStatusLine("Output", statusInfo, summary.OutputDir, colorize) + "\n")
	if summary.RunID != "" {
		b.WriteString(renderStatusLine("Run", statusInfo, shortID(summary.RunID)+" in "+formatElapsed(summary.Duration), colorize) + "\n")
	}
	return b.String()
}

func subtitleLabel(r pipeline.Result) string {
	if r.SubtitlePath == "" {
		return "-"
	}
	name := filepath.Base(r.SubtitlePath)
	if r.SubtitleSource != pipeline.SubtitleNone {
		name += " (" + string(r.SubtitleSource) + ")"
	}
	return name
}

func resultNote(r pipeline.Result) string {
	switch {
	case r.Err != nil:
		return services.Kind(r.Err) + ": " + firstLine(r.Err.Error())
	case r.TranscriptionCategory != services.CategoryNone:
		return "placeholder transcript (" + string(r.TranscriptionCategory) + ")"
	default:
		return ""
	}
}

func formatElapsed(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if line, _, ok := strings.Cut(s, "\n"); ok {
		s = line
	}
	const limit = 80
	if len([]rune(s)) > limit {
		s = string([]rune(s)[:limit-1]) + "…"
	}
	return s
}
