package srt

import (
	"fmt"
	"strings"
	"time"
)

// Report summarizes a subtitle document.
type Report struct {
	Cues   int
	First  time.Duration
	Last   time.Duration
	Issues []string
}

// OK reports whether validation found no issues.
func (r Report) OK() bool { return len(r.Issues) == 0 }

// Validate counts cues and checks that every timing line parses, that each
// cue starts before it ends, and that indices run consecutively from 1.
func Validate(content string) Report {
	var report Report
	blocks := splitBlocks(strings.ReplaceAll(content, "\r\n", "\n"))
	if len(blocks) == 0 {
		report.Issues = append(report.Issues, "empty_subtitle_file")
		return report
	}

	found := false
	for i, block := range blocks {
		report.Cues++
		lines := strings.Split(block, "\n")
		if len(lines) < 2 {
			report.Issues = append(report.Issues, fmt.Sprintf("cue %d: truncated block", i+1))
			continue
		}
		if strings.TrimSpace(lines[0]) != fmt.Sprint(i+1) {
			report.Issues = append(report.Issues, fmt.Sprintf("cue %d: index %q out of sequence", i+1, strings.TrimSpace(lines[0])))
		}
		startText, endText, ok := strings.Cut(lines[1], "-->")
		if !ok {
			report.Issues = append(report.Issues, fmt.Sprintf("cue %d: missing timing line", i+1))
			continue
		}
		start, errStart := ParseTimestamp(startText)
		end, errEnd := ParseTimestamp(endText)
		if errStart != nil || errEnd != nil {
			report.Issues = append(report.Issues, fmt.Sprintf("cue %d: invalid timestamp", i+1))
			continue
		}
		if start >= end {
			report.Issues = append(report.Issues, fmt.Sprintf("cue %d: start %s not before end %s", i+1, formatDuration(start), formatDuration(end)))
		}
		if !found || start < report.First {
			report.First = start
		}
		if end > report.Last {
			report.Last = end
		}
		found = true
	}
	if !found {
		report.Issues = append(report.Issues, "no_valid_timestamps")
	}
	return report
}
