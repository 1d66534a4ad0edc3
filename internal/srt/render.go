package srt

import (
	"strconv"
	"strings"
)

// Render serializes entries as blank-line separated SRT blocks.
func Render(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(strconv.Itoa(e.Index))
		b.WriteByte('\n')
		b.WriteString(formatDuration(e.Start))
		b.WriteString(" --> ")
		b.WriteString(formatDuration(e.End))
		b.WriteByte('\n')
		b.WriteString(e.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}
