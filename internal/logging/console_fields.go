package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// summaryLimit caps the attributes shown under an INFO/WARN/ERROR header.
const summaryLimit = 8

// summaryOrder lists keys shown first, in this order, when present.
var summaryOrder = []string{
	FieldEventType,
	FieldError,
	FieldErrorHint,
	FieldImpact,
	"video",
	"status",
	"category",
	"subtitle_source",
	FieldProgressPercent,
	"engine",
	"model",
	"audio_bytes",
	"audio_duration",
	"cue_count",
	"elapsed",
	"succeeded",
	"degraded",
	"failed",
	"output_dir",
}

// summarize picks and formats the attributes worth showing at INFO and above.
// hidden counts the ones left out.
func summarize(fields []field, limit int) (lines []string, hidden int) {
	picked := make([]bool, len(fields))
	take := func(i int) {
		picked[i] = true
		f := fields[i]
		if verboseOnly(f.key) {
			hidden++
			return
		}
		value := displayValue(f.key, f.value)
		if len(value) > 120 && f.key != FieldError && f.key != FieldErrorHint {
			hidden++
			return
		}
		if limit > 0 && len(lines) >= limit {
			hidden++
			return
		}
		lines = append(lines, labelFor(f.key)+": "+value)
	}
	for _, key := range summaryOrder {
		for i, f := range fields {
			if !picked[i] && f.key == key {
				take(i)
				break
			}
		}
	}
	for i := range fields {
		if !picked[i] {
			take(i)
		}
	}
	return lines, hidden
}

// verboseOnly reports keys that are only useful when debugging.
func verboseOnly(key string) bool {
	switch key {
	case FieldRunID, "args", "stderr", "command":
		return true
	case "output_dir", "videos_dir":
		return false
	}
	return strings.HasSuffix(key, "_path") || strings.HasSuffix(key, "_dir")
}

func labelFor(key string) string {
	switch key {
	case FieldEventType:
		return "Event"
	case FieldErrorHint:
		return "Hint"
	case FieldProgressPercent:
		return "Progress"
	case "audio_bytes":
		return "Audio Size"
	case "cue_count":
		return "Cues"
	}
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' || r == '.' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// displayValue formats a value for humans, using the key to spot sizes,
// durations and percentages.
func displayValue(key string, v slog.Value) string {
	switch v.Kind() {
	case slog.KindInt64:
		if strings.HasSuffix(key, "_bytes") {
			return humanBytes(v.Int64())
		}
	case slog.KindDuration:
		d := v.Duration()
		if d < time.Second {
			return d.Round(time.Millisecond).String()
		}
		return d.Round(time.Second).String()
	case slog.KindFloat64:
		if strings.HasSuffix(key, "_percent") {
			return fmt.Sprintf("%.1f%%", v.Float64())
		}
	case slog.KindBool:
		if v.Bool() {
			return "yes"
		}
		return "no"
	}
	s := plainValue(v)
	if key == FieldError && len(s) > 200 {
		s = s[:200] + "…"
	}
	return s
}

// plainValue renders v without quoting.
func plainValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindTime:
		return v.Time().Local().Format(time.DateTime)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return fmt.Sprint(v.Any())
	default:
		return v.String()
	}
}

// quotedValue renders v for debug output, quoting strings that contain
// spaces or are empty.
func quotedValue(v slog.Value) string {
	s := plainValue(v)
	if v.Kind() == slog.KindString || v.Kind() == slog.KindAny {
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			return strconv.Quote(s)
		}
	}
	return s
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func clock(ts time.Time) string {
	if ts.IsZero() {
		ts = time.Now()
	}
	return ts.Local().Format(time.TimeOnly)
}
