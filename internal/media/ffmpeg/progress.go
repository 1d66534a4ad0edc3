package ffmpeg

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"
)

// Progress is one ffmpeg progress report.
type Progress struct {
	// Percent is in [0,100], or -1 when the input duration is unknown.
	Percent float64
	OutTime time.Duration
	Speed   string
	Done    bool
}

// ProgressFunc receives progress reports while ffmpeg runs.
type ProgressFunc func(Progress)

// readProgress consumes key=value blocks from ffmpeg's -progress output and
// emits one report per "progress=" line.
func readProgress(r io.Reader, total time.Duration, fn ProgressFunc) {
	scanner := bufio.NewScanner(r)
	var current Progress
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}
		switch key {
		case "out_time_us", "out_time_ms":
			// both keys carry microseconds
			if us, err := strconv.ParseInt(value, 10, 64); err == nil && us >= 0 {
				current.OutTime = time.Duration(us) * time.Microsecond
			}
		case "out_time":
			if d, ok := parseClock(value); ok && current.OutTime == 0 {
				current.OutTime = d
			}
		case "speed":
			current.Speed = strings.TrimSpace(value)
		case "progress":
			current.Done = value == "end"
			current.Percent = percentOf(current.OutTime, total, current.Done)
			if fn != nil {
				fn(current)
			}
			current = Progress{}
		}
	}
	// drain so ffmpeg never blocks on a full pipe
	_, _ = io.Copy(io.Discard, r)
}

func percentOf(out, total time.Duration, done bool) float64 {
	if done {
		return 100
	}
	if total <= 0 {
		return -1
	}
	pct := float64(out) / float64(total) * 100
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

// parseClock parses HH:MM:SS.micro as printed in out_time.
func parseClock(value string) (time.Duration, bool) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, false
	}
	hours, errH := strconv.Atoi(parts[0])
	minutes, errM := strconv.Atoi(parts[1])
	seconds, errS := strconv.ParseFloat(parts[2], 64)
	if errH != nil || errM != nil || errS != nil || hours < 0 {
		return 0, false
	}
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds*float64(time.Second)), true
}
