package srt

import (
	"regexp"
	"strings"
	"time"

	"vidsub/internal/services"
	"vidsub/internal/transcript"
)

// DefaultSlot is the synthetic duration assigned to each transcript segment.
const DefaultSlot = 3 * time.Second

// Entry is one numbered subtitle cue.
type Entry struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

var sentenceDelimiters = regexp.MustCompile(`[。！？\n]+`)

// Segment splits body on sentence punctuation and newlines, drops empty
// pieces, and paces the rest with consecutive slots starting at zero. Slots
// shorter than a millisecond fall back to DefaultSlot.
func Segment(body string, slot time.Duration) []Entry {
	if slot < time.Millisecond {
		slot = DefaultSlot
	}
	pieces := sentenceDelimiters.Split(body, -1)
	entries := make([]Entry, 0, len(pieces))
	for _, piece := range pieces {
		text := strings.TrimSpace(piece)
		if text == "" {
			continue
		}
		i := time.Duration(len(entries))
		entries = append(entries, Entry{
			Index: len(entries) + 1,
			Start: i * slot,
			End:   (i + 1) * slot,
			Text:  text,
		})
	}
	return entries
}

// FromTranscript extracts the body of a transcript document and segments it.
func FromTranscript(content string, slot time.Duration) ([]Entry, error) {
	body, err := transcript.Body(content)
	if err != nil {
		return nil, err
	}
	entries := Segment(body, slot)
	if len(entries) == 0 {
		return nil, services.Wrap(services.ErrFormat, "subtitle", "segment", "transcript body has no text segments", nil)
	}
	return entries, nil
}
