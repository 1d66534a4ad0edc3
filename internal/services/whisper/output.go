package whisper

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// outputSet lists every path an engine may write for one request.
// whisper.cpp names files after -of; the Python engines use the audio stem
// and older whisper.cpp builds append the suffix to the full audio name.
type outputSet struct {
	dir   string
	stems []string
}

func (s *Service) outputCandidates(req Request) outputSet {
	audioBase := filepath.Base(req.AudioPath)
	stems := []string{req.Stem, stemOf(req.AudioPath), audioBase}
	return outputSet{dir: req.OutputDir, stems: slices.Compact(stems)}
}

func (o outputSet) paths(ext string) []string {
	out := make([]string, 0, len(o.stems))
	for _, stem := range o.stems {
		out = append(out, filepath.Join(o.dir, stem+ext))
	}
	return out
}

func (o outputSet) all() []string {
	var out []string
	for _, ext := range append([]string{".srt"}, sideExtensions...) {
		out = append(out, o.paths(ext)...)
	}
	return out
}

func (o outputSet) collect() Result {
	var result Result
	result.SRTPath = firstExisting(o.paths(".srt"))
	result.TextPath = firstExisting(o.paths(".txt"))
	for _, ext := range sideExtensions {
		for _, path := range o.paths(ext) {
			if exists(path) {
				result.SideFiles = append(result.SideFiles, path)
			}
		}
	}
	if result.TextPath != "" {
		if data, err := os.ReadFile(result.TextPath); err == nil {
			result.Text = strings.TrimSpace(string(data))
		}
	}
	if result.Text == "" {
		if jsonPath := firstExisting(o.paths(".json")); jsonPath != "" {
			if text, err := loadTranscriptText(jsonPath); err == nil {
				result.Text = text
			}
		}
	}
	return result
}

func firstExisting(paths []string) string {
	for _, path := range paths {
		if exists(path) {
			return path
		}
	}
	return ""
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Segment represents a transcribed segment from whisper JSON output.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type jsonPayload struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
}

func loadPayload(jsonPath string) (jsonPayload, error) {
	var payload jsonPayload
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return payload, err
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return payload, fmt.Errorf("parse whisper json: %w", err)
	}
	return payload, nil
}

// loadTranscriptText returns one line per non-empty segment, falling back
// to the top-level text field.
func loadTranscriptText(jsonPath string) (string, error) {
	payload, err := loadPayload(jsonPath)
	if err != nil {
		return "", err
	}
	var parts []string
	for _, seg := range payload.Segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return strings.TrimSpace(payload.Text), nil
	}
	return strings.Join(parts, "\n"), nil
}
