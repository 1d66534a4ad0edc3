package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"vidsub/internal/config"
)

// Output file suffixes in the data directory.
const (
	TranscriptSuffix = ".raw.txt"
	SubtitleSuffix   = ".srt"
	AudioSuffix      = ".wav"
)

// Layout resolves per-video paths under a working root.
type Layout struct {
	Root   string
	Videos string
	Temp   string
	Data   string
}

// NewLayout builds the layout from normalized configuration.
func NewLayout(cfg *config.Config) Layout {
	return Layout{
		Root:   cfg.Paths.Root,
		Videos: cfg.Paths.VideosDir,
		Temp:   cfg.Paths.TempDir,
		Data:   cfg.Paths.DataDir,
	}
}

// AudioPath is the extracted WAV for a video.
func (l Layout) AudioPath(videoID string) string {
	return filepath.Join(l.Temp, videoID+AudioSuffix)
}

// TranscriptPath is the durable transcript document for a video.
func (l Layout) TranscriptPath(videoID string) string {
	return filepath.Join(l.Data, videoID+TranscriptSuffix)
}

// SubtitlePath is the durable SRT document for a video.
func (l Layout) SubtitlePath(videoID string) string {
	return filepath.Join(l.Data, videoID+SubtitleSuffix)
}

// Ensure creates the videos, temp and data directories.
func (l Layout) Ensure() error {
	for _, dir := range []string{l.Videos, l.Temp, l.Data} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// RemoveTemp deletes the temp directory and everything in it.
func (l Layout) RemoveTemp() error {
	return os.RemoveAll(l.Temp)
}
