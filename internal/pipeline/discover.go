package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// VideoExtensions is the container allow-list for discovery.
var VideoExtensions = []string{".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm", ".m4v"}

// IsVideo reports whether path has an admitted video extension.
func IsVideo(path string) bool {
	return slices.Contains(VideoExtensions, strings.ToLower(filepath.Ext(path)))
}

// Discover lists the video files directly inside dir, sorted by name.
// Subdirectories, other files and macOS "._" resource forks are ignored.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read videos dir: %w", err)
	}
	var videos []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "._") {
			continue
		}
		if IsVideo(entry.Name()) {
			videos = append(videos, filepath.Join(dir, entry.Name()))
		}
	}
	slices.Sort(videos)
	return videos, nil
}
