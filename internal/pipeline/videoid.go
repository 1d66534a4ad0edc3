package pipeline

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var videoIDDisallowed = regexp.MustCompile(`[^a-zA-Z0-9\x{4e00}-\x{9fff}]`)

// VideoID derives the identifier that names every artifact for a video: the
// NFC-normalized base name without extension, with each rune outside ASCII
// letters, digits and the CJK Unified Ideographs block replaced by "_".
func VideoID(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return videoIDDisallowed.ReplaceAllString(norm.NFC.String(stem), "_")
}
