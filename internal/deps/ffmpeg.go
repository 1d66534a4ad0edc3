package deps

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// FFmpegInstallHint returns installation instructions for the given GOOS.
func FFmpegInstallHint(goos string) string {
	switch goos {
	case "darwin":
		return "install ffmpeg with Homebrew: brew install ffmpeg"
	case "windows":
		return "install ffmpeg with winget install Gyan.FFmpeg or download a build from https://ffmpeg.org/download.html and add it to PATH"
	case "linux":
		return "install ffmpeg with your package manager, e.g. sudo apt install ffmpeg or sudo dnf install ffmpeg"
	default:
		return "download ffmpeg from https://ffmpeg.org/download.html and add it to PATH"
	}
}

// InstallHint returns the ffmpeg installation hint for the running platform.
func InstallHint() string {
	return FFmpegInstallHint(runtime.GOOS)
}

// ProbeVersion runs `<binary> -version` and returns the first output line.
// Tools that print nothing yield "unknown version".
func ProbeVersion(ctx context.Context, binary string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, binary, "-version").Output() //nolint:gosec
	if err != nil {
		return "", fmt.Errorf("%s -version: %w", binary, err)
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	if line = strings.TrimSpace(line); line == "" {
		return "unknown version", nil
	}
	return line, nil
}
