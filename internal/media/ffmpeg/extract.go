package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"vidsub/internal/deps"
	"vidsub/internal/logging"
	"vidsub/internal/media/audio"
	"vidsub/internal/media/ffprobe"
	"vidsub/internal/services"
)

// Default executable names.
const (
	DefaultBinary        = "ffmpeg"
	DefaultFFprobeBinary = "ffprobe"
)

// Extractor runs ffmpeg to produce transcription-ready audio.
type Extractor struct {
	binary   string
	ffprobe  string
	language string
	logger   *slog.Logger
	probe    func(ctx context.Context, binary, path string) (ffprobe.Result, error)
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithFFprobe sets the ffprobe executable used for duration and stream probing.
func WithFFprobe(binary string) Option {
	return func(e *Extractor) {
		if strings.TrimSpace(binary) != "" {
			e.ffprobe = binary
		}
	}
}

// WithLanguage sets the preferred audio stream language.
func WithLanguage(language string) Option {
	return func(e *Extractor) { e.language = language }
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New constructs an Extractor for the given ffmpeg binary.
func New(binary string, opts ...Option) *Extractor {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	e := &Extractor{
		binary:  binary,
		ffprobe: DefaultFFprobeBinary,
		logger:  logging.NewNop(),
		probe:   ffprobe.Inspect,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Binary returns the ffmpeg executable the extractor runs.
func (e *Extractor) Binary() string { return e.binary }

// Check runs `ffmpeg -version` and returns its first line. A missing binary
// is a setup failure whose message carries an install hint.
func (e *Extractor) Check(ctx context.Context) (string, error) {
	line, err := deps.ProbeVersion(ctx, e.binary)
	if err != nil {
		return "", services.Wrap(services.ErrSetup, "setup", "check ffmpeg", deps.InstallHint(), err)
	}
	return line, nil
}

// Extract writes mono 16 kHz pcm_s16le WAV audio from video to dest.
func (e *Extractor) Extract(ctx context.Context, video, dest string, progress ProgressFunc) (audio.Info, error) {
	logger := logging.WithContext(ctx, e.logger)
	if _, err := os.Stat(video); err != nil {
		return audio.Info{}, services.Wrap(services.ErrExtraction, "extract", "stat video", "", err)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return audio.Info{}, services.Wrap(services.ErrIO, "extract", "ensure temp dir", "", err)
	}

	selection := audio.Selection{Index: -1}
	var probe ffprobe.Result
	if result, err := e.probe(ctx, e.ffprobe, video); err != nil {
		logger.Debug("ffprobe unavailable; progress percent unknown", logging.Error(err))
	} else {
		probe = result
		selection = audio.Select(result.AudioStreams(), e.language)
		logger.Debug("audio stream selected",
			logging.Int("stream_index", selection.Index),
			logging.String("reason", selection.Reason),
			logging.Duration("video_duration", probe.Duration()),
		)
	}

	args := buildArgs(video, dest, selection.MapArg())
	logger.Debug("running ffmpeg", logging.String("command", e.binary), logging.String("args", strings.Join(args, " ")))

	cmd := exec.CommandContext(ctx, e.binary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return audio.Info{}, services.Wrap(services.ErrExtraction, "extract", "ffmpeg pipe", "", err)
	}
	if err := cmd.Start(); err != nil {
		return audio.Info{}, services.Wrap(services.ErrExtraction, "extract", "start ffmpeg", "", err)
	}
	readProgress(stdout, probe.Duration(), progress)
	if err := cmd.Wait(); err != nil {
		_ = os.Remove(dest)
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = errors.Join(err, ctxErr)
		}
		return audio.Info{}, services.Wrap(services.ErrExtraction, "extract", "ffmpeg", strings.TrimSpace(stderr.String()), err)
	}

	info, err := audio.Verify(dest)
	if err != nil {
		return info, services.Wrap(services.ErrExtraction, "extract", "verify wav", "", err)
	}
	return info, nil
}

func buildArgs(video, dest, mapArg string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-nostdin",
		"-loglevel", "error",
		"-i", video,
		"-map", mapArg,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		"-f", "wav",
		"-progress", "pipe:1",
		"-nostats",
		dest,
	}
}
