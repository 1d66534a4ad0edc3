package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the working root and the directories derived from it.
// Relative videos/temp/data directories resolve against Root.
type Paths struct {
	Root      string `toml:"root"`
	VideosDir string `toml:"videos_dir"`
	TempDir   string `toml:"temp_dir"`
	DataDir   string `toml:"data_dir"`
	LogDir    string `toml:"log_dir"`
	StateDir  string `toml:"state_dir"`
}

// FFmpeg names the ffmpeg and ffprobe executables used for audio extraction.
type FFmpeg struct {
	Binary       string `toml:"binary"`
	FFprobe      string `toml:"ffprobe_binary"`
	ShowProgress bool   `toml:"show_progress"`
}

// Transcription contains speech-to-text engine settings.
type Transcription struct {
	// Engine selects the CLI: "whisper-cpp" (whisper-cli), "whisper"
	// (openai-whisper) or "whisperx" (uvx whisperx).
	Engine string `toml:"engine"`
	// Binary overrides the executable the engine invokes.
	Binary string `toml:"binary"`
	Model  string `toml:"model"`
	// ModelPath is the ggml model file for whisper-cpp. When empty it is
	// derived from ModelDir and Model.
	ModelPath string `toml:"model_path"`
	ModelDir  string `toml:"model_dir"`
	// FastModel, when set, is tried first; the configured Model is the fallback.
	FastModel      string `toml:"fast_model"`
	Language       string `toml:"language"`
	Translate      bool   `toml:"translate"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Threads        int    `toml:"threads"`
}

// Subtitles contains SRT post-processing settings.
type Subtitles struct {
	SegmentSeconds float64 `toml:"segment_seconds"`
	DropCreditCues bool    `toml:"drop_credit_cues"`
	Validate       bool    `toml:"validate"`
}

// History controls the sqlite run ledger.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for vidsub.
//
// Configuration sections by subsystem:
//   - Paths: working root plus videos/temp/data, log and state directories
//   - FFmpeg: audio extraction binaries
//   - Transcription: whisper engine, model and timeout
//   - Subtitles: synthetic pacing and cue post-processing
//   - History: sqlite run ledger
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	FFmpeg        FFmpeg        `toml:"ffmpeg"`
	Transcription Transcription `toml:"transcription"`
	Subtitles     Subtitles     `toml:"subtitles"`
	History       History       `toml:"history"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, "", false, fmt.Errorf("parse config: %s", strict.String())
			}
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a batch run writes into.
// The temp directory is created lazily by the pipeline and removed after each run.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.VideosDir, c.Paths.DataDir, c.Paths.LogDir}
	if c.History.Enabled {
		dirs = append(dirs, filepath.Dir(c.History.Path))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable name.
func (c *Config) FFmpegBinary() string {
	if c == nil || strings.TrimSpace(c.FFmpeg.Binary) == "" {
		return defaultFFmpegBinary
	}
	return c.FFmpeg.Binary
}

// FFprobeBinary returns the ffprobe executable name used for duration probing.
func (c *Config) FFprobeBinary() string {
	if c == nil || strings.TrimSpace(c.FFmpeg.FFprobe) == "" {
		return defaultFFprobeBinary
	}
	return c.FFmpeg.FFprobe
}

// TranscriptionTimeout returns the per-call transcription bound, zero for none.
func (c *Config) TranscriptionTimeout() time.Duration {
	if c == nil || c.Transcription.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Transcription.TimeoutSeconds) * time.Second
}

// SegmentSlot returns the synthetic subtitle slot length.
func (c *Config) SegmentSlot() time.Duration {
	if c == nil || c.Subtitles.SegmentSeconds <= 0 {
		return time.Duration(defaultSegmentSeconds * float64(time.Second))
	}
	return time.Duration(c.Subtitles.SegmentSeconds * float64(time.Second))
}

// LockPath returns the workspace lock file guarding the working root.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.Root, lockFileName)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// resolveUnder expands value, joining relative values onto root.
func resolveUnder(root, value, fallback string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = fallback
	}
	if strings.HasPrefix(value, "~") || filepath.IsAbs(value) {
		return expandPath(value)
	}
	return expandPath(filepath.Join(root, value))
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() (string, error) {
	var buf strings.Builder
	encoder := toml.NewEncoder(&buf)
	encoder.SetIndentTables(true)
	if err := encoder.Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return buf.String(), nil
}
