package config

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.Root == "" {
		return errors.New("paths.root must be set")
	}
	dirs := map[string]string{
		"paths.videos_dir": c.Paths.VideosDir,
		"paths.temp_dir":   c.Paths.TempDir,
		"paths.data_dir":   c.Paths.DataDir,
	}
	seen := make(map[string]string, len(dirs))
	for _, key := range []string{"paths.videos_dir", "paths.temp_dir", "paths.data_dir"} {
		dir := filepath.Clean(dirs[key])
		if other, ok := seen[dir]; ok {
			return fmt.Errorf("%s and %s must be different directories", other, key)
		}
		seen[dir] = key
	}
	return nil
}

func (c *Config) validateTranscription() error {
	switch c.Transcription.Engine {
	case EngineWhisperCPP, EngineWhisper, EngineWhisperX:
	default:
		return fmt.Errorf("transcription.engine: unsupported value %q (want %s, %s or %s)",
			c.Transcription.Engine, EngineWhisperCPP, EngineWhisper, EngineWhisperX)
	}
	if c.Transcription.TimeoutSeconds < 0 {
		return errors.New("transcription.timeout_seconds must be zero or positive")
	}
	if c.Transcription.Threads < 0 {
		return errors.New("transcription.threads must be zero or positive")
	}
	if c.Transcription.FastModel != "" && c.Transcription.FastModel == c.Transcription.Model {
		return errors.New("transcription.fast_model must differ from transcription.model")
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	// Cue bounds render in whole milliseconds.
	if c.Subtitles.SegmentSeconds < 0.001 {
		return errors.New("subtitles.segment_seconds must be at least 0.001")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
