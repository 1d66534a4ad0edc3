package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFFmpeg()
	if err := c.normalizeTranscription(); err != nil {
		return err
	}
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("VIDSUB_ROOT"); ok && strings.TrimSpace(value) != "" {
		c.Paths.Root = value
	}
	if strings.TrimSpace(c.Paths.Root) == "" {
		c.Paths.Root = defaultRoot
	}
	var err error
	if c.Paths.Root, err = expandPath(c.Paths.Root); err != nil {
		return fmt.Errorf("paths.root: %w", err)
	}
	if c.Paths.VideosDir, err = resolveUnder(c.Paths.Root, c.Paths.VideosDir, defaultVideosDir); err != nil {
		return fmt.Errorf("paths.videos_dir: %w", err)
	}
	if c.Paths.TempDir, err = resolveUnder(c.Paths.Root, c.Paths.TempDir, defaultTempDir); err != nil {
		return fmt.Errorf("paths.temp_dir: %w", err)
	}
	if c.Paths.DataDir, err = resolveUnder(c.Paths.Root, c.Paths.DataDir, defaultDataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFFmpeg() {
	c.FFmpeg.Binary = strings.TrimSpace(c.FFmpeg.Binary)
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = defaultFFmpegBinary
	}
	c.FFmpeg.FFprobe = strings.TrimSpace(c.FFmpeg.FFprobe)
	if c.FFmpeg.FFprobe == "" {
		c.FFmpeg.FFprobe = defaultFFprobeBinary
	}
}

func (c *Config) normalizeTranscription() error {
	c.Transcription.Engine = strings.ToLower(strings.TrimSpace(c.Transcription.Engine))
	switch c.Transcription.Engine {
	case "":
		c.Transcription.Engine = defaultEngine
	case "whisper.cpp", "whispercpp", "whisper-cli":
		c.Transcription.Engine = EngineWhisperCPP
	case "openai-whisper":
		c.Transcription.Engine = EngineWhisper
	}
	c.Transcription.Binary = strings.TrimSpace(c.Transcription.Binary)
	if value, ok := os.LookupEnv("VIDSUB_WHISPER_MODEL"); ok && strings.TrimSpace(value) != "" {
		c.Transcription.Model = strings.TrimSpace(value)
	}
	c.Transcription.Model = strings.TrimSpace(c.Transcription.Model)
	if c.Transcription.Model == "" {
		c.Transcription.Model = defaultModel
	}
	c.Transcription.FastModel = strings.TrimSpace(c.Transcription.FastModel)
	c.Transcription.Language = strings.ToLower(strings.TrimSpace(c.Transcription.Language))
	if c.Transcription.Language == "auto" {
		c.Transcription.Language = ""
	}
	if strings.TrimSpace(c.Transcription.ModelDir) == "" {
		c.Transcription.ModelDir = defaultModelDir
	}
	var err error
	if c.Transcription.ModelDir, err = expandPath(c.Transcription.ModelDir); err != nil {
		return fmt.Errorf("transcription.model_dir: %w", err)
	}
	if strings.TrimSpace(c.Transcription.ModelPath) != "" {
		if c.Transcription.ModelPath, err = expandPath(c.Transcription.ModelPath); err != nil {
			return fmt.Errorf("transcription.model_path: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeHistory() error {
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = filepath.Join(c.Paths.StateDir, defaultHistoryFile)
	}
	var err error
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// ModelFile returns the ggml model file whisper-cpp loads for model.
func (c *Config) ModelFile(model string) string {
	if model == c.Transcription.Model && c.Transcription.ModelPath != "" {
		return c.Transcription.ModelPath
	}
	return filepath.Join(c.Transcription.ModelDir, "ggml-"+model+".bin")
}
