package whisper

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"vidsub/internal/logging"
	"vidsub/internal/services"
)

// Service provides whisper transcription capabilities.
type Service struct {
	cfg           Config
	logger        *slog.Logger
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// Request describes one transcription.
type Request struct {
	AudioPath string
	// OutputDir receives the engine's files; defaults to the audio directory.
	OutputDir string
	// Stem names the engine's output files where the engine allows it;
	// defaults to the audio file's base name.
	Stem string
}

// Result contains the outcome of a successful transcription.
type Result struct {
	Text  string
	Model string
	// Tool is the label written into the transcript header.
	Tool     string
	TextPath string
	// SRTPath is the engine-written subtitle file, empty when none was found.
	SRTPath string
	// SideFiles are engine outputs other than the SRT, safe to delete once
	// Text has been persisted.
	SideFiles []string
}

// NewService creates a transcription service with the given configuration.
func NewService(cfg Config, logger *slog.Logger) *Service {
	cfg.Engine = strings.TrimSpace(cfg.Engine)
	if cfg.Engine == "" {
		cfg.Engine = EngineWhisperCPP
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{cfg: cfg, logger: logger}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Engine returns the configured engine identifier.
func (s *Service) Engine() string { return s.cfg.Engine }

// Binary returns the executable the engine invokes.
func (s *Service) Binary() string {
	if s.cfg.Binary != "" {
		return s.cfg.Binary
	}
	switch s.cfg.Engine {
	case EngineWhisper:
		return WhisperCommand
	case EngineWhisperX:
		return UVXCommand
	default:
		return WhisperCPPCommand
	}
}

// Name returns the engine's display name.
func (s *Service) Name() string {
	switch s.cfg.Engine {
	case EngineWhisper:
		return "OpenAI Whisper"
	case EngineWhisperX:
		return "WhisperX"
	default:
		return "whisper.cpp"
	}
}

// Tool returns the transcript header label for model.
func (s *Service) Tool(model string) string {
	return fmt.Sprintf("%s (本地模型: %s)", s.Name(), model)
}

// Models returns the models in the order they are attempted.
func (s *Service) Models() []string {
	if s.cfg.FastModel != "" && s.cfg.FastModel != s.cfg.Model {
		return []string{s.cfg.FastModel, s.cfg.Model}
	}
	return []string{s.cfg.Model}
}

// ModelFile returns the ggml file whisper-cpp would load for model, or ""
// for engines that manage their own model downloads.
func (s *Service) ModelFile(model string) string {
	if s.cfg.Engine != EngineWhisperCPP {
		return ""
	}
	return s.modelFile(model)
}

// Transcribe runs the engine over the request's audio. Failures are
// *services.TranscriptionError values carrying their category.
func (s *Service) Transcribe(ctx context.Context, req Request) (Result, error) {
	logger := logging.WithContext(ctx, s.logger)
	if _, err := os.Stat(req.AudioPath); err != nil {
		return Result{}, services.NewTranscriptionError(
			services.Wrap(services.ErrTranscription, "transcribe", "stat audio", req.AudioPath, err))
	}
	if req.OutputDir == "" {
		req.OutputDir = filepath.Dir(req.AudioPath)
	}
	if req.Stem == "" {
		req.Stem = stemOf(req.AudioPath)
	}
	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return Result{}, services.NewTranscriptionError(
			services.Wrap(services.ErrTranscription, "transcribe", "ensure output dir", "", err))
	}

	models := s.Models()
	var lastErr error
	for i, model := range models {
		result, err := s.transcribeWith(ctx, model, req)
		if err == nil {
			if i > 0 {
				logger.Info("fallback model succeeded", logging.String("model", model))
			}
			return result, nil
		}
		lastErr = err
		if ctx.Err() != nil || i == len(models)-1 {
			break
		}
		logging.WarnWithContext(logger, "fast model failed; retrying with primary model",
			"transcription_fallback",
			logging.String("model", model),
			logging.String("fallback_model", models[i+1]),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the fast model is installed"),
			logging.String(logging.FieldImpact, "transcription takes longer"),
		)
	}
	return Result{}, lastErr
}

func (s *Service) transcribeWith(ctx context.Context, model string, req Request) (Result, error) {
	logger := logging.WithContext(ctx, s.logger)
	if file := s.ModelFile(model); file != "" {
		if _, err := os.Stat(file); err != nil {
			cause := services.ErrModelMissing
			if !errors.Is(err, fs.ErrNotExist) {
				cause = errors.Join(services.ErrModelMissing, err)
			}
			return Result{}, services.NewTranscriptionError(
				services.Wrap(services.ErrTranscription, "transcribe", "load model", file, cause))
		}
	}

	outputs := s.outputCandidates(req)
	removeAll(outputs.all())

	args := s.buildArgs(model, req.AudioPath, req.OutputDir, req.Stem)
	logger.Debug("running transcription engine",
		logging.String("command", s.Binary()),
		logging.String("args", strings.Join(args, " ")),
		logging.String("model", model),
	)
	if err := s.run(ctx, s.Binary(), args...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = errors.Join(err, ctxErr)
		}
		return Result{}, services.NewTranscriptionError(
			services.Wrap(services.ErrTranscription, "transcribe", s.Name(), "model "+model, err))
	}

	result := outputs.collect()
	result.Model = model
	result.Tool = s.Tool(model)
	if strings.TrimSpace(result.Text) == "" {
		removeAll(outputs.all())
		return Result{}, &services.TranscriptionError{
			Category: services.CategoryOther,
			Err:      services.Wrap(services.ErrTranscription, "transcribe", "read output", s.Name()+" produced no text", nil),
		}
	}
	return result, nil
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	// Torch 2.6 changed torch.load default to weights_only=true, breaking WhisperX/pyannote.
	if s.cfg.Engine != EngineWhisperCPP && os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		if tail := tailLines(string(output), 8); tail != "" {
			return fmt.Errorf("%s: %w: %s", name, err, tail)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func tailLines(output string, n int) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func removeAll(paths []string) {
	for _, path := range paths {
		_ = os.Remove(path)
	}
}
