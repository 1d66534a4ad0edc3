package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"vidsub/internal/config"
	"vidsub/internal/history"
	"vidsub/internal/logging"
	"vidsub/internal/services"
	"vidsub/internal/workspace"
)

// LargeAudioBytes is the extracted audio size above which a warning is logged.
const LargeAudioBytes = 100 * 1024 * 1024

// Driver runs the batch.
type Driver struct {
	cfg         *config.Config
	layout      workspace.Layout
	extractor   Extractor
	transcriber Transcriber
	recorder    Recorder
	logger      *slog.Logger
	progress    ProgressFunc
	now         func() time.Time
	newRunID    func() string
}

// Option customizes a Driver.
type Option func(*Driver)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithRecorder records runs and per-video results.
func WithRecorder(recorder Recorder) Option {
	return func(d *Driver) { d.recorder = recorder }
}

// WithProgress receives stage progress events.
func WithProgress(fn ProgressFunc) Option {
	return func(d *Driver) { d.progress = fn }
}

// WithClock overrides the time source used for transcript headers.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) {
		if now != nil {
			d.now = now
		}
	}
}

// New constructs a driver for the configured working root.
func New(cfg *config.Config, extractor Extractor, transcriber Transcriber, opts ...Option) *Driver {
	d := &Driver{
		cfg:         cfg,
		layout:      workspace.NewLayout(cfg),
		extractor:   extractor,
		transcriber: transcriber,
		logger:      logging.NewNop(),
		now:         time.Now,
		newRunID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = logging.NewComponentLogger(d.logger, "pipeline")
	return d
}

// Layout returns the working root layout.
func (d *Driver) Layout() workspace.Layout { return d.layout }

// Discover lists the videos the next Run would process.
func (d *Driver) Discover() ([]string, error) {
	if err := d.layout.Ensure(); err != nil {
		return nil, services.Wrap(services.ErrSetup, "setup", "prepare working root", "", err)
	}
	videos, err := Discover(d.layout.Videos)
	if err != nil {
		return nil, services.Wrap(services.ErrSetup, "setup", "discover", "", err)
	}
	return videos, nil
}

// Run processes every discovered video in order. The returned error is
// non-nil only for setup failures; per-video failures are in the summary.
// Cancelling ctx stops the batch after the video in flight.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	if d.extractor == nil || d.transcriber == nil {
		return Summary{}, services.Wrap(services.ErrSetup, "setup", "driver", "extractor and transcriber are required", nil)
	}
	runID := d.newRunID()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, d.logger)

	summary := Summary{RunID: runID, OutputDir: d.layout.Data, StartedAt: d.now()}
	videos, err := d.Discover()
	if err != nil {
		return summary, err
	}

	recorder := d.beginRun(ctx, logger, runID, len(videos))
	logger.Info("batch started",
		logging.String(logging.FieldEventType, "batch_start"),
		logging.Int("video_count", len(videos)),
		logging.String("videos_dir", d.layout.Videos),
	)
	if len(videos) == 0 {
		logger.Info("no videos found", logging.String("videos_dir", d.layout.Videos))
	}

	for i, video := range videos {
		if ctx.Err() != nil {
			summary.Interrupted = true
			summary.Skipped = len(videos) - i
			break
		}
		result := d.processVideo(ctx, video, i+1, len(videos))
		if ctx.Err() != nil && result.Err == nil {
			result.Err = fmt.Errorf("interrupted: %w", ctx.Err())
		}
		summary.add(result)
		if recorder != nil {
			if err := recorder.RecordResult(context.WithoutCancel(ctx), historyEntry(runID, result)); err != nil {
				logger.Warn("history record failed", logging.Error(err))
			}
		}
		if errors.Is(result.Err, context.Canceled) {
			summary.Interrupted = true
		}
	}

	if err := d.layout.RemoveTemp(); err != nil {
		logging.WarnWithContext(logger, "temp directory cleanup failed", "cleanup_failed",
			logging.String("temp_dir", d.layout.Temp),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete the directory manually"),
			logging.String(logging.FieldImpact, "intermediate audio remains on disk"),
		)
	}

	summary.Duration = d.now().Sub(summary.StartedAt)
	d.finishRun(ctx, logger, recorder, summary)
	logger.Info("batch finished",
		logging.String(logging.FieldEventType, "batch_complete"),
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("degraded", summary.Degraded),
		logging.Int("failed", summary.Failed),
		logging.Int("skipped", summary.Skipped),
		logging.String("output_dir", summary.OutputDir),
		logging.Duration("elapsed", summary.Duration),
	)
	return summary, nil
}

// ProcessVideo runs one video through every stage.
func (d *Driver) ProcessVideo(ctx context.Context, path string) Result {
	if err := d.layout.Ensure(); err != nil {
		return Result{
			VideoName: filepath.Base(path),
			VideoPath: path,
			VideoID:   VideoID(path),
			Err:       services.Wrap(services.ErrIO, "setup", "prepare working root", "", err),
		}
	}
	return d.processVideo(ctx, path, 1, 1)
}

func (d *Driver) beginRun(ctx context.Context, logger *slog.Logger, runID string, total int) Recorder {
	if d.recorder == nil {
		return nil
	}
	run := history.Run{
		ID:        runID,
		StartedAt: d.now(),
		Root:      d.layout.Root,
		Engine:    d.cfg.Transcription.Engine,
		Model:     d.cfg.Transcription.Model,
		Total:     total,
	}
	if err := d.recorder.BeginRun(ctx, run); err != nil {
		logging.WarnWithContext(logger, "history unavailable for this run", "history_unavailable",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check history.path or disable [history]"),
			logging.String(logging.FieldImpact, "run will not appear in vidsub history"),
		)
		return nil
	}
	return d.recorder
}

func (d *Driver) finishRun(ctx context.Context, logger *slog.Logger, recorder Recorder, summary Summary) {
	if recorder == nil {
		return
	}
	status := history.RunCompleted
	if summary.Interrupted {
		status = history.RunInterrupted
	}
	// the run context may already be cancelled
	ctx = context.WithoutCancel(ctx)
	if err := recorder.FinishRun(ctx, summary.RunID, status, summary.Succeeded, summary.Failed); err != nil {
		logger.Warn("history finish failed", logging.Error(err))
	}
}

func historyEntry(runID string, r Result) history.Entry {
	entry := history.Entry{
		RunID:          runID,
		VideoName:      r.VideoName,
		VideoID:        r.VideoID,
		Status:         r.Status(),
		TranscriptPath: r.TranscriptPath,
		SubtitlePath:   r.SubtitlePath,
		SubtitleSource: string(r.SubtitleSource),
		Category:       string(r.TranscriptionCategory),
		Duration:       r.Duration,
	}
	if r.Err != nil {
		entry.ErrorKind = services.Kind(r.Err)
		entry.ErrorMessage = r.Err.Error()
	}
	return entry
}

func (d *Driver) emit(event ProgressEvent) {
	if d.progress != nil {
		d.progress(event)
	}
}
