package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vidsub/internal/config"
	"vidsub/internal/deps"
	"vidsub/internal/logging"
	"vidsub/internal/media/ffmpeg"
	"vidsub/internal/pipeline"
	"vidsub/internal/preflight"
	"vidsub/internal/services"
	"vidsub/internal/services/whisper"
	"vidsub/internal/workspace"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Transcribe every video in the videos directory",
		Long: "Extract audio with ffmpeg, transcribe it with the configured whisper engine, " +
			"and write <id>.raw.txt and <id>.srt into the data directory for every video.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if dryRun {
				return printPlannedVideos(out, cfg)
			}

			lock, err := workspace.Acquire(cfg.LockPath())
			if err != nil {
				if errors.Is(err, workspace.ErrLocked) {
					return fmt.Errorf("%w (lock file %s)", err, cfg.LockPath())
				}
				return err
			}
			defer func() {
				if err := lock.Release(); err != nil {
					logger.Warn("workspace lock release failed", logging.Error(err))
				}
			}()

			extractor := ffmpeg.New(cfg.FFmpegBinary(),
				ffmpeg.WithFFprobe(cfg.FFprobeBinary()),
				ffmpeg.WithLanguage(cfg.Transcription.Language),
				ffmpeg.WithLogger(logger),
			)
			if err := checkSetup(cmd, cfg, extractor, logger); err != nil {
				return err
			}

			opts := []pipeline.Option{pipeline.WithLogger(logger)}
			store, err := ctx.openHistory()
			if err != nil {
				logging.WarnWithContext(logger, "history unavailable", "history_unavailable",
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check history.path or set [history] enabled = false"),
					logging.String(logging.FieldImpact, "this run will not be recorded"),
				)
			} else if store != nil {
				defer store.Close()
				opts = append(opts, pipeline.WithRecorder(store))
			}

			var bar *progressRenderer
			if cfg.FFmpeg.ShowProgress && !noProgress && shouldColorize(cmd.ErrOrStderr()) {
				bar = newProgressRenderer(cmd.ErrOrStderr())
				opts = append(opts, pipeline.WithProgress(bar.Handle))
			}

			transcriber := whisper.NewService(whisper.FromConfig(cfg), logger)
			driver := pipeline.New(cfg, extractor, transcriber, opts...)
			summary, err := driver.Run(cmd.Context())
			if bar != nil {
				bar.Finish()
			}
			if err != nil {
				return err
			}

			fmt.Fprint(out, renderSummary(summary, shouldColorize(out)))
			if summary.Interrupted {
				return &exitError{code: exitInterrupted, err: cmd.Context().Err()}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the videos that would be processed and exit")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the extraction progress bar")
	return cmd
}

// checkSetup fails when ffmpeg or the working directories are unusable. A
// missing transcription engine is only reported: each video then gets a
// placeholder transcript.
func checkSetup(cmd *cobra.Command, cfg *config.Config, extractor *ffmpeg.Extractor, logger *slog.Logger) error {
	version, err := extractor.Check(cmd.Context())
	if err != nil {
		return err
	}
	logger.Info("ffmpeg available", logging.String("version", version))

	if failed := preflight.Failed(preflight.RunAll(cfg)); len(failed) > 0 {
		details := make([]string, 0, len(failed))
		for _, r := range failed {
			details = append(details, r.Name+": "+r.Detail)
		}
		return services.Wrap(services.ErrSetup, "setup", "preflight", strings.Join(details, "; "), nil)
	}

	for _, status := range deps.Missing(preflight.CheckSystemDeps(cfg)) {
		logging.WarnWithContext(logger, "transcription dependency missing", "dependency_missing",
			logging.String("dependency", status.Name),
			logging.String("detail", status.Detail),
			logging.String(logging.FieldErrorHint, "run vidsub status for setup details"),
			logging.String(logging.FieldImpact, "videos will get placeholder transcripts"),
		)
	}
	return nil
}

func printPlannedVideos(out io.Writer, cfg *config.Config) error {
	videos, err := pipeline.Discover(cfg.Paths.VideosDir)
	if err != nil {
		return services.Wrap(services.ErrSetup, "setup", "discover", "", err)
	}
	if len(videos) == 0 {
		fmt.Fprintf(out, "No videos found in %s\n", cfg.Paths.VideosDir)
		return nil
	}
	layout := workspace.NewLayout(cfg)
	rows := make([][]string, 0, len(videos))
	for i, video := range videos {
		id := pipeline.VideoID(video)
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			filepath.Base(video),
			id,
			filepath.Base(layout.SubtitlePath(id)),
		})
	}
	fmt.Fprintln(out, renderTable([]string{"#", "Video", "ID", "Subtitle"}, rows, []columnAlignment{alignRight}))
	fmt.Fprintf(out, "%d video(s) would be processed\n", len(videos))
	return nil
}
