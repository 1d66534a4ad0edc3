package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"vidsub/internal/config"
	"vidsub/internal/deps"
	"vidsub/internal/history"
	"vidsub/internal/language"
	"vidsub/internal/pipeline"
	"vidsub/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration, dependency and workspace status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			var lines []string
			section := func(title string) {
				if len(lines) > 0 {
					lines = append(lines, "")
				}
				lines = append(lines, renderSectionHeader(title, colorize)...)
			}

			section("Configuration")
			configLabel := ctx.configPath
			if configLabel == "" {
				configLabel = "defaults"
			}
			lines = append(lines,
				renderStatusLine("Config", statusInfo, configLabel, colorize),
				renderStatusLine("Engine", statusInfo, fmt.Sprintf("%s (model %s)", cfg.Transcription.Engine, modelLabel(cfg)), colorize),
				renderStatusLine("Language", statusInfo, language.DisplayName(cfg.Transcription.Language), colorize),
				renderStatusLine("Timeout", statusInfo, timeoutLabel(cfg), colorize),
			)

			section("Dependencies")
			statuses := preflight.CheckSystemDeps(cfg)
			for _, status := range statuses {
				lines = append(lines, dependencyStatusLine(status, colorize))
			}
			if !ffmpegAvailable(statuses) {
				lines = append(lines, renderStatusLine("Install", statusInfo, deps.InstallHint(), colorize))
			}

			section("Directories")
			for _, result := range preflight.RunAll(cfg) {
				lines = append(lines, directoryStatusLine(result, colorize))
			}

			section("Workspace")
			lines = append(lines, workspaceLines(cfg, colorize)...)

			section("History")
			lines = append(lines, historyStatusLine(cmd.Context(), ctx, colorize))

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}
}

func modelLabel(cfg *config.Config) string {
	if cfg.Transcription.FastModel != "" && cfg.Transcription.FastModel != cfg.Transcription.Model {
		return cfg.Transcription.FastModel + " then " + cfg.Transcription.Model
	}
	return cfg.Transcription.Model
}

func timeoutLabel(cfg *config.Config) string {
	if timeout := cfg.TranscriptionTimeout(); timeout > 0 {
		return timeout.String() + " per video"
	}
	return "none"
}

func ffmpegAvailable(statuses []deps.Status) bool {
	for _, s := range statuses {
		if s.Name == "FFmpeg" {
			return s.Available
		}
	}
	return false
}

func workspaceLines(cfg *config.Config, colorize bool) []string {
	var lines []string
	videos, err := pipeline.Discover(cfg.Paths.VideosDir)
	if err != nil {
		lines = append(lines, renderStatusLine("Videos", statusError, err.Error(), colorize))
	} else {
		kind := statusOK
		if len(videos) == 0 {
			kind = statusInfo
		}
		lines = append(lines, renderStatusLine("Videos", kind, fmt.Sprintf("%d pending in %s", len(videos), cfg.Paths.VideosDir), colorize))
	}

	// probe the lock without holding it
	probe := flock.New(cfg.LockPath())
	locked, err := probe.TryLock()
	switch {
	case err != nil:
		lines = append(lines, renderStatusLine("Lock", statusWarn, err.Error(), colorize))
	case locked:
		_ = probe.Unlock()
		lines = append(lines, renderStatusLine("Lock", statusOK, "Idle", colorize))
	default:
		lines = append(lines, renderStatusLine("Lock", statusWarn, "A run is in progress", colorize))
	}
	return lines
}

func historyStatusLine(ctx context.Context, cc *commandContext, colorize bool) string {
	store, err := cc.openHistory()
	if err != nil {
		return renderStatusLine("Last run", statusWarn, err.Error(), colorize)
	}
	if store == nil {
		return renderStatusLine("Last run", statusInfo, "History disabled", colorize)
	}
	defer store.Close()

	runs, err := store.ListRuns(ctx, 1)
	if err != nil {
		return renderStatusLine("Last run", statusWarn, err.Error(), colorize)
	}
	if len(runs) == 0 {
		return renderStatusLine("Last run", statusInfo, "No runs recorded", colorize)
	}
	run := runs[0]
	kind := statusOK
	switch {
	case run.Status == history.RunRunning || run.Status == history.RunInterrupted:
		kind = statusWarn
	case run.Failed > 0:
		kind = statusWarn
	}
	detail := fmt.Sprintf("%s %s, %d/%d succeeded (%s)",
		shortID(run.ID), run.Status, run.Succeeded, run.Total, run.StartedAt.Local().Format(time.DateTime))
	return renderStatusLine("Last run", kind, detail, colorize)
}
