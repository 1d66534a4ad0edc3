package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"vidsub/internal/fileutil"
	"vidsub/internal/logging"
	"vidsub/internal/media/ffmpeg"
	"vidsub/internal/services"
	"vidsub/internal/services/whisper"
	"vidsub/internal/srt"
	"vidsub/internal/transcript"
)

// transcriptOutcome is what the subtitle stage needs from transcription.
type transcriptOutcome struct {
	content string
	toolSRT string
}

func (d *Driver) processVideo(ctx context.Context, path string, index, total int) Result {
	started := d.now()
	id := VideoID(path)
	result := Result{
		VideoName: filepath.Base(path),
		VideoPath: path,
		VideoID:   id,
	}
	ctx = services.WithVideoID(ctx, id)
	logger := logging.WithContext(ctx, d.logger)
	logger.Info("video started",
		logging.String(logging.FieldEventType, "video_start"),
		logging.String("video", result.VideoName),
		logging.Int("position", index),
		logging.Int("total", total),
	)

	outcome, err := d.extractAndTranscribe(ctx, path, index, total, &result)
	if err != nil {
		result.Err = err
		result.Duration = d.now().Sub(started)
		logging.ErrorWithContext(logger, "video failed", "video_failed",
			logging.String("video", result.VideoName),
			logging.String("error_kind", services.Kind(err)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, hintFor(err)),
		)
		return result
	}

	subCtx := services.WithStage(ctx, StageSubtitles)
	d.emit(ProgressEvent{VideoID: id, Index: index, Total: total, Stage: StageSubtitles, Percent: -1})
	subtitlePath, source, err := d.resolveSubtitles(subCtx, id, outcome)
	result.Duration = d.now().Sub(started)
	if err != nil {
		result.Err = err
		logging.ErrorWithContext(logging.WithContext(subCtx, d.logger), "subtitle generation failed", "subtitle_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "inspect the transcript body in "+result.TranscriptPath),
		)
		return result
	}
	result.SubtitlePath = subtitlePath
	result.SubtitleSource = source
	d.emit(ProgressEvent{VideoID: id, Index: index, Total: total, Stage: StageSubtitles, Percent: 100, Done: true})

	logger.Info("video finished",
		logging.String(logging.FieldEventType, "video_complete"),
		logging.String("status", result.Status()),
		logging.String("transcript_file", filepath.Base(result.TranscriptPath)),
		logging.String("subtitle_file", filepath.Base(result.SubtitlePath)),
		logging.String("subtitle_source", string(source)),
		logging.Duration("elapsed", result.Duration),
	)
	return result
}

func (d *Driver) extractAndTranscribe(ctx context.Context, path string, index, total int, result *Result) (transcriptOutcome, error) {
	id := result.VideoID
	audioPath := d.layout.AudioPath(id)

	extractCtx := services.WithStage(ctx, StageExtract)
	extractLogger := logging.WithContext(extractCtx, d.logger)
	extractLogger.Info("extracting audio", logging.String(logging.FieldEventType, "stage_start"))
	sampler := logging.NewProgressSampler(25)
	info, err := d.extractor.Extract(extractCtx, path, audioPath, func(p ffmpeg.Progress) {
		d.emit(ProgressEvent{VideoID: id, Index: index, Total: total, Stage: StageExtract, Percent: p.Percent, Done: p.Done})
		if p.Percent >= 0 && sampler.ShouldLog(p.Percent, StageExtract) {
			extractLogger.Debug("extraction progress",
				logging.Float64(logging.FieldProgressPercent, p.Percent),
				logging.String("speed", p.Speed),
			)
		}
	})
	if err != nil {
		d.removeAudio(extractCtx, audioPath)
		if !errors.Is(err, services.ErrExtraction) {
			err = services.Wrap(services.ErrExtraction, StageExtract, "extract audio", "", err)
		}
		return transcriptOutcome{}, err
	}
	result.AudioBytes = audioSize(audioPath, info.SizeBytes)
	extractLogger.Info("audio extracted",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.Int64("audio_bytes", result.AudioBytes),
		logging.Duration("audio_duration", info.Duration),
	)
	if result.AudioBytes > LargeAudioBytes {
		logging.WarnWithContext(extractLogger, "large audio file", "large_audio",
			logging.Int64("audio_bytes", result.AudioBytes),
			logging.String(logging.FieldErrorHint, "set transcription.fast_model or transcription.timeout_seconds"),
			logging.String(logging.FieldImpact, "transcription may be slow or exhaust memory"),
		)
	}

	return d.transcribe(services.WithStage(ctx, StageTranscribe), audioPath, index, total, result)
}

func (d *Driver) transcribe(ctx context.Context, audioPath string, index, total int, result *Result) (transcriptOutcome, error) {
	id := result.VideoID
	logger := logging.WithContext(ctx, d.logger)
	logger.Info("transcribing", logging.String(logging.FieldEventType, "stage_start"))
	d.emit(ProgressEvent{VideoID: id, Index: index, Total: total, Stage: StageTranscribe, Percent: -1})

	callCtx := ctx
	if timeout := d.cfg.TranscriptionTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	res, err := d.transcriber.Transcribe(callCtx, whisper.Request{
		AudioPath: audioPath,
		OutputDir: d.layout.Temp,
		Stem:      id,
	})

	doc := transcript.Document{
		VideoID:    id,
		CreatedAt:  d.now(),
		AudioBytes: result.AudioBytes,
	}
	var outcome transcriptOutcome
	if err != nil {
		category := services.ClassifyTranscription(err)
		result.TranscriptionCategory = category
		doc.Tool = d.transcriber.Name()
		doc.Body = transcript.Placeholder(d.transcriber.Name(), category, audioPath, err)
		logging.WarnWithContext(logger, "transcription failed; writing placeholder transcript", "transcription_failed",
			logging.String("category", string(category)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, categoryHint(category)),
			logging.String(logging.FieldImpact, "transcript and subtitles contain a placeholder"),
		)
	} else {
		result.Model = res.Model
		doc.Tool = res.Tool
		doc.Body = res.Text
		outcome.toolSRT = res.SRTPath
	}

	content := doc.Render()
	transcriptPath := d.layout.TranscriptPath(id)
	if writeErr := fileutil.WriteFileAtomic(transcriptPath, []byte(content), 0o644); writeErr != nil {
		d.removeAudio(ctx, audioPath)
		return transcriptOutcome{}, services.Wrap(services.ErrIO, StageTranscribe, "write transcript", transcriptPath, writeErr)
	}
	result.TranscriptPath = transcriptPath
	outcome.content = content

	d.removeAudio(ctx, audioPath)
	for _, side := range res.SideFiles {
		d.removeFile(ctx, side)
	}
	logger.Info("transcript written",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.String("transcript_file", filepath.Base(transcriptPath)),
		logging.String("engine", doc.Tool),
	)
	return outcome, nil
}

func (d *Driver) resolveSubtitles(ctx context.Context, id string, outcome transcriptOutcome) (string, SubtitleSource, error) {
	logger := logging.WithContext(ctx, d.logger)
	dest := d.layout.SubtitlePath(id)

	content, source := "", SubtitleNone
	if outcome.toolSRT != "" {
		cleaned, ok := d.cleanToolSubtitles(ctx, outcome.toolSRT)
		d.removeFile(ctx, outcome.toolSRT)
		if ok {
			content, source = cleaned, SubtitleFromTool
		}
	}
	if source == SubtitleNone {
		entries, err := srt.FromTranscript(outcome.content, d.cfg.SegmentSlot())
		if err != nil {
			return "", SubtitleNone, err
		}
		content, source = srt.Render(entries), SubtitleSynthesized
	}

	if d.cfg.Subtitles.Validate {
		if report := srt.Validate(content); !report.OK() {
			logging.WarnWithContext(logger, "subtitle validation issues", "subtitle_validation",
				logging.Int("cue_count", report.Cues),
				logging.String("issues", strings.Join(report.Issues, "; ")),
				logging.String(logging.FieldErrorHint, "review the subtitle timing manually"),
				logging.String(logging.FieldImpact, "players may reject or mistime cues"),
			)
		}
	}
	if err := fileutil.WriteFileAtomic(dest, []byte(content), 0o644); err != nil {
		return "", SubtitleNone, services.Wrap(services.ErrIO, StageSubtitles, "write subtitles", dest, err)
	}
	return dest, source, nil
}

// cleanToolSubtitles returns the engine's SRT with inline annotations (and
// optionally credit cues) removed. ok is false when nothing usable remains.
func (d *Driver) cleanToolSubtitles(ctx context.Context, path string) (string, bool) {
	logger := logging.WithContext(ctx, d.logger)
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("engine subtitle unreadable; synthesizing instead", logging.Error(err))
		return "", false
	}
	cleaned := srt.CleanAnnotations(string(data))
	if d.cfg.Subtitles.DropCreditCues {
		var stats srt.CreditStats
		cleaned, stats = srt.DropCreditCues(cleaned)
		if stats.RemovedCues > 0 {
			logger.Info("credit cues removed", logging.Int("removed", stats.RemovedCues))
		}
	}
	if strings.TrimSpace(cleaned) == "" {
		logger.Warn("engine subtitle empty after cleaning; synthesizing instead")
		return "", false
	}
	return cleaned, true
}

func (d *Driver) removeAudio(ctx context.Context, audioPath string) {
	for _, path := range fileutil.SiblingsWithExt(audioPath, whisper.AudioExtensions) {
		d.removeFile(ctx, path)
	}
}

// removeFile deletes path, logging failures at WARN.
func (d *Driver) removeFile(ctx context.Context, path string) {
	if _, err := fileutil.RemoveIfExists(path); err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, d.logger), "cleanup failed", "cleanup_failed",
			logging.String("file", path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete the file manually"),
			logging.String(logging.FieldImpact, "intermediate file remains on disk"),
		)
	}
}

func audioSize(path string, reported int64) int64 {
	if info, err := os.Stat(path); err == nil {
		return info.Size()
	}
	return reported
}

func categoryHint(category services.TranscriptionCategory) string {
	switch category {
	case services.CategoryToolchain:
		return "install the transcription engine and model; run vidsub status"
	case services.CategoryMissingInput:
		return "audio file disappeared before transcription"
	case services.CategoryTimeout:
		return "raise transcription.timeout_seconds or use a smaller model"
	default:
		return "inspect the engine output in the log"
	}
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "run was interrupted; rerun to process this video"
	case errors.Is(err, services.ErrExtraction):
		return "check the video plays and contains an audio stream"
	case errors.Is(err, services.ErrIO):
		return "check permissions on the data directory"
	default:
		return "see error details"
	}
}
