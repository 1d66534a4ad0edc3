package pipeline

import (
	"context"
	"errors"
	"time"

	"vidsub/internal/history"
	"vidsub/internal/media/audio"
	"vidsub/internal/media/ffmpeg"
	"vidsub/internal/services"
	"vidsub/internal/services/whisper"
)

// Extractor produces transcription-ready audio from a video.
type Extractor interface {
	Extract(ctx context.Context, video, dest string, progress ffmpeg.ProgressFunc) (audio.Info, error)
}

// Transcriber converts audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, req whisper.Request) (whisper.Result, error)
	// Name labels the engine in placeholder transcripts.
	Name() string
}

// Recorder persists run history. *history.Store satisfies it.
type Recorder interface {
	BeginRun(ctx context.Context, run history.Run) error
	RecordResult(ctx context.Context, entry history.Entry) error
	FinishRun(ctx context.Context, id string, status history.RunStatus, succeeded, failed int) error
}

// SubtitleSource names where a video's subtitle file came from.
type SubtitleSource string

const (
	SubtitleNone        SubtitleSource = ""
	SubtitleFromTool    SubtitleSource = "tool"
	SubtitleSynthesized SubtitleSource = "synthesized"
)

// Pipeline stage names used in logs, progress events and errors.
const (
	StageExtract    = "extract"
	StageTranscribe = "transcribe"
	StageSubtitles  = "subtitles"
)

// Result statuses.
const (
	StatusSucceeded   = "succeeded"
	StatusDegraded    = "degraded"
	StatusFailed      = "failed"
	StatusInterrupted = "interrupted"
)

// Result is the outcome of one video.
type Result struct {
	VideoName      string
	VideoPath      string
	VideoID        string
	TranscriptPath string
	SubtitlePath   string
	SubtitleSource SubtitleSource
	// TranscriptionCategory is set when the transcript body is a placeholder.
	TranscriptionCategory services.TranscriptionCategory
	Model                 string
	AudioBytes            int64
	Duration              time.Duration
	Err                   error
}

// Status classifies the result for summaries and history.
func (r Result) Status() string {
	switch {
	case r.Err != nil && errors.Is(r.Err, context.Canceled):
		return StatusInterrupted
	case r.Err != nil:
		return StatusFailed
	case r.TranscriptionCategory != services.CategoryNone:
		return StatusDegraded
	default:
		return StatusSucceeded
	}
}

// OK reports whether the video produced both output files.
func (r Result) OK() bool { return r.Err == nil }

// Summary aggregates a batch run.
type Summary struct {
	RunID     string
	OutputDir string
	Results   []Result
	// Degraded videos are counted in Succeeded as well.
	Succeeded   int
	Degraded    int
	Failed      int
	Skipped     int
	Interrupted bool
	StartedAt   time.Time
	Duration    time.Duration
}

func (s *Summary) add(r Result) {
	s.Results = append(s.Results, r)
	if r.OK() {
		s.Succeeded++
		if r.Status() == StatusDegraded {
			s.Degraded++
		}
		return
	}
	s.Failed++
}

// ProgressEvent reports where the batch is.
type ProgressEvent struct {
	VideoID string
	// Index is 1-based within Total.
	Index int
	Total int
	Stage string
	// Percent is in [0,100], or -1 when the stage has no measurable progress.
	Percent float64
	Done    bool
}

// ProgressFunc receives progress events.
type ProgressFunc func(ProgressEvent)
