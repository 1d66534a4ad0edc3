package main

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"vidsub/internal/pipeline"
)

// progressRenderer draws one bar per video stage from pipeline events.
type progressRenderer struct {
	bar   *progressbar.ProgressBar
	video string
	stage string
}

func newProgressRenderer(w io.Writer) *progressRenderer {
	bar := progressbar.NewOptions(
		100,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
	)
	return &progressRenderer{bar: bar}
}

// Handle satisfies pipeline.ProgressFunc.
func (p *progressRenderer) Handle(event pipeline.ProgressEvent) {
	if event.VideoID != p.video || event.Stage != p.stage {
		p.video, p.stage = event.VideoID, event.Stage
		p.bar.Reset()
		p.bar.Describe(fmt.Sprintf("[%d/%d] %s %s", event.Index, event.Total, event.VideoID, stageLabel(event.Stage)))
	}
	if event.Percent >= 0 {
		_ = p.bar.Set(int(event.Percent))
	}
}

// Finish clears the bar so the summary prints on a clean line.
func (p *progressRenderer) Finish() {
	_ = p.bar.Finish()
	_ = p.bar.Clear()
}

func stageLabel(stage string) string {
	switch stage {
	case pipeline.StageExtract:
		return "extracting audio"
	case pipeline.StageTranscribe:
		return "transcribing"
	case pipeline.StageSubtitles:
		return "writing subtitles"
	default:
		return stage
	}
}
