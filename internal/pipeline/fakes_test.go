package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"vidsub/internal/media/audio"
	"vidsub/internal/media/ffmpeg"
	"vidsub/internal/services/whisper"
	"vidsub/internal/testsupport"
)

type fakeExtractor struct {
	t      testing.TB
	size   int64
	fail   map[string]error
	calls  []string
	before func(video string)
}

func (f *fakeExtractor) Extract(_ context.Context, video, dest string, progress ffmpeg.ProgressFunc) (audio.Info, error) {
	name := filepath.Base(video)
	f.calls = append(f.calls, name)
	if f.before != nil {
		f.before(name)
	}
	if err := f.fail[name]; err != nil {
		return audio.Info{}, err
	}
	size := f.size
	if size <= 0 {
		size = 2048
	}
	testsupport.WriteFile(f.t, dest, size)
	if progress != nil {
		progress(ffmpeg.Progress{Percent: 50})
		progress(ffmpeg.Progress{Percent: 100, Done: true})
	}
	return audio.Info{SampleRate: 16000, Channels: 1, BitDepth: 16, SizeBytes: size}, nil
}

type fakeTranscriber struct {
	t    testing.TB
	text string
	srt  string
	err  error
	// wait blocks until the context ends and returns its error
	wait  bool
	calls []whisper.Request
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, req whisper.Request) (whisper.Result, error) {
	f.calls = append(f.calls, req)
	if f.wait {
		<-ctx.Done()
		return whisper.Result{}, ctx.Err()
	}
	if f.err != nil {
		return whisper.Result{}, f.err
	}
	txt := filepath.Join(req.OutputDir, req.Stem+".txt")
	testsupport.WriteText(f.t, txt, f.text)
	result := whisper.Result{
		Text:      f.text,
		Model:     "medium",
		Tool:      "fake (本地模型: medium)",
		TextPath:  txt,
		SideFiles: []string{txt},
	}
	if f.srt != "" {
		result.SRTPath = filepath.Join(req.OutputDir, req.Stem+".srt")
		testsupport.WriteText(f.t, result.SRTPath, f.srt)
	}
	return result, nil
}

func (f *fakeTranscriber) Name() string { return "fake" }

func addVideos(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		testsupport.WriteFile(t, filepath.Join(dir, name), 128)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be removed (stat err = %v)", path, err)
	}
}
