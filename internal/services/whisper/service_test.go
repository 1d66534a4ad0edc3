package whisper

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"vidsub/internal/services"
	"vidsub/internal/testsupport"
)

type fixture struct {
	dir       string
	audio     string
	modelFile string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	audio := filepath.Join(dir, "lecture_01.wav")
	testsupport.WriteWAV(t, audio, 1)
	modelFile := filepath.Join(dir, "models", "ggml-medium.bin")
	testsupport.WriteFile(t, modelFile, 16)
	return fixture{dir: dir, audio: audio, modelFile: modelFile}
}

func (f fixture) config(engine string) Config {
	return Config{
		Engine: engine,
		Model:  "medium",
		ModelFile: func(model string) string {
			return filepath.Join(f.dir, "models", "ggml-"+model+".bin")
		},
	}
}

func argValue(args []string, flag string) string {
	if i := slices.Index(args, flag); i >= 0 && i+1 < len(args) {
		return args[i+1]
	}
	return ""
}

func TestTranscribeWhisperCPP(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.config(EngineWhisperCPP), nil)

	var gotName string
	var gotArgs []string
	svc.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		gotName, gotArgs = name, args
		base := argValue(args, "-of")
		testsupport.WriteText(t, base+".txt", "第一句。\n第二句！\n")
		testsupport.WriteText(t, base+".srt", "1\n00:00:00,000 --> 00:00:02,000\n第一句\n")
		return nil
	})

	result, err := svc.Transcribe(context.Background(), Request{AudioPath: f.audio, Stem: "lecture_01"})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if gotName != WhisperCPPCommand {
		t.Fatalf("command = %q", gotName)
	}
	if argValue(gotArgs, "-m") != f.modelFile || argValue(gotArgs, "-l") != "auto" {
		t.Fatalf("unexpected args: %v", gotArgs)
	}
	if result.Text != "第一句。\n第二句！" {
		t.Fatalf("text = %q", result.Text)
	}
	if result.SRTPath != filepath.Join(f.dir, "lecture_01.srt") {
		t.Fatalf("srt path = %q", result.SRTPath)
	}
	if !slices.Equal(result.SideFiles, []string{filepath.Join(f.dir, "lecture_01.txt")}) {
		t.Fatalf("side files = %v", result.SideFiles)
	}
	if result.Tool != "whisper.cpp (本地模型: medium)" {
		t.Fatalf("tool = %q", result.Tool)
	}
}

func TestTranscribeMissingModelIsToolchain(t *testing.T) {
	f := newFixture(t)
	cfg := f.config(EngineWhisperCPP)
	cfg.Model = "large-v3"
	svc := NewService(cfg, nil)
	svc.WithCommandRunner(func(context.Context, string, ...string) error {
		t.Fatal("engine must not run without a model")
		return nil
	})

	_, err := svc.Transcribe(context.Background(), Request{AudioPath: f.audio})
	if got := services.TranscriptionCategoryOf(err); got != services.CategoryToolchain {
		t.Fatalf("category = %q (%v)", got, err)
	}
	if !errors.Is(err, services.ErrModelMissing) {
		t.Fatalf("expected ErrModelMissing, got %v", err)
	}
}

func TestTranscribeMissingAudio(t *testing.T) {
	svc := NewService(Config{Engine: EngineWhisper, Model: "small"}, nil)
	_, err := svc.Transcribe(context.Background(), Request{AudioPath: filepath.Join(t.TempDir(), "gone.wav")})
	if got := services.TranscriptionCategoryOf(err); got != services.CategoryMissingInput {
		t.Fatalf("category = %q (%v)", got, err)
	}
}

func TestTranscribeBinaryNotFound(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.config(EngineWhisper), nil)
	svc.WithCommandRunner(func(context.Context, string, ...string) error {
		return &exec.Error{Name: "whisper", Err: exec.ErrNotFound}
	})
	_, err := svc.Transcribe(context.Background(), Request{AudioPath: f.audio})
	if got := services.TranscriptionCategoryOf(err); got != services.CategoryToolchain {
		t.Fatalf("category = %q (%v)", got, err)
	}
}

func TestTranscribeFastModelFallsBack(t *testing.T) {
	f := newFixture(t)
	cfg := f.config(EngineWhisper)
	cfg.FastModel = "base"
	svc := NewService(cfg, nil)

	var models []string
	svc.WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		model := argValue(args, "--model")
		models = append(models, model)
		if model == "base" {
			return errors.New("exit status 1")
		}
		testsupport.WriteText(t, filepath.Join(argValue(args, "--output_dir"), "lecture_01.txt"), "hello world\n")
		return nil
	})

	result, err := svc.Transcribe(context.Background(), Request{AudioPath: f.audio})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if !slices.Equal(models, []string{"base", "medium"}) {
		t.Fatalf("attempted models = %v", models)
	}
	if result.Model != "medium" || result.Tool != "OpenAI Whisper (本地模型: medium)" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.SRTPath != "" {
		t.Fatalf("expected no srt, got %q", result.SRTPath)
	}
}

func TestTranscribeCanceledSkipsFallback(t *testing.T) {
	f := newFixture(t)
	cfg := f.config(EngineWhisper)
	cfg.FastModel = "base"
	svc := NewService(cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	svc.WithCommandRunner(func(ctx context.Context, _ string, _ ...string) error {
		calls++
		cancel()
		return ctx.Err()
	})

	_, err := svc.Transcribe(ctx, Request{AudioPath: f.audio})
	if calls != 1 {
		t.Fatalf("expected one attempt, got %d", calls)
	}
	if got := services.TranscriptionCategoryOf(err); got != services.CategoryTimeout {
		t.Fatalf("category = %q (%v)", got, err)
	}
}

func TestTranscribeEmptyOutputIsOther(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.config(EngineWhisperX), nil)
	svc.WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		testsupport.WriteText(t, filepath.Join(argValue(args, "--output_dir"), "lecture_01.txt"), "  \n")
		return nil
	})

	_, err := svc.Transcribe(context.Background(), Request{AudioPath: f.audio})
	if got := services.TranscriptionCategoryOf(err); got != services.CategoryOther {
		t.Fatalf("category = %q (%v)", got, err)
	}
	if _, statErr := os.Stat(filepath.Join(f.dir, "lecture_01.txt")); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("expected empty output removed, stat err = %v", statErr)
	}
}

func TestTranscribeReadsJSONWhenTextMissing(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.config(EngineWhisperX), nil)

	var gotName string
	var gotArgs []string
	svc.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		gotName, gotArgs = name, args
		testsupport.WriteText(t, filepath.Join(argValue(args, "--output_dir"), "lecture_01.json"),
			`{"segments":[{"text":" first ","start":0,"end":1},{"text":"","start":1,"end":2},{"text":"second","start":2,"end":3}]}`)
		return nil
	})

	result, err := svc.Transcribe(context.Background(), Request{AudioPath: f.audio})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if result.Text != "first\nsecond" {
		t.Fatalf("text = %q", result.Text)
	}
	if gotName != UVXCommand || gotArgs[2] != "whisperx" || argValue(gotArgs, "--device") != CPUDevice {
		t.Fatalf("unexpected whisperx invocation: %s %v", gotName, gotArgs)
	}
}

func TestTranscribeRemovesStaleOutputs(t *testing.T) {
	f := newFixture(t)
	stale := filepath.Join(f.dir, "lecture_01.srt")
	testsupport.WriteText(t, stale, "stale")
	svc := NewService(f.config(EngineWhisper), nil)
	svc.WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		testsupport.WriteText(t, filepath.Join(argValue(args, "--output_dir"), "lecture_01.txt"), "fresh")
		return nil
	})

	result, err := svc.Transcribe(context.Background(), Request{AudioPath: f.audio})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if result.SRTPath != "" {
		t.Fatalf("stale srt reported: %q", result.SRTPath)
	}
}

func TestRunIncludesOutputTail(t *testing.T) {
	f := newFixture(t)
	bin := testsupport.StubBinary(t, t.TempDir(), "whisper-cli", "echo 'loading model'\necho 'error: failed to read audio' >&2\nexit 3\n")
	cfg := f.config(EngineWhisperCPP)
	cfg.Binary = bin
	svc := NewService(cfg, nil)

	_, err := svc.Transcribe(context.Background(), Request{AudioPath: f.audio})
	if got := services.TranscriptionCategoryOf(err); got != services.CategoryOther {
		t.Fatalf("category = %q (%v)", got, err)
	}
	if !strings.Contains(err.Error(), "failed to read audio") {
		t.Fatalf("expected engine output in error, got %v", err)
	}
}

func TestBuildArgsLanguageAndTranslate(t *testing.T) {
	svc := NewService(Config{Engine: EngineWhisperCPP, Model: "small", Language: "zh", Translate: true, Threads: 4}, nil)
	args := svc.buildArgs("small", "/tmp/a.wav", "/tmp", "a")
	if argValue(args, "-l") != "zh" || !slices.Contains(args, "-tr") || argValue(args, "-t") != "4" {
		t.Fatalf("unexpected args: %v", args)
	}
	if argValue(args, "-m") != "ggml-small.bin" {
		t.Fatalf("model file = %q", argValue(args, "-m"))
	}

	svc = NewService(Config{Engine: EngineWhisper, Model: "small", Language: "ja", Translate: true}, nil)
	args = svc.buildArgs("small", "/tmp/a.wav", "/tmp", "a")
	if argValue(args, "--language") != "ja" || argValue(args, "--task") != "translate" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestModels(t *testing.T) {
	svc := NewService(Config{Model: "medium", FastModel: "medium"}, nil)
	if got := svc.Models(); !slices.Equal(got, []string{"medium"}) {
		t.Fatalf("models = %v", got)
	}
	if svc.Binary() != WhisperCPPCommand {
		t.Fatalf("binary = %q", svc.Binary())
	}
}

func TestFromConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Transcription.Language = "chi"
	cfg.Transcription.FastModel = "base"

	wc := FromConfig(cfg)
	if wc.Language != "zh" || wc.Engine != EngineWhisperCPP || wc.FastModel != "base" {
		t.Fatalf("unexpected config: %+v", wc)
	}
	want := filepath.Join(cfg.Transcription.ModelDir, "ggml-base.bin")
	if got := NewService(wc, nil).ModelFile("base"); got != want {
		t.Fatalf("model file = %q, want %q", got, want)
	}
}
