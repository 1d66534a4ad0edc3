package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"vidsub/internal/config"
	"vidsub/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_AfterEnsureDirectories(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := RunAll(cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
}

func TestRunAll_ReportsMissingVideosDir(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutHistory())

	failed := Failed(RunAll(cfg))
	if len(failed) != 2 {
		t.Fatalf("expected videos and data failures, got %+v", failed)
	}
	if failed[0].Name != "Videos directory" {
		t.Fatalf("unexpected first failure: %+v", failed[0])
	}
}

func TestCheckSystemDeps_WhisperCPP(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries("ffmpeg", "whisper-cli"))
	cfg.FFmpeg.FFprobe = "clearly-missing-ffprobe"
	testsupport.WriteFile(t, cfg.ModelFile(cfg.Transcription.Model), 64)

	statuses := CheckSystemDeps(cfg)
	if len(statuses) != 4 {
		t.Fatalf("expected 4 statuses, got %d", len(statuses))
	}
	byName := map[string]bool{}
	for _, s := range statuses {
		byName[s.Name] = s.Available
	}
	if !byName["FFmpeg"] || !byName["whisper.cpp"] || !byName["Model medium"] {
		t.Fatalf("expected ffmpeg, engine and model available: %+v", statuses)
	}
	if byName["FFprobe"] {
		t.Fatal("expected ffprobe to be missing")
	}
}

func TestCheckSystemDeps_FastModelOptional(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	cfg.Transcription.FastModel = "base"

	statuses := CheckSystemDeps(cfg)
	var fast, primary bool
	for _, s := range statuses {
		switch s.Name {
		case "Model base":
			fast = s.Optional
		case "Model medium":
			primary = !s.Optional
		}
	}
	if !fast || !primary {
		t.Fatalf("expected fast model optional and primary required: %+v", statuses)
	}
}

func TestCheckSystemDeps_PythonEngineHasNoModelFile(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithEngine(config.EngineWhisper))
	statuses := CheckSystemDeps(cfg)
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d: %+v", len(statuses), statuses)
	}
	if statuses[2].Command != "whisper" {
		t.Fatalf("engine command = %q", statuses[2].Command)
	}
}
