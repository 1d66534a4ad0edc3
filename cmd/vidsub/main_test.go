package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vidsub/internal/services"
	"vidsub/internal/testsupport"
	"vidsub/internal/workspace"
)

type cliTestEnv struct {
	baseDir    string
	root       string
	configPath string
	binDir     string
}

func (e *cliTestEnv) videosDir() string { return filepath.Join(e.root, "videos") }
func (e *cliTestEnv) dataDir() string   { return filepath.Join(e.root, "data") }

const probeJSON = `{"streams":[{"index":0,"codec_type":"video"},{"index":1,"codec_type":"audio","tags":{"language":"eng"}}],"format":{"duration":"2.0"}}`

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("VIDSUB_ROOT", "")
	t.Setenv("VIDSUB_WHISPER_MODEL", "")

	env := &cliTestEnv{
		baseDir:    base,
		root:       filepath.Join(base, "work"),
		configPath: filepath.Join(base, "vidsub.toml"),
		binDir:     filepath.Join(base, "bin"),
	}

	fixture := filepath.Join(base, "fixture.wav")
	testsupport.WriteWAV(t, fixture, 2)
	testsupport.WriteFile(t, filepath.Join(base, "models", "ggml-medium.bin"), 64)

	testsupport.StubBinary(t, env.binDir, "ffmpeg", `if [ "$1" = "-version" ]; then echo "ffmpeg version 7.0-test"; exit 0; fi
for last; do :; done
printf 'out_time_us=1000000\nprogress=continue\nout_time_us=2000000\nprogress=end\n'
cp "`+fixture+`" "$last"
`)
	testsupport.StubBinary(t, env.binDir, "ffprobe", "cat <<'JSON'\n"+probeJSON+"\nJSON\n")
	testsupport.StubBinary(t, env.binDir, "whisper-cli", `while [ $# -gt 0 ]; do
  case "$1" in
    -of) out="$2"; shift ;;
  esac
  shift
done
printf '第一句。第二句。\n' > "$out.txt"
`)
	testsupport.PrependPath(t, env.binDir)

	writeTestConfig(t, env, "")
	return env
}

// writeTestConfig writes the base config plus extra TOML appended verbatim.
func writeTestConfig(t *testing.T, env *cliTestEnv, extra string) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
root = %q
log_dir = %q
state_dir = %q

[ffmpeg]
show_progress = false

[transcription]
model_dir = %q
%s`,
		env.root,
		filepath.Join(env.baseDir, "logs"),
		filepath.Join(env.baseDir, "state"),
		filepath.Join(env.baseDir, "models"),
		extra,
	)
	testsupport.WriteText(t, env.configPath, content)
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestCLIRunProducesTranscriptAndSubtitles(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.videosDir(), "lecture one.mp4"), 256)

	stdout, _, err := runCLI(t, env, "run")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout, "1 succeeded, 0 failed") {
		t.Fatalf("summary missing counts:\n%s", stdout)
	}
	if !strings.Contains(stdout, env.dataDir()) {
		t.Fatalf("summary missing output dir:\n%s", stdout)
	}

	wantSRT := "1\n00:00:00,000 --> 00:00:03,000\n第一句\n\n2\n00:00:03,000 --> 00:00:06,000\n第二句\n\n"
	if got := readOutput(t, filepath.Join(env.dataDir(), "lecture_one.srt")); got != wantSRT {
		t.Fatalf("srt = %q", got)
	}
	raw := readOutput(t, filepath.Join(env.dataDir(), "lecture_one.raw.txt"))
	if !strings.Contains(raw, "轉換工具: whisper.cpp (本地模型: medium)") || !strings.HasSuffix(raw, "第一句。第二句。\n") {
		t.Fatalf("unexpected transcript:\n%s", raw)
	}
	if _, err := os.Stat(filepath.Join(env.root, "temp")); !os.IsNotExist(err) {
		t.Fatalf("temp dir should be removed, stat err = %v", err)
	}

	stdout, _, err = runCLI(t, env, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(stdout, "completed") {
		t.Fatalf("history missing run:\n%s", stdout)
	}
}

func TestCLIRunPlaceholderWhenModelMissing(t *testing.T) {
	env := setupCLITestEnv(t)
	writeTestConfig(t, env, "model = \"large\"\n")
	testsupport.WriteFile(t, filepath.Join(env.videosDir(), "a.mkv"), 64)

	stdout, _, err := runCLI(t, env, "run")
	if err != nil {
		t.Fatalf("run should not fail for a missing model: %v", err)
	}
	if !strings.Contains(stdout, "placeholder transcript (toolchain)") {
		t.Fatalf("summary missing placeholder note:\n%s", stdout)
	}
	raw := readOutput(t, filepath.Join(env.dataDir(), "a.raw.txt"))
	if !strings.Contains(raw, "缺少編譯工具或模型") {
		t.Fatalf("unexpected placeholder:\n%s", raw)
	}
	if _, err := os.Stat(filepath.Join(env.dataDir(), "a.srt")); err != nil {
		t.Fatalf("subtitle should still be written: %v", err)
	}
}

func TestCLIRejectsUnknownConfigKeys(t *testing.T) {
	env := setupCLITestEnv(t)
	writeTestConfig(t, env, "bogus_key = 1\n")

	_, _, err := runCLI(t, env, "run")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if exitCode(err) != 1 {
		t.Fatalf("exit code = %d", exitCode(err))
	}
}

func TestCLIRunFailsWithoutFFmpeg(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.Remove(filepath.Join(env.binDir, "ffmpeg")); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", env.binDir)

	_, _, err := runCLI(t, env, "run")
	if !errors.Is(err, services.ErrSetup) {
		t.Fatalf("expected setup error, got %v", err)
	}
	if !strings.Contains(err.Error(), "ffmpeg") {
		t.Fatalf("error should mention ffmpeg: %v", err)
	}
}

func TestCLIRunRefusesHeldLock(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.MkdirAll(env.root, 0o755); err != nil {
		t.Fatal(err)
	}
	lock, err := workspace.Acquire(filepath.Join(env.root, ".vidsub.lock"))
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer lock.Release()

	_, _, err = runCLI(t, env, "run")
	if !errors.Is(err, workspace.ErrLocked) || !errors.Is(err, services.ErrSetup) {
		t.Fatalf("expected lock error, got %v", err)
	}
}

func TestCLIRunDryRun(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.videosDir(), "Intro Video.MOV"), 64)
	testsupport.WriteText(t, filepath.Join(env.videosDir(), "readme.txt"), "x")

	stdout, _, err := runCLI(t, env, "run", "--dry-run")
	if err != nil {
		t.Fatalf("run --dry-run: %v", err)
	}
	if !strings.Contains(stdout, "Intro_Video.srt") || !strings.Contains(stdout, "1 video(s) would be processed") {
		t.Fatalf("unexpected dry run output:\n%s", stdout)
	}
	if strings.Contains(stdout, "readme") {
		t.Fatalf("non-video listed:\n%s", stdout)
	}
}

func TestCLICleanAndGenSRT(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteText(t, filepath.Join(env.dataDir(), "a.srt"),
		"1\n00:00:00,000 --> 00:00:01,000\n[00:00.000 --> 00:01.000] hi\n\n")
	testsupport.WriteText(t, filepath.Join(env.dataDir(), "b.raw.txt"), "# b 文稿\n\n---\n\n一。二。\n")

	stdout, _, err := runCLI(t, env, "clean")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if !strings.Contains(stdout, "1 of 1 file(s) cleaned") {
		t.Fatalf("unexpected clean output:\n%s", stdout)
	}
	if got := readOutput(t, filepath.Join(env.dataDir(), "a.srt")); got != "1\n00:00:00,000 --> 00:00:01,000\nhi\n\n" {
		t.Fatalf("cleaned = %q", got)
	}

	stdout, _, err = runCLI(t, env, "gensrt")
	if err != nil {
		t.Fatalf("gensrt: %v", err)
	}
	if !strings.Contains(stdout, "1 of 1 file(s) generated") {
		t.Fatalf("unexpected gensrt output:\n%s", stdout)
	}
	want := "1\n00:00:00,000 --> 00:00:03,000\n一\n\n2\n00:00:03,000 --> 00:00:06,000\n二\n\n"
	if got := readOutput(t, filepath.Join(env.dataDir(), "b.srt")); got != want {
		t.Fatalf("b.srt = %q", got)
	}
}

func TestCLIStatus(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, env, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, want := range []string{"== Dependencies ==", "FFmpeg:", "whisper.cpp:", "Model medium:", "Lock:", "No runs recorded"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("status output missing %q:\n%s", want, stdout)
		}
	}
}

func TestCLIHistoryShowUnknownRun(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, env, "history", "show", "nope")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCLIHistoryDisabled(t *testing.T) {
	env := setupCLITestEnv(t)
	writeTestConfig(t, env, "\n[history]\nenabled = false\n")
	_, _, err := runCLI(t, env, "history")
	if err == nil || !strings.Contains(err.Error(), "disabled") {
		t.Fatalf("expected disabled error, got %v", err)
	}
}

func TestCLIConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "generated", "config.toml")

	stdout, _, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(stdout, target) {
		t.Fatalf("unexpected init output: %s", stdout)
	}
	if _, _, err := runCLI(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config exists")
	}

	stdout, _, err = runCLI(t, env, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(stdout, env.root) || !strings.Contains(stdout, "whisper-cpp") {
		t.Fatalf("unexpected config show output:\n%s", stdout)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("boom"), 1},
		{"canceled", context.Canceled, 1},
		{"interrupted", &exitError{code: exitInterrupted, err: context.Canceled}, exitInterrupted},
		{"wrapped", fmt.Errorf("run: %w", &exitError{code: 3}), 3},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("%s: exitCode = %d, want %d", tt.name, got, tt.want)
		}
	}
}
