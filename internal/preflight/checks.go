package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"vidsub/internal/config"
	"vidsub/internal/deps"
	"vidsub/internal/services/whisper"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps evaluates the external tools and model files for the
// given config. Both `run` and `status` use this list.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	svc := whisper.NewService(whisper.FromConfig(cfg), nil)
	requirements := []deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Required for audio extraction",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "Enables progress percentages and audio stream selection",
			Optional:    true,
		},
		{
			Name:        svc.Name(),
			Command:     svc.Binary(),
			Description: "Required for transcription",
		},
	}
	statuses := deps.CheckBinaries(requirements)

	models := svc.Models()
	for i, model := range models {
		file := svc.ModelFile(model)
		if file == "" {
			continue
		}
		statuses = append(statuses, deps.CheckFile(deps.Requirement{
			Name:        "Model " + model,
			Command:     file,
			Description: "ggml model for whisper.cpp",
			// only the last model is the one every run falls back to
			Optional: i < len(models)-1,
		}))
	}
	return statuses
}
