package whisper

import (
	"path/filepath"
	"strconv"
	"strings"
)

func (s *Service) buildArgs(model, audioPath, outputDir, stem string) []string {
	switch s.cfg.Engine {
	case EngineWhisper:
		return s.whisperArgs(model, audioPath, outputDir)
	case EngineWhisperX:
		return s.whisperXArgs(model, audioPath, outputDir)
	default:
		return s.whisperCPPArgs(model, audioPath, outputDir, stem)
	}
}

func (s *Service) whisperCPPArgs(model, audioPath, outputDir, stem string) []string {
	args := []string{
		"-m", s.modelFile(model),
		"-f", audioPath,
		"-otxt",
		"-osrt",
		"-of", filepath.Join(outputDir, stem),
	}
	if lang := s.cfg.Language; lang != "" {
		args = append(args, "-l", lang)
	} else {
		args = append(args, "-l", "auto")
	}
	if s.cfg.Translate {
		args = append(args, "-tr")
	}
	if s.cfg.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(s.cfg.Threads))
	}
	return append(args, "-np")
}

func (s *Service) whisperArgs(model, audioPath, outputDir string) []string {
	args := []string{
		audioPath,
		"--model", model,
		"--output_dir", outputDir,
		"--output_format", "all",
	}
	if lang := s.cfg.Language; lang != "" {
		args = append(args, "--language", lang)
	}
	if s.cfg.Translate {
		args = append(args, "--task", "translate")
	}
	if s.cfg.Threads > 0 {
		args = append(args, "--threads", strconv.Itoa(s.cfg.Threads))
	}
	return append(args, "--verbose", "False")
}

func (s *Service) whisperXArgs(model, audioPath, outputDir string) []string {
	args := make([]string, 0, 40)
	args = append(args,
		"--index-url", PypiIndexURL,
		"whisperx",
		audioPath,
		"--model", model,
		"--batch_size", BatchSize,
		"--output_dir", outputDir,
		"--output_format", "all",
		"--segment_resolution", SegmentResolution,
		"--chunk_size", ChunkSize,
		"--vad_method", VADMethod,
		"--vad_onset", VADOnset,
		"--vad_offset", VADOffset,
		"--beam_size", BeamSize,
	)
	if lang := s.cfg.Language; lang != "" {
		args = append(args, "--language", lang)
	}
	if s.cfg.Translate {
		args = append(args, "--task", "translate")
	}
	if s.cfg.Threads > 0 {
		args = append(args, "--threads", strconv.Itoa(s.cfg.Threads))
	}
	return append(args, "--device", CPUDevice, "--compute_type", CPUComputeType)
}

func (s *Service) modelFile(model string) string {
	if s.cfg.ModelFile != nil {
		if path := strings.TrimSpace(s.cfg.ModelFile(model)); path != "" {
			return path
		}
	}
	return "ggml-" + model + ".bin"
}
