package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"vidsub/internal/fileutil"
	"vidsub/internal/logging"
	"vidsub/internal/services"
	"vidsub/internal/srt"
	"vidsub/internal/workspace"
)

// FileOutcome reports what a maintenance pass did to one file.
type FileOutcome struct {
	Path    string
	Target  string
	Changed bool
	Err     error
}

// CleanOptions controls CleanSubtitles.
type CleanOptions struct {
	DropCreditCues bool
	DryRun         bool
}

// CleanSubtitles strips inline timing annotations from every .srt file in
// dir, rewriting only files whose content changes.
func CleanSubtitles(dir string, opts CleanOptions, logger *slog.Logger) ([]FileOutcome, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	files, err := listWithSuffix(dir, workspace.SubtitleSuffix)
	if err != nil {
		return nil, err
	}
	outcomes := make([]FileOutcome, 0, len(files))
	for _, path := range files {
		outcome := FileOutcome{Path: path, Target: path}
		data, err := os.ReadFile(path)
		if err != nil {
			outcome.Err = services.Wrap(services.ErrIO, "clean", "read subtitles", path, err)
			outcomes = append(outcomes, outcome)
			continue
		}
		cleaned := srt.CleanAnnotations(string(data))
		if opts.DropCreditCues {
			cleaned, _ = srt.DropCreditCues(cleaned)
		}
		outcome.Changed = cleaned != string(data)
		if outcome.Changed && !opts.DryRun {
			if err := fileutil.WriteFileAtomic(path, []byte(cleaned), 0o644); err != nil {
				outcome.Err = services.Wrap(services.ErrIO, "clean", "write subtitles", path, err)
			}
		}
		logger.Debug("subtitle cleaned",
			logging.String("file", filepath.Base(path)),
			logging.Bool("changed", outcome.Changed),
			logging.Bool("dry_run", opts.DryRun),
		)
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// ConvertTranscripts synthesizes <id>.srt next to every <id>.raw.txt in dir.
// Existing subtitle files are kept unless overwrite is set.
func ConvertTranscripts(dir string, slot time.Duration, overwrite bool, logger *slog.Logger) ([]FileOutcome, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	files, err := listWithSuffix(dir, workspace.TranscriptSuffix)
	if err != nil {
		return nil, err
	}
	outcomes := make([]FileOutcome, 0, len(files))
	for _, path := range files {
		target := strings.TrimSuffix(path, workspace.TranscriptSuffix) + workspace.SubtitleSuffix
		outcome := FileOutcome{Path: path, Target: target}
		if !overwrite {
			if _, err := os.Stat(target); err == nil {
				logger.Info("subtitle exists; skipping", logging.String("file", filepath.Base(target)))
				outcomes = append(outcomes, outcome)
				continue
			}
		}
		outcome.Err = convertOne(path, target, slot)
		outcome.Changed = outcome.Err == nil
		if outcome.Err != nil {
			logger.Warn("transcript conversion failed",
				logging.String("file", filepath.Base(path)),
				logging.Error(outcome.Err),
			)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func convertOne(path, target string, slot time.Duration) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return services.Wrap(services.ErrIO, "gensrt", "read transcript", path, err)
	}
	entries, err := srt.FromTranscript(string(data), slot)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(target, []byte(srt.Render(entries)), 0o644); err != nil {
		return services.Wrap(services.ErrIO, "gensrt", "write subtitles", target, err)
	}
	return nil
}

func listWithSuffix(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrSetup, "setup", "list directory", dir, err)
	}
	var out []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		out = append(out, filepath.Join(dir, entry.Name()))
	}
	slices.Sort(out)
	return out, nil
}

// CountChanged returns how many outcomes changed a file and how many failed.
func CountChanged(outcomes []FileOutcome) (changed, failed int) {
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			failed++
		case o.Changed:
			changed++
		}
	}
	return changed, failed
}

func (o FileOutcome) String() string {
	switch {
	case o.Err != nil:
		return fmt.Sprintf("%s: %v", filepath.Base(o.Path), o.Err)
	case o.Changed:
		return filepath.Base(o.Target) + ": updated"
	default:
		return filepath.Base(o.Target) + ": unchanged"
	}
}
