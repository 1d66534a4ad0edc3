package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
)

var (
	ErrSetup         = errors.New("setup failure")
	ErrExtraction    = errors.New("audio extraction failed")
	ErrTranscription = errors.New("transcription failed")
	ErrFormat        = errors.New("format error")
	ErrIO            = errors.New("io failure")
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind names the marker carried by err, or "" when err has none.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSetup):
		return "setup"
	case errors.Is(err, ErrExtraction):
		return "extraction"
	case errors.Is(err, ErrTranscription):
		return "transcription"
	case errors.Is(err, ErrFormat):
		return "format"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrIO):
		return "io"
	default:
		return "unknown"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}

// TranscriptionCategory classifies why a transcription attempt failed.
type TranscriptionCategory string

const (
	CategoryNone         TranscriptionCategory = ""
	CategoryToolchain    TranscriptionCategory = "toolchain"
	CategoryMissingInput TranscriptionCategory = "missing_input"
	CategoryTimeout      TranscriptionCategory = "timeout"
	CategoryOther        TranscriptionCategory = "other"
)

// ErrModelMissing marks a transcription engine whose model files are absent.
var ErrModelMissing = errors.New("transcription model missing")

// TranscriptionError carries the failure category alongside the cause.
// It matches ErrTranscription under errors.Is.
type TranscriptionError struct {
	Category TranscriptionCategory
	Err      error
}

func (e *TranscriptionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("transcription failed (%s)", e.Category)
	}
	return fmt.Sprintf("transcription failed (%s): %v", e.Category, e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

func (e *TranscriptionError) Is(target error) bool { return target == ErrTranscription }

// NewTranscriptionError wraps err with the category ClassifyTranscription
// assigns to it.
func NewTranscriptionError(err error) *TranscriptionError {
	return &TranscriptionError{Category: ClassifyTranscription(err), Err: err}
}

// ClassifyTranscription maps an engine failure to its category. Errors that
// already carry a TranscriptionError keep their category.
func ClassifyTranscription(err error) TranscriptionCategory {
	if err == nil {
		return CategoryNone
	}
	var te *TranscriptionError
	if errors.As(err, &te) && te.Category != CategoryNone {
		return te.Category
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return CategoryTimeout
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, ErrModelMissing):
		return CategoryToolchain
	case errors.Is(err, fs.ErrNotExist):
		return CategoryMissingInput
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == -1 {
		// terminated by a signal
		return CategoryTimeout
	}
	return CategoryOther
}

// TranscriptionCategoryOf returns the category of a transcription failure,
// or CategoryNone when err is not one.
func TranscriptionCategoryOf(err error) TranscriptionCategory {
	if err == nil || !errors.Is(err, ErrTranscription) {
		return CategoryNone
	}
	return ClassifyTranscription(err)
}
