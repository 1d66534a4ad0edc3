// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// The extractor uses it to learn a video's duration, for progress
// percentages, and its audio streams, to choose which one to transcribe.
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
package ffprobe
