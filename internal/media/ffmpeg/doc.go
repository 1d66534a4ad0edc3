// Package ffmpeg drives the ffmpeg CLI to pull a transcription-ready WAV
// (mono, 16 kHz, pcm_s16le) out of a video container.
//
// Extraction blocks until ffmpeg exits. Progress is read from
// `-progress pipe:1` and reported through an optional callback as a
// percentage of the duration ffprobe reports.
package ffmpeg
