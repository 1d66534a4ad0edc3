// Package pipeline drives a batch of videos through audio extraction,
// transcription and subtitle resolution.
//
// Videos are processed one at a time. Each video moves forward through
// extract, transcribe and subtitle stages and never returns to an earlier
// one. A failure is recorded against that video and the batch moves on;
// only setup problems (an unusable working root) abort Run.
//
// A failed transcription still produces outputs: the transcript body is a
// placeholder naming the failure category, and the subtitle file is
// synthesized from it. Such results count as degraded rather than failed.
package pipeline
