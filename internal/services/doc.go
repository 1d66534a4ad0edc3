// Package services defines shared utilities consumed by the pipeline driver
// and the external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp video identifiers, stage names, and run
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper so callers branch on the
//     kind of failure (setup, extraction, transcription, format, io) instead
//     of matching message text.
//   - TranscriptionError and its categories, which decide the placeholder
//     transcript written when the speech-to-text engine fails.
package services
