// Package transcript renders and parses transcript documents: a metadata
// header, a "---" separator, and the free-form text produced by the
// speech-to-text engine.
//
// When transcription fails the pipeline still writes a document whose body is
// a placeholder describing the failure category, so subtitle synthesis can run
// against it.
package transcript
