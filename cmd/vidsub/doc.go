// Package main hosts the vidsub CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration, acquires the working root
// lock, checks that ffmpeg and the transcription engine are installed, and
// hands the batch to the pipeline driver. Maintenance commands (clean,
// gensrt) operate on the data directory without touching videos, and the
// history commands read the sqlite run ledger.
//
// Keep this package lean: behaviour belongs in the internal packages, and
// commands here only wire them together and render results.
package main
