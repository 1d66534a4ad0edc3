// Package config loads, normalizes, and validates vidsub configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// VIDSUB_ROOT and VIDSUB_WHISPER_MODEL. The working root anchors the videos,
// temp, and data directories; relative values resolve against it.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical engine names, and clear validation errors.
package config
