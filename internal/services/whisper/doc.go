// Package whisper runs a whisper-family speech-to-text CLI over a WAV file.
//
// Three engines are supported:
//   - whisper-cpp: the whisper.cpp `whisper-cli` binary with a local ggml model
//   - whisper: the openai-whisper Python CLI
//   - whisperx: WhisperX launched through `uvx`
//
// Every engine is asked for both plain text and SRT output. The service
// reads the text back, reports the SRT path when the engine wrote one, and
// lists the remaining side files so callers can remove them.
//
// When a fast model is configured it is tried first and the primary model
// is used as the fallback.
package whisper
