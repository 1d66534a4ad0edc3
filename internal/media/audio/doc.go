// Package audio chooses the audio stream to transcribe and verifies the WAV
// files ffmpeg extracts.
//
// Stream selection ranks candidates by preferred language, then the default
// disposition, and skips tracks titled as commentary or audio description
// when another candidate exists. WAV verification decodes the RIFF header
// and rejects anything other than mono 16 kHz 16-bit PCM, the only input the
// whisper engines are driven with.
package audio
