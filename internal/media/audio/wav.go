package audio

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-audio/wav"
)

// Target format produced by the extractor.
const (
	SampleRate = 16000
	Channels   = 1
	BitDepth   = 16
	pcmFormat  = 1
)

// ErrUnexpectedFormat marks a WAV file that decodes but is not mono 16 kHz
// 16-bit PCM.
var ErrUnexpectedFormat = errors.New("unexpected wav format")

// Info describes a decoded WAV header.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
	SizeBytes  int64
}

// Inspect decodes the WAV header at path and reports its format.
func Inspect(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return Info{}, err
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return Info{}, fmt.Errorf("%s: not a valid wav file", path)
	}
	if err := dec.FwdToPCM(); err != nil {
		return Info{}, fmt.Errorf("%s: locate pcm data: %w", path, err)
	}
	info := Info{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
		SizeBytes:  stat.Size(),
	}
	if bytesPerSecond := info.SampleRate * info.Channels * info.BitDepth / 8; bytesPerSecond > 0 {
		info.Duration = time.Duration(int64(dec.PCMSize) * int64(time.Second) / int64(bytesPerSecond))
	}
	if dec.WavAudioFormat != pcmFormat {
		return info, fmt.Errorf("%w: audio format %d is not PCM", ErrUnexpectedFormat, dec.WavAudioFormat)
	}
	return info, nil
}

// Verify inspects path and requires the extractor's target format.
func Verify(path string) (Info, error) {
	info, err := Inspect(path)
	if err != nil {
		return info, err
	}
	if info.SampleRate != SampleRate || info.Channels != Channels || info.BitDepth != BitDepth {
		return info, fmt.Errorf("%w: %d Hz, %d channel(s), %d-bit", ErrUnexpectedFormat, info.SampleRate, info.Channels, info.BitDepth)
	}
	return info, nil
}
