package whisper

import (
	"vidsub/internal/config"
	"vidsub/internal/language"
)

// FromConfig maps the [transcription] section onto a service Config.
func FromConfig(cfg *config.Config) Config {
	if cfg == nil {
		return Config{}
	}
	t := cfg.Transcription
	return Config{
		Engine:    t.Engine,
		Binary:    t.Binary,
		Model:     t.Model,
		FastModel: t.FastModel,
		Language:  language.ToWhisper(t.Language),
		Translate: t.Translate,
		Threads:   t.Threads,
		ModelFile: cfg.ModelFile,
	}
}
