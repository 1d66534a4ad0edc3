package config

const (
	defaultConfigPath     = "~/.config/vidsub/config.toml"
	projectConfigName     = "vidsub.toml"
	lockFileName          = ".vidsub.lock"
	defaultRoot           = "."
	defaultVideosDir      = "videos"
	defaultTempDir        = "temp"
	defaultDataDir        = "data"
	defaultLogDir         = "~/.local/share/vidsub/logs"
	defaultStateDir       = "~/.local/share/vidsub"
	defaultHistoryFile    = "history.db"
	defaultFFmpegBinary   = "ffmpeg"
	defaultFFprobeBinary  = "ffprobe"
	defaultEngine         = EngineWhisperCPP
	defaultModel          = "medium"
	defaultModelDir       = "~/.local/share/vidsub/models"
	defaultSegmentSeconds = 3.0
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Supported transcription engines.
const (
	EngineWhisperCPP = "whisper-cpp"
	EngineWhisper    = "whisper"
	EngineWhisperX   = "whisperx"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Root:      defaultRoot,
			VideosDir: defaultVideosDir,
			TempDir:   defaultTempDir,
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			StateDir:  defaultStateDir,
		},
		FFmpeg: FFmpeg{
			Binary:       defaultFFmpegBinary,
			FFprobe:      defaultFFprobeBinary,
			ShowProgress: true,
		},
		Transcription: Transcription{
			Engine:   defaultEngine,
			Model:    defaultModel,
			ModelDir: defaultModelDir,
		},
		Subtitles: Subtitles{
			SegmentSeconds: defaultSegmentSeconds,
			Validate:       true,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
