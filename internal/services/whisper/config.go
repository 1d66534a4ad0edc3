package whisper

// Config captures runtime settings for a transcription engine.
type Config struct {
	// Engine is one of EngineWhisperCPP, EngineWhisper or EngineWhisperX.
	Engine string
	// Binary overrides the executable; empty selects the engine default.
	Binary    string
	Model     string
	FastModel string
	// Language is a whisper language code; empty lets the engine detect it.
	Language  string
	Translate bool
	Threads   int
	// ModelFile resolves a model name to a ggml file for whisper-cpp.
	ModelFile func(model string) string
}

// Engine identifiers.
const (
	EngineWhisperCPP = "whisper-cpp"
	EngineWhisper    = "whisper"
	EngineWhisperX   = "whisperx"
)

// Command names for the engine executables.
const (
	WhisperCPPCommand = "whisper-cli"
	WhisperCommand    = "whisper"
	UVXCommand        = "uvx"
)

// WhisperX settings used for CPU transcription.
const (
	PypiIndexURL      = "https://pypi.org/simple"
	BatchSize         = "4"
	ChunkSize         = "15"
	VADOnset          = "0.08"
	VADOffset         = "0.07"
	BeamSize          = "5"
	SegmentResolution = "sentence"
	VADMethod         = "silero"
	CPUDevice         = "cpu"
	CPUComputeType    = "float32"
)

// AudioExtensions lists the audio files a transcription run may leave behind.
var AudioExtensions = []string{".mp3", ".wav", ".m4a", ".aac", ".flac", ".ogg"}

// sideExtensions are engine outputs nothing downstream reads.
var sideExtensions = []string{".txt", ".json", ".vtt", ".tsv"}
