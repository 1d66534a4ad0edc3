package history

import "time"

// RunStatus is the lifecycle state of a batch run.
type RunStatus string

const (
	RunRunning     RunStatus = "running"
	RunCompleted   RunStatus = "completed"
	RunInterrupted RunStatus = "interrupted"
	RunFailed      RunStatus = "failed"
)

// Run is one invocation of the batch pipeline.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt *time.Time
	Root       string
	Engine     string
	Model      string
	Status     RunStatus
	Total      int
	Succeeded  int
	Failed     int
}

// Entry records the outcome of one video within a run.
type Entry struct {
	ID             int64
	RunID          string
	VideoName      string
	VideoID        string
	Status         string
	TranscriptPath string
	SubtitlePath   string
	SubtitleSource string
	Category       string
	ErrorKind      string
	ErrorMessage   string
	Duration       time.Duration
	RecordedAt     time.Time
}
