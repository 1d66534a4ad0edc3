package logging

import (
	"math"
	"strings"
)

// ProgressSampler thins out progress logging: it lets an event through when
// the stage changes or the percentage reaches the next step.
type ProgressSampler struct {
	step  float64
	stage string
	next  float64
}

// NewProgressSampler returns a sampler that logs every step percent (10 when
// step is not positive).
func NewProgressSampler(step float64) *ProgressSampler {
	if step <= 0 {
		step = 10
	}
	return &ProgressSampler{step: step}
}

// ShouldLog reports whether an event should be logged. A negative percent
// means unknown and only logs on a stage change. A nil sampler logs everything.
func (s *ProgressSampler) ShouldLog(percent float64, stage string) bool {
	if s == nil {
		return true
	}
	changed := false
	if stage = strings.TrimSpace(stage); stage != "" && stage != s.stage {
		s.stage = stage
		s.next = 0
		changed = true
	}
	if percent < 0 {
		return changed
	}
	percent = math.Min(percent, 100)
	if percent < s.next {
		return changed
	}
	s.next = (math.Floor(percent/s.step) + 1) * s.step
	return true
}

// Reset forgets the stage and threshold before the next video.
func (s *ProgressSampler) Reset() {
	if s != nil {
		s.stage, s.next = "", 0
	}
}
