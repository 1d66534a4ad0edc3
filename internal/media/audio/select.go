package audio

import (
	"sort"
	"strconv"
	"strings"

	"vidsub/internal/language"
	"vidsub/internal/media/ffprobe"
)

// Selection identifies the audio stream handed to ffmpeg.
type Selection struct {
	Stream ffprobe.Stream
	// Index is the container-level stream index, -1 when the video has no
	// audio streams ffprobe could see.
	Index  int
	Reason string
}

// MapArg returns the ffmpeg -map value for the selection.
func (s Selection) MapArg() string {
	if s.Index < 0 {
		return "0:a:0?"
	}
	return "0:" + strconv.Itoa(s.Index)
}

var secondaryTitleHints = []string{"commentary", "description", "descriptive", "評論", "评论", "口述"}

// Select picks the stream to transcribe. preferred is an ISO 639 code (two or
// three letters) or empty for no preference.
func Select(streams []ffprobe.Stream, preferred string) Selection {
	var candidates []ffprobe.Stream
	for _, stream := range streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			candidates = append(candidates, stream)
		}
	}
	if len(candidates) == 0 {
		return Selection{Index: -1, Reason: "no audio streams reported"}
	}
	if len(candidates) == 1 {
		return Selection{Stream: candidates[0], Index: candidates[0].Index, Reason: "only audio stream"}
	}

	preferred = strings.ToLower(strings.TrimSpace(preferred))
	type scored struct {
		stream ffprobe.Stream
		score  int
		reason string
	}
	ranked := make([]scored, 0, len(candidates))
	for _, stream := range candidates {
		s := scored{stream: stream, reason: "first audio stream"}
		if preferred != "" && language.Matches(stream.Language(), preferred) {
			s.score += 4
			s.reason = "language " + stream.Language()
		}
		if stream.IsDefault() {
			s.score += 2
			if s.reason == "first audio stream" {
				s.reason = "default disposition"
			}
		}
		if !isSecondary(stream.Title()) {
			s.score++
		}
		ranked = append(ranked, s)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	best := ranked[0]
	return Selection{Stream: best.stream, Index: best.stream.Index, Reason: best.reason}
}

func isSecondary(title string) bool {
	title = strings.ToLower(title)
	for _, hint := range secondaryTitleHints {
		if strings.Contains(title, hint) {
			return true
		}
	}
	return false
}
