package srt

import (
	"regexp"
	"strconv"
	"strings"
)

// Whisper models trained on subtitled video hallucinate credit lines over
// silence and music.
var creditPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)subtitles? by`),
	regexp.MustCompile(`(?i)amara\.org`),
	regexp.MustCompile(`(?i)opensubtitles`),
	regexp.MustCompile(`(?i)thanks? for watching`),
	regexp.MustCompile(`(?i)http(s)?://`),
	regexp.MustCompile(`(?i)\bwww\.`),
	regexp.MustCompile(`字幕(由|提供|製作|制作|志願者|志愿者)`),
	regexp.MustCompile(`(請|请)不吝(點贊|点赞)`),
	regexp.MustCompile(`(訂閱|订阅).*(轉發|转发|打賞|打赏)`),
	regexp.MustCompile(`明鏡與點點`),
}

// CreditStats reports the effects of DropCreditCues.
type CreditStats struct {
	RemovedCues int
}

// DropCreditCues removes cues whose text is a subtitle credit or channel
// promotion, trims trailing spaces, and renumbers the remaining cues.
func DropCreditCues(content string) (string, CreditStats) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	blocks := splitBlocks(normalized)
	kept := make([]string, 0, len(blocks))
	var stats CreditStats
	for _, block := range blocks {
		if blockIsCredit(block) {
			stats.RemovedCues++
			continue
		}
		kept = append(kept, renumberBlock(normalizeBlock(block), len(kept)+1))
	}
	if len(kept) == 0 {
		return "", stats
	}
	return strings.Join(kept, "\n\n") + "\n\n", stats
}

func splitBlocks(content string) []string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}
	raw := strings.Split(trimmed, "\n\n")
	blocks := raw[:0]
	for _, block := range raw {
		if block = strings.Trim(block, "\n"); strings.TrimSpace(block) != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

func blockIsCredit(block string) bool {
	textLines := subtitleTextLines(strings.Split(block, "\n"))
	if len(textLines) == 0 {
		return false
	}
	payload := strings.TrimSpace(strings.Join(textLines, " "))
	if payload == "" {
		return false
	}
	for _, pattern := range creditPatterns {
		if pattern.MatchString(payload) {
			return true
		}
	}
	return false
}

func subtitleTextLines(lines []string) []string {
	start := 0
	if start < len(lines) && isNumeric(lines[start]) {
		start++
	}
	if start < len(lines) && strings.Contains(lines[start], "-->") {
		start++
	}
	if start >= len(lines) {
		return nil
	}
	text := make([]string, 0, len(lines)-start)
	for _, line := range lines[start:] {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			text = append(text, trimmed)
		}
	}
	return text
}

func normalizeBlock(block string) string {
	lines := strings.Split(block, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return strings.Join(lines, "\n")
}

func renumberBlock(block string, index int) string {
	first, rest, ok := strings.Cut(block, "\n")
	if !ok || !isNumeric(first) {
		return block
	}
	return strconv.Itoa(index) + "\n" + rest
}

func isNumeric(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	_, err := strconv.Atoi(value)
	return err == nil
}
