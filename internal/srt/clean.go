package srt

import "regexp"

var inlineAnnotation = regexp.MustCompile(`\[[\d:.,]+\s*-->\s*[\d:.,]+\]\s*`)

// CleanAnnotations strips bracketed "[start --> end]" annotations, and the
// whitespace after each, that whisper engines prefix to cue text. Removal
// repeats until nothing matches, so a second call is a no-op even when a
// removal joins the halves of an enclosing annotation.
func CleanAnnotations(text string) string {
	for inlineAnnotation.MatchString(text) {
		text = inlineAnnotation.ReplaceAllString(text, "")
	}
	return text
}
