package language

import "strings"

type entry struct {
	code2   string   // ISO 639-1
	code3   string   // ISO 639-2 primary
	alt     []string // other 639-2/639-3 codes mapping to the same language
	display string
	words   []string
}

var languages = []entry{
	{"en", "eng", nil, "English", []string{"english"}},
	{"zh", "zho", []string{"chi", "cmn"}, "Chinese", []string{"chinese", "mandarin", "中文"}},
	{"yue", "yue", nil, "Cantonese", []string{"cantonese", "粵語"}},
	{"ja", "jpn", nil, "Japanese", []string{"japanese", "日本語"}},
	{"ko", "kor", nil, "Korean", []string{"korean"}},
	{"es", "spa", nil, "Spanish", []string{"spanish"}},
	{"fr", "fra", []string{"fre"}, "French", []string{"french"}},
	{"de", "deu", []string{"ger"}, "German", []string{"german"}},
	{"it", "ita", nil, "Italian", []string{"italian"}},
	{"pt", "por", nil, "Portuguese", []string{"portuguese"}},
	{"ru", "rus", nil, "Russian", []string{"russian"}},
	{"vi", "vie", nil, "Vietnamese", []string{"vietnamese"}},
	{"th", "tha", nil, "Thai", []string{"thai"}},
}

var index map[string]*entry

func init() {
	index = make(map[string]*entry, len(languages)*4)
	for i := range languages {
		e := &languages[i]
		index[e.code2] = e
		index[e.code3] = e
		for _, code := range e.alt {
			index[code] = e
		}
		for _, w := range e.words {
			index[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	return index[code]
}

// ToWhisper converts a language code or name to the code whisper CLIs accept.
// Unknown two-letter codes pass through; anything else unknown yields "".
func ToWhisper(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == "auto" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code2
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// Matches reports whether two codes name the same language, e.g. a stream
// tag "chi" and a configured "zh".
func Matches(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	ea, eb := lookup(a), lookup(b)
	return ea != nil && ea == eb
}

// DisplayName returns a human-readable language name. Empty input means
// automatic detection.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Auto-detect"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}
