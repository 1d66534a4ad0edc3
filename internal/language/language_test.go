package language

import "testing"

func TestToWhisper(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"auto", ""},
		{"en", "en"},
		{"ENG", "en"},
		{"chi", "zh"},
		{"Mandarin", "zh"},
		{"中文", "zh"},
		{"yue", "yue"},
		{"sw", "sw"},
		{"xyz", ""},
	}
	for _, tt := range tests {
		if got := ToWhisper(tt.in); got != tt.want {
			t.Errorf("ToWhisper(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"chi", "zh", true},
		{"zho", "cmn", true},
		{"eng", "en", true},
		{"fre", "fra", true},
		{"yue", "zh", false},
		{"", "en", false},
		{"und", "und", true},
		{"jpn", "ko", false},
	}
	for _, tt := range tests {
		if got := Matches(tt.a, tt.b); got != tt.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName(""); got != "Auto-detect" {
		t.Fatalf("DisplayName(\"\") = %q", got)
	}
	if got := DisplayName("zh"); got != "Chinese" {
		t.Fatalf("DisplayName(zh) = %q", got)
	}
	if got := DisplayName("sw"); got != "SW" {
		t.Fatalf("DisplayName(sw) = %q", got)
	}
}
