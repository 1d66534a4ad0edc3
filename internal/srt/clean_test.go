package srt

import "testing"

func TestCleanAnnotations(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips prefix annotation",
			in:   "1\n00:00:00,000 --> 00:00:03,000\n[00:00:00.000 --> 00:00:03.000]  大家好\n\n",
			want: "1\n00:00:00,000 --> 00:00:03,000\n大家好\n\n",
		},
		{
			name: "comma separated and no whitespace",
			in:   "[00:00:01,000-->00:00:02,500]text",
			want: "text",
		},
		{
			name: "several per line",
			in:   "[1.0 --> 2.0] a [2.0 --> 3.0] b",
			want: "a b",
		},
		{
			name: "nested annotation collapses",
			in:   "[[1 --> 2]1 --> 2] x",
			want: "x",
		},
		{
			name: "arrow lines untouched",
			in:   "2\n00:00:03,000 --> 00:00:06,000\nplain\n",
			want: "2\n00:00:03,000 --> 00:00:06,000\nplain\n",
		},
		{
			name: "non numeric brackets kept",
			in:   "[music] [a --> b] ok",
			want: "[music] [a --> b] ok",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanAnnotations(tt.in)
			if got != tt.want {
				t.Fatalf("CleanAnnotations(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := CleanAnnotations(got); again != got {
				t.Fatalf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestCleanAnnotationsIdempotentOverSamples(t *testing.T) {
	samples := []string{
		"",
		"no annotations at all\n",
		"[00:00.000 --> 00:01.000]\n[00:01.000 --> 00:02.000]\n",
		"[[[0-->1]0-->1]0-->1]",
		"[0 --> 1] [ 0 --> 1]",
		"中文[00:00:00.000 --> 00:00:01.000]\t\n字幕",
	}
	for _, s := range samples {
		once := CleanAnnotations(s)
		if twice := CleanAnnotations(once); twice != once {
			t.Fatalf("clean(clean(%q)) = %q, want %q", s, twice, once)
		}
		if !inlineAnnotation.MatchString(s) && once != s {
			t.Fatalf("text without annotations changed: %q -> %q", s, once)
		}
	}
}
