package utils

import (
	"strings"
	"testing"
)

func TestFallbackLetterCategory(t *testing.T) {
	cases := []struct {
		prompt string
		want   string
	}{
		{"a letter for my girlfriend for valentine's day", "love"},
		{"Write something for my BEST FRIEND", "friendship"},
		{"a note to my mom", "family"},
		{"thank you letter for my mentor", "gratitude"},
		{"I want to apologize to my neighbor", "apology"},
		{"a short note about the weather", "general"},
	}

	for _, tc := range cases {
		if got := FallbackLetterCategory(tc.prompt); got != tc.want {
			t.Errorf("FallbackLetterCategory(%q) = %q, want %q", tc.prompt, got, tc.want)
		}
	}
}

func TestFallbackLetter_NeverEmpty(t *testing.T) {
	for _, prompt := range []string{"", "girlfriend", "xyzzy", "thanks a lot"} {
		got := FallbackLetter(prompt)
		if strings.TrimSpace(got) == "" {
			t.Errorf("FallbackLetter(%q) returned an empty letter", prompt)
		}
	}
}

func TestFallbackLetter_LovePromptMentionsDevotion(t *testing.T) {
	got := FallbackLetter("something for my girlfriend")
	if !strings.Contains(got, "I love you") {
		t.Errorf("love template missing its core line: %q", got)
	}
}
