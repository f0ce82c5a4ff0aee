package slug

import (
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple name", "Gaming", "gaming"},
		{"spaces become dashes", "Retro Gaming", "retro-gaming"},
		{"punctuation collapses", "Rock & Roll!!", "rock-roll"},
		{"mixed case", "DIY Tutorials", "diy-tutorials"},
		{"numbers kept", "Top 10 Lists", "top-10-lists"},
		{"leading and trailing junk", "  --Cooking--  ", "cooking"},
		{"consecutive separators", "news // politics", "news-politics"},
		{"empty", "", ""},
		{"only punctuation", "!?&", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Make(tt.input)
			if got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMake_TruncatesLongNames(t *testing.T) {
	long := strings.Repeat("category ", 40)
	got := Make(long)

	if len(got) > MaxLen {
		t.Errorf("slug length = %d, want <= %d", len(got), MaxLen)
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("truncated slug should not end with a dash: %q", got)
	}
}

func TestMake_OutputAlwaysValid(t *testing.T) {
	inputs := []string{"Gaming", "Rock & Roll", "  weird   spacing  ", "Ünïcödé Nämé", "a"}
	for _, in := range inputs {
		got := Make(in)
		if got != "" && !IsValid(got) {
			t.Errorf("Make(%q) produced invalid slug %q", in, got)
		}
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"gaming", true},
		{"retro-gaming", true},
		{"top-10", true},
		{"", false},
		{"-leading", false},
		{"trailing-", false},
		{"double--dash", false},
		{"Upper", false},
		{"with space", false},
		{"unders_core", false},
	}

	for _, tt := range tests {
		if got := IsValid(tt.slug); got != tt.want {
			t.Errorf("IsValid(%q) = %v, want %v", tt.slug, got, tt.want)
		}
	}
}
