package middleware

import (
	"strings"
	"testing"
)

func TestValidateYouTubeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{"standard id", "dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"trims whitespace", "  dQw4w9WgXcQ  ", "dQw4w9WgXcQ", false},
		{"underscore and dash ok", "abc_def-123", "abc_def-123", false},
		{"empty", "", "", true},
		{"too short", "abc", "", true},
		{"too long", strings.Repeat("a", 17), "", true},
		{"invalid characters", "dQw4w9!gXcQ", "", true},
		{"sql injection attempt", "'; DROP TABLE", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateYouTubeID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error for %q, got none", tt.input)
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error for %q: %s", tt.input, errMsg)
			}
			if got != tt.wantID {
				t.Errorf("id = %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestValidateChannelID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uploads channel", "UCuAXFkgsw1L7xaCfnd5JJOw", false},
		{"short but valid", "UC12345678", false},
		{"empty", "", true},
		{"too long", strings.Repeat("U", 33), true},
		{"invalid characters", "UC!@#$%^&*()", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errMsg := ValidateChannelID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error for %q, got none", tt.input)
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error for %q: %s", tt.input, errMsg)
			}
		})
	}
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/videos/42", "/api/videos/:id"},
		{"/api/videos/42/comments", "/api/videos/:id/comments"},
		{"/api/comments/7", "/api/comments/:id"},
		{"/api/videos", "/api/videos"},
		{"/health/live", "/health/live"},
	}

	for _, tt := range tests {
		if got := sanitizePath(tt.path); got != tt.want {
			t.Errorf("sanitizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
