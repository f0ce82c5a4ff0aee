package handler

import "testing"

func TestSanitizeEndpoint(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/videos", "/api/videos"},
		{"/api/videos/42", "/api/videos/:id"},
		{"/api/videos/42/comments", "/api/videos/:id/comments"},
		{"/api/videos/42/rating", "/api/videos/:id/rating"},
		{"/api/comments/1337", "/api/comments/:id"},
		{"/api/users/7", "/api/users/:id"},
		{"/api/stats", "/api/stats"},
		{"/health/ready", "/health/ready"},
	}

	for _, tt := range tests {
		if got := sanitizeEndpoint(tt.path); got != tt.want {
			t.Errorf("sanitizeEndpoint(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
