package service

import "testing"

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "full watch URL",
			input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLabcdef1234567890",
			want:  "PLabcdef1234567890",
		},
		{
			name:  "playlist URL",
			input: "https://www.youtube.com/playlist?list=PLrAXtmErZgOeiKm4sgNOknGvNjby9efdf",
			want:  "PLrAXtmErZgOeiKm4sgNOknGvNjby9efdf",
		},
		{
			name:  "raw playlist ID",
			input: "PLrAXtmErZgOeiKm4sgNOknGvNjby9efdf",
			want:  "PLrAXtmErZgOeiKm4sgNOknGvNjby9efdf",
		},
		{
			name:  "uploads playlist ID",
			input: "UUBR8-60-B28hp2BmDPdntcQ",
			want:  "UUBR8-60-B28hp2BmDPdntcQ",
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "URL without list parameter",
			input:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantErr: true,
		},
		{
			name:    "injection in raw ID",
			input:   "PL123; DROP TABLE videos",
			wantErr: true,
		},
		{
			name:    "whitespace trimmed",
			input:   "  PLrAXtmErZgOeiKm4sgNOknGvNjby9efdf  ",
			want:    "PLrAXtmErZgOeiKm4sgNOknGvNjby9efdf",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractPlaylistID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExtractPlaylistID(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractPlaylistID(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ExtractPlaylistID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestUploadsPlaylistID(t *testing.T) {
	tests := []struct {
		channelID string
		want      string
	}{
		{"UCBR8-60-B28hp2BmDPdntcQ", "UUBR8-60-B28hp2BmDPdntcQ"},
		{"UUBR8-60-B28hp2BmDPdntcQ", "UUBR8-60-B28hp2BmDPdntcQ"},
		{"PLsomething", "PLsomething"},
	}

	for _, tt := range tests {
		if got := UploadsPlaylistID(tt.channelID); got != tt.want {
			t.Errorf("UploadsPlaylistID(%q) = %q, want %q", tt.channelID, got, tt.want)
		}
	}
}

func TestParseISO8601Duration(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"PT3M20S", 200},
		{"PT1H2M3S", 3723},
		{"PT45S", 45},
		{"PT2H", 7200},
		{"PT0S", 0},
		{"", 0},
		{"P1DT2H", 0},
		{"garbage", 0},
	}

	for _, tt := range tests {
		if got := ParseISO8601Duration(tt.input); got != tt.want {
			t.Errorf("ParseISO8601Duration(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
