package model

import "time"

// Watched-channel import frequencies.
const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

// WatchedChannel is a YouTube channel whose uploads are imported on a schedule.
type WatchedChannel struct {
	ID        int64      `json:"id"`
	ChannelID string     `json:"channelId"`
	Title     string     `json:"title,omitempty"`
	Frequency string     `json:"frequency"`
	LastCheck *time.Time `json:"lastCheck,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// WatchedChannelRequest is the API request body for POST /import/channels.
type WatchedChannelRequest struct {
	ChannelID string `json:"channelId" validate:"required,min=10,max=32"`
	Title     string `json:"title" validate:"max=255"`
	Frequency string `json:"frequency" validate:"required,oneof=daily weekly"`
}

// ImportRequest is the API request body for POST /import/youtube.
type ImportRequest struct {
	PlaylistURL string `json:"playlistUrl" validate:"required,max=500"`
	CategoryID  *int64 `json:"categoryId" validate:"omitempty,gt=0"`
}

// ImportSummary reports per-item outcomes of a playlist import.
// The batch is never atomic: failed items are counted and skipped.
type ImportSummary struct {
	PlaylistID string `json:"playlistId"`
	Imported   int    `json:"imported"`
	Updated    int    `json:"updated"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
}
