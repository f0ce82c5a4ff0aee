package repository

import (
	"strings"
	"testing"
)

func TestRatingUpsertReplacesScore(t *testing.T) {
	// One row per (video, user) pair: a repeat rating must update in place,
	// never insert a second row.
	if !strings.Contains(ratingUpsertSQL, "ON CONFLICT (video_id, user_id) DO UPDATE") {
		t.Error("rating upsert must resolve conflicts on the (video_id, user_id) key")
	}
	if !strings.Contains(ratingUpsertSQL, "score = EXCLUDED.score") {
		t.Error("rating upsert must replace the stored score with the new one")
	}
	if !strings.Contains(ratingUpsertSQL, "updated_at = NOW()") {
		t.Error("rating upsert must refresh updated_at on replace")
	}
}
