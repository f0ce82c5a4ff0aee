package model

import "time"

// Comment belongs to a video and a user. Username is joined in for display.
type Comment struct {
	ID        int64     `json:"id"`
	VideoID   int64     `json:"videoId"`
	UserID    int64     `json:"userId"`
	Username  string    `json:"username,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentRequest is the create/update body for comments.
type CommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// Rating is one row per (video, user); resubmitting replaces the score.
type Rating struct {
	VideoID   int64     `json:"videoId"`
	UserID    int64     `json:"userId"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RatingRequest is the API request body for POST /videos/:id/rating.
type RatingRequest struct {
	Score int `json:"score" validate:"required,gte=1,lte=5"`
}

// RatingResponse is returned by both GET and POST rating endpoints.
type RatingResponse struct {
	UserRating    *int    `json:"userRating,omitempty"`
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int     `json:"totalRatings"`
}
