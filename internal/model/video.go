package model

import "time"

// Video represents a catalogued YouTube video.
type Video struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	YouTubeID     string     `json:"youtubeId"`
	Description   string     `json:"description"`
	CategoryID    *int64     `json:"categoryId,omitempty"`
	SubcategoryID *int64     `json:"subcategoryId,omitempty"`
	Duration      int        `json:"duration"`
	Views         int64      `json:"views"`
	ThumbnailURL  string     `json:"thumbnailUrl"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Tags          []Tag      `json:"tags,omitempty"`
}

// VideoCreateRequest is the API request body for POST /videos.
type VideoCreateRequest struct {
	Title         string  `json:"title" validate:"required,min=1,max=255"`
	YouTubeID     string  `json:"youtubeId" validate:"required,min=8,max=16"`
	Description   string  `json:"description" validate:"max=5000"`
	CategoryID    *int64  `json:"categoryId" validate:"omitempty,gt=0"`
	SubcategoryID *int64  `json:"subcategoryId" validate:"omitempty,gt=0"`
	Duration      int     `json:"duration" validate:"gte=0"`
	ThumbnailURL  string  `json:"thumbnailUrl" validate:"omitempty,url,max=255"`
	TagIDs        []int64 `json:"tagIds" validate:"omitempty,dive,gt=0"`
}

// VideoUpdateRequest is the API request body for PUT /videos/:id.
// Nil fields are left unchanged (partial merge).
type VideoUpdateRequest struct {
	Title         *string  `json:"title" validate:"omitempty,min=1,max=255"`
	Description   *string  `json:"description" validate:"omitempty,max=5000"`
	CategoryID    *int64   `json:"categoryId" validate:"omitempty,gt=0"`
	SubcategoryID *int64   `json:"subcategoryId" validate:"omitempty,gt=0"`
	Duration      *int     `json:"duration" validate:"omitempty,gte=0"`
	ThumbnailURL  *string  `json:"thumbnailUrl" validate:"omitempty,url,max=255"`
	TagIDs        *[]int64 `json:"tagIds" validate:"omitempty,dive,gt=0"`
}

// VideoFilter narrows video listings.
type VideoFilter struct {
	CategoryID    *int64
	SubcategoryID *int64
	TagID         *int64
	Search        string
}

// Page wraps paginated list responses.
type Page[T any] struct {
	Data  []T `json:"data"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}
