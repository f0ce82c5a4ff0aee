package model

// Tag is attached to videos many-to-many via video_tags.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TagRequest is the create/update body for tags.
type TagRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}
