package model

import "time"

// Category is a top-level grouping. ParentID allows one level of nesting.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ParentID  *int64    `json:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Subcategory always belongs to exactly one category.
type Subcategory struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	CategoryID int64     `json:"categoryId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CategoryRequest is the create/update body for categories.
type CategoryRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	ParentID *int64 `json:"parentId" validate:"omitempty,gt=0"`
}

// SubcategoryRequest is the create/update body for subcategories.
type SubcategoryRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	CategoryID int64  `json:"categoryId" validate:"required,gt=0"`
}
