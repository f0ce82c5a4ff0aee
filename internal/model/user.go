package model

import "time"

// User represents a registered account. PasswordHash is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RegisterRequest is the API request body for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the API request body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserCreateRequest is the API request body for POST /users (admin). Unlike
// self-registration it may set the admin flag.
type UserCreateRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	IsAdmin  bool   `json:"isAdmin"`
}

// UserUpdateRequest is the API request body for PUT /users/:id.
// All fields optional; only admins may change IsAdmin.
type UserUpdateRequest struct {
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
	IsAdmin  *bool   `json:"isAdmin"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// StatsResponse is the API response for global statistics.
type StatsResponse struct {
	TotalVideos     int            `json:"totalVideos"`
	TotalCategories int            `json:"totalCategories"`
	TotalTags       int            `json:"totalTags"`
	TotalComments   int            `json:"totalComments"`
	TotalRatings    int            `json:"totalRatings"`
	TotalUsers      int            `json:"totalUsers"`
	TopCategories   map[string]int `json:"topCategories"`
}
