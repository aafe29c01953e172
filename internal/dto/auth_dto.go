package dto

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest represents the request to create an account
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password  string `json:"password" binding:"required,min=6,max=72" example:"s3cret!"`
	FirstName string `json:"firstName" binding:"required,max=100" example:"Ada"`
	LastName  string `json:"lastName" binding:"required,max=100" example:"Lovelace"`
}

// LoginRequest represents the request to log in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret!"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID        uuid.UUID `json:"id" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	Email     string    `json:"email" example:"ada@example.com"`
	FirstName string    `json:"firstName" example:"Ada"`
	LastName  string    `json:"lastName" example:"Lovelace"`
	Avatar    string    `json:"avatar,omitempty"`
	IsActive  bool      `json:"isActive" example:"true"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse is returned by register and login
// @Description access_token is a Bearer JWT valid until expiresAt
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expiresAt"`
}

// UpdateProfileRequest represents the request to update the current user. All fields are optional.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1,max=100"`
	Avatar    *string `json:"avatar" binding:"omitempty,max=500"`
}
