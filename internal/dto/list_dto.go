package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateListRequest represents the request to create a list
type CreateListRequest struct {
	BoardID  uuid.UUID `json:"boardId" binding:"required"`
	Title    string    `json:"title" binding:"required,min=1,max=255" example:"In Progress"`
	Position *int      `json:"position" binding:"omitempty,min=0" example:"0"`
}

// UpdateListRequest represents the request to update a list
type UpdateListRequest struct {
	Title    *string `json:"title" binding:"omitempty,min=1,max=255"`
	Position *int    `json:"position" binding:"omitempty,min=0"`
}

// ListResponse represents a list
type ListResponse struct {
	ID        uuid.UUID `json:"id"`
	BoardID   uuid.UUID `json:"boardId"`
	Title     string    `json:"title"`
	Position  int       `json:"position"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
