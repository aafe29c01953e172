package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateBoardRequest represents the request to create a board
type CreateBoardRequest struct {
	WorkspaceID     uuid.UUID `json:"workspaceId" binding:"required" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	Name            string    `json:"name" binding:"required,min=1,max=255" example:"Sprint 12"`
	Description     string    `json:"description" binding:"max=2000"`
	Color           string    `json:"color" binding:"max=20" example:"#0079bf"`
	BackgroundImage string    `json:"backgroundImage" binding:"max=500"`
	Visibility      string    `json:"visibility" binding:"omitempty,oneof=private workspace public" example:"private"`
}

// UpdateBoardRequest represents the request to update a board. All fields are optional.
type UpdateBoardRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description     *string `json:"description" binding:"omitempty,max=2000"`
	Color           *string `json:"color" binding:"omitempty,max=20"`
	BackgroundImage *string `json:"backgroundImage" binding:"omitempty,max=500"`
	Visibility      *string `json:"visibility" binding:"omitempty,oneof=private workspace public"`
}

// BoardResponse represents a board
type BoardResponse struct {
	ID              uuid.UUID `json:"id"`
	WorkspaceID     uuid.UUID `json:"workspaceId"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Color           string    `json:"color"`
	BackgroundImage string    `json:"backgroundImage"`
	Visibility      string    `json:"visibility"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BoardAccessResponse tells whether a user can see a board and with which role
type BoardAccessResponse struct {
	BoardID   uuid.UUID `json:"boardId"`
	UserID    uuid.UUID `json:"userId"`
	HasAccess bool      `json:"hasAccess"`
	Role      string    `json:"role,omitempty"`
}

// ReorderRequest carries the desired order of the children of a board or list
// @Description ids not listed keep their relative order and are placed after the listed ones
type ReorderRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}
