package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCardRequest represents the request to create a card
type CreateCardRequest struct {
	ListID         uuid.UUID  `json:"listId" binding:"required"`
	Title          string     `json:"title" binding:"required,min=1,max=255" example:"Fix login redirect"`
	Description    string     `json:"description" binding:"max=10000"`
	DueDate        *time.Time `json:"dueDate,omitempty" example:"2026-03-31T23:59:59Z"`
	Priority       string     `json:"priority" binding:"omitempty,oneof=low medium high critical" example:"medium"`
	Status         string     `json:"status" binding:"omitempty,oneof=todo in_progress in_review done" example:"todo"`
	Position       *int       `json:"position" binding:"omitempty,min=0"`
	Labels         []string   `json:"labels" binding:"omitempty,max=20,dive,max=50"`
	EstimatedHours *float64   `json:"estimatedHours" binding:"omitempty,min=0"`
}

// UpdateCardRequest represents the request to update a card. All fields are optional.
type UpdateCardRequest struct {
	Title          *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Description    *string    `json:"description" binding:"omitempty,max=10000"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	Priority       *string    `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	Status         *string    `json:"status" binding:"omitempty,oneof=todo in_progress in_review done"`
	Position       *int       `json:"position" binding:"omitempty,min=0"`
	Labels         []string   `json:"labels" binding:"omitempty,max=20,dive,max=50"`
	EstimatedHours *float64   `json:"estimatedHours" binding:"omitempty,min=0"`
	SpentHours     *float64   `json:"spentHours" binding:"omitempty,min=0"`
	CoverImage     *string    `json:"coverImage" binding:"omitempty,max=500"`
}

// MoveCardRequest moves a card to another list at a given position
type MoveCardRequest struct {
	ListID   uuid.UUID `json:"listId" binding:"required"`
	Position *int      `json:"position" binding:"required,min=0"`
}

// UserRefRequest names a single user (assignee or watcher)
type UserRefRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
}

// CardResponse represents a card with its assignee and watcher ids
type CardResponse struct {
	ID             uuid.UUID   `json:"id"`
	ListID         uuid.UUID   `json:"listId"`
	CreatedByID    uuid.UUID   `json:"createdById"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	DueDate        *time.Time  `json:"dueDate,omitempty"`
	Priority       string      `json:"priority"`
	Status         string      `json:"status"`
	Position       int         `json:"position"`
	Labels         []string    `json:"labels"`
	EstimatedHours *float64    `json:"estimatedHours,omitempty"`
	SpentHours     *float64    `json:"spentHours,omitempty"`
	CoverImage     string      `json:"coverImage,omitempty"`
	AssigneeIDs    []uuid.UUID `json:"assigneeIds"`
	WatcherIDs     []uuid.UUID `json:"watcherIds"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}
