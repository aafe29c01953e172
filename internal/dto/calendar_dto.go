package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateEventRequest represents the request to create a calendar event
// @Description startDate and endDate must be in the future and endDate must be after startDate
type CreateEventRequest struct {
	WorkspaceID uuid.UUID `json:"workspaceId" binding:"required"`
	Title       string    `json:"title" binding:"required,min=1,max=255" example:"Sprint review"`
	Description string    `json:"description" binding:"max=5000"`
	StartDate   time.Time `json:"startDate" binding:"required" example:"2026-03-01T09:00:00Z"`
	EndDate     time.Time `json:"endDate" binding:"required" example:"2026-03-01T10:00:00Z"`
	Location    string    `json:"location" binding:"max=255"`
	Color       string    `json:"color" binding:"max=20"`
}

// UpdateEventRequest represents the request to update a calendar event.
// Empty text fields are left unchanged.
type UpdateEventRequest struct {
	Title       string     `json:"title" binding:"max=255"`
	Description string     `json:"description" binding:"max=5000"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Location    string     `json:"location" binding:"max=255"`
	Color       string     `json:"color" binding:"max=20"`
}

// EventResponse represents a calendar event
type EventResponse struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspaceId"`
	CreatedByID uuid.UUID `json:"createdById"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Status      string    `json:"status"`
	Location    string    `json:"location"`
	Color       string    `json:"color"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
