package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus is the lifecycle state of a calendar event
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusUpcoming, EventStatusOngoing, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// CalendarEvent is a dated event in a workspace calendar.
// Status is a cached value of DeriveEventStatus and goes stale until recomputed.
type CalendarEvent struct {
	BaseModel
	WorkspaceID uuid.UUID   `gorm:"type:uuid;not null;index:idx_calendar_events_workspace_start,priority:1" json:"workspaceId"`
	CreatedByID uuid.UUID   `gorm:"type:uuid;not null" json:"createdById"`
	Title       string      `gorm:"type:varchar(255);not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	StartDate   time.Time   `gorm:"type:timestamp;not null;index:idx_calendar_events_workspace_start,priority:2" json:"startDate"`
	EndDate     time.Time   `gorm:"type:timestamp;not null" json:"endDate"`
	Status      EventStatus `gorm:"type:varchar(20);not null;default:'upcoming';index:idx_calendar_events_status" json:"status"`
	Location    string      `gorm:"type:varchar(255)" json:"location"`
	Color       string      `gorm:"type:varchar(20)" json:"color"`
	IsActive    bool        `gorm:"not null;default:true" json:"isActive"`
	Workspace   *Workspace  `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for CalendarEvent
func (CalendarEvent) TableName() string {
	return "calendar_events"
}

// DeriveEventStatus computes the status of an event at now.
// Cancelled is terminal and is never replaced.
func DeriveEventStatus(now, start, end time.Time, current EventStatus) EventStatus {
	if current == EventStatusCancelled {
		return EventStatusCancelled
	}
	if now.Before(start) {
		return EventStatusUpcoming
	}
	if now.Before(end) {
		return EventStatusOngoing
	}
	return EventStatusCompleted
}
