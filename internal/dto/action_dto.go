package dto

import (
	"time"

	"github.com/google/uuid"
)

// ActionResponse represents an audit log entry
type ActionResponse struct {
	ID          uuid.UUID              `json:"id"`
	Type        string                 `json:"type"`
	BoardID     uuid.UUID              `json:"boardId"`
	UserID      uuid.UUID              `json:"userId"`
	TargetID    *uuid.UUID             `json:"targetId,omitempty"`
	TargetType  string                 `json:"targetType,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Description string                 `json:"description,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}
