package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateWorkspaceRequest represents the request to create a workspace
type CreateWorkspaceRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255" example:"Platform Team"`
	Description string `json:"description" binding:"max=1000"`
	Logo        string `json:"logo" binding:"max=500"`
}

// UpdateWorkspaceRequest represents the request to update a workspace
type UpdateWorkspaceRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Logo        *string `json:"logo" binding:"omitempty,max=500"`
}

// WorkspaceResponse represents a workspace
type WorkspaceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Logo        string    `json:"logo"`
	OwnerID     uuid.UUID `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AddMemberRequest adds a user to a workspace or a board
type AddMemberRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	Role   string    `json:"role" binding:"omitempty,oneof=admin member observer" example:"member"`
}

// UpdateMemberRoleRequest changes the role of a board member
type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin member observer" example:"admin"`
}

// MemberResponse represents a workspace or board membership
type MemberResponse struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"userId"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}
