package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workspace groups boards and calendar events.
type Workspace struct {
	BaseModel
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Logo        string    `gorm:"type:varchar(500)" json:"logo"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index:idx_workspaces_owner_id" json:"ownerId"`
}

// TableName specifies the table name for Workspace
func (Workspace) TableName() string {
	return "workspaces"
}

// WorkspaceMember links a user to a workspace with a role.
type WorkspaceMember struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	WorkspaceID uuid.UUID  `gorm:"type:uuid;not null;index:idx_workspace_members_workspace_id;uniqueIndex:uq_workspace_members_workspace_user" json:"workspaceId"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_workspace_members_user_id;uniqueIndex:uq_workspace_members_workspace_user" json:"userId"`
	Role        MemberRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	JoinedAt    time.Time  `gorm:"not null" json:"joinedAt"`
	Workspace   *Workspace `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for WorkspaceMember
func (WorkspaceMember) TableName() string {
	return "workspace_members"
}

func (m *WorkspaceMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}
	return nil
}
