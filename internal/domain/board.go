package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BoardVisibility controls who can discover a board.
type BoardVisibility string

const (
	BoardVisibilityPrivate   BoardVisibility = "private"
	BoardVisibilityWorkspace BoardVisibility = "workspace"
	BoardVisibilityPublic    BoardVisibility = "public"
)

func (v BoardVisibility) IsValid() bool {
	switch v {
	case BoardVisibilityPrivate, BoardVisibilityWorkspace, BoardVisibilityPublic:
		return true
	}
	return false
}

// Board is a container of ordered lists inside a workspace.
// IsActive=false marks the board as removed; children keep their own flags.
type Board struct {
	BaseModel
	WorkspaceID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_boards_workspace_id" json:"workspaceId"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description"`
	Color           string          `gorm:"type:varchar(20)" json:"color"`
	BackgroundImage string          `gorm:"type:varchar(500)" json:"backgroundImage"`
	Visibility      BoardVisibility `gorm:"type:varchar(20);not null;default:'private'" json:"visibility"`
	IsActive        bool            `gorm:"not null;default:true;index:idx_boards_is_active" json:"isActive"`
	Workspace       *Workspace      `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Board
func (Board) TableName() string {
	return "boards"
}

// BoardMember links a user to a board with a role.
type BoardMember struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BoardID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_board_members_board_id;uniqueIndex:uq_board_members_board_user" json:"boardId"`
	UserID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_board_members_user_id;uniqueIndex:uq_board_members_board_user" json:"userId"`
	Role     MemberRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	JoinedAt time.Time  `gorm:"not null" json:"joinedAt"`
	Board    *Board     `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for BoardMember
func (BoardMember) TableName() string {
	return "board_members"
}

func (m *BoardMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}
	return nil
}

// IsAdmin reports whether the member may mutate the board.
func (m BoardMember) IsAdmin() bool {
	return m.Role == MemberRoleAdmin
}
