package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActionType enumerates the audited board operations
type ActionType string

const (
	ActionCreateBoard      ActionType = "create_board"
	ActionUpdateBoard      ActionType = "update_board"
	ActionDeleteBoard      ActionType = "delete_board"
	ActionCreateList       ActionType = "create_list"
	ActionUpdateList       ActionType = "update_list"
	ActionDeleteList       ActionType = "delete_list"
	ActionCreateCard       ActionType = "create_card"
	ActionUpdateCard       ActionType = "update_card"
	ActionMoveCard         ActionType = "move_card"
	ActionDeleteCard       ActionType = "delete_card"
	ActionAssignCard       ActionType = "assign_card"
	ActionUnassignCard     ActionType = "unassign_card"
	ActionAddComment       ActionType = "add_comment"
	ActionDeleteComment    ActionType = "delete_comment"
	ActionAddMember        ActionType = "add_member"
	ActionRemoveMember     ActionType = "remove_member"
	ActionUpdateMemberRole ActionType = "update_member_role"
)

// AllActionTypes lists every ActionType in declaration order.
var AllActionTypes = []ActionType{
	ActionCreateBoard, ActionUpdateBoard, ActionDeleteBoard,
	ActionCreateList, ActionUpdateList, ActionDeleteList,
	ActionCreateCard, ActionUpdateCard, ActionMoveCard, ActionDeleteCard,
	ActionAssignCard, ActionUnassignCard,
	ActionAddComment, ActionDeleteComment,
	ActionAddMember, ActionRemoveMember, ActionUpdateMemberRole,
}

func (t ActionType) IsValid() bool {
	for _, v := range AllActionTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Target types stored on Action.TargetType
const (
	TargetTypeBoard   = "board"
	TargetTypeList    = "list"
	TargetTypeCard    = "card"
	TargetTypeComment = "comment"
	TargetTypeMember  = "member"
)

// Action is an append-only audit record of a board mutation.
type Action struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Type        ActionType     `gorm:"type:varchar(40);not null" json:"type"`
	BoardID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_actions_board_created,priority:1" json:"boardId"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_actions_user_id" json:"userId"`
	TargetID    *uuid.UUID     `gorm:"type:uuid;index:idx_actions_target_id" json:"targetId,omitempty"`
	TargetType  string         `gorm:"type:varchar(40)" json:"targetType,omitempty"`
	Metadata    datatypes.JSON `json:"metadata,omitempty"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;index:idx_actions_board_created,priority:2" json:"createdAt"`
	Board       *Board         `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Action
func (Action) TableName() string {
	return "actions"
}

func (a *Action) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
