package domain

import "github.com/google/uuid"

// List is an ordered container of cards within a board.
type List struct {
	BaseModel
	BoardID  uuid.UUID `gorm:"type:uuid;not null;index:idx_lists_board_position,priority:1" json:"boardId"`
	Title    string    `gorm:"type:varchar(255);not null" json:"title"`
	Position int       `gorm:"not null;default:0;index:idx_lists_board_position,priority:2" json:"position"`
	IsActive bool      `gorm:"not null;default:true" json:"isActive"`
	Board    *Board    `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for List
func (List) TableName() string {
	return "lists"
}

func (l *List) GetID() uuid.UUID { return l.ID }

func (l *List) SetPosition(p int) { l.Position = p }

func (l *List) GetPosition() int { return l.Position }
