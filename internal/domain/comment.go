package domain

import "github.com/google/uuid"

// CardComment is a comment posted on a card.
type CardComment struct {
	BaseModel
	CardID   uuid.UUID `gorm:"type:uuid;not null;index:idx_card_comments_card_id" json:"cardId"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index:idx_card_comments_author_id" json:"authorId"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	Card     *Card     `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for CardComment
func (CardComment) TableName() string {
	return "card_comments"
}
