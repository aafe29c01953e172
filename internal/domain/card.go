package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CardPriority represents the urgency of a card
type CardPriority string

const (
	CardPriorityLow      CardPriority = "low"
	CardPriorityMedium   CardPriority = "medium"
	CardPriorityHigh     CardPriority = "high"
	CardPriorityCritical CardPriority = "critical"
)

func (p CardPriority) IsValid() bool {
	switch p {
	case CardPriorityLow, CardPriorityMedium, CardPriorityHigh, CardPriorityCritical:
		return true
	}
	return false
}

// CardStatus represents the workflow state of a card
type CardStatus string

const (
	CardStatusTodo       CardStatus = "todo"
	CardStatusInProgress CardStatus = "in_progress"
	CardStatusInReview   CardStatus = "in_review"
	CardStatusDone       CardStatus = "done"
)

func (s CardStatus) IsValid() bool {
	switch s {
	case CardStatusTodo, CardStatusInProgress, CardStatusInReview, CardStatusDone:
		return true
	}
	return false
}

// Card is a unit of work inside a list.
type Card struct {
	BaseModel
	ListID         uuid.UUID      `gorm:"type:uuid;not null;index:idx_cards_list_position,priority:1" json:"listId"`
	CreatedByID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_cards_created_by_id" json:"createdById"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	DueDate        *time.Time     `gorm:"type:timestamp" json:"dueDate"`
	Priority       CardPriority   `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Status         CardStatus     `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	Position       int            `gorm:"not null;default:0;index:idx_cards_list_position,priority:2" json:"position"`
	Labels         datatypes.JSON `json:"labels"`
	EstimatedHours *float64       `json:"estimatedHours"`
	SpentHours     *float64       `json:"spentHours"`
	CoverImage     string         `gorm:"type:varchar(500)" json:"coverImage"`
	List           *List          `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Card
func (Card) TableName() string {
	return "cards"
}

func (c *Card) GetID() uuid.UUID { return c.ID }

func (c *Card) SetPosition(p int) { c.Position = p }

func (c *Card) GetPosition() int { return c.Position }

// LabelList decodes the stored labels; malformed or empty data yields an empty slice.
func (c *Card) LabelList() []string {
	labels := []string{}
	if len(c.Labels) == 0 {
		return labels
	}
	if err := json.Unmarshal(c.Labels, &labels); err != nil {
		return []string{}
	}
	return labels
}

// SetLabels stores labels as a JSON array with duplicates removed.
func (c *Card) SetLabels(labels []string) {
	seen := make(map[string]struct{}, len(labels))
	unique := make([]string, 0, len(labels))
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		unique = append(unique, l)
	}
	data, _ := json.Marshal(unique)
	c.Labels = datatypes.JSON(data)
}

// CardAssignee is the join row between a card and an assigned user.
type CardAssignee struct {
	CardID uuid.UUID `gorm:"type:uuid;primaryKey" json:"cardId"`
	UserID uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_card_assignees_user_id" json:"userId"`
	Card   *Card     `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for CardAssignee
func (CardAssignee) TableName() string {
	return "card_assignees"
}

// CardWatcher is the join row between a card and a watching user.
type CardWatcher struct {
	CardID uuid.UUID `gorm:"type:uuid;primaryKey" json:"cardId"`
	UserID uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_card_watchers_user_id" json:"userId"`
	Card   *Card     `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for CardWatcher
func (CardWatcher) TableName() string {
	return "card_watchers"
}
