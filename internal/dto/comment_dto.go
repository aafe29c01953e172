package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCommentRequest represents the request to comment on a card
type CreateCommentRequest struct {
	CardID  uuid.UUID `json:"cardId" binding:"required"`
	Content string    `json:"content" binding:"required,min=1,max=10000"`
}

// UpdateCommentRequest represents the request to edit a comment
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=10000"`
}

// CommentResponse represents a card comment
type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	CardID    uuid.UUID `json:"cardId"`
	AuthorID  uuid.UUID `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
