package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

// CommentRepository defines the interface for card comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.CardComment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.CardComment, error)
	FindByCard(ctx context.Context, cardID uuid.UUID) ([]*domain.CardComment, error)
	Update(ctx context.Context, comment *domain.CardComment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type commentRepositoryImpl struct {
	db *gorm.DB
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepositoryImpl{db: db}
}

func (r *commentRepositoryImpl) Create(ctx context.Context, comment *domain.CardComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.CardComment, error) {
	var comment domain.CardComment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByCard returns the comments of a card, oldest first
func (r *commentRepositoryImpl) FindByCard(ctx context.Context, cardID uuid.UUID) ([]*domain.CardComment, error) {
	var comments []*domain.CardComment
	if err := r.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepositoryImpl) Update(ctx context.Context, comment *domain.CardComment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.CardComment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
