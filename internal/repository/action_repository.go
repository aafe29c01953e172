package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

// ActionRepository defines the interface for the append-only audit log.
// There is intentionally no update or delete.
type ActionRepository interface {
	Create(ctx context.Context, action *domain.Action) error
	FindByBoard(ctx context.Context, boardID uuid.UUID, limit int) ([]*domain.Action, error)
	FindByBoardAndUser(ctx context.Context, boardID, userID uuid.UUID, limit int) ([]*domain.Action, error)
	FindByTarget(ctx context.Context, targetID uuid.UUID) ([]*domain.Action, error)
}

type actionRepositoryImpl struct {
	db *gorm.DB
}

// NewActionRepository creates a new instance of ActionRepository
func NewActionRepository(db *gorm.DB) ActionRepository {
	return &actionRepositoryImpl{db: db}
}

func (r *actionRepositoryImpl) Create(ctx context.Context, action *domain.Action) error {
	return r.db.WithContext(ctx).Create(action).Error
}

func (r *actionRepositoryImpl) FindByBoard(ctx context.Context, boardID uuid.UUID, limit int) ([]*domain.Action, error) {
	var actions []*domain.Action
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("created_at DESC").
		Limit(limit).
		Find(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}

func (r *actionRepositoryImpl) FindByBoardAndUser(ctx context.Context, boardID, userID uuid.UUID, limit int) ([]*domain.Action, error) {
	var actions []*domain.Action
	if err := r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}

func (r *actionRepositoryImpl) FindByTarget(ctx context.Context, targetID uuid.UUID) ([]*domain.Action, error) {
	var actions []*domain.Action
	if err := r.db.WithContext(ctx).
		Where("target_id = ?", targetID).
		Order("created_at DESC").
		Find(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}
