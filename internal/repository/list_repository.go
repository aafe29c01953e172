package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

// ListRepository defines the interface for list data access
type ListRepository interface {
	Create(ctx context.Context, list *domain.List) error
	// FindByID returns an active list only.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.List, error)
	// FindByIDAny returns the list regardless of its active flag.
	FindByIDAny(ctx context.Context, id uuid.UUID) (*domain.List, error)
	FindByBoard(ctx context.Context, boardID uuid.UUID) ([]*domain.List, error)
	NextPosition(ctx context.Context, boardID uuid.UUID) (int, error)
	Update(ctx context.Context, list *domain.List) error
	UpdatePositions(ctx context.Context, lists []*domain.List) error
}

type listRepositoryImpl struct {
	db *gorm.DB
}

// NewListRepository creates a new instance of ListRepository
func NewListRepository(db *gorm.DB) ListRepository {
	return &listRepositoryImpl{db: db}
}

func (r *listRepositoryImpl) Create(ctx context.Context, list *domain.List) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *listRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.List, error) {
	var list domain.List
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *listRepositoryImpl) FindByIDAny(ctx context.Context, id uuid.UUID) (*domain.List, error) {
	var list domain.List
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// FindByBoard returns active lists ordered by position; equal positions fall back to creation time
func (r *listRepositoryImpl) FindByBoard(ctx context.Context, boardID uuid.UUID) ([]*domain.List, error) {
	var lists []*domain.List
	if err := r.db.WithContext(ctx).
		Where("board_id = ? AND is_active = ?", boardID, true).
		Order("position ASC").
		Order("created_at ASC").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// NextPosition returns one past the highest position among the active lists
// of the board, or 0 for an empty board.
func (r *listRepositoryImpl) NextPosition(ctx context.Context, boardID uuid.UUID) (int, error) {
	var next int
	if err := r.db.WithContext(ctx).Model(&domain.List{}).
		Where("board_id = ? AND is_active = ?", boardID, true).
		Select("COALESCE(MAX(position), -1) + 1").
		Scan(&next).Error; err != nil {
		return 0, err
	}
	return next, nil
}

func (r *listRepositoryImpl) Update(ctx context.Context, list *domain.List) error {
	return r.db.WithContext(ctx).Save(list).Error
}

// UpdatePositions writes the position of every list in a single transaction
func (r *listRepositoryImpl) UpdatePositions(ctx context.Context, lists []*domain.List) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, l := range lists {
			if err := tx.Model(&domain.List{}).
				Where("id = ?", l.ID).
				Update("position", l.Position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
