package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard-api/internal/domain"
)

// CardRepository defines the interface for card data access
type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	FindByList(ctx context.Context, listID uuid.UUID) ([]*domain.Card, error)
	NextPosition(ctx context.Context, listID uuid.UUID) (int, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, card *domain.Card) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdatePositions(ctx context.Context, cards []*domain.Card) error

	AddAssignee(ctx context.Context, cardID, userID uuid.UUID) error
	RemoveAssignee(ctx context.Context, cardID, userID uuid.UUID) error
	FindAssignees(ctx context.Context, cardIDs []uuid.UUID) ([]*domain.CardAssignee, error)
	AddWatcher(ctx context.Context, cardID, userID uuid.UUID) error
	RemoveWatcher(ctx context.Context, cardID, userID uuid.UUID) error
	FindWatchers(ctx context.Context, cardIDs []uuid.UUID) ([]*domain.CardWatcher, error)
}

type cardRepositoryImpl struct {
	db *gorm.DB
}

// NewCardRepository creates a new instance of CardRepository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepositoryImpl{db: db}
}

func (r *cardRepositoryImpl) Create(ctx context.Context, card *domain.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *cardRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	var card domain.Card
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// FindByList returns cards ordered by position; equal positions fall back to creation time
func (r *cardRepositoryImpl) FindByList(ctx context.Context, listID uuid.UUID) ([]*domain.Card, error) {
	var cards []*domain.Card
	if err := r.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("position ASC").
		Order("created_at ASC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// NextPosition returns one past the highest card position in the list
func (r *cardRepositoryImpl) NextPosition(ctx context.Context, listID uuid.UUID) (int, error) {
	var next int
	if err := r.db.WithContext(ctx).Model(&domain.Card{}).
		Where("list_id = ?", listID).
		Select("COALESCE(MAX(position), -1) + 1").
		Scan(&next).Error; err != nil {
		return 0, err
	}
	return next, nil
}

func (r *cardRepositoryImpl) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Card{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *cardRepositoryImpl) Update(ctx context.Context, card *domain.Card) error {
	return r.db.WithContext(ctx).Save(card).Error
}

// Delete hard deletes the card with its comments and join rows
func (r *cardRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", id).Delete(&domain.CardComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id = ?", id).Delete(&domain.CardAssignee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id = ?", id).Delete(&domain.CardWatcher{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&domain.Card{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// UpdatePositions writes the position of every card in a single transaction
func (r *cardRepositoryImpl) UpdatePositions(ctx context.Context, cards []*domain.Card) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range cards {
			if err := tx.Model(&domain.Card{}).
				Where("id = ?", c.ID).
				Update("position", c.Position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AddAssignee is a no-op when the user is already assigned
func (r *cardRepositoryImpl) AddAssignee(ctx context.Context, cardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.CardAssignee{CardID: cardID, UserID: userID}).Error
}

func (r *cardRepositoryImpl) RemoveAssignee(ctx context.Context, cardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("card_id = ? AND user_id = ?", cardID, userID).
		Delete(&domain.CardAssignee{}).Error
}

func (r *cardRepositoryImpl) FindAssignees(ctx context.Context, cardIDs []uuid.UUID) ([]*domain.CardAssignee, error) {
	if len(cardIDs) == 0 {
		return []*domain.CardAssignee{}, nil
	}
	var rows []*domain.CardAssignee
	if err := r.db.WithContext(ctx).Where("card_id IN ?", cardIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// AddWatcher is a no-op when the user already watches the card
func (r *cardRepositoryImpl) AddWatcher(ctx context.Context, cardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.CardWatcher{CardID: cardID, UserID: userID}).Error
}

func (r *cardRepositoryImpl) RemoveWatcher(ctx context.Context, cardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("card_id = ? AND user_id = ?", cardID, userID).
		Delete(&domain.CardWatcher{}).Error
}

func (r *cardRepositoryImpl) FindWatchers(ctx context.Context, cardIDs []uuid.UUID) ([]*domain.CardWatcher, error) {
	if len(cardIDs) == 0 {
		return []*domain.CardWatcher{}, nil
	}
	var rows []*domain.CardWatcher
	if err := r.db.WithContext(ctx).Where("card_id IN ?", cardIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
