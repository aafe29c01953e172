package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

// BoardRepository defines the interface for board and board member data access
type BoardRepository interface {
	Create(ctx context.Context, board *domain.Board) error
	// FindByID returns an active board only.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	// FindByIDAny returns the board regardless of its active flag.
	FindByIDAny(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Board, error)
	Update(ctx context.Context, board *domain.Board) error
	CountActive(ctx context.Context) (int64, error)

	AddMember(ctx context.Context, member *domain.BoardMember) error
	FindMember(ctx context.Context, boardID, userID uuid.UUID) (*domain.BoardMember, error)
	FindMembers(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardMember, error)
	UpdateMember(ctx context.Context, member *domain.BoardMember) error
	RemoveMember(ctx context.Context, boardID, userID uuid.UUID) error
	CountAdmins(ctx context.Context, boardID uuid.UUID) (int64, error)
}

type boardRepositoryImpl struct {
	db *gorm.DB
}

// NewBoardRepository creates a new instance of BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepositoryImpl{db: db}
}

func (r *boardRepositoryImpl) Create(ctx context.Context, board *domain.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

func (r *boardRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	var board domain.Board
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&board).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *boardRepositoryImpl) FindByIDAny(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	var board domain.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// FindByWorkspace returns active boards of a workspace, newest first
func (r *boardRepositoryImpl) FindByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Board, error) {
	var boards []*domain.Board
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND is_active = ?", workspaceID, true).
		Order("created_at DESC").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

func (r *boardRepositoryImpl) Update(ctx context.Context, board *domain.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}

func (r *boardRepositoryImpl) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Board{}).
		Where("is_active = ?", true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *boardRepositoryImpl) AddMember(ctx context.Context, member *domain.BoardMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *boardRepositoryImpl) FindMember(ctx context.Context, boardID, userID uuid.UUID) (*domain.BoardMember, error) {
	var member domain.BoardMember
	if err := r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *boardRepositoryImpl) FindMembers(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardMember, error) {
	var members []*domain.BoardMember
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *boardRepositoryImpl) UpdateMember(ctx context.Context, member *domain.BoardMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *boardRepositoryImpl) RemoveMember(ctx context.Context, boardID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&domain.BoardMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *boardRepositoryImpl) CountAdmins(ctx context.Context, boardID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.BoardMember{}).
		Where("board_id = ? AND role = ?", boardID, domain.MemberRoleAdmin).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
