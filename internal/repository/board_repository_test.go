package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

func TestBoardRepository_FindByWorkspace(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()
	workspaceID := uuid.New()

	older := &domain.Board{BaseModel: domain.BaseModel{ID: uuid.New(), CreatedAt: at(0)}, WorkspaceID: workspaceID, Name: "older", IsActive: true}
	newer := &domain.Board{BaseModel: domain.BaseModel{ID: uuid.New(), CreatedAt: at(10)}, WorkspaceID: workspaceID, Name: "newer", IsActive: true}
	other := &domain.Board{BaseModel: domain.BaseModel{ID: uuid.New(), CreatedAt: at(5)}, WorkspaceID: uuid.New(), Name: "other", IsActive: true}
	for _, b := range []*domain.Board{older, newer, other} {
		require.NoError(t, repo.Create(ctx, b))
	}

	boards, err := repo.FindByWorkspace(ctx, workspaceID)
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, "newer", boards[0].Name)
	assert.Equal(t, "older", boards[1].Name)
}

func TestBoardRepository_SoftDeleteHidesBoard(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()
	workspaceID := uuid.New()

	board := &domain.Board{WorkspaceID: workspaceID, Name: "Sprint", IsActive: true}
	require.NoError(t, repo.Create(ctx, board))
	assert.NotEqual(t, uuid.Nil, board.ID)

	board.IsActive = false
	require.NoError(t, repo.Update(ctx, board))

	_, err := repo.FindByID(ctx, board.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	found, err := repo.FindByIDAny(ctx, board.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)

	boards, err := repo.FindByWorkspace(ctx, workspaceID)
	require.NoError(t, err)
	assert.Empty(t, boards)

	count, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestBoardRepository_Members(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()
	boardID := uuid.New()
	admin := uuid.New()
	member := uuid.New()

	require.NoError(t, repo.AddMember(ctx, &domain.BoardMember{BoardID: boardID, UserID: admin, Role: domain.MemberRoleAdmin, JoinedAt: at(0)}))
	require.NoError(t, repo.AddMember(ctx, &domain.BoardMember{BoardID: boardID, UserID: member, Role: domain.MemberRoleMember, JoinedAt: at(1)}))

	// unique (board_id, user_id)
	assert.Error(t, repo.AddMember(ctx, &domain.BoardMember{BoardID: boardID, UserID: member, Role: domain.MemberRoleObserver}))

	members, err := repo.FindMembers(ctx, boardID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, admin, members[0].UserID)

	admins, err := repo.CountAdmins(ctx, boardID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), admins)

	found, err := repo.FindMember(ctx, boardID, member)
	require.NoError(t, err)
	found.Role = domain.MemberRoleAdmin
	require.NoError(t, repo.UpdateMember(ctx, found))

	admins, err = repo.CountAdmins(ctx, boardID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), admins)

	require.NoError(t, repo.RemoveMember(ctx, boardID, member))
	err = repo.RemoveMember(ctx, boardID, member)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
