package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"taskboard-api/internal/domain"
)

func TestActionRepository_Queries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActionRepository(db)
	ctx := context.Background()
	boardID := uuid.New()
	alice := uuid.New()
	bob := uuid.New()
	cardID := uuid.New()

	for i := 0; i < 5; i++ {
		user := alice
		if i%2 == 1 {
			user = bob
		}
		require.NoError(t, repo.Create(ctx, &domain.Action{
			Type:      domain.ActionUpdateCard,
			BoardID:   boardID,
			UserID:    user,
			TargetID:  &cardID,
			Metadata:  datatypes.JSON(`{"i":` + string(rune('0'+i)) + `}`),
			CreatedAt: at(i),
		}))
	}
	require.NoError(t, repo.Create(ctx, &domain.Action{Type: domain.ActionCreateBoard, BoardID: uuid.New(), UserID: alice, CreatedAt: at(10)}))

	latest, err := repo.FindByBoard(ctx, boardID, 3)
	require.NoError(t, err)
	require.Len(t, latest, 3)
	assert.Equal(t, at(4), latest[0].CreatedAt.UTC())
	assert.Equal(t, at(2), latest[2].CreatedAt.UTC())

	bobs, err := repo.FindByBoardAndUser(ctx, boardID, bob, 50)
	require.NoError(t, err)
	require.Len(t, bobs, 2)
	assert.Equal(t, at(3), bobs[0].CreatedAt.UTC())

	byTarget, err := repo.FindByTarget(ctx, cardID)
	require.NoError(t, err)
	assert.Len(t, byTarget, 5)
	assert.JSONEq(t, `{"i":4}`, string(byTarget[0].Metadata))
}
