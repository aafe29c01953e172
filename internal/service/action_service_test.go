package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promdto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/response"
)

func TestActionService_RecordStoresAndPublishes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	env := f.env

	before := env.publisher.count(f.board.ID)
	env.actions.Record(ctx, ActionEntry{
		BoardID:     f.board.ID,
		UserID:      f.owner.ID,
		Type:        domain.ActionUpdateBoard,
		TargetID:    &f.board.ID,
		TargetType:  domain.TargetTypeBoard,
		Metadata:    map[string]interface{}{"name": map[string]interface{}{"from": "a", "to": "b"}},
		Description: "Updated board details",
	})

	actions, err := env.actions.ListByBoardAndUser(ctx, f.board.ID, f.owner.ID, f.owner.ID, 0)
	require.NoError(t, err)

	var found *dto.ActionResponse
	for _, a := range actions {
		if a.Type == string(domain.ActionUpdateBoard) {
			found = a
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, domain.TargetTypeBoard, found.TargetType)
	assert.Contains(t, found.Metadata, "name")

	assert.Equal(t, before+1, env.publisher.count(f.board.ID))
	assert.Equal(t, float64(1), counterValue(t, env.metrics.ActionsRecordedTotal.WithLabelValues("update_board")))
}

func TestActionService_RecordFailureIsSwallowed(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	publisher := newRecordingPublisher()
	repo := &MockActionRepository{
		CreateFunc: func(ctx context.Context, action *domain.Action) error {
			return errors.New("disk full")
		},
	}
	svc := NewActionService(repo, nil, nil, publisher, m, zap.NewNop())
	boardID := uuid.New()

	assert.NotPanics(t, func() {
		svc.Record(context.Background(), ActionEntry{BoardID: boardID, UserID: uuid.New(), Type: domain.ActionCreateList})
	})

	assert.Equal(t, 0, publisher.count(boardID))
	assert.Equal(t, float64(1), counterValue(t, m.ActionRecordFailures))
}

func TestActionService_RecordWithoutPublisher(t *testing.T) {
	var stored *domain.Action
	repo := &MockActionRepository{
		CreateFunc: func(ctx context.Context, action *domain.Action) error {
			stored = action
			return nil
		},
	}
	svc := NewActionService(repo, nil, nil, nil, nil, zap.NewNop())

	svc.Record(context.Background(), ActionEntry{BoardID: uuid.New(), UserID: uuid.New(), Type: domain.ActionDeleteList})

	require.NotNil(t, stored)
	assert.Equal(t, domain.ActionDeleteList, stored.Type)
	assert.Empty(t, stored.Metadata)
}

func TestNormalizeActionLimit(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, DefaultActionLimit},
		{-5, DefaultActionLimit},
		{10, 10},
		{MaxActionLimit, MaxActionLimit},
		{MaxActionLimit + 1, MaxActionLimit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeActionLimit(tt.in), "limit %d", tt.in)
	}
}

func TestActionService_ListByBoardPassesNormalizedLimit(t *testing.T) {
	f := newFixture(t)
	var gotLimit int
	repo := &MockActionRepository{
		FindByBoardFunc: func(ctx context.Context, boardID uuid.UUID, limit int) ([]*domain.Action, error) {
			gotLimit = limit
			return []*domain.Action{{ID: uuid.New(), BoardID: boardID, Type: domain.ActionCreateBoard}}, nil
		},
	}
	svc := NewActionService(repo, f.env.boardRepo, f.env.workspaceRepo, nil, nil, zap.NewNop())

	actions, err := svc.ListByBoard(context.Background(), f.board.ID, f.owner.ID, 1000)
	require.NoError(t, err)
	assert.Len(t, actions, 1)
	assert.Equal(t, MaxActionLimit, gotLimit)
}

func TestActionService_ListByBoardRequiresAccess(t *testing.T) {
	f := newFixture(t)
	outsider := f.env.createUser(t, "outsider")

	_, err := f.env.actions.ListByBoard(context.Background(), f.board.ID, outsider.ID, 0)
	assertAppError(t, err, response.ErrCodeForbidden)
}

func TestActionService_ListByTargetFiltersInvisibleBoards(t *testing.T) {
	f := newFixture(t)
	env := f.env
	ctx := context.Background()

	other := env.createUser(t, "other")
	otherWS := env.createWorkspace(t, other.ID)
	otherBoard := env.createBoard(t, otherWS.ID, other.ID)

	target := uuid.New()
	env.actions.Record(ctx, ActionEntry{BoardID: f.board.ID, UserID: f.owner.ID, Type: domain.ActionUpdateCard, TargetID: &target})
	env.actions.Record(ctx, ActionEntry{BoardID: otherBoard.ID, UserID: other.ID, Type: domain.ActionUpdateCard, TargetID: &target})

	mine, err := env.actions.ListByTarget(ctx, target, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, f.board.ID, mine[0].BoardID)

	theirs, err := env.actions.ListByTarget(ctx, target, other.ID)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, otherBoard.ID, theirs[0].BoardID)
}

func TestActionService_HistorySurvivesBoardSoftDelete(t *testing.T) {
	f := newFixture(t)
	env := f.env
	ctx := context.Background()

	require.NoError(t, env.boards.Remove(ctx, f.board.ID, f.owner.ID))

	history, err := env.actions.ListByBoard(ctx, f.board.ID, f.owner.ID, 0)
	require.NoError(t, err)
	types := make([]string, 0, len(history))
	for _, a := range history {
		types = append(types, a.Type)
	}
	assert.Contains(t, types, string(domain.ActionDeleteBoard))

	mine, err := env.actions.ListByBoardAndUser(ctx, f.board.ID, f.owner.ID, f.owner.ID, 0)
	require.NoError(t, err)
	assert.Len(t, mine, len(history))

	stored, err := env.actionRepo.FindByTarget(ctx, f.board.ID)
	require.NoError(t, err)
	byTarget, err := env.actions.ListByTarget(ctx, f.board.ID, f.owner.ID)
	require.NoError(t, err)
	assert.Len(t, byTarget, len(stored))
	assert.NotEmpty(t, byTarget)

	outsider := env.createUser(t, "outsider")
	_, err = env.actions.ListByBoard(ctx, f.board.ID, outsider.ID, 0)
	assertAppError(t, err, response.ErrCodeForbidden)
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m promdto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}
