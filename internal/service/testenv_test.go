package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// testEnv wires the real repositories to an in-memory sqlite database
type testEnv struct {
	db *gorm.DB

	userRepo      repository.UserRepository
	workspaceRepo repository.WorkspaceRepository
	boardRepo     repository.BoardRepository
	listRepo      repository.ListRepository
	cardRepo      repository.CardRepository
	commentRepo   repository.CommentRepository
	actionRepo    repository.ActionRepository

	metrics       *metrics.Metrics
	publisher     *recordingPublisher
	notifications *recordingNotifications

	actions    ActionService
	workspaces WorkspaceService
	boards     BoardService
	lists      ListService
	cards      CardService
	comments   CommentService
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Workspace{},
		&domain.WorkspaceMember{},
		&domain.Board{},
		&domain.BoardMember{},
		&domain.List{},
		&domain.Card{},
		&domain.CardAssignee{},
		&domain.CardWatcher{},
		&domain.CardComment{},
		&domain.CalendarEvent{},
		&domain.Action{},
	))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	log := zap.NewNop()

	e := &testEnv{
		db:            db,
		userRepo:      repository.NewUserRepository(db),
		workspaceRepo: repository.NewWorkspaceRepository(db),
		boardRepo:     repository.NewBoardRepository(db),
		listRepo:      repository.NewListRepository(db),
		cardRepo:      repository.NewCardRepository(db),
		commentRepo:   repository.NewCommentRepository(db),
		actionRepo:    repository.NewActionRepository(db),
		metrics:       metrics.NewWithRegistry(prometheus.NewRegistry(), log),
		publisher:     newRecordingPublisher(),
		notifications: &recordingNotifications{},
	}

	e.actions = NewActionService(e.actionRepo, e.boardRepo, e.workspaceRepo, e.publisher, e.metrics, log)
	e.workspaces = NewWorkspaceService(e.workspaceRepo, e.boardRepo, e.userRepo, e.notifications, e.metrics, log)
	e.boards = NewBoardService(e.boardRepo, e.workspaceRepo, e.userRepo, e.actions, e.notifications, e.metrics, log)
	e.lists = NewListService(e.listRepo, e.boardRepo, e.workspaceRepo, e.actions, e.metrics, log)
	e.cards = NewCardService(e.cardRepo, e.listRepo, e.boardRepo, e.workspaceRepo, e.userRepo, e.actions, e.notifications, e.metrics, log)
	e.comments = NewCommentService(e.commentRepo, e.cardRepo, e.listRepo, e.boardRepo, e.workspaceRepo, e.actions, e.notifications, e.metrics, log)
	return e
}

func (e *testEnv) createUser(t *testing.T, name string) *domain.User {
	t.Helper()
	u := &domain.User{
		Email:        fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		PasswordHash: "x",
		FirstName:    name,
		LastName:     "Tester",
		IsActive:     true,
	}
	require.NoError(t, e.userRepo.Create(context.Background(), u))
	return u
}

func (e *testEnv) createWorkspace(t *testing.T, ownerID uuid.UUID) *dto.WorkspaceResponse {
	t.Helper()
	ws, err := e.workspaces.Create(context.Background(), ownerID, &dto.CreateWorkspaceRequest{Name: "Team"})
	require.NoError(t, err)
	return ws
}

func (e *testEnv) joinWorkspace(t *testing.T, workspaceID, userID uuid.UUID, role domain.MemberRole) {
	t.Helper()
	require.NoError(t, e.workspaceRepo.AddMember(context.Background(), &domain.WorkspaceMember{
		WorkspaceID: workspaceID, UserID: userID, Role: role,
	}))
}

func (e *testEnv) createBoard(t *testing.T, workspaceID, actorID uuid.UUID) *dto.BoardResponse {
	t.Helper()
	board, err := e.boards.Create(context.Background(), actorID, &dto.CreateBoardRequest{
		WorkspaceID: workspaceID,
		Name:        "Sprint",
	})
	require.NoError(t, err)
	return board
}

func (e *testEnv) joinBoard(t *testing.T, boardID, userID uuid.UUID, role domain.MemberRole) {
	t.Helper()
	require.NoError(t, e.boardRepo.AddMember(context.Background(), &domain.BoardMember{
		BoardID: boardID, UserID: userID, Role: role,
	}))
}

func (e *testEnv) createList(t *testing.T, boardID, actorID uuid.UUID, title string) *dto.ListResponse {
	t.Helper()
	list, err := e.lists.Create(context.Background(), actorID, &dto.CreateListRequest{BoardID: boardID, Title: title})
	require.NoError(t, err)
	return list
}

func (e *testEnv) createCard(t *testing.T, listID, actorID uuid.UUID, title string) *dto.CardResponse {
	t.Helper()
	card, err := e.cards.Create(context.Background(), actorID, &dto.CreateCardRequest{ListID: listID, Title: title})
	require.NoError(t, err)
	return card
}

// fixture is a user owning a workspace with one board
type fixture struct {
	env   *testEnv
	owner *domain.User
	ws    *dto.WorkspaceResponse
	board *dto.BoardResponse
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	ws := env.createWorkspace(t, owner.ID)
	board := env.createBoard(t, ws.ID, owner.ID)
	return &fixture{env: env, owner: owner, ws: ws, board: board}
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, response.HasCode(err, code), "expected %s, got %v", code, err)
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
