package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/middleware"
	"taskboard-api/internal/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestRouter returns a router that authenticates every request as userID.
// A nil userID leaves the context empty.
func setupTestRouter(userID uuid.UUID) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(middleware.ContextUserID, userID)
			c.Set(middleware.ContextTokenID, "jti-test")
			c.Set(middleware.ContextTokenExpiresAt, time.Now().Add(time.Hour))
		}
		c.Next()
	})
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the data field of a success envelope into out
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var resp response.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var resp struct {
		Error errorBody `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	RegisterFunc      func(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	LoginFunc         func(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	LogoutFunc        func(ctx context.Context, tokenID string, expiresAt time.Time) error
	GetProfileFunc    func(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfileFunc func(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

func (m *MockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, tokenID, expiresAt)
	}
	return nil
}

func (m *MockAuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, req)
	}
	return nil, nil
}

// MockBoardService is a mock implementation of BoardService
type MockBoardService struct {
	CreateFunc           func(ctx context.Context, actorID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)
	FindByWorkspaceFunc  func(ctx context.Context, workspaceID, actorID uuid.UUID) ([]*dto.BoardResponse, error)
	FindOneFunc          func(ctx context.Context, boardID, actorID uuid.UUID) (*dto.BoardResponse, error)
	UpdateFunc           func(ctx context.Context, boardID, actorID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error)
	RemoveFunc           func(ctx context.Context, boardID, actorID uuid.UUID) error
	GetMembersFunc       func(ctx context.Context, boardID, actorID uuid.UUID) ([]*dto.MemberResponse, error)
	AddMemberFunc        func(ctx context.Context, boardID, actorID uuid.UUID, req *dto.AddMemberRequest) (*dto.MemberResponse, error)
	RemoveMemberFunc     func(ctx context.Context, boardID, userID, actorID uuid.UUID) error
	UpdateMemberRoleFunc func(ctx context.Context, boardID, userID, actorID uuid.UUID, role string) (*dto.MemberResponse, error)
	CheckAccessFunc      func(ctx context.Context, boardID, userID uuid.UUID) (*dto.BoardAccessResponse, error)
}

func (m *MockBoardService) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actorID, req)
	}
	return nil, nil
}

func (m *MockBoardService) FindByWorkspace(ctx context.Context, workspaceID, actorID uuid.UUID) ([]*dto.BoardResponse, error) {
	if m.FindByWorkspaceFunc != nil {
		return m.FindByWorkspaceFunc(ctx, workspaceID, actorID)
	}
	return nil, nil
}

func (m *MockBoardService) FindOne(ctx context.Context, boardID, actorID uuid.UUID) (*dto.BoardResponse, error) {
	if m.FindOneFunc != nil {
		return m.FindOneFunc(ctx, boardID, actorID)
	}
	return nil, nil
}

func (m *MockBoardService) Update(ctx context.Context, boardID, actorID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, boardID, actorID, req)
	}
	return nil, nil
}

func (m *MockBoardService) Remove(ctx context.Context, boardID, actorID uuid.UUID) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, boardID, actorID)
	}
	return nil
}

func (m *MockBoardService) GetMembers(ctx context.Context, boardID, actorID uuid.UUID) ([]*dto.MemberResponse, error) {
	if m.GetMembersFunc != nil {
		return m.GetMembersFunc(ctx, boardID, actorID)
	}
	return nil, nil
}

func (m *MockBoardService) AddMember(ctx context.Context, boardID, actorID uuid.UUID, req *dto.AddMemberRequest) (*dto.MemberResponse, error) {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(ctx, boardID, actorID, req)
	}
	return nil, nil
}

func (m *MockBoardService) RemoveMember(ctx context.Context, boardID, userID, actorID uuid.UUID) error {
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(ctx, boardID, userID, actorID)
	}
	return nil
}

func (m *MockBoardService) UpdateMemberRole(ctx context.Context, boardID, userID, actorID uuid.UUID, role string) (*dto.MemberResponse, error) {
	if m.UpdateMemberRoleFunc != nil {
		return m.UpdateMemberRoleFunc(ctx, boardID, userID, actorID, role)
	}
	return nil, nil
}

func (m *MockBoardService) CheckAccess(ctx context.Context, boardID, userID uuid.UUID) (*dto.BoardAccessResponse, error) {
	if m.CheckAccessFunc != nil {
		return m.CheckAccessFunc(ctx, boardID, userID)
	}
	return &dto.BoardAccessResponse{BoardID: boardID, UserID: userID}, nil
}

// MockCardService is a mock implementation of CardService
type MockCardService struct {
	CreateFunc        func(ctx context.Context, actorID uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error)
	FindByListFunc    func(ctx context.Context, listID, actorID uuid.UUID) ([]*dto.CardResponse, error)
	FindOneFunc       func(ctx context.Context, cardID, actorID uuid.UUID) (*dto.CardResponse, error)
	UpdateFunc        func(ctx context.Context, cardID, actorID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error)
	RemoveFunc        func(ctx context.Context, cardID, actorID uuid.UUID) error
	AssignFunc        func(ctx context.Context, cardID, userID, actorID uuid.UUID) (*dto.CardResponse, error)
	UnassignFunc      func(ctx context.Context, cardID, userID, actorID uuid.UUID) (*dto.CardResponse, error)
	AddWatcherFunc    func(ctx context.Context, cardID, userID, actorID uuid.UUID) (*dto.CardResponse, error)
	RemoveWatcherFunc func(ctx context.Context, cardID, userID, actorID uuid.UUID) (*dto.CardResponse, error)
	MoveFunc          func(ctx context.Context, cardID, actorID, listID uuid.UUID, position int) (*dto.CardResponse, error)
	ReorderFunc       func(ctx context.Context, listID, actorID uuid.UUID, ids []uuid.UUID) ([]*dto.CardResponse, error)
}

func (m *MockCardService) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actorID, req)
	}
	return nil, nil
}

func (m *MockCardService) FindByList(ctx context.Context, listID, actorID uuid.UUID) ([]*dto.CardResponse, error) {
	if m.FindByListFunc != nil {
		return m.FindByListFunc(ctx, listID, actorID)
	}
	return nil, nil
}

func (m *MockCardService) FindOne(ctx context.Context, cardID, actorID uuid.UUID) (*dto.CardResponse, error) {
	if m.FindOneFunc != nil {
		return m.FindOneFunc(ctx, cardID, actorID)
	}
	return nil, nil
}

func (m *MockCardService) Update(ctx context.Context, cardID, actorID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, cardID, actorID, req)
	}
	return nil, nil
}

func (m *MockCardService) Remove(ctx context.Context, cardID, actorID uuid.UUID) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, cardID, actorID)
	}
	return nil
}

func (m *MockCardService) Assign(ctx context.Context, cardID, userID, actorID uuid.UUID) (*dto.CardResponse, error) {
	if m.AssignFunc != nil {
		return m.AssignFunc(ctx, cardID, userID, actorID)
	}
	return nil, nil
}

func (m *MockCardService) Unassign(ctx context.Context, cardID, userID, actorID uuid.UUID) (*dto.CardResponse, error) {
	if m.UnassignFunc != nil {
		return m.UnassignFunc(ctx, cardID, userID, actorID)
	}
	return nil, nil
}

func (m *MockCardService) AddWatcher(ctx context.Context, cardID, userID, actorID uuid.UUID) (*dto.CardResponse, error) {
	if m.AddWatcherFunc != nil {
		return m.AddWatcherFunc(ctx, cardID, userID, actorID)
	}
	return nil, nil
}

func (m *MockCardService) RemoveWatcher(ctx context.Context, cardID, userID, actorID uuid.UUID) (*dto.CardResponse, error) {
	if m.RemoveWatcherFunc != nil {
		return m.RemoveWatcherFunc(ctx, cardID, userID, actorID)
	}
	return nil, nil
}

func (m *MockCardService) Move(ctx context.Context, cardID, actorID uuid.UUID, listID uuid.UUID, position int) (*dto.CardResponse, error) {
	if m.MoveFunc != nil {
		return m.MoveFunc(ctx, cardID, actorID, listID, position)
	}
	return nil, nil
}

func (m *MockCardService) Reorder(ctx context.Context, listID, actorID uuid.UUID, ids []uuid.UUID) ([]*dto.CardResponse, error) {
	if m.ReorderFunc != nil {
		return m.ReorderFunc(ctx, listID, actorID, ids)
	}
	return nil, nil
}

// MockCalendarService is a mock implementation of CalendarService
type MockCalendarService struct {
	CreateFunc                      func(ctx context.Context, actorID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	FindByWorkspaceFunc             func(ctx context.Context, workspaceID, actorID uuid.UUID) ([]*dto.EventResponse, error)
	FindByWorkspaceAndDateRangeFunc func(ctx context.Context, workspaceID, actorID uuid.UUID, from, to time.Time) ([]*dto.EventResponse, error)
	FindByWorkspaceAndMonthFunc     func(ctx context.Context, workspaceID, actorID uuid.UUID, year, month int) ([]*dto.EventResponse, error)
	UpcomingFunc                    func(ctx context.Context, workspaceID, actorID uuid.UUID, limit int) ([]*dto.EventResponse, error)
	OngoingFunc                     func(ctx context.Context, workspaceID, actorID uuid.UUID) ([]*dto.EventResponse, error)
	FindOneFunc                     func(ctx context.Context, eventID, actorID uuid.UUID) (*dto.EventResponse, error)
	UpdateFunc                      func(ctx context.Context, eventID, actorID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	RemoveFunc                      func(ctx context.Context, eventID, actorID uuid.UUID) error
	CancelFunc                      func(ctx context.Context, eventID, actorID uuid.UUID) (*dto.EventResponse, error)
	UpdateEventStatusesFunc         func(ctx context.Context) (int, error)
}

func (m *MockCalendarService) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actorID, req)
	}
	return nil, nil
}

func (m *MockCalendarService) FindByWorkspace(ctx context.Context, workspaceID, actorID uuid.UUID) ([]*dto.EventResponse, error) {
	if m.FindByWorkspaceFunc != nil {
		return m.FindByWorkspaceFunc(ctx, workspaceID, actorID)
	}
	return nil, nil
}

func (m *MockCalendarService) FindByWorkspaceAndDateRange(ctx context.Context, workspaceID, actorID uuid.UUID, from, to time.Time) ([]*dto.EventResponse, error) {
	if m.FindByWorkspaceAndDateRangeFunc != nil {
		return m.FindByWorkspaceAndDateRangeFunc(ctx, workspaceID, actorID, from, to)
	}
	return nil, nil
}

func (m *MockCalendarService) FindByWorkspaceAndMonth(ctx context.Context, workspaceID, actorID uuid.UUID, year, month int) ([]*dto.EventResponse, error) {
	if m.FindByWorkspaceAndMonthFunc != nil {
		return m.FindByWorkspaceAndMonthFunc(ctx, workspaceID, actorID, year, month)
	}
	return nil, nil
}

func (m *MockCalendarService) Upcoming(ctx context.Context, workspaceID, actorID uuid.UUID, limit int) ([]*dto.EventResponse, error) {
	if m.UpcomingFunc != nil {
		return m.UpcomingFunc(ctx, workspaceID, actorID, limit)
	}
	return nil, nil
}

func (m *MockCalendarService) Ongoing(ctx context.Context, workspaceID, actorID uuid.UUID) ([]*dto.EventResponse, error) {
	if m.OngoingFunc != nil {
		return m.OngoingFunc(ctx, workspaceID, actorID)
	}
	return nil, nil
}

func (m *MockCalendarService) FindOne(ctx context.Context, eventID, actorID uuid.UUID) (*dto.EventResponse, error) {
	if m.FindOneFunc != nil {
		return m.FindOneFunc(ctx, eventID, actorID)
	}
	return nil, nil
}

func (m *MockCalendarService) Update(ctx context.Context, eventID, actorID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, eventID, actorID, req)
	}
	return nil, nil
}

func (m *MockCalendarService) Remove(ctx context.Context, eventID, actorID uuid.UUID) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, eventID, actorID)
	}
	return nil
}

func (m *MockCalendarService) Cancel(ctx context.Context, eventID, actorID uuid.UUID) (*dto.EventResponse, error) {
	if m.CancelFunc != nil {
		return m.CancelFunc(ctx, eventID, actorID)
	}
	return nil, nil
}

func (m *MockCalendarService) UpdateEventStatuses(ctx context.Context) (int, error) {
	if m.UpdateEventStatusesFunc != nil {
		return m.UpdateEventStatusesFunc(ctx)
	}
	return 0, nil
}
