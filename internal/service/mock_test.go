package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard-api/internal/client"
	"taskboard-api/internal/domain"
)

// MockActionRepository is a mock implementation of ActionRepository
type MockActionRepository struct {
	CreateFunc             func(ctx context.Context, action *domain.Action) error
	FindByBoardFunc        func(ctx context.Context, boardID uuid.UUID, limit int) ([]*domain.Action, error)
	FindByBoardAndUserFunc func(ctx context.Context, boardID, userID uuid.UUID, limit int) ([]*domain.Action, error)
	FindByTargetFunc       func(ctx context.Context, targetID uuid.UUID) ([]*domain.Action, error)
}

func (m *MockActionRepository) Create(ctx context.Context, action *domain.Action) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, action)
	}
	return nil
}

func (m *MockActionRepository) FindByBoard(ctx context.Context, boardID uuid.UUID, limit int) ([]*domain.Action, error) {
	if m.FindByBoardFunc != nil {
		return m.FindByBoardFunc(ctx, boardID, limit)
	}
	return nil, nil
}

func (m *MockActionRepository) FindByBoardAndUser(ctx context.Context, boardID, userID uuid.UUID, limit int) ([]*domain.Action, error) {
	if m.FindByBoardAndUserFunc != nil {
		return m.FindByBoardAndUserFunc(ctx, boardID, userID, limit)
	}
	return nil, nil
}

func (m *MockActionRepository) FindByTarget(ctx context.Context, targetID uuid.UUID) ([]*domain.Action, error) {
	if m.FindByTargetFunc != nil {
		return m.FindByTargetFunc(ctx, targetID)
	}
	return nil, nil
}

// MockCalendarEventRepository is a mock implementation of CalendarEventRepository
type MockCalendarEventRepository struct {
	CreateFunc                     func(ctx context.Context, event *domain.CalendarEvent) error
	FindByIDFunc                   func(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error)
	FindByWorkspaceFunc            func(ctx context.Context, workspaceID uuid.UUID) ([]*domain.CalendarEvent, error)
	FindByWorkspaceInRangeFunc     func(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) ([]*domain.CalendarEvent, error)
	FindByWorkspaceOverlappingFunc func(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) ([]*domain.CalendarEvent, error)
	FindUpcomingFunc               func(ctx context.Context, workspaceID uuid.UUID, now time.Time, limit int) ([]*domain.CalendarEvent, error)
	FindOngoingFunc                func(ctx context.Context, workspaceID uuid.UUID, now time.Time) ([]*domain.CalendarEvent, error)
	FindAllActiveFunc              func(ctx context.Context) ([]*domain.CalendarEvent, error)
	CountActiveByStatusFunc        func(ctx context.Context) (map[domain.EventStatus]int64, error)
	UpdateFunc                     func(ctx context.Context, event *domain.CalendarEvent) error
	UpdateStatusFunc               func(ctx context.Context, id uuid.UUID, status domain.EventStatus) error
}

func (m *MockCalendarEventRepository) Create(ctx context.Context, event *domain.CalendarEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, event)
	}
	return nil
}

func (m *MockCalendarEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCalendarEventRepository) FindByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.CalendarEvent, error) {
	if m.FindByWorkspaceFunc != nil {
		return m.FindByWorkspaceFunc(ctx, workspaceID)
	}
	return nil, nil
}

func (m *MockCalendarEventRepository) FindByWorkspaceInRange(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) ([]*domain.CalendarEvent, error) {
	if m.FindByWorkspaceInRangeFunc != nil {
		return m.FindByWorkspaceInRangeFunc(ctx, workspaceID, from, to)
	}
	return nil, nil
}

func (m *MockCalendarEventRepository) FindByWorkspaceOverlapping(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) ([]*domain.CalendarEvent, error) {
	if m.FindByWorkspaceOverlappingFunc != nil {
		return m.FindByWorkspaceOverlappingFunc(ctx, workspaceID, from, to)
	}
	return nil, nil
}

func (m *MockCalendarEventRepository) FindUpcoming(ctx context.Context, workspaceID uuid.UUID, now time.Time, limit int) ([]*domain.CalendarEvent, error) {
	if m.FindUpcomingFunc != nil {
		return m.FindUpcomingFunc(ctx, workspaceID, now, limit)
	}
	return nil, nil
}

func (m *MockCalendarEventRepository) FindOngoing(ctx context.Context, workspaceID uuid.UUID, now time.Time) ([]*domain.CalendarEvent, error) {
	if m.FindOngoingFunc != nil {
		return m.FindOngoingFunc(ctx, workspaceID, now)
	}
	return nil, nil
}

func (m *MockCalendarEventRepository) FindAllActive(ctx context.Context) ([]*domain.CalendarEvent, error) {
	if m.FindAllActiveFunc != nil {
		return m.FindAllActiveFunc(ctx)
	}
	return nil, nil
}

func (m *MockCalendarEventRepository) CountActiveByStatus(ctx context.Context) (map[domain.EventStatus]int64, error) {
	if m.CountActiveByStatusFunc != nil {
		return m.CountActiveByStatusFunc(ctx)
	}
	return map[domain.EventStatus]int64{}, nil
}

func (m *MockCalendarEventRepository) Update(ctx context.Context, event *domain.CalendarEvent) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, event)
	}
	return nil
}

func (m *MockCalendarEventRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

// recordingPublisher keeps every published message per board
type recordingPublisher struct {
	mu       sync.Mutex
	messages map[uuid.UUID][]interface{}
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{messages: make(map[uuid.UUID][]interface{})}
}

func (p *recordingPublisher) Publish(boardID uuid.UUID, message interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages[boardID] = append(p.messages[boardID], message)
}

func (p *recordingPublisher) count(boardID uuid.UUID) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages[boardID])
}

// recordingNotifications captures outbound notification events
type recordingNotifications struct {
	mu     sync.Mutex
	events []client.NotificationEvent
	bulk   int
}

func (r *recordingNotifications) SendNotification(ctx context.Context, event client.NotificationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingNotifications) SendBulkNotifications(ctx context.Context, events []client.NotificationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	r.bulk++
	return nil
}

func (r *recordingNotifications) snapshot() []client.NotificationEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]client.NotificationEvent, len(r.events))
	copy(out, r.events)
	return out
}
