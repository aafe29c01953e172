package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

// CalendarEventRepository defines the interface for calendar event data access.
// Every finder except FindByIDAny skips inactive events.
type CalendarEventRepository interface {
	Create(ctx context.Context, event *domain.CalendarEvent) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error)
	FindByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.CalendarEvent, error)
	// FindByWorkspaceInRange returns events that lie entirely inside [from, to].
	FindByWorkspaceInRange(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) ([]*domain.CalendarEvent, error)
	// FindByWorkspaceOverlapping returns events that intersect [from, to].
	FindByWorkspaceOverlapping(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) ([]*domain.CalendarEvent, error)
	FindUpcoming(ctx context.Context, workspaceID uuid.UUID, now time.Time, limit int) ([]*domain.CalendarEvent, error)
	FindOngoing(ctx context.Context, workspaceID uuid.UUID, now time.Time) ([]*domain.CalendarEvent, error)
	FindAllActive(ctx context.Context) ([]*domain.CalendarEvent, error)
	CountActiveByStatus(ctx context.Context) (map[domain.EventStatus]int64, error)
	Update(ctx context.Context, event *domain.CalendarEvent) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) error
}

type calendarEventRepositoryImpl struct {
	db *gorm.DB
}

// NewCalendarEventRepository creates a new instance of CalendarEventRepository
func NewCalendarEventRepository(db *gorm.DB) CalendarEventRepository {
	return &calendarEventRepositoryImpl{db: db}
}

func (r *calendarEventRepositoryImpl) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Where("is_active = ?", true)
}

func (r *calendarEventRepositoryImpl) Create(ctx context.Context, event *domain.CalendarEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *calendarEventRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error) {
	var event domain.CalendarEvent
	if err := r.active(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *calendarEventRepositoryImpl) FindByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.CalendarEvent, error) {
	var events []*domain.CalendarEvent
	if err := r.active(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("start_date ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *calendarEventRepositoryImpl) FindByWorkspaceInRange(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) ([]*domain.CalendarEvent, error) {
	var events []*domain.CalendarEvent
	if err := r.active(ctx).
		Where("workspace_id = ? AND start_date >= ? AND end_date <= ?", workspaceID, from, to).
		Order("start_date ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *calendarEventRepositoryImpl) FindByWorkspaceOverlapping(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) ([]*domain.CalendarEvent, error) {
	var events []*domain.CalendarEvent
	if err := r.active(ctx).
		Where("workspace_id = ? AND start_date <= ? AND end_date >= ?", workspaceID, to, from).
		Order("start_date ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *calendarEventRepositoryImpl) FindUpcoming(ctx context.Context, workspaceID uuid.UUID, now time.Time, limit int) ([]*domain.CalendarEvent, error) {
	var events []*domain.CalendarEvent
	if err := r.active(ctx).
		Where("workspace_id = ? AND status = ? AND start_date >= ?", workspaceID, domain.EventStatusUpcoming, now).
		Order("start_date ASC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *calendarEventRepositoryImpl) FindOngoing(ctx context.Context, workspaceID uuid.UUID, now time.Time) ([]*domain.CalendarEvent, error) {
	var events []*domain.CalendarEvent
	if err := r.active(ctx).
		Where("workspace_id = ? AND status = ? AND start_date <= ? AND end_date >= ?",
			workspaceID, domain.EventStatusOngoing, now, now).
		Order("start_date ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *calendarEventRepositoryImpl) FindAllActive(ctx context.Context) ([]*domain.CalendarEvent, error) {
	var events []*domain.CalendarEvent
	if err := r.active(ctx).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

type statusCount struct {
	Status domain.EventStatus
	Count  int64
}

func (r *calendarEventRepositoryImpl) CountActiveByStatus(ctx context.Context) (map[domain.EventStatus]int64, error) {
	var rows []statusCount
	if err := r.active(ctx).Model(&domain.CalendarEvent{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[domain.EventStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *calendarEventRepositoryImpl) Update(ctx context.Context, event *domain.CalendarEvent) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *calendarEventRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) error {
	return r.db.WithContext(ctx).Model(&domain.CalendarEvent{}).
		Where("id = ?", id).
		Update("status", status).Error
}
