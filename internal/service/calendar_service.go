package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// DefaultUpcomingLimit is used when the caller does not pass a positive limit
const DefaultUpcomingLimit = 10

// CalendarService defines the interface for workspace calendar business logic
type CalendarService interface {
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	FindByWorkspace(ctx context.Context, workspaceID, actorID uuid.UUID) ([]*dto.EventResponse, error)
	FindByWorkspaceAndDateRange(ctx context.Context, workspaceID, actorID uuid.UUID, from, to time.Time) ([]*dto.EventResponse, error)
	FindByWorkspaceAndMonth(ctx context.Context, workspaceID, actorID uuid.UUID, year, month int) ([]*dto.EventResponse, error)
	Upcoming(ctx context.Context, workspaceID, actorID uuid.UUID, limit int) ([]*dto.EventResponse, error)
	Ongoing(ctx context.Context, workspaceID, actorID uuid.UUID) ([]*dto.EventResponse, error)
	FindOne(ctx context.Context, eventID, actorID uuid.UUID) (*dto.EventResponse, error)
	Update(ctx context.Context, eventID, actorID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	Remove(ctx context.Context, eventID, actorID uuid.UUID) error
	Cancel(ctx context.Context, eventID, actorID uuid.UUID) (*dto.EventResponse, error)

	// UpdateEventStatuses recomputes the cached status of every active event
	// and returns how many rows changed.
	UpdateEventStatuses(ctx context.Context) (int, error)
}

type calendarServiceImpl struct {
	eventRepo repository.CalendarEventRepository
	guard     *accessGuard
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewCalendarService creates a new instance of CalendarService
func NewCalendarService(
	eventRepo repository.CalendarEventRepository,
	workspaceRepo repository.WorkspaceRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) CalendarService {
	return &calendarServiceImpl{
		eventRepo: eventRepo,
		guard:     newAccessGuard(nil, workspaceRepo),
		metrics:   m,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *calendarServiceImpl) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if _, err := s.guard.requireWorkspaceMember(ctx, req.WorkspaceID, actorID); err != nil {
		return nil, err
	}

	now := s.now()
	if err := validateEventDates(now, &req.StartDate, &req.EndDate, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	event := &domain.CalendarEvent{
		WorkspaceID: req.WorkspaceID,
		CreatedByID: actorID,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate.UTC(),
		EndDate:     req.EndDate.UTC(),
		Location:    req.Location,
		Color:       req.Color,
		IsActive:    true,
	}
	event.Status = domain.DeriveEventStatus(now, event.StartDate, event.EndDate, domain.EventStatusUpcoming)

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, internalError("Failed to create event", err)
	}
	if s.metrics != nil {
		s.metrics.IncrementEventCreated()
	}

	s.logger.Info("Calendar event created",
		zap.String("event_id", event.ID.String()),
		zap.String("workspace_id", event.WorkspaceID.String()),
		zap.String("status", string(event.Status)))
	return toEventResponse(event), nil
}

func (s *calendarServiceImpl) FindByWorkspace(ctx context.Context, workspaceID, actorID uuid.UUID) ([]*dto.EventResponse, error) {
	if _, err := s.guard.requireWorkspaceMember(ctx, workspaceID, actorID); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.FindByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, internalError("Failed to fetch events", err)
	}
	return toEventResponses(events), nil
}

// FindByWorkspaceAndDateRange returns events lying entirely inside [from, to]
func (s *calendarServiceImpl) FindByWorkspaceAndDateRange(ctx context.Context, workspaceID, actorID uuid.UUID, from, to time.Time) ([]*dto.EventResponse, error) {
	if to.Before(from) {
		return nil, response.NewValidationError("End of range must not be before its start", "")
	}
	if _, err := s.guard.requireWorkspaceMember(ctx, workspaceID, actorID); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.FindByWorkspaceInRange(ctx, workspaceID, from.UTC(), to.UTC())
	if err != nil {
		return nil, internalError("Failed to fetch events", err)
	}
	return toEventResponses(events), nil
}

// FindByWorkspaceAndMonth returns events that overlap the given UTC month
func (s *calendarServiceImpl) FindByWorkspaceAndMonth(ctx context.Context, workspaceID, actorID uuid.UUID, year, month int) ([]*dto.EventResponse, error) {
	if month < 1 || month > 12 {
		return nil, response.NewValidationError("Month must be between 1 and 12", fmt.Sprintf("%d", month))
	}
	if year < 1 {
		return nil, response.NewValidationError("Invalid year", fmt.Sprintf("%d", year))
	}
	if _, err := s.guard.requireWorkspaceMember(ctx, workspaceID, actorID); err != nil {
		return nil, err
	}

	from, to := monthBounds(year, time.Month(month))
	events, err := s.eventRepo.FindByWorkspaceOverlapping(ctx, workspaceID, from, to)
	if err != nil {
		return nil, internalError("Failed to fetch events", err)
	}
	return toEventResponses(events), nil
}

func (s *calendarServiceImpl) Upcoming(ctx context.Context, workspaceID, actorID uuid.UUID, limit int) ([]*dto.EventResponse, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	if _, err := s.guard.requireWorkspaceMember(ctx, workspaceID, actorID); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.FindUpcoming(ctx, workspaceID, s.now(), limit)
	if err != nil {
		return nil, internalError("Failed to fetch upcoming events", err)
	}
	return toEventResponses(events), nil
}

func (s *calendarServiceImpl) Ongoing(ctx context.Context, workspaceID, actorID uuid.UUID) ([]*dto.EventResponse, error) {
	if _, err := s.guard.requireWorkspaceMember(ctx, workspaceID, actorID); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.FindOngoing(ctx, workspaceID, s.now())
	if err != nil {
		return nil, internalError("Failed to fetch ongoing events", err)
	}
	return toEventResponses(events), nil
}

func (s *calendarServiceImpl) FindOne(ctx context.Context, eventID, actorID uuid.UUID) (*dto.EventResponse, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.requireWorkspaceMember(ctx, event.WorkspaceID, actorID); err != nil {
		return nil, err
	}
	return toEventResponse(event), nil
}

func (s *calendarServiceImpl) Update(ctx context.Context, eventID, actorID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.findEditableEvent(ctx, eventID, actorID)
	if err != nil {
		return nil, err
	}

	if req.StartDate != nil || req.EndDate != nil {
		start, end := event.StartDate, event.EndDate
		if req.StartDate != nil {
			start = req.StartDate.UTC()
		}
		if req.EndDate != nil {
			end = req.EndDate.UTC()
		}
		now := s.now()
		if err := validateEventDates(now, req.StartDate, req.EndDate, start, end); err != nil {
			return nil, err
		}
		event.StartDate = start
		event.EndDate = end
		event.Status = domain.DeriveEventStatus(now, start, end, event.Status)
	}

	if req.Title != "" {
		event.Title = req.Title
	}
	if req.Description != "" {
		event.Description = req.Description
	}
	if req.Location != "" {
		event.Location = req.Location
	}
	if req.Color != "" {
		event.Color = req.Color
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, internalError("Failed to update event", err)
	}
	return toEventResponse(event), nil
}

// Remove soft deletes the event by clearing its active flag
func (s *calendarServiceImpl) Remove(ctx context.Context, eventID, actorID uuid.UUID) error {
	event, err := s.findEditableEvent(ctx, eventID, actorID)
	if err != nil {
		return err
	}
	event.IsActive = false
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return internalError("Failed to delete event", err)
	}
	return nil
}

func (s *calendarServiceImpl) Cancel(ctx context.Context, eventID, actorID uuid.UUID) (*dto.EventResponse, error) {
	event, err := s.findEditableEvent(ctx, eventID, actorID)
	if err != nil {
		return nil, err
	}
	if event.Status == domain.EventStatusCancelled {
		return toEventResponse(event), nil
	}

	if err := s.eventRepo.UpdateStatus(ctx, event.ID, domain.EventStatusCancelled); err != nil {
		return nil, repoError(err, fmt.Sprintf("Event with ID %s not found", eventID), "Failed to cancel event")
	}
	event.Status = domain.EventStatusCancelled
	if s.metrics != nil {
		s.metrics.RecordEventStatusTransitions(string(domain.EventStatusCancelled), 1)
	}
	return toEventResponse(event), nil
}

func (s *calendarServiceImpl) UpdateEventStatuses(ctx context.Context) (int, error) {
	events, err := s.eventRepo.FindAllActive(ctx)
	if err != nil {
		return 0, internalError("Failed to fetch events", err)
	}

	now := s.now()
	transitions := make(map[domain.EventStatus]int)
	updated := 0
	for _, e := range events {
		if e.Status == domain.EventStatusCancelled {
			continue
		}
		next := domain.DeriveEventStatus(now, e.StartDate, e.EndDate, e.Status)
		if next == e.Status {
			continue
		}
		if err := s.eventRepo.UpdateStatus(ctx, e.ID, next); err != nil {
			s.logger.Error("Failed to update event status",
				zap.String("event_id", e.ID.String()),
				zap.String("status", string(next)),
				zap.Error(err))
			continue
		}
		transitions[next]++
		updated++
	}

	if s.metrics != nil {
		for status, count := range transitions {
			s.metrics.RecordEventStatusTransitions(string(status), count)
		}
	}
	return updated, nil
}

func (s *calendarServiceImpl) findEvent(ctx context.Context, eventID uuid.UUID) (*domain.CalendarEvent, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, repoError(err, fmt.Sprintf("Event with ID %s not found", eventID), "Failed to fetch event")
	}
	return event, nil
}

// findEditableEvent allows the creator of the event or a workspace admin
func (s *calendarServiceImpl) findEditableEvent(ctx context.Context, eventID, actorID uuid.UUID) (*domain.CalendarEvent, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	member, err := s.guard.requireWorkspaceMember(ctx, event.WorkspaceID, actorID)
	if err != nil {
		return nil, err
	}
	if event.CreatedByID != actorID && member.Role != domain.MemberRoleAdmin {
		return nil, response.NewForbiddenError("Only the creator or a workspace admin can modify this event", "")
	}
	return event, nil
}

// validateEventDates checks the supplied dates against now and the resulting
// pair against each other. A nil pointer means the date was not supplied.
func validateEventDates(now time.Time, suppliedStart, suppliedEnd *time.Time, start, end time.Time) error {
	if suppliedStart != nil && suppliedStart.Before(now) {
		return response.NewValidationError("Start date cannot be in the past", "")
	}
	if suppliedEnd != nil && suppliedEnd.Before(now) {
		return response.NewValidationError("End date cannot be in the past", "")
	}
	if !end.After(start) {
		return response.NewValidationError("End date must be after start date", "")
	}
	return nil
}

// monthBounds returns the first and last instant of the month in UTC
func monthBounds(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return from, to
}

func toEventResponse(e *domain.CalendarEvent) *dto.EventResponse {
	return &dto.EventResponse{
		ID:          e.ID,
		WorkspaceID: e.WorkspaceID,
		CreatedByID: e.CreatedByID,
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Status:      string(e.Status),
		Location:    e.Location,
		Color:       e.Color,
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toEventResponses(events []*domain.CalendarEvent) []*dto.EventResponse {
	result := make([]*dto.EventResponse, 0, len(events))
	for _, e := range events {
		result = append(result, toEventResponse(e))
	}
	return result
}
