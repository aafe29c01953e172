package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/repository"
)

const (
	DefaultActionLimit = 50
	MaxActionLimit     = 200
)

// ActionEntry describes one audited mutation.
type ActionEntry struct {
	BoardID     uuid.UUID
	UserID      uuid.UUID
	Type        domain.ActionType
	TargetID    *uuid.UUID
	TargetType  string
	Metadata    map[string]interface{}
	Description string
}

// ActionPublisher receives every action after it is stored.
type ActionPublisher interface {
	Publish(boardID uuid.UUID, message interface{})
}

// ActionService appends and reads the board audit log
type ActionService interface {
	// Record never fails the caller. Storage errors are logged and counted.
	Record(ctx context.Context, entry ActionEntry)
	ListByBoard(ctx context.Context, boardID, actorID uuid.UUID, limit int) ([]*dto.ActionResponse, error)
	ListByBoardAndUser(ctx context.Context, boardID, userID, actorID uuid.UUID, limit int) ([]*dto.ActionResponse, error)
	ListByTarget(ctx context.Context, targetID, actorID uuid.UUID) ([]*dto.ActionResponse, error)
}

type actionServiceImpl struct {
	actionRepo repository.ActionRepository
	guard      *accessGuard
	publisher  ActionPublisher
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewActionService creates a new instance of ActionService. publisher may be nil.
func NewActionService(
	actionRepo repository.ActionRepository,
	boardRepo repository.BoardRepository,
	workspaceRepo repository.WorkspaceRepository,
	publisher ActionPublisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) ActionService {
	return &actionServiceImpl{
		actionRepo: actionRepo,
		guard:      newAccessGuard(boardRepo, workspaceRepo),
		publisher:  publisher,
		metrics:    m,
		logger:     logger,
	}
}

func (s *actionServiceImpl) Record(ctx context.Context, entry ActionEntry) {
	action := &domain.Action{
		Type:        entry.Type,
		BoardID:     entry.BoardID,
		UserID:      entry.UserID,
		TargetID:    entry.TargetID,
		TargetType:  entry.TargetType,
		Description: entry.Description,
	}
	if len(entry.Metadata) > 0 {
		raw, err := json.Marshal(entry.Metadata)
		if err != nil {
			s.logger.Warn("Dropping unserializable action metadata",
				zap.String("type", string(entry.Type)),
				zap.Error(err))
		} else {
			action.Metadata = datatypes.JSON(raw)
		}
	}

	if err := s.actionRepo.Create(ctx, action); err != nil {
		s.logger.Error("Failed to record action",
			zap.String("type", string(entry.Type)),
			zap.String("board_id", entry.BoardID.String()),
			zap.String("user_id", entry.UserID.String()),
			zap.Error(err))
		if s.metrics != nil {
			s.metrics.IncrementActionRecordFailure()
		}
		return
	}

	if s.metrics != nil {
		s.metrics.RecordActionRecorded(string(action.Type))
	}
	if s.publisher != nil {
		s.publisher.Publish(action.BoardID, toActionResponse(action))
	}
}

func (s *actionServiceImpl) ListByBoard(ctx context.Context, boardID, actorID uuid.UUID, limit int) ([]*dto.ActionResponse, error) {
	if _, err := s.guard.requireBoardViewAny(ctx, boardID, actorID); err != nil {
		return nil, err
	}
	actions, err := s.actionRepo.FindByBoard(ctx, boardID, normalizeActionLimit(limit))
	if err != nil {
		return nil, internalError("Failed to fetch actions", err)
	}
	return toActionResponses(actions), nil
}

func (s *actionServiceImpl) ListByBoardAndUser(ctx context.Context, boardID, userID, actorID uuid.UUID, limit int) ([]*dto.ActionResponse, error) {
	if _, err := s.guard.requireBoardViewAny(ctx, boardID, actorID); err != nil {
		return nil, err
	}
	actions, err := s.actionRepo.FindByBoardAndUser(ctx, boardID, userID, normalizeActionLimit(limit))
	if err != nil {
		return nil, internalError("Failed to fetch actions", err)
	}
	return toActionResponses(actions), nil
}

// ListByTarget returns the whole history of a target, limited to the boards
// the actor can read.
func (s *actionServiceImpl) ListByTarget(ctx context.Context, targetID, actorID uuid.UUID) ([]*dto.ActionResponse, error) {
	actions, err := s.actionRepo.FindByTarget(ctx, targetID)
	if err != nil {
		return nil, internalError("Failed to fetch actions", err)
	}

	visible := make(map[uuid.UUID]bool)
	result := make([]*dto.ActionResponse, 0, len(actions))
	for _, a := range actions {
		ok, seen := visible[a.BoardID]
		if !seen {
			_, viewErr := s.guard.requireBoardViewAny(ctx, a.BoardID, actorID)
			ok = viewErr == nil
			visible[a.BoardID] = ok
		}
		if ok {
			result = append(result, toActionResponse(a))
		}
	}
	return result, nil
}

func normalizeActionLimit(limit int) int {
	if limit <= 0 {
		return DefaultActionLimit
	}
	if limit > MaxActionLimit {
		return MaxActionLimit
	}
	return limit
}

func toActionResponse(a *domain.Action) *dto.ActionResponse {
	resp := &dto.ActionResponse{
		ID:          a.ID,
		Type:        string(a.Type),
		BoardID:     a.BoardID,
		UserID:      a.UserID,
		TargetID:    a.TargetID,
		TargetType:  a.TargetType,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
	}
	if len(a.Metadata) > 0 {
		var meta map[string]interface{}
		if err := json.Unmarshal(a.Metadata, &meta); err == nil {
			resp.Metadata = meta
		}
	}
	return resp
}

func toActionResponses(actions []*domain.Action) []*dto.ActionResponse {
	result := make([]*dto.ActionResponse, 0, len(actions))
	for _, a := range actions {
		result = append(result, toActionResponse(a))
	}
	return result
}
