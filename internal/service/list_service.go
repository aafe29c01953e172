package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/repository"
)

// ListService defines the interface for list business logic
type ListService interface {
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateListRequest) (*dto.ListResponse, error)
	FindByBoard(ctx context.Context, boardID, actorID uuid.UUID) ([]*dto.ListResponse, error)
	FindOne(ctx context.Context, listID, actorID uuid.UUID) (*dto.ListResponse, error)
	Update(ctx context.Context, listID, actorID uuid.UUID, req *dto.UpdateListRequest) (*dto.ListResponse, error)
	Remove(ctx context.Context, listID, actorID uuid.UUID) error
	Reorder(ctx context.Context, boardID, actorID uuid.UUID, ids []uuid.UUID) ([]*dto.ListResponse, error)
}

type listServiceImpl struct {
	listRepo repository.ListRepository
	actions  ActionService
	guard    *accessGuard
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewListService creates a new instance of ListService
func NewListService(
	listRepo repository.ListRepository,
	boardRepo repository.BoardRepository,
	workspaceRepo repository.WorkspaceRepository,
	actions ActionService,
	m *metrics.Metrics,
	logger *zap.Logger,
) ListService {
	return &listServiceImpl{
		listRepo: listRepo,
		actions:  actions,
		guard:    newAccessGuard(boardRepo, workspaceRepo),
		metrics:  m,
		logger:   logger,
	}
}

// Create appends the list at the end of the board unless a position is given.
// Existing lists are not shifted.
func (s *listServiceImpl) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateListRequest) (*dto.ListResponse, error) {
	if _, _, err := s.guard.requireBoardMember(ctx, req.BoardID, actorID); err != nil {
		return nil, err
	}

	position := 0
	if req.Position != nil {
		position = *req.Position
	} else {
		next, err := s.listRepo.NextPosition(ctx, req.BoardID)
		if err != nil {
			return nil, internalError("Failed to compute list position", err)
		}
		position = next
	}

	list := &domain.List{
		BoardID:  req.BoardID,
		Title:    req.Title,
		Position: position,
		IsActive: true,
	}
	if err := s.listRepo.Create(ctx, list); err != nil {
		return nil, internalError("Failed to create list", err)
	}

	s.actions.Record(ctx, ActionEntry{
		BoardID:     list.BoardID,
		UserID:      actorID,
		Type:        domain.ActionCreateList,
		TargetID:    &list.ID,
		TargetType:  domain.TargetTypeList,
		Metadata:    map[string]interface{}{"title": list.Title, "position": list.Position},
		Description: fmt.Sprintf("Created list %q", list.Title),
	})
	return toListResponse(list), nil
}

func (s *listServiceImpl) FindByBoard(ctx context.Context, boardID, actorID uuid.UUID) ([]*dto.ListResponse, error) {
	if _, err := s.guard.requireBoardView(ctx, boardID, actorID); err != nil {
		return nil, err
	}
	lists, err := s.listRepo.FindByBoard(ctx, boardID)
	if err != nil {
		return nil, internalError("Failed to fetch lists", err)
	}
	return toListResponses(lists), nil
}

func (s *listServiceImpl) FindOne(ctx context.Context, listID, actorID uuid.UUID) (*dto.ListResponse, error) {
	list, err := s.findList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.requireBoardViewAny(ctx, list.BoardID, actorID); err != nil {
		return nil, err
	}
	return toListResponse(list), nil
}

func (s *listServiceImpl) Update(ctx context.Context, listID, actorID uuid.UUID, req *dto.UpdateListRequest) (*dto.ListResponse, error) {
	list, err := s.findList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.guard.requireBoardMember(ctx, list.BoardID, actorID); err != nil {
		return nil, err
	}

	changes := make(map[string]interface{})
	if req.Title != nil && *req.Title != list.Title {
		changes["title"] = map[string]interface{}{"from": list.Title, "to": *req.Title}
		list.Title = *req.Title
	}
	if req.Position != nil && *req.Position != list.Position {
		changes["position"] = map[string]interface{}{"from": list.Position, "to": *req.Position}
		list.Position = *req.Position
	}

	if err := s.listRepo.Update(ctx, list); err != nil {
		return nil, internalError("Failed to update list", err)
	}

	s.actions.Record(ctx, ActionEntry{
		BoardID:     list.BoardID,
		UserID:      actorID,
		Type:        domain.ActionUpdateList,
		TargetID:    &list.ID,
		TargetType:  domain.TargetTypeList,
		Metadata:    changes,
		Description: "Updated list",
	})
	return toListResponse(list), nil
}

// Remove soft deletes the list. Its cards are left untouched.
func (s *listServiceImpl) Remove(ctx context.Context, listID, actorID uuid.UUID) error {
	list, err := s.findList(ctx, listID)
	if err != nil {
		return err
	}
	if _, _, err := s.guard.requireBoardMember(ctx, list.BoardID, actorID); err != nil {
		return err
	}

	list.IsActive = false
	if err := s.listRepo.Update(ctx, list); err != nil {
		return internalError("Failed to delete list", err)
	}

	s.actions.Record(ctx, ActionEntry{
		BoardID:     list.BoardID,
		UserID:      actorID,
		Type:        domain.ActionDeleteList,
		TargetID:    &list.ID,
		TargetType:  domain.TargetTypeList,
		Metadata:    map[string]interface{}{"title": list.Title},
		Description: fmt.Sprintf("Deleted list %q", list.Title),
	})
	return nil
}

// Reorder sets the display order of the board's active lists
func (s *listServiceImpl) Reorder(ctx context.Context, boardID, actorID uuid.UUID, ids []uuid.UUID) ([]*dto.ListResponse, error) {
	if _, _, err := s.guard.requireBoardMember(ctx, boardID, actorID); err != nil {
		return nil, err
	}

	lists, err := s.listRepo.FindByBoard(ctx, boardID)
	if err != nil {
		return nil, internalError("Failed to fetch lists", err)
	}

	ordered, changed, err := ApplyReorder(lists, ids, "List")
	if err != nil {
		return nil, err
	}
	if len(changed) > 0 {
		if err := s.listRepo.UpdatePositions(ctx, changed); err != nil {
			return nil, internalError("Failed to reorder lists", err)
		}
	}

	s.logger.Debug("Lists reordered",
		zap.String("board_id", boardID.String()),
		zap.Int("changed", len(changed)))
	return toListResponses(ordered), nil
}

func (s *listServiceImpl) findList(ctx context.Context, id uuid.UUID) (*domain.List, error) {
	list, err := s.listRepo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, fmt.Sprintf("List with ID %s not found", id), "Failed to fetch list")
	}
	return list, nil
}

func toListResponse(l *domain.List) *dto.ListResponse {
	return &dto.ListResponse{
		ID:        l.ID,
		BoardID:   l.BoardID,
		Title:     l.Title,
		Position:  l.Position,
		IsActive:  l.IsActive,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func toListResponses(lists []*domain.List) []*dto.ListResponse {
	result := make([]*dto.ListResponse, 0, len(lists))
	for _, l := range lists {
		result = append(result, toListResponse(l))
	}
	return result
}
