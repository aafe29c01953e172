package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard-api/internal/client"
	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// CardService defines the interface for card business logic
type CardService interface {
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error)
	FindByList(ctx context.Context, listID, actorID uuid.UUID) ([]*dto.CardResponse, error)
	FindOne(ctx context.Context, cardID, actorID uuid.UUID) (*dto.CardResponse, error)
	Update(ctx context.Context, cardID, actorID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error)
	Remove(ctx context.Context, cardID, actorID uuid.UUID) error

	Assign(ctx context.Context, cardID, userID, actorID uuid.UUID) (*dto.CardResponse, error)
	Unassign(ctx context.Context, cardID, userID, actorID uuid.UUID) (*dto.CardResponse, error)
	AddWatcher(ctx context.Context, cardID, userID, actorID uuid.UUID) (*dto.CardResponse, error)
	RemoveWatcher(ctx context.Context, cardID, userID, actorID uuid.UUID) (*dto.CardResponse, error)

	// Move puts the card under listID at position without shifting siblings.
	Move(ctx context.Context, cardID, actorID uuid.UUID, listID uuid.UUID, position int) (*dto.CardResponse, error)
	Reorder(ctx context.Context, listID, actorID uuid.UUID, ids []uuid.UUID) ([]*dto.CardResponse, error)
}

type cardServiceImpl struct {
	cardRepo repository.CardRepository
	listRepo repository.ListRepository
	userRepo repository.UserRepository
	actions  ActionService
	guard    *accessGuard
	notifier *notifier
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewCardService creates a new instance of CardService
func NewCardService(
	cardRepo repository.CardRepository,
	listRepo repository.ListRepository,
	boardRepo repository.BoardRepository,
	workspaceRepo repository.WorkspaceRepository,
	userRepo repository.UserRepository,
	actions ActionService,
	notifications client.NotificationClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) CardService {
	return &cardServiceImpl{
		cardRepo: cardRepo,
		listRepo: listRepo,
		userRepo: userRepo,
		actions:  actions,
		guard:    newAccessGuard(boardRepo, workspaceRepo),
		notifier: newNotifier(notifications, logger),
		metrics:  m,
		logger:   logger,
	}
}

func (s *cardServiceImpl) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error) {
	list, err := s.listRepo.FindByID(ctx, req.ListID)
	if err != nil {
		return nil, repoError(err, fmt.Sprintf("List with ID %s not found", req.ListID), "Failed to fetch list")
	}
	if _, _, err := s.guard.requireBoardMember(ctx, list.BoardID, actorID); err != nil {
		return nil, err
	}

	priority := domain.CardPriorityMedium
	if req.Priority != "" {
		priority = domain.CardPriority(req.Priority)
		if !priority.IsValid() {
			return nil, response.NewValidationError("Invalid card priority", req.Priority)
		}
	}
	status := domain.CardStatusTodo
	if req.Status != "" {
		status = domain.CardStatus(req.Status)
		if !status.IsValid() {
			return nil, response.NewValidationError("Invalid card status", req.Status)
		}
	}

	position := 0
	if req.Position != nil {
		position = *req.Position
	} else {
		next, err := s.cardRepo.NextPosition(ctx, list.ID)
		if err != nil {
			return nil, internalError("Failed to compute card position", err)
		}
		position = next
	}

	card := &domain.Card{
		ListID:         list.ID,
		CreatedByID:    actorID,
		Title:          req.Title,
		Description:    req.Description,
		DueDate:        req.DueDate,
		Priority:       priority,
		Status:         status,
		Position:       position,
		EstimatedHours: req.EstimatedHours,
	}
	card.SetLabels(req.Labels)

	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, internalError("Failed to create card", err)
	}
	if s.metrics != nil {
		s.metrics.IncrementCardCreated()
	}

	s.actions.Record(ctx, ActionEntry{
		BoardID:     list.BoardID,
		UserID:      actorID,
		Type:        domain.ActionCreateCard,
		TargetID:    &card.ID,
		TargetType:  domain.TargetTypeCard,
		Metadata:    map[string]interface{}{"title": card.Title, "listId": list.ID.String()},
		Description: fmt.Sprintf("Created card %q", card.Title),
	})
	return toCardResponse(card, nil, nil), nil
}

func (s *cardServiceImpl) FindByList(ctx context.Context, listID, actorID uuid.UUID) ([]*dto.CardResponse, error) {
	list, err := s.listRepo.FindByIDAny(ctx, listID)
	if err != nil {
		return nil, repoError(err, fmt.Sprintf("List with ID %s not found", listID), "Failed to fetch list")
	}
	if _, err := s.guard.requireBoardViewAny(ctx, list.BoardID, actorID); err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.FindByList(ctx, listID)
	if err != nil {
		return nil, internalError("Failed to fetch cards", err)
	}
	return s.withPeople(ctx, cards)
}

func (s *cardServiceImpl) FindOne(ctx context.Context, cardID, actorID uuid.UUID) (*dto.CardResponse, error) {
	card, list, err := s.loadCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.requireBoardViewAny(ctx, list.BoardID, actorID); err != nil {
		return nil, err
	}
	return s.single(ctx, card)
}

func (s *cardServiceImpl) Update(ctx context.Context, cardID, actorID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error) {
	card, list, err := s.loadCardForMutation(ctx, cardID, actorID)
	if err != nil {
		return nil, err
	}

	changes := make(map[string]interface{})
	track := func(field string, from, to interface{}) {
		changes[field] = map[string]interface{}{"from": from, "to": to}
	}

	if req.Title != nil && *req.Title != card.Title {
		track("title", card.Title, *req.Title)
		card.Title = *req.Title
	}
	if req.Description != nil && *req.Description != card.Description {
		track("description", card.Description, *req.Description)
		card.Description = *req.Description
	}
	if req.DueDate != nil {
		track("dueDate", card.DueDate, *req.DueDate)
		due := *req.DueDate
		card.DueDate = &due
	}
	if req.Priority != nil && domain.CardPriority(*req.Priority) != card.Priority {
		p := domain.CardPriority(*req.Priority)
		if !p.IsValid() {
			return nil, response.NewValidationError("Invalid card priority", *req.Priority)
		}
		track("priority", string(card.Priority), *req.Priority)
		card.Priority = p
	}
	if req.Status != nil && domain.CardStatus(*req.Status) != card.Status {
		st := domain.CardStatus(*req.Status)
		if !st.IsValid() {
			return nil, response.NewValidationError("Invalid card status", *req.Status)
		}
		track("status", string(card.Status), *req.Status)
		card.Status = st
	}
	if req.Position != nil && *req.Position != card.Position {
		track("position", card.Position, *req.Position)
		card.Position = *req.Position
	}
	if req.Labels != nil {
		track("labels", card.LabelList(), req.Labels)
		card.SetLabels(req.Labels)
	}
	if req.EstimatedHours != nil {
		card.EstimatedHours = req.EstimatedHours
		changes["estimatedHours"] = *req.EstimatedHours
	}
	if req.SpentHours != nil {
		card.SpentHours = req.SpentHours
		changes["spentHours"] = *req.SpentHours
	}
	if req.CoverImage != nil && *req.CoverImage != card.CoverImage {
		track("coverImage", card.CoverImage, *req.CoverImage)
		card.CoverImage = *req.CoverImage
	}

	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, internalError("Failed to update card", err)
	}

	s.actions.Record(ctx, ActionEntry{
		BoardID:     list.BoardID,
		UserID:      actorID,
		Type:        domain.ActionUpdateCard,
		TargetID:    &card.ID,
		TargetType:  domain.TargetTypeCard,
		Metadata:    changes,
		Description: "Updated card",
	})
	return s.single(ctx, card)
}

// Remove hard deletes the card together with its comments, assignees and watchers
func (s *cardServiceImpl) Remove(ctx context.Context, cardID, actorID uuid.UUID) error {
	card, list, err := s.loadCardForMutation(ctx, cardID, actorID)
	if err != nil {
		return err
	}

	if err := s.cardRepo.Delete(ctx, card.ID); err != nil {
		return repoError(err, fmt.Sprintf("Card with ID %s not found", cardID), "Failed to delete card")
	}

	s.actions.Record(ctx, ActionEntry{
		BoardID:     list.BoardID,
		UserID:      actorID,
		Type:        domain.ActionDeleteCard,
		TargetID:    &card.ID,
		TargetType:  domain.TargetTypeCard,
		Metadata:    map[string]interface{}{"title": card.Title},
		Description: fmt.Sprintf("Deleted card %q", card.Title),
	})
	return nil
}

func (s *cardServiceImpl) Assign(ctx context.Context, cardID, userID, actorID uuid.UUID) (*dto.CardResponse, error) {
	card, list, err := s.loadCardForMutation(ctx, cardID, actorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, repoError(err, "User not found", "Failed to fetch user")
	}
	if err := s.cardRepo.AddAssignee(ctx, card.ID, userID); err != nil {
		return nil, internalError("Failed to assign user", err)
	}

	s.actions.Record(ctx, ActionEntry{
		BoardID:     list.BoardID,
		UserID:      actorID,
		Type:        domain.ActionAssignCard,
		TargetID:    &card.ID,
		TargetType:  domain.TargetTypeCard,
		Metadata:    map[string]interface{}{"assigneeId": userID.String()},
		Description: "Assigned user to card",
	})
	s.notifier.notify(ctx, actorID, cardEvent(client.NotificationCardAssigned, userID, list.BoardID, card))
	return s.single(ctx, card)
}

func (s *cardServiceImpl) Unassign(ctx context.Context, cardID, userID, actorID uuid.UUID) (*dto.CardResponse, error) {
	card, list, err := s.loadCardForMutation(ctx, cardID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.cardRepo.RemoveAssignee(ctx, card.ID, userID); err != nil {
		return nil, internalError("Failed to unassign user", err)
	}

	s.actions.Record(ctx, ActionEntry{
		BoardID:     list.BoardID,
		UserID:      actorID,
		Type:        domain.ActionUnassignCard,
		TargetID:    &card.ID,
		TargetType:  domain.TargetTypeCard,
		Metadata:    map[string]interface{}{"assigneeId": userID.String()},
		Description: "Unassigned user from card",
	})
	s.notifier.notify(ctx, actorID, cardEvent(client.NotificationCardUnassigned, userID, list.BoardID, card))
	return s.single(ctx, card)
}

func (s *cardServiceImpl) AddWatcher(ctx context.Context, cardID, userID, actorID uuid.UUID) (*dto.CardResponse, error) {
	card, _, err := s.loadCardForMutation(ctx, cardID, actorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, repoError(err, "User not found", "Failed to fetch user")
	}
	if err := s.cardRepo.AddWatcher(ctx, card.ID, userID); err != nil {
		return nil, internalError("Failed to add watcher", err)
	}
	return s.single(ctx, card)
}

func (s *cardServiceImpl) RemoveWatcher(ctx context.Context, cardID, userID, actorID uuid.UUID) (*dto.CardResponse, error) {
	card, _, err := s.loadCardForMutation(ctx, cardID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.cardRepo.RemoveWatcher(ctx, card.ID, userID); err != nil {
		return nil, internalError("Failed to remove watcher", err)
	}
	return s.single(ctx, card)
}

func (s *cardServiceImpl) Move(ctx context.Context, cardID, actorID uuid.UUID, listID uuid.UUID, position int) (*dto.CardResponse, error) {
	if position < 0 {
		return nil, response.NewValidationError("Position must not be negative", "")
	}
	card, from, err := s.loadCardForMutation(ctx, cardID, actorID)
	if err != nil {
		return nil, err
	}

	to := from
	if listID != from.ID {
		to, err = s.listRepo.FindByID(ctx, listID)
		if err != nil {
			return nil, repoError(err, fmt.Sprintf("List with ID %s not found", listID), "Failed to fetch list")
		}
		if to.BoardID != from.BoardID {
			if _, _, err := s.guard.requireBoardMember(ctx, to.BoardID, actorID); err != nil {
				return nil, err
			}
		}
	}

	fromPosition := card.Position
	card.ListID = to.ID
	card.Position = position
	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, internalError("Failed to move card", err)
	}

	s.actions.Record(ctx, ActionEntry{
		BoardID:    to.BoardID,
		UserID:     actorID,
		Type:       domain.ActionMoveCard,
		TargetID:   &card.ID,
		TargetType: domain.TargetTypeCard,
		Metadata: map[string]interface{}{
			"fromListId":   from.ID.String(),
			"toListId":     to.ID.String(),
			"fromPosition": fromPosition,
			"toPosition":   position,
		},
		Description: fmt.Sprintf("Moved card from %q to %q", from.Title, to.Title),
	})
	return s.single(ctx, card)
}

// Reorder sets the display order of the cards of a list
func (s *cardServiceImpl) Reorder(ctx context.Context, listID, actorID uuid.UUID, ids []uuid.UUID) ([]*dto.CardResponse, error) {
	list, err := s.listRepo.FindByID(ctx, listID)
	if err != nil {
		return nil, repoError(err, fmt.Sprintf("List with ID %s not found", listID), "Failed to fetch list")
	}
	if _, _, err := s.guard.requireBoardMember(ctx, list.BoardID, actorID); err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.FindByList(ctx, listID)
	if err != nil {
		return nil, internalError("Failed to fetch cards", err)
	}

	ordered, changed, err := ApplyReorder(cards, ids, "Card")
	if err != nil {
		return nil, err
	}
	if len(changed) > 0 {
		if err := s.cardRepo.UpdatePositions(ctx, changed); err != nil {
			return nil, internalError("Failed to reorder cards", err)
		}
	}
	return s.withPeople(ctx, ordered)
}

func (s *cardServiceImpl) loadCard(ctx context.Context, cardID uuid.UUID) (*domain.Card, *domain.List, error) {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return nil, nil, repoError(err, fmt.Sprintf("Card with ID %s not found", cardID), "Failed to fetch card")
	}
	list, err := s.listRepo.FindByIDAny(ctx, card.ListID)
	if err != nil {
		return nil, nil, repoError(err, fmt.Sprintf("List with ID %s not found", card.ListID), "Failed to fetch list")
	}
	return card, list, nil
}

func (s *cardServiceImpl) loadCardForMutation(ctx context.Context, cardID, actorID uuid.UUID) (*domain.Card, *domain.List, error) {
	card, list, err := s.loadCard(ctx, cardID)
	if err != nil {
		return nil, nil, err
	}
	if _, _, err := s.guard.requireBoardMember(ctx, list.BoardID, actorID); err != nil {
		return nil, nil, err
	}
	return card, list, nil
}

func (s *cardServiceImpl) single(ctx context.Context, card *domain.Card) (*dto.CardResponse, error) {
	cards, err := s.withPeople(ctx, []*domain.Card{card})
	if err != nil {
		return nil, err
	}
	return cards[0], nil
}

// withPeople loads assignee and watcher ids for all cards with two queries
func (s *cardServiceImpl) withPeople(ctx context.Context, cards []*domain.Card) ([]*dto.CardResponse, error) {
	ids := make([]uuid.UUID, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID)
	}

	assignees := make(map[uuid.UUID][]uuid.UUID)
	watchers := make(map[uuid.UUID][]uuid.UUID)
	if len(ids) > 0 {
		rows, err := s.cardRepo.FindAssignees(ctx, ids)
		if err != nil {
			return nil, internalError("Failed to fetch assignees", err)
		}
		for _, r := range rows {
			assignees[r.CardID] = append(assignees[r.CardID], r.UserID)
		}
		wrows, err := s.cardRepo.FindWatchers(ctx, ids)
		if err != nil {
			return nil, internalError("Failed to fetch watchers", err)
		}
		for _, r := range wrows {
			watchers[r.CardID] = append(watchers[r.CardID], r.UserID)
		}
	}

	result := make([]*dto.CardResponse, 0, len(cards))
	for _, c := range cards {
		result = append(result, toCardResponse(c, assignees[c.ID], watchers[c.ID]))
	}
	return result, nil
}

func cardEvent(t client.NotificationType, target, boardID uuid.UUID, card *domain.Card) client.NotificationEvent {
	return client.NotificationEvent{
		Type:         t,
		TargetUserID: target,
		BoardID:      &boardID,
		ResourceType: "card",
		ResourceID:   card.ID,
		ResourceName: card.Title,
	}
}

func toCardResponse(c *domain.Card, assignees, watchers []uuid.UUID) *dto.CardResponse {
	if assignees == nil {
		assignees = []uuid.UUID{}
	}
	if watchers == nil {
		watchers = []uuid.UUID{}
	}
	return &dto.CardResponse{
		ID:             c.ID,
		ListID:         c.ListID,
		CreatedByID:    c.CreatedByID,
		Title:          c.Title,
		Description:    c.Description,
		DueDate:        c.DueDate,
		Priority:       string(c.Priority),
		Status:         string(c.Status),
		Position:       c.Position,
		Labels:         c.LabelList(),
		EstimatedHours: c.EstimatedHours,
		SpentHours:     c.SpentHours,
		CoverImage:     c.CoverImage,
		AssigneeIDs:    assignees,
		WatcherIDs:     watchers,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
