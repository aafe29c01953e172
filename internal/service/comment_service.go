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

// CommentService defines the interface for card comment business logic
type CommentService interface {
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	FindByCard(ctx context.Context, cardID, actorID uuid.UUID) ([]*dto.CommentResponse, error)
	FindOne(ctx context.Context, commentID, actorID uuid.UUID) (*dto.CommentResponse, error)
	Update(ctx context.Context, commentID, actorID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	Remove(ctx context.Context, commentID, actorID uuid.UUID) error
}

type commentServiceImpl struct {
	commentRepo repository.CommentRepository
	cardRepo    repository.CardRepository
	listRepo    repository.ListRepository
	actions     ActionService
	guard       *accessGuard
	notifier    *notifier
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	cardRepo repository.CardRepository,
	listRepo repository.ListRepository,
	boardRepo repository.BoardRepository,
	workspaceRepo repository.WorkspaceRepository,
	actions ActionService,
	notifications client.NotificationClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		cardRepo:    cardRepo,
		listRepo:    listRepo,
		actions:     actions,
		guard:       newAccessGuard(boardRepo, workspaceRepo),
		notifier:    newNotifier(notifications, logger),
		metrics:     m,
		logger:      logger,
	}
}

func (s *commentServiceImpl) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	card, boardID, err := s.resolveCard(ctx, req.CardID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.guard.requireBoardMember(ctx, boardID, actorID); err != nil {
		return nil, err
	}

	comment := &domain.CardComment{
		CardID:   card.ID,
		AuthorID: actorID,
		Content:  req.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, internalError("Failed to create comment", err)
	}

	s.actions.Record(ctx, ActionEntry{
		BoardID:     boardID,
		UserID:      actorID,
		Type:        domain.ActionAddComment,
		TargetID:    &card.ID,
		TargetType:  domain.TargetTypeCard,
		Metadata:    map[string]interface{}{"commentId": comment.ID.String()},
		Description: fmt.Sprintf("Commented on card %q", card.Title),
	})
	s.notifyParticipants(ctx, actorID, boardID, card)

	return toCommentResponse(comment), nil
}

func (s *commentServiceImpl) FindByCard(ctx context.Context, cardID, actorID uuid.UUID) ([]*dto.CommentResponse, error) {
	_, boardID, err := s.resolveCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.requireBoardViewAny(ctx, boardID, actorID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.FindByCard(ctx, cardID)
	if err != nil {
		return nil, internalError("Failed to fetch comments", err)
	}
	result := make([]*dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		result = append(result, toCommentResponse(c))
	}
	return result, nil
}

func (s *commentServiceImpl) FindOne(ctx context.Context, commentID, actorID uuid.UUID) (*dto.CommentResponse, error) {
	comment, boardID, err := s.resolveComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.requireBoardViewAny(ctx, boardID, actorID); err != nil {
		return nil, err
	}
	return toCommentResponse(comment), nil
}

// Update edits the content of a comment. Only its author may do so.
func (s *commentServiceImpl) Update(ctx context.Context, commentID, actorID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, _, err := s.resolveComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actorID {
		return nil, response.NewForbiddenError("You can only edit your own comments", "")
	}

	comment.Content = req.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, internalError("Failed to update comment", err)
	}
	return toCommentResponse(comment), nil
}

func (s *commentServiceImpl) Remove(ctx context.Context, commentID, actorID uuid.UUID) error {
	comment, boardID, err := s.resolveComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID {
		return response.NewForbiddenError("You can only delete your own comments", "")
	}

	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return repoError(err, fmt.Sprintf("Comment with ID %s not found", commentID), "Failed to delete comment")
	}

	s.actions.Record(ctx, ActionEntry{
		BoardID:     boardID,
		UserID:      actorID,
		Type:        domain.ActionDeleteComment,
		TargetID:    &comment.CardID,
		TargetType:  domain.TargetTypeCard,
		Metadata:    map[string]interface{}{"commentId": comment.ID.String()},
		Description: "Deleted comment",
	})
	return nil
}

// resolveCard returns the card and the id of the board that owns it
func (s *commentServiceImpl) resolveCard(ctx context.Context, cardID uuid.UUID) (*domain.Card, uuid.UUID, error) {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return nil, uuid.Nil, repoError(err, fmt.Sprintf("Card with ID %s not found", cardID), "Failed to fetch card")
	}
	list, err := s.listRepo.FindByIDAny(ctx, card.ListID)
	if err != nil {
		return nil, uuid.Nil, repoError(err, fmt.Sprintf("List with ID %s not found", card.ListID), "Failed to fetch list")
	}
	return card, list.BoardID, nil
}

func (s *commentServiceImpl) resolveComment(ctx context.Context, commentID uuid.UUID) (*domain.CardComment, uuid.UUID, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, uuid.Nil, repoError(err, fmt.Sprintf("Comment with ID %s not found", commentID), "Failed to fetch comment")
	}
	_, boardID, err := s.resolveCard(ctx, comment.CardID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	return comment, boardID, nil
}

// notifyParticipants tells assignees and watchers of the card about a new comment
func (s *commentServiceImpl) notifyParticipants(ctx context.Context, actorID, boardID uuid.UUID, card *domain.Card) {
	assignees, err := s.cardRepo.FindAssignees(ctx, []uuid.UUID{card.ID})
	if err != nil {
		s.logger.Warn("Failed to load assignees for comment notification", zap.String("card_id", card.ID.String()), zap.Error(err))
		return
	}
	watchers, err := s.cardRepo.FindWatchers(ctx, []uuid.UUID{card.ID})
	if err != nil {
		s.logger.Warn("Failed to load watchers for comment notification", zap.String("card_id", card.ID.String()), zap.Error(err))
		return
	}

	seen := make(map[uuid.UUID]struct{})
	events := make([]client.NotificationEvent, 0, len(assignees)+len(watchers))
	add := func(userID uuid.UUID) {
		if _, ok := seen[userID]; ok {
			return
		}
		seen[userID] = struct{}{}
		events = append(events, cardEvent(client.NotificationCommentAdded, userID, boardID, card))
	}
	for _, a := range assignees {
		add(a.UserID)
	}
	for _, w := range watchers {
		add(w.UserID)
	}
	s.notifier.notify(ctx, actorID, events...)
}

func toCommentResponse(c *domain.CardComment) *dto.CommentResponse {
	return &dto.CommentResponse{
		ID:        c.ID,
		CardID:    c.CardID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
