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

// BoardService defines the interface for board business logic
type BoardService interface {
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)
	FindByWorkspace(ctx context.Context, workspaceID, actorID uuid.UUID) ([]*dto.BoardResponse, error)
	FindOne(ctx context.Context, boardID, actorID uuid.UUID) (*dto.BoardResponse, error)
	Update(ctx context.Context, boardID, actorID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error)
	Remove(ctx context.Context, boardID, actorID uuid.UUID) error

	GetMembers(ctx context.Context, boardID, actorID uuid.UUID) ([]*dto.MemberResponse, error)
	AddMember(ctx context.Context, boardID, actorID uuid.UUID, req *dto.AddMemberRequest) (*dto.MemberResponse, error)
	RemoveMember(ctx context.Context, boardID, userID, actorID uuid.UUID) error
	UpdateMemberRole(ctx context.Context, boardID, userID, actorID uuid.UUID, role string) (*dto.MemberResponse, error)
	CheckAccess(ctx context.Context, boardID, userID uuid.UUID) (*dto.BoardAccessResponse, error)
}

// boardServiceImpl is the implementation of BoardService
type boardServiceImpl struct {
	boardRepo     repository.BoardRepository
	workspaceRepo repository.WorkspaceRepository
	userRepo      repository.UserRepository
	actions       ActionService
	guard         *accessGuard
	notifier      *notifier
	metrics       *metrics.Metrics
	logger        *zap.Logger
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(
	boardRepo repository.BoardRepository,
	workspaceRepo repository.WorkspaceRepository,
	userRepo repository.UserRepository,
	actions ActionService,
	notifications client.NotificationClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) BoardService {
	return &boardServiceImpl{
		boardRepo:     boardRepo,
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
		actions:       actions,
		guard:         newAccessGuard(boardRepo, workspaceRepo),
		notifier:      newNotifier(notifications, logger),
		metrics:       m,
		logger:        logger,
	}
}

// Create creates a board and makes the creator its admin. The board row,
// the membership row and the audit entry are independent writes.
func (s *boardServiceImpl) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	if _, err := s.workspaceRepo.FindByID(ctx, req.WorkspaceID); err != nil {
		return nil, repoError(err, "Workspace not found", "Failed to verify workspace")
	}
	if _, err := s.guard.requireWorkspaceMember(ctx, req.WorkspaceID, actorID); err != nil {
		return nil, err
	}

	visibility := domain.BoardVisibilityPrivate
	if req.Visibility != "" {
		visibility = domain.BoardVisibility(req.Visibility)
		if !visibility.IsValid() {
			return nil, response.NewValidationError("Invalid board visibility", req.Visibility)
		}
	}

	board := &domain.Board{
		WorkspaceID:     req.WorkspaceID,
		Name:            req.Name,
		Description:     req.Description,
		Color:           req.Color,
		BackgroundImage: req.BackgroundImage,
		Visibility:      visibility,
		IsActive:        true,
	}
	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, internalError("Failed to create board", err)
	}

	admin := &domain.BoardMember{BoardID: board.ID, UserID: actorID, Role: domain.MemberRoleAdmin}
	if err := s.boardRepo.AddMember(ctx, admin); err != nil {
		s.logger.Error("Board created without its admin membership",
			zap.String("board_id", board.ID.String()),
			zap.String("user_id", actorID.String()),
			zap.Error(err))
		return nil, internalError("Failed to add board admin", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementBoardCreated()
	}

	s.actions.Record(ctx, ActionEntry{
		BoardID:     board.ID,
		UserID:      actorID,
		Type:        domain.ActionCreateBoard,
		TargetID:    &board.ID,
		TargetType:  domain.TargetTypeBoard,
		Metadata:    map[string]interface{}{"name": board.Name},
		Description: fmt.Sprintf("Created board %q", board.Name),
	})

	s.logger.Info("Board created",
		zap.String("board_id", board.ID.String()),
		zap.String("workspace_id", board.WorkspaceID.String()))
	return toBoardResponse(board), nil
}

// FindByWorkspace returns the active boards of a workspace the actor can read, newest first
func (s *boardServiceImpl) FindByWorkspace(ctx context.Context, workspaceID, actorID uuid.UUID) ([]*dto.BoardResponse, error) {
	if _, err := s.workspaceRepo.FindByID(ctx, workspaceID); err != nil {
		return nil, repoError(err, "Workspace not found", "Failed to verify workspace")
	}
	if _, err := s.guard.requireWorkspaceMember(ctx, workspaceID, actorID); err != nil {
		return nil, err
	}

	boards, err := s.boardRepo.FindByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, internalError("Failed to fetch boards", err)
	}

	result := make([]*dto.BoardResponse, 0, len(boards))
	for _, b := range boards {
		ok, _, err := s.guard.canView(ctx, b, actorID)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, toBoardResponse(b))
		}
	}
	return result, nil
}

func (s *boardServiceImpl) FindOne(ctx context.Context, boardID, actorID uuid.UUID) (*dto.BoardResponse, error) {
	board, err := s.guard.requireBoardView(ctx, boardID, actorID)
	if err != nil {
		return nil, err
	}
	return toBoardResponse(board), nil
}

func (s *boardServiceImpl) Update(ctx context.Context, boardID, actorID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error) {
	board, _, err := s.guard.requireBoardAdmin(ctx, boardID, actorID, "Only board admins can update the board")
	if err != nil {
		return nil, err
	}

	changes := make(map[string]interface{})
	setString := func(field string, dst *string, v *string) {
		if v != nil && *v != *dst {
			changes[field] = map[string]interface{}{"from": *dst, "to": *v}
			*dst = *v
		}
	}
	setString("name", &board.Name, req.Name)
	setString("description", &board.Description, req.Description)
	setString("color", &board.Color, req.Color)
	setString("backgroundImage", &board.BackgroundImage, req.BackgroundImage)
	if req.Visibility != nil {
		v := domain.BoardVisibility(*req.Visibility)
		if !v.IsValid() {
			return nil, response.NewValidationError("Invalid board visibility", *req.Visibility)
		}
		if v != board.Visibility {
			changes["visibility"] = map[string]interface{}{"from": string(board.Visibility), "to": string(v)}
			board.Visibility = v
		}
	}

	if err := s.boardRepo.Update(ctx, board); err != nil {
		return nil, internalError("Failed to update board", err)
	}

	s.actions.Record(ctx, ActionEntry{
		BoardID:     board.ID,
		UserID:      actorID,
		Type:        domain.ActionUpdateBoard,
		TargetID:    &board.ID,
		TargetType:  domain.TargetTypeBoard,
		Metadata:    changes,
		Description: "Updated board details",
	})
	return toBoardResponse(board), nil
}

// Remove soft deletes the board. Its lists and cards keep their own flags.
func (s *boardServiceImpl) Remove(ctx context.Context, boardID, actorID uuid.UUID) error {
	board, _, err := s.guard.requireBoardAdmin(ctx, boardID, actorID, "Only board admins can delete the board")
	if err != nil {
		return err
	}

	board.IsActive = false
	if err := s.boardRepo.Update(ctx, board); err != nil {
		return internalError("Failed to delete board", err)
	}

	s.actions.Record(ctx, ActionEntry{
		BoardID:     board.ID,
		UserID:      actorID,
		Type:        domain.ActionDeleteBoard,
		TargetID:    &board.ID,
		TargetType:  domain.TargetTypeBoard,
		Metadata:    map[string]interface{}{"boardName": board.Name},
		Description: fmt.Sprintf("Deleted board %q", board.Name),
	})
	return nil
}

func (s *boardServiceImpl) GetMembers(ctx context.Context, boardID, actorID uuid.UUID) ([]*dto.MemberResponse, error) {
	if _, err := s.guard.requireBoardView(ctx, boardID, actorID); err != nil {
		return nil, err
	}
	members, err := s.boardRepo.FindMembers(ctx, boardID)
	if err != nil {
		return nil, internalError("Failed to fetch members", err)
	}
	result := make([]*dto.MemberResponse, 0, len(members))
	for _, m := range members {
		result = append(result, toBoardMemberResponse(m))
	}
	return result, nil
}

func (s *boardServiceImpl) AddMember(ctx context.Context, boardID, actorID uuid.UUID, req *dto.AddMemberRequest) (*dto.MemberResponse, error) {
	board, _, err := s.guard.requireBoardAdmin(ctx, boardID, actorID, "Only board admins can add members")
	if err != nil {
		return nil, err
	}

	role := domain.MemberRoleMember
	if req.Role != "" {
		role = domain.MemberRole(req.Role)
		if !role.IsValid() {
			return nil, response.NewValidationError("Invalid member role", req.Role)
		}
	}

	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, repoError(err, "User not found", "Failed to fetch user")
	}

	existing, err := s.guard.boardMember(ctx, boardID, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, response.NewConflictError("User is already a member of this board", "")
	}

	member := &domain.BoardMember{BoardID: boardID, UserID: req.UserID, Role: role}
	if err := s.boardRepo.AddMember(ctx, member); err != nil {
		return nil, internalError("Failed to add member", err)
	}

	s.actions.Record(ctx, ActionEntry{
		BoardID:     boardID,
		UserID:      actorID,
		Type:        domain.ActionAddMember,
		TargetID:    &member.UserID,
		TargetType:  domain.TargetTypeMember,
		Metadata:    map[string]interface{}{"role": string(role)},
		Description: fmt.Sprintf("Added member with role %s", role),
	})
	s.notifier.notify(ctx, actorID, client.NotificationEvent{
		Type:         client.NotificationBoardMemberAdded,
		TargetUserID: member.UserID,
		WorkspaceID:  &board.WorkspaceID,
		BoardID:      &board.ID,
		ResourceType: "board",
		ResourceID:   board.ID,
		ResourceName: board.Name,
		Metadata:     map[string]interface{}{"role": string(role)},
	})
	return toBoardMemberResponse(member), nil
}

// RemoveMember deletes a membership. An admin removing themself while being
// the only admin is rejected so the board keeps at least one admin.
func (s *boardServiceImpl) RemoveMember(ctx context.Context, boardID, userID, actorID uuid.UUID) error {
	if _, _, err := s.guard.requireBoardAdmin(ctx, boardID, actorID, "Only board admins can remove members"); err != nil {
		return err
	}

	if userID == actorID {
		admins, err := s.boardRepo.CountAdmins(ctx, boardID)
		if err != nil {
			return internalError("Failed to count admins", err)
		}
		if admins <= 1 {
			return response.NewConflictError("Cannot remove the last admin from the board", "")
		}
	}

	if err := s.boardRepo.RemoveMember(ctx, boardID, userID); err != nil {
		return repoError(err, "Member not found on this board", "Failed to remove member")
	}

	s.actions.Record(ctx, ActionEntry{
		BoardID:     boardID,
		UserID:      actorID,
		Type:        domain.ActionRemoveMember,
		TargetID:    &userID,
		TargetType:  domain.TargetTypeMember,
		Description: "Removed member from board",
	})
	return nil
}

func (s *boardServiceImpl) UpdateMemberRole(ctx context.Context, boardID, userID, actorID uuid.UUID, role string) (*dto.MemberResponse, error) {
	newRole := domain.MemberRole(role)
	if !newRole.IsValid() {
		return nil, response.NewValidationError("Invalid member role", role)
	}
	if _, _, err := s.guard.requireBoardAdmin(ctx, boardID, actorID, "Only board admins can update member roles"); err != nil {
		return nil, err
	}

	member, err := s.guard.boardMember(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, response.NewNotFoundError("Member not found on this board", "")
	}

	if member.IsAdmin() && newRole != domain.MemberRoleAdmin {
		admins, err := s.boardRepo.CountAdmins(ctx, boardID)
		if err != nil {
			return nil, internalError("Failed to count admins", err)
		}
		if admins <= 1 {
			return nil, response.NewConflictError("Cannot demote the last admin of the board", "")
		}
	}

	oldRole := member.Role
	member.Role = newRole
	if err := s.boardRepo.UpdateMember(ctx, member); err != nil {
		return nil, internalError("Failed to update member role", err)
	}

	s.actions.Record(ctx, ActionEntry{
		BoardID:     boardID,
		UserID:      actorID,
		Type:        domain.ActionUpdateMemberRole,
		TargetID:    &member.UserID,
		TargetType:  domain.TargetTypeMember,
		Metadata:    map[string]interface{}{"oldRole": string(oldRole), "newRole": string(newRole)},
		Description: fmt.Sprintf("Updated member role to %s", newRole),
	})
	return toBoardMemberResponse(member), nil
}

// CheckAccess reports whether userID can read the board and its membership role
func (s *boardServiceImpl) CheckAccess(ctx context.Context, boardID, userID uuid.UUID) (*dto.BoardAccessResponse, error) {
	board, err := s.guard.activeBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	ok, member, err := s.guard.canView(ctx, board, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.BoardAccessResponse{BoardID: boardID, UserID: userID, HasAccess: ok}
	if member != nil {
		resp.Role = string(member.Role)
	}
	return resp, nil
}

func toBoardResponse(b *domain.Board) *dto.BoardResponse {
	return &dto.BoardResponse{
		ID:              b.ID,
		WorkspaceID:     b.WorkspaceID,
		Name:            b.Name,
		Description:     b.Description,
		Color:           b.Color,
		BackgroundImage: b.BackgroundImage,
		Visibility:      string(b.Visibility),
		IsActive:        b.IsActive,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func toBoardMemberResponse(m *domain.BoardMember) *dto.MemberResponse {
	return &dto.MemberResponse{
		ID:       m.ID,
		UserID:   m.UserID,
		Role:     string(m.Role),
		JoinedAt: m.JoinedAt,
	}
}
