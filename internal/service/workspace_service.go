package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard-api/internal/client"
	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// WorkspaceService defines the interface for workspace business logic
type WorkspaceService interface {
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, error)
	ListMine(ctx context.Context, actorID uuid.UUID) ([]*dto.WorkspaceResponse, error)
	Get(ctx context.Context, workspaceID, actorID uuid.UUID) (*dto.WorkspaceResponse, error)
	Update(ctx context.Context, workspaceID, actorID uuid.UUID, req *dto.UpdateWorkspaceRequest) (*dto.WorkspaceResponse, error)
	Delete(ctx context.Context, workspaceID, actorID uuid.UUID) error

	AddMember(ctx context.Context, workspaceID, actorID uuid.UUID, req *dto.AddMemberRequest) (*dto.MemberResponse, error)
	ListMembers(ctx context.Context, workspaceID, actorID uuid.UUID) ([]*dto.MemberResponse, error)
	RemoveMember(ctx context.Context, workspaceID, userID, actorID uuid.UUID) error
}

type workspaceServiceImpl struct {
	workspaceRepo repository.WorkspaceRepository
	userRepo      repository.UserRepository
	guard         *accessGuard
	notifier      *notifier
	metrics       *metrics.Metrics
	logger        *zap.Logger
}

// NewWorkspaceService creates a new instance of WorkspaceService
func NewWorkspaceService(
	workspaceRepo repository.WorkspaceRepository,
	boardRepo repository.BoardRepository,
	userRepo repository.UserRepository,
	notifications client.NotificationClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) WorkspaceService {
	return &workspaceServiceImpl{
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
		guard:         newAccessGuard(boardRepo, workspaceRepo),
		notifier:      newNotifier(notifications, logger),
		metrics:       m,
		logger:        logger,
	}
}

// Create stores the workspace and makes the creator its admin in one transaction
func (s *workspaceServiceImpl) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, error) {
	ws := &domain.Workspace{
		Name:        req.Name,
		Description: req.Description,
		Logo:        req.Logo,
		OwnerID:     actorID,
	}
	owner := &domain.WorkspaceMember{UserID: actorID, Role: domain.MemberRoleAdmin}

	if err := s.workspaceRepo.CreateWithOwner(ctx, ws, owner); err != nil {
		return nil, internalError("Failed to create workspace", err)
	}

	s.logger.Info("Workspace created",
		zap.String("workspace_id", ws.ID.String()),
		zap.String("user_id", actorID.String()))
	return toWorkspaceResponse(ws), nil
}

func (s *workspaceServiceImpl) ListMine(ctx context.Context, actorID uuid.UUID) ([]*dto.WorkspaceResponse, error) {
	workspaces, err := s.workspaceRepo.FindByUser(ctx, actorID)
	if err != nil {
		return nil, internalError("Failed to fetch workspaces", err)
	}
	result := make([]*dto.WorkspaceResponse, 0, len(workspaces))
	for _, ws := range workspaces {
		result = append(result, toWorkspaceResponse(ws))
	}
	return result, nil
}

func (s *workspaceServiceImpl) Get(ctx context.Context, workspaceID, actorID uuid.UUID) (*dto.WorkspaceResponse, error) {
	ws, err := s.findWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.requireWorkspaceMember(ctx, workspaceID, actorID); err != nil {
		return nil, err
	}
	return toWorkspaceResponse(ws), nil
}

func (s *workspaceServiceImpl) Update(ctx context.Context, workspaceID, actorID uuid.UUID, req *dto.UpdateWorkspaceRequest) (*dto.WorkspaceResponse, error) {
	ws, err := s.findWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.requireWorkspaceAdmin(ctx, workspaceID, actorID, "Only workspace admins can update the workspace"); err != nil {
		return nil, err
	}

	if req.Name != nil {
		ws.Name = *req.Name
	}
	if req.Description != nil {
		ws.Description = *req.Description
	}
	if req.Logo != nil {
		ws.Logo = *req.Logo
	}

	if err := s.workspaceRepo.Update(ctx, ws); err != nil {
		return nil, internalError("Failed to update workspace", err)
	}
	return toWorkspaceResponse(ws), nil
}

func (s *workspaceServiceImpl) Delete(ctx context.Context, workspaceID, actorID uuid.UUID) error {
	if _, err := s.findWorkspace(ctx, workspaceID); err != nil {
		return err
	}
	if _, err := s.guard.requireWorkspaceAdmin(ctx, workspaceID, actorID, "Only workspace admins can delete the workspace"); err != nil {
		return err
	}
	if err := s.workspaceRepo.Delete(ctx, workspaceID); err != nil {
		return repoError(err, "Workspace not found", "Failed to delete workspace")
	}

	s.logger.Info("Workspace deleted",
		zap.String("workspace_id", workspaceID.String()),
		zap.String("user_id", actorID.String()))
	return nil
}

func (s *workspaceServiceImpl) AddMember(ctx context.Context, workspaceID, actorID uuid.UUID, req *dto.AddMemberRequest) (*dto.MemberResponse, error) {
	ws, err := s.findWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.requireWorkspaceAdmin(ctx, workspaceID, actorID, "Only workspace admins can add members"); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, repoError(err, "User not found", "Failed to fetch user")
	}

	existing, err := s.guard.workspaceMember(ctx, workspaceID, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, response.NewConflictError("User is already a member of this workspace", "")
	}

	role := domain.MemberRoleMember
	if req.Role != "" {
		role = domain.MemberRole(req.Role)
	}
	member := &domain.WorkspaceMember{WorkspaceID: workspaceID, UserID: req.UserID, Role: role}
	if err := s.workspaceRepo.AddMember(ctx, member); err != nil {
		return nil, internalError("Failed to add member", err)
	}

	s.notifier.notify(ctx, actorID, client.NotificationEvent{
		Type:         client.NotificationWorkspaceMemberAdded,
		TargetUserID: req.UserID,
		WorkspaceID:  &workspaceID,
		ResourceType: "workspace",
		ResourceID:   workspaceID,
		ResourceName: ws.Name,
		Metadata:     map[string]interface{}{"role": string(role)},
	})
	return toWorkspaceMemberResponse(member), nil
}

func (s *workspaceServiceImpl) ListMembers(ctx context.Context, workspaceID, actorID uuid.UUID) ([]*dto.MemberResponse, error) {
	if _, err := s.findWorkspace(ctx, workspaceID); err != nil {
		return nil, err
	}
	if _, err := s.guard.requireWorkspaceMember(ctx, workspaceID, actorID); err != nil {
		return nil, err
	}
	members, err := s.workspaceRepo.FindMembers(ctx, workspaceID)
	if err != nil {
		return nil, internalError("Failed to fetch members", err)
	}
	result := make([]*dto.MemberResponse, 0, len(members))
	for _, m := range members {
		result = append(result, toWorkspaceMemberResponse(m))
	}
	return result, nil
}

// RemoveMember lets an admin remove anyone and any member remove themself.
// The last admin of a workspace cannot be removed.
func (s *workspaceServiceImpl) RemoveMember(ctx context.Context, workspaceID, userID, actorID uuid.UUID) error {
	if _, err := s.findWorkspace(ctx, workspaceID); err != nil {
		return err
	}
	if userID == actorID {
		if _, err := s.guard.requireWorkspaceMember(ctx, workspaceID, actorID); err != nil {
			return err
		}
	} else if _, err := s.guard.requireWorkspaceAdmin(ctx, workspaceID, actorID, "Only workspace admins can remove members"); err != nil {
		return err
	}

	target, err := s.guard.workspaceMember(ctx, workspaceID, userID)
	if err != nil {
		return err
	}
	if target == nil {
		return response.NewNotFoundError("Member not found in this workspace", "")
	}

	if target.Role == domain.MemberRoleAdmin {
		admins, err := s.workspaceRepo.CountAdmins(ctx, workspaceID)
		if err != nil {
			return internalError("Failed to count admins", err)
		}
		if admins <= 1 {
			return response.NewConflictError("Cannot remove the last admin from the workspace", "")
		}
	}

	if err := s.workspaceRepo.RemoveMember(ctx, workspaceID, userID); err != nil {
		return repoError(err, "Member not found in this workspace", "Failed to remove member")
	}
	return nil
}

func (s *workspaceServiceImpl) findWorkspace(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	ws, err := s.workspaceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Workspace not found", "Failed to fetch workspace")
	}
	return ws, nil
}

func toWorkspaceResponse(ws *domain.Workspace) *dto.WorkspaceResponse {
	return &dto.WorkspaceResponse{
		ID:          ws.ID,
		Name:        ws.Name,
		Description: ws.Description,
		Logo:        ws.Logo,
		OwnerID:     ws.OwnerID,
		CreatedAt:   ws.CreatedAt,
		UpdatedAt:   ws.UpdatedAt,
	}
}

func toWorkspaceMemberResponse(m *domain.WorkspaceMember) *dto.MemberResponse {
	return &dto.MemberResponse{
		ID:       m.ID,
		UserID:   m.UserID,
		Role:     string(m.Role),
		JoinedAt: m.JoinedAt,
	}
}
