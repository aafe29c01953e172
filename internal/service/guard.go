package service

import (
	"context"

	"github.com/google/uuid"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// accessGuard resolves board and workspace roles for an actor.
// Only the admin role grants board administration. Any membership grants
// content mutation. Reads additionally honour board visibility.
type accessGuard struct {
	boardRepo     repository.BoardRepository
	workspaceRepo repository.WorkspaceRepository
}

func newAccessGuard(boardRepo repository.BoardRepository, workspaceRepo repository.WorkspaceRepository) *accessGuard {
	return &accessGuard{boardRepo: boardRepo, workspaceRepo: workspaceRepo}
}

func (g *accessGuard) activeBoard(ctx context.Context, boardID uuid.UUID) (*domain.Board, error) {
	board, err := g.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		return nil, repoError(err, "Board not found", "Failed to fetch board")
	}
	return board, nil
}

func (g *accessGuard) boardMember(ctx context.Context, boardID, userID uuid.UUID) (*domain.BoardMember, error) {
	member, err := g.boardRepo.FindMember(ctx, boardID, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, internalError("Failed to check board membership", err)
	}
	return member, nil
}

// requireBoardAdmin loads the active board and fails with FORBIDDEN unless
// the actor holds the admin role on it.
func (g *accessGuard) requireBoardAdmin(ctx context.Context, boardID, actorID uuid.UUID, forbiddenMsg string) (*domain.Board, *domain.BoardMember, error) {
	board, err := g.activeBoard(ctx, boardID)
	if err != nil {
		return nil, nil, err
	}
	member, err := g.boardMember(ctx, boardID, actorID)
	if err != nil {
		return nil, nil, err
	}
	if member == nil || !member.IsAdmin() {
		return nil, nil, response.NewForbiddenError(forbiddenMsg, "")
	}
	return board, member, nil
}

// requireBoardMember loads the active board and fails with FORBIDDEN when the
// actor has no membership on it.
func (g *accessGuard) requireBoardMember(ctx context.Context, boardID, actorID uuid.UUID) (*domain.Board, *domain.BoardMember, error) {
	board, err := g.activeBoard(ctx, boardID)
	if err != nil {
		return nil, nil, err
	}
	member, err := g.boardMember(ctx, boardID, actorID)
	if err != nil {
		return nil, nil, err
	}
	if member == nil {
		return nil, nil, response.NewForbiddenError("You are not a member of this board", "")
	}
	return board, member, nil
}

// canView reports whether actorID may read board and the role it holds, if any.
func (g *accessGuard) canView(ctx context.Context, board *domain.Board, actorID uuid.UUID) (bool, *domain.BoardMember, error) {
	member, err := g.boardMember(ctx, board.ID, actorID)
	if err != nil {
		return false, nil, err
	}
	if member != nil {
		return true, member, nil
	}

	switch board.Visibility {
	case domain.BoardVisibilityPublic:
		return true, nil, nil
	case domain.BoardVisibilityWorkspace:
		wsMember, err := g.workspaceMember(ctx, board.WorkspaceID, actorID)
		if err != nil {
			return false, nil, err
		}
		return wsMember != nil, nil, nil
	}
	return false, nil, nil
}

// requireBoardView loads the active board and fails with FORBIDDEN when the
// actor cannot read it.
func (g *accessGuard) requireBoardView(ctx context.Context, boardID, actorID uuid.UUID) (*domain.Board, error) {
	board, err := g.activeBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	ok, _, err := g.canView(ctx, board, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, response.NewForbiddenError("You do not have access to this board", "")
	}
	return board, nil
}

// requireBoardViewAny is requireBoardView for direct child lookups. The board
// may be soft deleted since removing a board does not hide its lists or cards.
func (g *accessGuard) requireBoardViewAny(ctx context.Context, boardID, actorID uuid.UUID) (*domain.Board, error) {
	board, err := g.boardRepo.FindByIDAny(ctx, boardID)
	if err != nil {
		return nil, repoError(err, "Board not found", "Failed to fetch board")
	}
	ok, _, err := g.canView(ctx, board, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, response.NewForbiddenError("You do not have access to this board", "")
	}
	return board, nil
}

func (g *accessGuard) workspaceMember(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.WorkspaceMember, error) {
	member, err := g.workspaceRepo.FindMember(ctx, workspaceID, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, internalError("Failed to check workspace membership", err)
	}
	return member, nil
}

func (g *accessGuard) requireWorkspaceMember(ctx context.Context, workspaceID, actorID uuid.UUID) (*domain.WorkspaceMember, error) {
	member, err := g.workspaceMember(ctx, workspaceID, actorID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, response.NewForbiddenError("You are not a member of this workspace", "")
	}
	return member, nil
}

func (g *accessGuard) requireWorkspaceAdmin(ctx context.Context, workspaceID, actorID uuid.UUID, forbiddenMsg string) (*domain.WorkspaceMember, error) {
	member, err := g.requireWorkspaceMember(ctx, workspaceID, actorID)
	if err != nil {
		return nil, err
	}
	if member.Role != domain.MemberRoleAdmin {
		return nil, response.NewForbiddenError(forbiddenMsg, "")
	}
	return member, nil
}
