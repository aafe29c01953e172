package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
	"taskboard-api/internal/util"
)

type WorkspaceHandler struct {
	workspaceService service.WorkspaceService
}

func NewWorkspaceHandler(workspaceService service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// CreateWorkspace godoc
// @Summary      Workspace 생성
// @Description  생성자는 자동으로 admin 멤버가 됩니다
// @Tags         workspaces
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateWorkspaceRequest true "Workspace 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.WorkspaceResponse}
// @Failure      400 {object} response.ErrorResponse
// @Router       /workspaces [post]
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateWorkspaceRequest
	if !bindJSON(c, &req) {
		return
	}

	ws, err := h.workspaceService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, ws)
}

// ListWorkspaces godoc
// @Summary      내 Workspace 목록
// @Tags         workspaces
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.WorkspaceResponse}
// @Router       /workspaces [get]
func (h *WorkspaceHandler) ListWorkspaces(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}

	list, err := h.workspaceService.ListMine(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, list)
}

// GetWorkspace godoc
// @Summary      Workspace 조회
// @Tags         workspaces
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Workspace ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.WorkspaceResponse}
// @Failure      403 {object} response.ErrorResponse "멤버가 아님"
// @Failure      404 {object} response.ErrorResponse
// @Router       /workspaces/{id} [get]
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	workspaceID, ok := uuidParam(c, "id", "workspace")
	if !ok {
		return
	}

	ws, err := h.workspaceService.Get(c.Request.Context(), workspaceID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, ws)
}

// UpdateWorkspace godoc
// @Summary      Workspace 수정
// @Tags         workspaces
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Workspace ID (UUID)"
// @Param        request body dto.UpdateWorkspaceRequest true "Workspace 수정 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.WorkspaceResponse}
// @Failure      403 {object} response.ErrorResponse "admin 아님"
// @Router       /workspaces/{id} [patch]
func (h *WorkspaceHandler) UpdateWorkspace(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	workspaceID, ok := uuidParam(c, "id", "workspace")
	if !ok {
		return
	}
	var req dto.UpdateWorkspaceRequest
	if !bindJSON(c, &req) {
		return
	}

	ws, err := h.workspaceService.Update(c.Request.Context(), workspaceID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, ws)
}

// DeleteWorkspace godoc
// @Summary      Workspace 삭제
// @Tags         workspaces
// @Security     BearerAuth
// @Param        id path string true "Workspace ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Router       /workspaces/{id} [delete]
func (h *WorkspaceHandler) DeleteWorkspace(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	workspaceID, ok := uuidParam(c, "id", "workspace")
	if !ok {
		return
	}

	if err := h.workspaceService.Delete(c.Request.Context(), workspaceID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, nil)
}

// ListMembers godoc
// @Summary      Workspace 멤버 목록
// @Tags         workspaces
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Workspace ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.MemberResponse}
// @Router       /workspaces/{id}/members [get]
func (h *WorkspaceHandler) ListMembers(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	workspaceID, ok := uuidParam(c, "id", "workspace")
	if !ok {
		return
	}

	members, err := h.workspaceService.ListMembers(c.Request.Context(), workspaceID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, members)
}

// AddMember godoc
// @Summary      Workspace 멤버 추가
// @Tags         workspaces
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Workspace ID (UUID)"
// @Param        request body dto.AddMemberRequest true "멤버 추가 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.MemberResponse}
// @Failure      409 {object} response.ErrorResponse "이미 멤버"
// @Router       /workspaces/{id}/members [post]
func (h *WorkspaceHandler) AddMember(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	workspaceID, ok := uuidParam(c, "id", "workspace")
	if !ok {
		return
	}
	var req dto.AddMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.workspaceService.AddMember(c.Request.Context(), workspaceID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, member)
}

// RemoveMember godoc
// @Summary      Workspace 멤버 제거
// @Description  본인 탈퇴 또는 admin에 의한 제거. 마지막 admin은 제거할 수 없습니다
// @Tags         workspaces
// @Security     BearerAuth
// @Param        id path string true "Workspace ID (UUID)"
// @Param        userId path string true "User ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      409 {object} response.ErrorResponse "마지막 admin"
// @Router       /workspaces/{id}/members/{userId} [delete]
func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	actorID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	workspaceID, ok := uuidParam(c, "id", "workspace")
	if !ok {
		return
	}
	memberID, ok := uuidParam(c, "userId", "user")
	if !ok {
		return
	}

	if err := h.workspaceService.RemoveMember(c.Request.Context(), workspaceID, memberID, actorID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, nil)
}
