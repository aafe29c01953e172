package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
	"taskboard-api/internal/util"
)

type BoardHandler struct {
	boardService service.BoardService
}

func NewBoardHandler(boardService service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// CreateBoard godoc
// @Summary      Board 생성
// @Description  Workspace 멤버만 생성할 수 있으며 생성자는 board admin이 됩니다
// @Tags         boards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBoardRequest true "Board 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.BoardResponse}
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "Workspace 멤버가 아님"
// @Failure      404 {object} response.ErrorResponse "Workspace를 찾을 수 없음"
// @Router       /tasks/boards [post]
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateBoardRequest
	if !bindJSON(c, &req) {
		return
	}

	board, err := h.boardService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, board)
}

// GetBoardsByWorkspace godoc
// @Summary      Workspace의 Board 목록
// @Description  요청자가 볼 수 있는 활성 Board만 반환합니다
// @Tags         boards
// @Security     BearerAuth
// @Produce      json
// @Param        workspaceId path string true "Workspace ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.BoardResponse}
// @Router       /tasks/boards/workspace/{workspaceId} [get]
func (h *BoardHandler) GetBoardsByWorkspace(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	workspaceID, ok := uuidParam(c, "workspaceId", "workspace")
	if !ok {
		return
	}

	boards, err := h.boardService.FindByWorkspace(c.Request.Context(), workspaceID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, boards)
}

// GetBoard godoc
// @Summary      Board 조회
// @Tags         boards
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.BoardResponse}
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /tasks/boards/{id} [get]
func (h *BoardHandler) GetBoard(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "id", "board")
	if !ok {
		return
	}

	board, err := h.boardService.FindOne(c.Request.Context(), boardID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, board)
}

// UpdateBoard godoc
// @Summary      Board 수정
// @Tags         boards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Board ID (UUID)"
// @Param        request body dto.UpdateBoardRequest true "Board 수정 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.BoardResponse}
// @Failure      403 {object} response.ErrorResponse "board admin 아님"
// @Router       /tasks/boards/{id} [patch]
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "id", "board")
	if !ok {
		return
	}
	var req dto.UpdateBoardRequest
	if !bindJSON(c, &req) {
		return
	}

	board, err := h.boardService.Update(c.Request.Context(), boardID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, board)
}

// DeleteBoard godoc
// @Summary      Board 삭제 (soft delete)
// @Tags         boards
// @Security     BearerAuth
// @Param        id path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Router       /tasks/boards/{id} [delete]
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "id", "board")
	if !ok {
		return
	}

	if err := h.boardService.Remove(c.Request.Context(), boardID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, nil)
}

// GetMembers godoc
// @Summary      Board 멤버 목록
// @Tags         boards
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.MemberResponse}
// @Router       /tasks/boards/{id}/members [get]
func (h *BoardHandler) GetMembers(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "id", "board")
	if !ok {
		return
	}

	members, err := h.boardService.GetMembers(c.Request.Context(), boardID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, members)
}

// AddMember godoc
// @Summary      Board 멤버 추가
// @Tags         boards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Board ID (UUID)"
// @Param        request body dto.AddMemberRequest true "멤버 추가 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.MemberResponse}
// @Failure      409 {object} response.ErrorResponse "이미 멤버"
// @Router       /tasks/boards/{id}/members [post]
func (h *BoardHandler) AddMember(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "id", "board")
	if !ok {
		return
	}
	var req dto.AddMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.boardService.AddMember(c.Request.Context(), boardID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, member)
}

// RemoveMember godoc
// @Summary      Board 멤버 제거
// @Tags         boards
// @Security     BearerAuth
// @Param        id path string true "Board ID (UUID)"
// @Param        userId path string true "User ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      409 {object} response.ErrorResponse "마지막 admin"
// @Router       /tasks/boards/{id}/members/{userId} [delete]
func (h *BoardHandler) RemoveMember(c *gin.Context) {
	actorID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "id", "board")
	if !ok {
		return
	}
	memberID, ok := uuidParam(c, "userId", "user")
	if !ok {
		return
	}

	if err := h.boardService.RemoveMember(c.Request.Context(), boardID, memberID, actorID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, nil)
}

// UpdateMemberRole godoc
// @Summary      Board 멤버 역할 변경
// @Tags         boards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Board ID (UUID)"
// @Param        userId path string true "User ID (UUID)"
// @Param        request body dto.UpdateMemberRoleRequest true "역할 변경 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.MemberResponse}
// @Router       /tasks/boards/{id}/members/{userId}/role [patch]
func (h *BoardHandler) UpdateMemberRole(c *gin.Context) {
	actorID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "id", "board")
	if !ok {
		return
	}
	memberID, ok := uuidParam(c, "userId", "user")
	if !ok {
		return
	}
	var req dto.UpdateMemberRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.boardService.UpdateMemberRole(c.Request.Context(), boardID, memberID, actorID, req.Role)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, member)
}

// CheckAccess godoc
// @Summary      Board 접근 권한 확인
// @Tags         boards
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.BoardAccessResponse}
// @Router       /tasks/boards/{id}/access [get]
func (h *BoardHandler) CheckAccess(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "id", "board")
	if !ok {
		return
	}

	access, err := h.boardService.CheckAccess(c.Request.Context(), boardID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, access)
}
