package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
	"taskboard-api/internal/util"
)

type ListHandler struct {
	listService service.ListService
}

func NewListHandler(listService service.ListService) *ListHandler {
	return &ListHandler{listService: listService}
}

// CreateList godoc
// @Summary      List 생성
// @Description  position이 없으면 마지막에 추가됩니다
// @Tags         lists
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateListRequest true "List 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.ListResponse}
// @Failure      404 {object} response.ErrorResponse "Board를 찾을 수 없음"
// @Router       /tasks/lists [post]
func (h *ListHandler) CreateList(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateListRequest
	if !bindJSON(c, &req) {
		return
	}

	list, err := h.listService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, list)
}

// GetListsByBoard godoc
// @Summary      Board의 List 목록
// @Tags         lists
// @Security     BearerAuth
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ListResponse}
// @Router       /tasks/lists/board/{boardId} [get]
func (h *ListHandler) GetListsByBoard(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "boardId", "board")
	if !ok {
		return
	}

	lists, err := h.listService.FindByBoard(c.Request.Context(), boardID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, lists)
}

// GetList godoc
// @Summary      List 조회
// @Tags         lists
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "List ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ListResponse}
// @Router       /tasks/lists/{id} [get]
func (h *ListHandler) GetList(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	listID, ok := uuidParam(c, "id", "list")
	if !ok {
		return
	}

	list, err := h.listService.FindOne(c.Request.Context(), listID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, list)
}

// UpdateList godoc
// @Summary      List 수정
// @Tags         lists
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "List ID (UUID)"
// @Param        request body dto.UpdateListRequest true "List 수정 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.ListResponse}
// @Router       /tasks/lists/{id} [patch]
func (h *ListHandler) UpdateList(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	listID, ok := uuidParam(c, "id", "list")
	if !ok {
		return
	}
	var req dto.UpdateListRequest
	if !bindJSON(c, &req) {
		return
	}

	list, err := h.listService.Update(c.Request.Context(), listID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, list)
}

// DeleteList godoc
// @Summary      List 삭제 (soft delete)
// @Tags         lists
// @Security     BearerAuth
// @Param        id path string true "List ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Router       /tasks/lists/{id} [delete]
func (h *ListHandler) DeleteList(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	listID, ok := uuidParam(c, "id", "list")
	if !ok {
		return
	}

	if err := h.listService.Remove(c.Request.Context(), listID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, nil)
}

// ReorderLists godoc
// @Summary      List 순서 변경
// @Description  ids 순서대로 position을 0부터 다시 매깁니다. 빠진 List는 기존 순서대로 뒤에 붙습니다
// @Tags         lists
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Board ID (UUID)"
// @Param        request body dto.ReorderRequest true "순서 변경 요청"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ListResponse}
// @Failure      400 {object} response.ErrorResponse "중복된 ID"
// @Failure      404 {object} response.ErrorResponse "Board에 속하지 않은 List"
// @Router       /tasks/lists/{id}/reorder [post]
func (h *ListHandler) ReorderLists(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "id", "board")
	if !ok {
		return
	}
	var req dto.ReorderRequest
	if !bindJSON(c, &req) {
		return
	}

	lists, err := h.listService.Reorder(c.Request.Context(), boardID, userID, req.IDs)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, lists)
}
