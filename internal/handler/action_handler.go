package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
	"taskboard-api/internal/util"
)

type ActionHandler struct {
	actionService service.ActionService
}

func NewActionHandler(actionService service.ActionService) *ActionHandler {
	return &ActionHandler{actionService: actionService}
}

// GetBoardActions godoc
// @Summary      Board 활동 내역
// @Description  최신순으로 반환합니다. limit 기본값 50, 최대 200
// @Tags         actions
// @Security     BearerAuth
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Param        limit query int false "최대 개수"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ActionResponse}
// @Router       /tasks/actions/board/{boardId} [get]
func (h *ActionHandler) GetBoardActions(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "boardId", "board")
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit", 0)
	if !ok {
		return
	}

	actions, err := h.actionService.ListByBoard(c.Request.Context(), boardID, userID, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, actions)
}

// GetBoardUserActions godoc
// @Summary      Board 내 특정 사용자의 활동 내역
// @Tags         actions
// @Security     BearerAuth
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Param        userId path string true "User ID (UUID)"
// @Param        limit query int false "최대 개수"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ActionResponse}
// @Router       /tasks/actions/board/{boardId}/user/{userId} [get]
func (h *ActionHandler) GetBoardUserActions(c *gin.Context) {
	actorID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "boardId", "board")
	if !ok {
		return
	}
	userID, ok := uuidParam(c, "userId", "user")
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit", 0)
	if !ok {
		return
	}

	actions, err := h.actionService.ListByBoardAndUser(c.Request.Context(), boardID, userID, actorID, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, actions)
}

// GetTargetActions godoc
// @Summary      대상(Card, List 등)의 활동 내역
// @Tags         actions
// @Security     BearerAuth
// @Produce      json
// @Param        targetId path string true "Target ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ActionResponse}
// @Router       /tasks/actions/target/{targetId} [get]
func (h *ActionHandler) GetTargetActions(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	targetID, ok := uuidParam(c, "targetId", "target")
	if !ok {
		return
	}

	actions, err := h.actionService.ListByTarget(c.Request.Context(), targetID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, actions)
}
