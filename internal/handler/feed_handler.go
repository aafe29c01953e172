package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"taskboard-api/internal/realtime"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
	"taskboard-api/internal/util"
)

// FeedHandler streams board activity over websockets
type FeedHandler struct {
	boardService service.BoardService
	hub          *realtime.Hub
	upgrader     websocket.Upgrader
	logger       *zap.Logger
}

// NewFeedHandler accepts upgrades from allowedOrigins. A "*" entry or an
// empty list accepts any origin.
func NewFeedHandler(boardService service.BoardService, hub *realtime.Hub, allowedOrigins []string, logger *zap.Logger) *FeedHandler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	return &FeedHandler{
		boardService: boardService,
		hub:          hub,
		logger:       logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(origins) == 0 || origins["*"] || origins[origin]
			},
		},
	}
}

// Subscribe godoc
// @Summary      Board 활동 피드 (WebSocket)
// @Description  Board에 기록되는 action을 실시간으로 전달합니다. 브라우저는 token 쿼리 파라미터를 사용할 수 있습니다
// @Tags         boards
// @Security     BearerAuth
// @Param        id path string true "Board ID (UUID)"
// @Param        token query string false "JWT Access Token"
// @Success      101 {string} string "Switching Protocols"
// @Failure      403 {object} response.ErrorResponse
// @Router       /tasks/boards/{id}/feed [get]
func (h *FeedHandler) Subscribe(c *gin.Context) {
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
	if !access.HasAccess {
		response.SendError(c, http.StatusForbidden, response.ErrCodeForbidden, "You do not have access to this board")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader already wrote the error response
		h.logger.Warn("Failed to upgrade feed connection", zap.Error(err))
		return
	}

	h.hub.Serve(conn, h.hub.Subscribe(boardID, userID))
}
