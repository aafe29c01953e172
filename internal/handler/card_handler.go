package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
	"taskboard-api/internal/util"
)

type CardHandler struct {
	cardService service.CardService
}

func NewCardHandler(cardService service.CardService) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// CreateCard godoc
// @Summary      Card 생성
// @Description  priority 기본값 medium, status 기본값 todo. position이 없으면 마지막에 추가됩니다
// @Tags         cards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCardRequest true "Card 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.CardResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse "List를 찾을 수 없음"
// @Router       /tasks/cards [post]
func (h *CardHandler) CreateCard(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateCardRequest
	if !bindJSON(c, &req) {
		return
	}

	card, err := h.cardService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, card)
}

// GetCardsByList godoc
// @Summary      List의 Card 목록
// @Tags         cards
// @Security     BearerAuth
// @Produce      json
// @Param        listId path string true "List ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CardResponse}
// @Router       /tasks/cards/list/{listId} [get]
func (h *CardHandler) GetCardsByList(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	listID, ok := uuidParam(c, "listId", "list")
	if !ok {
		return
	}

	cards, err := h.cardService.FindByList(c.Request.Context(), listID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, cards)
}

// GetCard godoc
// @Summary      Card 조회
// @Tags         cards
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Card ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.CardResponse}
// @Router       /tasks/cards/{id} [get]
func (h *CardHandler) GetCard(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	cardID, ok := uuidParam(c, "id", "card")
	if !ok {
		return
	}

	card, err := h.cardService.FindOne(c.Request.Context(), cardID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, card)
}

// UpdateCard godoc
// @Summary      Card 수정
// @Tags         cards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Card ID (UUID)"
// @Param        request body dto.UpdateCardRequest true "Card 수정 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.CardResponse}
// @Router       /tasks/cards/{id} [patch]
func (h *CardHandler) UpdateCard(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	cardID, ok := uuidParam(c, "id", "card")
	if !ok {
		return
	}
	var req dto.UpdateCardRequest
	if !bindJSON(c, &req) {
		return
	}

	card, err := h.cardService.Update(c.Request.Context(), cardID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, card)
}

// DeleteCard godoc
// @Summary      Card 삭제
// @Tags         cards
// @Security     BearerAuth
// @Param        id path string true "Card ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Router       /tasks/cards/{id} [delete]
func (h *CardHandler) DeleteCard(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	cardID, ok := uuidParam(c, "id", "card")
	if !ok {
		return
	}

	if err := h.cardService.Remove(c.Request.Context(), cardID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, nil)
}

// AddAssignee godoc
// @Summary      Card 담당자 추가
// @Tags         cards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Card ID (UUID)"
// @Param        request body dto.UserRefRequest true "담당자"
// @Success      200 {object} response.SuccessResponse{data=dto.CardResponse}
// @Router       /tasks/cards/{id}/assignees [post]
func (h *CardHandler) AddAssignee(c *gin.Context) {
	h.changePeopleFromBody(c, h.cardService.Assign)
}

// RemoveAssignee godoc
// @Summary      Card 담당자 제거
// @Tags         cards
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Card ID (UUID)"
// @Param        userId path string true "User ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.CardResponse}
// @Router       /tasks/cards/{id}/assignees/{userId} [delete]
func (h *CardHandler) RemoveAssignee(c *gin.Context) {
	h.changePeopleFromPath(c, h.cardService.Unassign)
}

// AddWatcher godoc
// @Summary      Card 워처 추가
// @Tags         cards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Card ID (UUID)"
// @Param        request body dto.UserRefRequest true "워처"
// @Success      200 {object} response.SuccessResponse{data=dto.CardResponse}
// @Router       /tasks/cards/{id}/watchers [post]
func (h *CardHandler) AddWatcher(c *gin.Context) {
	h.changePeopleFromBody(c, h.cardService.AddWatcher)
}

// RemoveWatcher godoc
// @Summary      Card 워처 제거
// @Tags         cards
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Card ID (UUID)"
// @Param        userId path string true "User ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.CardResponse}
// @Router       /tasks/cards/{id}/watchers/{userId} [delete]
func (h *CardHandler) RemoveWatcher(c *gin.Context) {
	h.changePeopleFromPath(c, h.cardService.RemoveWatcher)
}

type cardPeopleFunc func(ctx context.Context, cardID, userID, actorID uuid.UUID) (*dto.CardResponse, error)

func (h *CardHandler) changePeopleFromBody(c *gin.Context, fn cardPeopleFunc) {
	actorID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	cardID, ok := uuidParam(c, "id", "card")
	if !ok {
		return
	}
	var req dto.UserRefRequest
	if !bindJSON(c, &req) {
		return
	}

	card, err := fn(c.Request.Context(), cardID, req.UserID, actorID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, card)
}

func (h *CardHandler) changePeopleFromPath(c *gin.Context, fn cardPeopleFunc) {
	actorID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	cardID, ok := uuidParam(c, "id", "card")
	if !ok {
		return
	}
	userID, ok := uuidParam(c, "userId", "user")
	if !ok {
		return
	}

	card, err := fn(c.Request.Context(), cardID, userID, actorID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, card)
}

// MoveCard godoc
// @Summary      Card 이동
// @Description  다른 List(다른 Board 포함)로 Card를 옮깁니다. 형제 Card의 position은 바뀌지 않습니다
// @Tags         cards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Card ID (UUID)"
// @Param        request body dto.MoveCardRequest true "이동 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.CardResponse}
// @Failure      404 {object} response.ErrorResponse "대상 List를 찾을 수 없음"
// @Router       /tasks/cards/{id}/move [patch]
func (h *CardHandler) MoveCard(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	cardID, ok := uuidParam(c, "id", "card")
	if !ok {
		return
	}
	var req dto.MoveCardRequest
	if !bindJSON(c, &req) {
		return
	}

	card, err := h.cardService.Move(c.Request.Context(), cardID, userID, req.ListID, *req.Position)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, card)
}

// ReorderCards godoc
// @Summary      Card 순서 변경
// @Tags         cards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "List ID (UUID)"
// @Param        request body dto.ReorderRequest true "순서 변경 요청"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CardResponse}
// @Router       /tasks/cards/{id}/reorder [post]
func (h *CardHandler) ReorderCards(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	listID, ok := uuidParam(c, "id", "list")
	if !ok {
		return
	}
	var req dto.ReorderRequest
	if !bindJSON(c, &req) {
		return
	}

	cards, err := h.cardService.Reorder(c.Request.Context(), listID, userID, req.IDs)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, cards)
}
