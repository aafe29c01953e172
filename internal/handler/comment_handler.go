package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
	"taskboard-api/internal/util"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateComment godoc
// @Summary      댓글 작성
// @Tags         comments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCommentRequest true "댓글 작성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.CommentResponse}
// @Failure      404 {object} response.ErrorResponse "Card를 찾을 수 없음"
// @Router       /tasks/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, comment)
}

// GetCommentsByCard godoc
// @Summary      Card의 댓글 목록 (오래된 순)
// @Tags         comments
// @Security     BearerAuth
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CommentResponse}
// @Router       /tasks/comments/card/{cardId} [get]
func (h *CommentHandler) GetCommentsByCard(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	cardID, ok := uuidParam(c, "cardId", "card")
	if !ok {
		return
	}

	comments, err := h.commentService.FindByCard(c.Request.Context(), cardID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, comments)
}

// GetComment godoc
// @Summary      댓글 조회
// @Tags         comments
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Comment ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.CommentResponse}
// @Router       /tasks/comments/{id} [get]
func (h *CommentHandler) GetComment(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	commentID, ok := uuidParam(c, "id", "comment")
	if !ok {
		return
	}

	comment, err := h.commentService.FindOne(c.Request.Context(), commentID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, comment)
}

// UpdateComment godoc
// @Summary      댓글 수정 (작성자만)
// @Tags         comments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Comment ID (UUID)"
// @Param        request body dto.UpdateCommentRequest true "댓글 수정 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.CommentResponse}
// @Failure      403 {object} response.ErrorResponse "작성자가 아님"
// @Router       /tasks/comments/{id} [patch]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	commentID, ok := uuidParam(c, "id", "comment")
	if !ok {
		return
	}
	var req dto.UpdateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), commentID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary      댓글 삭제 (작성자만)
// @Tags         comments
// @Security     BearerAuth
// @Param        id path string true "Comment ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      403 {object} response.ErrorResponse "작성자가 아님"
// @Router       /tasks/comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	commentID, ok := uuidParam(c, "id", "comment")
	if !ok {
		return
	}

	if err := h.commentService.Remove(c.Request.Context(), commentID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, nil)
}
