package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
	"taskboard-api/internal/util"
)

type UploadHandler struct {
	uploadService service.UploadService
}

func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// CreatePresignedURL godoc
// @Summary      이미지 업로드용 Presigned URL 발급
// @Description  클라이언트는 uploadUrl로 직접 PUT 한 뒤 fileUrl을 리소스에 저장합니다
// @Tags         uploads
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.PresignedURLRequest true "업로드 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.PresignedURLResponse}
// @Failure      400 {object} response.ErrorResponse "지원하지 않는 파일"
// @Failure      403 {object} response.ErrorResponse
// @Router       /uploads/presigned-url [post]
func (h *UploadHandler) CreatePresignedURL(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	var req dto.PresignedURLRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.uploadService.CreatePresignedURL(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}
