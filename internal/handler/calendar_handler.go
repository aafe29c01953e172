package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
	"taskboard-api/internal/util"
)

type CalendarHandler struct {
	calendarService service.CalendarService
}

func NewCalendarHandler(calendarService service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// CreateEvent godoc
// @Summary      일정 생성
// @Description  시작/종료 시각은 현재 이후여야 하며 종료가 시작보다 늦어야 합니다
// @Tags         calendar
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateEventRequest true "일정 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.EventResponse}
// @Failure      400 {object} response.ErrorResponse
// @Router       /calendar [post]
func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateEventRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.calendarService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, event)
}

// GetWorkspaceEvents godoc
// @Summary      Workspace 일정 목록
// @Tags         calendar
// @Security     BearerAuth
// @Produce      json
// @Param        workspaceId path string true "Workspace ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.EventResponse}
// @Router       /calendar/workspace/{workspaceId} [get]
func (h *CalendarHandler) GetWorkspaceEvents(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	workspaceID, ok := uuidParam(c, "workspaceId", "workspace")
	if !ok {
		return
	}

	events, err := h.calendarService.FindByWorkspace(c.Request.Context(), workspaceID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, events)
}

// GetUpcomingEvents godoc
// @Summary      다가오는 일정
// @Tags         calendar
// @Security     BearerAuth
// @Produce      json
// @Param        workspaceId path string true "Workspace ID (UUID)"
// @Param        limit query int false "최대 개수 (기본 10)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.EventResponse}
// @Router       /calendar/workspace/{workspaceId}/upcoming [get]
func (h *CalendarHandler) GetUpcomingEvents(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	workspaceID, ok := uuidParam(c, "workspaceId", "workspace")
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit", 0)
	if !ok {
		return
	}

	events, err := h.calendarService.Upcoming(c.Request.Context(), workspaceID, userID, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, events)
}

// GetOngoingEvents godoc
// @Summary      진행 중인 일정
// @Tags         calendar
// @Security     BearerAuth
// @Produce      json
// @Param        workspaceId path string true "Workspace ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.EventResponse}
// @Router       /calendar/workspace/{workspaceId}/ongoing [get]
func (h *CalendarHandler) GetOngoingEvents(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	workspaceID, ok := uuidParam(c, "workspaceId", "workspace")
	if !ok {
		return
	}

	events, err := h.calendarService.Ongoing(c.Request.Context(), workspaceID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, events)
}

// GetMonthEvents godoc
// @Summary      월별 일정
// @Tags         calendar
// @Security     BearerAuth
// @Produce      json
// @Param        workspaceId path string true "Workspace ID (UUID)"
// @Param        year query int true "연도"
// @Param        month query int true "월 (1-12)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.EventResponse}
// @Failure      400 {object} response.ErrorResponse
// @Router       /calendar/workspace/{workspaceId}/month [get]
func (h *CalendarHandler) GetMonthEvents(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	workspaceID, ok := uuidParam(c, "workspaceId", "workspace")
	if !ok {
		return
	}
	year, ok := intQuery(c, "year", 0)
	if !ok {
		return
	}
	month, ok := intQuery(c, "month", 0)
	if !ok {
		return
	}

	events, err := h.calendarService.FindByWorkspaceAndMonth(c.Request.Context(), workspaceID, userID, year, month)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, events)
}

// GetRangeEvents godoc
// @Summary      기간별 일정
// @Description  from, to는 RFC3339 형식입니다
// @Tags         calendar
// @Security     BearerAuth
// @Produce      json
// @Param        workspaceId path string true "Workspace ID (UUID)"
// @Param        from query string true "시작 (RFC3339)"
// @Param        to query string true "끝 (RFC3339)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.EventResponse}
// @Failure      400 {object} response.ErrorResponse
// @Router       /calendar/workspace/{workspaceId}/range [get]
func (h *CalendarHandler) GetRangeEvents(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	workspaceID, ok := uuidParam(c, "workspaceId", "workspace")
	if !ok {
		return
	}
	from, ok := timeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := timeQuery(c, "to")
	if !ok {
		return
	}

	events, err := h.calendarService.FindByWorkspaceAndDateRange(c.Request.Context(), workspaceID, userID, from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, events)
}

func timeQuery(c *gin.Context, name string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, c.Query(name))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid "+name+" parameter, expected RFC3339")
		return time.Time{}, false
	}
	return t, true
}

// GetEvent godoc
// @Summary      일정 조회
// @Tags         calendar
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Event ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.EventResponse}
// @Router       /calendar/{id} [get]
func (h *CalendarHandler) GetEvent(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	eventID, ok := uuidParam(c, "id", "event")
	if !ok {
		return
	}

	event, err := h.calendarService.FindOne(c.Request.Context(), eventID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary      일정 수정
// @Description  작성자 또는 Workspace 관리자만 수정할 수 있습니다. 상태는 날짜로부터 다시 계산됩니다
// @Tags         calendar
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Event ID (UUID)"
// @Param        request body dto.UpdateEventRequest true "일정 수정 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.EventResponse}
// @Failure      403 {object} response.ErrorResponse
// @Router       /calendar/{id} [patch]
func (h *CalendarHandler) UpdateEvent(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	eventID, ok := uuidParam(c, "id", "event")
	if !ok {
		return
	}
	var req dto.UpdateEventRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.calendarService.Update(c.Request.Context(), eventID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary      일정 삭제
// @Tags         calendar
// @Security     BearerAuth
// @Param        id path string true "Event ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Router       /calendar/{id} [delete]
func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	eventID, ok := uuidParam(c, "id", "event")
	if !ok {
		return
	}

	if err := h.calendarService.Remove(c.Request.Context(), eventID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, nil)
}

// CancelEvent godoc
// @Summary      일정 취소
// @Tags         calendar
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Event ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.EventResponse}
// @Router       /calendar/{id}/cancel [patch]
func (h *CalendarHandler) CancelEvent(c *gin.Context) {
	userID, ok := util.GetUserID(c)
	if !ok {
		return
	}
	eventID, ok := uuidParam(c, "id", "event")
	if !ok {
		return
	}

	event, err := h.calendarService.Cancel(c.Request.Context(), eventID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, event)
}
