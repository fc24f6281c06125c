package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mshabab123/hlqh-sub001/internal/dto"
	"github.com/mshabab123/hlqh-sub001/internal/service"
	"github.com/mshabab123/hlqh-sub001/pkg/response"
)

// CalendarHandler 日期展示 HTTP 处理器
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// GetHijri 公历日期的回历展示
// GET /api/v1/calendar/hijri?date=YYYY-MM-DD
func (h *CalendarHandler) GetHijri(c *gin.Context) {
	var q dto.HijriQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "日期格式无效，应为 YYYY-MM-DD")
		return
	}

	result, err := h.calendarSvc.Hijri(q.Date)
	if err != nil {
		response.BadRequest(c, 10001, "日期格式无效，应为 YYYY-MM-DD")
		return
	}

	response.OK(c, result)
}
