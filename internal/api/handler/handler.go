package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mshabab123/hlqh-sub001/internal/service"
	"github.com/mshabab123/hlqh-sub001/pkg/response"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Semester   *SemesterHandler
	Attendance *AttendanceHandler
	Quran      *QuranHandler
	Calendar   *CalendarHandler
	Export     *ExportHandler
	Auth       *AuthHandler // 未配置 Redis 时为 nil，不注册注销接口
}

// NewHandler 创建 Handler 聚合
// revoker 为 nil 时不提供注销
func NewHandler(svc *service.Service, revoker TokenRevoker) *Handler {
	h := &Handler{
		Semester:   NewSemesterHandler(svc.Semester),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Quran:      NewQuranHandler(svc.Quran),
		Calendar:   NewCalendarHandler(svc.Calendar),
		Export:     NewExportHandler(svc.Export),
	}
	if revoker != nil {
		h.Auth = NewAuthHandler(revoker)
	}
	return h
}

// bindError 参数绑定或校验失败；请求体超限返回 413
func bindError(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", err.Error())
}
