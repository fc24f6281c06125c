package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mshabab123/hlqh-sub001/internal/core/attendance"
	"github.com/mshabab123/hlqh-sub001/internal/dto"
	"github.com/mshabab123/hlqh-sub001/internal/service"
	"github.com/mshabab123/hlqh-sub001/pkg/response"
)

// AttendanceHandler 出勤模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// GetStudentGrid 学生整学期出勤网格
// GET /api/v1/attendance/semesters/:sid/classes/:cid/students/:stid
func (h *AttendanceHandler) GetStudentGrid(c *gin.Context) {
	grid, err := h.attendanceSvc.StudentGrid(c.Request.Context(), c.Param("sid"), c.Param("cid"), c.Param("stid"))
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, grid)
}

// GetClassSummary 班级出勤汇总
// GET /api/v1/attendance/semesters/:sid/classes/:cid/summary
func (h *AttendanceHandler) GetClassSummary(c *gin.Context) {
	summary, err := h.attendanceSvc.ClassSummary(c.Request.Context(), c.Param("sid"), c.Param("cid"))
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, summary)
}

// Mark 显式记录出勤
// POST /api/v1/attendance/mark
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	record, err := h.attendanceSvc.Mark(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, record)
}

// Toggle 切换某天出勤
// POST /api/v1/attendance/toggle
func (h *AttendanceHandler) Toggle(c *gin.Context) {
	var req dto.ToggleAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.Toggle(c.Request.Context(), &req, callerID)
	if err != nil {
		// 保存失败：返回恢复后的原结论，客户端据此回滚显示
		if errors.Is(err, attendance.ErrTogglePersist) && result != nil {
			response.ErrorWithData(c, http.StatusServiceUnavailable, 15005, "保存出勤失败，已恢复原状态", result)
			return
		}
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// AutoMarkAbsent 自动补记缺勤
// POST /api/v1/attendance/auto-mark-absent
func (h *AttendanceHandler) AutoMarkAbsent(c *gin.Context) {
	var req dto.AutoMarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.attendanceSvc.AutoMarkAbsent(c.Request.Context(), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// AutoMarkFromGrades 按成绩补记出勤
// POST /api/v1/attendance/auto-mark-from-grades
func (h *AttendanceHandler) AutoMarkFromGrades(c *gin.Context) {
	var req dto.AutoMarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.attendanceSvc.AutoMarkFromGrades(c.Request.Context(), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// handleAttendanceError 统一处理出勤模块业务错误
func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSemesterNotFound):
		response.NotFound(c, 14001, "学期不存在")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10001, "日期格式无效")
	case errors.Is(err, attendance.ErrFutureDate):
		response.BadRequest(c, 15001, "不能修改未来日期的出勤")
	case errors.Is(err, service.ErrDateOutsideSemester):
		response.BadRequest(c, 15002, "日期不在学期范围内")
	case errors.Is(err, attendance.ErrDayNotInGrid):
		response.BadRequest(c, 15003, "该日期不是教学日")
	case errors.Is(err, attendance.ErrToggleInFlight):
		response.Conflict(c, 15004, "该日期的出勤正在更新中，请稍候")
	case errors.Is(err, service.ErrAttendanceConflict):
		response.Conflict(c, 15006, "出勤记录已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}
