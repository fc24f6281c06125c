package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mshabab123/hlqh-sub001/internal/service"
	"github.com/mshabab123/hlqh-sub001/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportAttendance 导出班级出勤表
// GET /api/v1/export/attendance?semester_id=xxx&class_id=yyy
func (h *ExportHandler) ExportAttendance(c *gin.Context) {
	semesterID := c.Query("semester_id")
	classID := c.Query("class_id")
	if semesterID == "" || classID == "" {
		response.BadRequest(c, 10001, "semester_id 与 class_id 不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportAttendance(c.Request.Context(), semesterID, classID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.Attachment(c, filename, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSemesterNotFound):
		response.NotFound(c, 14001, "学期不存在")
	case errors.Is(err, service.ErrExportNoStudents):
		response.NotFound(c, 16101, "该班级暂无在读学生")
	default:
		response.InternalError(c)
	}
}
