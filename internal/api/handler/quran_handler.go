package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mshabab123/hlqh-sub001/internal/dto"
	"github.com/mshabab123/hlqh-sub001/internal/service"
	"github.com/mshabab123/hlqh-sub001/pkg/response"
)

// QuranHandler 背诵模块 HTTP 处理器
type QuranHandler struct {
	quranSvc service.QuranService
}

// NewQuranHandler 创建 QuranHandler
func NewQuranHandler(quranSvc service.QuranService) *QuranHandler {
	return &QuranHandler{quranSvc: quranSvc}
}

// ListSurahs 章节列表
// GET /api/v1/quran/surahs
func (h *QuranHandler) ListSurahs(c *gin.Context) {
	response.OK(c, dto.NewList(h.quranSvc.ListSurahs()))
}

// GetSurah 按章节号或名称查询
// GET /api/v1/quran/surahs/:id
func (h *QuranHandler) GetSurah(c *gin.Context) {
	surah, err := h.quranSvc.GetSurah(c.Param("id"))
	if err != nil {
		h.handleQuranError(c, err)
		return
	}

	response.OK(c, surah)
}

// GetProgress 学生背诵进度
// GET /api/v1/quran/students/:id/progress?class_id=
func (h *QuranHandler) GetProgress(c *gin.Context) {
	progress, err := h.quranSvc.GetProgress(c.Request.Context(), c.Param("id"), c.Query("class_id"))
	if err != nil {
		h.handleQuranError(c, err)
		return
	}

	response.OK(c, progress)
}

// SetGoal 设置背诵目标
// PUT /api/v1/quran/students/:id/goal
func (h *QuranHandler) SetGoal(c *gin.Context) {
	var req dto.SetGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	progress, err := h.quranSvc.SetGoal(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleQuranError(c, err)
		return
	}

	response.OK(c, progress)
}

// SetPosition 更新背诵位置
// PUT /api/v1/quran/students/:id/position
func (h *QuranHandler) SetPosition(c *gin.Context) {
	var req dto.SetPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	progress, err := h.quranSvc.SetPosition(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleQuranError(c, err)
		return
	}

	response.OK(c, progress)
}

func (h *QuranHandler) handleQuranError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSurahNotFound):
		response.NotFound(c, 17001, "章节不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 17002, "学生不存在")
	case errors.Is(err, service.ErrAyahOutOfRange):
		response.BadRequest(c, 17003, "节号超出该章范围")
	default:
		response.InternalError(c)
	}
}
