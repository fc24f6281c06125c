package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mshabab123/hlqh-sub001/config"
	"github.com/mshabab123/hlqh-sub001/internal/api/handler"
	"github.com/mshabab123/hlqh-sub001/internal/api/middleware"
	"github.com/mshabab123/hlqh-sub001/internal/dto"
	"github.com/mshabab123/hlqh-sub001/pkg/jwt"
	"github.com/mshabab123/hlqh-sub001/pkg/metrics"
	"github.com/mshabab123/hlqh-sub001/pkg/redis"
)

// 请求体上限，出勤与学期接口的 JSON 都很小
const maxBodyBytes = 1 << 20

// Setup 初始化并返回 Gin 路由引擎
// rdb 可为 nil：黑名单与限流随之关闭
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) (*gin.Engine, error) {
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := dto.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("注册校验器失败: %w", err)
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))
	r.Use(metrics.GinMiddleware())

	// ── 健康检查与指标 ──
	r.GET("/health", func(c *gin.Context) {
		if rdb != nil {
			if err := rdb.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusOK, gin.H{"status": "degraded", "redis": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	adminOnly := middleware.RoleAuth(jwt.RoleAdmin, jwt.RoleAdministrator)
	toggleLimit := middleware.RateLimit(rdb, cfg.Attendance.ToggleRateLimit, cfg.Attendance.ToggleRateWindow)

	// ── API v1（全部需要认证）──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		if h.Auth != nil {
			v1.POST("/auth/logout", h.Auth.Logout)
		}

		// 学期模块
		semesters := v1.Group("/semesters")
		{
			semesters.GET("", h.Semester.ListSemesters)
			semesters.GET("/current", h.Semester.GetCurrentSemester)
			semesters.GET("/:id", h.Semester.GetSemester)
			semesters.GET("/:id/working-days", h.Semester.GetWorkingDays)
			semesters.POST("", adminOnly, h.Semester.CreateSemester)
			semesters.PUT("/:id", adminOnly, h.Semester.UpdateSemester)
			semesters.PUT("/:id/activate", adminOnly, h.Semester.ActivateSemester)
			semesters.DELETE("/:id", adminOnly, h.Semester.DeleteSemester)
		}

		// 出勤模块
		att := v1.Group("/attendance")
		{
			att.GET("/semesters/:sid/classes/:cid/students/:stid", h.Attendance.GetStudentGrid)
			att.GET("/semesters/:sid/classes/:cid/summary", h.Attendance.GetClassSummary)
			att.POST("/mark", h.Attendance.Mark)
			att.POST("/toggle", toggleLimit, h.Attendance.Toggle)
			att.POST("/auto-mark-absent", adminOnly, h.Attendance.AutoMarkAbsent)
			att.POST("/auto-mark-from-grades", adminOnly, h.Attendance.AutoMarkFromGrades)
		}

		// 导出模块
		v1.GET("/export/attendance", h.Export.ExportAttendance)

		// 古兰经模块
		quran := v1.Group("/quran")
		{
			quran.GET("/surahs", h.Quran.ListSurahs)
			quran.GET("/surahs/:id", h.Quran.GetSurah)
			quran.GET("/students/:id/progress", h.Quran.GetProgress)
			quran.PUT("/students/:id/goal", h.Quran.SetGoal)
			quran.PUT("/students/:id/position", h.Quran.SetPosition)
		}

		// 日历模块
		v1.GET("/calendar/hijri", h.Calendar.GetHijri)
	}

	return r, nil
}
