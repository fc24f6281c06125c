package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/mshabab123/hlqh-sub001/config"
	"github.com/mshabab123/hlqh-sub001/internal/core/attendance"
	"github.com/mshabab123/hlqh-sub001/internal/core/hijri"
	"github.com/mshabab123/hlqh-sub001/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Calendar   CalendarService
	Semester   SemesterService
	Attendance AttendanceService
	Quran      QuranService
	Export     ExportService
}

// Deps 业务层的外部依赖
type Deps struct {
	Locker   attendance.Locker // 必填：Redis 或进程内实现
	Hijri    hijri.Converter   // 为 nil 时按 calendar.hijri_mode 创建
	Location *time.Location    // 为 nil 时按 calendar.timezone 解析
	Now      func() time.Time  // 为 nil 时使用 time.Now
}

// NewService 创建 Service 聚合
func NewService(cfg *config.Config, repo *repository.Repository, deps Deps, logger *zap.Logger) (*Service, error) {
	cal, err := NewCalendarService(&cfg.Calendar, deps, logger)
	if err != nil {
		return nil, err
	}
	return &Service{
		Calendar:   cal,
		Semester:   NewSemesterService(repo, cal, cfg.Calendar.DefaultWeekendDays, logger),
		Attendance: NewAttendanceService(repo, cal, deps.Locker, cfg.Attendance.ToggleLockTTL, logger),
		Quran:      NewQuranService(repo, logger),
		Export:     NewExportService(repo, cal, logger),
	}, nil
}
