package service

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mshabab123/hlqh-sub001/config"
	"github.com/mshabab123/hlqh-sub001/internal/core/calendar"
	"github.com/mshabab123/hlqh-sub001/internal/core/hijri"
	"github.com/mshabab123/hlqh-sub001/internal/dto"
	"github.com/mshabab123/hlqh-sub001/pkg/metrics"
)

// ── 日历模块业务错误 ──

var ErrInvalidDate = errors.New("日期格式无效，应为 YYYY-MM-DD")

// CalendarService 学校时区下的"今天"与日期展示
type CalendarService interface {
	// Today 学校时区下的今天（UTC 零点表示）
	Today() time.Time
	// Location 学校时区
	Location() *time.Location
	// Hijri 日期展示；date 为空时使用今天
	Hijri(date string) (*dto.HijriResponse, error)
	// Label 网格单元格使用的星期名与简短回历
	Label(t time.Time) (dayName, hijriShort string)
}

type calendarService struct {
	loc       *time.Location
	now       func() time.Time
	formatter *hijri.Formatter
	logger    *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(cfg *config.CalendarConfig, deps Deps, logger *zap.Logger) (CalendarService, error) {
	loc := deps.Location
	if loc == nil {
		var err error
		if loc, err = cfg.Location(); err != nil {
			return nil, err
		}
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	conv := deps.Hijri
	if conv == nil {
		var err error
		conv, err = hijri.New(cfg.HijriMode, func(t time.Time, err error) {
			metrics.HijriFallbacks.Inc()
			logger.Warn("回历换算降级为近似算法",
				zap.String("date", calendar.Key(t)),
				zap.Error(err),
			)
		})
		if err != nil {
			return nil, err
		}
	}

	return &calendarService{
		loc:       loc,
		now:       now,
		formatter: hijri.NewFormatter(conv),
		logger:    logger,
	}, nil
}

func (s *calendarService) Today() time.Time {
	return calendar.DateOf(s.now(), s.loc)
}

func (s *calendarService) Location() *time.Location {
	return s.loc
}

func (s *calendarService) Hijri(date string) (*dto.HijriResponse, error) {
	day := s.Today()
	if date != "" {
		d, err := calendar.ParseDate(date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		day = d
	}

	return &dto.HijriResponse{
		Date:      calendar.Key(day),
		Hijri:     s.formatter.Convert(day),
		Formatted: s.formatter.Format(day, hijri.FormatOptions{}),
		Short:     s.formatter.Short(day),
	}, nil
}

func (s *calendarService) Label(t time.Time) (string, string) {
	return hijri.DayName(t), s.formatter.Short(t)
}
