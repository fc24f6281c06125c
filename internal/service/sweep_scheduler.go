package service

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SweepScheduler 按 cron 表达式在学校时区内定时执行自动补记
type SweepScheduler struct {
	cron    *cron.Cron
	svc     AttendanceService
	timeout time.Duration
	logger  *zap.Logger
}

// NewSweepScheduler 创建定时任务，spec 为标准 5 段 cron 表达式
func NewSweepScheduler(spec string, loc *time.Location, svc AttendanceService, logger *zap.Logger) (*SweepScheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := &SweepScheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		svc:     svc,
		timeout: 10 * time.Minute,
		logger:  logger,
	}
	if _, err := s.cron.AddFunc(spec, s.Run); err != nil {
		return nil, err
	}
	return s, nil
}

// Run 执行一次扫描，错误只记录日志
func (s *SweepScheduler) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	err := s.svc.SweepActiveSemester(ctx)
	switch {
	case err == nil:
		s.logger.Info("定时自动补记完成", zap.Duration("elapsed", time.Since(start)))
	case errors.Is(err, ErrNoActiveSemester):
		s.logger.Info("没有活动学期，跳过定时自动补记")
	default:
		s.logger.Error("定时自动补记失败", zap.Error(err))
	}
}

// Start 启动调度
func (s *SweepScheduler) Start() {
	s.cron.Start()
	s.logger.Info("自动补记定时任务已启动", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop 停止调度并等待正在执行的任务结束
func (s *SweepScheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
