package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mshabab123/hlqh-sub001/internal/core/calendar"
	"github.com/mshabab123/hlqh-sub001/internal/dto"
	"github.com/mshabab123/hlqh-sub001/internal/model"
	"github.com/mshabab123/hlqh-sub001/internal/repository"
	pkgerrors "github.com/mshabab123/hlqh-sub001/pkg/errors"
)

// ── 学期模块业务错误 ──

var (
	ErrSemesterNotFound     = errors.New("学期不存在")
	ErrSemesterDateInvalid  = errors.New("学期结束日期不能早于开始日期")
	ErrSemesterVacationDate = errors.New("假期日期格式无效")
	ErrSemesterConflict     = errors.New("学期已被其他操作修改")
)

// SemesterService 学期业务接口
type SemesterService interface {
	Create(ctx context.Context, req *dto.CreateSemesterRequest, callerID string) (*dto.SemesterResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SemesterResponse, error)
	GetCurrent(ctx context.Context) (*dto.SemesterResponse, error)
	List(ctx context.Context) ([]dto.SemesterResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSemesterRequest, callerID string) (*dto.SemesterResponse, error)
	Activate(ctx context.Context, id string, callerID string) error
	Delete(ctx context.Context, id string, callerID string) error
	// WorkingDays 学期内每一天及其周末/假期标记
	WorkingDays(ctx context.Context, id string) (*dto.WorkingDaysResponse, error)
}

type semesterService struct {
	repo           *repository.Repository
	cal            CalendarService
	defaultWeekend []int
	logger         *zap.Logger
}

// NewSemesterService 创建 SemesterService 实例
func NewSemesterService(repo *repository.Repository, cal CalendarService, defaultWeekend []int, logger *zap.Logger) SemesterService {
	return &semesterService{repo: repo, cal: cal, defaultWeekend: defaultWeekend, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *semesterService) Create(ctx context.Context, req *dto.CreateSemesterRequest, callerID string) (*dto.SemesterResponse, error) {
	startDate, endDate, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	vacations, err := normalizeVacations(req.VacationDays)
	if err != nil {
		return nil, err
	}

	weekend := req.WeekendDays
	if weekend == nil {
		weekend = s.defaultWeekend
	}

	semester := &model.Semester{
		SchoolID:     req.SchoolID,
		Name:         req.Name,
		StartDate:    startDate,
		EndDate:      endDate,
		WeekendDays:  normalizeWeekend(weekend),
		VacationDays: vacations,
		IsActive:     false,
	}
	semester.CreatedBy = &callerID
	semester.UpdatedBy = &callerID

	if err := s.repo.Semester.Create(ctx, semester); err != nil {
		s.logger.Error("创建学期失败", zap.Error(err))
		return nil, err
	}

	return toSemesterResponse(semester), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *semesterService) GetByID(ctx context.Context, id string) (*dto.SemesterResponse, error) {
	semester, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSemesterResponse(semester), nil
}

// ────────────────────── GetCurrent ──────────────────────

func (s *semesterService) GetCurrent(ctx context.Context) (*dto.SemesterResponse, error) {
	semester, err := s.repo.Semester.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("查询当前学期失败", zap.Error(err))
		return nil, err
	}

	return toSemesterResponse(semester), nil
}

// ────────────────────── List ──────────────────────

func (s *semesterService) List(ctx context.Context) ([]dto.SemesterResponse, error) {
	semesters, err := s.repo.Semester.List(ctx)
	if err != nil {
		s.logger.Error("列出学期失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SemesterResponse, 0, len(semesters))
	for i := range semesters {
		result = append(result, *toSemesterResponse(&semesters[i]))
	}

	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *semesterService) Update(ctx context.Context, id string, req *dto.UpdateSemesterRequest, callerID string) (*dto.SemesterResponse, error) {
	semester, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Version != nil && *req.Version != semester.Version {
		return nil, ErrSemesterConflict
	}

	if req.Name != nil {
		semester.Name = *req.Name
	}
	if req.StartDate != nil {
		d, err := calendar.ParseDate(*req.StartDate)
		if err != nil {
			return nil, ErrSemesterDateInvalid
		}
		semester.StartDate = d
	}
	if req.EndDate != nil {
		d, err := calendar.ParseDate(*req.EndDate)
		if err != nil {
			return nil, ErrSemesterDateInvalid
		}
		semester.EndDate = d
	}
	if semester.EndDate.Before(semester.StartDate) {
		return nil, ErrSemesterDateInvalid
	}
	if req.WeekendDays != nil {
		semester.WeekendDays = normalizeWeekend(req.WeekendDays)
	}
	if req.VacationDays != nil {
		vacations, err := normalizeVacations(req.VacationDays)
		if err != nil {
			return nil, err
		}
		semester.VacationDays = vacations
	}

	semester.UpdatedBy = &callerID

	if err := s.repo.Semester.Update(ctx, semester); err != nil {
		if pkgerrors.IsOptimisticLock(err) {
			return nil, ErrSemesterConflict
		}
		s.logger.Error("更新学期失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSemesterResponse(semester), nil
}

// ────────────────────── Activate ──────────────────────

func (s *semesterService) Activate(ctx context.Context, id string, callerID string) error {
	semester, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	// ClearActive + Update 在同一事务内
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	rollback := func() {
		if tx != nil {
			tx.Rollback()
		}
	}
	defer func() {
		if r := recover(); r != nil {
			rollback()
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Semester.ClearActive(ctx); err != nil {
		rollback()
		s.logger.Error("清除活动学期失败", zap.Error(err))
		return err
	}

	// ClearActive 可能递增了目标学期的版本号，重新读取
	fresh, err := txRepo.Semester.GetByID(ctx, semester.SemesterID)
	if err != nil {
		rollback()
		s.logger.Error("查询学期失败", zap.String("id", id), zap.Error(err))
		return err
	}
	fresh.IsActive = true
	fresh.UpdatedBy = &callerID

	if err := txRepo.Semester.Update(ctx, fresh); err != nil {
		rollback()
		if pkgerrors.IsOptimisticLock(err) {
			return ErrSemesterConflict
		}
		s.logger.Error("激活学期失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	s.logger.Info("学期已激活", zap.String("id", id), zap.String("by", callerID))
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *semesterService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Semester.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除学期失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── WorkingDays ──────────────────────

func (s *semesterService) WorkingDays(ctx context.Context, id string) (*dto.WorkingDaysResponse, error) {
	semester, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	days := calendar.Days(semester.Calendar())
	resp := &dto.WorkingDaysResponse{
		SemesterID: semester.SemesterID,
		Days:       make([]dto.WorkingDayResponse, 0, len(days)),
	}
	for _, d := range days {
		dayName, hijriShort := s.cal.Label(d.Date)
		resp.Days = append(resp.Days, dto.WorkingDayResponse{
			Date:       calendar.Key(d.Date),
			DayName:    dayName,
			Hijri:      hijriShort,
			IsWeekend:  d.IsWeekend,
			IsVacation: d.IsVacation,
			IsWorking:  d.IsWorking(),
		})
		if d.IsWorking() {
			resp.WorkingCount++
		}
	}
	return resp, nil
}

// ── 内部辅助方法 ──

func (s *semesterService) load(ctx context.Context, id string) (*model.Semester, error) {
	semester, err := s.repo.Semester.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return semester, nil
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := calendar.ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, ErrSemesterDateInvalid
	}
	endDate, err := calendar.ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, ErrSemesterDateInvalid
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, ErrSemesterDateInvalid
	}
	return startDate, endDate, nil
}

// normalizeWeekend 去重并排序
func normalizeWeekend(days []int) model.IntArray {
	seen := make(map[int]bool, len(days))
	out := make(model.IntArray, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// normalizeVacations 校验、去重并排序
func normalizeVacations(days []string) ([]string, error) {
	seen := make(map[string]bool, len(days))
	out := make([]string, 0, len(days))
	for _, d := range days {
		t, err := calendar.ParseDate(d)
		if err != nil {
			return nil, ErrSemesterVacationDate
		}
		key := calendar.Key(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	sort.Strings(out)
	return out, nil
}

func toSemesterResponse(semester *model.Semester) *dto.SemesterResponse {
	resp := &dto.SemesterResponse{
		ID:           semester.SemesterID,
		Name:         semester.Name,
		StartDate:    calendar.Key(semester.StartDate),
		EndDate:      calendar.Key(semester.EndDate),
		WeekendDays:  []int(semester.WeekendDays),
		VacationDays: []string(semester.VacationDays),
		IsActive:     semester.IsActive,
		Version:      semester.Version,
		CreatedAt:    semester.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    semester.UpdatedAt.Format(time.RFC3339),
	}
	if semester.SchoolID != nil {
		resp.SchoolID = *semester.SchoolID
	}
	if resp.WeekendDays == nil {
		resp.WeekendDays = []int{}
	}
	if resp.VacationDays == nil {
		resp.VacationDays = []string{}
	}
	return resp
}
