package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/mshabab123/hlqh-sub001/internal/core/attendance"
	"github.com/mshabab123/hlqh-sub001/internal/core/calendar"
	"github.com/mshabab123/hlqh-sub001/internal/dto"
	"github.com/mshabab123/hlqh-sub001/internal/model"
	"github.com/mshabab123/hlqh-sub001/internal/repository"
	pkgerrors "github.com/mshabab123/hlqh-sub001/pkg/errors"
	"github.com/mshabab123/hlqh-sub001/pkg/metrics"
)

// ── 出勤模块业务错误 ──

var (
	ErrDateOutsideSemester = errors.New("日期不在学期范围内")
	ErrAttendanceConflict  = errors.New("出勤记录已被其他操作修改，请刷新后重试")
	ErrNoActiveSemester    = errors.New("当前没有活动学期")
)

// 自动缺勤记录的备注
const autoAbsentNote = "تم وضع الغياب تلقائياً - لا توجد درجات أو حضور"

// AttendanceService 出勤业务接口
type AttendanceService interface {
	// StudentGrid 单个学生整学期的出勤网格与统计
	StudentGrid(ctx context.Context, semesterID, classID, studentID string) (*dto.StudentGridResponse, error)
	// Toggle 切换某天的出勤状态；保存失败时返回恢复后的原结论与错误
	Toggle(ctx context.Context, req *dto.ToggleAttendanceRequest, callerID string) (*dto.ToggleResponse, error)
	// Mark 显式记录出勤（upsert）
	Mark(ctx context.Context, req *dto.MarkAttendanceRequest, callerID string) (*dto.AttendanceRecordResponse, error)
	// AutoMarkAbsent 为没有记录也没有成绩的学生日补记缺勤
	AutoMarkAbsent(ctx context.Context, req *dto.AutoMarkRequest) (*dto.AutoMarkResponse, error)
	// AutoMarkFromGrades 为有成绩的学生日补记出勤
	AutoMarkFromGrades(ctx context.Context, req *dto.AutoMarkRequest) (*dto.AutoMarkResponse, error)
	// ClassSummary 班级内每个学生的出勤统计
	ClassSummary(ctx context.Context, semesterID, classID string) (*dto.ClassSummaryResponse, error)
	// SweepActiveSemester 对活动学期的全部班级执行当天的自动补记
	SweepActiveSemester(ctx context.Context) error
}

type attendanceService struct {
	repo    *repository.Repository
	cal     CalendarService
	locker  attendance.Locker
	lockTTL time.Duration
	logger  *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, cal CalendarService, locker attendance.Locker, lockTTL time.Duration, logger *zap.Logger) AttendanceService {
	if locker == nil {
		locker = attendance.NewLocalLocker()
	}
	return &attendanceService{repo: repo, cal: cal, locker: locker, lockTTL: lockTTL, logger: logger}
}

// ────────────────────── StudentGrid ──────────────────────

func (s *attendanceService) StudentGrid(ctx context.Context, semesterID, classID, studentID string) (*dto.StudentGridResponse, error) {
	semester, err := s.loadSemester(ctx, semesterID)
	if err != nil {
		return nil, err
	}

	today := s.cal.Today()
	data, err := s.loadStudent(ctx, semester, classID, studentID)
	if err != nil {
		return nil, err
	}
	verdicts := attendance.ResolveSemester(semester.Calendar(), studentID, data.core(), data.gradeTimes, today)

	resp := &dto.StudentGridResponse{
		SemesterID: semesterID,
		ClassID:    classID,
		StudentID:  studentID,
		Today:      calendar.Key(today),
		Days:       make([]dto.VerdictResponse, 0, len(verdicts)),
		Summary:    attendance.Summarize(verdicts),
	}
	for _, v := range verdicts {
		resp.Days = append(resp.Days, s.toVerdictResponse(v))
	}
	return resp, nil
}

// ────────────────────── Toggle ──────────────────────

func (s *attendanceService) Toggle(ctx context.Context, req *dto.ToggleAttendanceRequest, callerID string) (*dto.ToggleResponse, error) {
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	today := s.cal.Today()
	if date.After(today) {
		metrics.AttendanceToggles.WithLabelValues(metrics.ToggleRejected).Inc()
		return nil, attendance.ErrFutureDate
	}

	semester, err := s.loadSemester(ctx, req.SemesterID)
	if err != nil {
		return nil, err
	}

	key := attendance.LockKey(req.StudentID, date)
	token, locked, err := s.locker.TryLock(ctx, key, s.lockTTL)
	if err != nil {
		s.logger.Error("获取出勤切换锁失败", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	if !locked {
		metrics.AttendanceToggles.WithLabelValues(metrics.ToggleRejected).Inc()
		return nil, attendance.ErrToggleInFlight
	}
	defer func() {
		if err := s.locker.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
			s.logger.Warn("释放出勤切换锁失败", zap.String("key", key), zap.Error(err))
		}
	}()

	data, err := s.loadStudent(ctx, semester, req.ClassID, req.StudentID)
	if err != nil {
		return nil, err
	}
	grid := attendance.NewGrid(req.StudentID,
		attendance.ResolveSemester(semester.Calendar(), req.StudentID, data.core(), data.gradeTimes, today),
		today)

	var stored model.AttendanceRecord
	persist := func(ctx context.Context, v attendance.Verdict) error {
		existing := data.recordOn(v.Date)
		if existing == nil {
			stored = model.AttendanceRecord{
				SemesterID:     req.SemesterID,
				ClassID:        req.ClassID,
				StudentID:      req.StudentID,
				AttendanceDate: v.Date,
				IsPresent:      v.IsPresent,
				IsExplicit:     true,
			}
			stored.CreatedBy = &callerID
			stored.UpdatedBy = &callerID
			return s.repo.Attendance.Create(ctx, &stored)
		}
		stored = *existing
		stored.IsPresent = v.IsPresent
		stored.IsExplicit = true
		stored.UpdatedBy = &callerID
		return s.repo.Attendance.Update(ctx, &stored)
	}

	verdict, err := grid.Toggle(ctx, date, persist)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrTogglePersist):
			metrics.AttendanceToggles.WithLabelValues(metrics.ToggleRolledBack).Inc()
			s.logger.Error("保存出勤切换失败，已回滚",
				zap.String("student_id", req.StudentID),
				zap.String("date", req.Date),
				zap.Error(err),
			)
			return &dto.ToggleResponse{
				Verdict: s.toVerdictResponse(verdict),
				Summary: attendance.Summarize(grid.Verdicts()),
			}, err
		default:
			metrics.AttendanceToggles.WithLabelValues(metrics.ToggleRejected).Inc()
			return nil, err
		}
	}

	// 返回与重新加载一致的结论：成绩标记保留时来源为 grade-based
	settled := attendance.Resolve(date, req.StudentID, []attendance.Record{stored.Core()}, nil, today)
	if err := grid.Settle(settled); err != nil {
		return nil, err
	}
	verdict, _ = grid.Verdict(date)

	metrics.AttendanceToggles.WithLabelValues(metrics.ToggleCommitted).Inc()
	return &dto.ToggleResponse{
		Verdict: s.toVerdictResponse(verdict),
		Summary: attendance.Summarize(grid.Verdicts()),
	}, nil
}

// ────────────────────── Mark ──────────────────────

func (s *attendanceService) Mark(ctx context.Context, req *dto.MarkAttendanceRequest, callerID string) (*dto.AttendanceRecordResponse, error) {
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if date.After(s.cal.Today()) {
		return nil, attendance.ErrFutureDate
	}

	semester, err := s.loadSemester(ctx, req.SemesterID)
	if err != nil {
		return nil, err
	}
	if !semester.Calendar().Contains(date) {
		return nil, ErrDateOutsideSemester
	}

	existing, err := s.repo.Attendance.Get(ctx, req.SemesterID, req.ClassID, req.StudentID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询出勤记录失败", zap.String("student_id", req.StudentID), zap.Error(err))
		return nil, err
	}

	if existing == nil {
		record := &model.AttendanceRecord{
			SemesterID:     req.SemesterID,
			ClassID:        req.ClassID,
			StudentID:      req.StudentID,
			AttendanceDate: date,
			IsPresent:      *req.IsPresent,
			IsExplicit:     true,
			Notes:          req.Notes,
		}
		record.CreatedBy = &callerID
		record.UpdatedBy = &callerID
		if err := s.repo.Attendance.Create(ctx, record); err != nil {
			s.logger.Error("创建出勤记录失败", zap.String("student_id", req.StudentID), zap.Error(err))
			return nil, err
		}
		return toRecordResponse(record), nil
	}

	if req.Version != nil && *req.Version != existing.Version {
		return nil, ErrAttendanceConflict
	}
	existing.IsPresent = *req.IsPresent
	existing.IsExplicit = true
	if req.Notes != nil {
		existing.Notes = req.Notes
	}
	existing.UpdatedBy = &callerID

	if err := s.repo.Attendance.Update(ctx, existing); err != nil {
		if pkgerrors.IsOptimisticLock(err) {
			return nil, ErrAttendanceConflict
		}
		s.logger.Error("更新出勤记录失败", zap.String("record_id", existing.RecordID), zap.Error(err))
		return nil, err
	}
	return toRecordResponse(existing), nil
}

// ────────────────────── AutoMarkAbsent ──────────────────────

func (s *attendanceService) AutoMarkAbsent(ctx context.Context, req *dto.AutoMarkRequest) (*dto.AutoMarkResponse, error) {
	semester, err := s.loadSemester(ctx, req.SemesterID)
	if err != nil {
		return nil, err
	}
	days, err := s.sweepDays(semester, req.Date)
	if err != nil {
		return nil, err
	}

	students, err := s.repo.Student.ListByClass(ctx, req.ClassID)
	if err != nil {
		s.logger.Error("查询班级学生失败", zap.String("class_id", req.ClassID), zap.Error(err))
		return nil, err
	}
	resp := &dto.AutoMarkResponse{Days: len(days), Students: len(students)}
	if len(days) == 0 || len(students) == 0 {
		return resp, nil
	}

	data, err := s.loadClass(ctx, semester, req.ClassID, days[0], days[len(days)-1])
	if err != nil {
		return nil, err
	}

	note := autoAbsentNote
	var missing []model.AttendanceRecord
	for _, st := range students {
		for _, d := range days {
			k := cellKey(st.StudentID, d)
			if data.records[k] != nil || data.graded[k] {
				continue
			}
			missing = append(missing, model.AttendanceRecord{
				SemesterID:     req.SemesterID,
				ClassID:        req.ClassID,
				StudentID:      st.StudentID,
				AttendanceDate: d,
				IsPresent:      false,
				IsExplicit:     false,
				HasGrade:       false,
				Notes:          &note,
			})
		}
	}

	inserted, err := s.repo.Attendance.CreateMissing(ctx, missing)
	if err != nil {
		s.logger.Error("自动补记缺勤失败", zap.String("class_id", req.ClassID), zap.Error(err))
		return nil, err
	}
	resp.Inserted = int(inserted)
	metrics.AutoMarked.WithLabelValues("absent").Add(float64(inserted))

	s.logger.Info("自动补记缺勤完成",
		zap.String("semester_id", req.SemesterID),
		zap.String("class_id", req.ClassID),
		zap.Int("days", resp.Days),
		zap.Int("inserted", resp.Inserted),
	)
	return resp, nil
}

// ────────────────────── AutoMarkFromGrades ──────────────────────

func (s *attendanceService) AutoMarkFromGrades(ctx context.Context, req *dto.AutoMarkRequest) (*dto.AutoMarkResponse, error) {
	semester, err := s.loadSemester(ctx, req.SemesterID)
	if err != nil {
		return nil, err
	}
	days, err := s.sweepDays(semester, req.Date)
	if err != nil {
		return nil, err
	}
	if req.Date == nil {
		// 当天的成绩同样有效
		today := s.cal.Today()
		for _, w := range calendar.GenerateWorkingDays(semester.Calendar()) {
			if w.Equal(today) {
				days = append(days, today)
				break
			}
		}
	}
	resp := &dto.AutoMarkResponse{Days: len(days)}
	if len(days) == 0 {
		return resp, nil
	}

	data, err := s.loadClass(ctx, semester, req.ClassID, days[0], days[len(days)-1])
	if err != nil {
		return nil, err
	}
	inRange := make(map[string]bool, len(days))
	for _, d := range days {
		inRange[calendar.Key(d)] = true
	}

	students := make(map[string]bool)
	var fresh []model.AttendanceRecord
	for k := range data.graded {
		studentID, date := splitCellKey(k)
		if !inRange[calendar.Key(date)] {
			continue
		}
		students[studentID] = true

		existing := data.records[k]
		if existing == nil {
			fresh = append(fresh, model.AttendanceRecord{
				SemesterID:     req.SemesterID,
				ClassID:        req.ClassID,
				StudentID:      studentID,
				AttendanceDate: date,
				IsPresent:      true,
				IsExplicit:     false,
				HasGrade:       true,
			})
			continue
		}
		if existing.HasGrade && (existing.IsExplicit || existing.IsPresent) {
			continue
		}
		existing.HasGrade = true
		if !existing.IsExplicit {
			existing.IsPresent = true
		}
		if err := s.repo.Attendance.Update(ctx, existing); err != nil {
			if pkgerrors.IsOptimisticLock(err) {
				// 并发修改的记录留给下一次扫描
				continue
			}
			s.logger.Error("按成绩更新出勤失败", zap.String("record_id", existing.RecordID), zap.Error(err))
			return nil, err
		}
		resp.Updated++
	}

	inserted, err := s.repo.Attendance.CreateMissing(ctx, fresh)
	if err != nil {
		s.logger.Error("按成绩补记出勤失败", zap.String("class_id", req.ClassID), zap.Error(err))
		return nil, err
	}
	resp.Inserted = int(inserted)
	resp.Students = len(students)
	metrics.AutoMarked.WithLabelValues("from_grades").Add(float64(resp.Inserted + resp.Updated))
	return resp, nil
}

// ────────────────────── ClassSummary ──────────────────────

func (s *attendanceService) ClassSummary(ctx context.Context, semesterID, classID string) (*dto.ClassSummaryResponse, error) {
	semester, err := s.loadSemester(ctx, semesterID)
	if err != nil {
		return nil, err
	}

	var (
		students []model.Student
		records  []model.AttendanceRecord
		grades   []model.Grade
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		students, err = s.repo.Student.ListByClass(gctx, classID)
		return err
	})
	g.Go(func() (err error) {
		records, err = s.repo.Attendance.ListByClass(gctx, semesterID, classID)
		return err
	})
	g.Go(func() (err error) {
		grades, err = s.repo.Grade.ListByClass(gctx, semesterID, classID, semester.StartDate.AddDate(0, 0, -1), semester.EndDate.AddDate(0, 0, 2))
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("加载班级出勤数据失败", zap.String("class_id", classID), zap.Error(err))
		return nil, err
	}

	core := make([]attendance.Record, 0, len(records))
	for i := range records {
		core = append(core, records[i].Core())
	}
	gradeTimes := make(map[string][]time.Time)
	for i := range grades {
		gradeTimes[grades[i].StudentID] = append(gradeTimes[grades[i].StudentID], s.localDate(grades[i].At()))
	}

	today := s.cal.Today()
	resp := &dto.ClassSummaryResponse{
		SemesterID: semesterID,
		ClassID:    classID,
		Students:   make([]dto.StudentSummaryResponse, 0, len(students)),
	}
	for _, st := range students {
		verdicts := attendance.ResolveSemester(semester.Calendar(), st.StudentID, core, gradeTimes[st.StudentID], today)
		resp.Students = append(resp.Students, dto.StudentSummaryResponse{
			StudentID: st.StudentID,
			Name:      st.Name,
			Summary:   attendance.Summarize(verdicts),
		})
	}
	return resp, nil
}

// ────────────────────── SweepActiveSemester ──────────────────────

func (s *attendanceService) SweepActiveSemester(ctx context.Context) error {
	semester, err := s.repo.Semester.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.SweepRuns.WithLabelValues("skipped").Inc()
			return ErrNoActiveSemester
		}
		metrics.SweepRuns.WithLabelValues("failed").Inc()
		s.logger.Error("查询活动学期失败", zap.Error(err))
		return err
	}

	today := s.cal.Today()
	if !semester.Calendar().Contains(today) {
		metrics.SweepRuns.WithLabelValues("skipped").Inc()
		s.logger.Info("今天不在活动学期内，跳过自动补记", zap.String("semester_id", semester.SemesterID))
		return nil
	}

	classIDs, err := s.repo.Student.ListActiveClassIDs(ctx)
	if err != nil {
		metrics.SweepRuns.WithLabelValues("failed").Inc()
		s.logger.Error("查询班级失败", zap.Error(err))
		return err
	}

	date := calendar.Key(today)
	var failed []error
	for _, classID := range classIDs {
		req := &dto.AutoMarkRequest{SemesterID: semester.SemesterID, ClassID: classID, Date: &date}
		// 先按成绩补记出勤，再补记缺勤
		if _, err := s.AutoMarkFromGrades(ctx, req); err != nil {
			failed = append(failed, err)
			continue
		}
		if _, err := s.AutoMarkAbsent(ctx, req); err != nil {
			failed = append(failed, err)
		}
	}

	if len(failed) > 0 {
		metrics.SweepRuns.WithLabelValues("failed").Inc()
		return errors.Join(failed...)
	}
	metrics.SweepRuns.WithLabelValues("ok").Inc()
	s.logger.Info("自动补记完成", zap.String("date", date), zap.Int("classes", len(classIDs)))
	return nil
}

// ── 内部辅助方法 ──

func (s *attendanceService) loadSemester(ctx context.Context, id string) (*model.Semester, error) {
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

// sweepDays 需要自动补记的工作日：指定日期时只处理该日，否则为学期开始到昨天
func (s *attendanceService) sweepDays(semester *model.Semester, date *string) ([]time.Time, error) {
	today := s.cal.Today()
	cal := semester.Calendar()

	if date != nil {
		d, err := calendar.ParseDate(*date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		if d.After(today) {
			return nil, attendance.ErrFutureDate
		}
		if !cal.Contains(d) {
			return nil, ErrDateOutsideSemester
		}
		for _, w := range calendar.GenerateWorkingDays(cal) {
			if w.Equal(d) {
				return []time.Time{d}, nil
			}
		}
		return []time.Time{}, nil
	}

	var days []time.Time
	for _, w := range calendar.GenerateWorkingDays(cal) {
		if w.Before(today) {
			days = append(days, w)
		}
	}
	return days, nil
}

func (s *attendanceService) localDate(t time.Time) time.Time {
	return calendar.DateOf(t, s.cal.Location())
}

func (s *attendanceService) toVerdictResponse(v attendance.Verdict) dto.VerdictResponse {
	dayName, hijriShort := s.cal.Label(v.Date)
	return dto.VerdictResponse{
		Date:       calendar.Key(v.Date),
		DayName:    dayName,
		Hijri:      hijriShort,
		IsPresent:  v.IsPresent,
		Source:     string(v.Source),
		IsToday:    v.IsToday,
		IsUpcoming: v.IsUpcoming,
	}
}

// studentData 单个学生在学期内的记录与成绩
type studentData struct {
	records    []model.AttendanceRecord
	gradeTimes []time.Time
}

func (d *studentData) core() []attendance.Record {
	out := make([]attendance.Record, 0, len(d.records))
	for i := range d.records {
		out = append(out, d.records[i].Core())
	}
	return out
}

// recordOn 该日最新的一条记录
func (d *studentData) recordOn(date time.Time) *model.AttendanceRecord {
	var found *model.AttendanceRecord
	for i := range d.records {
		r := &d.records[i]
		if !calendar.DateOf(r.AttendanceDate, nil).Equal(date) {
			continue
		}
		if found == nil || r.UpdatedAt.After(found.UpdatedAt) {
			found = r
		}
	}
	return found
}

// loadStudent 并发加载学生的出勤记录与成绩
func (s *attendanceService) loadStudent(ctx context.Context, semester *model.Semester, classID, studentID string) (*studentData, error) {
	var (
		records []model.AttendanceRecord
		grades  []model.Grade
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		records, err = s.repo.Attendance.ListByStudent(gctx, semester.SemesterID, classID, studentID)
		return err
	})
	g.Go(func() (err error) {
		grades, err = s.repo.Grade.ListByStudent(gctx, semester.SemesterID, studentID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("加载学生出勤数据失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	data := &studentData{records: records, gradeTimes: make([]time.Time, 0, len(grades))}
	for i := range grades {
		data.gradeTimes = append(data.gradeTimes, s.localDate(grades[i].At()))
	}
	return data, nil
}

// classData 班级在日期范围内的记录与成绩，按 (学生, 日期) 索引
type classData struct {
	records map[string]*model.AttendanceRecord
	graded  map[string]bool
}

func (s *attendanceService) loadClass(ctx context.Context, semester *model.Semester, classID string, from, to time.Time) (*classData, error) {
	var (
		records []model.AttendanceRecord
		grades  []model.Grade
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		records, err = s.repo.Attendance.ListByClass(gctx, semester.SemesterID, classID)
		return err
	})
	g.Go(func() (err error) {
		// 成绩时间按学校时区归日，查询范围两端各放宽一天
		grades, err = s.repo.Grade.ListByClass(gctx, semester.SemesterID, classID, from.AddDate(0, 0, -1), to.AddDate(0, 0, 2))
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("加载班级出勤数据失败", zap.String("class_id", classID), zap.Error(err))
		return nil, err
	}

	data := &classData{
		records: make(map[string]*model.AttendanceRecord, len(records)),
		graded:  make(map[string]bool, len(grades)),
	}
	for i := range records {
		r := &records[i]
		k := cellKey(r.StudentID, r.AttendanceDate)
		if prev := data.records[k]; prev == nil || r.UpdatedAt.After(prev.UpdatedAt) {
			data.records[k] = r
		}
	}
	for i := range grades {
		data.graded[cellKey(grades[i].StudentID, s.localDate(grades[i].At()))] = true
	}
	return data, nil
}

func cellKey(studentID string, date time.Time) string {
	return calendar.Key(calendar.DateOf(date, nil)) + "|" + studentID
}

func splitCellKey(k string) (string, time.Time) {
	date, _ := calendar.ParseDate(k[:len(calendar.DateLayout)])
	return k[len(calendar.DateLayout)+1:], date
}

func toRecordResponse(r *model.AttendanceRecord) *dto.AttendanceRecordResponse {
	resp := &dto.AttendanceRecordResponse{
		ID:         r.RecordID,
		SemesterID: r.SemesterID,
		ClassID:    r.ClassID,
		StudentID:  r.StudentID,
		Date:       calendar.Key(r.AttendanceDate),
		IsPresent:  r.IsPresent,
		IsExplicit: r.IsExplicit,
		HasGrade:   r.HasGrade,
		Version:    r.Version,
	}
	if r.Notes != nil {
		resp.Notes = *r.Notes
	}
	return resp
}
