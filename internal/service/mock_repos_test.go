package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mshabab123/hlqh-sub001/config"
	"github.com/mshabab123/hlqh-sub001/internal/core/calendar"
	"github.com/mshabab123/hlqh-sub001/internal/core/hijri"
	"github.com/mshabab123/hlqh-sub001/internal/model"
	"github.com/mshabab123/hlqh-sub001/internal/repository"
	pkgerrors "github.com/mshabab123/hlqh-sub001/pkg/errors"
)

// ── Mock SemesterRepository ──

type mockSemesterRepo struct {
	semesters map[string]*model.Semester
}

func newMockSemesterRepo() *mockSemesterRepo {
	return &mockSemesterRepo{semesters: make(map[string]*model.Semester)}
}

func (m *mockSemesterRepo) Create(_ context.Context, semester *model.Semester) error {
	if semester.SemesterID == "" {
		semester.SemesterID = "sem-" + semester.Name
	}
	if semester.Version == 0 {
		semester.Version = 1
	}
	m.semesters[semester.SemesterID] = semester
	return nil
}

func (m *mockSemesterRepo) GetByID(_ context.Context, id string) (*model.Semester, error) {
	if s, ok := m.semesters[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) GetCurrent(_ context.Context) (*model.Semester, error) {
	for _, s := range m.semesters {
		if s.IsActive {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) List(_ context.Context) ([]model.Semester, error) {
	var result []model.Semester
	for _, s := range m.semesters {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.After(result[j].StartDate) })
	return result, nil
}

func (m *mockSemesterRepo) Update(_ context.Context, semester *model.Semester) error {
	stored, ok := m.semesters[semester.SemesterID]
	if !ok || stored.Version != semester.Version {
		return pkgerrors.ErrOptimisticLock
	}
	semester.Version++
	cp := *semester
	m.semesters[semester.SemesterID] = &cp
	return nil
}

func (m *mockSemesterRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.semesters, id)
	return nil
}

func (m *mockSemesterRepo) ClearActive(_ context.Context) error {
	for _, s := range m.semesters {
		if s.IsActive {
			s.IsActive = false
			s.Version++
		}
	}
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	mu        sync.Mutex
	records   map[string]*model.AttendanceRecord
	failWrite error
	clock     time.Time
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{
		records: make(map[string]*model.AttendanceRecord),
		clock:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
}

func attendanceCell(r *model.AttendanceRecord) string {
	return fmt.Sprintf("%s|%s|%s|%s", r.SemesterID, r.ClassID, r.StudentID, calendar.Key(r.AttendanceDate))
}

// tick 单调递增的更新时间，保证"最新记录"判定可重复
func (m *mockAttendanceRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *mockAttendanceRepo) ListByClass(_ context.Context, semesterID, classID string) ([]model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.SemesterID == semesterID && r.ClassID == classID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByStudent(_ context.Context, semesterID, classID, studentID string) ([]model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.SemesterID == semesterID && r.ClassID == classID && r.StudentID == studentID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) Get(_ context.Context, semesterID, classID, studentID string, date time.Time) (*model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := fmt.Sprintf("%s|%s|%s|%s", semesterID, classID, studentID, calendar.Key(date))
	if r, ok := m.records[key]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) Create(_ context.Context, record *model.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	key := attendanceCell(record)
	if _, exists := m.records[key]; exists {
		return fmt.Errorf("duplicate key value violates unique constraint")
	}
	if record.RecordID == "" {
		record.RecordID = uuid.NewString()
	}
	record.Version = 1
	record.UpdatedAt = m.tick()
	cp := *record
	m.records[key] = &cp
	return nil
}

func (m *mockAttendanceRepo) Update(_ context.Context, record *model.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	key := attendanceCell(record)
	stored, ok := m.records[key]
	if !ok || stored.Version != record.Version {
		return pkgerrors.ErrOptimisticLock
	}
	record.Version++
	record.UpdatedAt = m.tick()
	cp := *record
	m.records[key] = &cp
	return nil
}

func (m *mockAttendanceRepo) CreateMissing(_ context.Context, records []model.AttendanceRecord) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return 0, m.failWrite
	}
	var n int64
	for i := range records {
		r := records[i]
		key := attendanceCell(&r)
		if _, exists := m.records[key]; exists {
			continue
		}
		r.RecordID = uuid.NewString()
		r.Version = 1
		r.UpdatedAt = m.tick()
		m.records[key] = &r
		n++
	}
	return n, nil
}

// seed 直接写入一条记录
func (m *mockAttendanceRepo) seed(r model.AttendanceRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.RecordID == "" {
		r.RecordID = uuid.NewString()
	}
	if r.Version == 0 {
		r.Version = 1
	}
	r.UpdatedAt = m.tick()
	m.records[attendanceCell(&r)] = &r
}

func (m *mockAttendanceRepo) find(semesterID, classID, studentID string, date time.Time) *model.AttendanceRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[fmt.Sprintf("%s|%s|%s|%s", semesterID, classID, studentID, calendar.Key(date))]
}

// ── Mock GradeRepository ──

type mockGradeRepo struct {
	grades []model.Grade
}

func newMockGradeRepo() *mockGradeRepo {
	return &mockGradeRepo{}
}

func (m *mockGradeRepo) ListByStudent(_ context.Context, semesterID, studentID string) ([]model.Grade, error) {
	var result []model.Grade
	for _, g := range m.grades {
		if g.SemesterID == semesterID && g.StudentID == studentID {
			result = append(result, g)
		}
	}
	return result, nil
}

func (m *mockGradeRepo) ListByClass(_ context.Context, semesterID, classID string, from, to time.Time) ([]model.Grade, error) {
	var result []model.Grade
	for _, g := range m.grades {
		if g.SemesterID != semesterID || g.ClassID != classID {
			continue
		}
		at := g.At()
		if !from.IsZero() && at.Before(from) {
			continue
		}
		if !to.IsZero() && !at.Before(to) {
			continue
		}
		result = append(result, g)
	}
	return result, nil
}

func (m *mockGradeRepo) add(semesterID, classID, studentID string, at time.Time) {
	m.grades = append(m.grades, model.Grade{
		GradeID:    uuid.NewString(),
		SemesterID: semesterID,
		ClassID:    classID,
		StudentID:  studentID,
		GradedAt:   &at,
		CreatedAt:  at,
	})
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
	classes  map[string][]string
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{
		students: make(map[string]*model.Student),
		classes:  make(map[string][]string),
	}
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) ListByClass(_ context.Context, classID string) ([]model.Student, error) {
	var result []model.Student
	for _, id := range m.classes[classID] {
		if s, ok := m.students[id]; ok {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockStudentRepo) ListActiveClassIDs(_ context.Context) ([]string, error) {
	var ids []string
	for id, members := range m.classes {
		if len(members) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *mockStudentRepo) UpdatePosition(_ context.Context, id string, surahID, ayahNumber int) error {
	s, ok := m.students[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.MemorizedSurahID = &surahID
	s.MemorizedAyahNumber = &ayahNumber
	return nil
}

func (m *mockStudentRepo) enroll(classID string, students ...model.Student) {
	for i := range students {
		st := students[i]
		m.students[st.StudentID] = &st
		m.classes[classID] = append(m.classes[classID], st.StudentID)
	}
}

// ── Mock GoalRepository ──

type mockGoalRepo struct {
	goals map[string]*model.StudentGoal
	clock time.Time
}

func newMockGoalRepo() *mockGoalRepo {
	return &mockGoalRepo{
		goals: make(map[string]*model.StudentGoal),
		clock: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *mockGoalRepo) Get(_ context.Context, studentID, classID string) (*model.StudentGoal, error) {
	if g, ok := m.goals[studentID+"|"+classID]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGoalRepo) GetLatest(_ context.Context, studentID string) (*model.StudentGoal, error) {
	var latest *model.StudentGoal
	for _, g := range m.goals {
		if g.StudentID != studentID {
			continue
		}
		if latest == nil || g.UpdatedAt.After(latest.UpdatedAt) {
			latest = g
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *latest
	return &cp, nil
}

func (m *mockGoalRepo) Replace(_ context.Context, goal *model.StudentGoal) error {
	m.clock = m.clock.Add(time.Second)
	goal.UpdatedAt = m.clock
	cp := *goal
	m.goals[goal.StudentID+"|"+goal.ClassID] = &cp
	return nil
}

// ── 测试夹具 ──

// testToday 测试中的"今天"：2026-10-14 周三
var testToday = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

type testRepos struct {
	repo       *repository.Repository
	semester   *mockSemesterRepo
	attendance *mockAttendanceRepo
	grade      *mockGradeRepo
	student    *mockStudentRepo
	goal       *mockGoalRepo
}

func newTestRepos() *testRepos {
	r := &testRepos{
		semester:   newMockSemesterRepo(),
		attendance: newMockAttendanceRepo(),
		grade:      newMockGradeRepo(),
		student:    newMockStudentRepo(),
		goal:       newMockGoalRepo(),
	}
	r.repo = &repository.Repository{
		Semester:   r.semester,
		Attendance: r.attendance,
		Grade:      r.grade,
		Student:    r.student,
		Goal:       r.goal,
	}
	return r
}

func newTestCalendar(now time.Time) CalendarService {
	cfg := &config.CalendarConfig{Timezone: "UTC", HijriMode: hijri.ModeArithmetic, DefaultWeekendDays: []int{5, 6}}
	cal, err := NewCalendarService(cfg, Deps{
		Hijri:    hijri.Arithmetic{},
		Location: time.UTC,
		Now:      func() time.Time { return now },
	}, zap.NewNop())
	if err != nil {
		panic(err)
	}
	return cal
}

// seedSemester 2026-10-11（周日）至 2026-10-22，周五周六为周末
func seedSemester(r *testRepos, active bool) *model.Semester {
	sem := &model.Semester{
		SemesterID:  "sem-1",
		Name:        "الفصل الأول",
		StartDate:   time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC),
		WeekendDays: model.IntArray{5, 6},
		IsActive:    active,
	}
	_ = r.semester.Create(context.Background(), sem)
	return sem
}
