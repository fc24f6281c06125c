package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/mshabab123/hlqh-sub001/internal/dto"
)

// ── 测试辅助 ──

func setupTestSemesterService() (SemesterService, *testRepos) {
	repos := newTestRepos()
	svc := NewSemesterService(repos.repo, newTestCalendar(testToday), []int{5, 6}, zap.NewNop())
	return svc, repos
}

// ── Create 测试 ──

func TestSemesterService_Create_Success(t *testing.T) {
	svc, _ := setupTestSemesterService()

	req := &dto.CreateSemesterRequest{
		Name:         "الفصل الأول 1448",
		StartDate:    "2026-08-30",
		EndDate:      "2027-01-07",
		VacationDays: []string{"2026-09-23", "2026-09-23", "2026-09-22"},
	}

	result, err := svc.Create(context.Background(), req, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.IsActive {
		t.Error("新创建学期不应默认激活")
	}
	if len(result.WeekendDays) != 2 || result.WeekendDays[0] != 5 || result.WeekendDays[1] != 6 {
		t.Errorf("未提供周末时应使用默认值 [5 6]，实际=%v", result.WeekendDays)
	}
	if len(result.VacationDays) != 2 || result.VacationDays[0] != "2026-09-22" {
		t.Errorf("假期日期应去重并排序，实际=%v", result.VacationDays)
	}
}

func TestSemesterService_Create_CustomWeekend(t *testing.T) {
	svc, _ := setupTestSemesterService()

	req := &dto.CreateSemesterRequest{
		Name:        "فصل صيفي",
		StartDate:   "2027-06-01",
		EndDate:     "2027-07-30",
		WeekendDays: []int{6, 0, 6},
	}

	result, err := svc.Create(context.Background(), req, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if len(result.WeekendDays) != 2 || result.WeekendDays[0] != 0 || result.WeekendDays[1] != 6 {
		t.Errorf("期望 WeekendDays=[0 6]，实际=%v", result.WeekendDays)
	}
}

func TestSemesterService_Create_InvalidDate(t *testing.T) {
	svc, _ := setupTestSemesterService()

	// 结束日期早于开始日期
	req := &dto.CreateSemesterRequest{
		Name:      "测试学期",
		StartDate: "2027-01-07",
		EndDate:   "2026-08-30",
	}

	_, err := svc.Create(context.Background(), req, "admin-001")
	if !errors.Is(err, ErrSemesterDateInvalid) {
		t.Errorf("期望 ErrSemesterDateInvalid，实际: %v", err)
	}
}

func TestSemesterService_Create_BadVacation(t *testing.T) {
	svc, _ := setupTestSemesterService()

	req := &dto.CreateSemesterRequest{
		Name:         "测试学期",
		StartDate:    "2026-08-30",
		EndDate:      "2027-01-07",
		VacationDays: []string{"2026/09/23"},
	}

	_, err := svc.Create(context.Background(), req, "admin-001")
	if !errors.Is(err, ErrSemesterVacationDate) {
		t.Errorf("期望 ErrSemesterVacationDate，实际: %v", err)
	}
}

// ── GetByID / GetCurrent 测试 ──

func TestSemesterService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupTestSemesterService()

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, ErrSemesterNotFound) {
		t.Errorf("期望 ErrSemesterNotFound，实际: %v", err)
	}
}

func TestSemesterService_GetCurrent(t *testing.T) {
	svc, repos := setupTestSemesterService()

	if _, err := svc.GetCurrent(context.Background()); !errors.Is(err, ErrSemesterNotFound) {
		t.Errorf("没有活动学期时期望 ErrSemesterNotFound，实际: %v", err)
	}

	seedSemester(repos, true)
	result, err := svc.GetCurrent(context.Background())
	if err != nil {
		t.Fatalf("GetCurrent 应成功: %v", err)
	}
	if result.ID != "sem-1" {
		t.Errorf("期望 ID=sem-1，实际=%s", result.ID)
	}
}

// ── Update 测试 ──

func TestSemesterService_Update_Partial(t *testing.T) {
	svc, repos := setupTestSemesterService()
	seedSemester(repos, false)

	name := "الفصل الأول المعدل"
	result, err := svc.Update(context.Background(), "sem-1", &dto.UpdateSemesterRequest{
		Name:         &name,
		VacationDays: []string{"2026-10-13"},
	}, "admin-001")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Name != name {
		t.Errorf("期望 Name=%s，实际=%s", name, result.Name)
	}
	if result.StartDate != "2026-10-11" {
		t.Errorf("未提供的字段应保持不变，实际 StartDate=%s", result.StartDate)
	}
	if result.Version != 2 {
		t.Errorf("期望 Version=2，实际=%d", result.Version)
	}
}

func TestSemesterService_Update_VersionConflict(t *testing.T) {
	svc, repos := setupTestSemesterService()
	seedSemester(repos, false)

	stale := 7
	_, err := svc.Update(context.Background(), "sem-1", &dto.UpdateSemesterRequest{Version: &stale}, "admin-001")
	if !errors.Is(err, ErrSemesterConflict) {
		t.Errorf("期望 ErrSemesterConflict，实际: %v", err)
	}
}

func TestSemesterService_Update_EndBeforeStart(t *testing.T) {
	svc, repos := setupTestSemesterService()
	seedSemester(repos, false)

	end := "2026-10-01"
	_, err := svc.Update(context.Background(), "sem-1", &dto.UpdateSemesterRequest{EndDate: &end}, "admin-001")
	if !errors.Is(err, ErrSemesterDateInvalid) {
		t.Errorf("期望 ErrSemesterDateInvalid，实际: %v", err)
	}
}

// ── Activate 测试 ──

func TestSemesterService_Activate(t *testing.T) {
	svc, repos := setupTestSemesterService()
	seedSemester(repos, true)

	_, err := svc.Create(context.Background(), &dto.CreateSemesterRequest{
		Name:      "next",
		StartDate: "2027-01-10",
		EndDate:   "2027-05-30",
	}, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if err := svc.Activate(context.Background(), "sem-next", "admin-001"); err != nil {
		t.Fatalf("Activate 应成功: %v", err)
	}

	current, err := svc.GetCurrent(context.Background())
	if err != nil {
		t.Fatalf("GetCurrent 应成功: %v", err)
	}
	if current.ID != "sem-next" {
		t.Errorf("期望当前学期=sem-next，实际=%s", current.ID)
	}
	old, _ := svc.GetByID(context.Background(), "sem-1")
	if old.IsActive {
		t.Error("原活动学期应被取消激活")
	}
}

func TestSemesterService_Activate_NotFound(t *testing.T) {
	svc, _ := setupTestSemesterService()

	err := svc.Activate(context.Background(), "missing", "admin-001")
	if !errors.Is(err, ErrSemesterNotFound) {
		t.Errorf("期望 ErrSemesterNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestSemesterService_Delete(t *testing.T) {
	svc, repos := setupTestSemesterService()
	seedSemester(repos, false)

	if err := svc.Delete(context.Background(), "sem-1", "admin-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), "sem-1"); !errors.Is(err, ErrSemesterNotFound) {
		t.Errorf("删除后期望 ErrSemesterNotFound，实际: %v", err)
	}
}

// ── WorkingDays 测试 ──

func TestSemesterService_WorkingDays(t *testing.T) {
	svc, repos := setupTestSemesterService()
	sem := seedSemester(repos, false)
	sem.VacationDays = []string{"2026-10-13"}

	result, err := svc.WorkingDays(context.Background(), "sem-1")
	if err != nil {
		t.Fatalf("WorkingDays 应成功: %v", err)
	}
	if len(result.Days) != 12 {
		t.Errorf("期望 12 个日历日，实际=%d", len(result.Days))
	}
	if result.WorkingCount != 9 {
		t.Errorf("期望 9 个工作日，实际=%d", result.WorkingCount)
	}

	friday := result.Days[5]
	if friday.Date != "2026-10-16" || !friday.IsWeekend || friday.IsWorking {
		t.Errorf("2026-10-16 应为周末，实际=%+v", friday)
	}
	if friday.DayName != "الجمعة" {
		t.Errorf("期望 DayName=الجمعة，实际=%s", friday.DayName)
	}
	if !result.Days[2].IsVacation {
		t.Error("2026-10-13 应为假期")
	}
	if result.Days[0].Hijri == "" {
		t.Error("应包含回历简写")
	}
}
