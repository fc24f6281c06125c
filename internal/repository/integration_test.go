//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mshabab123/hlqh-sub001/internal/model"
	"github.com/mshabab123/hlqh-sub001/internal/repository"
	pkgerrors "github.com/mshabab123/hlqh-sub001/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=halaqa password=halaqa dbname=halaqa_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	err = testDB.AutoMigrate(
		&model.Semester{},
		&model.Student{},
		&model.Enrollment{},
		&model.AttendanceRecord{},
		&model.Grade{},
		&model.StudentGoal{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// setupTestData 创建学期、学生与班级注册，返回清理函数
func setupTestData(t *testing.T) (sem *model.Semester, student *model.Student, classID string, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	sem = &model.Semester{
		Name:         fmt.Sprintf("测试学期-%d", time.Now().UnixNano()),
		StartDate:    day(2026, 10, 11),
		EndDate:      day(2026, 10, 17),
		WeekendDays:  model.IntArray{5, 6},
		VacationDays: []string{"2026-10-13"},
	}
	if err := testDB.WithContext(ctx).Create(sem).Error; err != nil {
		t.Fatalf("创建学期失败: %v", err)
	}

	student = &model.Student{
		StudentID: fmt.Sprintf("S%d", time.Now().UnixNano()%1_000_000_000),
		Name:      "测试学生",
	}
	if err := testDB.WithContext(ctx).Create(student).Error; err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}

	classID = uuid.NewString()
	if err := testDB.WithContext(ctx).Create(&model.Enrollment{StudentID: student.StudentID, ClassID: classID, IsActive: true}).Error; err != nil {
		t.Fatalf("创建班级注册失败: %v", err)
	}

	cleanup = func() {
		testDB.Where("student_id = ?", student.StudentID).Delete(&model.StudentGoal{})
		testDB.Where("student_id = ?", student.StudentID).Delete(&model.Grade{})
		testDB.Where("student_id = ?", student.StudentID).Delete(&model.AttendanceRecord{})
		testDB.Where("student_id = ?", student.StudentID).Delete(&model.Enrollment{})
		testDB.Where("student_id = ?", student.StudentID).Delete(&model.Student{})
		testDB.Unscoped().Where("semester_id = ?", sem.SemesterID).Delete(&model.Semester{})
	}
	return sem, student, classID, cleanup
}

// ═══════════════════════════════════════════════════════════
// Semester
// ═══════════════════════════════════════════════════════════

func TestSemester_ArrayColumnsRoundTrip(t *testing.T) {
	sem, _, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	got, err := repo.Semester.GetByID(context.Background(), sem.SemesterID)
	if err != nil {
		t.Fatalf("查询学期失败: %v", err)
	}
	if len(got.WeekendDays) != 2 || got.WeekendDays[0] != 5 || got.WeekendDays[1] != 6 {
		t.Errorf("期望周末 [5 6]，实际 %v", got.WeekendDays)
	}
	if len(got.VacationDays) != 1 || got.VacationDays[0] != "2026-10-13" {
		t.Errorf("期望假期 [2026-10-13]，实际 %v", got.VacationDays)
	}
}

func TestSemester_OptimisticLock(t *testing.T) {
	sem, _, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	a, _ := repo.Semester.GetByID(ctx, sem.SemesterID)
	b, _ := repo.Semester.GetByID(ctx, sem.SemesterID)

	a.Name = "第一次修改"
	if err := repo.Semester.Update(ctx, a); err != nil {
		t.Fatalf("第一次更新失败: %v", err)
	}

	b.Name = "第二次修改"
	if err := repo.Semester.Update(ctx, b); !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Errorf("期望 ErrOptimisticLock，得到: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Attendance
// ═══════════════════════════════════════════════════════════

func TestAttendance_CreateMissingSkipsExisting(t *testing.T) {
	sem, student, classID, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	explicit := &model.AttendanceRecord{
		SemesterID: sem.SemesterID, ClassID: classID, StudentID: student.StudentID,
		AttendanceDate: day(2026, 10, 11), IsPresent: true, IsExplicit: true,
	}
	if err := repo.Attendance.Create(ctx, explicit); err != nil {
		t.Fatalf("创建记录失败: %v", err)
	}

	n, err := repo.Attendance.CreateMissing(ctx, []model.AttendanceRecord{
		{SemesterID: sem.SemesterID, ClassID: classID, StudentID: student.StudentID, AttendanceDate: day(2026, 10, 11)},
		{SemesterID: sem.SemesterID, ClassID: classID, StudentID: student.StudentID, AttendanceDate: day(2026, 10, 12)},
	})
	if err != nil {
		t.Fatalf("CreateMissing 失败: %v", err)
	}
	if n != 1 {
		t.Errorf("期望插入 1 条，实际 %d", n)
	}

	got, err := repo.Attendance.Get(ctx, sem.SemesterID, classID, student.StudentID, day(2026, 10, 11))
	if err != nil {
		t.Fatalf("查询记录失败: %v", err)
	}
	if !got.IsPresent || !got.IsExplicit {
		t.Error("已存在的显式记录不应被覆盖")
	}
}

func TestAttendance_UpdateVersionConflict(t *testing.T) {
	sem, student, classID, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	rec := &model.AttendanceRecord{
		SemesterID: sem.SemesterID, ClassID: classID, StudentID: student.StudentID,
		AttendanceDate: day(2026, 10, 12), IsPresent: false, IsExplicit: true,
	}
	if err := repo.Attendance.Create(ctx, rec); err != nil {
		t.Fatalf("创建记录失败: %v", err)
	}

	stale := *rec
	rec.IsPresent = true
	if err := repo.Attendance.Update(ctx, rec); err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if err := repo.Attendance.Update(ctx, &stale); !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Errorf("期望 ErrOptimisticLock，得到: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Transaction
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	sem, student, classID, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx 失败: %v", err)
	}
	txRepo := repo.WithTx(tx)

	rec := &model.AttendanceRecord{
		SemesterID: sem.SemesterID, ClassID: classID, StudentID: student.StudentID,
		AttendanceDate: day(2026, 10, 14), IsPresent: true, IsExplicit: true,
	}
	if err := txRepo.Attendance.Create(ctx, rec); err != nil {
		tx.Rollback()
		t.Fatalf("事务内创建记录失败: %v", err)
	}
	tx.Rollback()

	if _, err := repo.Attendance.Get(ctx, sem.SemesterID, classID, student.StudentID, day(2026, 10, 14)); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("期望回滚后查不到记录，实际: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Goal
// ═══════════════════════════════════════════════════════════

func TestGoal_ReplaceOverwrites(t *testing.T) {
	_, student, classID, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	if err := repo.Goal.Replace(ctx, &model.StudentGoal{StudentID: student.StudentID, ClassID: classID, TargetSurahID: 110, TargetAyahNumber: 3}); err != nil {
		t.Fatalf("设置目标失败: %v", err)
	}
	if err := repo.Goal.Replace(ctx, &model.StudentGoal{StudentID: student.StudentID, ClassID: classID, TargetSurahID: 100, TargetAyahNumber: 5}); err != nil {
		t.Fatalf("替换目标失败: %v", err)
	}

	got, err := repo.Goal.Get(ctx, student.StudentID, classID)
	if err != nil {
		t.Fatalf("查询目标失败: %v", err)
	}
	if got.TargetSurahID != 100 || got.TargetAyahNumber != 5 {
		t.Errorf("期望目标 100:5，实际 %d:%d", got.TargetSurahID, got.TargetAyahNumber)
	}

	ids, err := repo.Student.ListActiveClassIDs(ctx)
	if err != nil {
		t.Fatalf("查询班级失败: %v", err)
	}
	found := false
	for _, id := range ids {
		if id == classID {
			found = true
		}
	}
	if !found {
		t.Error("期望在读班级列表包含测试班级")
	}
}
