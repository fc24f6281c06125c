package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mshabab123/hlqh-sub001/internal/model"
)

// newDryRunDB 不连接数据库，只渲染 SQL；每条 INSERT 追加到 captured
func newDryRunDB(t *testing.T, captured *[]string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=halaqa dbname=halaqa sslmode=disable",
	}), &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("初始化 gorm 失败: %v", err)
	}
	err = db.Callback().Create().After("gorm:create").Register("test:capture_insert", func(tx *gorm.DB) {
		*captured = append(*captured, tx.Dialector.Explain(tx.Statement.SQL.String(), tx.Statement.Vars...))
	})
	if err != nil {
		t.Fatalf("注册回调失败: %v", err)
	}
	return db
}

// insertRows 把 INSERT 语句拆成 列名 -> 值 的行
func insertRows(t *testing.T, sql string) []map[string]string {
	t.Helper()
	open := strings.Index(sql, "(")
	mid := strings.Index(sql, ") VALUES (")
	if open < 0 || mid < 0 {
		t.Fatalf("无法解析 INSERT: %s", sql)
	}
	var cols []string
	for _, c := range strings.Split(sql[open+1:mid], ",") {
		cols = append(cols, strings.Trim(strings.TrimSpace(c), `"`))
	}

	values := sql[mid+len(") VALUES ("):]
	for _, stop := range []string{" ON CONFLICT", " RETURNING"} {
		if i := strings.Index(values, stop); i >= 0 {
			values = values[:i]
		}
	}
	values = strings.TrimSuffix(strings.TrimSpace(values), ")")

	var rows []map[string]string
	for _, tuple := range strings.Split(values, "),(") {
		vals := strings.Split(tuple, ",")
		if len(vals) != len(cols) {
			t.Fatalf("列数 %d 与值数 %d 不一致: %s", len(cols), len(vals), sql)
		}
		row := make(map[string]string, len(cols))
		for i, c := range cols {
			row[c] = strings.TrimSpace(vals[i])
		}
		rows = append(rows, row)
	}
	return rows
}

func TestAttendanceRepo_CreateMissing_WritesFalseFlags(t *testing.T) {
	var captured []string
	repo := NewAttendanceRepo(newDryRunDB(t, &captured))

	note := "تم وضع الغياب تلقائياً - لا توجد درجات أو حضور"
	day := time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC)
	records := []model.AttendanceRecord{
		{SemesterID: "sem-1", ClassID: "class-1", StudentID: "s1", AttendanceDate: day, Notes: &note},
		{SemesterID: "sem-1", ClassID: "class-1", StudentID: "s2", AttendanceDate: day, IsPresent: true, HasGrade: true},
	}
	if _, err := repo.CreateMissing(context.Background(), records); err != nil {
		t.Fatalf("CreateMissing 不应报错: %v", err)
	}
	if len(captured) != 1 {
		t.Fatalf("期望 1 条 INSERT，实际 %d", len(captured))
	}
	if !strings.Contains(captured[0], "ON CONFLICT") {
		t.Errorf("期望 ON CONFLICT DO NOTHING，实际: %s", captured[0])
	}

	rows := insertRows(t, captured[0])
	if len(rows) != 2 {
		t.Fatalf("期望 2 行，实际 %d", len(rows))
	}
	absent := rows[0]
	if absent["is_present"] != "false" || absent["is_explicit"] != "false" || absent["has_grade"] != "false" {
		t.Errorf("自动缺勤行的标记应全部为 false，实际 %v", absent)
	}
	graded := rows[1]
	if graded["is_present"] != "true" || graded["is_explicit"] != "false" || graded["has_grade"] != "true" {
		t.Errorf("按成绩补记行应为 present/非显式/has_grade，实际 %v", graded)
	}
}

func TestAttendanceRepo_Create_KeepsExplicitFlag(t *testing.T) {
	var captured []string
	repo := NewAttendanceRepo(newDryRunDB(t, &captured))
	day := time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC)

	implicit := &model.AttendanceRecord{SemesterID: "sem-1", ClassID: "class-1", StudentID: "s1", AttendanceDate: day}
	explicit := &model.AttendanceRecord{SemesterID: "sem-1", ClassID: "class-1", StudentID: "s2", AttendanceDate: day, IsExplicit: true}
	for _, r := range []*model.AttendanceRecord{implicit, explicit} {
		if err := repo.Create(context.Background(), r); err != nil {
			t.Fatalf("Create 不应报错: %v", err)
		}
	}
	if len(captured) != 2 {
		t.Fatalf("期望 2 条 INSERT，实际 %d", len(captured))
	}

	if got := insertRows(t, captured[0])[0]["is_explicit"]; got != "false" {
		t.Errorf("期望 is_explicit=false，实际 %q", got)
	}
	if got := insertRows(t, captured[1])[0]["is_explicit"]; got != "true" {
		t.Errorf("期望 is_explicit=true，实际 %q", got)
	}
}
