package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mshabab123/hlqh-sub001/internal/model"
)

// GradeRepository 成绩只读访问
type GradeRepository interface {
	ListByStudent(ctx context.Context, semesterID, studentID string) ([]model.Grade, error)
	// ListByClass 班级成绩；from/to 非零时按 COALESCE(graded_at, created_at) 过滤，区间左闭右开
	ListByClass(ctx context.Context, semesterID, classID string, from, to time.Time) ([]model.Grade, error)
}

type gradeRepo struct {
	db *gorm.DB
}

// NewGradeRepo 创建 GradeRepository 实例
func NewGradeRepo(db *gorm.DB) GradeRepository {
	return &gradeRepo{db: db}
}

func (r *gradeRepo) ListByStudent(ctx context.Context, semesterID, studentID string) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.db.WithContext(ctx).
		Where("semester_id = ? AND student_id = ?", semesterID, studentID).
		Order("COALESCE(graded_at, created_at) ASC").
		Find(&grades).Error
	return grades, err
}

func (r *gradeRepo) ListByClass(ctx context.Context, semesterID, classID string, from, to time.Time) ([]model.Grade, error) {
	var grades []model.Grade
	db := r.db.WithContext(ctx).Where("semester_id = ? AND class_id = ?", semesterID, classID)
	if !from.IsZero() {
		db = db.Where("COALESCE(graded_at, created_at) >= ?", from)
	}
	if !to.IsZero() {
		db = db.Where("COALESCE(graded_at, created_at) < ?", to)
	}
	err := db.Order("COALESCE(graded_at, created_at) ASC").Find(&grades).Error
	return grades, err
}
