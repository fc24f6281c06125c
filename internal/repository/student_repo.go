package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mshabab123/hlqh-sub001/internal/model"
)

// StudentRepository 学生与班级注册数据访问接口
type StudentRepository interface {
	GetByID(ctx context.Context, id string) (*model.Student, error)
	// ListByClass 班级内在读学生，按姓名排序
	ListByClass(ctx context.Context, classID string) ([]model.Student, error)
	// ListActiveClassIDs 有在读学生的班级
	ListActiveClassIDs(ctx context.Context) ([]string, error)
	UpdatePosition(ctx context.Context, id string, surahID, ayahNumber int) error
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("student_id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) ListByClass(ctx context.Context, classID string) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Joins("JOIN enrollments e ON e.student_id = students.student_id").
		Where("e.class_id = ? AND e.is_active = ?", classID, true).
		Order("students.name ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) ListActiveClassIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("is_active = ?", true).
		Distinct("class_id").
		Pluck("class_id", &ids).Error
	return ids, err
}

func (r *studentRepo) UpdatePosition(ctx context.Context, id string, surahID, ayahNumber int) error {
	result := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("student_id = ?", id).
		Updates(map[string]interface{}{
			"memorized_surah_id":    surahID,
			"memorized_ayah_number": ayahNumber,
			"updated_at":            gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GoalRepository 背诵目标数据访问接口
type GoalRepository interface {
	// Get 不存在返回 gorm.ErrRecordNotFound
	Get(ctx context.Context, studentID, classID string) (*model.StudentGoal, error)
	// GetLatest 学生最近更新的目标，不限班级
	GetLatest(ctx context.Context, studentID string) (*model.StudentGoal, error)
	// Replace 整体替换 (学生, 班级) 的目标
	Replace(ctx context.Context, goal *model.StudentGoal) error
}

type goalRepo struct {
	db *gorm.DB
}

// NewGoalRepo 创建 GoalRepository 实例
func NewGoalRepo(db *gorm.DB) GoalRepository {
	return &goalRepo{db: db}
}

func (r *goalRepo) Get(ctx context.Context, studentID, classID string) (*model.StudentGoal, error) {
	var goal model.StudentGoal
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND class_id = ?", studentID, classID).
		First(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepo) GetLatest(ctx context.Context, studentID string) (*model.StudentGoal, error) {
	var goal model.StudentGoal
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("updated_at DESC").
		First(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepo) Replace(ctx context.Context, goal *model.StudentGoal) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "class_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"target_surah_id", "target_ayah_number", "updated_at"}),
		}).
		Create(goal).Error
}
