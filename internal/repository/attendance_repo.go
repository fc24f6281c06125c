package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mshabab123/hlqh-sub001/internal/model"
	pkgerrors "github.com/mshabab123/hlqh-sub001/pkg/errors"
)

// AttendanceRepository 出勤记录数据访问接口
type AttendanceRepository interface {
	// ListByClass 学期内某班级的全部记录
	ListByClass(ctx context.Context, semesterID, classID string) ([]model.AttendanceRecord, error)
	// ListByStudent 学期内某学生在某班级的记录
	ListByStudent(ctx context.Context, semesterID, classID, studentID string) ([]model.AttendanceRecord, error)
	// Get 单元格记录，不存在返回 gorm.ErrRecordNotFound
	Get(ctx context.Context, semesterID, classID, studentID string, date time.Time) (*model.AttendanceRecord, error)
	Create(ctx context.Context, record *model.AttendanceRecord) error
	// Update 按版本号更新，版本不一致返回 ErrOptimisticLock
	Update(ctx context.Context, record *model.AttendanceRecord) error
	// CreateMissing 批量插入，已存在的单元格跳过，返回实际插入条数
	CreateMissing(ctx context.Context, records []model.AttendanceRecord) (int64, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) ListByClass(ctx context.Context, semesterID, classID string) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("semester_id = ? AND class_id = ?", semesterID, classID).
		Order("attendance_date ASC, student_id ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ListByStudent(ctx context.Context, semesterID, classID, studentID string) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("semester_id = ? AND class_id = ? AND student_id = ?", semesterID, classID, studentID).
		Order("attendance_date ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) Get(ctx context.Context, semesterID, classID, studentID string, date time.Time) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("semester_id = ? AND class_id = ? AND student_id = ? AND attendance_date = ?",
			semesterID, classID, studentID, date.Format("2006-01-02")).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepo) Create(ctx context.Context, record *model.AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *attendanceRepo) Update(ctx context.Context, record *model.AttendanceRecord) error {
	oldVersion := record.Version
	result := r.db.WithContext(ctx).
		Model(&model.AttendanceRecord{}).
		Where("record_id = ? AND version = ?", record.RecordID, oldVersion).
		Updates(map[string]interface{}{
			"is_present":  record.IsPresent,
			"is_explicit": record.IsExplicit,
			"has_grade":   record.HasGrade,
			"notes":       record.Notes,
			"updated_by":  record.UpdatedBy,
			"updated_at":  gorm.Expr("NOW()"),
			"version":     oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	record.Version = oldVersion + 1
	return nil
}

func (r *attendanceRepo) CreateMissing(ctx context.Context, records []model.AttendanceRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "semester_id"}, {Name: "class_id"}, {Name: "student_id"}, {Name: "attendance_date"}},
			DoNothing: true,
		}).
		CreateInBatches(&records, 200)
	return result.RowsAffected, result.Error
}
