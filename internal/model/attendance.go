package model

import (
	"time"

	"github.com/mshabab123/hlqh-sub001/internal/core/attendance"
)

// AttendanceRecord 出勤记录 — 对应 attendance_records
// (semester, class, student, date) 唯一，写入只做 upsert
type AttendanceRecord struct {
	RecordID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"record_id"`
	SemesterID     string    `gorm:"type:uuid;not null"                             json:"semester_id"`
	ClassID        string    `gorm:"type:uuid;not null"                             json:"class_id"`
	StudentID      string    `gorm:"type:varchar(20);not null"                      json:"student_id"`
	AttendanceDate time.Time `gorm:"type:date;not null"                             json:"attendance_date"`
	IsPresent      bool      `gorm:"not null"                                       json:"is_present"`
	IsExplicit     bool      `gorm:"not null"                                       json:"is_explicit"`
	HasGrade       bool      `gorm:"not null"                                       json:"has_grade"`
	Notes          *string   `gorm:"type:text"                                      json:"notes,omitempty"`
	Version        int       `gorm:"not null;default:1"                             json:"version"`
	BaseModel
}

// TableName 指定表名
func (AttendanceRecord) TableName() string { return "attendance_records" }

// Core 转换为出勤判定的输入
func (r *AttendanceRecord) Core() attendance.Record {
	notes := ""
	if r.Notes != nil {
		notes = *r.Notes
	}
	return attendance.Record{
		StudentID:  r.StudentID,
		Date:       r.AttendanceDate,
		IsPresent:  r.IsPresent,
		IsExplicit: r.IsExplicit,
		HasGrade:   r.HasGrade,
		Notes:      notes,
		UpdatedAt:  r.UpdatedAt,
	}
}

// Grade 成绩 — 对应 grades，这里只关心评分时间
type Grade struct {
	GradeID    string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"grade_id"`
	SemesterID string     `gorm:"type:uuid;not null"                             json:"semester_id"`
	ClassID    string     `gorm:"type:uuid;not null"                             json:"class_id"`
	StudentID  string     `gorm:"type:varchar(20);not null"                      json:"student_id"`
	Score      *float64   `gorm:"type:numeric(5,2)"                              json:"score,omitempty"`
	GradedAt   *time.Time `json:"graded_at,omitempty"`
	CreatedAt  time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Grade) TableName() string { return "grades" }

// At 用于出勤推断的时间：优先 graded_at，否则 created_at
func (g *Grade) At() time.Time {
	if g.GradedAt != nil {
		return *g.GradedAt
	}
	return g.CreatedAt
}
