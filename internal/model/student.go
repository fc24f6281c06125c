package model

import (
	"time"

	"github.com/mshabab123/hlqh-sub001/internal/core/quran"
)

// Student 学生 — 对应 students
type Student struct {
	StudentID           string    `gorm:"type:varchar(20);primaryKey"        json:"student_id"`
	Name                string    `gorm:"type:varchar(200);not null"         json:"name"`
	MemorizedSurahID    *int      `json:"memorized_surah_id,omitempty"`
	MemorizedAyahNumber *int      `json:"memorized_ayah_number,omitempty"`
	CreatedAt           time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// Position 当前背诵位置，未设置时返回 nil
func (s *Student) Position() *quran.Position {
	if s.MemorizedSurahID == nil || *s.MemorizedSurahID == 0 {
		return nil
	}
	p := &quran.Position{SurahID: *s.MemorizedSurahID}
	if s.MemorizedAyahNumber != nil {
		p.AyahNumber = *s.MemorizedAyahNumber
	}
	return p
}

// Enrollment 班级注册 — 对应 enrollments
type Enrollment struct {
	StudentID  string    `gorm:"type:varchar(20);primaryKey"        json:"student_id"`
	ClassID    string    `gorm:"type:uuid;primaryKey"               json:"class_id"`
	IsActive   bool      `gorm:"not null"                           json:"is_active"`
	EnrolledAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"enrolled_at"`
	Student    *Student  `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
}

// TableName 指定表名
func (Enrollment) TableName() string { return "enrollments" }

// StudentGoal 背诵目标 — 对应 student_goals，按 (学生, 班级) 整体替换
type StudentGoal struct {
	StudentID        string    `gorm:"type:varchar(20);primaryKey"        json:"student_id"`
	ClassID          string    `gorm:"type:uuid;primaryKey"               json:"class_id"`
	TargetSurahID    int       `gorm:"not null"                           json:"target_surah_id"`
	TargetAyahNumber int       `gorm:"not null"                           json:"target_ayah_number"`
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName 指定表名
func (StudentGoal) TableName() string { return "student_goals" }

// Goal 转换为进度计算的目标
func (g *StudentGoal) Goal() quran.Goal {
	return quran.Goal{TargetSurahID: g.TargetSurahID, TargetAyahNumber: g.TargetAyahNumber}
}
