package model

import (
	"time"

	"github.com/lib/pq"

	"github.com/mshabab123/hlqh-sub001/internal/core/calendar"
)

// Semester 学期表 — 对应 semesters
type Semester struct {
	SemesterID   string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"semester_id"`
	SchoolID     *string        `gorm:"type:varchar(64)"                               json:"school_id,omitempty"`
	Name         string         `gorm:"type:varchar(100);not null"                     json:"name"`
	StartDate    time.Time      `gorm:"type:date;not null"                             json:"start_date"`
	EndDate      time.Time      `gorm:"type:date;not null"                             json:"end_date"`
	WeekendDays  IntArray       `gorm:"type:int[];not null"                            json:"weekend_days"`  // 0=周日 … 6=周六
	VacationDays pq.StringArray `gorm:"type:text[];not null"                           json:"vacation_days"` // YYYY-MM-DD
	IsActive     bool           `gorm:"not null;default:false"                         json:"is_active"`
	VersionedModel
}

// TableName 指定表名
func (Semester) TableName() string { return "semesters" }

// Calendar 转换为日历计算所需的规则
func (s *Semester) Calendar() calendar.Semester {
	return calendar.Semester{
		ID:           s.SemesterID,
		StartDate:    s.StartDate,
		EndDate:      s.EndDate,
		WeekendDays:  []int(s.WeekendDays),
		VacationDays: []string(s.VacationDays),
	}
}
