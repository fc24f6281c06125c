package dto

// ── 学期模块 DTO ──

// CreateSemesterRequest 创建学期请求
type CreateSemesterRequest struct {
	Name         string   `json:"name"          binding:"required,min=2,max=100"`
	SchoolID     *string  `json:"school_id"     binding:"omitempty,max=64"`
	StartDate    string   `json:"start_date"    binding:"required,isodate"` // "2026-09-01"
	EndDate      string   `json:"end_date"      binding:"required,isodate"`
	WeekendDays  []int    `json:"weekend_days"  binding:"omitempty,max=7,dive,weekday"` // 缺省使用配置
	VacationDays []string `json:"vacation_days" binding:"omitempty,dive,isodate"`
}

// UpdateSemesterRequest 更新学期请求，未提供的字段保持不变
type UpdateSemesterRequest struct {
	Name         *string  `json:"name"          binding:"omitempty,min=2,max=100"`
	StartDate    *string  `json:"start_date"    binding:"omitempty,isodate"`
	EndDate      *string  `json:"end_date"      binding:"omitempty,isodate"`
	WeekendDays  []int    `json:"weekend_days"  binding:"omitempty,max=7,dive,weekday"`
	VacationDays []string `json:"vacation_days" binding:"omitempty,dive,isodate"`
	Version      *int     `json:"version"       binding:"omitempty,min=1"`
}

// SemesterResponse 学期信息响应
type SemesterResponse struct {
	ID           string   `json:"id"`
	SchoolID     string   `json:"school_id,omitempty"`
	Name         string   `json:"name"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	WeekendDays  []int    `json:"weekend_days"`
	VacationDays []string `json:"vacation_days"`
	IsActive     bool     `json:"is_active"`
	Version      int      `json:"version"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

// WorkingDayResponse 学期日历中的一天
type WorkingDayResponse struct {
	Date       string `json:"date"`
	DayName    string `json:"day_name"`
	Hijri      string `json:"hijri"`
	IsWeekend  bool   `json:"is_weekend"`
	IsVacation bool   `json:"is_vacation"`
	IsWorking  bool   `json:"is_working"`
}

// WorkingDaysResponse 学期日历
type WorkingDaysResponse struct {
	SemesterID   string               `json:"semester_id"`
	WorkingCount int                  `json:"working_count"`
	Days         []WorkingDayResponse `json:"days"`
}
