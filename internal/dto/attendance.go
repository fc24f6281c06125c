package dto

import "github.com/mshabab123/hlqh-sub001/internal/core/attendance"

// ── 出勤模块 DTO ──

// AttendanceCellRequest 定位一个出勤单元格
type AttendanceCellRequest struct {
	SemesterID string `json:"semester_id" binding:"required,uuid"`
	ClassID    string `json:"class_id"    binding:"required,uuid"`
	StudentID  string `json:"student_id"  binding:"required,max=20"`
	Date       string `json:"date"        binding:"required,isodate"`
}

// MarkAttendanceRequest 显式记录出勤
type MarkAttendanceRequest struct {
	AttendanceCellRequest
	IsPresent *bool   `json:"is_present" binding:"required"`
	Notes     *string `json:"notes"      binding:"omitempty,max=500"`
	Version   *int    `json:"version"    binding:"omitempty,min=1"` // 提供时做乐观锁校验
}

// ToggleAttendanceRequest 切换出勤状态
type ToggleAttendanceRequest struct {
	AttendanceCellRequest
}

// AutoMarkRequest 自动补记
// Date 为空时处理学期开始至昨天的全部工作日
type AutoMarkRequest struct {
	SemesterID string  `json:"semester_id" binding:"required,uuid"`
	ClassID    string  `json:"class_id"    binding:"required,uuid"`
	Date       *string `json:"date"        binding:"omitempty,isodate"`
}

// AutoMarkResponse 自动补记结果
type AutoMarkResponse struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Days     int `json:"days"`
	Students int `json:"students"`
}

// VerdictResponse 某一天的出勤结论
type VerdictResponse struct {
	Date       string `json:"date"`
	DayName    string `json:"day_name"`
	Hijri      string `json:"hijri"`
	IsPresent  bool   `json:"is_present"`
	Source     string `json:"source"`
	IsToday    bool   `json:"is_today"`
	IsUpcoming bool   `json:"is_upcoming"`
}

// StudentGridResponse 单个学生的整学期出勤网格
type StudentGridResponse struct {
	SemesterID string             `json:"semester_id"`
	ClassID    string             `json:"class_id"`
	StudentID  string             `json:"student_id"`
	Today      string             `json:"today"`
	Days       []VerdictResponse  `json:"days"`
	Summary    attendance.Summary `json:"summary"`
}

// ToggleResponse 切换结果，失败回滚时 Verdict 为恢复后的原结论
type ToggleResponse struct {
	Verdict VerdictResponse    `json:"verdict"`
	Summary attendance.Summary `json:"summary"`
}

// AttendanceRecordResponse 出勤记录
type AttendanceRecordResponse struct {
	ID         string `json:"id"`
	SemesterID string `json:"semester_id"`
	ClassID    string `json:"class_id"`
	StudentID  string `json:"student_id"`
	Date       string `json:"date"`
	IsPresent  bool   `json:"is_present"`
	IsExplicit bool   `json:"is_explicit"`
	HasGrade   bool   `json:"has_grade"`
	Notes      string `json:"notes,omitempty"`
	Version    int    `json:"version"`
}

// StudentSummaryResponse 班级汇总中的一行
type StudentSummaryResponse struct {
	StudentID string             `json:"student_id"`
	Name      string             `json:"name"`
	Summary   attendance.Summary `json:"summary"`
}

// ClassSummaryResponse 班级出勤汇总
type ClassSummaryResponse struct {
	SemesterID string                   `json:"semester_id"`
	ClassID    string                   `json:"class_id"`
	Students   []StudentSummaryResponse `json:"students"`
}
