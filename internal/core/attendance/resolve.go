// Package attendance 考勤判定引擎
//
// 每个学生每天的出勤结论由三类信号合成：显式考勤记录、成绩时间戳推断、缺省。
// 本包只做纯计算，数据获取与持久化由调用方负责。
package attendance

import (
	"math"
	"time"

	"github.com/mshabab123/hlqh-sub001/internal/core/calendar"
)

// Source 出勤结论来源
type Source string

const (
	SourceManual         Source = "manual"
	SourceGradeBased     Source = "grade-based"
	SourceGradeInference Source = "grade-inference"
	SourceNone           Source = "none"
)

// Record 考勤记录（手动标记或自动扫描生成）
type Record struct {
	StudentID  string
	Date       time.Time
	IsPresent  bool
	IsExplicit bool
	HasGrade   bool
	Notes      string
	UpdatedAt  time.Time
}

// Verdict 某学生某天的出勤结论
type Verdict struct {
	Date       time.Time
	IsPresent  bool
	Source     Source
	IsToday    bool
	IsUpcoming bool
}

// Recorded 结论是否来自一条显式考勤记录
func (v Verdict) Recorded() bool {
	return v.Source == SourceManual || v.Source == SourceGradeBased
}

// Resolve 判定 studentID 在 date 当天的出勤
// 优先级：考勤记录 > 当天成绩推断 > 缺省缺勤
func Resolve(date time.Time, studentID string, records []Record, gradeTimes []time.Time, today time.Time) Verdict {
	day := calendar.DateOf(date, nil)
	today = calendar.DateOf(today, nil)

	v := Verdict{
		Date:       day,
		Source:     SourceNone,
		IsToday:    day.Equal(today),
		IsUpcoming: day.After(today),
	}

	if rec, ok := latestRecord(day, studentID, records); ok {
		v.IsPresent = rec.IsPresent
		v.Source = SourceManual
		if rec.HasGrade {
			v.Source = SourceGradeBased
		}
		return v
	}

	for _, g := range gradeTimes {
		if calendar.DateOf(g, nil).Equal(day) {
			v.IsPresent = true
			v.Source = SourceGradeInference
			return v
		}
	}

	return v
}

// latestRecord 同一 (学生, 日期) 存在多条记录时取最新的一条
func latestRecord(day time.Time, studentID string, records []Record) (Record, bool) {
	var (
		found Record
		ok    bool
	)
	for _, r := range records {
		if r.StudentID != studentID || !calendar.DateOf(r.Date, nil).Equal(day) {
			continue
		}
		if !ok || r.UpdatedAt.After(found.UpdatedAt) {
			found = r
			ok = true
		}
	}
	return found, ok
}

// ResolveSemester 生成单个学生整学期的出勤网格
// 有记录但不在工作日集合中的日期（如周末补课）会被并入后重新排序
func ResolveSemester(sem calendar.Semester, studentID string, records []Record, gradeTimes []time.Time, today time.Time) []Verdict {
	working := calendar.GenerateWorkingDays(sem)

	var extra []time.Time
	for _, r := range records {
		if r.StudentID == studentID {
			extra = append(extra, r.Date)
		}
	}
	days := calendar.MergeDates(working, extra)

	verdicts := make([]Verdict, 0, len(days))
	for _, d := range days {
		verdicts = append(verdicts, Resolve(d, studentID, records, gradeTimes, today))
	}
	return verdicts
}

// Summary 出勤统计
//
// AbsencePercentage 为主口径：仅以显式记录计缺勤，分母为网格全部工作日。
// PresencePercentage 为辅助展示口径：包含成绩推断的出勤天数，两者不可互相换算。
type Summary struct {
	TotalWorkingDays   int `json:"total_working_days"`
	ElapsedDays        int `json:"elapsed_days"`
	UpcomingDays       int `json:"upcoming_days"`
	RecordedDays       int `json:"recorded_days"`
	PresentDays        int `json:"present_days"`
	AbsentDays         int `json:"absent_days"`
	InferredDays       int `json:"inferred_days"`
	GradeBasedDays     int `json:"grade_based_days"`
	AbsencePercentage  int `json:"absence_percentage"`
	PresencePercentage int `json:"presence_percentage"`
}

// Summarize 汇总网格，未来日期不计入出勤/缺勤
func Summarize(verdicts []Verdict) Summary {
	s := Summary{TotalWorkingDays: len(verdicts)}
	recordedPresent := 0

	for _, v := range verdicts {
		if v.IsUpcoming {
			s.UpcomingDays++
			continue
		}
		s.ElapsedDays++

		if v.IsPresent {
			s.PresentDays++
		}
		switch v.Source {
		case SourceManual, SourceGradeBased:
			s.RecordedDays++
			if v.IsPresent {
				recordedPresent++
			}
			if v.Source == SourceGradeBased {
				s.GradeBasedDays++
			}
		case SourceGradeInference:
			s.InferredDays++
		}
	}

	s.AbsentDays = s.RecordedDays - recordedPresent
	s.AbsencePercentage = percent(s.AbsentDays, s.TotalWorkingDays)
	s.PresencePercentage = percent(s.PresentDays, s.TotalWorkingDays)
	return s
}

func percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}
