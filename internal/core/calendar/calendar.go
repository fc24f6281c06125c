// Package calendar 学期工作日历生成
package calendar

import (
	"sort"
	"time"
)

// DateLayout ISO 日期格式
const DateLayout = "2006-01-02"

// Semester 学期日历规则（纯数据，不依赖持久化模型）
type Semester struct {
	ID           string
	StartDate    time.Time
	EndDate      time.Time
	WeekendDays  []int    // 0=周日 .. 6=周六
	VacationDays []string // "2006-01-02"
}

// WorkingDay 派生的日历日，每次请求重新计算
type WorkingDay struct {
	Date       time.Time
	IsWeekend  bool
	IsVacation bool
}

// IsWorking 既非周末也非假期
func (d WorkingDay) IsWorking() bool {
	return !d.IsWeekend && !d.IsVacation
}

// DateOf 将任意时刻归一化为 loc 时区下的日历日（UTC 零点表示）
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Key 日历日的 ISO 字符串键
func Key(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate 解析 ISO 日期，返回 UTC 零点
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// valid 起止日期均存在且 start <= end
func (s Semester) valid() bool {
	if s.StartDate.IsZero() || s.EndDate.IsZero() {
		return false
	}
	return !DateOf(s.EndDate, nil).Before(DateOf(s.StartDate, nil))
}

// Days 返回学期内每一个日历日及其周末/假期标记
// 日期缺失或非法时返回空切片
func Days(s Semester) []WorkingDay {
	if !s.valid() {
		return []WorkingDay{}
	}

	weekend := make(map[time.Weekday]bool, len(s.WeekendDays))
	for _, d := range s.WeekendDays {
		if d >= 0 && d <= 6 {
			weekend[time.Weekday(d)] = true
		}
	}
	vacation := make(map[string]bool, len(s.VacationDays))
	for _, v := range s.VacationDays {
		vacation[v] = true
	}

	start := DateOf(s.StartDate, nil)
	end := DateOf(s.EndDate, nil)

	days := make([]WorkingDay, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, WorkingDay{
			Date:       d,
			IsWeekend:  weekend[d.Weekday()],
			IsVacation: vacation[Key(d)],
		})
	}
	return days
}

// GenerateWorkingDays 生成学期的教学日序列：升序、无重复
func GenerateWorkingDays(s Semester) []time.Time {
	days := Days(s)
	result := make([]time.Time, 0, len(days))
	for _, d := range days {
		if d.IsWorking() {
			result = append(result, d.Date)
		}
	}
	return result
}

// MergeDates 将存在考勤记录的日期并入工作日集合并重新升序排列
// 周末补课等记录不能被静默丢弃
func MergeDates(working []time.Time, extra []time.Time) []time.Time {
	seen := make(map[string]bool, len(working)+len(extra))
	merged := make([]time.Time, 0, len(working)+len(extra))
	for _, group := range [][]time.Time{working, extra} {
		for _, t := range group {
			d := DateOf(t, nil)
			k := Key(d)
			if seen[k] {
				continue
			}
			seen[k] = true
			merged = append(merged, d)
		}
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Before(merged[j]) })
	return merged
}

// Contains 判断日期是否落在学期起止范围内
func (s Semester) Contains(t time.Time) bool {
	if !s.valid() {
		return false
	}
	d := DateOf(t, nil)
	return !d.Before(DateOf(s.StartDate, nil)) && !d.After(DateOf(s.EndDate, nil))
}
