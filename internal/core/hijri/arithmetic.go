package hijri

import (
	"math"
	"time"
)

const (
	meanYearDays  = 354.37
	meanMonthDays = 29.53
	secondsPerDay = 86400
)

// 伊斯兰历元：公元 622-07-16
var epoch = time.Date(622, time.July, 16, 0, 0, 0, 0, time.UTC)

// Arithmetic 基于平均年长与月长的近似换算，结果确定但不保证精确到日
type Arithmetic struct{}

// DaysSinceEpoch 按日历日期计算距历元的整天数
// 跨度约 1400 年会超出 time.Duration 范围，因此用 Unix 秒计算
func DaysSinceEpoch(t time.Time) int64 {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	secs := d.Unix() - epoch.Unix()
	days := secs / secondsPerDay
	if secs%secondsPerDay != 0 && secs < 0 {
		days--
	}
	return days
}

func (Arithmetic) ToHijri(t time.Time) (Date, error) {
	days := float64(DaysSinceEpoch(t))

	year := int(math.Floor(days/meanYearDays)) + 1
	if year < 1 {
		year = 1
	}
	rem := math.Mod(days, meanYearDays)
	month := int(math.Floor(rem / meanMonthDays))
	day := int(math.Floor(math.Mod(rem, meanMonthDays))) + 1
	if day < 1 {
		day = 1
	}
	return newDate(day, month, year), nil
}
