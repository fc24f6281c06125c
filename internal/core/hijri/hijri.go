// Package hijri 公历到回历的日期换算与阿拉伯语日期展示
package hijri

import (
	"fmt"
	"time"
)

// Months 回历月份名称，按月序排列
var Months = [12]string{
	"محرم", "صفر", "ربيع الأول", "ربيع الثاني", "جمادى الأولى", "جمادى الثانية",
	"رجب", "شعبان", "رمضان", "شوال", "ذو القعدة", "ذو الحجة",
}

// 换算模式
const (
	ModeUmmAlQura  = "ummalqura"
	ModeArithmetic = "arithmetic"
)

// Date 回历日期
type Date struct {
	Day        int    `json:"day"`
	Month      string `json:"month"`
	MonthIndex int    `json:"month_index"` // 0..11
	Year       int    `json:"year"`
	Formatted  string `json:"formatted"`
}

// Converter 公历到回历换算
type Converter interface {
	ToHijri(t time.Time) (Date, error)
}

func newDate(day, monthIndex, year int) Date {
	monthIndex = ((monthIndex % 12) + 12) % 12
	return Date{
		Day:        day,
		Month:      Months[monthIndex],
		MonthIndex: monthIndex,
		Year:       year,
		Formatted:  fmt.Sprintf("%d %s %dهـ", day, Months[monthIndex], year),
	}
}

// fallbackConverter 主换算失败时改用近似算法，错误不向上传播
type fallbackConverter struct {
	primary    Converter
	fallback   Arithmetic
	onFallback func(t time.Time, err error)
}

// WithFallback 包装主换算器；onFallback 可为 nil
func WithFallback(primary Converter, onFallback func(t time.Time, err error)) Converter {
	return &fallbackConverter{primary: primary, onFallback: onFallback}
}

func (c *fallbackConverter) ToHijri(t time.Time) (Date, error) {
	d, err := c.primary.ToHijri(t)
	if err == nil {
		return d, nil
	}
	if c.onFallback != nil {
		c.onFallback(t, err)
	}
	return c.fallback.ToHijri(t)
}

// New 按配置模式创建换算器
// 未知模式返回错误；umm al-qura 模式总是带近似兜底
func New(mode string, onFallback func(t time.Time, err error)) (Converter, error) {
	switch mode {
	case ModeUmmAlQura, "":
		return WithFallback(UmmAlQura{}, onFallback), nil
	case ModeArithmetic:
		return Arithmetic{}, nil
	default:
		return nil, fmt.Errorf("未知的回历换算模式: %s", mode)
	}
}

// Must 换算并忽略错误，只适用于不会失败的换算器
func Must(c Converter, t time.Time) Date {
	d, err := c.ToHijri(t)
	if err != nil {
		d, _ = Arithmetic{}.ToHijri(t)
	}
	return d
}
