package hijri

import (
	"fmt"
	"strings"
	"time"
)

// DayNames 阿拉伯语星期名称，0 为星期日
var DayNames = [7]string{
	"الأحد", "الاثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت",
}

var gregorianMonths = [12]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// Formatted 展示用的日期字符串
type Formatted struct {
	DayName   string `json:"day_name"`
	Gregorian string `json:"gregorian"`
	Hijri     string `json:"hijri"`
	Full      string `json:"full"`
	Short     string `json:"short"`
}

// FormatOptions 控制 Full 中包含哪些部分，零值表示全部包含
type FormatOptions struct {
	OmitDayName   bool
	OmitGregorian bool
	OmitHijri     bool
}

// Formatter 组合星期、公历与回历的展示
type Formatter struct {
	conv Converter
}

// NewFormatter 创建展示器
func NewFormatter(conv Converter) *Formatter {
	return &Formatter{conv: conv}
}

// DayName 阿拉伯语星期名称
func DayName(t time.Time) string {
	return DayNames[int(t.Weekday())]
}

// GregorianString 阿拉伯语公历日期，带"م"后缀
func GregorianString(t time.Time) string {
	return fmt.Sprintf("%d %s %dم", t.Day(), gregorianMonths[t.Month()-1], t.Year())
}

// Format 生成完整展示
func (f *Formatter) Format(t time.Time, opts FormatOptions) Formatted {
	h := Must(f.conv, t)
	out := Formatted{
		DayName:   DayName(t),
		Gregorian: GregorianString(t),
		Hijri:     h.Formatted,
		Short:     fmt.Sprintf("%s %d/%d - %d %s", DayName(t), t.Day(), int(t.Month()), h.Day, h.Month),
	}

	parts := make([]string, 0, 3)
	if !opts.OmitDayName {
		parts = append(parts, out.DayName)
	}
	if !opts.OmitGregorian {
		parts = append(parts, out.Gregorian)
	}
	if !opts.OmitHijri {
		parts = append(parts, out.Hijri)
	}
	out.Full = strings.Join(parts, " - ")
	return out
}

// Short 简短回历：日/月名前三个字符/年هـ
func (f *Formatter) Short(t time.Time) string {
	h := Must(f.conv, t)
	month := []rune(h.Month)
	if len(month) > 3 {
		month = month[:3]
	}
	return fmt.Sprintf("%d/%s/%dهـ", h.Day, string(month), h.Year)
}

// Convert 直接返回回历日期
func (f *Formatter) Convert(t time.Time) Date {
	return Must(f.conv, t)
}
