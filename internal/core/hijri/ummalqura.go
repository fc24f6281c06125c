package hijri

import (
	"fmt"
	"time"

	hijrilib "github.com/hablullah/go-hijri"
)

// UmmAlQura 基于乌姆古拉历表的精确换算，仅覆盖历表范围内的日期
type UmmAlQura struct{}

func (UmmAlQura) ToHijri(t time.Time) (Date, error) {
	d := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
	h, err := hijrilib.CreateUmmAlQuraDate(d)
	if err != nil {
		return Date{}, fmt.Errorf("乌姆古拉换算失败: %w", err)
	}
	if h.Month < 1 || h.Month > 12 || h.Day < 1 {
		return Date{}, fmt.Errorf("乌姆古拉换算结果无效: %d-%d-%d", h.Year, h.Month, h.Day)
	}
	return newDate(int(h.Day), int(h.Month)-1, int(h.Year)), nil
}
