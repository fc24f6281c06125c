package dto

import "github.com/mshabab123/hlqh-sub001/internal/core/hijri"

// HijriQuery 回历查询参数，date 缺省为今天
type HijriQuery struct {
	Date string `form:"date" binding:"omitempty,isodate"`
}

// HijriResponse 日期展示
type HijriResponse struct {
	Date      string          `json:"date"`
	Hijri     hijri.Date      `json:"hijri"`
	Formatted hijri.Formatted `json:"formatted"`
	Short     string          `json:"short"`
}
