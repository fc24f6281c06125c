package dto

import "github.com/mshabab123/hlqh-sub001/internal/core/quran"

// ── 背诵模块 DTO ──

// SetGoalRequest 设置背诵目标（整体替换）
type SetGoalRequest struct {
	ClassID          string `json:"class_id"           binding:"required,uuid"`
	TargetSurahID    int    `json:"target_surah_id"    binding:"required,min=1,max=114"`
	TargetAyahNumber int    `json:"target_ayah_number" binding:"required,min=1"`
}

// SetPositionRequest 更新当前背诵位置
type SetPositionRequest struct {
	SurahID    int `json:"surah_id"    binding:"required,min=1,max=114"`
	AyahNumber int `json:"ayah_number" binding:"min=0"`
}

// ProgressResponse 学生背诵进度
type ProgressResponse struct {
	StudentID    string                   `json:"student_id"`
	ClassID      string                   `json:"class_id,omitempty"`
	Position     *quran.Position          `json:"position"`
	SurahName    string                   `json:"surah_name,omitempty"`
	Goal         *quran.Goal              `json:"goal"`
	GoalSurah    string                   `json:"goal_surah,omitempty"`
	GoalProgress *quran.GoalProgress      `json:"goal_progress"`
	PageProgress *quran.PageProgress      `json:"page_progress"`
	Totals       quran.MemorizationTotals `json:"totals"`
}
