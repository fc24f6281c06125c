package quran

import "math"

// Position 学生最近确认的背诵位置
type Position struct {
	SurahID    int `json:"surah_id"`
	AyahNumber int `json:"ayah_number"`
}

// Goal 背诵目标位置
type Goal struct {
	TargetSurahID    int `json:"target_surah_id"`
	TargetAyahNumber int `json:"target_ayah_number"`
}

// GoalProgress 按节计的目标进度
// 目标达成时为哨兵值 {100, 1, 1}，不是真实节数
type GoalProgress struct {
	Percentage      int `json:"percentage"`
	MemorizedVerses int `json:"memorized_verses"`
	TotalGoalVerses int `json:"total_goal_verses"`
}

// PageProgress 按页计的目标进度，遍历规则与 GoalProgress 相同
type PageProgress struct {
	Percentage     int `json:"percentage"`
	MemorizedPages int `json:"memorized_pages"`
	TotalGoalPages int `json:"total_goal_pages"`
}

// segment 路径上某章需要覆盖的节数
type segment struct {
	surah   Surah
	covered int
}

type spanStatus int

const (
	spanInvalid spanStatus = iota
	spanAchieved
	spanPending
)

// goalSpan 计算从当前位置到目标位置（倒序方向）需要覆盖的各章节数
func goalSpan(current *Position, goal Goal) ([]segment, spanStatus) {
	target, ok := ByID(goal.TargetSurahID)
	if !ok || goal.TargetAyahNumber <= 0 {
		return nil, spanInvalid
	}
	targetAyah := clamp(goal.TargetAyahNumber, 0, target.AyahCount)

	// 未设置当前位置：从第 114 章起算
	if current == nil || current.SurahID == 0 {
		var segs []segment
		Backward(SurahCount, target.ID, func(s Surah) {
			if s.ID == target.ID {
				segs = append(segs, segment{surah: s, covered: targetAyah})
				return
			}
			segs = append(segs, segment{surah: s, covered: s.AyahCount})
		})
		return segs, spanPending
	}

	cur, ok := ByID(current.SurahID)
	if !ok {
		return nil, spanInvalid
	}
	curAyah := clamp(current.AyahNumber, 0, cur.AyahCount)

	switch {
	case cur.ID == target.ID:
		if curAyah >= targetAyah {
			return nil, spanAchieved
		}
		return []segment{{surah: target, covered: targetAyah - curAyah}}, spanPending

	case cur.ID > target.ID:
		var segs []segment
		Backward(cur.ID, target.ID, func(s Surah) {
			switch s.ID {
			case cur.ID:
				segs = append(segs, segment{surah: s, covered: s.AyahCount - curAyah})
			case target.ID:
				segs = append(segs, segment{surah: s, covered: targetAyah})
			default:
				segs = append(segs, segment{surah: s, covered: s.AyahCount})
			}
		})
		return segs, spanPending

	default:
		// 当前位置已越过目标
		return nil, spanAchieved
	}
}

// ComputeGoalProgress 计算按节的目标进度
func ComputeGoalProgress(current *Position, goal Goal) GoalProgress {
	segs, status := goalSpan(current, goal)
	switch status {
	case spanInvalid:
		return GoalProgress{}
	case spanAchieved:
		return GoalProgress{Percentage: 100, MemorizedVerses: 1, TotalGoalVerses: 1}
	}

	total := 0
	for _, s := range segs {
		total += s.covered
	}
	return GoalProgress{
		Percentage:      percentage(0, total),
		MemorizedVerses: 0,
		TotalGoalVerses: total,
	}
}

// ComputeGoalPages 计算按页的目标进度，用于展示"剩余页数"
func ComputeGoalPages(current *Position, goal Goal) PageProgress {
	segs, status := goalSpan(current, goal)
	switch status {
	case spanInvalid:
		return PageProgress{}
	case spanAchieved:
		return PageProgress{Percentage: 100, MemorizedPages: 1, TotalGoalPages: 1}
	}

	total := 0
	for _, s := range segs {
		total += PagesForAyahs(s.surah, s.covered)
	}
	return PageProgress{
		Percentage:     percentage(0, total),
		MemorizedPages: 0,
		TotalGoalPages: total,
	}
}

// PagesForAyahs 某章覆盖 ayahs 节时折算的页数，向上取整
func PagesForAyahs(s Surah, ayahs int) int {
	if ayahs <= 0 || s.AyahCount <= 0 {
		return 0
	}
	if ayahs >= s.AyahCount {
		return s.TotalPages
	}
	return (ayahs*s.TotalPages + s.AyahCount - 1) / s.AyahCount
}

// MemorizationTotals 全本背诵统计（从第 114 章到当前位置）
type MemorizationTotals struct {
	TotalAyahs      int     `json:"total_ayahs"`
	MemorizedAyahs  int     `json:"memorized_ayahs"`
	RemainingAyahs  int     `json:"remaining_ayahs"`
	AyahPercentage  float64 `json:"ayah_percentage"`
	TotalPages      int     `json:"total_pages"`
	MemorizedPages  int     `json:"memorized_pages"`
	RemainingPages  int     `json:"remaining_pages"`
	PagePercentage  float64 `json:"page_percentage"`
	CompletedSurahs int     `json:"completed_surahs"`
}

// ComputeMemorized 汇总当前位置之前已背诵的节数与页数
func ComputeMemorized(current *Position) MemorizationTotals {
	totals := MemorizationTotals{
		TotalAyahs:     TotalAyahs(),
		RemainingAyahs: TotalAyahs(),
		TotalPages:     TotalPages,
		RemainingPages: TotalPages,
	}
	if current == nil || current.AyahNumber <= 0 {
		return totals
	}
	cur, ok := ByID(current.SurahID)
	if !ok {
		return totals
	}
	curAyah := clamp(current.AyahNumber, 0, cur.AyahCount)

	Backward(SurahCount, cur.ID, func(s Surah) {
		if s.ID == cur.ID {
			totals.MemorizedAyahs += curAyah
			totals.MemorizedPages += PagesForAyahs(s, curAyah)
			return
		}
		totals.MemorizedAyahs += s.AyahCount
		totals.MemorizedPages += s.TotalPages
		totals.CompletedSurahs++
	})
	if curAyah == cur.AyahCount {
		totals.CompletedSurahs++
	}

	// 各章页数存在跨页重叠，累计值可能超过总页数
	totals.MemorizedPages = clamp(totals.MemorizedPages, 0, TotalPages)
	totals.RemainingAyahs = totals.TotalAyahs - totals.MemorizedAyahs
	totals.RemainingPages = TotalPages - totals.MemorizedPages
	totals.AyahPercentage = oneDecimal(float64(totals.MemorizedAyahs) / float64(totals.TotalAyahs) * 100)
	totals.PagePercentage = oneDecimal(float64(totals.MemorizedPages) / float64(TotalPages) * 100)
	return totals
}

func percentage(done, total int) int {
	if total == 0 {
		return 0
	}
	return clamp(int(math.Round(float64(done)/float64(total)*100)), 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func oneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
