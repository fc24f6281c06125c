// Package quran 古兰经章节参考表与背诵进度计算
//
// 背诵按倒序推进：学生从第 114 章开始向第 1 章背诵，
// 因此"更靠前"意味着更小的章节号，或同一章内更大的节号。
package quran

// SurahCount 章节总数
const SurahCount = 114

// TotalPages 标准版本总页数
const TotalPages = 604

// Surah 章节参考数据
type Surah struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	AyahCount  int    `json:"ayah_count"`
	StartPage  int    `json:"start_page"`
	EndPage    int    `json:"end_page"`
	TotalPages int    `json:"total_pages"`
}

// ValidID 章节号是否在 1..114
func ValidID(id int) bool {
	return id >= 1 && id <= SurahCount
}

// ByID 按章节号查找
func ByID(id int) (Surah, bool) {
	if !ValidID(id) {
		return Surah{}, false
	}
	return surahs[id-1], true
}

// ByName 按阿拉伯语名称查找
func ByName(name string) (Surah, bool) {
	for _, s := range surahs {
		if s.Name == name {
			return s, true
		}
	}
	return Surah{}, false
}

// All 按标准顺序返回全部章节副本
func All() []Surah {
	out := make([]Surah, SurahCount)
	copy(out, surahs[:])
	return out
}

// TotalAyahs 全部节数
func TotalAyahs() int {
	n := 0
	for _, s := range surahs {
		n += s.AyahCount
	}
	return n
}

// Backward 沿背诵方向从 from 走到 to（from >= to，均含），逐章回调
// 方向固定为章节号递减；from < to 或越界时不回调
func Backward(from, to int, fn func(s Surah)) {
	if !ValidID(from) || !ValidID(to) || from < to {
		return
	}
	for id := from; id >= to; id-- {
		fn(surahs[id-1])
	}
}
