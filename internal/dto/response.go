package dto

// ── 通用 ──

// ListResponse 列表响应
type ListResponse[T any] struct {
	List  []T `json:"list"`
	Total int `json:"total"`
}

// NewList 构造列表响应，nil 切片输出为 []
func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{List: items, Total: len(items)}
}
