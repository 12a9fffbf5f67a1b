package dto

import "Orion_Tube/internal/model"

// PageResponse 分页结果，totalPages/hasNextPage 由总数推算
type PageResponse[T any] struct {
	Items       []T   `json:"items"`
	TotalCount  int64 `json:"totalCount"`
	Page        int   `json:"page"`
	PageSize    int   `json:"pageSize"`
	TotalPages  int64 `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
}

func ToPageResponse[M any, T any](p *model.Page[M], convert func(*M) T) PageResponse[T] {
	items := make([]T, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, convert(&p.Items[i]))
	}
	var totalPages int64
	if p.PageSize > 0 {
		totalPages = (p.TotalCount + int64(p.PageSize) - 1) / int64(p.PageSize)
	}
	return PageResponse[T]{
		Items:       items,
		TotalCount:  p.TotalCount,
		Page:        p.Page,
		PageSize:    p.PageSize,
		TotalPages:  totalPages,
		HasNextPage: int64(p.Page) < totalPages,
	}
}

// ToList 列表转换，nil 也会输出成 []
func ToList[M any, T any](items []M, convert func(*M) T) []T {
	out := make([]T, 0, len(items))
	for i := range items {
		out = append(out, convert(&items[i]))
	}
	return out
}
