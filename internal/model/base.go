package model

import (
	"time"
)

// 统一使用uint64主键。所有实体都是物理删除，没有DeletedAt：
// 取消点赞/取消订阅后，关联表上的联合唯一索引必须能被重新满足
type BaseModel struct {
	ID        uint64 `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MediaRef 外部对象存储里的一个文件：URL用于展示，Key用于删除
type MediaRef struct {
	URL string `gorm:"size:512"`
	Key string `gorm:"size:255"`
}

// Owned 由某个用户独占修改/删除权的实体（视频、评论、动态）
type Owned interface {
	GetOwnerID() uint64
}

// Page 在计算结果集（而不是存储的表）上做的分页
type Page[T any] struct {
	Items      []T
	TotalCount int64
	Page       int
	PageSize   int
}
