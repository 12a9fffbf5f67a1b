package model

import "time"

type User struct {
	BaseModel          // 包括 ID, CreatedAt, UpdatedAt
	Username  string   `gorm:"size:64;unique;not null"`
	FullName  string   `gorm:"size:128;not null"`
	Password  string   `gorm:"not null"`
	Avatar    MediaRef `gorm:"embedded;embeddedPrefix:avatar_"`
}

// WatchHistory 观看记录，同一个用户对同一个视频只保留第一次观看（有序集合，只追加）
type WatchHistory struct {
	ID        uint64 `gorm:"primarykey"`
	UserID    uint64 `gorm:"not null;uniqueIndex:idx_history_user_video"`
	VideoID   uint64 `gorm:"not null;uniqueIndex:idx_history_user_video"`
	CreatedAt time.Time
}

func (WatchHistory) TableName() string {
	return "watch_histories"
}
