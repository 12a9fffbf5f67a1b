package model

import "time"

// 以下是联表聚合出来的只读投影，不对应任何表，字段名和查询里的列别名一一对应

// OwnerSummary 作者的公开信息，只有用户名、昵称、头像，从不带出完整的User
type OwnerSummary struct {
	ID        uint64
	Username  string
	FullName  string
	AvatarURL string
}

type VideoCard struct {
	ID           uint64
	Title        string
	Description  string
	VideoURL     string
	ThumbnailURL string
	Duration     float64
	Views        uint64
	IsPublished  bool
	CreatedAt    time.Time
	Owner        OwnerSummary `gorm:"embedded;embeddedPrefix:owner_"`
}

type VideoDetail struct {
	VideoCard
	LikesCount            int64
	IsLiked               bool
	OwnerSubscribersCount int64
	OwnerIsSubscribed     bool
}

type LikedVideo struct {
	VideoCard
	LikedAt time.Time
}

type CommentView struct {
	ID         uint64
	VideoID    uint64
	Content    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Owner      OwnerSummary `gorm:"embedded;embeddedPrefix:owner_"`
	LikesCount int64
	IsLiked    bool
}

type TweetView struct {
	ID         uint64
	Content    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Owner      OwnerSummary `gorm:"embedded;embeddedPrefix:owner_"`
	LikesCount int64
	IsLiked    bool
}

// SubscriberView 频道的一个订阅者，附带该订阅者自己的粉丝数，以及频道是否回关了他
type SubscriberView struct {
	ID                     uint64
	Username               string
	FullName               string
	AvatarURL              string
	SubscribersCount       int64
	SubscribedToSubscriber bool
	SubscribedAt           time.Time
}

// ChannelView 用户订阅的一个频道，附带该频道最新发布的一个视频
type ChannelView struct {
	ID            uint64
	Username      string
	FullName      string
	AvatarURL     string
	SubscribedAt  time.Time
	LatestVideoID *uint64
	LatestVideo   *VideoCard `gorm:"-"`
}

// ChannelVideo 创作者后台看到的视频，包括未发布的
type ChannelVideo struct {
	ID           uint64
	Title        string
	Description  string
	VideoURL     string
	ThumbnailURL string
	Duration     float64
	Views        uint64
	IsPublished  bool
	CreatedAt    time.Time
	LikesCount   int64
}

type ChannelStats struct {
	TotalSubscribers int64
	TotalViews       int64
	TotalVideos      int64
	TotalLikes       int64
}
