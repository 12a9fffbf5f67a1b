package model

import "fmt"

// TargetKind 可以被点赞的对象种类
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

// LikeTarget 点赞对象：种类+ID，一条点赞有且只有一个对象。
// 只通过 VideoTarget/CommentTarget/TweetTarget 构造
type LikeTarget struct {
	Kind TargetKind `gorm:"column:target_kind;size:16;not null;uniqueIndex:idx_like_actor_target,priority:2;index:idx_like_target,priority:1"`
	ID   uint64     `gorm:"column:target_id;not null;uniqueIndex:idx_like_actor_target,priority:3;index:idx_like_target,priority:2"`
}

func VideoTarget(id uint64) LikeTarget   { return LikeTarget{Kind: TargetVideo, ID: id} }
func CommentTarget(id uint64) LikeTarget { return LikeTarget{Kind: TargetComment, ID: id} }
func TweetTarget(id uint64) LikeTarget   { return LikeTarget{Kind: TargetTweet, ID: id} }

func (t LikeTarget) String() string {
	return fmt.Sprintf("%s:%d", t.Kind, t.ID)
}

// 用户与点赞对象的关联关系，uniqueIndex保证一个用户对同一个对象只有一条记录
type Like struct {
	BaseModel
	LikedBy uint64     `gorm:"not null;uniqueIndex:idx_like_actor_target,priority:1"`
	Target  LikeTarget `gorm:"embedded"`
}

func (Like) TableName() string {
	return "likes"
}
