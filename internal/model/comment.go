package model

type Comment struct {
	BaseModel
	VideoID uint64 `gorm:"not null;index"` // index索引，加速按视频查评论
	OwnerID uint64 `gorm:"not null;index"`
	Content string `gorm:"type:text;not null"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) GetOwnerID() uint64 {
	return c.OwnerID
}
