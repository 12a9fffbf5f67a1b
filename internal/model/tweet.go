package model

// Tweet 频道主发的短文字动态
type Tweet struct {
	BaseModel
	OwnerID uint64 `gorm:"not null;index"`
	Content string `gorm:"type:text;not null"`
}

func (Tweet) TableName() string {
	return "tweets"
}

func (t *Tweet) GetOwnerID() uint64 {
	return t.OwnerID
}
