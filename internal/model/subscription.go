package model

// Subscription 订阅关系：Subscriber 订阅了 Channel（频道也是一个User）。
// 联合唯一索引保证一对用户只有一条记录，不允许自己订阅自己（写入前校验）
type Subscription struct {
	BaseModel
	SubscriberID uint64 `gorm:"not null;uniqueIndex:idx_subscriber_channel,priority:1"`
	ChannelID    uint64 `gorm:"not null;uniqueIndex:idx_subscriber_channel,priority:2;index"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
