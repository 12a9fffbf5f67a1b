package repository

import (
	"context"

	"gorm.io/gorm"

	"Orion_Tube/internal/model"
)

type SubscriptionRepository interface {
	Find(ctx context.Context, subscriberID, channelID uint64) (*model.Subscription, error)
	Create(ctx context.Context, sub *model.Subscription) error
	DeleteByID(ctx context.Context, subID uint64) (int64, error)
	CountByChannel(ctx context.Context, channelID uint64) (int64, error)

	// 频道的订阅者：每个订阅者自己的粉丝数，以及频道是否回关了他
	ListSubscribers(ctx context.Context, channelID uint64) ([]model.SubscriberView, error)
	// 用户订阅的频道，LatestVideoID 是该频道最新发布的视频，没有则为nil
	ListChannels(ctx context.Context, subscriberID uint64) ([]model.ChannelView, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Find(ctx context.Context, subscriberID, channelID uint64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *subscriptionRepository) DeleteByID(ctx context.Context, subID uint64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.Subscription{}, subID)
	return result.RowsAffected, result.Error
}

func (r *subscriptionRepository) CountByChannel(ctx context.Context, channelID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID uint64) ([]model.SubscriberView, error) {
	subscribers := make([]model.SubscriberView, 0)
	columns := "u.id, u.username, u.full_name, u.avatar_url, s.created_at AS subscribed_at, " +
		"(SELECT COUNT(*) FROM subscriptions s2 WHERE s2.channel_id = u.id) AS subscribers_count, " +
		"EXISTS(SELECT 1 FROM subscriptions s3 WHERE s3.channel_id = u.id AND s3.subscriber_id = s.channel_id) AS subscribed_to_subscriber"
	err := r.db.WithContext(ctx).Table("subscriptions AS s").
		Select(columns).
		Joins("JOIN users AS u ON u.id = s.subscriber_id").
		Where("s.channel_id = ?", channelID).
		Order("s.created_at DESC").
		Order("s.id DESC").
		Scan(&subscribers).Error
	return subscribers, err
}

func (r *subscriptionRepository) ListChannels(ctx context.Context, subscriberID uint64) ([]model.ChannelView, error) {
	channels := make([]model.ChannelView, 0)
	columns := "u.id, u.username, u.full_name, u.avatar_url, s.created_at AS subscribed_at, " +
		"(SELECT v.id FROM videos v WHERE v.owner_id = u.id AND v.is_published = ? ORDER BY v.created_at DESC, v.id DESC LIMIT 1) AS latest_video_id"
	err := r.db.WithContext(ctx).Table("subscriptions AS s").
		Select(columns, true).
		Joins("JOIN users AS u ON u.id = s.channel_id").
		Where("s.subscriber_id = ?", subscriberID).
		Order("s.created_at DESC").
		Order("s.id DESC").
		Scan(&channels).Error
	return channels, err
}
