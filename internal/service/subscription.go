package service

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"Orion_Tube/internal/model"
	"Orion_Tube/internal/repository"
	"Orion_Tube/pkg/errno"
	"Orion_Tube/pkg/logger"
)

type SubscriptionService interface {
	// 返回切换之后是否处于订阅状态
	ToggleSubscription(ctx context.Context, subscriberID, channelID uint64) (bool, error)
	ListChannelSubscribers(ctx context.Context, channelID uint64) ([]model.SubscriberView, error)
	ListSubscribedChannels(ctx context.Context, subscriberID uint64) ([]model.ChannelView, error)
}

type subscriptionService struct {
	subRepo   repository.SubscriptionRepository
	userRepo  repository.UserRepository
	videoRepo repository.VideoRepository
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository, videoRepo repository.VideoRepository) SubscriptionService {
	return &subscriptionService{
		subRepo:   subRepo,
		userRepo:  userRepo,
		videoRepo: videoRepo,
	}
}

// 切换订阅：1、不能订阅自己（在任何读写之前拒绝） 2、频道必须存在 3、有则删，无则建
func (s *subscriptionService) ToggleSubscription(ctx context.Context, subscriberID, channelID uint64) (bool, error) {
	if err := requireViewer(subscriberID); err != nil {
		return false, err
	}
	if subscriberID == channelID {
		return false, errno.NewInvalidArgument("不能订阅自己的频道")
	}
	if err := s.requireUser(ctx, channelID, "频道不存在"); err != nil {
		return false, err
	}
	logCtx := logger.Log.WithField("user_id", subscriberID).WithField("channel_id", channelID)

	existing, err := s.subRepo.Find(ctx, subscriberID, channelID)
	switch {
	case err == nil:
		if _, err := s.subRepo.DeleteByID(ctx, existing.ID); err != nil {
			return false, storeError(err, "订阅不存在", "delete subscription")
		}
		logCtx.Debug("取消订阅")
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub := &model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
		if err := s.subRepo.Create(ctx, sub); err != nil {
			if repository.IsDuplicateKey(err) {
				return true, nil
			}
			return false, storeError(err, "频道不存在", "create subscription")
		}
		logCtx.Debug("订阅")
		return true, nil
	default:
		return false, storeError(err, "订阅不存在", "find subscription")
	}
}

func (s *subscriptionService) ListChannelSubscribers(ctx context.Context, channelID uint64) ([]model.SubscriberView, error) {
	if err := s.requireUser(ctx, channelID, "频道不存在"); err != nil {
		return nil, err
	}
	subscribers, err := s.subRepo.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, storeError(err, "频道不存在", "list subscribers")
	}
	return subscribers, nil
}

// 订阅的频道列表：一条查询拿到频道和各自最新视频的ID，再一次批量查出这些视频，不逐个查询
func (s *subscriptionService) ListSubscribedChannels(ctx context.Context, subscriberID uint64) ([]model.ChannelView, error) {
	if err := s.requireUser(ctx, subscriberID, "用户不存在"); err != nil {
		return nil, err
	}
	channels, err := s.subRepo.ListChannels(ctx, subscriberID)
	if err != nil {
		return nil, storeError(err, "用户不存在", "list channels")
	}

	latestIDs := make([]uint64, 0, len(channels))
	for _, ch := range channels {
		if ch.LatestVideoID != nil {
			latestIDs = append(latestIDs, *ch.LatestVideoID)
		}
	}
	cards, err := s.videoRepo.FindCardsByIDs(ctx, latestIDs)
	if err != nil {
		return nil, storeError(err, "视频不存在", "find latest videos")
	}
	byID := make(map[uint64]*model.VideoCard, len(cards))
	for i := range cards {
		byID[cards[i].ID] = &cards[i]
	}
	for i := range channels {
		if channels[i].LatestVideoID != nil {
			channels[i].LatestVideo = byID[*channels[i].LatestVideoID]
		}
	}
	return channels, nil
}

func (s *subscriptionService) requireUser(ctx context.Context, userID uint64, notFound string) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return storeError(err, notFound, "find user")
	}
	if !exists {
		return errno.NewNotFound(notFound)
	}
	return nil
}
