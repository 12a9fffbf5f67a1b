package service

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"Orion_Tube/internal/model"
	"Orion_Tube/internal/repository"
	"Orion_Tube/pkg/errno"
)

// 创作者后台，只看调用者自己的频道
type DashboardService interface {
	GetChannelStats(ctx context.Context, ownerID uint64) (*model.ChannelStats, error)
	ListChannelVideos(ctx context.Context, ownerID uint64) ([]model.ChannelVideo, error)
}

type dashboardService struct {
	videoRepo repository.VideoRepository
	subRepo   repository.SubscriptionRepository
}

func NewDashboardService(videoRepo repository.VideoRepository, subRepo repository.SubscriptionRepository) DashboardService {
	return &dashboardService{
		videoRepo: videoRepo,
		subRepo:   subRepo,
	}
}

// 频道统计：粉丝数、视频数+总播放量、视频总点赞数，三个互不依赖的查询并发执行
func (s *dashboardService) GetChannelStats(ctx context.Context, ownerID uint64) (*model.ChannelStats, error) {
	if err := requireViewer(ownerID); err != nil {
		return nil, err
	}
	var stats model.ChannelStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.subRepo.CountByChannel(gctx, ownerID)
		stats.TotalSubscribers = n
		return errors.WithMessage(err, "count subscribers")
	})
	g.Go(func() error {
		videos, views, err := s.videoRepo.OwnerTotals(gctx, ownerID)
		stats.TotalVideos, stats.TotalViews = videos, views
		return errors.WithMessage(err, "sum videos")
	})
	g.Go(func() error {
		n, err := s.videoRepo.CountLikesOnOwnerVideos(gctx, ownerID)
		stats.TotalLikes = n
		return errors.WithMessage(err, "count likes")
	})
	if err := g.Wait(); err != nil {
		return nil, errno.NewDependency(err, "获取频道统计失败")
	}
	return &stats, nil
}

func (s *dashboardService) ListChannelVideos(ctx context.Context, ownerID uint64) ([]model.ChannelVideo, error) {
	if err := requireViewer(ownerID); err != nil {
		return nil, err
	}
	videos, err := s.videoRepo.ListByOwnerWithLikes(ctx, ownerID)
	if err != nil {
		return nil, storeError(err, "用户不存在", "list channel videos")
	}
	return videos, nil
}
