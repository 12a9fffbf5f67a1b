package service

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"Orion_Tube/internal/model"
	"Orion_Tube/internal/repository"
	"Orion_Tube/pkg/logger"
)

// 点赞是开关语义：同一个用户对同一个对象，有则删、无则建。
// 不加锁，唯一索引保证最多一行；并发切换时结果取决于谁最后落库
type LikeService interface {
	ToggleVideoLike(ctx context.Context, actorID, videoID uint64) (bool, error)
	ToggleCommentLike(ctx context.Context, actorID, commentID uint64) (bool, error)
	ToggleTweetLike(ctx context.Context, actorID, tweetID uint64) (bool, error)
	// 用户点赞过的已发布视频，最近点赞的在前
	GetLikedVideos(ctx context.Context, viewerID uint64) ([]model.LikedVideo, error)
}

type likeService struct {
	videos      *videoLookup
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
}

func NewLikeService(likeRepo repository.LikeRepository, videoRepo repository.VideoRepository, commentRepo repository.CommentRepository, tweetRepo repository.TweetRepository) LikeService {
	return &likeService{
		videos:      newVideoLookup(videoRepo),
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
	}
}

func (s *likeService) ToggleVideoLike(ctx context.Context, actorID, videoID uint64) (bool, error) {
	if err := requireViewer(actorID); err != nil {
		return false, err
	}
	if _, err := s.videos.get(ctx, videoID); err != nil {
		return false, err
	}
	return s.toggle(ctx, actorID, model.VideoTarget(videoID))
}

func (s *likeService) ToggleCommentLike(ctx context.Context, actorID, commentID uint64) (bool, error) {
	if err := requireViewer(actorID); err != nil {
		return false, err
	}
	if _, err := s.commentRepo.FindByID(ctx, commentID); err != nil {
		return false, storeError(err, "评论不存在", "find comment")
	}
	return s.toggle(ctx, actorID, model.CommentTarget(commentID))
}

func (s *likeService) ToggleTweetLike(ctx context.Context, actorID, tweetID uint64) (bool, error) {
	if err := requireViewer(actorID); err != nil {
		return false, err
	}
	if _, err := s.tweetRepo.FindByID(ctx, tweetID); err != nil {
		return false, storeError(err, "动态不存在", "find tweet")
	}
	return s.toggle(ctx, actorID, model.TweetTarget(tweetID))
}

// 切换点赞：1、查找已有的点赞 2、有则删除，返回false 3、没有则创建，返回true；
// 创建时撞上唯一索引说明并发的请求已经建好了，同样视为已点赞
func (s *likeService) toggle(ctx context.Context, actorID uint64, target model.LikeTarget) (bool, error) {
	logCtx := logger.Log.WithField("user_id", actorID).WithField("target", target.String())

	existing, err := s.likeRepo.Find(ctx, actorID, target)
	switch {
	case err == nil:
		if _, err := s.likeRepo.DeleteByID(ctx, existing.ID); err != nil {
			return false, storeError(err, "点赞不存在", "delete like")
		}
		logCtx.Debug("取消点赞")
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := &model.Like{LikedBy: actorID, Target: target}
		if err := s.likeRepo.Create(ctx, like); err != nil {
			if repository.IsDuplicateKey(err) {
				logCtx.Info("并发点赞撞上唯一索引，视为已点赞")
				return true, nil
			}
			return false, storeError(err, "点赞对象不存在", "create like")
		}
		logCtx.Debug("点赞")
		return true, nil
	default:
		return false, storeError(err, "点赞不存在", "find like")
	}
}

func (s *likeService) GetLikedVideos(ctx context.Context, viewerID uint64) ([]model.LikedVideo, error) {
	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}
	videos, err := s.likeRepo.LikedVideos(ctx, viewerID)
	if err != nil {
		return nil, storeError(err, "用户不存在", "list liked videos")
	}
	return videos, nil
}
