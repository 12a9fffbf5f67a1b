package service

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"Orion_Tube/internal/model"
	"Orion_Tube/internal/repository"
	"Orion_Tube/pkg/errno"
	"Orion_Tube/pkg/logger"
)

// Cascade 删除视频/评论/动态时清理依赖它的数据。
// 已知缺口：删视频不删其评论上的点赞，删动态不删它的点赞
type Cascade struct {
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	tweetRepo   repository.TweetRepository

	storage  MediaStorage
	queue    CleanupQueue
	searcher VideoSearcher
}

// storage/queue/searcher 都可以为nil，对应的清理步骤会被跳过
func NewCascade(videoRepo repository.VideoRepository, commentRepo repository.CommentRepository, likeRepo repository.LikeRepository, tweetRepo repository.TweetRepository, storage MediaStorage, queue CleanupQueue, searcher VideoSearcher) *Cascade {
	return &Cascade{
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		tweetRepo:   tweetRepo,
		storage:     storage,
		queue:       queue,
		searcher:    searcher,
	}
}

// DeleteVideo 1、并发删除视频的点赞和评论，任一失败则整体失败、视频保留 2、删除存储上的视频和封面，失败只记日志并投递重试
// 3、删除视频行 4、尽力从搜索索引和缓存中移除
func (c *Cascade) DeleteVideo(ctx context.Context, video *model.Video) error {
	logCtx := logger.Log.WithField("video_id", video.ID)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := c.likeRepo.DeleteByTarget(gctx, model.VideoTarget(video.ID))
		logCtx.WithField("likes", n).Debug("删除视频点赞")
		return errors.WithMessage(err, "delete video likes")
	})
	g.Go(func() error {
		n, err := c.commentRepo.DeleteByVideoID(gctx, video.ID)
		logCtx.WithField("comments", n).Debug("删除视频评论")
		return errors.WithMessage(err, "delete video comments")
	})
	if err := g.Wait(); err != nil {
		return errno.NewDependency(err, "删除视频关联数据失败")
	}

	discardMedia(ctx, c.storage, c.queue, video.VideoFile.Key, video.Thumbnail.Key)

	n, err := c.videoRepo.DeleteByID(ctx, video.ID)
	if err != nil {
		return errno.NewDependency(errors.WithMessage(err, "delete video"), "删除视频失败")
	}
	if n == 0 {
		return errno.NewNotFound("视频不存在")
	}

	if c.searcher != nil {
		if err := c.searcher.Remove(ctx, video.ID); err != nil {
			logCtx.WithError(err).Warn("从搜索索引移除视频失败")
		}
	}
	if err := c.videoRepo.DeleteVideoCache(ctx, video.ID); err != nil {
		logCtx.WithError(err).Warn("删除视频缓存失败")
	}
	return nil
}

// DeleteComment 并发删除评论行和它的点赞，任一失败则整体失败
func (c *Cascade) DeleteComment(ctx context.Context, comment *model.Comment) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := c.likeRepo.DeleteByTarget(gctx, model.CommentTarget(comment.ID))
		return errors.WithMessage(err, "delete comment likes")
	})
	g.Go(func() error {
		_, err := c.commentRepo.DeleteByID(gctx, comment.ID)
		return errors.WithMessage(err, "delete comment")
	})
	if err := g.Wait(); err != nil {
		return errno.NewDependency(err, "删除评论失败")
	}
	return nil
}

// DeleteTweet 只删除动态本身
func (c *Cascade) DeleteTweet(ctx context.Context, tweet *model.Tweet) error {
	n, err := c.tweetRepo.DeleteByID(ctx, tweet.ID)
	if err != nil {
		return errno.NewDependency(errors.WithMessage(err, "delete tweet"), "删除动态失败")
	}
	if n == 0 {
		return errno.NewNotFound("动态不存在")
	}
	return nil
}

// 存储上的文件尽力删除，删不掉的交给清理队列，永远不让整个操作失败
func discardMedia(ctx context.Context, storage MediaStorage, queue CleanupQueue, keys ...string) {
	if storage == nil {
		return
	}
	for _, key := range keys {
		if key == "" {
			continue
		}
		err := storage.Delete(ctx, key)
		if err == nil {
			continue
		}
		logCtx := logger.Log.WithField("key", key).WithError(err)
		logCtx.Warn("删除存储对象失败，投递到清理队列")
		if queue == nil {
			continue
		}
		if qErr := queue.PublishMediaCleanup(ctx, key); qErr != nil {
			logCtx.WithField("queue_error", qErr.Error()).Error("清理消息投递失败，需人工处理")
		}
	}
}
