package service

import (
	"context"

	"Orion_Tube/internal/data"
	"Orion_Tube/internal/model"
	"Orion_Tube/internal/repository"
	"Orion_Tube/pkg/logger"
)

type CommentService interface {
	// 分页获取一个视频的评论，附带作者、点赞数和当前用户是否点赞
	ListComments(ctx context.Context, videoID, viewerID uint64, page, pageSize int) (*model.Page[model.CommentView], error)
	AddComment(ctx context.Context, actorID, videoID uint64, content string) (*model.Comment, error)
	UpdateComment(ctx context.Context, actorID, commentID uint64, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, actorID, commentID uint64) error
}

type commentService struct {
	videos      *videoLookup
	commentRepo repository.CommentRepository
	uow         data.UnitOfWork
	cascade     *Cascade
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository, uow data.UnitOfWork, cascade *Cascade) CommentService {
	return &commentService{
		videos:      newVideoLookup(videoRepo),
		commentRepo: commentRepo,
		uow:         uow,
		cascade:     cascade,
	}
}

func (s *commentService) ListComments(ctx context.Context, videoID, viewerID uint64, page, pageSize int) (*model.Page[model.CommentView], error) {
	page, pageSize = NormalizePage(page, pageSize)
	if _, err := s.videos.get(ctx, videoID); err != nil {
		return nil, err
	}
	comments, total, err := s.commentRepo.ListByVideo(ctx, videoID, viewerID, offsetOf(page, pageSize), pageSize)
	if err != nil {
		return nil, storeError(err, "视频不存在", "list comments")
	}
	return &model.Page[model.CommentView]{Items: comments, TotalCount: total, Page: page, PageSize: pageSize}, nil
}

// 创建评论：在同一个事务里先锁住视频行确认它存在，再插入评论，避免评论挂到一个正在被删除的视频下
func (s *commentService) AddComment(ctx context.Context, actorID, videoID uint64, content string) (*model.Comment, error) {
	if err := requireViewer(actorID); err != nil {
		return nil, err
	}
	content, err := requireText(content, "评论内容")
	if err != nil {
		return nil, err
	}

	newComment := &model.Comment{
		OwnerID: actorID,
		VideoID: videoID,
		Content: content,
	}
	err = s.uow.Execute(ctx, func(repos *data.TransactionalRepositories) error {
		if _, err := repos.VideoRepo.FindByIDForUpdate(ctx, videoID); err != nil {
			return err
		}
		return repos.CommentRepo.Create(ctx, newComment)
	})
	if err != nil {
		return nil, storeError(err, "视频不存在", "add comment")
	}
	logger.Log.WithField("user_id", actorID).WithField("video_id", videoID).Info("评论成功")
	return newComment, nil
}

func (s *commentService) UpdateComment(ctx context.Context, actorID, commentID uint64, content string) (*model.Comment, error) {
	content, err := requireText(content, "评论内容")
	if err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, storeError(err, "评论不存在", "find comment")
	}
	if err := authorize(comment, actorID, "修改该评论"); err != nil {
		return nil, err
	}
	if err := s.commentRepo.UpdateContent(ctx, commentID, content); err != nil {
		return nil, storeError(err, "评论不存在", "update comment")
	}
	return s.reload(ctx, commentID)
}

func (s *commentService) DeleteComment(ctx context.Context, actorID, commentID uint64) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return storeError(err, "评论不存在", "find comment")
	}
	if err := authorize(comment, actorID, "删除该评论"); err != nil {
		return err
	}
	return s.cascade.DeleteComment(ctx, comment)
}

func (s *commentService) reload(ctx context.Context, commentID uint64) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, storeError(err, "评论不存在", "find comment")
	}
	return comment, nil
}
