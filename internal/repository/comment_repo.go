package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"Orion_Tube/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, commentID uint64) (*model.Comment, error)
	UpdateContent(ctx context.Context, commentID uint64, content string) error
	DeleteByID(ctx context.Context, commentID uint64) (int64, error)
	// 删除一个视频下的全部评论，返回删除条数
	DeleteByVideoID(ctx context.Context, videoID uint64) (int64, error)

	// 分页获取视频的评论，附带作者信息、点赞数、viewer是否点赞
	ListByVideo(ctx context.Context, videoID, viewerID uint64, offset, limit int) ([]model.CommentView, int64, error)

	WithTx(tx *gorm.DB) CommentRepository
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// WithTx 返回一个新的、使用事务的 commentRepository 实例
func (r *commentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepository{
		db: tx,
	}
}

// Create 方法对事务和非事务场景通用
func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, commentID uint64) (*model.Comment, error) {
	var result model.Comment
	if err := r.db.WithContext(ctx).First(&result, commentID).Error; err != nil {
		return nil, err // 如果有错（包括没找到），直接返回
	}
	return &result, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, commentID uint64, content string) error {
	result := r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", commentID).Update("content", content)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *commentRepository) DeleteByID(ctx context.Context, commentID uint64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.Comment{}, commentID)
	return result.RowsAffected, result.Error
}

func (r *commentRepository) DeleteByVideoID(ctx context.Context, videoID uint64) (int64, error) {
	result := r.db.WithContext(ctx).Where("video_id = ?", videoID).Delete(&model.Comment{})
	return result.RowsAffected, result.Error
}

// 一条SQL完成：评论 JOIN 作者，点赞数和是否点赞用相关子查询算出来，最新的评论在前
func (r *commentRepository) ListByVideo(ctx context.Context, videoID, viewerID uint64, offset, limit int) ([]model.CommentView, int64, error) {
	comments := make([]model.CommentView, 0)

	base := r.db.WithContext(ctx).Table("comments AS c").
		Joins("JOIN users AS u ON u.id = c.owner_id").
		Where("c.video_id = ?", videoID).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 || int64(offset) >= total {
		return comments, total, nil
	}

	columns := "c.id, c.video_id, c.content, c.created_at, c.updated_at, " + ownerSummaryColumns + ", " +
		fmt.Sprintf(likesCountSubquery, "c.id") + ", " +
		fmt.Sprintf(isLikedSubquery, "c.id")
	err := base.Select(columns, model.TargetComment, model.TargetComment, viewerID).
		Order("c.created_at DESC").
		Order("c.id DESC").
		Offset(offset).
		Limit(limit).
		Scan(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}
