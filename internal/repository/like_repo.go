package repository

import (
	"context"

	"gorm.io/gorm"

	"Orion_Tube/internal/model"
)

type LikeRepository interface {
	// 找不到时返回 gorm.ErrRecordNotFound
	Find(ctx context.Context, userID uint64, target model.LikeTarget) (*model.Like, error)
	Create(ctx context.Context, like *model.Like) error
	DeleteByID(ctx context.Context, likeID uint64) (int64, error)
	// 删除某个对象上的全部点赞
	DeleteByTarget(ctx context.Context, target model.LikeTarget) (int64, error)
	CountByTarget(ctx context.Context, target model.LikeTarget) (int64, error)
	// 用户点赞过的、已发布的视频，最近点赞的在前
	LikedVideos(ctx context.Context, userID uint64) ([]model.LikedVideo, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Find(ctx context.Context, userID uint64, target model.LikeTarget) (*model.Like, error) {
	var like model.Like
	err := r.db.WithContext(ctx).
		Where("liked_by = ? AND target_kind = ? AND target_id = ?", userID, target.Kind, target.ID).
		First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) Create(ctx context.Context, like *model.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

// 按主键删除，行已经被并发的请求删掉时影响行数为0，不算错误
func (r *likeRepository) DeleteByID(ctx context.Context, likeID uint64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.Like{}, likeID)
	return result.RowsAffected, result.Error
}

func (r *likeRepository) DeleteByTarget(ctx context.Context, target model.LikeTarget) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("target_kind = ? AND target_id = ?", target.Kind, target.ID).
		Delete(&model.Like{})
	return result.RowsAffected, result.Error
}

func (r *likeRepository) CountByTarget(ctx context.Context, target model.LikeTarget) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("target_kind = ? AND target_id = ?", target.Kind, target.ID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) LikedVideos(ctx context.Context, userID uint64) ([]model.LikedVideo, error) {
	videos := make([]model.LikedVideo, 0)
	err := r.db.WithContext(ctx).Table("likes AS l").
		Select(videoCardColumns+", l.created_at AS liked_at").
		Joins("JOIN videos AS v ON v.id = l.target_id").
		Joins("JOIN users AS u ON u.id = v.owner_id").
		Where("l.liked_by = ? AND l.target_kind = ? AND v.is_published = ?", userID, model.TargetVideo, true).
		Order("l.created_at DESC").
		Order("l.id DESC").
		Scan(&videos).Error
	return videos, err
}
