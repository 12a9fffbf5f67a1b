package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"Orion_Tube/internal/model"
)

type TweetRepository interface {
	Create(ctx context.Context, tweet *model.Tweet) error
	FindByID(ctx context.Context, tweetID uint64) (*model.Tweet, error)
	UpdateContent(ctx context.Context, tweetID uint64, content string) error
	DeleteByID(ctx context.Context, tweetID uint64) (int64, error)
	ListByOwner(ctx context.Context, ownerID, viewerID uint64) ([]model.TweetView, error)
}

type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	return r.db.WithContext(ctx).Create(tweet).Error
}

func (r *tweetRepository) FindByID(ctx context.Context, tweetID uint64) (*model.Tweet, error) {
	var tweet model.Tweet
	if err := r.db.WithContext(ctx).First(&tweet, tweetID).Error; err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (r *tweetRepository) UpdateContent(ctx context.Context, tweetID uint64, content string) error {
	result := r.db.WithContext(ctx).Model(&model.Tweet{}).Where("id = ?", tweetID).Update("content", content)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *tweetRepository) DeleteByID(ctx context.Context, tweetID uint64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.Tweet{}, tweetID)
	return result.RowsAffected, result.Error
}

func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID, viewerID uint64) ([]model.TweetView, error) {
	tweets := make([]model.TweetView, 0)
	columns := "t.id, t.content, t.created_at, t.updated_at, " + ownerSummaryColumns + ", " +
		fmt.Sprintf(likesCountSubquery, "t.id") + ", " +
		fmt.Sprintf(isLikedSubquery, "t.id")
	err := r.db.WithContext(ctx).Table("tweets AS t").
		Select(columns, model.TargetTweet, model.TargetTweet, viewerID).
		Joins("JOIN users AS u ON u.id = t.owner_id").
		Where("t.owner_id = ?", ownerID).
		Order("t.created_at DESC").
		Order("t.id DESC").
		Scan(&tweets).Error
	return tweets, err
}
