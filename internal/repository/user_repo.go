package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Orion_Tube/internal/model"
)

// 用户仓库接口：1、将用户插入用户表 2、根据ID/用户名查找用户 3、观看记录的追加与查询
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID uint64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Exists(ctx context.Context, userID uint64) (bool, error)

	// 追加一条观看记录，已看过的视频不会重复插入
	AppendWatchHistory(ctx context.Context, userID, videoID uint64) error
	// 观看过的视频ID，按第一次观看时间倒序
	WatchHistory(ctx context.Context, userID uint64) ([]uint64, error)
}

// 数据库接口封装
type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// 用户插入表
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, userID uint64) (*model.User, error) {
	var result model.User
	if err := r.db.WithContext(ctx).First(&result, userID).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// 根据用户名找用户
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var result model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&result).Error
	if err != nil {
		return nil, err // 如果有错（包括没找到），直接返回
	}
	return &result, nil
}

func (r *userRepository) Exists(ctx context.Context, userID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Count(&count).Error
	return count > 0, err
}

// INSERT ... ON CONFLICT DO NOTHING（MySQL下是 INSERT IGNORE 的效果），靠联合唯一索引去重
func (r *userRepository) AppendWatchHistory(ctx context.Context, userID, videoID uint64) error {
	entry := model.WatchHistory{UserID: userID, VideoID: videoID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoNothing: true,
		}).
		Create(&entry).Error
}

func (r *userRepository) WatchHistory(ctx context.Context, userID uint64) ([]uint64, error) {
	videoIDs := make([]uint64, 0)
	err := r.db.WithContext(ctx).Model(&model.WatchHistory{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Pluck("video_id", &videoIDs).Error
	return videoIDs, err
}
