package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Orion_Tube/internal/model"
)

// VideoFilter 视频列表的筛选条件；IDs 为 nil 表示不限制，非 nil 的空切片表示结果必为空
type VideoFilter struct {
	PublishedOnly bool
	OwnerID       *uint64
	IDs           []uint64
}

// VideoSort 排序列必须是调用方从白名单里选出来的
type VideoSort struct {
	Column string
	Desc   bool
}

type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	FindByID(ctx context.Context, videoID uint64) (*model.Video, error)
	FindByIDForUpdate(ctx context.Context, videoID uint64) (*model.Video, error)
	Updates(ctx context.Context, videoID uint64, fields map[string]interface{}) error
	// 带条件的发布状态切换，返回是否真的改到了行
	SetPublished(ctx context.Context, videoID uint64, from, to bool) (bool, error)
	IncrementViews(ctx context.Context, videoID uint64) error
	DeleteByID(ctx context.Context, videoID uint64) (int64, error)

	ListCards(ctx context.Context, filter VideoFilter, sort VideoSort, offset, limit int) ([]model.VideoCard, int64, error)
	FindCardsByIDs(ctx context.Context, videoIDs []uint64) ([]model.VideoCard, error)
	FindDetail(ctx context.Context, videoID, viewerID uint64) (*model.VideoDetail, error)
	ListByOwnerWithLikes(ctx context.Context, ownerID uint64) ([]model.ChannelVideo, error)
	OwnerTotals(ctx context.Context, ownerID uint64) (videos int64, views int64, err error)
	CountLikesOnOwnerVideos(ctx context.Context, ownerID uint64) (int64, error)

	GetVideoCache(ctx context.Context, videoID uint64) (*model.Video, error)
	SetVideoCache(ctx context.Context, video *model.Video) error
	DeleteVideoCache(ctx context.Context, videoID uint64) error

	WithTx(tx *gorm.DB) VideoRepository
}

type videoRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

// rdb 可以为nil，此时缓存读写都是空操作
func NewVideoRepository(db *gorm.DB, rdb *redis.Client) VideoRepository {
	return &videoRepository{
		db:  db,
		rdb: rdb,
	}
}

// WithTx 返回一个使用事务的副本，缓存客户端共用
func (r *videoRepository) WithTx(tx *gorm.DB) VideoRepository {
	return &videoRepository{
		db:  tx,
		rdb: r.rdb,
	}
}

func (r *videoRepository) Create(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *videoRepository) FindByID(ctx context.Context, videoID uint64) (*model.Video, error) {
	var video model.Video
	if err := r.db.WithContext(ctx).First(&video, videoID).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// 在事务里给视频行加写锁，锁住期间视频不会被并发删除
func (r *videoRepository) FindByIDForUpdate(ctx context.Context, videoID uint64) (*model.Video, error) {
	var video model.Video
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&video, videoID).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) Updates(ctx context.Context, videoID uint64, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", videoID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UPDATE videos SET is_published = ? WHERE id = ? AND is_published = ?，并发切换时只有一个能成功
func (r *videoRepository) SetPublished(ctx context.Context, videoID uint64, from, to bool) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Video{}).
		Where("id = ? AND is_published = ?", videoID, from).
		Update("is_published", to)
	return result.RowsAffected > 0, result.Error
}

func (r *videoRepository) IncrementViews(ctx context.Context, videoID uint64) error {
	// 原子更新：UPDATE `videos` SET `views` = `views` + 1 WHERE id = ?
	return r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", videoID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (r *videoRepository) DeleteByID(ctx context.Context, videoID uint64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.Video{}, videoID)
	return result.RowsAffected, result.Error
}

// 视频列表：1、按条件筛选并联表作者 2、先数总数 3、主排序列+ID兜底排序，保证翻页不重不漏 4、偏移分页
func (r *videoRepository) ListCards(ctx context.Context, filter VideoFilter, sort VideoSort, offset, limit int) ([]model.VideoCard, int64, error) {
	cards := make([]model.VideoCard, 0)
	if filter.IDs != nil && len(filter.IDs) == 0 {
		return cards, 0, nil
	}

	base := r.db.WithContext(ctx).Table("videos AS v").Joins("JOIN users AS u ON u.id = v.owner_id")
	if filter.PublishedOnly {
		base = base.Where("v.is_published = ?", true)
	}
	if filter.OwnerID != nil {
		base = base.Where("v.owner_id = ?", *filter.OwnerID)
	}
	if filter.IDs != nil {
		base = base.Where("v.id IN ?", filter.IDs)
	}
	// Session之后base可以安全地复用两次（Count一次，Scan一次）
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 || int64(offset) >= total {
		return cards, total, nil
	}

	dir := sortDirection(sort.Desc)
	err := base.Select(videoCardColumns).
		Order(sort.Column + " " + dir).
		Order("v.id " + dir).
		Offset(offset).
		Limit(limit).
		Scan(&cards).Error
	if err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}

func (r *videoRepository) FindCardsByIDs(ctx context.Context, videoIDs []uint64) ([]model.VideoCard, error) {
	cards := make([]model.VideoCard, 0, len(videoIDs))
	if len(videoIDs) == 0 {
		return cards, nil
	}
	err := r.db.WithContext(ctx).Table("videos AS v").
		Select(videoCardColumns).
		Joins("JOIN users AS u ON u.id = v.owner_id").
		Where("v.id IN ?", videoIDs).
		Scan(&cards).Error
	return cards, err
}

// 视频详情：视频+作者 + 作者粉丝数 + viewer是否订阅作者 + 点赞数 + viewer是否点赞，一条SQL查出
func (r *videoRepository) FindDetail(ctx context.Context, videoID, viewerID uint64) (*model.VideoDetail, error) {
	var detail model.VideoDetail
	columns := videoCardColumns + ", " +
		fmt.Sprintf(likesCountSubquery, "v.id") + ", " +
		fmt.Sprintf(isLikedSubquery, "v.id") + ", " +
		"(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = v.owner_id) AS owner_subscribers_count, " +
		"EXISTS(SELECT 1 FROM subscriptions s WHERE s.channel_id = v.owner_id AND s.subscriber_id = ?) AS owner_is_subscribed"

	result := r.db.WithContext(ctx).Table("videos AS v").
		Select(columns, model.TargetVideo, model.TargetVideo, viewerID, viewerID).
		Joins("JOIN users AS u ON u.id = v.owner_id").
		Where("v.id = ?", videoID).
		Limit(1).
		Scan(&detail)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &detail, nil
}

// 创作者后台：自己的全部视频（包括未发布），附带每个视频的点赞数
func (r *videoRepository) ListByOwnerWithLikes(ctx context.Context, ownerID uint64) ([]model.ChannelVideo, error) {
	videos := make([]model.ChannelVideo, 0)
	columns := "v.id, v.title, v.description, v.video_file_url AS video_url, v.thumbnail_url, v.duration, v.views, v.is_published, v.created_at, " +
		fmt.Sprintf(likesCountSubquery, "v.id")
	err := r.db.WithContext(ctx).Table("videos AS v").
		Select(columns, model.TargetVideo).
		Where("v.owner_id = ?", ownerID).
		Order("v.created_at DESC").
		Order("v.id DESC").
		Scan(&videos).Error
	return videos, err
}

func (r *videoRepository) OwnerTotals(ctx context.Context, ownerID uint64) (int64, int64, error) {
	var totals struct {
		TotalVideos int64
		TotalViews  int64
	}
	err := r.db.WithContext(ctx).Table("videos").
		Select("COUNT(*) AS total_videos, COALESCE(SUM(views), 0) AS total_views").
		Where("owner_id = ?", ownerID).
		Scan(&totals).Error
	return totals.TotalVideos, totals.TotalViews, err
}

func (r *videoRepository) CountLikesOnOwnerVideos(ctx context.Context, ownerID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("likes AS l").
		Joins("JOIN videos AS v ON v.id = l.target_id").
		Where("l.target_kind = ? AND v.owner_id = ?", model.TargetVideo, ownerID).
		Count(&count).Error
	return count, err
}

func sortDirection(desc bool) string {
	if desc {
		return "DESC"
	}
	return "ASC"
}

// 返回存储单个视频信息的字符串Key
func (r *videoRepository) keyVideoInfo(videoID uint64) string {
	return fmt.Sprintf("video:info:%d", videoID)
}

// 从Redis缓存中获取单个Video信息：缓存不存在返回(nil, nil)，只有Redis本身出错才返回error
func (r *videoRepository) GetVideoCache(ctx context.Context, videoID uint64) (*model.Video, error) {
	if r.rdb == nil {
		return nil, nil
	}
	videoJSON, err := r.rdb.Get(ctx, r.keyVideoInfo(videoID)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	var video model.Video
	if err := json.Unmarshal([]byte(videoJSON), &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// 将单个视频信息存入Redis缓存，过期时间加上随机性防止缓存雪崩
func (r *videoRepository) SetVideoCache(ctx context.Context, video *model.Video) error {
	if r.rdb == nil {
		return nil
	}
	videoJSON, err := json.Marshal(video)
	if err != nil {
		return err
	}
	expiration := time.Minute*5 + time.Duration(rand.Intn(60))*time.Second
	return r.rdb.Set(ctx, r.keyVideoInfo(video.ID), videoJSON, expiration).Err()
}

func (r *videoRepository) DeleteVideoCache(ctx context.Context, videoID uint64) error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.Del(ctx, r.keyVideoInfo(videoID)).Err()
}
