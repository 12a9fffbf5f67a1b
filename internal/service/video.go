package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"Orion_Tube/internal/model"
	"Orion_Tube/internal/repository"
	"Orion_Tube/pkg/errno"
	"Orion_Tube/pkg/logger"
)

const (
	SortTypeAsc  = "asc"
	SortTypeDesc = "desc"

	// 观看副作用（播放量+1、观看记录）脱离请求取消后的最长执行时间
	viewSideEffectTimeout = 5 * time.Second
	searchFuzziness       = 2
)

var searchFields = []string{"title", "description"}

// 允许排序的字段，其它值一律按创建时间排序
var videoSortColumns = map[string]string{
	"createdAt": "v.created_at",
	"views":     "v.views",
	"duration":  "v.duration",
	"title":     "v.title",
}

type VideoQuery struct {
	Query    string
	OwnerID  *uint64
	SortBy   string
	SortType string
}

type PublishVideoInput struct {
	Title       string
	Description string
	VideoFile   *Upload
	Thumbnail   *Upload
}

type UpdateVideoInput struct {
	Title       string
	Description string
	// 为nil时保留原封面
	Thumbnail *Upload
}

type PublishStatus struct {
	VideoID     uint64
	IsPublished bool
}

type VideoService interface {
	ListVideos(ctx context.Context, q VideoQuery, viewerID uint64, page, pageSize int) (*model.Page[model.VideoCard], error)
	GetVideoDetail(ctx context.Context, videoID, viewerID uint64) (*model.VideoDetail, error)
	GetVideoByID(ctx context.Context, videoID uint64) (*model.Video, error)

	PublishVideo(ctx context.Context, ownerID uint64, in PublishVideoInput) (*model.Video, error)
	UpdateVideo(ctx context.Context, actorID, videoID uint64, in UpdateVideoInput) (*model.Video, error)
	TogglePublishStatus(ctx context.Context, actorID, videoID uint64) (*PublishStatus, error)
	DeleteVideo(ctx context.Context, actorID, videoID uint64) error
}

type videoService struct {
	videos    *videoLookup
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
	cascade   *Cascade

	storage  MediaStorage
	queue    CleanupQueue
	searcher VideoSearcher
	prober   DurationProber

	// 还没执行完的观看副作用
	inflight sync.WaitGroup
}

// storage/queue/searcher/prober 都可以为nil：没有搜索时带关键字的查询失败，没有探测器时时长记为0
func NewVideoService(videoRepo repository.VideoRepository, userRepo repository.UserRepository, cascade *Cascade, storage MediaStorage, queue CleanupQueue, searcher VideoSearcher, prober DurationProber) VideoService {
	return &videoService{
		videos:    newVideoLookup(videoRepo),
		videoRepo: videoRepo,
		userRepo:  userRepo,
		cascade:   cascade,
		storage:   storage,
		queue:     queue,
		searcher:  searcher,
		prober:    prober,
	}
}

// 视频列表：1、有关键字时先走全文检索拿到候选ID 2、只看已发布 3、可选按作者筛选 4、白名单排序 + 分页
func (s *videoService) ListVideos(ctx context.Context, q VideoQuery, viewerID uint64, page, pageSize int) (*model.Page[model.VideoCard], error) {
	page, pageSize = NormalizePage(page, pageSize)
	filter := repository.VideoFilter{PublishedOnly: true, OwnerID: q.OwnerID}

	if query := strings.TrimSpace(q.Query); query != "" {
		if s.searcher == nil {
			return nil, errno.NewDependency(errors.New("searcher not configured"), "搜索服务不可用")
		}
		ids, err := s.searcher.Search(ctx, query, searchFields, searchFuzziness)
		if err != nil {
			return nil, errno.NewDependency(err, "搜索服务不可用")
		}
		if ids == nil {
			ids = []uint64{}
		}
		filter.IDs = ids
	}

	column, ok := videoSortColumns[q.SortBy]
	if !ok {
		column = videoSortColumns["createdAt"]
	}
	sort := repository.VideoSort{Column: column, Desc: q.SortType != SortTypeAsc}

	cards, total, err := s.videoRepo.ListCards(ctx, filter, sort, offsetOf(page, pageSize), pageSize)
	if err != nil {
		return nil, storeError(err, "视频不存在", "list videos")
	}
	return &model.Page[model.VideoCard]{Items: cards, TotalCount: total, Page: page, PageSize: pageSize}, nil
}

// 视频详情：1、一条联表查询组装详情 2、后台执行播放量+1和追加观看记录，不等待结果，失败只记日志
func (s *videoService) GetVideoDetail(ctx context.Context, videoID, viewerID uint64) (*model.VideoDetail, error) {
	detail, err := s.videoRepo.FindDetail(ctx, videoID, viewerID)
	if err != nil {
		return nil, storeError(err, "视频不存在", "find video detail")
	}
	s.recordView(ctx, videoID, viewerID)
	return detail, nil
}

// 缓存里的视频只用于存在性和作者校验，播放量变化不需要删缓存
func (s *videoService) recordView(ctx context.Context, videoID, viewerID uint64) {
	// 请求被取消也要把副作用做完
	bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), viewSideEffectTimeout)
	logCtx := logger.Log.WithField("video_id", videoID).WithField("user_id", viewerID)

	var wg sync.WaitGroup
	wg.Add(1)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer wg.Done()
		if err := s.videoRepo.IncrementViews(bg, videoID); err != nil {
			logCtx.WithError(err).Warn("播放量+1失败")
		}
	}()
	if viewerID != 0 {
		wg.Add(1)
		s.inflight.Add(1)
		go func() {
			defer s.inflight.Done()
			defer wg.Done()
			if err := s.userRepo.AppendWatchHistory(bg, viewerID, videoID); err != nil {
				logCtx.WithError(err).Warn("追加观看记录失败")
			}
		}()
	}
	go func() {
		wg.Wait()
		cancel()
	}()
}

func (s *videoService) GetVideoByID(ctx context.Context, videoID uint64) (*model.Video, error) {
	return s.videos.get(ctx, videoID)
}

// 发布视频：1、校验标题、简介和两个文件 2、探测时长 3、上传视频和封面 4、写库，失败则回收已上传的文件 5、写入搜索索引
func (s *videoService) PublishVideo(ctx context.Context, ownerID uint64, in PublishVideoInput) (*model.Video, error) {
	if err := requireViewer(ownerID); err != nil {
		return nil, err
	}
	title, err := requireText(in.Title, "标题")
	if err != nil {
		return nil, err
	}
	description, err := requireText(in.Description, "简介")
	if err != nil {
		return nil, err
	}
	if in.VideoFile == nil || in.Thumbnail == nil {
		return nil, errno.NewInvalidArgument("视频文件和封面都是必须的")
	}
	if s.storage == nil {
		return nil, errno.NewDependency(errors.New("storage not configured"), "存储服务不可用")
	}
	logCtx := logger.Log.WithField("user_id", ownerID)

	var duration float64
	if s.prober != nil {
		if d, err := s.prober.Duration(ctx, in.VideoFile.Path); err != nil {
			logCtx.WithError(err).Warn("读取视频时长失败，按0处理")
		} else {
			duration = d
		}
	}

	videoURL, videoKey, err := s.storage.Store(ctx, folderVideos, in.VideoFile.Path, in.VideoFile.ContentType)
	if err != nil {
		return nil, errno.NewDependency(err, "上传视频失败")
	}
	thumbURL, thumbKey, err := s.storage.Store(ctx, folderThumbnails, in.Thumbnail.Path, in.Thumbnail.ContentType)
	if err != nil {
		discardMedia(ctx, s.storage, s.queue, videoKey)
		return nil, errno.NewDependency(err, "上传封面失败")
	}

	video := &model.Video{
		OwnerID:     ownerID,
		VideoFile:   model.MediaRef{URL: videoURL, Key: videoKey},
		Thumbnail:   model.MediaRef{URL: thumbURL, Key: thumbKey},
		Title:       title,
		Description: description,
		Duration:    duration,
		IsPublished: true,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		discardMedia(ctx, s.storage, s.queue, videoKey, thumbKey)
		return nil, storeError(err, "用户不存在", "create video")
	}

	s.index(ctx, video)
	logCtx.WithField("video_id", video.ID).Info("视频发布成功")
	return video, nil
}

// 更新视频：1、校验 2、存在性 + 作者校验 3、可选替换封面 4、写库后删除旧封面 5、刷新索引和缓存
func (s *videoService) UpdateVideo(ctx context.Context, actorID, videoID uint64, in UpdateVideoInput) (*model.Video, error) {
	title, err := requireText(in.Title, "标题")
	if err != nil {
		return nil, err
	}
	description, err := requireText(in.Description, "简介")
	if err != nil {
		return nil, err
	}
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		return nil, storeError(err, "视频不存在", "find video")
	}
	if err := authorize(video, actorID, "修改该视频"); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"title":       title,
		"description": description,
	}
	var newThumbKey string
	if in.Thumbnail != nil {
		if s.storage == nil {
			return nil, errno.NewDependency(errors.New("storage not configured"), "存储服务不可用")
		}
		url, key, err := s.storage.Store(ctx, folderThumbnails, in.Thumbnail.Path, in.Thumbnail.ContentType)
		if err != nil {
			return nil, errno.NewDependency(err, "上传封面失败")
		}
		newThumbKey = key
		fields["thumbnail_url"] = url
		fields["thumbnail_key"] = key
	}

	if err := s.videoRepo.Updates(ctx, videoID, fields); err != nil {
		discardMedia(ctx, s.storage, s.queue, newThumbKey)
		return nil, storeError(err, "视频不存在", "update video")
	}
	if newThumbKey != "" {
		discardMedia(ctx, s.storage, s.queue, video.Thumbnail.Key)
	}
	s.invalidate(ctx, videoID)

	updated, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		return nil, storeError(err, "视频不存在", "find video")
	}
	s.index(ctx, updated)
	return updated, nil
}

// 切换发布状态：条件更新保证并发切换时不会丢失，条件不满足说明别人刚切换过，以库里的最新状态为准
func (s *videoService) TogglePublishStatus(ctx context.Context, actorID, videoID uint64) (*PublishStatus, error) {
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		return nil, storeError(err, "视频不存在", "find video")
	}
	if err := authorize(video, actorID, "修改该视频的发布状态"); err != nil {
		return nil, err
	}

	target := !video.IsPublished
	changed, err := s.videoRepo.SetPublished(ctx, videoID, video.IsPublished, target)
	if err != nil {
		return nil, storeError(err, "视频不存在", "toggle publish status")
	}
	s.invalidate(ctx, videoID)
	if !changed {
		latest, err := s.videoRepo.FindByID(ctx, videoID)
		if err != nil {
			return nil, storeError(err, "视频不存在", "find video")
		}
		target = latest.IsPublished
	}
	return &PublishStatus{VideoID: videoID, IsPublished: target}, nil
}

func (s *videoService) DeleteVideo(ctx context.Context, actorID, videoID uint64) error {
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		return storeError(err, "视频不存在", "find video")
	}
	if err := authorize(video, actorID, "删除该视频"); err != nil {
		return err
	}
	if err := s.cascade.DeleteVideo(ctx, video); err != nil {
		return err
	}
	logger.Log.WithField("video_id", videoID).WithField("user_id", actorID).Info("视频已删除")
	return nil
}

func (s *videoService) index(ctx context.Context, video *model.Video) {
	if s.searcher == nil {
		return
	}
	if err := s.searcher.Index(ctx, video.ID, video.Title, video.Description); err != nil {
		logger.Log.WithError(err).WithField("video_id", video.ID).Warn("写入搜索索引失败")
	}
}

func (s *videoService) invalidate(ctx context.Context, videoID uint64) {
	if err := s.videoRepo.DeleteVideoCache(ctx, videoID); err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("删除视频缓存失败")
	}
}
