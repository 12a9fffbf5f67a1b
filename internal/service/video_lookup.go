package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"Orion_Tube/internal/model"
	"Orion_Tube/internal/repository"
	"Orion_Tube/pkg/logger"
)

// videoLookup 带缓存的单个视频查询，只用于存在性和作者判断（作者不可变，缓存不会让判断出错）
type videoLookup struct {
	sf        singleflight.Group
	videoRepo repository.VideoRepository
}

func newVideoLookup(videoRepo repository.VideoRepository) *videoLookup {
	return &videoLookup{videoRepo: videoRepo}
}

// 根据videoID查找视频：1、查找Redis缓存 2、缓存未命中通过SingleFlight合并同一时间的数据库查询 3、写回缓存
func (l *videoLookup) get(ctx context.Context, videoID uint64) (*model.Video, error) {
	video, err := l.videoRepo.GetVideoCache(ctx, videoID)
	if err == nil && video != nil {
		return video, nil
	}
	// Redis本身出错时退回数据库，缓存不影响可用性
	if err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("读取视频缓存失败")
	}

	key := fmt.Sprintf("get_video_%d", videoID)
	result, err, _ := l.sf.Do(key, func() (interface{}, error) {
		dbVideo, dbErr := l.videoRepo.FindByID(ctx, videoID)
		if dbErr != nil {
			return nil, dbErr
		}
		if cacheErr := l.videoRepo.SetVideoCache(ctx, dbVideo); cacheErr != nil {
			logger.Log.WithError(cacheErr).WithField("video_id", videoID).Warn("写入视频缓存失败")
		}
		return dbVideo, nil
	})
	if err != nil {
		return nil, storeError(err, "视频不存在", "find video")
	}
	// 返回值是interface{}结构，需要断言
	return result.(*model.Video), nil
}
