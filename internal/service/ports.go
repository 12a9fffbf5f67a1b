package service

import "context"

// MediaStorage 外部对象存储。Store 上传本地文件，返回可访问的URL和用于删除的Key
type MediaStorage interface {
	Store(ctx context.Context, folder, path, contentType string) (url, key string, err error)
	Delete(ctx context.Context, key string) error
}

// VideoSearcher 视频标题/简介的全文检索，Search 只返回命中的视频ID
type VideoSearcher interface {
	Search(ctx context.Context, query string, fields []string, fuzziness int) ([]uint64, error)
	Index(ctx context.Context, id uint64, title, description string) error
	Remove(ctx context.Context, id uint64) error
}

// CleanupQueue 删除失败的存储对象交给后台消费者重试
type CleanupQueue interface {
	PublishMediaCleanup(ctx context.Context, key string) error
}

// DurationProber 读取视频文件的时长（秒）
type DurationProber interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Upload 已经落到本地磁盘的上传文件
type Upload struct {
	Path        string
	ContentType string
}

const (
	folderVideos     = "videos"
	folderThumbnails = "thumbnails"
	folderAvatars    = "avatars"
)
