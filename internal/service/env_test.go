package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"Orion_Tube/internal/data"
	"Orion_Tube/internal/model"
	"Orion_Tube/internal/repository"
)

// 内存SQLite上的完整服务栈，外部依赖（存储、队列、搜索、时长探测）都是假的
type testEnv struct {
	db *gorm.DB

	userRepo    repository.UserRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
	likeRepo    repository.LikeRepository
	subRepo     repository.SubscriptionRepository

	storage  *fakeStorage
	queue    *fakeQueue
	searcher *fakeSearcher
	prober   *fakeProber

	videos    VideoService
	comments  CommentService
	tweets    TweetService
	likes     LikeService
	subs      SubscriptionService
	dashboard DashboardService
	users     UserService

	clock time.Time
	seq   int
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 每个连接都是一个独立的内存库，只能用一个连接
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, repository.AutoMigrate(db))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	e := &testEnv{
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		videoRepo:   repository.NewVideoRepository(db, nil),
		commentRepo: repository.NewCommentRepository(db),
		tweetRepo:   repository.NewTweetRepository(db),
		likeRepo:    repository.NewLikeRepository(db),
		subRepo:     repository.NewSubscriptionRepository(db),
		storage:     &fakeStorage{},
		queue:       &fakeQueue{},
		searcher:    &fakeSearcher{},
		prober:      &fakeProber{duration: 42.5},
		clock:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	cascade := NewCascade(e.videoRepo, e.commentRepo, e.likeRepo, e.tweetRepo, e.storage, e.queue, e.searcher)
	uow := data.NewUnitOfWork(db, e.videoRepo, e.commentRepo)

	e.videos = NewVideoService(e.videoRepo, e.userRepo, cascade, e.storage, e.queue, e.searcher, e.prober)
	e.comments = NewCommentService(e.commentRepo, e.videoRepo, uow, cascade)
	e.tweets = NewTweetService(e.tweetRepo, e.userRepo, cascade)
	e.likes = NewLikeService(e.likeRepo, e.videoRepo, e.commentRepo, e.tweetRepo)
	e.subs = NewSubscriptionService(e.subRepo, e.userRepo, e.videoRepo)
	e.dashboard = NewDashboardService(e.videoRepo, e.subRepo)
	e.users = NewUserService(e.userRepo, e.videoRepo, e.storage, "test-secret", time.Hour)
	// 先于关库执行
	t.Cleanup(e.waitViews)
	return e
}

// 等后台的观看副作用执行完
func (e *testEnv) waitViews() {
	e.videos.(*videoService).inflight.Wait()
}

// 每次调用时间前进一秒，保证按创建时间排序是确定的
func (e *testEnv) tick() time.Time {
	e.clock = e.clock.Add(time.Second)
	return e.clock
}

func (e *testEnv) user(t *testing.T, username string) *model.User {
	t.Helper()
	now := e.tick()
	u := &model.User{
		BaseModel: model.BaseModel{CreatedAt: now, UpdatedAt: now},
		Username:  username,
		FullName:  "Full " + username,
		Password:  "hashed",
		Avatar:    model.MediaRef{URL: "http://media.test/avatars/" + username + ".png"},
	}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) video(t *testing.T, ownerID uint64, published bool) *model.Video {
	t.Helper()
	return e.videoWithViews(t, ownerID, published, 0)
}

func (e *testEnv) videoWithViews(t *testing.T, ownerID uint64, published bool, views uint64) *model.Video {
	t.Helper()
	e.seq++
	now := e.tick()
	v := &model.Video{
		BaseModel:   model.BaseModel{CreatedAt: now, UpdatedAt: now},
		OwnerID:     ownerID,
		VideoFile:   model.MediaRef{URL: fmt.Sprintf("http://media.test/videos/%d.mp4", e.seq), Key: fmt.Sprintf("videos/%d.mp4", e.seq)},
		Thumbnail:   model.MediaRef{URL: fmt.Sprintf("http://media.test/thumbnails/%d.png", e.seq), Key: fmt.Sprintf("thumbnails/%d.png", e.seq)},
		Title:       fmt.Sprintf("video %d", e.seq),
		Description: "description",
		Duration:    float64(e.seq),
		Views:       views,
		IsPublished: published,
	}
	require.NoError(t, e.db.Create(v).Error)
	return v
}

func (e *testEnv) comment(t *testing.T, ownerID, videoID uint64, content string) *model.Comment {
	t.Helper()
	now := e.tick()
	c := &model.Comment{
		BaseModel: model.BaseModel{CreatedAt: now, UpdatedAt: now},
		OwnerID:   ownerID,
		VideoID:   videoID,
		Content:   content,
	}
	require.NoError(t, e.db.Create(c).Error)
	return c
}

func (e *testEnv) tweet(t *testing.T, ownerID uint64, content string) *model.Tweet {
	t.Helper()
	now := e.tick()
	tw := &model.Tweet{
		BaseModel: model.BaseModel{CreatedAt: now, UpdatedAt: now},
		OwnerID:   ownerID,
		Content:   content,
	}
	require.NoError(t, e.db.Create(tw).Error)
	return tw
}

func (e *testEnv) like(t *testing.T, userID uint64, target model.LikeTarget) {
	t.Helper()
	now := e.tick()
	require.NoError(t, e.db.Create(&model.Like{
		BaseModel: model.BaseModel{CreatedAt: now, UpdatedAt: now},
		LikedBy:   userID,
		Target:    target,
	}).Error)
}

func (e *testEnv) subscribe(t *testing.T, subscriberID, channelID uint64) {
	t.Helper()
	now := e.tick()
	require.NoError(t, e.db.Create(&model.Subscription{
		BaseModel:    model.BaseModel{CreatedAt: now, UpdatedAt: now},
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	}).Error)
}

func (e *testEnv) countLikes(t *testing.T, target model.LikeTarget) int64 {
	t.Helper()
	n, err := e.likeRepo.CountByTarget(context.Background(), target)
	require.NoError(t, err)
	return n
}

func (e *testEnv) countRows(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Table(table).Count(&n).Error)
	return n
}

type fakeStorage struct {
	mu         sync.Mutex
	stored     []string
	deleted    []string
	failStore  bool
	failDelete bool
}

func (f *fakeStorage) Store(ctx context.Context, folder, path, contentType string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failStore {
		return "", "", errors.New("storage unavailable")
	}
	key := folder + "/" + filepath.Base(path)
	f.stored = append(f.stored, key)
	return "http://media.test/" + key, key, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return errors.New("storage unavailable")
	}
	f.deleted = append(f.deleted, key)
	return nil
}

type fakeQueue struct {
	mu   sync.Mutex
	keys []string
}

func (f *fakeQueue) PublishMediaCleanup(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	return nil
}

type fakeSearcher struct {
	mu      sync.Mutex
	ids     []uint64
	err     error
	queries []string
	indexed map[uint64]string
	removed []uint64
}

func (f *fakeSearcher) Search(ctx context.Context, query string, fields []string, fuzziness int) ([]uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return f.ids, f.err
}

func (f *fakeSearcher) Index(ctx context.Context, id uint64, title, description string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.indexed == nil {
		f.indexed = make(map[uint64]string)
	}
	f.indexed[id] = title
	return nil
}

func (f *fakeSearcher) Remove(ctx context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, id)
	return nil
}

type fakeProber struct {
	duration float64
	err      error
}

func (f *fakeProber) Duration(ctx context.Context, path string) (float64, error) {
	return f.duration, f.err
}
