package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"Orion_Tube/internal/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestVideoCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	repo := NewVideoRepository(nil, rdb)
	ctx := context.Background()

	cached, err := repo.GetVideoCache(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, cached, "未命中返回 nil, nil")

	video := &model.Video{
		BaseModel: model.BaseModel{ID: 1},
		OwnerID:   9,
		Title:     "cached",
		Thumbnail: model.MediaRef{URL: "http://media.test/t.png", Key: "thumbnails/t.png"},
	}
	require.NoError(t, repo.SetVideoCache(ctx, video))
	assert.True(t, mr.Exists("video:info:1"))
	ttl := mr.TTL("video:info:1")
	assert.True(t, ttl >= 5*time.Minute && ttl <= 6*time.Minute, "ttl=%s", ttl)

	cached, err = repo.GetVideoCache(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, uint64(9), cached.OwnerID)
	assert.Equal(t, "thumbnails/t.png", cached.Thumbnail.Key)

	require.NoError(t, repo.DeleteVideoCache(ctx, 1))
	assert.False(t, mr.Exists("video:info:1"))

	mr.Close()
	_, err = repo.GetVideoCache(ctx, 1)
	assert.Error(t, err, "Redis本身不可用时返回错误")
}

func TestVideoCacheDisabled(t *testing.T) {
	repo := NewVideoRepository(nil, nil)
	ctx := context.Background()

	cached, err := repo.GetVideoCache(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, cached)
	assert.NoError(t, repo.SetVideoCache(ctx, &model.Video{}))
	assert.NoError(t, repo.DeleteVideoCache(ctx, 1))
}

func TestIncrementViewsIsAtomic(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVideoRepository(db, nil)

	mock.ExpectExec("UPDATE `videos` SET `views`=views \\+ \\? WHERE id = \\?").
		WithArgs(1, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementViews(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetPublishedIsConditional(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVideoRepository(db, nil)

	mock.ExpectExec("UPDATE `videos` SET `is_published`=\\?,`updated_at`=\\? WHERE id = \\? AND is_published = \\?").
		WithArgs(false, sqlmock.AnyArg(), 7, true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	changed, err := repo.SetPublished(context.Background(), 7, true, false)
	require.NoError(t, err)
	assert.False(t, changed, "条件不满足时没有行被修改")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCardsWithEmptyIDsSkipsQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVideoRepository(db, nil)

	cards, total, err := repo.ListCards(context.Background(), VideoFilter{IDs: []uint64{}}, VideoSort{Column: "v.created_at", Desc: true}, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, cards)
	assert.Empty(t, cards)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCardsSkipsScanPastLastPage(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVideoRepository(db, nil)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM videos AS v JOIN users AS u").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	cards, total, err := repo.ListCards(context.Background(), VideoFilter{PublishedOnly: true}, VideoSort{Column: "v.views"}, 10, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Empty(t, cards)
	assert.NoError(t, mock.ExpectationsWereMet())
}
