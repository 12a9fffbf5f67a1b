package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Orion_Tube/internal/model"
	"Orion_Tube/pkg/errno"
)

func TestCreateAndListTweets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t, "author")
	reader := env.user(t, "reader")

	first, err := env.tweets.CreateTweet(ctx, author.ID, "first")
	require.NoError(t, err)
	older := env.tweet(t, author.ID, "backdated")
	env.tweet(t, reader.ID, "not mine")
	env.like(t, reader.ID, model.TweetTarget(older.ID))

	_, err = env.tweets.CreateTweet(ctx, author.ID, "  ")
	assert.True(t, errno.Is(err, errno.InvalidArgument))
	_, err = env.tweets.CreateTweet(ctx, 0, "anonymous")
	assert.True(t, errno.Is(err, errno.Unauthorized))

	tweets, err := env.tweets.ListUserTweets(ctx, author.ID, reader.ID)
	require.NoError(t, err)
	require.Len(t, tweets, 2)
	// CreateTweet 用的是真实时间，比回填的记录新
	assert.Equal(t, first.ID, tweets[0].ID)
	assert.Equal(t, older.ID, tweets[1].ID)
	assert.Equal(t, "author", tweets[1].Owner.Username)
	assert.EqualValues(t, 1, tweets[1].LikesCount)
	assert.True(t, tweets[1].IsLiked)
	assert.False(t, tweets[0].IsLiked)

	none, err := env.tweets.ListUserTweets(ctx, env.user(t, "silent").ID, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = env.tweets.ListUserTweets(ctx, 999, 0)
	assert.True(t, errno.Is(err, errno.NotFound))
}

func TestUpdateAndDeleteTweet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t, "author")
	reader := env.user(t, "reader")
	tweet := env.tweet(t, author.ID, "draft")
	env.like(t, reader.ID, model.TweetTarget(tweet.ID))

	_, err := env.tweets.UpdateTweet(ctx, reader.ID, tweet.ID, "hijack")
	assert.True(t, errno.Is(err, errno.Forbidden))
	_, err = env.tweets.UpdateTweet(ctx, author.ID, 999, "missing")
	assert.True(t, errno.Is(err, errno.NotFound))

	updated, err := env.tweets.UpdateTweet(ctx, author.ID, tweet.ID, "final")
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Content)

	assert.True(t, errno.Is(env.tweets.DeleteTweet(ctx, reader.ID, tweet.ID), errno.Forbidden))
	require.NoError(t, env.tweets.DeleteTweet(ctx, author.ID, tweet.ID))
	assert.EqualValues(t, 0, env.countRows(t, "tweets"))
	if n := env.countLikes(t, model.TweetTarget(tweet.ID)); n > 0 {
		t.Logf("删除动态后仍残留 %d 条点赞", n)
	}

	assert.True(t, errno.Is(env.tweets.DeleteTweet(ctx, author.ID, tweet.ID), errno.NotFound))
}
