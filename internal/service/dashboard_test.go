package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Orion_Tube/internal/model"
	"Orion_Tube/pkg/errno"
)

func TestGetChannelStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.user(t, "creator")
	fan := env.user(t, "fan")
	other := env.user(t, "other")

	published := env.videoWithViews(t, creator.ID, true, 10)
	draft := env.videoWithViews(t, creator.ID, false, 3)
	foreign := env.videoWithViews(t, other.ID, true, 100)
	comment := env.comment(t, fan.ID, published.ID, "hi")

	env.subscribe(t, fan.ID, creator.ID)
	env.subscribe(t, other.ID, creator.ID)
	env.subscribe(t, creator.ID, other.ID)
	env.like(t, fan.ID, model.VideoTarget(published.ID))
	env.like(t, other.ID, model.VideoTarget(draft.ID))
	env.like(t, fan.ID, model.VideoTarget(foreign.ID))
	env.like(t, other.ID, model.CommentTarget(comment.ID))

	stats, err := env.dashboard.GetChannelStats(ctx, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ChannelStats{
		TotalSubscribers: 2,
		TotalViews:       13,
		TotalVideos:      2,
		TotalLikes:       2,
	}, *stats)

	empty, err := env.dashboard.GetChannelStats(ctx, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ChannelStats{}, *empty)

	_, err = env.dashboard.GetChannelStats(ctx, 0)
	assert.True(t, errno.Is(err, errno.Unauthorized))
}

func TestListChannelVideos(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.user(t, "creator")
	fan := env.user(t, "fan")
	published := env.video(t, creator.ID, true)
	draft := env.video(t, creator.ID, false)
	env.video(t, fan.ID, true)
	env.like(t, fan.ID, model.VideoTarget(published.ID))

	videos, err := env.dashboard.ListChannelVideos(ctx, creator.ID)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, draft.ID, videos[0].ID)
	assert.False(t, videos[0].IsPublished)
	assert.EqualValues(t, 0, videos[0].LikesCount)
	assert.Equal(t, published.ID, videos[1].ID)
	assert.EqualValues(t, 1, videos[1].LikesCount)
	assert.Equal(t, published.VideoFile.URL, videos[1].VideoURL)

	_, err = env.dashboard.ListChannelVideos(ctx, 0)
	assert.True(t, errno.Is(err, errno.Unauthorized))
}
