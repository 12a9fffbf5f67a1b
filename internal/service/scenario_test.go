package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Orion_Tube/internal/model"
	"Orion_Tube/pkg/errno"
)

// 端到端流程：注册、发布、点赞、浏览、删除都走服务层

func registerUser(t *testing.T, env *testEnv, username string) *model.User {
	t.Helper()
	u, err := env.users.Register(context.Background(), RegisterInput{Username: username, FullName: username, Password: "pw-" + username})
	require.NoError(t, err)
	return u
}

func publishVideo(t *testing.T, env *testEnv, ownerID uint64, title string) *model.Video {
	t.Helper()
	v, err := env.videos.PublishVideo(context.Background(), ownerID, PublishVideoInput{
		Title:       title,
		Description: "about " + title,
		VideoFile:   &Upload{Path: "/tmp/" + title + ".mp4", ContentType: "video/mp4"},
		Thumbnail:   &Upload{Path: "/tmp/" + title + ".png", ContentType: "image/png"},
	})
	require.NoError(t, err)
	return v
}

func TestScenarioLikeTwiceLeavesNoLikes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := registerUser(t, env, "a")
	b := registerUser(t, env, "b")
	v := publishVideo(t, env, a.ID, "v")

	liked, err := env.likes.ToggleVideoLike(ctx, b.ID, v.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	liked, err = env.likes.ToggleVideoLike(ctx, b.ID, v.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	detail, err := env.videos.GetVideoDetail(ctx, v.ID, a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, detail.LikesCount)
	assert.False(t, detail.IsLiked)
}

func TestScenarioPublishedVideoVisibleToAnonymous(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := registerUser(t, env, "a")
	v := publishVideo(t, env, a.ID, "v")
	require.True(t, v.IsPublished)

	result, err := env.videos.ListVideos(ctx, VideoQuery{}, 0, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint64{v.ID}, cardIDs(result.Items))
}

func TestScenarioDeleteVideoRemovesCommentsAndLikes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := registerUser(t, env, "a")
	b := registerUser(t, env, "b")
	c := registerUser(t, env, "c")
	v := publishVideo(t, env, a.ID, "v")

	for i, author := range []uint64{a.ID, b.ID, c.ID} {
		_, err := env.comments.AddComment(ctx, author, v.ID, "comment "+string(rune('1'+i)))
		require.NoError(t, err)
	}
	for _, fan := range []uint64{b.ID, c.ID} {
		_, err := env.likes.ToggleVideoLike(ctx, fan, v.ID)
		require.NoError(t, err)
	}
	before, err := env.comments.ListComments(ctx, v.ID, 0, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 3, before.TotalCount)

	require.NoError(t, env.videos.DeleteVideo(ctx, a.ID, v.ID))

	_, err = env.comments.ListComments(ctx, v.ID, 0, 1, 10)
	assert.True(t, errno.Is(err, errno.NotFound))
	assert.EqualValues(t, 0, env.countLikes(t, model.VideoTarget(v.ID)))
	assert.EqualValues(t, 0, env.countRows(t, "comments"))
}
