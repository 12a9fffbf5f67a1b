package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Orion_Tube/pkg/errno"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Register(ctx, RegisterInput{
		Username: "Alice",
		FullName: "Alice Liddell",
		Password: "rabbit-hole",
		Avatar:   &Upload{Path: "/tmp/me.png", ContentType: "image/png"},
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "rabbit-hole", user.Password)
	assert.Equal(t, "avatars/me.png", user.Avatar.Key)

	_, err = env.users.Register(ctx, RegisterInput{Username: "ALICE", FullName: "x", Password: "y"})
	assert.True(t, errno.Is(err, errno.InvalidArgument), "用户名大小写不敏感")
	_, err = env.users.Register(ctx, RegisterInput{Username: "bob", FullName: "Bob"})
	assert.True(t, errno.Is(err, errno.InvalidArgument))

	token, logged, err := env.users.Login(ctx, " Alice ", "rabbit-hole")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.EqualValues(t, user.ID, claims["user_id"])
	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)

	_, _, err = env.users.Login(ctx, "alice", "wrong")
	assert.True(t, errno.Is(err, errno.Unauthorized))
	_, _, err = env.users.Login(ctx, "nobody", "rabbit-hole")
	assert.True(t, errno.Is(err, errno.Unauthorized))
}

func TestLoginWithoutSecret(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.userRepo, env.videoRepo, nil, "", 0)

	_, _, err := svc.Login(context.Background(), "alice", "pw")
	assert.True(t, errno.Is(err, errno.Internal))
}

func TestRegisterAvatarWithoutStorage(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.userRepo, env.videoRepo, nil, "secret", 0)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "carol",
		FullName: "Carol",
		Password: "pw",
		Avatar:   &Upload{Path: "a.png"},
	})
	assert.True(t, errno.Is(err, errno.DependencyFailure))
	assert.EqualValues(t, 0, env.countRows(t, "users"))
}

func TestProfileAndWatchHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner")
	viewer := env.user(t, "viewer")
	gone := env.video(t, owner.ID, true)
	kept := env.video(t, owner.ID, true)

	profile, err := env.users.Profile(ctx, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, "viewer", profile.Username)
	_, err = env.users.Profile(ctx, 999)
	assert.True(t, errno.Is(err, errno.NotFound))

	require.NoError(t, env.userRepo.AppendWatchHistory(ctx, viewer.ID, gone.ID))
	require.NoError(t, env.userRepo.AppendWatchHistory(ctx, viewer.ID, kept.ID))
	require.NoError(t, env.videos.DeleteVideo(ctx, owner.ID, gone.ID))

	history, err := env.users.WatchHistory(ctx, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{kept.ID}, cardIDs(history), "已删除的视频从观看记录里跳过")

	_, err = env.users.WatchHistory(ctx, 0)
	assert.True(t, errno.Is(err, errno.Unauthorized))
}
