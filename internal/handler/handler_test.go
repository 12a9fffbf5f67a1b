package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Orion_Tube/internal/middleware"
	"Orion_Tube/internal/model"
	"Orion_Tube/internal/service"
	"Orion_Tube/pkg/errno"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	ErrorKind  string          `json:"errorKind"`
	Data       json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, r *gin.Engine, method, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	r.ServeHTTP(w, req)

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	assert.Equal(t, w.Code, body.StatusCode)
	return w, body
}

// 模拟认证中间件，把当前用户放进context
func asUser(userID uint64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != 0 {
			c.Set(middleware.ContextUserID, userID)
		}
		c.Next()
	}
}

type stubVideoService struct {
	service.VideoService

	calls  int
	query  service.VideoQuery
	viewer uint64
	page   int
	size   int
	err    error
}

func (s *stubVideoService) ListVideos(ctx context.Context, q service.VideoQuery, viewerID uint64, page, pageSize int) (*model.Page[model.VideoCard], error) {
	s.calls++
	s.query, s.viewer, s.page, s.size = q, viewerID, page, pageSize
	if s.err != nil {
		return nil, s.err
	}
	return &model.Page[model.VideoCard]{
		Items:      []model.VideoCard{{ID: 1, Title: "a", Owner: model.OwnerSummary{ID: 9, Username: "owner"}}},
		TotalCount: 25,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func (s *stubVideoService) GetVideoDetail(ctx context.Context, videoID, viewerID uint64) (*model.VideoDetail, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &model.VideoDetail{VideoCard: model.VideoCard{ID: videoID}}, nil
}

func newVideoRouter(svc service.VideoService, userID uint64) *gin.Engine {
	h := NewVideoHandler(svc, "")
	r := gin.New()
	r.Use(asUser(userID))
	r.GET("/videos", h.ListVideos)
	r.GET("/videos/:video_id", h.GetVideoDetail)
	return r
}

func TestListVideosParsesQuery(t *testing.T) {
	svc := &stubVideoService{}
	r := newVideoRouter(svc, 3)

	w, body := doRequest(t, r, http.MethodGet, "/videos?page=2&pageSize=500&query=cats&sortBy=views&sortType=asc&userId=9")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, svc.page)
	assert.Equal(t, service.MaxPageSize, svc.size, "超过上限的每页条数被截断")
	assert.Equal(t, "cats", svc.query.Query)
	assert.Equal(t, "views", svc.query.SortBy)
	assert.Equal(t, "asc", svc.query.SortType)
	require.NotNil(t, svc.query.OwnerID)
	assert.EqualValues(t, 9, *svc.query.OwnerID)
	assert.EqualValues(t, 3, svc.viewer)

	var page struct {
		Items []struct {
			ID    uint64 `json:"id"`
			Owner struct {
				Username string `json:"username"`
			} `json:"owner"`
		} `json:"items"`
		TotalCount  int64 `json:"totalCount"`
		TotalPages  int64 `json:"totalPages"`
		HasNextPage bool  `json:"hasNextPage"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "owner", page.Items[0].Owner.Username)
	assert.EqualValues(t, 25, page.TotalCount)
	assert.EqualValues(t, 1, page.TotalPages)
	assert.False(t, page.HasNextPage)
}

func TestListVideosPaginationDefaults(t *testing.T) {
	cases := []struct {
		query    string
		page     int
		pageSize int
	}{
		{"", service.DefaultPage, service.DefaultPageSize},
		{"?page=abc&limit=xyz", service.DefaultPage, service.DefaultPageSize},
		{"?page=0&limit=-5", service.DefaultPage, service.DefaultPageSize},
		{"?page=3&limit=20&pageSize=50", 3, 20},
		{"?pageSize=15", service.DefaultPage, 15},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			svc := &stubVideoService{}
			w, _ := doRequest(t, newVideoRouter(svc, 0), http.MethodGet, "/videos"+tc.query)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.page, svc.page)
			assert.Equal(t, tc.pageSize, svc.size)
			assert.Zero(t, svc.viewer)
		})
	}
}

func TestListVideosRejectsBadOwner(t *testing.T) {
	svc := &stubVideoService{}
	w, body := doRequest(t, newVideoRouter(svc, 0), http.MethodGet, "/videos?userId=abc")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(errno.InvalidArgument), body.ErrorKind)
	assert.Zero(t, svc.calls)
}

func TestGetVideoDetailErrors(t *testing.T) {
	for _, id := range []string{"abc", "0", "-1"} {
		svc := &stubVideoService{}
		w, body := doRequest(t, newVideoRouter(svc, 0), http.MethodGet, "/videos/"+id)
		assert.Equal(t, http.StatusBadRequest, w.Code, id)
		assert.Equal(t, "无效的视频ID", body.Message)
		assert.Zero(t, svc.calls)
	}

	svc := &stubVideoService{err: errno.NewNotFound("视频不存在")}
	w, body := doRequest(t, newVideoRouter(svc, 0), http.MethodGet, "/videos/42")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "视频不存在", body.Message)
	assert.Equal(t, string(errno.NotFound), body.ErrorKind)

	// 未知错误不向外暴露细节
	svc = &stubVideoService{err: errno.NewDependency(assert.AnError, "数据库操作失败")}
	w, body = doRequest(t, newVideoRouter(svc, 0), http.MethodGet, "/videos/42")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "数据库操作失败", body.Message)
	assert.NotContains(t, body.Message, assert.AnError.Error())
}

type stubSubscriptionService struct {
	service.SubscriptionService
	subscribed map[uint64]bool
}

func (s *stubSubscriptionService) ToggleSubscription(ctx context.Context, subscriberID, channelID uint64) (bool, error) {
	if subscriberID == channelID {
		return false, errno.NewInvalidArgument("不能订阅自己的频道")
	}
	s.subscribed[channelID] = !s.subscribed[channelID]
	return s.subscribed[channelID], nil
}

func TestToggleSubscriptionStatusCodes(t *testing.T) {
	h := NewSubscriptionHandler(&stubSubscriptionService{subscribed: map[uint64]bool{}})
	r := gin.New()
	r.Use(asUser(3))
	r.POST("/subscriptions/c/:channel_id", h.ToggleSubscription)

	w, body := doRequest(t, r, http.MethodPost, "/subscriptions/c/7")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"subscribed":true}`, string(body.Data))

	w, body = doRequest(t, r, http.MethodPost, "/subscriptions/c/7")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"subscribed":false}`, string(body.Data))

	w, body = doRequest(t, r, http.MethodPost, "/subscriptions/c/3")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(errno.InvalidArgument), body.ErrorKind)
}

type stubLikeService struct {
	service.LikeService
	liked bool
}

func (s *stubLikeService) ToggleCommentLike(ctx context.Context, actorID, commentID uint64) (bool, error) {
	if actorID == 0 {
		return false, errno.NewUnauthorized("请先登录")
	}
	s.liked = !s.liked
	return s.liked, nil
}

func TestToggleLikeResponse(t *testing.T) {
	h := NewLikeHandler(&stubLikeService{})
	r := gin.New()
	r.Use(asUser(3))
	r.POST("/likes/toggle/c/:comment_id", h.ToggleCommentLike)

	w, body := doRequest(t, r, http.MethodPost, "/likes/toggle/c/5")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"isLiked":true}`, string(body.Data))
	assert.Equal(t, "点赞成功", body.Message)

	_, body = doRequest(t, r, http.MethodPost, "/likes/toggle/c/5")
	assert.JSONEq(t, `{"isLiked":false}`, string(body.Data))

	w, body = doRequest(t, r, http.MethodPost, "/likes/toggle/c/zero")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "无效的评论ID", body.Message)
}
