package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Orion_Tube/internal/dto"
	"Orion_Tube/internal/service"
	"Orion_Tube/pkg/errno"
)

type TweetHandler interface {
	CreateTweet(c *gin.Context)
	ListUserTweets(c *gin.Context)
	UpdateTweet(c *gin.Context)
	DeleteTweet(c *gin.Context)
}

type tweetHandler struct {
	TweetService service.TweetService
}

func NewTweetHandler(tweetService service.TweetService) TweetHandler {
	return &tweetHandler{TweetService: tweetService}
}

type TweetRequest struct {
	Content string `json:"content" form:"content"`
}

func (h *tweetHandler) CreateTweet(c *gin.Context) {
	var req TweetRequest
	if err := c.ShouldBind(&req); err != nil {
		sendError(c, errno.Wrap(errno.InvalidArgument, err, "无效的参数"))
		return
	}
	tweet, err := h.TweetService.CreateTweet(c.Request.Context(), currentUserID(c), req.Content)
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusCreated, dto.ToTweetItemResponse(tweet), "动态发布成功")
}

func (h *tweetHandler) ListUserTweets(c *gin.Context) {
	userID, ok := parseID(c, "user_id", "用户ID")
	if !ok {
		return
	}
	tweets, err := h.TweetService.ListUserTweets(c.Request.Context(), userID, currentUserID(c))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToList(tweets, dto.ToTweetResponse), "获取动态成功")
}

func (h *tweetHandler) UpdateTweet(c *gin.Context) {
	tweetID, ok := parseID(c, "tweet_id", "动态ID")
	if !ok {
		return
	}
	var req TweetRequest
	if err := c.ShouldBind(&req); err != nil {
		sendError(c, errno.Wrap(errno.InvalidArgument, err, "无效的参数"))
		return
	}
	tweet, err := h.TweetService.UpdateTweet(c.Request.Context(), currentUserID(c), tweetID, req.Content)
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToTweetItemResponse(tweet), "动态更新成功")
}

func (h *tweetHandler) DeleteTweet(c *gin.Context) {
	tweetID, ok := parseID(c, "tweet_id", "动态ID")
	if !ok {
		return
	}
	if err := h.TweetService.DeleteTweet(c.Request.Context(), currentUserID(c), tweetID); err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, gin.H{}, "动态删除成功")
}
