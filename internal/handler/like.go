package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"Orion_Tube/internal/dto"
	"Orion_Tube/internal/service"
	"Orion_Tube/pkg/logger"
)

type LikeHandler interface {
	ToggleVideoLike(c *gin.Context)
	ToggleCommentLike(c *gin.Context)
	ToggleTweetLike(c *gin.Context)
	GetLikedVideos(c *gin.Context)
}

type likeHandler struct {
	LikeService service.LikeService
}

func NewLikeHandler(likeService service.LikeService) LikeHandler {
	return &likeHandler{LikeService: likeService}
}

func (h *likeHandler) ToggleVideoLike(c *gin.Context) {
	h.toggle(c, "video_id", "视频ID", h.LikeService.ToggleVideoLike)
}

func (h *likeHandler) ToggleCommentLike(c *gin.Context) {
	h.toggle(c, "comment_id", "评论ID", h.LikeService.ToggleCommentLike)
}

func (h *likeHandler) ToggleTweetLike(c *gin.Context) {
	h.toggle(c, "tweet_id", "动态ID", h.LikeService.ToggleTweetLike)
}

// 切换点赞：1、从URL取出对象ID 2、从认证后的context获取userID 3、执行切换，返回切换后的状态
func (h *likeHandler) toggle(c *gin.Context, param, label string, fn func(ctx context.Context, actorID, targetID uint64) (bool, error)) {
	targetID, ok := parseID(c, param, label)
	if !ok {
		return
	}
	userID := currentUserID(c)
	liked, err := fn(c.Request.Context(), userID, targetID)
	if err != nil {
		sendError(c, err)
		return
	}
	logger.Log.WithField("user_id", userID).WithField(param, targetID).WithField("is_liked", liked).Info("点赞状态切换成功")

	message := "取消点赞成功"
	if liked {
		message = "点赞成功"
	}
	sendSuccess(c, http.StatusOK, gin.H{"isLiked": liked}, message)
}

func (h *likeHandler) GetLikedVideos(c *gin.Context) {
	videos, err := h.LikeService.GetLikedVideos(c.Request.Context(), currentUserID(c))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToList(videos, dto.ToLikedVideoResponse), "获取点赞视频成功")
}
