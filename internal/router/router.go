package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Orion_Tube/internal/handler"
	"Orion_Tube/internal/middleware"
)

type Handlers struct {
	User         handler.UserHandler
	Video        handler.VideoHandler
	Comment      handler.CommentHandler
	Tweet        handler.TweetHandler
	Like         handler.LikeHandler
	Subscription handler.SubscriptionHandler
	Dashboard    handler.DashboardHandler
	Healthcheck  handler.HealthcheckHandler
}

// SetupRouter 匿名可读的接口挂 OptionalAuth，其余接口必须登录
func SetupRouter(h Handlers, jwtSecret string, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.Default()
	if limiter != nil {
		r.Use(limiter.Middleware())
	}
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/healthcheck", h.Healthcheck.Healthcheck)

		userGroup := apiV1.Group("/users")
		{
			userGroup.POST("/register", h.User.Register)
			userGroup.POST("/login", h.User.Login)
		}

		public := apiV1.Group("/")
		public.Use(middleware.OptionalAuth(jwtSecret))
		{
			public.GET("/videos", h.Video.ListVideos)
			public.GET("/videos/:video_id", h.Video.GetVideoDetail)
			public.GET("/videos/:video_id/comments", h.Comment.ListComments)
			public.GET("/tweets/user/:user_id", h.Tweet.ListUserTweets)
		}

		authorized := apiV1.Group("/")
		authorized.Use(middleware.AuthMiddleware(jwtSecret))
		{
			authorized.GET("/users/profile", h.User.GetProfile)
			authorized.GET("/users/history", h.User.GetWatchHistory)

			authorized.POST("/videos", h.Video.PublishVideo)
			authorized.PATCH("/videos/:video_id", h.Video.UpdateVideo)
			authorized.DELETE("/videos/:video_id", h.Video.DeleteVideo)
			authorized.PATCH("/videos/:video_id/publish", h.Video.TogglePublishStatus)

			authorized.POST("/videos/:video_id/comments", h.Comment.AddComment)
			authorized.PATCH("/comments/:comment_id", h.Comment.UpdateComment)
			authorized.DELETE("/comments/:comment_id", h.Comment.DeleteComment)

			authorized.POST("/tweets", h.Tweet.CreateTweet)
			authorized.PATCH("/tweets/:tweet_id", h.Tweet.UpdateTweet)
			authorized.DELETE("/tweets/:tweet_id", h.Tweet.DeleteTweet)

			authorized.POST("/likes/toggle/v/:video_id", h.Like.ToggleVideoLike)
			authorized.POST("/likes/toggle/c/:comment_id", h.Like.ToggleCommentLike)
			authorized.POST("/likes/toggle/t/:tweet_id", h.Like.ToggleTweetLike)
			authorized.GET("/likes/videos", h.Like.GetLikedVideos)

			authorized.POST("/subscriptions/c/:channel_id", h.Subscription.ToggleSubscription)
			authorized.GET("/subscriptions/c/:channel_id", h.Subscription.ListChannelSubscribers)
			authorized.GET("/subscriptions/u/:subscriber_id", h.Subscription.ListSubscribedChannels)

			authorized.GET("/dashboard/stats", h.Dashboard.GetChannelStats)
			authorized.GET("/dashboard/videos", h.Dashboard.ListChannelVideos)
		}
	}

	return r
}
