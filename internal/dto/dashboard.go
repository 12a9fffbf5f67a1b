package dto

import (
	"time"

	"Orion_Tube/internal/model"
)

type ChannelStatsResponse struct {
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalViews       int64 `json:"totalViews"`
	TotalVideos      int64 `json:"totalVideos"`
	TotalLikes       int64 `json:"totalLikes"`
}

func ToChannelStatsResponse(s *model.ChannelStats) ChannelStatsResponse {
	return ChannelStatsResponse{
		TotalSubscribers: s.TotalSubscribers,
		TotalViews:       s.TotalViews,
		TotalVideos:      s.TotalVideos,
		TotalLikes:       s.TotalLikes,
	}
}

type ChannelVideoResponse struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       uint64    `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	LikesCount  int64     `json:"likesCount"`
}

func ToChannelVideoResponse(v *model.ChannelVideo) ChannelVideoResponse {
	return ChannelVideoResponse{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		VideoURL:    v.VideoURL,
		Thumbnail:   v.ThumbnailURL,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
		LikesCount:  v.LikesCount,
	}
}
