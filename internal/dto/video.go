package dto

import (
	"time"

	"Orion_Tube/internal/model"
)

type VideoCardResponse struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       uint64    `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	Owner       UserInfo  `json:"owner"`
}

func ToVideoCardResponse(v *model.VideoCard) VideoCardResponse {
	return VideoCardResponse{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		VideoURL:    v.VideoURL,
		Thumbnail:   v.ThumbnailURL,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
		Owner:       ToUserInfo(v.Owner),
	}
}

type VideoOwnerResponse struct {
	UserInfo
	SubscribersCount int64 `json:"subscribersCount"`
	IsSubscribed     bool  `json:"isSubscribed"`
}

type VideoDetailResponse struct {
	ID          uint64             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	VideoURL    string             `json:"videoFile"`
	Thumbnail   string             `json:"thumbnail"`
	Duration    float64            `json:"duration"`
	Views       uint64             `json:"views"`
	IsPublished bool               `json:"isPublished"`
	CreatedAt   time.Time          `json:"createdAt"`
	Owner       VideoOwnerResponse `json:"owner"`
	LikesCount  int64              `json:"likesCount"`
	IsLiked     bool               `json:"isLiked"`
}

func ToVideoDetailResponse(v *model.VideoDetail) VideoDetailResponse {
	return VideoDetailResponse{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		VideoURL:    v.VideoURL,
		Thumbnail:   v.ThumbnailURL,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
		Owner: VideoOwnerResponse{
			UserInfo:         ToUserInfo(v.Owner),
			SubscribersCount: v.OwnerSubscribersCount,
			IsSubscribed:     v.OwnerIsSubscribed,
		},
		LikesCount: v.LikesCount,
		IsLiked:    v.IsLiked,
	}
}

// VideoResponse 写操作返回的视频本身，不带作者信息
type VideoResponse struct {
	ID          uint64    `json:"id"`
	OwnerID     uint64    `json:"owner"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       uint64    `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ToVideoResponse(v *model.Video) VideoResponse {
	return VideoResponse{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Title:       v.Title,
		Description: v.Description,
		VideoURL:    v.VideoFile.URL,
		Thumbnail:   v.Thumbnail.URL,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

type PublishStatusResponse struct {
	VideoID     uint64 `json:"videoId"`
	IsPublished bool   `json:"isPublished"`
}

type LikedVideoResponse struct {
	VideoCardResponse
	LikedAt time.Time `json:"likedAt"`
}

func ToLikedVideoResponse(v *model.LikedVideo) LikedVideoResponse {
	return LikedVideoResponse{
		VideoCardResponse: ToVideoCardResponse(&v.VideoCard),
		LikedAt:           v.LikedAt,
	}
}
