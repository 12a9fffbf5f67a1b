package dto

import (
	"time"

	"Orion_Tube/internal/model"
)

type TweetResponse struct {
	ID         uint64    `json:"id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Owner      UserInfo  `json:"owner"`
	LikesCount int64     `json:"likesCount"`
	IsLiked    bool      `json:"isLiked"`
}

func ToTweetResponse(t *model.TweetView) TweetResponse {
	return TweetResponse{
		ID:         t.ID,
		Content:    t.Content,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
		Owner:      ToUserInfo(t.Owner),
		LikesCount: t.LikesCount,
		IsLiked:    t.IsLiked,
	}
}

type TweetItemResponse struct {
	ID        uint64    `json:"id"`
	OwnerID   uint64    `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToTweetItemResponse(t *model.Tweet) TweetItemResponse {
	return TweetItemResponse{
		ID:        t.ID,
		OwnerID:   t.OwnerID,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
