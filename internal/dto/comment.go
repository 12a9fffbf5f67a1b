package dto

import (
	"time"

	"Orion_Tube/internal/model"
)

// CommentResponse 评论列表中的一条，带作者和点赞信息
type CommentResponse struct {
	ID         uint64    `json:"id"`
	VideoID    uint64    `json:"videoId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Owner      UserInfo  `json:"owner"`
	LikesCount int64     `json:"likesCount"`
	IsLiked    bool      `json:"isLiked"`
}

func ToCommentResponse(c *model.CommentView) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		VideoID:    c.VideoID,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		Owner:      ToUserInfo(c.Owner),
		LikesCount: c.LikesCount,
		IsLiked:    c.IsLiked,
	}
}

// CommentItemResponse 写操作返回的评论本身
type CommentItemResponse struct {
	ID        uint64    `json:"id"`
	VideoID   uint64    `json:"videoId"`
	OwnerID   uint64    `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToCommentItemResponse(c *model.Comment) CommentItemResponse {
	return CommentItemResponse{
		ID:        c.ID,
		VideoID:   c.VideoID,
		OwnerID:   c.OwnerID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
