package dto

import (
	"time"

	"Orion_Tube/internal/model"
)

type SubscriberResponse struct {
	UserInfo
	SubscribersCount       int64     `json:"subscribersCount"`
	SubscribedToSubscriber bool      `json:"subscribedToSubscriber"`
	SubscribedAt           time.Time `json:"subscribedAt"`
}

func ToSubscriberResponse(s *model.SubscriberView) SubscriberResponse {
	return SubscriberResponse{
		UserInfo: UserInfo{
			ID:       s.ID,
			Username: s.Username,
			FullName: s.FullName,
			Avatar:   s.AvatarURL,
		},
		SubscribersCount:       s.SubscribersCount,
		SubscribedToSubscriber: s.SubscribedToSubscriber,
		SubscribedAt:           s.SubscribedAt,
	}
}

// ChannelResponse 订阅的频道，没有已发布视频时 latestVideo 为 null
type ChannelResponse struct {
	UserInfo
	SubscribedAt time.Time          `json:"subscribedAt"`
	LatestVideo  *VideoCardResponse `json:"latestVideo"`
}

func ToChannelResponse(c *model.ChannelView) ChannelResponse {
	resp := ChannelResponse{
		UserInfo: UserInfo{
			ID:       c.ID,
			Username: c.Username,
			FullName: c.FullName,
			Avatar:   c.AvatarURL,
		},
		SubscribedAt: c.SubscribedAt,
	}
	if c.LatestVideo != nil {
		latest := ToVideoCardResponse(c.LatestVideo)
		resp.LatestVideo = &latest
	}
	return resp
}
