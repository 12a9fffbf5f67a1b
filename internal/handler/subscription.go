package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Orion_Tube/internal/dto"
	"Orion_Tube/internal/service"
)

type SubscriptionHandler interface {
	ToggleSubscription(c *gin.Context)
	ListChannelSubscribers(c *gin.Context)
	ListSubscribedChannels(c *gin.Context)
}

type subscriptionHandler struct {
	SubscriptionService service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService service.SubscriptionService) SubscriptionHandler {
	return &subscriptionHandler{SubscriptionService: subscriptionService}
}

// 新建订阅返回201，取消订阅返回200
func (h *subscriptionHandler) ToggleSubscription(c *gin.Context) {
	channelID, ok := parseID(c, "channel_id", "频道ID")
	if !ok {
		return
	}
	subscribed, err := h.SubscriptionService.ToggleSubscription(c.Request.Context(), currentUserID(c), channelID)
	if err != nil {
		sendError(c, err)
		return
	}
	if subscribed {
		sendSuccess(c, http.StatusCreated, gin.H{"subscribed": true}, "订阅成功")
		return
	}
	sendSuccess(c, http.StatusOK, gin.H{"subscribed": false}, "取消订阅成功")
}

func (h *subscriptionHandler) ListChannelSubscribers(c *gin.Context) {
	channelID, ok := parseID(c, "channel_id", "频道ID")
	if !ok {
		return
	}
	subscribers, err := h.SubscriptionService.ListChannelSubscribers(c.Request.Context(), channelID)
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToList(subscribers, dto.ToSubscriberResponse), "获取订阅者成功")
}

func (h *subscriptionHandler) ListSubscribedChannels(c *gin.Context) {
	subscriberID, ok := parseID(c, "subscriber_id", "用户ID")
	if !ok {
		return
	}
	channels, err := h.SubscriptionService.ListSubscribedChannels(c.Request.Context(), subscriberID)
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToList(channels, dto.ToChannelResponse), "获取订阅频道成功")
}
