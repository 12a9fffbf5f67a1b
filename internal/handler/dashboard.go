package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Orion_Tube/internal/dto"
	"Orion_Tube/internal/service"
)

type DashboardHandler interface {
	GetChannelStats(c *gin.Context)
	ListChannelVideos(c *gin.Context)
}

type dashboardHandler struct {
	DashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) DashboardHandler {
	return &dashboardHandler{DashboardService: dashboardService}
}

// 只能看自己的频道，ID取自令牌
func (h *dashboardHandler) GetChannelStats(c *gin.Context) {
	stats, err := h.DashboardService.GetChannelStats(c.Request.Context(), currentUserID(c))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToChannelStatsResponse(stats), "获取频道统计成功")
}

func (h *dashboardHandler) ListChannelVideos(c *gin.Context) {
	videos, err := h.DashboardService.ListChannelVideos(c.Request.Context(), currentUserID(c))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToList(videos, dto.ToChannelVideoResponse), "获取频道视频成功")
}
