package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthcheckHandler interface {
	Healthcheck(c *gin.Context)
}

type healthcheckHandler struct {
	startedAt time.Time
	now       func() time.Time
}

func NewHealthcheckHandler() HealthcheckHandler {
	return &healthcheckHandler{startedAt: time.Now(), now: time.Now}
}

func (h *healthcheckHandler) Healthcheck(c *gin.Context) {
	now := h.now()
	sendSuccess(c, http.StatusOK, gin.H{
		"status":    "ok",
		"uptime":    now.Sub(h.startedAt).Seconds(),
		"timestamp": now.UnixMilli(),
		"message":   "服务运行正常",
	}, "健康检查通过")
}
