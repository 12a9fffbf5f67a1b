package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Orion_Tube/pkg/errno"
	"Orion_Tube/pkg/logger"
)

// sendSuccess 统一的成功响应：{statusCode, data, message}
func sendSuccess(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, gin.H{
		"statusCode": status,
		"data":       data,
		"message":    message,
	})
}

// sendError 统一的失败响应：{statusCode, message, errorKind}；5xx 记录完整的错误链，其余只记一条Warn
func sendError(c *gin.Context, err error) {
	kind := errno.KindOf(err)
	status := kind.StatusCode()

	logCtx := logger.Log.WithError(err).
		WithField("path", c.FullPath()).
		WithField("status", status)
	if status >= http.StatusInternalServerError {
		logCtx.Error("请求处理失败")
	} else {
		logCtx.Warn("请求被拒绝")
	}

	c.AbortWithStatusJSON(status, gin.H{
		"statusCode": status,
		"message":    errno.MessageOf(err),
		"errorKind":  kind,
	})
}
