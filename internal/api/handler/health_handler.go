package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查
type HealthHandler struct {
	ping func(ctx context.Context) error
}

// NewHealthHandler 创建 HealthHandler；ping 为 nil 时只报告进程存活
func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// Check 探测数据库连通性
// GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	if h.ping == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	if err := h.ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
