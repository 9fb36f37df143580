package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/D4rfT/SistemaGestaoCursos/pkg/response"
)

// BodyLimit 全局请求体大小限制中间件
// maxBytes: 允许的最大请求体字节数（如 1<<20 = 1MB）
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 声明长度已超限时直接拒绝
		if c.Request.ContentLength > maxBytes {
			response.AbortWithError(c, http.StatusRequestEntityTooLarge, response.CodeBadRequest, "request body too large")
			return
		}

		// 未声明长度（chunked）时由 MaxBytesReader 截断，绑定阶段报错
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
