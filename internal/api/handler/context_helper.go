package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/D4rfT/SistemaGestaoCursos/pkg/response"
)

// MustGetAccountID 从 Gin 上下文中安全提取 account_id。
// 如果 JWT 中间件未正确注入 account_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetAccountID(c *gin.Context) (string, bool) {
	v, exists := c.Get("account_id")
	if !exists {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "not authenticated")
		return "", false
	}
	return s, true
}

// tokenInfo 提取当前 Token 的 jti 与过期时间（登出使用）
func tokenInfo(c *gin.Context) (string, time.Time) {
	jti := c.GetString("token_jti")
	exp, _ := c.Get("token_exp")
	expiresAt, _ := exp.(time.Time)
	return jti, expiresAt
}

// pathID 读取并校验路径参数中的 UUID
func pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, response.Response{
			Code:      response.CodeValidation,
			Message:   "one or more validation errors occurred",
			Errors:    []response.FieldError{{Field: name, Message: "must be a valid identifier"}},
			Timestamp: time.Now().UTC(),
		})
		return "", false
	}
	return id, true
}

// toggleFunc 启用/停用类操作的统一签名
type toggleFunc[T any] func(ctx context.Context, id, callerID string) (*T, error)
