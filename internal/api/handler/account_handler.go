package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/D4rfT/SistemaGestaoCursos/internal/dto"
	"github.com/D4rfT/SistemaGestaoCursos/internal/service"
	"github.com/D4rfT/SistemaGestaoCursos/pkg/response"
)

// AccountHandler 账号管理 HTTP 处理器
type AccountHandler struct {
	accountSvc service.AccountService
	debug      bool
}

// NewAccountHandler 创建 AccountHandler
func NewAccountHandler(accountSvc service.AccountService, debug bool) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc, debug: debug}
}

// ListAccounts 账号列表（分页）
// GET /api/v1/accounts
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	var req dto.AccountListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	list, total, err := h.accountSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, h.debug)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetAccount 账号详情
// GET /api/v1/accounts/:id
func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	account, err := h.accountSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, h.debug)
		return
	}

	response.OK(c, account)
}

// CreateAccount 创建账号
// POST /api/v1/accounts
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	callerID, ok := MustGetAccountID(c)
	if !ok {
		return
	}

	account, err := h.accountSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		response.FromError(c, err, h.debug)
		return
	}

	response.Created(c, account)
}
