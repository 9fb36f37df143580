package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/D4rfT/SistemaGestaoCursos/internal/service"
	"github.com/D4rfT/SistemaGestaoCursos/pkg/response"
)

// MigrationHandler 数据迁移 HTTP 处理器
type MigrationHandler struct {
	migrationSvc service.MigrationService
	debug        bool
}

// NewMigrationHandler 创建 MigrationHandler
func NewMigrationHandler(migrationSvc service.MigrationService, debug bool) *MigrationHandler {
	return &MigrationHandler{migrationSvc: migrationSvc, debug: debug}
}

// LinkStudentsToAccounts 为历史学生补建或关联账号
// POST /api/v1/migrations/students-to-accounts
func (h *MigrationHandler) LinkStudentsToAccounts(c *gin.Context) {
	callerID, ok := MustGetAccountID(c)
	if !ok {
		return
	}

	result, err := h.migrationSvc.LinkStudentsToAccounts(c.Request.Context(), callerID)
	if err != nil {
		response.FromError(c, err, h.debug)
		return
	}
	response.OK(c, result)
}
