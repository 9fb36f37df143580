package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/D4rfT/SistemaGestaoCursos/internal/service"
	"github.com/D4rfT/SistemaGestaoCursos/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
	debug     bool
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, debug bool) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, debug: debug}
}

// ExportCourseEnrollments 导出课程选课名单
// GET /api/v1/export/courses/:id/enrollments
func (h *ExportHandler) ExportCourseEnrollments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportCourseEnrollments(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, h.debug)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
