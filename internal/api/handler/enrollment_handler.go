package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/D4rfT/SistemaGestaoCursos/internal/dto"
	"github.com/D4rfT/SistemaGestaoCursos/internal/service"
	"github.com/D4rfT/SistemaGestaoCursos/pkg/response"
)

// EnrollmentHandler 选课模块 HTTP 处理器
type EnrollmentHandler struct {
	enrollmentSvc service.EnrollmentService
	debug         bool
}

// NewEnrollmentHandler 创建 EnrollmentHandler
func NewEnrollmentHandler(enrollmentSvc service.EnrollmentService, debug bool) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentSvc: enrollmentSvc, debug: debug}
}

// ListEnrollments 选课列表（分页）
// GET /api/v1/enrollments
func (h *EnrollmentHandler) ListEnrollments(c *gin.Context) {
	var req dto.EnrollmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	list, total, err := h.enrollmentSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, h.debug)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// ListMyEnrollments 当前登录学生的选课
// GET /api/v1/enrollments/me
func (h *EnrollmentHandler) ListMyEnrollments(c *gin.Context) {
	accountID, ok := MustGetAccountID(c)
	if !ok {
		return
	}

	list, err := h.enrollmentSvc.ListByAccount(c.Request.Context(), accountID)
	if err != nil {
		response.FromError(c, err, h.debug)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// GetEnrollment 选课详情
// GET /api/v1/enrollments/:id
func (h *EnrollmentHandler) GetEnrollment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	enrollment, err := h.enrollmentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, h.debug)
		return
	}
	response.OK(c, enrollment)
}

// ListByStudent 某学生的选课
// GET /api/v1/students/:id/enrollments
func (h *EnrollmentHandler) ListByStudent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.enrollmentSvc.ListByStudent(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, h.debug)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// ListByCourse 某课程的选课
// GET /api/v1/courses/:id/enrollments
func (h *EnrollmentHandler) ListByCourse(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.enrollmentSvc.ListByCourse(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, h.debug)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// CreateEnrollment 学生选课
// POST /api/v1/enrollments
func (h *EnrollmentHandler) CreateEnrollment(c *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	callerID, ok := MustGetAccountID(c)
	if !ok {
		return
	}

	enrollment, err := h.enrollmentSvc.Enroll(c.Request.Context(), &req, callerID)
	if err != nil {
		response.FromError(c, err, h.debug)
		return
	}
	response.Created(c, enrollment)
}

// ActivateEnrollment 恢复已取消的选课
// PATCH /api/v1/enrollments/:id/activate
func (h *EnrollmentHandler) ActivateEnrollment(c *gin.Context) {
	h.toggle(c, h.enrollmentSvc.Reactivate)
}

// DeactivateEnrollment 取消选课
// PATCH /api/v1/enrollments/:id/deactivate
func (h *EnrollmentHandler) DeactivateEnrollment(c *gin.Context) {
	h.toggle(c, h.enrollmentSvc.Cancel)
}

func (h *EnrollmentHandler) toggle(c *gin.Context, fn toggleFunc[dto.EnrollmentResponse]) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	callerID, ok := MustGetAccountID(c)
	if !ok {
		return
	}

	enrollment, err := fn(c.Request.Context(), id, callerID)
	if err != nil {
		response.FromError(c, err, h.debug)
		return
	}
	response.OK(c, enrollment)
}
