package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/D4rfT/SistemaGestaoCursos/internal/dto"
	"github.com/D4rfT/SistemaGestaoCursos/internal/service"
	"github.com/D4rfT/SistemaGestaoCursos/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
	debug     bool
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService, debug bool) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc, debug: debug}
}

// ListCourses 全部课程
// GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseSvc.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err, h.debug)
		return
	}
	response.OK(c, gin.H{"list": courses})
}

// ListActiveCourses 有效课程（带缓存）
// GET /api/v1/courses/active
func (h *CourseHandler) ListActiveCourses(c *gin.Context) {
	courses, err := h.courseSvc.ListActive(c.Request.Context())
	if err != nil {
		response.FromError(c, err, h.debug)
		return
	}
	response.OK(c, gin.H{"list": courses})
}

// SearchCourses 条件查询
// GET /api/v1/courses/search?name=&min_price=&max_price=&min_duration=&max_duration=&active=&sort_by=&sort_dir=
func (h *CourseHandler) SearchCourses(c *gin.Context) {
	var req dto.CourseSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	courses, err := h.courseSvc.Search(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, h.debug)
		return
	}
	response.OK(c, gin.H{"list": courses})
}

// GetCourse 课程详情
// GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	course, err := h.courseSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, h.debug)
		return
	}
	response.OK(c, course)
}

// CreateCourse 创建课程
// POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	callerID, ok := MustGetAccountID(c)
	if !ok {
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		response.FromError(c, err, h.debug)
		return
	}
	response.Created(c, course)
}

// UpdateCourse 更新课程
// PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	callerID, ok := MustGetAccountID(c)
	if !ok {
		return
	}

	course, err := h.courseSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		response.FromError(c, err, h.debug)
		return
	}
	response.OK(c, course)
}

// ActivateCourse 启用课程
// PATCH /api/v1/courses/:id/activate
func (h *CourseHandler) ActivateCourse(c *gin.Context) {
	h.toggle(c, h.courseSvc.Activate)
}

// DeactivateCourse 停用课程
// PATCH /api/v1/courses/:id/deactivate
func (h *CourseHandler) DeactivateCourse(c *gin.Context) {
	h.toggle(c, h.courseSvc.Deactivate)
}

func (h *CourseHandler) toggle(c *gin.Context, fn toggleFunc[dto.CourseResponse]) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	callerID, ok := MustGetAccountID(c)
	if !ok {
		return
	}

	course, err := fn(c.Request.Context(), id, callerID)
	if err != nil {
		response.FromError(c, err, h.debug)
		return
	}
	response.OK(c, course)
}
