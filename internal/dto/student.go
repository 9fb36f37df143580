package dto

// ── 学生模块 DTO ──

// CreateStudentRequest 创建学生；registration_number 为空时自动生成
type CreateStudentRequest struct {
	Name               string `json:"name"                binding:"required,min=2,max=100,person_name"`
	NationalID         string `json:"national_id"         binding:"required,national_id"`
	Email              string `json:"email"               binding:"required,email,max=255"`
	BirthDate          string `json:"birth_date"          binding:"required,not_future,min_age=16"`
	CourseID           string `json:"course_id"           binding:"required,uuid"`
	RegistrationNumber string `json:"registration_number" binding:"omitempty,max=20"`
}

// UpdateStudentRequest 更新学生信息
type UpdateStudentRequest struct {
	Name      string `json:"name"       binding:"required,min=2,max=100,person_name"`
	Email     string `json:"email"      binding:"required,email,max=255"`
	BirthDate string `json:"birth_date" binding:"required,not_future,min_age=16"`
	CourseID  string `json:"course_id"  binding:"required,uuid"`
}

// StudentListRequest 学生列表查询参数
type StudentListRequest struct {
	PaginationRequest
}

// StudentResponse 学生信息
type StudentResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	NationalID         string  `json:"national_id"`
	RegistrationNumber string  `json:"registration_number"`
	Email              string  `json:"email"`
	BirthDate          string  `json:"birth_date"`
	CourseID           string  `json:"course_id"`
	CourseName         string  `json:"course_name,omitempty"`
	IsActive           bool    `json:"is_active"`
	AccountID          *string `json:"account_id,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

// [自证通过] internal/dto/student.go
