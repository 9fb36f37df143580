package model

import apperrors "github.com/D4rfT/SistemaGestaoCursos/pkg/errors"

// 实体不变量错误（构造函数与修改方法返回）
var (
	ErrNameRequired       = apperrors.New(apperrors.KindInvalidArgument, 40010, "name is required")
	ErrInvalidNationalID  = apperrors.New(apperrors.KindInvalidArgument, 40011, "national id must contain exactly 11 digits")
	ErrInvalidEmail       = apperrors.New(apperrors.KindInvalidArgument, 40012, "email is invalid")
	ErrBirthDateInFuture  = apperrors.New(apperrors.KindInvalidArgument, 40013, "birth date cannot be in the future")
	ErrStudentTooYoung    = apperrors.New(apperrors.KindInvalidArgument, 40014, "student must be at least 16 years old")
	ErrInvalidPrice       = apperrors.New(apperrors.KindInvalidArgument, 40015, "price cannot be negative")
	ErrInvalidDuration    = apperrors.New(apperrors.KindInvalidArgument, 40016, "duration must be greater than zero")
	ErrInvalidRole        = apperrors.New(apperrors.KindInvalidArgument, 40017, "role is invalid")
	ErrCourseRequired     = apperrors.New(apperrors.KindInvalidArgument, 40018, "course id is required")
	ErrRegistrationNumber = apperrors.New(apperrors.KindInvalidArgument, 40019, "registration number is required")
	ErrPasswordRequired   = apperrors.New(apperrors.KindInvalidArgument, 40020, "password is required")

	// ErrInvalidStateTransition 激活/停用/取消/恢复到当前已处于的状态
	ErrInvalidStateTransition = apperrors.New(apperrors.KindInvalidState, 40030, "entity is already in the requested state")
)

// [自证通过] internal/model/errors.go
