package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestTranslate_KnownConstraints(t *testing.T) {
	cases := map[string]error{
		"ux_accounts_email":               ErrDuplicateEmail,
		"ux_students_email":               ErrDuplicateEmail,
		"ux_students_national_id":         ErrDuplicateNationalID,
		"ux_students_registration_number": ErrDuplicateRegistrationNumber,
		"ux_courses_name":                 ErrDuplicateCourseName,
		"ux_enrollments_active_pair":      ErrDuplicateEnrollment,
	}
	for constraint, want := range cases {
		err := translate(&pgconn.PgError{Code: "23505", ConstraintName: constraint})
		if !errors.Is(err, want) {
			t.Errorf("约束 %s 期望 %v，实际=%v", constraint, want, err)
		}
	}
}

func TestTranslate_Passthrough(t *testing.T) {
	if translate(nil) != nil {
		t.Error("nil 应原样返回")
	}

	raw := errors.New("connection reset")
	if !errors.Is(translate(raw), raw) {
		t.Error("非约束错误应原样返回")
	}

	unknown := &pgconn.PgError{Code: "23505", ConstraintName: "ux_other"}
	err := translate(fmt.Errorf("insert: %w", unknown))
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		t.Errorf("未知约束应保留原始错误链，实际=%v", err)
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(fmt.Errorf("get: %w", gorm.ErrRecordNotFound)) {
		t.Error("应识别 ErrRecordNotFound")
	}
	if IsNotFound(errors.New("boom")) {
		t.Error("普通错误不应识别为不存在")
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`50%_off\`); got != `50\%\_off\\` {
		t.Errorf("期望转义后为 50\\%%\\_off\\\\，实际=%s", got)
	}
}
