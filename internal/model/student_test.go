package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func TestNewStudent_Valid(t *testing.T) {
	s, err := NewStudent(" Jane ", "11122233344", "Jane@X.com",
		time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), "course-1", "", fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "Jane", s.Name)
	assert.Equal(t, "jane@x.com", s.Email)
	assert.Equal(t, "course-1", s.CourseID)
	assert.True(t, s.IsActive)
	assert.Nil(t, s.AccountID)
}

func TestNewStudent_NationalIDLength(t *testing.T) {
	for _, id := range []string{"", "1234567890", "123456789012", "1112223334a"} {
		_, err := NewStudent("Jane", id, "jane@x.com",
			time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), "course-1", "", fixedNow)
		assert.ErrorIs(t, err, ErrInvalidNationalID, "national id %q", id)
	}
}

func TestNewStudent_Email(t *testing.T) {
	for _, email := range []string{"", "jane.x.com", "@x.com", "jane@"} {
		_, err := NewStudent("Jane", "11122233344", email,
			time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), "course-1", "", fixedNow)
		assert.ErrorIs(t, err, ErrInvalidEmail, "email %q", email)
	}
}

func TestNewStudent_AgeBoundary(t *testing.T) {
	cases := []struct {
		name  string
		birth time.Time
		want  error
	}{
		{"exactly 16 today", time.Date(2010, 3, 15, 0, 0, 0, 0, time.UTC), nil},
		{"16 tomorrow", time.Date(2010, 3, 16, 0, 0, 0, 0, time.UTC), ErrStudentTooYoung},
		{"turned 16 yesterday", time.Date(2010, 3, 14, 0, 0, 0, 0, time.UTC), nil},
		{"birth date in future", time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), ErrBirthDateInFuture},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewStudent("Jane", "11122233344", "jane@x.com", tc.birth, "course-1", "", fixedNow)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestStudent_UpdateInfoRevalidatesAge(t *testing.T) {
	s, err := NewStudent("Jane", "11122233344", "jane@x.com",
		time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), "course-1", "", fixedNow)
	require.NoError(t, err)

	err = s.UpdateInfo("Jane", "jane@x.com", time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), fixedNow)
	assert.ErrorIs(t, err, ErrStudentTooYoung)
	assert.Equal(t, 2000, s.BirthDate.Year(), "校验失败不应修改实体")
}

func TestStudent_ActivateDeactivate(t *testing.T) {
	s := &Student{IsActive: true}

	assert.ErrorIs(t, s.Activate(), ErrInvalidStateTransition)
	require.NoError(t, s.Deactivate())
	assert.False(t, s.IsActive)
	assert.ErrorIs(t, s.Deactivate(), ErrInvalidStateTransition)
	require.NoError(t, s.Activate())
	assert.True(t, s.IsActive)
}

func TestAgeAt_LeapDay(t *testing.T) {
	birth := time.Date(2008, 2, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 17, AgeAt(birth, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 18, AgeAt(birth, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
}
