package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type studentBody struct {
	Name       string `json:"name"        validate:"required,person_name"`
	NationalID string `json:"national_id" validate:"required,national_id"`
	BirthDate  string `json:"birth_date"  validate:"required,not_future,min_age=16"`
}

type searchQuery struct {
	SortBy string `form:"sort_by" validate:"omitempty,sort_key"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	now := func() time.Time { return time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC) }
	require.NoError(t, Register(v, now))
	return v
}

func failedTags(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = fe.Tag()
		}
	}
	return out
}

func TestRules_Valid(t *testing.T) {
	v := newValidator(t)
	err := v.Struct(studentBody{Name: "Jane O'Neil", NationalID: "11122233344", BirthDate: "2010-03-15"})
	assert.NoError(t, err, "恰好 16 岁应通过")
}

func TestRules_Failures(t *testing.T) {
	v := newValidator(t)

	err := v.Struct(studentBody{Name: "Jane42", NationalID: "1112223334", BirthDate: "2010-03-16"})
	tags := failedTags(err)

	assert.Equal(t, "person_name", tags["name"])
	assert.Equal(t, "national_id", tags["national_id"])
	assert.Equal(t, "min_age", tags["birth_date"])
}

func TestRules_FutureDate(t *testing.T) {
	v := newValidator(t)
	err := v.Struct(studentBody{Name: "Jane", NationalID: "11122233344", BirthDate: "2026-03-16"})
	assert.Equal(t, "not_future", failedTags(err)["birth_date"])
}

func TestRules_SortKey(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(searchQuery{SortBy: "created_at"}))
	assert.NoError(t, v.Struct(searchQuery{SortBy: "unknown_key"}), "未知但合法的字段名放行")
	assert.NoError(t, v.Struct(searchQuery{}))
	assert.Equal(t, "sort_key", failedTags(v.Struct(searchQuery{SortBy: "name;drop"}))["sort_by"])
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2000-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("01/01/2000")
	assert.Error(t, err)
}
