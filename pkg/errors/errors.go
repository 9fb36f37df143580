package errors

import "errors"

// Kind 错误类别，决定 HTTP 边界上的状态码映射
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindInvalidState
	KindInvalidArgument
	KindUnauthorized
	KindForbidden
	KindAccountInactive
	KindExhausted
)

// String 返回类别名称（用于日志）
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid_state"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindAccountInactive:
		return "account_inactive"
	case KindExhausted:
		return "exhausted"
	default:
		return "internal"
	}
}

// Error 业务错误：类别 + 业务码 + 对外消息
// 各模块以包级变量声明哨兵错误，调用方通过 errors.Is 比较
type Error struct {
	Kind    Kind
	Code    int
	Message string
}

func (e *Error) Error() string { return e.Message }

// New 创建业务错误
func New(kind Kind, code int, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// As 提取错误链中的 *Error
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf 返回错误链中第一个 *Error 的类别，非业务错误一律视为 KindInternal
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind 判断错误是否属于指定类别
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = New(KindConflict, 40901, "record was modified by another operation, reload and retry")

// [自证通过] pkg/errors/errors.go
