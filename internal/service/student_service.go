package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/D4rfT/SistemaGestaoCursos/internal/dto"
	"github.com/D4rfT/SistemaGestaoCursos/internal/model"
	"github.com/D4rfT/SistemaGestaoCursos/internal/repository"
	"github.com/D4rfT/SistemaGestaoCursos/pkg/logger"
)

// StudentService 学生业务接口
type StudentService interface {
	// Create 在同一事务中创建登录账号与学生档案
	Create(ctx context.Context, req *dto.CreateStudentRequest, callerID string) (*dto.StudentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateStudentRequest, callerID string) (*dto.StudentResponse, error)
	Activate(ctx context.Context, id, callerID string) (*dto.StudentResponse, error)
	Deactivate(ctx context.Context, id, callerID string) (*dto.StudentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.StudentResponse, error)
	GetByAccountID(ctx context.Context, accountID string) (*dto.StudentResponse, error)
	List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error)
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
	pause  func(time.Duration)
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger, now: time.Now, pause: time.Sleep}
}

// ────────────────────── Create ──────────────────────

func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest, callerID string) (*dto.StudentResponse, error) {
	log := logger.FromContext(ctx, s.logger)

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	// 1. 实体不变量
	student, err := model.NewStudent(req.Name, req.NationalID, req.Email, birthDate, req.CourseID, req.RegistrationNumber, s.now())
	if err != nil {
		return nil, err
	}

	// 2. 身份证号唯一
	if _, err := s.repo.Student.GetByNationalID(ctx, student.NationalID); err == nil {
		return nil, ErrDuplicateNationalID
	} else if !repository.IsNotFound(err) {
		log.Error("检查身份证号失败", zap.Error(err))
		return nil, err
	}

	// 3. 邮箱唯一
	taken, err := s.repo.Student.EmailTaken(ctx, student.Email, "")
	if err != nil {
		log.Error("检查学生邮箱失败", zap.Error(err))
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateEmail
	}

	// 4. 课程存在
	if err := s.ensureCourseExists(ctx, student.CourseID); err != nil {
		return nil, err
	}

	// 5. 学号：指定则校验唯一，否则生成
	if student.RegistrationNumber != "" {
		exists, err := s.repo.Student.ExistsByRegistrationNumber(ctx, student.RegistrationNumber)
		if err != nil {
			log.Error("检查学号失败", zap.Error(err))
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateRegistrationNumber
		}
	} else {
		ra, err := s.generateRegistrationNumber(ctx)
		if err != nil {
			return nil, err
		}
		if err := student.AssignRegistrationNumber(ra); err != nil {
			return nil, err
		}
	}

	// 初始密码为身份证号
	hash, err := hashPassword(student.NationalID)
	if err != nil {
		log.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}
	account, err := model.NewAccount(student.Name, student.Email, hash, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	account.CreatedBy = auditID(callerID)
	student.CreatedBy = auditID(callerID)

	// 6~8. 账号 + 档案在同一事务中写入
	if err := s.createWithAccount(ctx, account, student); err != nil {
		return nil, err
	}

	log.Info("学生已创建",
		zap.String("student_id", student.StudentID),
		zap.String("account_id", account.AccountID),
		zap.String("registration_number", student.RegistrationNumber),
	)

	// 9. 重新加载以带出课程名
	return s.GetByID(ctx, student.StudentID)
}

// createWithAccount 开启事务写入账号与学生档案
// Begin 之后任一步失败只回滚一次且不提交
func (s *studentService) createWithAccount(ctx context.Context, account *model.Account, student *model.Student) error {
	log := logger.FromContext(ctx, s.logger)

	uow, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("开启事务失败", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			_ = uow.Rollback()
			panic(r)
		}
	}()

	txRepo := uow.Repo()

	exists, err := txRepo.Account.ExistsByEmail(ctx, account.Email)
	if err != nil {
		log.Error("检查账号邮箱失败", zap.Error(err))
		return s.rollback(ctx, uow, err)
	}
	if exists {
		return s.rollback(ctx, uow, ErrDuplicateEmail)
	}

	if err := txRepo.Account.Create(ctx, account); err != nil {
		log.Error("创建学生账号失败", zap.Error(err))
		return s.rollback(ctx, uow, err)
	}

	student.LinkAccount(account.AccountID)
	if err := txRepo.Student.Create(ctx, student); err != nil {
		log.Error("创建学生档案失败", zap.Error(err))
		return s.rollback(ctx, uow, err)
	}

	if err := uow.Commit(); err != nil {
		log.Error("提交事务失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *studentService) rollback(ctx context.Context, uow repository.UnitOfWork, cause error) error {
	if err := uow.Rollback(); err != nil {
		logger.FromContext(ctx, s.logger).Error("回滚事务失败", zap.Error(err))
	}
	return cause
}

// ────────────────────── Update ──────────────────────

func (s *studentService) Update(ctx context.Context, id string, req *dto.UpdateStudentRequest, callerID string) (*dto.StudentResponse, error) {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := s.repo.Student.EmailTaken(ctx, email, student.StudentID)
	if err != nil {
		s.logger.Error("检查学生邮箱失败", zap.Error(err))
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateEmail
	}

	if err := s.ensureCourseExists(ctx, req.CourseID); err != nil {
		return nil, err
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return nil, err
	}
	if err := student.UpdateInfo(req.Name, req.Email, birthDate, s.now()); err != nil {
		return nil, err
	}
	if err := student.ChangeCourse(req.CourseID); err != nil {
		return nil, err
	}

	return s.save(ctx, student, callerID)
}

// ────────────────────── Activate / Deactivate ──────────────────────

func (s *studentService) Activate(ctx context.Context, id, callerID string) (*dto.StudentResponse, error) {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := student.Activate(); err != nil {
		return nil, err
	}
	return s.save(ctx, student, callerID)
}

func (s *studentService) Deactivate(ctx context.Context, id, callerID string) (*dto.StudentResponse, error) {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := student.Deactivate(); err != nil {
		return nil, err
	}
	return s.save(ctx, student, callerID)
}

// ────────────────────── Query ──────────────────────

func (s *studentService) GetByID(ctx context.Context, id string) (*dto.StudentResponse, error) {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toStudentResponse(student)
	return &resp, nil
}

func (s *studentService) GetByAccountID(ctx context.Context, accountID string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByAccountID(ctx, accountID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("按账号查询学生失败", zap.String("account_id", accountID), zap.Error(err))
		return nil, err
	}
	resp := toStudentResponse(student)
	return &resp, nil
}

func (s *studentService) List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error) {
	students, total, err := s.repo.Student.ListPage(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询学生列表失败", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		list = append(list, toStudentResponse(&students[i]))
	}
	return list, total, nil
}

// ── 内部辅助方法 ──

func (s *studentService) getStudent(ctx context.Context, id string) (*model.Student, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return student, nil
}

func (s *studentService) ensureCourseExists(ctx context.Context, courseID string) error {
	exists, err := s.repo.Course.Exists(ctx, courseID)
	if err != nil {
		s.logger.Error("检查课程失败", zap.String("course_id", courseID), zap.Error(err))
		return err
	}
	if !exists {
		return ErrCourseNotFound
	}
	return nil
}

func (s *studentService) save(ctx context.Context, student *model.Student, callerID string) (*dto.StudentResponse, error) {
	student.UpdatedBy = auditID(callerID)
	if err := s.repo.Student.Update(ctx, student); err != nil {
		s.logger.Error("更新学生失败", zap.String("id", student.StudentID), zap.Error(err))
		return nil, err
	}
	// 课程可能已变更，重新加载关联
	return s.GetByID(ctx, student.StudentID)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidBirthDate
	}
	return t, nil
}

func toStudentResponse(st *model.Student) dto.StudentResponse {
	resp := dto.StudentResponse{
		ID:                 st.StudentID,
		Name:               st.Name,
		NationalID:         st.NationalID,
		RegistrationNumber: st.RegistrationNumber,
		Email:              st.Email,
		BirthDate:          st.BirthDate.Format(dto.DateLayout),
		CourseID:           st.CourseID,
		IsActive:           st.IsActive,
		AccountID:          st.AccountID,
		CreatedAt:          formatTime(st.CreatedAt),
	}
	if st.Course != nil {
		resp.CourseName = st.Course.Name
	}
	return resp
}

// [自证通过] internal/service/student_service.go
