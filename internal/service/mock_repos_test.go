package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/D4rfT/SistemaGestaoCursos/internal/model"
	"github.com/D4rfT/SistemaGestaoCursos/internal/repository"
	pkgerrors "github.com/D4rfT/SistemaGestaoCursos/pkg/errors"
)

// ── Mock 数据库 ──
// 各 mock repo 共享同一 mockDB；事务内使用其浅拷贝，提交时合并回主库

type mockDB struct {
	accounts    map[string]*model.Account
	students    map[string]*model.Student
	courses     map[string]*model.Course
	enrollments map[string]*model.Enrollment
	seq         *int

	// 故障注入
	accountCreateErr error
	studentCreateErr error
	existsRAErr      error
	takenRA          map[string]bool // 视为已占用的学号（不对应实际学生）
}

func newMockDB() *mockDB {
	seq := 0
	return &mockDB{
		accounts:    make(map[string]*model.Account),
		students:    make(map[string]*model.Student),
		courses:     make(map[string]*model.Course),
		enrollments: make(map[string]*model.Enrollment),
		seq:         &seq,
		takenRA:     make(map[string]bool),
	}
}

func (db *mockDB) nextID(prefix string) string {
	*db.seq++
	return fmt.Sprintf("%s-%03d", prefix, *db.seq)
}

func (db *mockDB) clone() *mockDB {
	cp := *db
	cp.accounts = cloneMap(db.accounts)
	cp.students = cloneMap(db.students)
	cp.courses = cloneMap(db.courses)
	cp.enrollments = cloneMap(db.enrollments)
	return &cp
}

func (db *mockDB) merge(staging *mockDB) {
	mergeMap(db.accounts, staging.accounts)
	mergeMap(db.students, staging.students)
	mergeMap(db.courses, staging.courses)
	mergeMap(db.enrollments, staging.enrollments)
}

func cloneMap[T any](src map[string]*T) map[string]*T {
	dst := make(map[string]*T, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func mergeMap[T any](dst, src map[string]*T) {
	for k, v := range src {
		dst[k] = v
	}
}

// newMockRepository 基于 mockDB 构造 Repository 聚合
func newMockRepository(db *mockDB) *repository.Repository {
	return &repository.Repository{
		Account:    &mockAccountRepo{mockStore: &mockStore[model.Account]{items: db.accounts}, db: db},
		Student:    &mockStudentRepo{mockStore: &mockStore[model.Student]{items: db.students}, db: db},
		Course:     &mockCourseRepo{mockStore: &mockStore[model.Course]{items: db.courses}, db: db},
		Enrollment: &mockEnrollmentRepo{mockStore: &mockStore[model.Enrollment]{items: db.enrollments}, db: db},
	}
}

// ── Mock 工作单元 ──

type mockTxManager struct {
	db        *mockDB
	begins    int
	commits   int
	rollbacks int
	beginErr  error
	commitErr error
}

func (m *mockTxManager) Begin(_ context.Context) (repository.UnitOfWork, error) {
	m.begins++
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	staging := m.db.clone()
	return &mockUnitOfWork{mgr: m, staging: staging, repo: newMockRepository(staging)}, nil
}

type mockUnitOfWork struct {
	mgr     *mockTxManager
	staging *mockDB
	repo    *repository.Repository
}

func (u *mockUnitOfWork) Repo() *repository.Repository { return u.repo }

func (u *mockUnitOfWork) Commit() error {
	u.mgr.commits++
	if u.mgr.commitErr != nil {
		return u.mgr.commitErr
	}
	u.mgr.db.merge(u.staging)
	return nil
}

func (u *mockUnitOfWork) Rollback() error {
	u.mgr.rollbacks++
	return nil
}

// setupMockRepository 返回 Repository、底层 mockDB 与事务计数器
func setupMockRepository() (*repository.Repository, *mockDB, *mockTxManager) {
	db := newMockDB()
	tx := &mockTxManager{db: db}
	repo := newMockRepository(db)
	repo.Tx = tx
	return repo, db, tx
}

// ── 通用 CRUD Mock ──

type mockStore[T any] struct {
	items map[string]*T
}

func (m *mockStore[T]) GetByID(_ context.Context, id string) (*T, error) {
	if it, ok := m.items[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStore[T]) List(_ context.Context) ([]T, error) {
	var result []T
	for _, k := range sortedKeys(m.items) {
		result = append(result, *m.items[k])
	}
	return result, nil
}

func (m *mockStore[T]) ListPage(ctx context.Context, offset, limit int) ([]T, int64, error) {
	all, _ := m.List(ctx)
	total := int64(len(all))
	if offset >= len(all) {
		return []T{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockStore[T]) Exists(_ context.Context, id string) (bool, error) {
	_, ok := m.items[id]
	return ok, nil
}

func (m *mockStore[T]) Find(_ context.Context, _ interface{}, _ ...interface{}) ([]T, error) {
	return nil, errors.New("mock: Find not supported")
}

func (m *mockStore[T]) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

func sortedKeys[T any](items map[string]*T) []string {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ── Mock AccountRepository ──

type mockAccountRepo struct {
	*mockStore[model.Account]
	db *mockDB
}

func (m *mockAccountRepo) Create(_ context.Context, account *model.Account) error {
	if m.db.accountCreateErr != nil {
		return m.db.accountCreateErr
	}
	for _, a := range m.items {
		if strings.EqualFold(a.Email, account.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	if account.AccountID == "" {
		account.AccountID = m.db.nextID("acc")
	}
	cp := *account
	m.items[account.AccountID] = &cp
	return nil
}

func (m *mockAccountRepo) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	for _, a := range m.items {
		if strings.EqualFold(a.Email, email) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccountRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	*mockStore[model.Student]
	db *mockDB
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if m.db.studentCreateErr != nil {
		return m.db.studentCreateErr
	}
	for _, s := range m.items {
		switch {
		case s.NationalID == student.NationalID:
			return repository.ErrDuplicateNationalID
		case strings.EqualFold(s.Email, student.Email):
			return repository.ErrDuplicateEmail
		case s.RegistrationNumber == student.RegistrationNumber:
			return repository.ErrDuplicateRegistrationNumber
		}
	}
	if student.StudentID == "" {
		student.StudentID = m.db.nextID("stu")
	}
	student.Version = 1
	cp := *student
	cp.Course = nil
	m.items[student.StudentID] = &cp
	return nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	stored, ok := m.items[student.StudentID]
	if !ok || stored.Version != student.Version {
		return pkgerrors.ErrOptimisticLock
	}
	student.Version++
	cp := *student
	cp.Course = nil
	m.items[student.StudentID] = &cp
	return nil
}

// GetByID 模拟 Preload("Course")
func (m *mockStudentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	return m.withCourse(m.mockStore.GetByID(ctx, id))
}

func (m *mockStudentRepo) GetByNationalID(_ context.Context, nationalID string) (*model.Student, error) {
	return m.withCourse(m.first(func(s *model.Student) bool { return s.NationalID == nationalID }))
}

func (m *mockStudentRepo) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	return m.withCourse(m.first(func(s *model.Student) bool { return strings.EqualFold(s.Email, email) }))
}

func (m *mockStudentRepo) GetByRegistrationNumber(_ context.Context, ra string) (*model.Student, error) {
	return m.withCourse(m.first(func(s *model.Student) bool { return s.RegistrationNumber == ra }))
}

func (m *mockStudentRepo) GetByAccountID(_ context.Context, accountID string) (*model.Student, error) {
	return m.withCourse(m.first(func(s *model.Student) bool { return s.AccountID != nil && *s.AccountID == accountID }))
}

func (m *mockStudentRepo) ExistsByRegistrationNumber(_ context.Context, ra string) (bool, error) {
	if m.db.existsRAErr != nil {
		return false, m.db.existsRAErr
	}
	if m.db.takenRA[ra] {
		return true, nil
	}
	_, err := m.first(func(s *model.Student) bool { return s.RegistrationNumber == ra })
	return err == nil, nil
}

func (m *mockStudentRepo) EmailTaken(_ context.Context, email, excludeID string) (bool, error) {
	_, err := m.first(func(s *model.Student) bool {
		return strings.EqualFold(s.Email, email) && s.StudentID != excludeID
	})
	return err == nil, nil
}

func (m *mockStudentRepo) ListPage(ctx context.Context, offset, limit int) ([]model.Student, int64, error) {
	list, total, err := m.mockStore.ListPage(ctx, offset, limit)
	for i := range list {
		list[i].Course = m.course(list[i].CourseID)
	}
	return list, total, err
}

func (m *mockStudentRepo) ListWithoutAccount(_ context.Context) ([]model.Student, error) {
	var result []model.Student
	for _, k := range sortedKeys(m.items) {
		if m.items[k].AccountID == nil {
			result = append(result, *m.items[k])
		}
	}
	return result, nil
}

func (m *mockStudentRepo) first(match func(*model.Student) bool) (*model.Student, error) {
	for _, k := range sortedKeys(m.items) {
		if match(m.items[k]) {
			cp := *m.items[k]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) withCourse(s *model.Student, err error) (*model.Student, error) {
	if err != nil {
		return nil, err
	}
	s.Course = m.course(s.CourseID)
	return s, nil
}

func (m *mockStudentRepo) course(id string) *model.Course {
	if c, ok := m.db.courses[id]; ok {
		cp := *c
		return &cp
	}
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	*mockStore[model.Course]
	db *mockDB
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	for _, c := range m.items {
		if strings.EqualFold(c.Name, course.Name) {
			return repository.ErrDuplicateCourseName
		}
	}
	if course.CourseID == "" {
		course.CourseID = m.db.nextID("crs")
	}
	course.Version = 1
	cp := *course
	m.items[course.CourseID] = &cp
	return nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	stored, ok := m.items[course.CourseID]
	if !ok || stored.Version != course.Version {
		return pkgerrors.ErrOptimisticLock
	}
	course.Version++
	cp := *course
	m.items[course.CourseID] = &cp
	return nil
}

func (m *mockCourseRepo) GetByName(_ context.Context, name string) (*model.Course, error) {
	for _, c := range m.items {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) NameTaken(_ context.Context, name, excludeID string) (bool, error) {
	for _, c := range m.items {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) && c.CourseID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCourseRepo) ListActive(_ context.Context) ([]model.Course, error) {
	var result []model.Course
	for _, k := range sortedKeys(m.items) {
		if m.items[k].IsActive {
			result = append(result, *m.items[k])
		}
	}
	return result, nil
}

// Search 仅模拟名称与启用状态过滤，其余条件由集成测试覆盖
func (m *mockCourseRepo) Search(_ context.Context, f repository.CourseFilter) ([]model.Course, error) {
	var result []model.Course
	for _, k := range sortedKeys(m.items) {
		c := m.items[k]
		if f.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.Active != nil && c.IsActive != *f.Active {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	*mockStore[model.Enrollment]
	db *mockDB
}

func (m *mockEnrollmentRepo) Create(_ context.Context, e *model.Enrollment) error {
	for _, x := range m.items {
		if x.IsActive && x.StudentID == e.StudentID && x.CourseID == e.CourseID {
			return repository.ErrDuplicateEnrollment
		}
	}
	if e.EnrollmentID == "" {
		e.EnrollmentID = m.db.nextID("enr")
	}
	e.Version = 1
	cp := *e
	cp.Student, cp.Course = nil, nil
	m.items[e.EnrollmentID] = &cp
	return nil
}

func (m *mockEnrollmentRepo) Update(_ context.Context, e *model.Enrollment) error {
	stored, ok := m.items[e.EnrollmentID]
	if !ok || stored.Version != e.Version {
		return pkgerrors.ErrOptimisticLock
	}
	e.Version++
	cp := *e
	cp.Student, cp.Course = nil, nil
	m.items[e.EnrollmentID] = &cp
	return nil
}

func (m *mockEnrollmentRepo) GetByID(ctx context.Context, id string) (*model.Enrollment, error) {
	e, err := m.mockStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.preload(e)
	return e, nil
}

func (m *mockEnrollmentRepo) ExistsActive(_ context.Context, studentID, courseID, excludeID string) (bool, error) {
	for _, x := range m.items {
		if x.IsActive && x.StudentID == studentID && x.CourseID == courseID && x.EnrollmentID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEnrollmentRepo) ListPage(ctx context.Context, offset, limit int) ([]model.Enrollment, int64, error) {
	list, total, err := m.mockStore.ListPage(ctx, offset, limit)
	for i := range list {
		m.preload(&list[i])
	}
	return list, total, err
}

func (m *mockEnrollmentRepo) ListByStudent(_ context.Context, studentID string) ([]model.Enrollment, error) {
	return m.where(func(e *model.Enrollment) bool { return e.StudentID == studentID }), nil
}

func (m *mockEnrollmentRepo) ListByCourse(_ context.Context, courseID string) ([]model.Enrollment, error) {
	return m.where(func(e *model.Enrollment) bool { return e.CourseID == courseID }), nil
}

func (m *mockEnrollmentRepo) where(match func(*model.Enrollment) bool) []model.Enrollment {
	var result []model.Enrollment
	for _, k := range sortedKeys(m.items) {
		if match(m.items[k]) {
			e := *m.items[k]
			m.preload(&e)
			result = append(result, e)
		}
	}
	return result
}

func (m *mockEnrollmentRepo) preload(e *model.Enrollment) {
	if s, ok := m.db.students[e.StudentID]; ok {
		cp := *s
		e.Student = &cp
	}
	if c, ok := m.db.courses[e.CourseID]; ok {
		cp := *c
		e.Course = &cp
	}
}

// ── 测试数据构造 ──

func seedCourse(db *mockDB, name string, active bool) *model.Course {
	c := &model.Course{
		CourseID:      db.nextID("crs"),
		Name:          name,
		Price:         100,
		DurationHours: 10,
		IsActive:      active,
	}
	c.Version = 1
	db.courses[c.CourseID] = c
	return c
}

func seedStudent(db *mockDB, name, nationalID, email, courseID string, active bool) *model.Student {
	s := &model.Student{
		StudentID:          db.nextID("stu"),
		Name:               name,
		NationalID:         nationalID,
		RegistrationNumber: "RA" + nationalID,
		Email:              email,
		CourseID:           courseID,
		IsActive:           active,
	}
	s.Version = 1
	db.students[s.StudentID] = s
	return s
}
