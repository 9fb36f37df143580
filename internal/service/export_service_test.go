package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/D4rfT/SistemaGestaoCursos/internal/model"
)

func TestExportCourseEnrollments(t *testing.T) {
	repo, db, _ := setupMockRepository()
	svc := &exportService{repo: repo, logger: zap.NewNop()}

	course := seedCourse(db, "C# Advanced", true)
	jane := seedStudent(db, "Jane", "11122233344", "jane@x.com", course.CourseID, true)
	john := seedStudent(db, "John", "55566677788", "john@x.com", course.CourseID, true)
	db.enrollments["enr-a"] = &model.Enrollment{EnrollmentID: "enr-a", StudentID: jane.StudentID, CourseID: course.CourseID, EnrolledAt: testNow, IsActive: true}
	db.enrollments["enr-b"] = &model.Enrollment{EnrollmentID: "enr-b", StudentID: john.StudentID, CourseID: course.CourseID, EnrolledAt: testNow, IsActive: false}

	buf, filename, err := svc.ExportCourseEnrollments(context.Background(), course.CourseID)
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	if filename != "enrollments_C__Advanced.xlsx" {
		t.Errorf("文件名不符: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("打开导出文件失败: %v", err)
	}
	defer f.Close()

	cell := func(axis string) string {
		v, err := f.GetCellValue("Enrollments", axis)
		if err != nil {
			t.Fatalf("读取 %s 失败: %v", axis, err)
		}
		return v
	}

	if got := cell("A1"); got != "C# Advanced (2 enrollments)" {
		t.Errorf("标题不符: %s", got)
	}
	if got := cell("B2"); got != "Registration Number" {
		t.Errorf("表头不符: %s", got)
	}
	if got := cell("A3"); got != "Jane" {
		t.Errorf("期望第一行为 Jane，实际=%s", got)
	}
	if got := cell("B3"); got != "RA11122233344" {
		t.Errorf("学号不符: %s", got)
	}
	if got := cell("E3"); got != "Active" {
		t.Errorf("状态不符: %s", got)
	}
	if got := cell("E4"); got != "Cancelled" {
		t.Errorf("状态不符: %s", got)
	}
}

func TestExportCourseEnrollments_CourseNotFound(t *testing.T) {
	repo, _, _ := setupMockRepository()
	svc := &exportService{repo: repo, logger: zap.NewNop()}

	if _, _, err := svc.ExportCourseEnrollments(context.Background(), "missing"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际=%v", err)
	}
}

func TestFileSafe(t *testing.T) {
	if got := fileSafe("Go 101 / Intro-A"); got != "Go_101___Intro-A" {
		t.Errorf("期望 Go_101___Intro-A，实际=%s", got)
	}
}
