package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/D4rfT/SistemaGestaoCursos/config"
	"github.com/D4rfT/SistemaGestaoCursos/internal/api/handler"
	"github.com/D4rfT/SistemaGestaoCursos/internal/api/middleware"
	"github.com/D4rfT/SistemaGestaoCursos/internal/model"
	"github.com/D4rfT/SistemaGestaoCursos/pkg/jwt"
	"github.com/D4rfT/SistemaGestaoCursos/pkg/redis"
)

// maxBodyBytes 请求体上限
const maxBodyBytes = 1 << 20

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时黑名单与限流降级跳过
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	if cfg.Server.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// 避免把 nil *redis.Client 装进非 nil 接口
	var (
		checker middleware.TokenChecker
		limiter middleware.RateLimiter
	)
	if rdb != nil {
		checker = rdb
		limiter = rdb
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", h.Health.Check)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		v1.POST("/auth/login", middleware.RateLimit(limiter, cfg.Auth.LoginRateLimit, time.Minute), h.Auth.Login)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, checker))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			catalog := middleware.RequireCapability(model.CapViewCatalog)
			ownData := middleware.RequireCapability(model.CapViewOwnData)
			manageCourses := middleware.RequireCapability(model.CapManageCourses)
			manageStudents := middleware.RequireCapability(model.CapManageStudents)
			manageEnrollments := middleware.RequireCapability(model.CapManageEnrollments)

			// 账号模块
			accounts := authorized.Group("/accounts", middleware.RequireCapability(model.CapManageAccounts))
			{
				accounts.GET("", h.Account.ListAccounts)
				accounts.GET("/:id", h.Account.GetAccount)
				accounts.POST("", h.Account.CreateAccount)
			}

			// 课程模块
			courses := authorized.Group("/courses")
			{
				courses.GET("", catalog, h.Course.ListCourses)
				courses.GET("/active", catalog, h.Course.ListActiveCourses)
				courses.GET("/search", catalog, h.Course.SearchCourses)
				courses.GET("/:id", catalog, h.Course.GetCourse)
				courses.GET("/:id/enrollments", manageEnrollments, h.Enrollment.ListByCourse)
				courses.POST("", manageCourses, h.Course.CreateCourse)
				courses.PUT("/:id", manageCourses, h.Course.UpdateCourse)
				courses.PATCH("/:id/activate", manageCourses, h.Course.ActivateCourse)
				courses.PATCH("/:id/deactivate", manageCourses, h.Course.DeactivateCourse)
			}

			// 学生模块
			students := authorized.Group("/students")
			{
				students.GET("/me", ownData, h.Student.GetMyProfile)
				students.GET("", manageStudents, h.Student.ListStudents)
				students.GET("/:id", manageStudents, h.Student.GetStudent)
				students.GET("/:id/enrollments", manageEnrollments, h.Enrollment.ListByStudent)
				students.POST("", manageStudents, h.Student.CreateStudent)
				students.PUT("/:id", manageStudents, h.Student.UpdateStudent)
				students.PATCH("/:id/activate", manageStudents, h.Student.ActivateStudent)
				students.PATCH("/:id/deactivate", manageStudents, h.Student.DeactivateStudent)
			}

			// 选课模块
			enrollments := authorized.Group("/enrollments")
			{
				enrollments.GET("/me", ownData, h.Enrollment.ListMyEnrollments)
				enrollments.GET("", manageEnrollments, h.Enrollment.ListEnrollments)
				enrollments.GET("/:id", manageEnrollments, h.Enrollment.GetEnrollment)
				enrollments.POST("", manageEnrollments, h.Enrollment.CreateEnrollment)
				enrollments.PATCH("/:id/activate", manageEnrollments, h.Enrollment.ActivateEnrollment)
				enrollments.PATCH("/:id/deactivate", manageEnrollments, h.Enrollment.DeactivateEnrollment)
			}

			// 导出模块
			export := authorized.Group("/export", middleware.RequireCapability(model.CapExportReports))
			{
				export.GET("/courses/:id/enrollments", h.Export.ExportCourseEnrollments)
			}

			// 数据迁移
			migrations := authorized.Group("/migrations", middleware.RequireCapability(model.CapRunMigrations))
			{
				migrations.POST("/students-to-accounts", h.Migration.LinkStudentsToAccounts)
			}
		}
	}

	return r
}
