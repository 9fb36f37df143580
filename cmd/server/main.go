package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/D4rfT/SistemaGestaoCursos/config"
	"github.com/D4rfT/SistemaGestaoCursos/internal/api/handler"
	"github.com/D4rfT/SistemaGestaoCursos/internal/api/router"
	"github.com/D4rfT/SistemaGestaoCursos/internal/repository"
	"github.com/D4rfT/SistemaGestaoCursos/internal/service"
	"github.com/D4rfT/SistemaGestaoCursos/internal/validation"
	"github.com/D4rfT/SistemaGestaoCursos/pkg/database"
	"github.com/D4rfT/SistemaGestaoCursos/pkg/jwt"
	applogger "github.com/D4rfT/SistemaGestaoCursos/pkg/logger"
	"github.com/D4rfT/SistemaGestaoCursos/pkg/redis"
)

func main() {
	// 1. 加载配置（SGC_CONFIG_FILE 可指定配置文件路径）
	cfg, err := config.Load(os.Getenv("SGC_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，缓存、Token 黑名单与登录限流将不可用", zap.Error(err))
		rdb = nil
	}

	// 5. 注册自定义校验规则
	if err := validation.RegisterGin(time.Now); err != nil {
		logger.Fatal("注册校验规则失败", zap.Error(err))
	}

	// 6. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 7. 依赖注入: Repository → Service → Handler
	var (
		cache     service.Cache
		blacklist service.TokenBlacklist
	)
	if rdb != nil {
		cache = rdb
		blacklist = rdb
	}

	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, cache, blacklist, logger)
	ping := func(ctx context.Context) error { return database.Ping(ctx, db) }
	h := handler.NewHandler(svc, ping, cfg.Server.IsDevelopment())

	// 8. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭数据库连接
	if err := sqlDB.Close(); err != nil {
		logger.Error("关闭数据库连接失败", zap.Error(err))
	}

	// 关闭 Redis 连接
	if rdb != nil {
		_ = rdb.Close()
	}

	logger.Info("服务器已关闭")
}
