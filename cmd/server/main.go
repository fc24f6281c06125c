package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mshabab123/hlqh-sub001/config"
	"github.com/mshabab123/hlqh-sub001/internal/api/handler"
	"github.com/mshabab123/hlqh-sub001/internal/api/router"
	"github.com/mshabab123/hlqh-sub001/internal/core/attendance"
	"github.com/mshabab123/hlqh-sub001/internal/repository"
	"github.com/mshabab123/hlqh-sub001/internal/service"
	"github.com/mshabab123/hlqh-sub001/pkg/database"
	"github.com/mshabab123/hlqh-sub001/pkg/jwt"
	applogger "github.com/mshabab123/hlqh-sub001/pkg/logger"
	"github.com/mshabab123/hlqh-sub001/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径，缺省查找 ./config/config.yaml")
	migrateDown := flag.Bool("migrate-down", false, "回退一个迁移版本后退出")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
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
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("timezone", cfg.Calendar.Timezone),
		zap.String("hijri_mode", cfg.Calendar.HijriMode),
	)

	// 3. 连接数据库并执行迁移
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if *migrateDown {
		if err := database.RollbackMigration(sqlDB, logger); err != nil {
			logger.Fatal("迁移回退失败", zap.Error(err))
		}
		_ = sqlDB.Close()
		return
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：未配置或连接失败时使用进程内锁，限流、黑名单与注销关闭）
	var (
		rdb     *redis.Client
		revoker handler.TokenRevoker
		locker  attendance.Locker = attendance.NewLocalLocker()
	)
	if cfg.Redis.Enabled() {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，降级为单实例模式", zap.Error(err))
			rdb = nil
		} else {
			locker = rdb
			revoker = rdb
		}
	}

	// 5. 依赖注入: Repository → Service → Handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc, err := service.NewService(cfg, repo, service.Deps{Locker: locker}, logger)
	if err != nil {
		logger.Fatal("初始化业务层失败", zap.Error(err))
	}
	h := handler.NewHandler(svc, revoker)

	// 6. 初始化路由
	engine, err := router.Setup(cfg, h, jwtMgr, rdb, logger)
	if err != nil {
		logger.Fatal("初始化路由失败", zap.Error(err))
	}

	// 7. 定时缺勤任务
	var sweeper *service.SweepScheduler
	if cfg.Attendance.SweepEnabled {
		sweeper, err = service.NewSweepScheduler(cfg.Attendance.SweepCron, svc.Calendar.Location(), svc.Attendance, logger)
		if err != nil {
			logger.Fatal("定时任务配置无效", zap.Error(err))
		}
		sweeper.Start()
	}

	// 8. 启动 HTTP 服务器（优雅关闭）
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

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	if sweeper != nil {
		if err := sweeper.Stop(ctx); err != nil {
			logger.Warn("定时任务未在超时前结束", zap.Error(err))
		}
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("关闭数据库连接失败", zap.Error(err))
	}

	if rdb != nil {
		_ = rdb.Close()
	}

	logger.Info("服务器已关闭")
}
