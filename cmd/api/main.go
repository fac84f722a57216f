package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/xiebiao/bookstore-catalog/docs"
	"github.com/xiebiao/bookstore-catalog/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-catalog/internal/infrastructure/logger"
	"github.com/xiebiao/bookstore-catalog/pkg/tracing"
)

// @title           Bookstore Catalog API
// @version         1.0
// @description     图书目录浏览与购物车定价服务
// @host            localhost:5000
// @BasePath        /
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "bookstore-api:", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. 初始化日志
	log, flush, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer flush()

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. 初始化链路追踪
	shutdownTracer, err := tracing.InitTracer(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
		Insecure:    cfg.Tracing.Insecure,
	})
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			log.Warn("shutdown tracer", zap.Error(err))
		}
	}()

	// 4. 依赖注入(Wire生成)
	app, cleanup, err := InitializeApp(ctx, cfg, log)
	if err != nil {
		log.Error("initialize app failed", zap.Error(err))
		return err
	}
	defer cleanup()

	log.Info("bookstore api starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("database", cfg.Database.Driver),
		zap.Bool("redis", cfg.Redis.Enabled),
		zap.Bool("mq", cfg.MQ.Enabled),
	)

	// 5. 启动服务,收到SIGINT/SIGTERM后优雅关闭
	return app.Run(ctx)
}
