package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xiebiao/bookstore-catalog/internal/infrastructure/config"
)

// App HTTP服务及其生命周期
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	server *http.Server
}

func newApp(cfg *config.Config, logger *zap.Logger, engine *gin.Engine) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		server: &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Run 启动HTTP服务,ctx取消后优雅关闭
// 学习要点:
// 1. errgroup管理两个goroutine:一个监听端口,一个等待退出信号
// 2. Shutdown先停止接收新连接,再等待进行中的请求完成(最多shutdown_timeout)
// 3. ListenAndServe在Shutdown后返回http.ErrServerClosed,不算错误
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("http server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down http server", zap.Duration("timeout", a.cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
