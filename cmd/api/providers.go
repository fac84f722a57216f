package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-catalog/internal/domain/book"
	"github.com/xiebiao/bookstore-catalog/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-catalog/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookstore-catalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookstore-catalog/internal/interface/http/router"
	"github.com/xiebiao/bookstore-catalog/pkg/mq"
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================
// 有些依赖需要从Config中提取参数,或者需要返回cleanup函数,
// Wire无法直接使用构造函数,这里手写Provider

// provideDB 打开数据库,按配置写入种子数据
// cleanup关闭底层连接池
func provideDB(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewDB(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	if cfg.Database.Seed {
		books, err := database.LoadSeedFile(cfg.Database.SeedFile)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		if err := database.Seed(ctx, db, logger, books); err != nil {
			cleanup()
			return nil, nil, err
		}
	}
	return db, cleanup, nil
}

// provideRedis 未启用Redis时返回nil,就绪检查会跳过它
func provideRedis(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*goredis.Client, func(), error) {
	if !cfg.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(ctx, cfg.Redis, logger)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// providePublisher mq.enabled时连接RabbitMQ,否则使用空实现
func providePublisher(cfg *config.Config, logger *zap.Logger) (mq.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return mq.NopPublisher{}, func() {}, nil
	}
	p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init event publisher: %w", err)
	}
	cleanup := func() {
		if err := p.Close(); err != nil {
			logger.Warn("close event publisher", zap.Error(err))
		}
	}
	return p, cleanup, nil
}

// providePaging 目录分页约束
func providePaging(cfg *config.Config) book.Paging {
	return book.Paging{
		DefaultPageSize: cfg.Catalog.DefaultPageSize,
		MaxPageSize:     cfg.Catalog.MaxPageSize,
	}
}

// provideEngine 创建Gin引擎并注册路由
func provideEngine(cfg *config.Config, logger *zap.Logger, handlers router.Handlers) (*gin.Engine, error) {
	return router.New(cfg, logger, handlers)
}
