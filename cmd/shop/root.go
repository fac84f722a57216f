package main

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-catalog/internal/client"
	"github.com/xiebiao/bookstore-catalog/internal/domain/cart"
	"github.com/xiebiao/bookstore-catalog/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-catalog/internal/infrastructure/logger"
	"github.com/xiebiao/bookstore-catalog/internal/infrastructure/persistence/redis"
)

// shop 命令共享的依赖
// 字段为nil时在PersistentPreRunE中按配置创建,测试可预先注入
type shop struct {
	api       *client.Client
	openStore func(ctx context.Context, sessionID string) (*cart.Store, error)
	logger    *zap.Logger
	rdb       *goredis.Client // 首次打开购物车时创建,close()释放

	apiURL    string
	sessionID string
	timeout   time.Duration
}

func newRootCmd(s *shop) *cobra.Command {
	root := &cobra.Command{
		Use:          "shop",
		Short:        "Browse the bookstore catalog and manage your cart",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.init(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&s.apiURL, "api", "", "API base URL (default: client.base_url from config)")
	root.PersistentFlags().StringVar(&s.sessionID, "session", "default", "cart session id")
	root.PersistentFlags().DurationVar(&s.timeout, "timeout", 0, "HTTP timeout (default: client.timeout from config)")

	root.AddCommand(newBooksCmd(s), newCategoriesCmd(s), newCartCmd(s))
	return root
}

func (s *shop) init(ctx context.Context) error {
	if s.api != nil && s.openStore != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if s.logger == nil {
		log, _, err := logger.New(config.LogConfig{Level: "warn", Format: "console", Output: "stderr"})
		if err != nil {
			return err
		}
		s.logger = log
	}

	if s.api == nil {
		baseURL, timeout := cfg.Client.BaseURL, cfg.Client.Timeout
		if s.apiURL != "" {
			baseURL = s.apiURL
		}
		if s.timeout > 0 {
			timeout = s.timeout
		}
		s.api = client.New(baseURL, timeout)
	}

	if s.openStore == nil {
		redisCfg := cfg.Redis
		s.openStore = func(ctx context.Context, sessionID string) (*cart.Store, error) {
			if s.rdb == nil {
				rdb, err := redis.NewClient(ctx, redisCfg, s.logger)
				if err != nil {
					return nil, err
				}
				s.rdb = rdb
			}
			return cart.NewStore(ctx, redis.NewCartSessionStorage(s.rdb, sessionID, redisCfg.SessionTTL))
		}
	}
	return nil
}

// close 释放init中创建的连接
func (s *shop) close() {
	if s.rdb != nil {
		_ = s.rdb.Close()
		s.rdb = nil
	}
}
