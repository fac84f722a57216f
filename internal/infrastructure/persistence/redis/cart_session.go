package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookstore-catalog/internal/domain/cart"
	apperrors "github.com/xiebiao/bookstore-catalog/pkg/errors"
)

// CartSessionStorage 基于Redis的购物车会话存储
// 设计说明：
// 1. 实现cart.SessionStorage，一个sessionID对应一个浏览器会话
// 2. Key设计：cart:session:{sessionID}:{key}，不同会话互不可见
// 3. 滑动过期：每次读写都把TTL重置为session_ttl，长时间不活动后会话自然消失
type CartSessionStorage struct {
	client    redis.Cmdable
	sessionID string
	ttl       time.Duration
}

var _ cart.SessionStorage = (*CartSessionStorage)(nil)

// NewCartSessionStorage 创建会话存储，ttl<=0表示不过期
func NewCartSessionStorage(client redis.Cmdable, sessionID string, ttl time.Duration) *CartSessionStorage {
	return &CartSessionStorage{client: client, sessionID: sessionID, ttl: ttl}
}

func (s *CartSessionStorage) key(name string) string {
	return fmt.Sprintf("cart:session:%s:%s", s.sessionID, name)
}

// Get 读取一个键，不存在时返回ok=false
func (s *CartSessionStorage) Get(ctx context.Context, name string) (string, bool, error) {
	key := s.key(name)
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.ErrRedisError.WithErr(err).Withf("read session key %s", name)
	}

	if s.ttl > 0 {
		if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
			return "", false, apperrors.ErrRedisError.WithErr(err).Withf("refresh session key %s", name)
		}
	}
	return value, true, nil
}

// Set 写入一个键并重置过期时间
func (s *CartSessionStorage) Set(ctx context.Context, name, value string) error {
	if err := s.client.Set(ctx, s.key(name), value, s.ttl).Err(); err != nil {
		return apperrors.ErrRedisError.WithErr(err).Withf("write session key %s", name)
	}
	return nil
}

// Remove 删除一个键，键不存在不是错误
func (s *CartSessionStorage) Remove(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, s.key(name)).Err(); err != nil {
		return apperrors.ErrRedisError.WithErr(err).Withf("remove session key %s", name)
	}
	return nil
}
