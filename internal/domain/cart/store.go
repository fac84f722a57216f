package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/shopspring/decimal"

	apperrors "github.com/xiebiao/bookstore-catalog/pkg/errors"
)

// 会话存储中使用的键
const (
	KeyCart          = "bookstore-cart"
	KeyLastAddedFrom = "last-added-from"
)

// SessionStorage 会话级键值存储端口
// 键不存在时返回 ("", false, nil)
type SessionStorage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Store 持久化的客户端购物车
// 设计说明:
// 1. 构造时从SessionStorage恢复,每次修改后写回
// 2. 互斥锁保护,可被多个goroutine共享;写回失败时内存状态不变
// 3. 存储中的购物车数据损坏时按空购物车处理并清除该键
type Store struct {
	mu            sync.Mutex
	storage       SessionStorage
	cart          *Cart
	lastAddedFrom string
}

// NewStore 创建购物车并从存储恢复状态
func NewStore(ctx context.Context, storage SessionStorage) (*Store, error) {
	s := &Store{storage: storage, cart: New(nil)}

	raw, ok, err := storage.Get(ctx, KeyCart)
	if err != nil {
		return nil, apperrors.Wrap(err, "restore cart")
	}
	if ok && raw != "" {
		var items []LineItem
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			if err := storage.Remove(ctx, KeyCart); err != nil {
				return nil, apperrors.Wrap(err, "discard corrupt cart")
			}
		} else {
			s.cart = New(items)
		}
	}

	path, ok, err := storage.Get(ctx, KeyLastAddedFrom)
	if err != nil {
		return nil, apperrors.Wrap(err, "restore last-added-from")
	}
	if ok {
		s.lastAddedFrom = path
	}
	return s, nil
}

// Add 加入购物车并持久化
func (s *Store) Add(ctx context.Context, item LineItem) error {
	return s.update(ctx, func(c *Cart) error { return c.Add(item) })
}

// UpdateQuantity 修改数量并持久化,q<=0时移除
func (s *Store) UpdateQuantity(ctx context.Context, bookID uint, q int) error {
	return s.update(ctx, func(c *Cart) error {
		c.UpdateQuantity(bookID, q)
		return nil
	})
}

// Remove 移除条目并持久化
func (s *Store) Remove(ctx context.Context, bookID uint) error {
	return s.update(ctx, func(c *Cart) error {
		c.Remove(bookID)
		return nil
	})
}

// Clear 清空购物车并删除存储中的购物车键
// last-added-from保持不变
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Remove(ctx, KeyCart); err != nil {
		return apperrors.Wrap(err, "clear cart")
	}
	s.cart.Clear()
	return nil
}

// SetLastAddedFrom 记录最近一次加购的来源页面,空路径不写入存储
func (s *Store) SetLastAddedFrom(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if path != "" {
		if err := s.storage.Set(ctx, KeyLastAddedFrom, path); err != nil {
			return apperrors.Wrap(err, "save last-added-from")
		}
	}
	s.lastAddedFrom = path
	return nil
}

// LastAddedFrom 最近一次加购的来源页面
func (s *Store) LastAddedFrom() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAddedFrom
}

// Items 当前条目(副本)
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

// ItemCount 总件数
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

// Total 总价
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// update 在副本上修改,写回成功后才替换内存中的购物车
func (s *Store) update(ctx context.Context, mutate func(c *Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := New(s.cart.Items())
	if err := mutate(next); err != nil {
		return err
	}
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.cart = next
	return nil
}

// persist 写回购物车(调用方持有锁)
func (s *Store) persist(ctx context.Context, c *Cart) error {
	data, err := json.Marshal(c.Items())
	if err != nil {
		return apperrors.Wrap(err, "encode cart")
	}
	if err := s.storage.Set(ctx, KeyCart, string(data)); err != nil {
		return apperrors.Wrap(err, "save cart")
	}
	return nil
}
