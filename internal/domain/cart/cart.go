package cart

import (
	"github.com/shopspring/decimal"
)

// Cart 购物车状态机(纯内存,不关心持久化)
// 设计说明:
// 1. 以bookID为键,同一本书只有一个条目
// 2. 保持加入顺序,展示时与用户操作顺序一致
// 3. 件数、总价每次读取时重新计算,不缓存
// 4. Cart本身不是并发安全的,并发访问由Store加锁
type Cart struct {
	items []LineItem
}

// New 用已有条目构造购物车(如从会话存储恢复)
// 数量<1的条目被丢弃,重复的bookID合并
func New(items []LineItem) *Cart {
	c := &Cart{}
	for _, item := range items {
		_ = c.Add(item)
	}
	return c
}

// Add 加入购物车
// 已存在则累加数量,否则追加到末尾
func (c *Cart) Add(item LineItem) error {
	if item.BookID < 1 {
		return ErrInvalidBookID
	}
	if item.Quantity < 1 {
		return ErrInvalidQuantity
	}

	if i := c.indexOf(item.BookID); i >= 0 {
		c.items[i].Quantity += item.Quantity
		return nil
	}
	c.items = append(c.items, item)
	return nil
}

// UpdateQuantity 设置数量,q<=0时等同于Remove
// 不存在的bookID忽略
func (c *Cart) UpdateQuantity(bookID uint, q int) {
	if q <= 0 {
		c.Remove(bookID)
		return
	}
	if i := c.indexOf(bookID); i >= 0 {
		c.items[i].Quantity = q
	}
}

// Remove 移除条目
func (c *Cart) Remove(bookID uint) {
	if i := c.indexOf(bookID); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
}

// Clear 清空
func (c *Cart) Clear() {
	c.items = nil
}

// Items 返回条目副本
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Item 按bookID查找条目
func (c *Cart) Item(bookID uint) (LineItem, bool) {
	if i := c.indexOf(bookID); i >= 0 {
		return c.items[i], true
	}
	return LineItem{}, false
}

// ItemCount 总件数 = Σ数量
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// Total 总价 = Σ小计
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// IsEmpty 是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) indexOf(bookID uint) int {
	for i, item := range c.items {
		if item.BookID == bookID {
			return i
		}
	}
	return -1
}
