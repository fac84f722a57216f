package cart

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// LineItem 购物车条目
// 小计不单独存储,每次读取时由 单价×数量 计算,避免两者不一致
type LineItem struct {
	BookID   uint            `json:"bookId"`
	Title    string          `json:"title"`
	Author   string          `json:"author"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Subtotal 小计
func (i LineItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type lineItemJSON struct {
	BookID   uint            `json:"bookId"`
	Title    string          `json:"title"`
	Author   string          `json:"author"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// MarshalJSON 序列化时附带计算出的小计(反序列化时忽略subtotal字段)
func (i LineItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(lineItemJSON{
		BookID:   i.BookID,
		Title:    i.Title,
		Author:   i.Author,
		Price:    i.Price,
		Quantity: i.Quantity,
		Subtotal: i.Subtotal(),
	})
}
