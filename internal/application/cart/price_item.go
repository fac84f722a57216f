package cart

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookstore-catalog/internal/domain/book"
	"github.com/xiebiao/bookstore-catalog/internal/domain/cart"
	"github.com/xiebiao/bookstore-catalog/pkg/metrics"
	"github.com/xiebiao/bookstore-catalog/pkg/tracing"
)

// PriceItemUseCase 购物车定价用例
// 设计说明:
// 1. 无状态:每次调用都重新查询图书并计算小计,服务端不保存购物车
// 2. 真正的购物车状态在客户端(cart.Store)
type PriceItemUseCase struct {
	bookService book.Service
}

// NewPriceItemUseCase 创建定价用例
func NewPriceItemUseCase(bookService book.Service) *PriceItemUseCase {
	return &PriceItemUseCase{bookService: bookService}
}

// PriceItemRequest 定价请求
type PriceItemRequest struct {
	BookID   uint
	Quantity int
}

// Execute 查询图书并返回带小计的购物车条目
// 图书不存在时返回book.ErrBookNotFound(带bookId扩展字段)
func (uc *PriceItemUseCase) Execute(ctx context.Context, req PriceItemRequest) (*cart.LineItem, error) {
	if req.BookID < 1 {
		return nil, cart.ErrInvalidBookID
	}
	if req.Quantity < 1 {
		return nil, cart.ErrInvalidQuantity
	}

	ctx, span := tracing.StartSpan(ctx, "cart.PriceItem")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("book.id", int64(req.BookID)),
		attribute.Int("cart.quantity", req.Quantity),
	)

	b, err := uc.bookService.GetBook(ctx, req.BookID)
	if err != nil {
		result := "error"
		if errors.Is(err, book.ErrBookNotFound) {
			result = "not_found"
		}
		metrics.IncCounterVec(metrics.CartPricingTotal, map[string]string{"result": result})
		tracing.RecordError(span, err)
		return nil, err
	}

	metrics.IncCounterVec(metrics.CartPricingTotal, map[string]string{"result": "ok"})
	return &cart.LineItem{
		BookID:   b.ID,
		Title:    b.Title,
		Author:   b.Author,
		Price:    b.Price,
		Quantity: req.Quantity,
	}, nil
}
