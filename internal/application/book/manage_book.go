package book

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-catalog/internal/domain/book"
	"github.com/xiebiao/bookstore-catalog/pkg/metrics"
	"github.com/xiebiao/bookstore-catalog/pkg/mq"
	"github.com/xiebiao/bookstore-catalog/pkg/tracing"
)

// 图书事件路由键
const (
	EventBookCreated = "book.created"
	EventBookUpdated = "book.updated"
	EventBookDeleted = "book.deleted"
)

// Transactor 事务执行器
// fn内通过ctx传递的仓储操作在同一事务中执行,fn返回error时回滚
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// BookEvent 图书变更事件
type BookEvent struct {
	Type       string        `json:"type"`
	BookID     uint          `json:"bookId"`
	Book       *BookResponse `json:"book,omitempty"`
	OccurredAt time.Time     `json:"occurredAt"`
}

// ManageBookUseCase 图书管理用例(管理后台的增删改查)
// 设计说明:
// 1. 应用层负责用例编排:事务边界、事件发布
// 2. 业务规则校验由领域服务负责(必填字段、ISBN格式与唯一性)
// 3. 事件在事务提交后发布,发布失败只记录日志,不影响请求结果
type ManageBookUseCase struct {
	bookService book.Service
	tx          Transactor
	publisher   mq.EventPublisher
	logger      *zap.Logger
}

// NewManageBookUseCase 创建图书管理用例
func NewManageBookUseCase(bookService book.Service, tx Transactor, publisher mq.EventPublisher, logger *zap.Logger) *ManageBookUseCase {
	return &ManageBookUseCase{
		bookService: bookService,
		tx:          tx,
		publisher:   publisher,
		logger:      logger,
	}
}

// Get 获取单本图书
func (uc *ManageBookUseCase) Get(ctx context.Context, id uint) (*BookResponse, error) {
	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBookResponse(b)
	return &resp, nil
}

// Create 新增图书(请求中的BookID被忽略)
func (uc *ManageBookUseCase) Create(ctx context.Context, req BookRequest) (*BookResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.CreateBook")
	defer span.End()

	b := req.toEntity()
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		return uc.bookService.CreateBook(txCtx, b)
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	resp := ToBookResponse(b)
	span.SetAttributes(attribute.Int64("book.id", int64(b.ID)))
	uc.afterMutation(ctx, EventBookCreated, b.ID, &resp)
	return &resp, nil
}

// Update 修改图书
// 请求体中的BookID非0且与路径ID不一致时拒绝
func (uc *ManageBookUseCase) Update(ctx context.Context, id uint, req BookRequest) (*BookResponse, error) {
	if req.BookID != 0 && req.BookID != id {
		return nil, book.ErrIDMismatch.With("bookId", id)
	}

	ctx, span := tracing.StartSpan(ctx, "catalog.UpdateBook")
	defer span.End()
	span.SetAttributes(attribute.Int64("book.id", int64(id)))

	var updated *book.Book
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = uc.bookService.UpdateBook(txCtx, id, req.toEntity())
		return err
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	resp := ToBookResponse(updated)
	uc.afterMutation(ctx, EventBookUpdated, id, &resp)
	return &resp, nil
}

// Delete 删除图书
func (uc *ManageBookUseCase) Delete(ctx context.Context, id uint) error {
	ctx, span := tracing.StartSpan(ctx, "catalog.DeleteBook")
	defer span.End()
	span.SetAttributes(attribute.Int64("book.id", int64(id)))

	var deleted *book.Book
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		deleted, err = uc.bookService.DeleteBook(txCtx, id)
		return err
	})
	if err != nil {
		tracing.RecordError(span, err)
		return err
	}

	resp := ToBookResponse(deleted)
	uc.afterMutation(ctx, EventBookDeleted, id, &resp)
	return nil
}

// afterMutation 记录指标并发布事件
func (uc *ManageBookUseCase) afterMutation(ctx context.Context, eventType string, id uint, b *BookResponse) {
	metrics.IncCounterVec(metrics.BookMutationsTotal, map[string]string{"op": eventType})

	event := BookEvent{
		Type:       eventType,
		BookID:     id,
		Book:       b,
		OccurredAt: time.Now().UTC(),
	}
	if err := uc.publisher.Publish(ctx, eventType, event); err != nil {
		uc.logger.Warn("publish book event failed",
			zap.String("event", eventType),
			zap.Uint("book_id", id),
			zap.String("trace_id", tracing.ExtractTraceID(ctx)),
			zap.Error(err),
		)
	}
}
