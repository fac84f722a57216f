package book

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xiebiao/bookstore-catalog/internal/domain/book"
)

type mockBookService struct {
	mock.Mock
}

func (m *mockBookService) ListBooks(ctx context.Context, q book.Query) (book.Page, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(book.Page), args.Error(1)
}

func (m *mockBookService) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]string)
	return c, args.Error(1)
}

func (m *mockBookService) GetBook(ctx context.Context, id uint) (*book.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *mockBookService) CreateBook(ctx context.Context, b *book.Book) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = 101
	}
	return args.Error(0)
}

func (m *mockBookService) UpdateBook(ctx context.Context, id uint, changes *book.Book) (*book.Book, error) {
	args := m.Called(ctx, id, changes)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *mockBookService) DeleteBook(ctx context.Context, id uint) (*book.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

// inlineTx 直接执行fn,记录调用次数
type inlineTx struct {
	calls int
}

func (t *inlineTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	return m.Called(ctx, routingKey, message).Error(0)
}

func (m *mockPublisher) Close() error {
	return nil
}
