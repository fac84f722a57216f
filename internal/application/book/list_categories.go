package book

import (
	"context"

	"github.com/xiebiao/bookstore-catalog/internal/domain/book"
	"github.com/xiebiao/bookstore-catalog/pkg/tracing"
)

// ListCategoriesUseCase 分类列表用例
type ListCategoriesUseCase struct {
	bookService book.Service
}

// NewListCategoriesUseCase 创建分类列表用例
func NewListCategoriesUseCase(bookService book.Service) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{bookService: bookService}
}

// Execute 返回所有不重复的分类(升序)
func (uc *ListCategoriesUseCase) Execute(ctx context.Context) ([]string, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.ListCategories")
	defer span.End()

	categories, err := uc.bookService.ListCategories(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}
