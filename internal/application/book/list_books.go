package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookstore-catalog/internal/domain/book"
	"github.com/xiebiao/bookstore-catalog/pkg/metrics"
	"github.com/xiebiao/bookstore-catalog/pkg/tracing"
)

// ListBooksUseCase 目录查询用例
// 设计说明:
// 1. 支持分页、排序、按分类过滤
// 2. 分页参数在这里截断(页码>=1, 1<=每页数量<=上限),截断后的值原样回显
// 3. 不做缓存,每次都查询存储
type ListBooksUseCase struct {
	bookService book.Service
	paging      book.Paging
}

// NewListBooksUseCase 创建目录查询用例
func NewListBooksUseCase(bookService book.Service, paging book.Paging) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
		paging:      paging,
	}
}

// ListBooksRequest 目录查询请求
type ListBooksRequest struct {
	PageNumber    int
	PageSize      int
	SortBy        string // Title | Author | Publisher,其他值按Title
	SortDirection string // asc,其他值按降序
	Category      string // all表示不过滤
}

// ListBooksResponse 目录查询响应
type ListBooksResponse struct {
	TotalItems int64          `json:"totalItems"`
	PageNumber int            `json:"pageNumber"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
	Category   string         `json:"category"`
	Books      []BookResponse `json:"books"`
}

// Execute 执行目录查询
// 学习要点:
// 1. Query构造负责参数截断和白名单解析
// 2. totalItems是过滤后、分页前的总数
// 3. 查询失败时Span记录错误,指标按结果分类
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	q := uc.paging.NewQuery(req.PageNumber, req.PageSize, req.SortBy, req.SortDirection, req.Category)
	_, filtered := q.CategoryFilter()

	ctx, span := tracing.StartSpan(ctx, "catalog.ListBooks")
	defer span.End()
	span.SetAttributes(
		attribute.Int("catalog.page_number", q.PageNumber),
		attribute.Int("catalog.page_size", q.PageSize),
		attribute.String("catalog.sort_by", string(q.SortBy)),
		attribute.Bool("catalog.ascending", q.Ascending),
		attribute.String("catalog.category", q.Category),
	)

	page, err := uc.bookService.ListBooks(ctx, q)
	if err != nil {
		tracing.RecordError(span, err)
		metrics.IncCounterVec(metrics.CatalogQueriesTotal, map[string]string{
			"filtered": metrics.BoolLabel(filtered), "result": "error",
		})
		return nil, err
	}

	metrics.IncCounterVec(metrics.CatalogQueriesTotal, map[string]string{
		"filtered": metrics.BoolLabel(filtered), "result": "ok",
	})
	metrics.ObserveHistogram(metrics.CatalogPageSize, float64(len(page.Books)))
	span.SetAttributes(attribute.Int64("catalog.total_items", page.TotalItems))

	return &ListBooksResponse{
		TotalItems: page.TotalItems,
		PageNumber: q.PageNumber,
		PageSize:   q.PageSize,
		TotalPages: page.TotalPages(),
		Category:   req.Category,
		Books:      ToBookResponses(page.Books),
	}, nil
}
