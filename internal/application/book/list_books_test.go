package book

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-catalog/internal/domain/book"
)

func TestListBooksUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("截断分页参数并回显", func(t *testing.T) {
		svc := new(mockBookService)
		expected := book.NewQuery(1, 100, "Author", "desc", "Fiction")
		svc.On("ListBooks", mock.Anything, expected).Return(book.Page{
			Query:      expected,
			TotalItems: 101,
			Books: []*book.Book{
				{ID: 2, Title: "Apple", Category: "Fiction", Price: decimal.RequireFromString("9.99")},
			},
		}, nil)

		uc := NewListBooksUseCase(svc, book.DefaultPaging())
		resp, err := uc.Execute(ctx, ListBooksRequest{
			PageNumber:    0,
			PageSize:      500,
			SortBy:        "Author",
			SortDirection: "desc",
			Category:      "Fiction",
		})
		require.NoError(t, err)

		assert.Equal(t, int64(101), resp.TotalItems)
		assert.Equal(t, 1, resp.PageNumber)
		assert.Equal(t, 100, resp.PageSize)
		assert.Equal(t, 2, resp.TotalPages)
		assert.Equal(t, "Fiction", resp.Category)
		require.Len(t, resp.Books, 1)
		assert.Equal(t, uint(2), resp.Books[0].BookID)
		svc.AssertExpectations(t)
	})

	t.Run("空页返回空数组", func(t *testing.T) {
		svc := new(mockBookService)
		svc.On("ListBooks", mock.Anything, mock.Anything).Return(book.Page{Books: []*book.Book{}}, nil)

		resp, err := NewListBooksUseCase(svc, book.DefaultPaging()).Execute(ctx, ListBooksRequest{PageNumber: 1, PageSize: 5})
		require.NoError(t, err)
		assert.NotNil(t, resp.Books)
		assert.Empty(t, resp.Books)
	})

	t.Run("查询失败", func(t *testing.T) {
		svc := new(mockBookService)
		svc.On("ListBooks", mock.Anything, mock.Anything).Return(book.Page{}, errors.New("db down"))

		_, err := NewListBooksUseCase(svc, book.DefaultPaging()).Execute(ctx, ListBooksRequest{})
		assert.EqualError(t, err, "db down")
	})
}

func TestListCategoriesUseCase_Execute(t *testing.T) {
	svc := new(mockBookService)
	svc.On("ListCategories", mock.Anything).Return([]string{"Biography", "Fiction"}, nil)

	categories, err := NewListCategoriesUseCase(svc).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Biography", "Fiction"}, categories)
}
