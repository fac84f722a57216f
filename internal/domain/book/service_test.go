package book

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookstore-catalog/pkg/errors"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, b *Book) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = 42
	}
	return args.Error(0)
}

func (m *mockRepository) FindByID(ctx context.Context, id uint) (*Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*Book)
	return b, args.Error(1)
}

func (m *mockRepository) FindByISBN(ctx context.Context, isbn string) (*Book, error) {
	args := m.Called(ctx, isbn)
	b, _ := args.Get(0).(*Book)
	return b, args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, b *Book) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) List(ctx context.Context, q Query) ([]*Book, int64, error) {
	args := m.Called(ctx, q)
	books, _ := args.Get(0).([]*Book)
	return books, args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]string)
	return c, args.Error(1)
}

func TestService_ListBooks(t *testing.T) {
	ctx := context.Background()

	t.Run("返回分页结果", func(t *testing.T) {
		repo := new(mockRepository)
		q := NewQuery(2, 1, "Title", "asc", "Fiction")
		repo.On("List", ctx, q).Return([]*Book{{ID: 1, Title: "Zorro"}}, int64(2), nil)

		page, err := NewService(repo).ListBooks(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.TotalItems)
		assert.Equal(t, 2, page.TotalPages())
		assert.Len(t, page.Books, 1)
		repo.AssertExpectations(t)
	})

	t.Run("空结果返回空切片", func(t *testing.T) {
		repo := new(mockRepository)
		q := NewQuery(9, 5, "", "", "")
		repo.On("List", ctx, q).Return(nil, int64(0), nil)

		page, err := NewService(repo).ListBooks(ctx, q)
		require.NoError(t, err)
		assert.NotNil(t, page.Books)
		assert.Empty(t, page.Books)
	})

	t.Run("仓储错误透传", func(t *testing.T) {
		repo := new(mockRepository)
		q := NewQuery(1, 5, "", "", "")
		repo.On("List", ctx, q).Return(nil, int64(0), errors.New("db down"))

		_, err := NewService(repo).ListBooks(ctx, q)
		assert.EqualError(t, err, "db down")
	})
}

func TestService_ListCategories(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	repo.On("Categories", ctx).Return(nil, nil)

	categories, err := NewService(repo).ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{}, categories)
}

func TestService_GetBook(t *testing.T) {
	ctx := context.Background()

	t.Run("不存在时带上bookId", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByID", ctx, uint(5)).Return(nil, ErrBookNotFound)

		_, err := NewService(repo).GetBook(ctx, 5)
		require.ErrorIs(t, err, ErrBookNotFound)

		appErr := apperrors.GetAppError(err)
		assert.Equal(t, "Book with ID 5 not found", appErr.Message)
		assert.Equal(t, uint(5), appErr.Fields["bookId"])
	})
}

func TestService_CreateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("成功创建", func(t *testing.T) {
		repo := new(mockRepository)
		b := validBook()
		repo.On("FindByISBN", ctx, b.ISBN).Return(nil, ErrBookNotFound)
		repo.On("Create", ctx, b).Return(nil)

		require.NoError(t, NewService(repo).CreateBook(ctx, b))
		assert.Equal(t, uint(42), b.ID)
		repo.AssertExpectations(t)
	})

	t.Run("ISBN重复", func(t *testing.T) {
		repo := new(mockRepository)
		b := validBook()
		repo.On("FindByISBN", ctx, b.ISBN).Return(&Book{ID: 3, ISBN: b.ISBN}, nil)

		err := NewService(repo).CreateBook(ctx, b)
		assert.ErrorIs(t, err, ErrISBNDuplicate)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("校验失败不访问仓储", func(t *testing.T) {
		repo := new(mockRepository)
		b := validBook()
		b.Title = ""

		err := NewService(repo).CreateBook(ctx, b)
		assert.ErrorIs(t, err, ErrTitleRequired)
		repo.AssertExpectations(t)
	})
}

func TestService_UpdateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("覆盖字段并保存", func(t *testing.T) {
		repo := new(mockRepository)
		existing := validBook()
		existing.ID = 7
		changes := validBook()
		changes.Title = "Les Miserables (Abridged)"

		repo.On("FindByID", ctx, uint(7)).Return(existing, nil)
		repo.On("FindByISBN", ctx, changes.ISBN).Return(existing, nil)
		repo.On("Update", ctx, existing).Return(nil)

		updated, err := NewService(repo).UpdateBook(ctx, 7, changes)
		require.NoError(t, err)
		assert.Equal(t, uint(7), updated.ID)
		assert.Equal(t, "Les Miserables (Abridged)", updated.Title)
		repo.AssertExpectations(t)
	})

	t.Run("ISBN被其他图书占用", func(t *testing.T) {
		repo := new(mockRepository)
		existing := validBook()
		existing.ID = 7
		changes := validBook()

		repo.On("FindByID", ctx, uint(7)).Return(existing, nil)
		repo.On("FindByISBN", ctx, changes.ISBN).Return(&Book{ID: 8}, nil)

		_, err := NewService(repo).UpdateBook(ctx, 7, changes)
		assert.ErrorIs(t, err, ErrISBNDuplicate)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("图书不存在", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByID", ctx, uint(99)).Return(nil, ErrBookNotFound)

		_, err := NewService(repo).UpdateBook(ctx, 99, validBook())
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}

func TestService_DeleteBook(t *testing.T) {
	ctx := context.Background()

	t.Run("删除并返回被删除的图书", func(t *testing.T) {
		repo := new(mockRepository)
		existing := validBook()
		existing.ID = 3
		repo.On("FindByID", ctx, uint(3)).Return(existing, nil)
		repo.On("Delete", ctx, uint(3)).Return(nil)

		deleted, err := NewService(repo).DeleteBook(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, existing, deleted)
	})

	t.Run("不存在", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByID", ctx, uint(3)).Return(nil, ErrBookNotFound)

		_, err := NewService(repo).DeleteBook(ctx, 3)
		assert.ErrorIs(t, err, ErrBookNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
