package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-catalog/internal/domain/book"
	"github.com/xiebiao/bookstore-catalog/internal/infrastructure/config"
)

// newTestDB 每个测试一个独立的内存SQLite库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver:      "sqlite",
		SQLitePath:  ":memory:",
		LogLevel:    "silent",
		AutoMigrate: true,
	}}
	db, err := NewDB(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newTestBook(title, category, isbn string) *book.Book {
	return book.NewBook(title, "Author of "+title, "Publisher", isbn, "Fiction", category, 100, decimal.RequireFromString("9.99"))
}

func createBooks(t *testing.T, repo book.Repository, books ...*book.Book) {
	t.Helper()
	for _, b := range books {
		require.NoError(t, repo.Create(context.Background(), b))
	}
}

func titles(books []*book.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestBookRepository_CreateAndFind(t *testing.T) {
	repo := NewBookRepository(newTestDB(t))
	ctx := context.Background()

	b := newTestBook("Dune", "SciFi", "9780441172719")
	require.NoError(t, repo.Create(ctx, b))
	assert.NotZero(t, b.ID)

	found, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", found.Title)
	assert.True(t, found.Price.Equal(decimal.RequireFromString("9.99")), "price = %s", found.Price)

	byISBN, err := repo.FindByISBN(ctx, "9780441172719")
	require.NoError(t, err)
	assert.Equal(t, b.ID, byISBN.ID)

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	_, err = repo.FindByISBN(ctx, "0000000000")
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestBookRepository_DuplicateISBN(t *testing.T) {
	repo := NewBookRepository(newTestDB(t))
	ctx := context.Background()

	first := newTestBook("First", "A", "9780441172719")
	second := newTestBook("Second", "A", "0441172717")
	createBooks(t, repo, first, second)

	err := repo.Create(ctx, newTestBook("Copy", "A", "9780441172719"))
	assert.ErrorIs(t, err, book.ErrISBNDuplicate)

	second.ISBN = first.ISBN
	assert.ErrorIs(t, repo.Update(ctx, second), book.ErrISBNDuplicate)
}

func TestBookRepository_UpdateAndDelete(t *testing.T) {
	repo := NewBookRepository(newTestDB(t))
	ctx := context.Background()

	b := newTestBook("Old", "A", "9780441172719")
	createBooks(t, repo, b)

	b.Title = "New"
	b.Price = decimal.RequireFromString("12.50")
	require.NoError(t, repo.Update(ctx, b))

	found, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", found.Title)
	assert.True(t, found.Price.Equal(decimal.RequireFromString("12.5")))

	require.NoError(t, repo.Delete(ctx, b.ID))
	assert.ErrorIs(t, repo.Delete(ctx, b.ID), book.ErrBookNotFound)
	_, err = repo.FindByID(ctx, b.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestBookRepository_ListFilterAndPaging(t *testing.T) {
	repo := NewBookRepository(newTestDB(t))
	ctx := context.Background()

	createBooks(t, repo,
		newTestBook("Zorro", "Fiction", "1111111111"),
		newTestBook("Apple", "Fiction", "2222222222"),
		newTestBook("Mid", "History", "3333333333"),
	)

	page1, total, err := repo.List(ctx, book.NewQuery(1, 1, "Title", "asc", "Fiction"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []string{"Apple"}, titles(page1))

	page2, total, err := repo.List(ctx, book.NewQuery(2, 1, "Title", "asc", "Fiction"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []string{"Zorro"}, titles(page2))

	all, total, err := repo.List(ctx, book.NewQuery(1, 10, "Title", "desc", "ALL"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []string{"Zorro", "Mid", "Apple"}, titles(all))

	none, total, err := repo.List(ctx, book.NewQuery(1, 10, "Title", "asc", "Poetry"))
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, none)

	beyond, total, err := repo.List(ctx, book.NewQuery(5, 10, "Title", "asc", ""))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, beyond)
}

func TestBookRepository_ListSortAndTieBreak(t *testing.T) {
	repo := NewBookRepository(newTestDB(t))
	ctx := context.Background()

	a := newTestBook("Same", "X", "1111111111")
	a.Author = "Bravo"
	b := newTestBook("Same", "X", "2222222222")
	b.Author = "Alpha"
	c := newTestBook("Same", "X", "3333333333")
	c.Author = "Charlie"
	createBooks(t, repo, a, b, c)

	// 标题相同:按id升序,结果稳定
	got, _, err := repo.List(ctx, book.NewQuery(1, 10, "Title", "desc", ""))
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID, b.ID, c.ID}, []uint{got[0].ID, got[1].ID, got[2].ID})

	got, _, err = repo.List(ctx, book.NewQuery(1, 10, "Author", "asc", ""))
	require.NoError(t, err)
	assert.Equal(t, []uint{b.ID, a.ID, c.ID}, []uint{got[0].ID, got[1].ID, got[2].ID})

	// 未知排序字段回退为title,非asc方向为降序
	got, _, err = repo.List(ctx, book.NewQuery(1, 10, "price", "xyz", ""))
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestBookRepository_Categories(t *testing.T) {
	repo := NewBookRepository(newTestDB(t))
	ctx := context.Background()

	empty, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	createBooks(t, repo,
		newTestBook("One", "History", "1111111111"),
		newTestBook("Two", "Fiction", "2222222222"),
		newTestBook("Three", "History", "3333333333"),
	)

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fiction", "History"}, categories)
}

func TestTxManager_RollbackOnError(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	tx := NewTxManager(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := tx.Transaction(ctx, func(ctx context.Context) error {
		require.NoError(t, repo.Create(ctx, newTestBook("Ghost", "A", "1111111111")))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, total, err := repo.List(ctx, book.NewQuery(1, 10, "", "", ""))
	require.NoError(t, err)
	assert.Zero(t, total)

	err = tx.Transaction(ctx, func(ctx context.Context) error {
		return tx.Transaction(ctx, func(ctx context.Context) error {
			return repo.Create(ctx, newTestBook("Kept", "A", "2222222222"))
		})
	})
	require.NoError(t, err)

	_, total, err = repo.List(ctx, book.NewQuery(1, 10, "", "", ""))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestSeed(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	books, err := LoadSeedFile(filepath.Join("..", "..", "..", "..", "config", "seed_books.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, books)
	for _, b := range books {
		assert.True(t, book.IsValidISBN(b.ISBN), b.ISBN)
	}

	require.NoError(t, Seed(ctx, db, zap.NewNop(), books))
	require.NoError(t, Seed(ctx, db, zap.NewNop(), books))

	var count int64
	require.NoError(t, db.Model(&BookModel{}).Count(&count).Error)
	assert.Equal(t, int64(len(books)), count)
}

func TestLoadSeedFile_Missing(t *testing.T) {
	_, err := LoadSeedFile(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}
