package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appbook "github.com/xiebiao/bookstore-catalog/internal/application/book"
	appcart "github.com/xiebiao/bookstore-catalog/internal/application/cart"
	"github.com/xiebiao/bookstore-catalog/internal/domain/book"
	"github.com/xiebiao/bookstore-catalog/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-catalog/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookstore-catalog/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-catalog/internal/interface/http/router"
	"github.com/xiebiao/bookstore-catalog/pkg/mq"
)

// 教学说明:集成测试辅助工具
// 与cmd/api的Wire装配保持一致,只是数据库换成内存SQLite、关闭外部依赖,
// 这样测试不需要先启动服务,也不依赖MySQL/Redis/RabbitMQ

func init() {
	gin.SetMode(gin.TestMode)
}

// testConfig 默认配置 + 内存数据库
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFile("")
	require.NoError(t, err)

	cfg.Database.Driver = "sqlite"
	cfg.Database.SQLitePath = ":memory:"
	cfg.Database.LogLevel = "silent"
	cfg.Database.AutoMigrate = true
	cfg.Redis.Enabled = false
	cfg.MQ.Enabled = false
	cfg.Tracing.Enabled = false
	cfg.RateLimit.Enabled = false
	return cfg
}

// newDB 打开内存库,seed为true时写入config/seed_books.yaml
func newDB(t *testing.T, cfg *config.Config, seed bool) *gorm.DB {
	t.Helper()
	db, err := database.NewDB(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if seed {
		books, err := database.LoadSeedFile("../../config/seed_books.yaml")
		require.NoError(t, err)
		require.NoError(t, database.Seed(context.Background(), db, zap.NewNop(), books))
	}
	return db
}

// newEngine 按生产装配顺序组装完整的HTTP引擎
func newEngine(t *testing.T, cfg *config.Config, db *gorm.DB) *gin.Engine {
	t.Helper()
	logger := zap.NewNop()

	svc := book.NewService(database.NewBookRepository(db))
	paging := book.Paging{DefaultPageSize: cfg.Catalog.DefaultPageSize, MaxPageSize: cfg.Catalog.MaxPageSize}

	engine, err := router.New(cfg, logger, router.Handlers{
		Book: handler.NewBookHandler(
			appbook.NewListBooksUseCase(svc, paging),
			appbook.NewManageBookUseCase(svc, database.NewTxManager(db), mq.NopPublisher{}, logger),
		),
		Category: handler.NewCategoryHandler(appbook.NewListCategoriesUseCase(svc)),
		Cart:     handler.NewCartHandler(appcart.NewPriceItemUseCase(svc)),
		Health:   handler.NewHealthHandler(db, nil),
	})
	require.NoError(t, err)
	return engine
}

// seededEngine 带示例数据的引擎
func seededEngine(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := testConfig(t)
	return newEngine(t, cfg, newDB(t, cfg, true))
}

// insertBooks 直接通过仓储写入测试数据
func insertBooks(t *testing.T, db *gorm.DB, books ...*book.Book) {
	t.Helper()
	repo := database.NewBookRepository(db)
	for _, b := range books {
		require.NoError(t, repo.Create(context.Background(), b))
	}
}

func do(t *testing.T, h http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// bookList 目录响应,价格按字符串解析以避免浮点比较
type bookList struct {
	TotalItems int64  `json:"totalItems"`
	PageNumber int    `json:"pageNumber"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
	Category   string `json:"category"`
	Books      []struct {
		BookID    uint        `json:"bookID"`
		Title     string      `json:"title"`
		Author    string      `json:"author"`
		Publisher string      `json:"publisher"`
		Category  string      `json:"category"`
		ISBN      string      `json:"isbn"`
		Price     json.Number `json:"price"`
	} `json:"books"`
}

func (l bookList) titles() []string {
	titles := make([]string, len(l.Books))
	for i, b := range l.Books {
		titles[i] = b.Title
	}
	return titles
}

// problem 问题文档
type problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
	Code     int    `json:"code"`
}

func doWithHeaders(t *testing.T, h http.Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
