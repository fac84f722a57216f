//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// Wire工作流程:
// Step 1: 编写wire.go(本文件),定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go,包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookstore-catalog/internal/application/book"
	appcart "github.com/xiebiao/bookstore-catalog/internal/application/cart"
	"github.com/xiebiao/bookstore-catalog/internal/domain/book"
	"github.com/xiebiao/bookstore-catalog/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-catalog/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookstore-catalog/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-catalog/internal/interface/http/router"
)

// infrastructureSet 基础设施层依赖
// 包含:数据库连接(含种子数据)、Redis连接、事件发布者
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedis,
	providePublisher,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	database.NewBookRepository,
	database.NewTxManager,
	wire.Bind(new(appbook.Transactor), new(*database.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	providePaging,
	appbook.NewListBooksUseCase,
	appbook.NewListCategoriesUseCase,
	appbook.NewManageBookUseCase,
	appcart.NewPriceItemUseCase,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewCategoryHandler,
	handler.NewCartHandler,
	handler.NewHealthHandler,
	wire.Struct(new(router.Handlers), "*"),
	provideEngine,
)

// InitializeApp 初始化整个应用
// 配置和日志在main中先行创建(日志要覆盖依赖初始化过程),作为参数传入
// 返回的cleanup按创建的逆序释放资源
func InitializeApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		newApp,
	)
	return nil, nil, nil
}
