package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-catalog/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-catalog/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-catalog/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-catalog/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookstore-catalog/pkg/errors"
	"github.com/xiebiao/bookstore-catalog/pkg/metrics"
	"github.com/xiebiao/bookstore-catalog/pkg/response"
)

// Handlers 路由需要的全部处理器
type Handlers struct {
	Book     *handler.BookHandler
	Category *handler.CategoryHandler
	Cart     *handler.CartHandler
	Health   *handler.HealthHandler
}

// New 创建Gin引擎并注册全部路由
// 中间件顺序:
// 1. Recovery最外层,兜住后续所有中间件的panic
// 2. RequestID/Tracing在Logger之前,日志才能带上请求ID和TraceID
// 3. CORS在限流之前,被限流的响应同样带跨域头
func New(cfg *config.Config, logger *zap.Logger, h Handlers) (*gin.Engine, error) {
	if err := dto.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	// 未配置可信代理时,ClientIP()忽略X-Forwarded-For,限流按连接地址计算
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}
	r.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Tracing(),
		middleware.Logger(logger),
	)
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
		r.Use(middleware.Metrics())
	}
	r.Use(middleware.CORS(cfg.CORS))
	if cfg.RateLimit.Enabled {
		r.Use(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Middleware())
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.ErrRouteNotFound)
	})

	// 运维端点
	r.GET("/healthz", h.Health.Live)
	r.GET("/readyz", h.Health.Ready)
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
	if cfg.Swagger.Enabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	{
		api.GET("/test", h.Health.Test)

		books := api.Group("/books")
		{
			books.GET("", h.Book.ListBooks)
			books.POST("", h.Book.CreateBook)
			books.GET("/:id", h.Book.GetBook)
			books.PUT("/:id", h.Book.UpdateBook)
			books.DELETE("/:id", h.Book.DeleteBook)
		}

		api.GET("/categories", h.Category.ListCategories)
		api.POST("/cart", h.Cart.AddToCart)
	}

	return r, nil
}
