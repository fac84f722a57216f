// Package metrics 提供基于Prometheus的指标收集
//
// # 指标分组
//
//   - HTTP层：请求总数、耗时分布、处理中请求数、被限流请求数
//   - 目录查询：查询次数（按分类维度是否过滤）、单页返回条数分布
//   - 购物车定价：定价次数（按结果）
//   - 图书管理：增删改次数（按操作）
//   - 消息队列：事件发布次数（按路由键、结果）
//
// # 命名规范
//
//  1. Counter以`_total`结尾
//  2. Histogram以单位结尾（`_seconds`）
//  3. 标签只使用有限取值（method、route、status），不要用bookId这类高基数值
//
// # 使用示例
//
//	metrics.InitMetrics()
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	metrics.IncCounterVec(metrics.CartPricingTotal, map[string]string{"result": "ok"})
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookstore"

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method、route（gin路由模板，如/api/books/:id）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// RateLimitedTotal 被限流拒绝的请求数
	RateLimitedTotal prometheus.Counter

	// 业务指标

	// CatalogQueriesTotal 目录查询次数
	// 标签：filtered（true/false，是否带分类过滤）、result（ok/error）
	CatalogQueriesTotal *prometheus.CounterVec

	// CatalogPageSize 单次查询实际返回的图书条数
	CatalogPageSize prometheus.Histogram

	// CartPricingTotal 购物车定价次数
	// 标签：result（ok/not_found/error）
	CartPricingTotal *prometheus.CounterVec

	// BookMutationsTotal 图书管理操作次数
	// 标签：op（book.created/book.updated/book.deleted）
	BookMutationsTotal *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数
	// 标签：exchange、routing_key、result（success/failure）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 可重复调用，只有第一次会真正注册（promauto注册到默认Registry，重复注册会panic）
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP请求总数",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP请求耗时（秒）",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "route"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_progress",
			Help:      "正在处理的HTTP请求数",
		},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_rate_limited_total",
			Help:      "被限流拒绝的请求数",
		},
	)

	CatalogQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_queries_total",
			Help:      "目录查询次数",
		},
		[]string{"filtered", "result"},
	)

	CatalogPageSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_page_books",
			Help:      "单次目录查询返回的图书条数",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)

	CartPricingTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_pricing_total",
			Help:      "购物车定价次数",
		},
		[]string{"result"},
	)

	BookMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "book_mutations_total",
			Help:      "图书增删改次数",
		},
		[]string{"op"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_published_total",
			Help:      "消息发布总数",
		},
		[]string{"exchange", "routing_key", "result"},
	)
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	if counter == nil {
		return
	}
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
// 指标未初始化时直接忽略，方便单元测试不依赖全局注册
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram == nil {
		return
	}
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}

// BoolLabel 布尔值转标签值
func BoolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
