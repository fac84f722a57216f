package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	appbook "github.com/xiebiao/bookstore-catalog/internal/application/book"
	"github.com/xiebiao/bookstore-catalog/internal/domain/cart"
	"github.com/xiebiao/bookstore-catalog/pkg/circuitbreaker"
)

// ErrUnreachable 网络层失败(连接拒绝、超时、DNS),与API返回的错误区分开
var ErrUnreachable = errors.New("cannot reach bookstore API")

// APIError API返回的问题文档
type APIError struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Code   int    `json:"code"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (HTTP %d)", e.Detail, e.Status)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Title, e.Status)
}

// IsNotFound 是否为404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// ListBooksParams 目录查询参数,零值字段不发送
type ListBooksParams struct {
	PageNumber    int
	PageSize      int
	SortBy        string
	SortDirection string
	Category      string
}

func (p ListBooksParams) values() url.Values {
	v := url.Values{}
	if p.PageNumber != 0 {
		v.Set("pageNumber", strconv.Itoa(p.PageNumber))
	}
	if p.PageSize != 0 {
		v.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	if p.SortBy != "" {
		v.Set("sortBy", p.SortBy)
	}
	if p.SortDirection != "" {
		v.Set("sortDirection", p.SortDirection)
	}
	if p.Category != "" {
		v.Set("category", p.Category)
	}
	return v
}

// Client 图书目录API客户端
// 设计说明:
// 1. 不重试,失败直接返回给调用方
// 2. 网络失败和5xx计入熔断器,连续失败后快速返回ErrUnreachable,不再等待超时
// 3. 4xx是调用方的问题,不影响熔断
type Client struct {
	httpClient *http.Client
	baseURL    string
	breaker    *circuitbreaker.CircuitBreaker
}

// Option 客户端选项
type Option func(*Client)

// WithBreaker 替换默认熔断器
func WithBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(c *Client) { c.breaker = cb }
}

// New 创建客户端
// 默认熔断器:连续3次失败后打开30秒
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		breaker: circuitbreaker.New(circuitbreaker.Config{
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool { return counts.ConsecutiveFailures >= 3 },
			IsFailure:   isServiceFailure,
		}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// isServiceFailure 网络不可达或服务端错误
func isServiceFailure(err error) bool {
	if errors.Is(err, ErrUnreachable) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status >= http.StatusInternalServerError
}

// ListBooks GET /api/books
func (c *Client) ListBooks(ctx context.Context, p ListBooksParams) (*appbook.ListBooksResponse, error) {
	var res appbook.ListBooksResponse
	if err := c.do(ctx, http.MethodGet, "/api/books?"+p.values().Encode(), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Categories GET /api/categories
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var res []string
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// PriceItem POST /api/cart,返回带小计的购物车条目
func (c *Client) PriceItem(ctx context.Context, bookID uint, quantity int) (*cart.LineItem, error) {
	body := map[string]interface{}{"bookId": bookID, "quantity": quantity}
	var item cart.LineItem
	if err := c.do(ctx, http.MethodPost, "/api/cart", body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, target interface{}) error {
	err := c.breaker.Execute(func() error {
		return c.roundTrip(ctx, method, path, body, target)
	})
	if errors.Is(err, circuitbreaker.ErrOpenState) {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, target interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// decodeError 解析问题文档,不是JSON时只保留状态码
func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Title: http.StatusText(resp.StatusCode)}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(data, apiErr)
	apiErr.Status = resp.StatusCode
	return apiErr
}
