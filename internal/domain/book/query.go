package book

import (
	"math"
	"strings"
)

// SortField 允许排序的字段(白名单)
type SortField string

const (
	SortByTitle     SortField = "title"
	SortByAuthor    SortField = "author"
	SortByPublisher SortField = "publisher"
)

// sortFields 对外参数名 → 排序字段
// 参数名区分大小写,不在白名单中的一律按书名排序
var sortFields = map[string]SortField{
	"Title":     SortByTitle,
	"Author":    SortByAuthor,
	"Publisher": SortByPublisher,
}

const (
	DefaultPageNumber    = 1
	DefaultPageSize      = 5
	DefaultMaxPageSize   = 100
	DefaultSortBy        = "Title"
	DefaultSortDirection = "asc"
	// AllCategories 不过滤分类(比较时忽略大小写)
	AllCategories = "all"
)

// ParseSortField 解析排序字段,未知值回退为书名
func ParseSortField(name string) SortField {
	if f, ok := sortFields[name]; ok {
		return f
	}
	return SortByTitle
}

// Query 目录查询条件(已规范化)
type Query struct {
	PageNumber int
	PageSize   int
	SortBy     SortField
	Ascending  bool
	Category   string
}

// Paging 分页约束
// 页码<1按1处理;每页数量<1用默认值,超过上限截断为上限
type Paging struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultPaging 默认分页约束(每页5条,最多100条)
func DefaultPaging() Paging {
	return Paging{DefaultPageSize: DefaultPageSize, MaxPageSize: DefaultMaxPageSize}
}

// NewQuery 使用默认分页约束构造查询
func NewQuery(pageNumber, pageSize int, sortBy, sortDirection, category string) Query {
	return DefaultPaging().NewQuery(pageNumber, pageSize, sortBy, sortDirection, category)
}

// NewQuery 构造查询并对分页参数做截断
// sortDirection忽略大小写等于"asc"时升序,其他任何值(包括空串)都按降序
func (p Paging) NewQuery(pageNumber, pageSize int, sortBy, sortDirection, category string) Query {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = p.DefaultPageSize
	}
	if p.MaxPageSize > 0 && pageSize > p.MaxPageSize {
		pageSize = p.MaxPageSize
	}
	// Offset()不能溢出int,超出的页码本来也只会得到空页
	if pageSize > 0 && pageNumber > math.MaxInt/pageSize+1 {
		pageNumber = math.MaxInt/pageSize + 1
	}

	return Query{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		SortBy:     ParseSortField(sortBy),
		Ascending:  strings.EqualFold(sortDirection, "asc"),
		Category:   category,
	}
}

// Offset 跳过的记录数
func (q Query) Offset() int {
	return (q.PageNumber - 1) * q.PageSize
}

// CategoryFilter 返回需要精确匹配的分类
// 分类为空或忽略大小写等于"all"时不过滤
func (q Query) CategoryFilter() (string, bool) {
	if q.Category == "" || strings.EqualFold(q.Category, AllCategories) {
		return "", false
	}
	return q.Category, true
}

// Page 一页查询结果
type Page struct {
	Query      Query
	TotalItems int64
	Books      []*Book
}

// TotalPages 总页数
func (p Page) TotalPages() int {
	if p.Query.PageSize <= 0 {
		return 0
	}
	size := int64(p.Query.PageSize)
	return int((p.TotalItems + size - 1) / size)
}
