package dto

import (
	"github.com/shopspring/decimal"

	appbook "github.com/xiebiao/bookstore-catalog/internal/application/book"
)

func init() {
	// 价格以JSON数字输出(9.99而不是"9.99"),与前端约定一致
	decimal.MarshalJSONWithoutQuotes = true
}

// ListBooksQuery 目录查询参数
// 分页参数缺省时为0,由用例按配置替换为默认值;非整数直接绑定失败(400)
type ListBooksQuery struct {
	PageNumber    int    `form:"pageNumber" example:"1"`
	PageSize      int    `form:"pageSize" example:"5"`
	SortBy        string `form:"sortBy,default=Title" example:"Title"`
	SortDirection string `form:"sortDirection,default=asc" example:"asc"`
	Category      string `form:"category,default=all" example:"all"`
}

// ToUseCase 转换为用例请求
func (q ListBooksQuery) ToUseCase() appbook.ListBooksRequest {
	return appbook.ListBooksRequest{
		PageNumber:    q.PageNumber,
		PageSize:      q.PageSize,
		SortBy:        q.SortBy,
		SortDirection: q.SortDirection,
		Category:      q.Category,
	}
}

// BookURI 路径中的图书ID
type BookURI struct {
	ID uint `uri:"id" binding:"required,min=1"`
}

// BookRequest 新增/修改图书请求
// validator tag说明:
// - required: 必填字段
// - isbn: 自定义ISBN格式校验(见validator.go)
// - 价格不能为负由领域层校验
type BookRequest struct {
	BookID         uint            `json:"bookID" example:"0"`
	Title          string          `json:"title" binding:"required,max=255" example:"Les Miserables"`
	Author         string          `json:"author" binding:"required,max=255" example:"Victor Hugo"`
	Publisher      string          `json:"publisher" binding:"max=255" example:"Signet"`
	ISBN           string          `json:"isbn" binding:"required,isbn" example:"978-0451419439"`
	Classification string          `json:"classification" binding:"max=100" example:"Fiction"`
	Category       string          `json:"category" binding:"max=100" example:"Classic"`
	PageCount      int             `json:"pageCount" binding:"min=0" example:"1488"`
	Price          decimal.Decimal `json:"price" swaggertype:"number" example:"9.95"`
}

// ToUseCase 转换为用例请求
func (r BookRequest) ToUseCase() appbook.BookRequest {
	return appbook.BookRequest{
		BookID:         r.BookID,
		Title:          r.Title,
		Author:         r.Author,
		Publisher:      r.Publisher,
		ISBN:           r.ISBN,
		Classification: r.Classification,
		Category:       r.Category,
		PageCount:      r.PageCount,
		Price:          r.Price,
	}
}
