package book

import (
	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-catalog/internal/domain/book"
)

// BookResponse 图书响应DTO
// 字段名与前端约定一致(bookID而不是id)
type BookResponse struct {
	BookID         uint            `json:"bookID"`
	Title          string          `json:"title"`
	Author         string          `json:"author"`
	Publisher      string          `json:"publisher"`
	ISBN           string          `json:"isbn"`
	Classification string          `json:"classification"`
	Category       string          `json:"category"`
	PageCount      int             `json:"pageCount"`
	Price          decimal.Decimal `json:"price" swaggertype:"number"`
}

// BookRequest 新增/修改图书的输入
type BookRequest struct {
	BookID         uint
	Title          string
	Author         string
	Publisher      string
	ISBN           string
	Classification string
	Category       string
	PageCount      int
	Price          decimal.Decimal
}

func (r BookRequest) toEntity() *book.Book {
	return book.NewBook(r.Title, r.Author, r.Publisher, r.ISBN, r.Classification, r.Category, r.PageCount, r.Price)
}

// ToBookResponse 实体 → DTO
func ToBookResponse(b *book.Book) BookResponse {
	return BookResponse{
		BookID:         b.ID,
		Title:          b.Title,
		Author:         b.Author,
		Publisher:      b.Publisher,
		ISBN:           b.ISBN,
		Classification: b.Classification,
		Category:       b.Category,
		PageCount:      b.PageCount,
		Price:          b.Price,
	}
}

// ToBookResponses 批量转换,nil切片转换为空切片(JSON输出[]而不是null)
func ToBookResponses(books []*book.Book) []BookResponse {
	out := make([]BookResponse, len(books))
	for i, b := range books {
		out[i] = ToBookResponse(b)
	}
	return out
}
