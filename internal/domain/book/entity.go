package book

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Book 图书实体(目录中唯一的持久化实体)
// DDD设计说明:
// 1. ID由存储层生成,创建后不可变
// 2. 价格使用decimal.Decimal(避免浮点数精度问题,与数据库decimal(10,2)对应)
// 3. ISBN作为业务唯一标识(数据库层唯一索引保证)
// 4. Category是自由文本,不关联分类表;有效分类由查询时的去重结果决定
type Book struct {
	ID             uint
	Title          string
	Author         string
	Publisher      string
	ISBN           string
	Classification string
	Category       string
	PageCount      int
	Price          decimal.Decimal
}

// NewBook 创建新图书(工厂方法)
// ISBN会被规范化(去掉连字符和空格),字段校验由Validate完成
func NewBook(title, author, publisher, isbn, classification, category string, pageCount int, price decimal.Decimal) *Book {
	return &Book{
		Title:          strings.TrimSpace(title),
		Author:         strings.TrimSpace(author),
		Publisher:      strings.TrimSpace(publisher),
		ISBN:           NormalizeISBN(isbn),
		Classification: strings.TrimSpace(classification),
		Category:       strings.TrimSpace(category),
		PageCount:      pageCount,
		Price:          price,
	}
}

// Validate 校验业务规则
// 1. 书名、作者必填
// 2. ISBN去掉分隔符后为10位或13位
// 3. 价格、页数不能为负
func (b *Book) Validate() error {
	if b.Title == "" {
		return ErrTitleRequired
	}
	if b.Author == "" {
		return ErrAuthorRequired
	}
	if !IsValidISBN(b.ISBN) {
		return ErrInvalidISBN
	}
	if b.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if b.PageCount < 0 {
		return ErrInvalidPageCount
	}
	return nil
}

// Apply 用另一本图书的可变字段覆盖当前图书(ID保持不变)
func (b *Book) Apply(changes *Book) {
	b.Title = changes.Title
	b.Author = changes.Author
	b.Publisher = changes.Publisher
	b.ISBN = changes.ISBN
	b.Classification = changes.Classification
	b.Category = changes.Category
	b.PageCount = changes.PageCount
	b.Price = changes.Price
}

// NormalizeISBN 去掉ISBN中的连字符和空格
func NormalizeISBN(isbn string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, strings.TrimSpace(isbn))
}

// IsValidISBN 校验ISBN格式(只校验长度和字符,不校验校验位)
// ISBN-10: 9位数字 + 数字或X
// ISBN-13: 13位数字
func IsValidISBN(isbn string) bool {
	isbn = NormalizeISBN(isbn)
	switch len(isbn) {
	case 10:
		for i, r := range isbn {
			if r >= '0' && r <= '9' {
				continue
			}
			if i == 9 && (r == 'X' || r == 'x') {
				continue
			}
			return false
		}
		return true
	case 13:
		for _, r := range isbn {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	default:
		return false
	}
}
