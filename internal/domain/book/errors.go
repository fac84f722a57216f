package book

import (
	apperrors "github.com/xiebiao/bookstore-catalog/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "A book with this ISBN already exists")

	// ErrTitleRequired 书名必填
	ErrTitleRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "Title is required")

	// ErrAuthorRequired 作者必填
	ErrAuthorRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "Author is required")

	// ErrInvalidISBN ISBN格式不正确
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN must contain 10 or 13 digits")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "Price must not be negative")

	// ErrInvalidPageCount 无效的页数
	ErrInvalidPageCount = apperrors.New(apperrors.ErrCodeInvalidParams, "Page count must not be negative")

	// ErrIDMismatch 请求体中的ID与路径不一致
	ErrIDMismatch = apperrors.New(apperrors.ErrCodeInvalidParams, "Book ID in body does not match the path")
)

// NotFound 返回带bookId扩展字段的"图书不存在"错误
func NotFound(id uint) *apperrors.AppError {
	return ErrBookNotFound.Withf("Book with ID %d not found", id).With("bookId", id)
}
