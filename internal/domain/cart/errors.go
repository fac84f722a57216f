package cart

import (
	apperrors "github.com/xiebiao/bookstore-catalog/pkg/errors"
)

// 购物车领域错误定义
var (
	// ErrInvalidQuantity 加入购物车的数量必须>=1
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "Quantity must be at least 1")

	// ErrInvalidBookID 图书ID必须>=1
	ErrInvalidBookID = apperrors.New(apperrors.ErrCodeInvalidParams, "Book ID must be at least 1")
)
