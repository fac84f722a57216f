package dto

import appcart "github.com/xiebiao/bookstore-catalog/internal/application/cart"

// AddToCartRequest 购物车定价请求
type AddToCartRequest struct {
	BookID   uint `json:"bookId" binding:"required,min=1" example:"1"`
	Quantity int  `json:"quantity" binding:"required,min=1" example:"2"`
}

// ToUseCase 转换为用例请求
func (r AddToCartRequest) ToUseCase() appcart.PriceItemRequest {
	return appcart.PriceItemRequest{BookID: r.BookID, Quantity: r.Quantity}
}

// MessageResponse 只有一条消息的响应
type MessageResponse struct {
	Message string `json:"message" example:"API is working!"`
}
