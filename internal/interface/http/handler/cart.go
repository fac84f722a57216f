package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/bookstore-catalog/internal/application/cart"
	"github.com/xiebiao/bookstore-catalog/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookstore-catalog/pkg/errors"
	"github.com/xiebiao/bookstore-catalog/pkg/response"
)

// CartHandler 购物车HTTP处理器
// 服务端不保存购物车,这里只负责给条目定价
type CartHandler struct {
	priceItem *appcart.PriceItemUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(priceItem *appcart.PriceItemUseCase) *CartHandler {
	return &CartHandler{priceItem: priceItem}
}

// AddToCart 查询图书并返回带小计的购物车条目
// @Summary      购物车定价
// @Description  无状态:返回{bookId,title,author,price,quantity,subtotal},由客户端合并到自己的购物车
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Param        request body dto.AddToCartRequest true "图书ID和数量"
// @Success      200 {object} cart.LineItem
// @Failure      400 {object} response.Problem "参数错误"
// @Failure      404 {object} response.Problem "图书不存在"
// @Failure      500 {object} response.Problem
// @Router       /api/cart [post]
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req dto.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.Withf("Invalid cart request: %v", err))
		return
	}

	item, err := h.priceItem.Execute(c.Request.Context(), req.ToUseCase())
	if err != nil {
		response.Fail(c, err, "Error adding to cart")
		return
	}
	response.OK(c, item)
}
