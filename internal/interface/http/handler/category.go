package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookstore-catalog/internal/application/book"
	"github.com/xiebiao/bookstore-catalog/pkg/response"
)

// CategoryHandler 分类HTTP处理器
type CategoryHandler struct {
	listCategories *appbook.ListCategoriesUseCase
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(listCategories *appbook.ListCategoriesUseCase) *CategoryHandler {
	return &CategoryHandler{listCategories: listCategories}
}

// ListCategories 所有分类
// @Summary      分类列表
// @Description  现有图书中不重复的分类,升序
// @Tags         图书
// @Produce      json
// @Success      200 {array} string
// @Failure      500 {object} response.Problem
// @Router       /api/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.listCategories.Execute(c.Request.Context())
	if err != nil {
		response.Fail(c, err, "Error retrieving categories")
		return
	}
	response.OK(c, categories)
}
