package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookstore-catalog/internal/application/book"
	"github.com/xiebiao/bookstore-catalog/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookstore-catalog/pkg/errors"
	"github.com/xiebiao/bookstore-catalog/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	listBooks  *appbook.ListBooksUseCase
	manageBook *appbook.ManageBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(listBooks *appbook.ListBooksUseCase, manageBook *appbook.ManageBookUseCase) *BookHandler {
	return &BookHandler{
		listBooks:  listBooks,
		manageBook: manageBook,
	}
}

// ListBooks 分页查询图书目录
// @Summary      图书目录
// @Description  按分类过滤、按书名/作者/出版社排序的分页查询
// @Tags         图书
// @Produce      json
// @Param        pageNumber    query int    false "页码(从1开始)" default(1)
// @Param        pageSize      query int    false "每页数量(最大100)" default(5)
// @Param        sortBy        query string false "排序字段" Enums(Title, Author, Publisher) default(Title)
// @Param        sortDirection query string false "排序方向(asc以外均为降序)" default(asc)
// @Param        category      query string false "分类,all表示不过滤" default(all)
// @Success      200 {object} appbook.ListBooksResponse
// @Failure      400 {object} response.Problem "分页参数不是整数"
// @Failure      500 {object} response.Problem
// @Router       /api/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var q dto.ListBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperrors.ErrBindError.Withf("Invalid query parameters: %v", err))
		return
	}

	result, err := h.listBooks.Execute(c.Request.Context(), q.ToUseCase())
	if err != nil {
		response.Fail(c, err, "Error retrieving books")
		return
	}
	response.OK(c, result)
}

// GetBook 查询单本图书
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} appbook.BookResponse
// @Failure      404 {object} response.Problem "图书不存在"
// @Router       /api/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := bindBookID(c)
	if !ok {
		return
	}

	result, err := h.manageBook.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err, "Error retrieving book")
		return
	}
	response.OK(c, result)
}

// CreateBook 新增图书
// @Summary      新增图书
// @Description  请求体中的bookID会被忽略
// @Tags         图书管理
// @Accept       json
// @Produce      json
// @Param        request body dto.BookRequest true "图书信息"
// @Success      201 {object} appbook.BookResponse
// @Failure      400 {object} response.Problem "参数错误"
// @Failure      409 {object} response.Problem "ISBN已存在"
// @Router       /api/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.Withf("Invalid book: %v", err))
		return
	}

	result, err := h.manageBook.Create(c.Request.Context(), req.ToUseCase())
	if err != nil {
		response.Fail(c, err, "Error creating book")
		return
	}
	response.Created(c, result)
}

// UpdateBook 修改图书
// @Summary      修改图书
// @Description  请求体中非0的bookID必须与路径ID一致
// @Tags         图书管理
// @Accept       json
// @Produce      json
// @Param        id      path int             true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} appbook.BookResponse
// @Failure      400 {object} response.Problem "参数错误或ID不一致"
// @Failure      404 {object} response.Problem "图书不存在"
// @Failure      409 {object} response.Problem "ISBN已存在"
// @Router       /api/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := bindBookID(c)
	if !ok {
		return
	}

	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.Withf("Invalid book: %v", err))
		return
	}

	result, err := h.manageBook.Update(c.Request.Context(), id, req.ToUseCase())
	if err != nil {
		response.Fail(c, err, "Error updating book")
		return
	}
	response.OK(c, result)
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书管理
// @Param        id path int true "图书ID"
// @Success      204
// @Failure      404 {object} response.Problem "图书不存在"
// @Router       /api/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := bindBookID(c)
	if !ok {
		return
	}

	if err := h.manageBook.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err, "Error deleting book")
		return
	}
	response.NoContent(c)
}

// bindBookID 解析路径中的图书ID,失败时已写入400响应
func bindBookID(c *gin.Context) (uint, bool) {
	var uri dto.BookURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperrors.ErrBindError.Withf("Invalid book id %q", c.Param("id")))
		return 0, false
	}
	return uri.ID, true
}
