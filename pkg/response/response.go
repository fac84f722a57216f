package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookstore-catalog/pkg/errors"
)

// ContentTypeProblem RFC 9457 问题文档的媒体类型
const ContentTypeProblem = "application/problem+json"

// Problem 统一错误响应结构（RFC 9457 problem details）
// 设计说明：
// 1. 成功响应直接返回业务数据（前端按原始结构解析，不再套一层code/message/data）
// 2. 失败响应统一为problem文档，Status与HTTP状态码一致
// 3. Code保留业务错误码，方便客户端精确判断错误类型
// 4. Extensions中的成员会被平铺到JSON顶层（如bookId）
type Problem struct {
	Type       string                 `json:"type"`
	Title      string                 `json:"title"`
	Status     int                    `json:"status"`
	Detail     string                 `json:"detail,omitempty"`
	Code       int                    `json:"code"`
	Instance   string                 `json:"instance,omitempty"`
	Extensions map[string]interface{} `json:"-"`
}

// toMap 将扩展成员平铺到顶层
func (p Problem) toMap() map[string]interface{} {
	m := make(map[string]interface{}, len(p.Extensions)+6)
	for k, v := range p.Extensions {
		m[k] = v
	}
	m["type"] = p.Type
	m["title"] = p.Title
	m["status"] = p.Status
	m["code"] = p.Code
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	if p.Instance != "" {
		m["instance"] = p.Instance
	}
	return m
}

// OK 200 + 原始数据
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 + 原始数据
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 204
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	books, err := uc.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	write(c, NewProblem(c, appErr))
}

// Fail 端点级错误转换
// 4xx类业务错误原样返回；其余错误一律视为500，详情格式为 "prefix: 底层错误信息"
func Fail(c *gin.Context, err error, prefix string) {
	appErr := apperrors.GetAppError(err)
	if apperrors.HTTPStatus(appErr.Code) < http.StatusInternalServerError {
		write(c, NewProblem(c, appErr))
		return
	}

	p := NewProblem(c, appErr)
	p.Detail = prefix + ": " + appErr.Detail()
	write(c, p)
}

// NewProblem 由AppError构造问题文档
func NewProblem(c *gin.Context, appErr *apperrors.AppError) Problem {
	status := apperrors.HTTPStatus(appErr.Code)
	p := Problem{
		Type:       "about:blank",
		Title:      http.StatusText(status),
		Status:     status,
		Detail:     appErr.Detail(),
		Code:       appErr.Code,
		Extensions: appErr.Fields,
	}
	if c != nil && c.Request != nil {
		p.Instance = c.Request.URL.Path
	}
	return p
}

func write(c *gin.Context, p Problem) {
	// 挂到gin.Context上，供日志中间件输出
	_ = c.Error(apperrors.New(p.Code, p.Detail))
	c.Header("Content-Type", ContentTypeProblem)
	c.AbortWithStatusJSON(p.Status, p.toMap())
}
