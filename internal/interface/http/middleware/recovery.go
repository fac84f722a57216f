package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookstore-catalog/pkg/errors"
	"github.com/xiebiao/bookstore-catalog/pkg/response"
)

// Recovery 捕获panic并返回500问题文档
// 响应已开始写出时只记录日志
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.String("request_id", GetRequestID(c)),
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", r),
					zap.Stack("stack"),
				)
				if c.Writer.Written() {
					c.Abort()
					return
				}
				response.Error(c, apperrors.Wrap(fmt.Errorf("panic: %v", r), "Internal server error"))
			}
		}()
		c.Next()
	}
}
