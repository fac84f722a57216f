package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-catalog/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookstore-catalog/pkg/errors"
	"github.com/xiebiao/bookstore-catalog/pkg/response"
)

const readyTimeout = 2 * time.Second

// HealthHandler 健康检查
type HealthHandler struct {
	db    *gorm.DB
	redis *goredis.Client // 未启用Redis时为nil
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(db *gorm.DB, redis *goredis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// Test API可用性探测
// @Summary      API探测
// @Tags         健康检查
// @Produce      json
// @Success      200 {object} dto.MessageResponse
// @Router       /api/test [get]
func (h *HealthHandler) Test(c *gin.Context) {
	response.OK(c, dto.MessageResponse{Message: "API is working!"})
}

// Live 存活检查,进程在运行即返回200
// @Summary      存活检查
// @Tags         健康检查
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /healthz [get]
func (h *HealthHandler) Live(c *gin.Context) {
	response.OK(c, gin.H{"status": "ok"})
}

// Ready 就绪检查,依赖不可用时返回503
// @Summary      就绪检查
// @Tags         健康检查
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} response.Problem
// @Router       /readyz [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		response.Error(c, apperrors.ErrUnavailable.WithErr(err).Withf("Database unavailable").With("component", "database"))
		return
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			response.Error(c, apperrors.ErrUnavailable.WithErr(err).Withf("Redis unavailable").With("component", "redis"))
			return
		}
	}

	response.OK(c, gin.H{"status": "ready"})
}
