package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mshabab123/hlqh-sub001/pkg/response"
)

// TokenRevoker 吊销 Access Token，由 Redis 黑名单实现
type TokenRevoker interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthHandler 认证相关 HTTP 处理器
// 账号与登录由外部系统负责，这里只提供注销
type AuthHandler struct {
	revoker TokenRevoker
	nowFn   func() time.Time
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(revoker TokenRevoker) *AuthHandler {
	return &AuthHandler{revoker: revoker, nowFn: time.Now}
}

// Logout 吊销当前 Token，黑名单保留到 Token 过期
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("token_jti")
	if jti == "" {
		response.Unauthorized(c, 10002, "未认证")
		return
	}

	exp := c.GetTime("token_exp")
	ttl := exp.Sub(h.nowFn())
	if exp.IsZero() || ttl <= 0 {
		response.OK(c, nil)
		return
	}

	if err := h.revoker.BlacklistToken(c.Request.Context(), jti, ttl); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
