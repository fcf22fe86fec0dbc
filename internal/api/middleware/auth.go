package middleware

import (
	"context"
	"strings"

	"vidtube-go/internal/model"
	"vidtube-go/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"

	ContextKeyUser   = "currentUser"
	ContextKeyClaims = "currentClaims"
)

// Authenticator 校验 access token 并返回当前用户
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, *utils.Claims, error)
}

// AuthRequired 认证中间件：令牌来自 accessToken Cookie 或 Authorization: Bearer
func AuthRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, claims, err := auth.Authenticate(c.Request.Context(), extractToken(c))
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(ContextKeyUser, user)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// CurrentUser 从 Gin Context 中获取当前登录用户
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(ContextKeyUser); ok {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}

// CurrentClaims 当前 access token 的 Claims
func CurrentClaims(c *gin.Context) *utils.Claims {
	if v, ok := c.Get(ContextKeyClaims); ok {
		if claims, ok := v.(*utils.Claims); ok {
			return claims
		}
	}
	return nil
}

// extractToken Cookie 优先，其次 Bearer Token
func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
