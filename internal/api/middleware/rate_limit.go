package middleware

import (
	"net/http"
	"time"

	"vidtube-go/internal/api/response"
	"vidtube-go/internal/apperr"
	"vidtube-go/internal/config"
	"vidtube-go/pkg/logger"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// AuthRateLimit 注册、登录、刷新令牌接口按客户端 IP 限流
func AuthRateLimit(client *redis.Client, cfg *config.RateLimitConfig) gin.HandlerFunc {
	store := ratelimit.RedisStore(&ratelimit.RedisOptions{
		RedisClient: client,
		Rate:        cfg.WindowDuration(),
		Limit:       uint(cfg.Requests),
	})
	return rateLimiter(store)
}

func rateLimiter(store ratelimit.Store) gin.HandlerFunc {
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
			logger.Warn("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
				zap.Time("reset_time", info.ResetTime),
			)
			response.Fail(c, apperr.New(http.StatusTooManyRequests,
				"Too many requests. Try again in "+time.Until(info.ResetTime).Round(time.Second).String()))
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})
}
