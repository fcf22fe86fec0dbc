package middleware

import (
	"net/http"

	"vidtube-go/internal/api/response"
	"vidtube-go/internal/apperr"
	"vidtube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler 将 handler 通过 c.Error 记录的最后一个错误写成响应信封
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr := apperr.From(err)
		if appErr.Status >= http.StatusInternalServerError {
			logger.Error("Request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
		}

		response.Fail(c, appErr)
	}
}
