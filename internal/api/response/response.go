package response

import (
	"net/http"

	"vidtube-go/internal/apperr"

	"github.com/gin-gonic/gin"
)

// Response 统一响应信封
type Response struct {
	StatusCode int                 `json:"statusCode"`
	Data       interface{}         `json:"data"`
	Message    string              `json:"message"`
	Success    bool                `json:"success"`
	Errors     []apperr.FieldError `json:"errors,omitempty"`
}

// JSON 按状态码输出信封，success 由状态码推导
func JSON(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < http.StatusBadRequest,
	})
}

func OK(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusOK, message, data)
}

func Created(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusCreated, message, data)
}

// Fail 输出错误信封，data 固定为 null
func Fail(c *gin.Context, err *apperr.Error) {
	c.JSON(err.Status, Response{
		StatusCode: err.Status,
		Data:       nil,
		Message:    err.Message,
		Success:    false,
		Errors:     err.Errors,
	})
}
