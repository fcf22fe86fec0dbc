package router

import (
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
)

// Instrument 挂载请求指标中间件并暴露 /metrics，必须在注册业务路由之前调用
func Instrument(r *gin.Engine) *ginprometheus.Prometheus {
	p := ginprometheus.NewPrometheus("gin")
	r.Use(p.HandlerFunc())
	p.SetMetricsPath(r)
	return p
}
