package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery 请求失败边界
//
// 设计说明：
// 1. Handler内部任何未预期的panic都在这里被捕获，转换成统一的JSON失败信封，
//    保证单个请求的故障不会拖垮服务进程
// 2. 堆栈只进日志，响应里只带消息字符串，不泄露内部细节
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"status":  false,
					"message": fmt.Sprintf("%v", rec),
				})
			}
		}()

		c.Next()
	}
}
