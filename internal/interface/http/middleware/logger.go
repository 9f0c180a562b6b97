package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDKey Context中请求ID的键
const RequestIDKey = "request_id"

// Logger 请求日志中间件
//
// 设计说明：
// 1. 为每个请求生成唯一的请求ID，写入Context并通过X-Request-ID响应头回传，
//    便于客户端和服务端对同一请求的日志对账
// 2. 记录方法、路径、状态码、耗时、客户端IP；不记录请求体和敏感头
// 3. Handler通过c.Error挂到错误链上的内部错误在这里统一输出
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()

		c.Next()

		latency := time.Since(start)

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}

		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
			log.Error("request failed", fields...)
			return
		}

		log.Info("request", fields...)
	}
}
