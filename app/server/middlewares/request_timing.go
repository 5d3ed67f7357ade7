package middlewares

import (
	"campus-portal/app/server/constants"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestTiming 记录每个请求的方法、路径、状态码与耗时（毫秒），
// 超过阈值的请求以 Warn 级别输出。不改变响应内容。
func RequestTiming(l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			start := time.Now()

			if err = next(c); err != nil {
				// 先让 echo 写入错误响应，保证记录到的状态码正确
				c.Error(err)
			}

			elapsed := time.Since(start)
			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Int64("elapsed_ms", elapsed.Milliseconds()),
			}

			if elapsed > constants.SlowRequestThreshold {
				l.Warn("slow request", fields...)
			} else {
				l.Info("request", fields...)
			}

			return err
		}
	}
}
