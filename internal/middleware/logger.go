package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLogger logs one structured line per request.
func RequestLogger(logger *zap.SugaredLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let echo render the error so the logged status is final
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			fields := []any{
				"method", req.Method,
				"route", c.Path(),
				"uri", req.RequestURI,
				"status", res.Status,
				"bytes", res.Size,
				"latency", time.Since(start),
				"ip", c.RealIP(),
				"user_id", userID(c),
			}
			if role := userRole(c); role != "" {
				fields = append(fields, "role", role)
			}
			if cache := res.Header().Get("X-Cache"); cache != "" {
				fields = append(fields, "cache", cache)
			}

			switch {
			case res.Status >= 500:
				logger.Errorw("request failed", append(fields, "error", err)...)
			case res.Status >= 400:
				logger.Warnw("request rejected", fields...)
			default:
				logger.Infow("request served", fields...)
			}
			return nil
		}
	}
}
