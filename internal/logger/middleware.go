package logger

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// EchoMiddleware логирует каждый запрос и кладёт в контекст запроса
// логгер с request_id. Ожидает, что middleware.RequestID() подключён раньше.
func EchoMiddleware(base *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			reqID := c.Response().Header().Get(echo.HeaderXRequestID)
			if reqID == "" {
				reqID = req.Header.Get(echo.HeaderXRequestID)
			}

			l := base
			if reqID != "" {
				l = base.With(zap.String("request_id", reqID))
			}
			c.SetRequest(req.WithContext(WithContext(req.Context(), l)))

			err := next(c)
			if err != nil {
				// echo выставит статус только в HTTPErrorHandler, поэтому вызываем его здесь
				c.Error(err)
			}

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
			}

			switch status := c.Response().Status; {
			case status >= 500:
				l.Error("request failed", fields...)
			case status >= 400:
				l.Warn("request rejected", fields...)
			default:
				l.Info("request handled", fields...)
			}

			return nil
		}
	}
}
