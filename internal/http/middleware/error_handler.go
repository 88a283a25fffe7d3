package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/F0laf0lu/payment-gateway/internal/shared/apperr"
)

// Fail records an error on the context for ErrorHandler to render.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler renders unhandled errors as JSON. Handlers that need exact
// response envelopes write them directly; this is the backstop that keeps
// internal errors from leaking as raw 500 bodies.
func ErrorHandler(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperr.HTTPStatus(err)
		rid := GetRequestID(c)

		l.LogAttrs(c.Request.Context(), slog.LevelError, "request_failed",
			slog.String("request_id", rid),
			slog.Int("status", status),
			slog.Any("err", err),
		)

		payload := gin.H{
			"status":     "error",
			"message":    apperr.PublicMessage(err),
			"request_id": rid,
		}
		if ae, ok := apperr.As(err); ok && len(ae.Fields) > 0 {
			payload["fields"] = ae.Fields
		}
		c.AbortWithStatusJSON(status, payload)
	}
}
