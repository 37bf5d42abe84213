package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const loggerKey = "logger"

// Logger attaches a request-scoped logger carrying the request id and
// writes one line per request once the handler chain finishes.
func Logger(base *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLogger := base.With().Str("request_id", GetRequestID(c)).Logger()
		c.Set(loggerKey, &reqLogger)

		c.Next()

		status := c.Writer.Status()
		ev := reqLogger.Info()
		if status >= http.StatusInternalServerError {
			ev = reqLogger.Error()
		} else if status >= http.StatusBadRequest {
			ev = reqLogger.Warn()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.
			Str("label", "http").
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Float64("latency_ms", float64(time.Since(start).Microseconds())/1000.0).
			Str("ip", c.ClientIP()).
			Msg("")
	}
}

// GetLogger returns the request logger, or a disabled one outside the
// Logger middleware.
func GetLogger(c *gin.Context) *zerolog.Logger {
	if c != nil {
		if v, ok := c.Get(loggerKey); ok {
			if l, ok := v.(*zerolog.Logger); ok {
				return l
			}
		}
	}
	nop := zerolog.Nop()
	return &nop
}

// Recovery turns a panic into a 500 with the standard error payload and
// logs it with the request logger.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		GetLogger(c).Error().Interface("panic", err).Str("path", c.Request.URL.Path).Msg("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":      "internal error",
			"code":       "internal_error",
			"message":    "internal error",
			"request_id": GetRequestID(c),
		})
	})
}
