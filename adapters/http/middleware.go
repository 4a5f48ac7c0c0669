package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SubhajitChakrabort/ProfilePage/pkg/apperror"
	"github.com/SubhajitChakrabort/ProfilePage/pkg/logger"
)

// ErrorMiddleware drains errors attached via c.Error and renders the last one.
// AppErrors map to their status; anything else becomes a bare 500.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			status := apperror.ToHTTPStatus(appErr)
			if status == http.StatusInternalServerError {
				log.Error("request failed", appErr,
					zap.String("path", c.Request.URL.Path),
					zap.String("details", appErr.Details))
			}
			c.JSON(status, appErr.ToJSON())
			return
		}

		log.Error("unhandled error", err, zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
