// File: internal/middleware/error_middleware.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shortstay_backend/internal/common"
)

// ErrorHandler recovers from panics and converts unhandled errors attached to
// the context into the standard error envelope.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stacktrace"),
				)
				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
						"error": gin.H{
							"code":    common.ErrInternalServer.Code,
							"message": "An unexpected internal error occurred",
						},
					})
				}
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err
			logger.Error("Unhandled request error", zap.Error(err), zap.String("path", c.Request.URL.Path))
			common.RespondWithError(c, err)
		}
	}
}
