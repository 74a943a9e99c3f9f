package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/dishdash/backend/internal/metrics"
	"github.com/pageza/dishdash/backend/internal/types"
)

// ErrorHandler recovers from panics in later handlers and answers with the
// standard 500 body. The panic value is included only when exposeDetails is set.
func ErrorHandler(log logrus.FieldLogger, exposeDetails bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				metrics.PanicRecoveries.Inc()

				var errMsg string
				switch v := rec.(type) {
				case error:
					errMsg = v.Error()
				default:
					errMsg = fmt.Sprintf("%v", v)
				}
				log.WithFields(logrus.Fields{
					"request_id": RequestID(c),
					"method":     c.Request.Method,
					"path":       c.Request.URL.Path,
					"error":      errMsg,
				}).Error("Panic recovered")

				body := types.NewErrorResponse(types.ErrCodeInternalServer, "Internal server error")
				if exposeDetails {
					body.Detail = errMsg
				}
				if c.Writer.Written() {
					c.Abort()
					return
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, body)
			}
		}()

		c.Next()
	}
}

// NotFound answers unknown routes with the standard error body
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrCodeNotFound, "Not found"))
}
