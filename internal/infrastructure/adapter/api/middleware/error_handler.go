package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	domainerr "github.com/amirhossein-jamali/calendar-duration/internal/domain/error"
	coreport "github.com/amirhossein-jamali/calendar-duration/internal/domain/port/core"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// ErrorHandler turns a panicking handler into a 500 response. A deliberate
// http.ErrAbortHandler is passed on to net/http untouched.
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			requestID := GetRequestID(c)
			logger.Error("Panic recovered in API request", map[string]any{
				"error":      fmt.Sprint(rec),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"request_id": requestID,
				"stack":      string(debug.Stack()),
			})

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(domainerr.ErrInternalServer, "Internal server error", requestID))
		}()

		c.Next()
	}
}
