package handler

import (
	"errors"
	"net/http"
	"strconv"

	domainerr "github.com/amirhossein-jamali/calendar-duration/internal/domain/error"
	coreport "github.com/amirhossein-jamali/calendar-duration/internal/domain/port/core"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainerr.ErrPresetNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrDuplicatePreset):
		return http.StatusConflict
	case errors.Is(err, domainerr.ErrIncompatibleOperation):
		return http.StatusUnprocessableEntity
	case domainerr.IsInvalidDurationError(err),
		errors.Is(err, domainerr.ErrInvalidTimestamp),
		errors.Is(err, domainerr.ErrInvalidPresetName),
		errors.Is(err, domainerr.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error response for err. Server errors are logged
// and their detail hidden from the caller.
func respondError(c *gin.Context, logger coreport.Logger, operation string, err error) {
	status := statusFor(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		logger.Error("Error handling "+operation, map[string]any{
			"error":      err.Error(),
			"request_id": middleware.GetRequestID(c),
		})
		message = "Internal server error"
	}

	resp := dto.NewErrorResponse(err, message, middleware.GetRequestID(c))
	if status == http.StatusInternalServerError {
		resp.Details = nil
	}

	_ = c.Error(err)
	c.JSON(status, resp)
}

// badRequest rejects malformed parameters before they reach a use case
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(domainerr.ErrInvalidRequest, message, middleware.GetRequestID(c)))
}

func queryBool(c *gin.Context, key string) (bool, bool) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		badRequest(c, "Invalid "+key+": must be true or false")
		return false, false
	}
	return v, true
}

func queryInt(c *gin.Context, key string, fallback int) (int, bool) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		badRequest(c, "Invalid "+key+": must be an integer")
		return 0, false
	}
	return v, true
}
