package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"calc-hub/domain"
)

// calculation notices: valid input whose arithmetic has no answer
var notices = []error{
	domain.ErrPaymentTooLow,
	domain.ErrDivisionByZero,
	domain.ErrNoSolution,
	domain.ErrInvalidTriangle,
	domain.ErrDataUnavailable,
}

func statusFor(err error) int {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict
	}
	for _, notice := range notices {
		if errors.Is(err, notice) {
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}

// writeError renders err with the status it maps to. Internal errors are
// logged and hidden from the client.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	status := statusFor(err)
	body := gin.H{"ok": false, "error": err.Error()}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		body["error"] = "invalid input"
		body["fields"] = verr.Fields
	}
	if status == http.StatusInternalServerError {
		logger.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
		body["error"] = "internal server error"
	}

	c.AbortWithStatusJSON(status, body)
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
