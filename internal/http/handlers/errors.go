package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careline-backend/internal/domain"
	"careline-backend/internal/http/middleware"
)

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Internal
// detail stays in the logs; the client gets a short message.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case domain.IsUpstream(err):
		var up domain.UpstreamError
		errors.As(err, &up)
		respondError(c, http.StatusBadGateway, "upstream_error", up.Msg)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
