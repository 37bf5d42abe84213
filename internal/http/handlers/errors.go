package handlers

import (
	"net/http"

	"nandighosh/internal/domain"
	"nandighosh/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// errorPayload is the standard error body. It always carries "message"
// and, when available, the request id.
func errorPayload(c *gin.Context, status int, code, message string, details any) gin.H {
	if code == "" {
		code = http.StatusText(status)
	}
	payload := gin.H{
		"error":   message,
		"code":    code,
		"message": message,
	}
	if details != nil {
		payload["details"] = details
	}
	if reqID := middleware.GetRequestID(c); reqID != "" {
		payload["request_id"] = reqID
	}
	return payload
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, errorPayload(c, status, code, message, details))
}

// classify maps a domain error to status, code and public message.
func classify(err error) (int, string, string) {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest, "validation_error", err.Error()
	case domain.IsNotFound(err):
		return http.StatusNotFound, "not_found", err.Error()
	case domain.IsConflict(err):
		return http.StatusConflict, "conflict", err.Error()
	case domain.IsSubmission(err):
		return http.StatusBadGateway, "submission_failed", "submission failed, please try again"
	default:
		return http.StatusInternalServerError, "internal_error", "internal error"
	}
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	respondDomainError(c, err, nil)
}

// respondDomainError is RespondDomainError with extra top-level fields,
// used to send the component view along with the error.
func respondDomainError(c *gin.Context, err error, extra gin.H) {
	status, code, message := classify(err)
	if status >= http.StatusInternalServerError {
		middleware.GetLogger(c).Error().Err(err).Str("code", code).Msg("request failed")
	}
	_ = c.Error(err)
	payload := errorPayload(c, status, code, message, nil)
	for k, v := range extra {
		payload[k] = v
	}
	c.JSON(status, payload)
}
