// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all endpoints:
// a structured error envelope, consistent JSON serialization, and helpers for
// common HTTP patterns. All error responses return an ErrorResponse with a
// stable `code`; validation failures additionally carry the complete ordered
// list of violations in `details` so the form can re-render every problem at
// once. 5xx responses are logged with request context.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chrimage/atlas-firebird-intake-speed/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"validation_failed"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"submission is invalid"`
	// Details lists every individual violation for validation failures.
	Details []string `json:"details,omitempty" example:"name is required"`
}

// fail aborts the request with a structured error and logs server-side errors.
func fail(c *gin.Context, status int, code, msg string) {
	failDetails(c, status, code, msg, nil)
}

// failDetails is fail with an attached violation list.
func failDetails(c *gin.Context, status int, code, msg string, details []string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
		Details:   details,
	}

	// Log 5xx (server-side) with request-scoped logger
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail().
//
// External packages (e.g., router setup) should call Fail to return
// consistent error envelopes without directly depending on unexported helpers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
