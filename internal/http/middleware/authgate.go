// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the admin authorization gate middleware. It reads the
// identity-assertion header, asks the auth.Gate for a decision, and either
// aborts with 401/403 or stores the admitted identity in the Gin context for
// handlers and the access log.
//
// The gate decodes the assertion WITHOUT signature verification; the
// deployment trusts an upstream access proxy to have verified it (see the
// auth package trust boundary note).
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chrimage/atlas-firebird-intake-speed/internal/auth"
)

const (
	// AdminEmailKey is the Gin context key under which the admitted admin
	// email is stored.
	AdminEmailKey = "adminEmail"
	// identityKey is the Gin context key for the full admitted identity.
	identityKey = "adminIdentity"
)

// AuthGate returns a middleware that enforces the configured authorization
// policy on every request it wraps.
//
// Outcomes:
//   - Unauthenticated -> 401 with code "unauthorized" (no usable claim).
//   - Forbidden       -> 403 with code "forbidden" (claim decoded, not permitted).
//   - Authorized      -> identity (when present) stored in the context,
//     request proceeds.
//
// The 401/403 distinction is part of the API contract: callers rely on it to
// tell "log in first" from "this account may not triage".
func AuthGate(gate *auth.Gate, headerName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := gate.Check(c.GetHeader(headerName), time.Now())

		switch d.Outcome {
		case auth.Authorized:
			if d.Identity != nil {
				c.Set(AdminEmailKey, d.Identity.Email)
				c.Set(identityKey, d.Identity)
			}
			c.Next()
		case auth.Forbidden:
			abortEnvelope(c, http.StatusForbidden, "forbidden", "this identity may not access the dashboard")
		default:
			abortEnvelope(c, http.StatusUnauthorized, "unauthorized", "no valid identity assertion presented")
		}
	}
}

// IdentityFrom returns the admitted identity stored by AuthGate, or nil when
// the request was admitted without one (policy mode disabled).
func IdentityFrom(c *gin.Context) *auth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(*auth.Identity); ok {
			return id
		}
	}
	return nil
}

// abortEnvelope writes the standard error envelope without importing the
// handlers package (which already depends on this one).
func abortEnvelope(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       code,
		"message":    msg,
	})
}
