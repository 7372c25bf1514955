// Package auth implements the admin authorization gate: extraction of an
// identity claim from a request header and the policy decision over it.
//
// TRUST BOUNDARY: claims are decoded WITHOUT cryptographic signature
// verification. The deployment model assumes an upstream access proxy
// (e.g. Cloudflare Access) has already verified the token signature before
// the request reaches this service. The types below keep that explicit:
// UnverifiedClaims is what this package can produce on its own; a deployment
// without a trusted proxy must add real signature verification and mint its
// own verified identity before trusting anything here.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UnverifiedClaims is the claim set decoded from the identity assertion.
// The name is deliberate: nothing about these values has been
// cryptographically checked by this service.
type UnverifiedClaims struct {
	// Email is the identity email carried in the claim payload.
	Email string
	// ExpiresAt is the claim expiry instant.
	ExpiresAt time.Time
}

// Identity is the per-request admin identity admitted by the Gate. It is
// derived fresh from each request and never persisted.
type Identity struct {
	Email     string
	ExpiresAt time.Time
}

// ExtractClaims decodes the identity assertion header value into an
// UnverifiedClaims. The assertion must be a three-part dot-separated token;
// the middle segment is base64url-decoded and parsed as JSON. No signature
// check is performed (see the package trust boundary note).
//
// Extraction yields (nil, false) when:
//   - the token is structurally malformed,
//   - the claim set lacks a non-blank email field,
//   - the expiry claim is absent, or at or before now.
func ExtractClaims(assertion string, now time.Time) (*UnverifiedClaims, bool) {
	assertion = strings.TrimSpace(assertion)
	if assertion == "" {
		return nil, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(assertion, claims); err != nil {
		return nil, false
	}

	email, _ := claims["email"].(string)
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, false
	}
	if !exp.Time.After(now) {
		return nil, false
	}

	return &UnverifiedClaims{Email: email, ExpiresAt: exp.Time}, true
}
