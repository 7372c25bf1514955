package auth

import (
	"strings"
	"time"

	"github.com/chrimage/atlas-firebird-intake-speed/internal/config"
)

// Outcome classifies the gate's decision for a request.
type Outcome int

const (
	// Unauthenticated means no usable identity claim was present.
	// Callers map this to a 401-class response.
	Unauthenticated Outcome = iota
	// Forbidden means a well-formed identity was extracted but is not
	// permitted by policy. Callers map this to a 403-class response.
	Forbidden
	// Authorized means the request may proceed. Identity may be nil when
	// the policy mode is disabled.
	Authorized
)

// Decision is the result of checking one request against the policy.
type Decision struct {
	Outcome  Outcome
	Identity *Identity
}

// Gate renders authorization decisions for admin requests. It owns no
// durable state; Check is a pure function over the header value, the
// configured policy, and the current time.
type Gate struct {
	mode  config.AuthMode
	allow map[string]struct{}
}

// NewGate builds a Gate from the resolved auth policy. Allowlist emails are
// compared case-insensitively.
func NewGate(cfg config.AuthConfig) *Gate {
	allow := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, e := range cfg.AdminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			allow[e] = struct{}{}
		}
	}
	return &Gate{mode: cfg.Mode, allow: allow}
}

// Check extracts the identity claim from the assertion header value and
// applies the configured policy mode:
//
//   - disabled:  always Authorized (Identity set when a claim decoded).
//   - allowlist: Authorized only when the extracted email is listed;
//     Forbidden when an identity decoded but is not listed;
//     Unauthenticated when no identity decoded.
//   - delegated: any decodable identity is Authorized; absence is
//     Unauthenticated.
func (g *Gate) Check(assertion string, now time.Time) Decision {
	claims, ok := ExtractClaims(assertion, now)

	var id *Identity
	if ok {
		id = &Identity{Email: claims.Email, ExpiresAt: claims.ExpiresAt}
	}

	switch g.mode {
	case config.AuthDisabled:
		return Decision{Outcome: Authorized, Identity: id}
	case config.AuthDelegated:
		if id == nil {
			return Decision{Outcome: Unauthenticated}
		}
		return Decision{Outcome: Authorized, Identity: id}
	default: // allowlist
		if id == nil {
			return Decision{Outcome: Unauthenticated}
		}
		if _, listed := g.allow[strings.ToLower(id.Email)]; !listed {
			return Decision{Outcome: Forbidden, Identity: id}
		}
		return Decision{Outcome: Authorized, Identity: id}
	}
}
