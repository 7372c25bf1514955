// Package forms implements validation and sanitization of raw contact-form
// fields. Validation is pure: it takes the raw field map and an Options value,
// and returns either a fully sanitized payload or the complete ordered list of
// human-readable violations. It never fails fast; the caller re-renders the
// entire error list to the end user.
package forms

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Per-field length ceilings. Sanitized values are truncated to these bounds
// in addition to over-length input being reported as a violation.
const (
	MaxNameLen        = 100
	MaxEmailLen       = 254
	MaxPhoneLen       = 32
	MaxServiceTypeLen = 100
	MaxMessageLen     = 10000
)

// emailRE accepts a minimal local@domain.tld shape. Deliverability is not
// checked; the field is optional contact metadata, not an account identifier.
var emailRE = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Options configures validation against the deployment's whitelists.
type Options struct {
	// ServiceTypes is the configured whitelist for the service_type field.
	ServiceTypes []string
}

// Payload is a validated, sanitized submission ready for persistence.
// Email and Phone are nil when the customer left the field blank.
type Payload struct {
	Name        string
	Email       *string
	Phone       *string
	ServiceType string
	Message     string
}

// Validate checks and sanitizes the raw field map (field name -> raw value,
// possibly absent). On success it returns the sanitized payload and a nil
// error list. On failure it returns every violation, in field order
// (name, email, phone, service_type, message), so the caller can surface
// the full list at once.
func Validate(raw map[string]string, opts Options) (Payload, []string) {
	var errs []string

	name := sanitize(raw["name"], MaxNameLen, false)
	email := sanitize(raw["email"], MaxEmailLen, false)
	phone := sanitize(raw["phone"], MaxPhoneLen, false)
	serviceType := sanitize(raw["service_type"], MaxServiceTypeLen, false)
	message := sanitize(raw["message"], MaxMessageLen, true)

	if name == "" {
		errs = append(errs, "name is required")
	} else if overLength(raw["name"], MaxNameLen) {
		errs = append(errs, fmt.Sprintf("name must be at most %d characters", MaxNameLen))
	}

	if email != "" {
		if overLength(raw["email"], MaxEmailLen) {
			errs = append(errs, fmt.Sprintf("email must be at most %d characters", MaxEmailLen))
		} else if !IsValidEmail(email) {
			errs = append(errs, "email must be a valid address")
		}
	}

	if phone != "" && overLength(raw["phone"], MaxPhoneLen) {
		errs = append(errs, fmt.Sprintf("phone must be at most %d characters", MaxPhoneLen))
	}

	switch {
	case serviceType == "":
		errs = append(errs, "service type is required")
	case !member(opts.ServiceTypes, serviceType):
		errs = append(errs, fmt.Sprintf("service type %q is not offered", serviceType))
	}

	if message == "" {
		errs = append(errs, "message is required")
	} else if overLength(raw["message"], MaxMessageLen) {
		errs = append(errs, fmt.Sprintf("message must be at most %d characters", MaxMessageLen))
	}

	if len(errs) > 0 {
		return Payload{}, errs
	}

	p := Payload{
		Name:        name,
		ServiceType: serviceType,
		Message:     message,
	}
	if email != "" {
		p.Email = &email
	}
	if phone != "" {
		p.Phone = &phone
	}
	return p, nil
}

// IsValidEmail reports whether s has a minimal local@domain.tld shape.
// The empty string is not a valid address.
func IsValidEmail(s string) bool {
	return emailRE.MatchString(s)
}

// sanitize trims surrounding whitespace, strips control characters, and
// truncates to max runes. When keepBreaks is true, newlines and tabs survive
// (multi-line message bodies); otherwise every control character is dropped.
func sanitize(s string, max int, keepBreaks bool) string {
	s = strings.Map(func(r rune) rune {
		if keepBreaks && (r == '\n' || r == '\t') {
			return r
		}
		if r == '\r' {
			return -1
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > max {
		s = strings.TrimSpace(string(runes[:max]))
	}
	return s
}

// overLength reports whether the trimmed raw value exceeds max runes.
// It looks at the pre-truncation value so the violation is reported even
// though the sanitized payload was already clamped.
func overLength(raw string, max int) bool {
	return len([]rune(strings.TrimSpace(raw))) > max
}

func member(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
