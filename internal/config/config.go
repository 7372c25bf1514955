// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, the SQLite path, the admin authorization
// policy, the intake form whitelists, notification delivery, and observability.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "firebird-intake")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// AuthMode selects how admin requests are authorized.
type AuthMode string

// Supported authorization modes.
const (
	// AuthDisabled admits every request regardless of identity.
	AuthDisabled AuthMode = "disabled"
	// AuthAllowlist admits only identities whose email is in AdminEmails.
	AuthAllowlist AuthMode = "allowlist"
	// AuthDelegated admits any request that carries a decodable identity,
	// trusting the upstream access proxy to have vetted membership.
	AuthDelegated AuthMode = "delegated"
)

// AuthConfig defines the admin authorization policy.
//
// The identity assertion is read from IdentityHeader and decoded WITHOUT
// signature verification: deployments must sit behind an access proxy
// (e.g. Cloudflare Access) that has already verified the token.
type AuthConfig struct {
	Mode           AuthMode // AUTH_MODE
	AdminEmails    []string // ADMIN_EMAILS (CSV, compared case-insensitively)
	IdentityHeader string   // AUTH_HEADER, default "Cf-Access-Jwt-Assertion"
}

// IntakeConfig defines the submission form whitelists and the status
// label set used by the triage workflow.
type IntakeConfig struct {
	ServiceTypes  []string // SERVICE_TYPES (CSV)
	StatusLabels  []string // STATUS_LABELS (CSV)
	DefaultStatus string   // DEFAULT_STATUS, must be a member of StatusLabels
}

// NotifyConfig defines admin notification delivery settings. Notifications
// are best-effort; when Enabled is false or credentials are missing the
// dispatcher is skipped entirely.
type NotifyConfig struct {
	Enabled  bool          // NOTIFY_ENABLED
	Provider string        // NOTIFY_PROVIDER: resend|sendgrid
	APIKey   string        // NOTIFY_API_KEY
	From     string        // NOTIFY_FROM sender address
	To       string        // NOTIFY_TO admin destination address
	Timeout  time.Duration // NOTIFY_TIMEOUT per delivery attempt
}

// Config holds all configuration values for the application. It is built once
// at startup and never mutated afterwards; components receive the sub-structs
// they need by explicit parameter.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route

	// App
	DBPath string // SQLite path

	// Rate limiting (public submit endpoint)
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Domain
	Auth   AuthConfig
	Intake IntakeConfig
	Notify NotifyConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),

		// App
		DBPath: getenv("DB_PATH", "intake.db"),

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Domain
		Auth: AuthConfig{
			Mode:           AuthMode(strings.ToLower(getenv("AUTH_MODE", "allowlist"))),
			AdminEmails:    splitCSV(getenv("ADMIN_EMAILS", "")),
			IdentityHeader: getenv("AUTH_HEADER", "Cf-Access-Jwt-Assertion"),
		},
		Intake: IntakeConfig{
			ServiceTypes:  splitCSV(getenv("SERVICE_TYPES", "General Inquiry,Installation,Repair,Maintenance")),
			StatusLabels:  splitCSV(getenv("STATUS_LABELS", "new,in_progress,resolved,cancelled")),
			DefaultStatus: getenv("DEFAULT_STATUS", "new"),
		},
		Notify: NotifyConfig{
			Enabled:  getbool("NOTIFY_ENABLED", false),
			Provider: strings.ToLower(getenv("NOTIFY_PROVIDER", "resend")),
			APIKey:   getenv("NOTIFY_API_KEY", ""),
			From:     getenv("NOTIFY_FROM", ""),
			To:       getenv("NOTIFY_TO", ""),
			Timeout:  getdur("NOTIFY_TIMEOUT", 10*time.Second),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "firebird-intake"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}

	switch cfg.Auth.Mode {
	case AuthDisabled, AuthAllowlist, AuthDelegated:
	default:
		return cfg, errors.New("AUTH_MODE must be one of: disabled, allowlist, delegated")
	}
	if strings.TrimSpace(cfg.Auth.IdentityHeader) == "" {
		return cfg, errors.New("AUTH_HEADER must not be empty")
	}

	if len(cfg.Intake.ServiceTypes) == 0 {
		return cfg, errors.New("SERVICE_TYPES must list at least one service type")
	}
	if len(cfg.Intake.StatusLabels) == 0 {
		return cfg, errors.New("STATUS_LABELS must list at least one status label")
	}
	if !contains(cfg.Intake.StatusLabels, cfg.Intake.DefaultStatus) {
		return cfg, fmt.Errorf("DEFAULT_STATUS %q must be a member of STATUS_LABELS", cfg.Intake.DefaultStatus)
	}

	switch cfg.Notify.Provider {
	case "resend", "sendgrid":
	default:
		return cfg, errors.New("NOTIFY_PROVIDER must be one of: resend, sendgrid")
	}
	if cfg.Notify.Timeout <= 0 {
		return cfg, errors.New("NOTIFY_TIMEOUT must be > 0")
	}

	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
