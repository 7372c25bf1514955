package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

// --- Load success + normalization + parsing ---

func TestLoad_Success_DefaultsAndOverrides(t *testing.T) {
	// Server timeouts / sizes (valid)
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("GIN_MODE", "weird") // will normalize to "release"

	// Logging / Docs
	t.Setenv("LOG_LEVEL", "warning") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("SWAGGER_ENABLED", "on")

	// App
	t.Setenv("DB_PATH", "db.sqlite")

	// Rate limiting (use invalids for parse to fall back to defaults)
	t.Setenv("RATE_RPS", "x")      // -> default 5.0
	t.Setenv("RATE_BURST", "nope") // -> default 10

	// Web protection
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")

	// Domain
	t.Setenv("AUTH_MODE", "ALLOWLIST") // lowercased
	t.Setenv("ADMIN_EMAILS", " ops@example.com , owner@example.com ")
	t.Setenv("SERVICE_TYPES", "General Inquiry, Repair")
	t.Setenv("STATUS_LABELS", "new,done")
	t.Setenv("DEFAULT_STATUS", "new")
	t.Setenv("NOTIFY_ENABLED", "true")
	t.Setenv("NOTIFY_PROVIDER", "sendgrid")
	t.Setenv("NOTIFY_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8088" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.ReadTimeout != 2*time.Second || cfg.WriteTimeout != 3*time.Second {
		t.Fatalf("timeouts not parsed: %+v", cfg)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("GinMode = %q, want release", cfg.GinMode)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if !cfg.LogPretty || !cfg.SwaggerEnabled {
		t.Fatalf("bool parsing failed: %+v", cfg)
	}
	if cfg.RateRPS != 5.0 || cfg.RateBurst != 10 {
		t.Fatalf("rate fallback failed: rps=%v burst=%d", cfg.RateRPS, cfg.RateBurst)
	}
	if want := []string{"https://a.com", "http://b"}; !reflect.DeepEqual(cfg.CORS.AllowedOrigins, want) {
		t.Fatalf("CORS origins = %v, want %v", cfg.CORS.AllowedOrigins, want)
	}
	if cfg.Auth.Mode != AuthAllowlist {
		t.Fatalf("Auth.Mode = %q", cfg.Auth.Mode)
	}
	if want := []string{"ops@example.com", "owner@example.com"}; !reflect.DeepEqual(cfg.Auth.AdminEmails, want) {
		t.Fatalf("AdminEmails = %v", cfg.Auth.AdminEmails)
	}
	if cfg.Auth.IdentityHeader != "Cf-Access-Jwt-Assertion" {
		t.Fatalf("IdentityHeader default = %q", cfg.Auth.IdentityHeader)
	}
	if want := []string{"General Inquiry", "Repair"}; !reflect.DeepEqual(cfg.Intake.ServiceTypes, want) {
		t.Fatalf("ServiceTypes = %v", cfg.Intake.ServiceTypes)
	}
	if cfg.Notify.Provider != "sendgrid" || cfg.Notify.Timeout != 5*time.Second {
		t.Fatalf("Notify = %+v", cfg.Notify)
	}
}

func TestLoad_DefaultIntakeSets(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !contains(cfg.Intake.ServiceTypes, "General Inquiry") {
		t.Fatalf("default SERVICE_TYPES missing General Inquiry: %v", cfg.Intake.ServiceTypes)
	}
	if want := []string{"new", "in_progress", "resolved", "cancelled"}; !reflect.DeepEqual(cfg.Intake.StatusLabels, want) {
		t.Fatalf("default STATUS_LABELS = %v", cfg.Intake.StatusLabels)
	}
	if cfg.Intake.DefaultStatus != "new" {
		t.Fatalf("DefaultStatus = %q", cfg.Intake.DefaultStatus)
	}
}

// --- Load validation errors ---

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantSub string
	}{
		{"bad log level", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"zero read timeout", "READ_TIMEOUT", "0s", "timeouts"},
		{"negative rps", "RATE_RPS", "-1", "RATE_RPS"},
		{"bad auth mode", "AUTH_MODE", "magic", "AUTH_MODE"},
		{"empty service types", "SERVICE_TYPES", " , ", "SERVICE_TYPES"},
		{"default status not a label", "DEFAULT_STATUS", "archived", "DEFAULT_STATUS"},
		{"bad provider", "NOTIFY_PROVIDER", "pigeon", "NOTIFY_PROVIDER"},
		{"zero notify timeout", "NOTIFY_TIMEOUT", "0s", "NOTIFY_TIMEOUT"},
		{"bad sample ratio", "OTEL_TRACES_SAMPLER_ARG", "1.5", "OTEL_TRACES_SAMPLER_ARG"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.value)
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("error %q does not mention %q", err, tc.wantSub)
			}
		})
	}
}
