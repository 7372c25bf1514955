package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/chrimage/atlas-firebird-intake-speed/internal/config"
	"github.com/chrimage/atlas-firebird-intake-speed/internal/domain"
)

func notifyCfg() config.NotifyConfig {
	return config.NotifyConfig{
		Enabled:  true,
		Provider: "resend",
		APIKey:   "key",
		From:     "intake@example.com",
		To:       "admin@example.com",
		Timeout:  time.Second,
	}
}

type fakeMailer struct {
	err  error
	sent []Message
}

func (f *fakeMailer) Name() string { return "fake" }

func (f *fakeMailer) Send(ctx context.Context, msg Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func sample() *domain.Submission {
	email := "jane@example.com"
	return &domain.Submission{
		ID:          "sub-1",
		Name:        "Jane Doe",
		Email:       &email,
		ServiceType: "general inquiry",
		Message:     "Hello there",
		CreatedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNew_DisabledWhenUnconfigured(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.NotifyConfig)
	}{
		{"flag off", func(c *config.NotifyConfig) { c.Enabled = false }},
		{"no api key", func(c *config.NotifyConfig) { c.APIKey = "" }},
		{"no destination", func(c *config.NotifyConfig) { c.To = "" }},
		{"no sender", func(c *config.NotifyConfig) { c.From = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := notifyCfg()
			tc.mutate(&cfg)
			d := New(cfg)
			if d.Enabled() {
				t.Fatalf("dispatcher should be disabled")
			}
			// Must be a silent no-op, not a panic or an error.
			d.Notify(context.Background(), sample())
		})
	}
}

func TestNew_SelectsProviderAdapter(t *testing.T) {
	cfg := notifyCfg()
	if d := New(cfg); !d.Enabled() || d.mailer.Name() != "resend" {
		t.Fatalf("expected resend adapter, got %+v", d.mailer)
	}
	cfg.Provider = "sendgrid"
	if d := New(cfg); !d.Enabled() || d.mailer.Name() != "sendgrid" {
		t.Fatalf("expected sendgrid adapter, got %+v", d.mailer)
	}
}

func TestNotify_RendersSummary(t *testing.T) {
	fm := &fakeMailer{}
	d := NewWithMailer(notifyCfg(), fm)

	d.Notify(context.Background(), sample())

	if len(fm.sent) != 1 {
		t.Fatalf("expected one delivery, got %d", len(fm.sent))
	}
	msg := fm.sent[0]
	if msg.From != "intake@example.com" || msg.To != "admin@example.com" {
		t.Fatalf("unexpected envelope: %+v", msg)
	}
	if msg.Subject != "New General Inquiry submission from Jane Doe" {
		t.Fatalf("Subject = %q", msg.Subject)
	}
	for _, want := range []string{"sub-1", "jane@example.com", "Hello there"} {
		if !strings.Contains(msg.Text, want) {
			t.Fatalf("body missing %q:\n%s", want, msg.Text)
		}
	}
}

func TestNotify_AbsorbsProviderFailure(t *testing.T) {
	d := NewWithMailer(notifyCfg(), &fakeMailer{err: errors.New("provider down")})
	// Must neither panic nor surface the failure.
	d.Notify(context.Background(), sample())
}
