// Package notify implements best-effort admin notifications for new
// submissions. One Dispatcher fronts interchangeable provider adapters
// (Resend, SendGrid) selected by configuration.
//
// Delivery semantics:
//   - Strictly best-effort: every failure is logged and counted, never
//     returned. The submission flow that triggered the notification must not
//     observe the outcome.
//   - Skipped entirely (not an error) when the feature flag is off or the
//     provider credentials / destination address are missing.
//   - No retries, no backoff, no delivery-status writeback. A lost
//     notification leaves no trace beyond the log line and the failure
//     counter.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/chrimage/atlas-firebird-intake-speed/internal/config"
	"github.com/chrimage/atlas-firebird-intake-speed/internal/domain"
)

var (
	// notifySent counts successfully delivered notifications by provider.
	notifySent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_notifications_sent_total",
			Help: "Total number of admin notifications delivered.",
		},
		[]string{"provider"},
	)

	// notifyFailed counts failed deliveries by provider. This counter is the
	// only durable trace of a lost notification.
	notifyFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_notifications_failed_total",
			Help: "Total number of admin notification failures.",
		},
		[]string{"provider"},
	)
)

func init() {
	prometheus.MustRegister(notifySent, notifyFailed)
}

// Message is a rendered admin notification ready for a provider.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
}

// Mailer delivers a single message through one provider. Adapters must be
// safe for concurrent use.
type Mailer interface {
	// Name identifies the provider in logs and metrics.
	Name() string
	// Send delivers the message, honoring ctx for cancellation/timeout.
	Send(ctx context.Context, msg Message) error
}

// Dispatcher renders and delivers admin notifications. A nil mailer means
// the dispatcher is disabled and Notify is a cheap no-op.
type Dispatcher struct {
	cfg    config.NotifyConfig
	mailer Mailer
}

// New builds a Dispatcher from configuration, selecting the provider adapter
// by cfg.Provider. When the feature flag is off or required settings are
// missing, the returned Dispatcher is disabled rather than erroring:
// notification is an optional capability, never a startup blocker.
func New(cfg config.NotifyConfig) *Dispatcher {
	d := &Dispatcher{cfg: cfg}
	if !cfg.Enabled || cfg.APIKey == "" || cfg.To == "" || cfg.From == "" {
		return d
	}
	switch cfg.Provider {
	case "sendgrid":
		d.mailer = newSendGridMailer(cfg.APIKey)
	default:
		d.mailer = newResendMailer(cfg.APIKey)
	}
	return d
}

// NewWithMailer builds a Dispatcher around an explicit Mailer. Used by tests
// and by deployments that wire a custom provider.
func NewWithMailer(cfg config.NotifyConfig, m Mailer) *Dispatcher {
	return &Dispatcher{cfg: cfg, mailer: m}
}

// Enabled reports whether Notify will attempt delivery.
func (d *Dispatcher) Enabled() bool { return d.mailer != nil }

// Notify delivers a summary of the submission to the configured admin
// destination. It never returns an error and never panics outward; callers
// typically run it on a detached goroutine after a successful insert.
func (d *Dispatcher) Notify(ctx context.Context, sub *domain.Submission) {
	if d.mailer == nil {
		log.Debug().Msg("notifications disabled, skipping dispatch")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	msg := Message{
		From:    d.cfg.From,
		To:      d.cfg.To,
		Subject: subject(sub),
		Text:    body(sub),
	}

	provider := d.mailer.Name()
	if err := d.mailer.Send(ctx, msg); err != nil {
		notifyFailed.WithLabelValues(provider).Inc()
		log.Error().
			Err(err).
			Str("provider", provider).
			Str("submission_id", sub.ID).
			Msg("notification delivery failed")
		return
	}

	notifySent.WithLabelValues(provider).Inc()
	log.Info().
		Str("provider", provider).
		Str("submission_id", sub.ID).
		Msg("notification delivered")
}

// titleCaser normalizes service-type labels for the subject line.
var titleCaser = cases.Title(language.English, cases.NoLower)

// subject renders the notification subject, e.g.
// "New General Inquiry submission from Jane Doe".
func subject(sub *domain.Submission) string {
	return fmt.Sprintf("New %s submission from %s", titleCaser.String(sub.ServiceType), sub.Name)
}

// body renders a plain-text summary of the submission.
func body(sub *domain.Submission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A new submission arrived.\n\n")
	fmt.Fprintf(&b, "ID:           %s\n", sub.ID)
	fmt.Fprintf(&b, "Name:         %s\n", sub.Name)
	if sub.Email != nil {
		fmt.Fprintf(&b, "Email:        %s\n", *sub.Email)
	}
	if sub.Phone != nil {
		fmt.Fprintf(&b, "Phone:        %s\n", *sub.Phone)
	}
	fmt.Fprintf(&b, "Service type: %s\n", sub.ServiceType)
	fmt.Fprintf(&b, "Received:     %s\n\n", sub.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Message:\n%s\n", sub.Message)
	return b.String()
}
