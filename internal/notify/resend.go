package notify

import (
	"context"

	"github.com/resend/resend-go/v2"
)

// resendMailer delivers notifications through the Resend transactional
// email API.
type resendMailer struct {
	client *resend.Client
}

func newResendMailer(apiKey string) *resendMailer {
	return &resendMailer{client: resend.NewClient(apiKey)}
}

func (m *resendMailer) Name() string { return "resend" }

func (m *resendMailer) Send(ctx context.Context, msg Message) error {
	_, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Text,
	})
	return err
}
