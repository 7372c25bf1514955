package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendgridMailer delivers notifications through the SendGrid v3 mail API.
type sendgridMailer struct {
	client *sendgrid.Client
}

func newSendGridMailer(apiKey string) *sendgridMailer {
	return &sendgridMailer{client: sendgrid.NewSendClient(apiKey)}
}

func (m *sendgridMailer) Name() string { return "sendgrid" }

func (m *sendgridMailer) Send(ctx context.Context, msg Message) error {
	email := sgmail.NewSingleEmailPlainText(
		sgmail.NewEmail("", msg.From),
		msg.Subject,
		sgmail.NewEmail("", msg.To),
		msg.Text,
	)
	resp, err := m.client.SendWithContext(ctx, email)
	if err != nil {
		return err
	}
	// The client does not treat HTTP-level rejections as errors.
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: unexpected status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
