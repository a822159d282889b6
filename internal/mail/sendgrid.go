package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridRelay posts each message to the SendGrid v3 mail send API.
type SendGridRelay struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

func NewSendGridRelay(apiKey, from string) *SendGridRelay {
	return &SendGridRelay{
		client: sendgrid.NewSendClient(apiKey),
		from:   sgmail.NewEmail("SignupSpark", from),
	}
}

func (r *SendGridRelay) Send(ctx context.Context, emails []Email) error {
	if err := validate(emails); err != nil {
		return err
	}

	for _, e := range emails {
		message := sgmail.NewSingleEmail(r.from, e.Subject, sgmail.NewEmail("", e.To), e.Body, HTMLBody(e.Body))

		resp, err := r.client.SendWithContext(ctx, message)
		if err != nil {
			return fmt.Errorf("sendgrid send to %s: %w", e.To, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("sendgrid send to %s: status %d: %s", e.To, resp.StatusCode, resp.Body)
		}
	}

	return nil
}
