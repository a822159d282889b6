package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPRelay delivers a whole batch over a single SMTP connection.
type SMTPRelay struct {
	config SMTPConfig
}

func NewSMTPRelay(config SMTPConfig) *SMTPRelay {
	return &SMTPRelay{config: config}
}

func (r *SMTPRelay) Send(ctx context.Context, emails []Email) error {
	if err := validate(emails); err != nil {
		return err
	}

	msgs, err := r.messages(emails)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(r.config.Host, r.options()...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msgs...); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (r *SMTPRelay) options() []gomail.Option {
	opts := []gomail.Option{
		gomail.WithPort(r.config.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if r.config.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(r.config.Username),
			gomail.WithPassword(r.config.Password),
		)
	}
	return opts
}

func (r *SMTPRelay) messages(emails []Email) ([]*gomail.Msg, error) {
	msgs := make([]*gomail.Msg, 0, len(emails))
	for _, e := range emails {
		msg := gomail.NewMsg()
		if err := msg.From(r.config.From); err != nil {
			return nil, fmt.Errorf("invalid sender %q: %w", r.config.From, err)
		}
		if err := msg.To(e.To); err != nil {
			return nil, fmt.Errorf("invalid recipient %q: %w", e.To, err)
		}
		msg.Subject(e.Subject)
		msg.SetBodyString(gomail.TypeTextPlain, e.Body)
		msg.AddAlternativeString(gomail.TypeTextHTML, HTMLBody(e.Body))
		msgs = append(msgs, msg)
	}
	return msgs, nil
}
