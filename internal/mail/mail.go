package mail

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

var ErrNoRecipients = errors.New("no emails to send")

type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Relay hands a batch of messages to an outbound provider.
type Relay interface {
	Send(ctx context.Context, emails []Email) error
}

// HTMLBody is the HTML alternative of a plain text body.
func HTMLBody(body string) string {
	return strings.ReplaceAll(body, "\n", "<br>")
}

func validate(emails []Email) error {
	if len(emails) == 0 {
		return ErrNoRecipients
	}
	for i, e := range emails {
		if strings.TrimSpace(e.To) == "" {
			return fmt.Errorf("email %d has no recipient", i+1)
		}
	}
	return nil
}

// LogRelay only logs what would have been sent. It is used when no email
// provider is configured.
type LogRelay struct{}

func (LogRelay) Send(_ context.Context, emails []Email) error {
	if err := validate(emails); err != nil {
		return err
	}
	for _, e := range emails {
		log.Printf("[mail] (not sent) to=%s subject=%q", e.To, e.Subject)
	}
	return nil
}
