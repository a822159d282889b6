package messages

import (
	"context"

	"github.com/Formula-SAE/signupspark/internal/mail"
	"github.com/Formula-SAE/signupspark/internal/views"
)

// EmailProvider sends the organizer notice and the participant confirmation
// as one relay batch.
type EmailProvider struct {
	relay   mail.Relay
	baseURL string
}

func NewEmailProvider(relay mail.Relay, baseURL string) *EmailProvider {
	return &EmailProvider{relay: relay, baseURL: baseURL}
}

func (p *EmailProvider) Name() string {
	return "email"
}

func (p *EmailProvider) Notify(ctx context.Context, notice Notice) error {
	emails := p.emails(notice)
	if len(emails) == 0 {
		return nil
	}
	return p.relay.Send(ctx, emails)
}

func (p *EmailProvider) emails(notice Notice) []mail.Email {
	task := notice.Task
	if task.AssignedTo == "" || task.AssignedEmail == "" {
		return nil
	}

	emails := []mail.Email{}
	if wantsSignupEmails(notice) {
		t := views.TaskSignupEmail(notice.Campaign, task, task.AssignedTo, p.baseURL)
		emails = append(emails, mail.Email{To: notice.Organizer.Email, Subject: t.Subject, Body: t.Body})
	}

	t := views.ParticipantConfirmationEmail(notice.Campaign, task, p.baseURL)
	emails = append(emails, mail.Email{To: task.AssignedEmail, Subject: t.Subject, Body: t.Body})

	return emails
}

// Organizers without saved preferences get signup emails.
func wantsSignupEmails(notice Notice) bool {
	organizer := notice.Organizer
	if organizer == nil || organizer.Email == "" {
		return false
	}
	return organizer.EmailPreferences == nil || organizer.EmailPreferences.TaskSignups
}
