package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/Formula-SAE/signupspark/internal/store"
)

const NOT_SPECIFIED = "Not specified"

type EmailTemplate struct {
	Subject string
	Body    string
}

func CampaignURL(baseURL string, campaign store.Campaign) string {
	return strings.TrimRight(baseURL, "/") + "/campaign/" + campaign.Code
}

// FormatDueDate renders a YYYY-MM-DD due date as MM/DD/YYYY. Values that do
// not parse are shown as entered.
func FormatDueDate(dueDate string) string {
	if dueDate == "" {
		return NOT_SPECIFIED
	}
	t, err := time.Parse(time.DateOnly, dueDate)
	if err != nil {
		return dueDate
	}
	return t.Format("01/02/2006")
}

// TaskSignupEmail is sent to the organizer when a participant claims a task.
func TaskSignupEmail(campaign store.Campaign, task store.Task, participantName, baseURL string) EmailTemplate {
	var b strings.Builder
	b.WriteString("Hello,\n\n")
	fmt.Fprintf(&b, "%s has signed up for the task \"%s\" in your campaign \"%s\".\n\n", participantName, task.Name, campaign.Name)
	b.WriteString("Task Details:\n")
	fmt.Fprintf(&b, "- Name: %s\n", task.Name)
	fmt.Fprintf(&b, "- Due Date: %s\n", FormatDueDate(task.DueDate))
	if task.Quantity > 0 {
		fmt.Fprintf(&b, "- Quantity: %d\n", task.Quantity)
	}
	b.WriteString("\nParticipant Details:\n")
	fmt.Fprintf(&b, "- Name: %s\n", participantName)
	fmt.Fprintf(&b, "- Email: %s\n", task.AssignedEmail)
	if task.AssignedPhone != "" {
		fmt.Fprintf(&b, "- Phone: %s\n", task.AssignedPhone)
	}
	fmt.Fprintf(&b, "\nYou can view the campaign progress at: %s\n\n", CampaignURL(baseURL, campaign))
	b.WriteString("Best regards,\nSignupSpark Team\n")

	return EmailTemplate{
		Subject: "New Task Signup: " + campaign.Name,
		Body:    b.String(),
	}
}

// ParticipantConfirmationEmail confirms the claimed task to the participant.
func ParticipantConfirmationEmail(campaign store.Campaign, task store.Task, baseURL string) EmailTemplate {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", task.AssignedTo)
	fmt.Fprintf(&b, "Thank you for signing up for a task in the campaign \"%s\".\n\n", campaign.Name)
	b.WriteString("Your Task Details:\n")
	fmt.Fprintf(&b, "- Task: %s\n", task.Name)
	fmt.Fprintf(&b, "- Due Date: %s\n", FormatDueDate(task.DueDate))
	if task.Quantity > 0 {
		fmt.Fprintf(&b, "- Quantity: %d\n", task.Quantity)
	}
	fmt.Fprintf(&b, "\nYou can view or update your task at: %s\n\n", CampaignURL(baseURL, campaign))
	b.WriteString("If you need to make any changes or have questions, please contact the campaign organizer.\n\n")
	b.WriteString("Best regards,\nSignupSpark Team\n")

	return EmailTemplate{
		Subject: "Task Confirmation: " + campaign.Name,
		Body:    b.String(),
	}
}
