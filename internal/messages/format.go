package messages

import (
	"fmt"
	"strings"

	"github.com/Formula-SAE/signupspark/internal/utils"
	"github.com/Formula-SAE/signupspark/internal/views"
)

// Markdown renders the notice for chat providers that understand Discord
// style markdown.
func (n Notice) Markdown(baseURL string) string {
	task := n.Task

	var b strings.Builder
	fmt.Fprintf(&b, "🙋 %s\n\n", utils.H3("New signup in "+utils.Escape(n.Campaign.Name)))
	fmt.Fprintf(&b, "📌 %s: %s\n", utils.Bold("Task"), utils.InlineCode(task.Name))
	fmt.Fprintf(&b, "👤 %s: %s\n", utils.Bold("Participant"), utils.Escape(task.AssignedTo))
	fmt.Fprintf(&b, "✉️ %s: %s\n", utils.Bold("Email"), utils.Escape(task.AssignedEmail))
	if task.AssignedPhone != "" {
		fmt.Fprintf(&b, "📞 %s: %s\n", utils.Bold("Phone"), utils.Escape(task.AssignedPhone))
	}
	fmt.Fprintf(&b, "📅 %s: %s\n", utils.Bold("Due Date"), views.FormatDueDate(task.DueDate))
	if task.Quantity > 0 {
		fmt.Fprintf(&b, "🔢 %s: %d\n", utils.Bold("Quantity"), task.Quantity)
	}
	b.WriteString("\n" + utils.Link("Open campaign", views.CampaignURL(baseURL, n.Campaign)))

	return b.String()
}

// Text is the plain rendering used where markdown is not parsed.
func (n Notice) Text(baseURL string) string {
	task := n.Task

	lines := []string{
		"New signup in " + n.Campaign.Name,
		"",
		"Task: " + task.Name,
		"Participant: " + task.AssignedTo,
		"Email: " + task.AssignedEmail,
	}
	if task.AssignedPhone != "" {
		lines = append(lines, "Phone: "+task.AssignedPhone)
	}
	lines = append(lines, "Due Date: "+views.FormatDueDate(task.DueDate))
	if task.Quantity > 0 {
		lines = append(lines, fmt.Sprintf("Quantity: %d", task.Quantity))
	}
	lines = append(lines, "", views.CampaignURL(baseURL, n.Campaign))

	return strings.Join(lines, "\n")
}
