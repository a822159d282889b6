package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Formula-SAE/signupspark/internal/store"
)

var (
	ReportHeader  = []string{"Task Name", "Status", "Assigned To", "Contact Email", "Contact Phone", "Due Date", "Quantity", "Comments"}
	ContactHeader = []string{"Name", "Email", "Phone", "Campaigns"}
)

const joinSeparator = "; "

// ExportCampaignReport writes one row per task. Comment texts are joined
// into a single field.
func ExportCampaignReport(w io.Writer, tasks []store.Task) error {
	rows := make([][]string, 0, len(tasks)+1)
	rows = append(rows, ReportHeader)

	for _, task := range tasks {
		quantity := ""
		if task.Quantity > 0 {
			quantity = strconv.Itoa(task.Quantity)
		}

		comments := make([]string, len(task.Comments))
		for i, comment := range task.Comments {
			comments[i] = comment.Text
		}

		rows = append(rows, []string{
			task.Name,
			task.Status,
			task.AssignedTo,
			task.AssignedEmail,
			task.AssignedPhone,
			task.DueDate,
			quantity,
			strings.Join(comments, joinSeparator),
		})
	}

	return writeAll(w, rows)
}

// ExportContacts writes the roster with campaign ids resolved to names.
// Ids that no longer resolve are left out.
func ExportContacts(w io.Writer, contacts []store.Contact, campaigns []store.Campaign) error {
	names := make(map[string]string, len(campaigns))
	for _, campaign := range campaigns {
		names[campaign.ID] = campaign.Name
	}

	rows := make([][]string, 0, len(contacts)+1)
	rows = append(rows, ContactHeader)

	for _, contact := range contacts {
		resolved := []string{}
		for _, id := range contact.Campaigns {
			if name, ok := names[id]; ok {
				resolved = append(resolved, name)
			}
		}

		rows = append(rows, []string{
			contact.Name,
			contact.Email,
			contact.Phone,
			strings.Join(resolved, joinSeparator),
		})
	}

	return writeAll(w, rows)
}

func writeAll(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
