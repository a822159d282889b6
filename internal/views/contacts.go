package views

import (
	"strings"

	"github.com/Formula-SAE/signupspark/internal/store"
)

// SearchContacts keeps contacts whose name or email contains term, ignoring
// case. An empty term returns every contact.
func SearchContacts(contacts []store.Contact, term string) []store.Contact {
	term = strings.ToLower(strings.TrimSpace(term))
	result := []store.Contact{}
	for _, contact := range contacts {
		if term == "" ||
			strings.Contains(strings.ToLower(contact.Name), term) ||
			strings.Contains(strings.ToLower(contact.Email), term) {
			result = append(result, contact)
		}
	}
	return result
}
