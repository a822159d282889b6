package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/Formula-SAE/signupspark/internal/csvfile"
	"github.com/Formula-SAE/signupspark/internal/store"
	"github.com/Formula-SAE/signupspark/internal/views"
)

type ContactForm struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

func (f ContactForm) validate() (ContactForm, error) {
	f = ContactForm{
		Name:  strings.TrimSpace(f.Name),
		Email: strings.TrimSpace(f.Email),
		Phone: strings.TrimSpace(f.Phone),
	}
	if f.Name == "" || f.Email == "" {
		return f, invalid("Name and email are required")
	}
	if !ValidEmail(f.Email) {
		return f, invalid("Please enter a valid email address")
	}
	return f, nil
}

// AddContact creates a contact, tagged with campaignID when one is given.
func (s *Service) AddContact(form ContactForm, campaignID string) (store.Contact, error) {
	form, err := form.validate()
	if err != nil {
		return store.Contact{}, err
	}

	campaigns := []string{}
	if campaignID != "" {
		if _, err := s.Campaign(campaignID); err != nil {
			return store.Contact{}, err
		}
		campaigns = append(campaigns, campaignID)
	}

	contact := store.Contact{
		ID:        s.newID(),
		Name:      form.Name,
		Email:     form.Email,
		Phone:     form.Phone,
		CreatedAt: s.timestamp(),
		Campaigns: campaigns,
	}
	if err := s.contacts.AddContact(contact); err != nil {
		return store.Contact{}, fmt.Errorf("add contact: %w", err)
	}
	return contact, nil
}

func (s *Service) Contact(id string) (store.Contact, error) {
	contact, ok := s.contacts.GetContact(id)
	if !ok {
		return store.Contact{}, notFound("contact")
	}
	return contact, nil
}

// SearchContacts filters the roster by name or email; an empty query lists
// everyone.
func (s *Service) SearchContacts(query string) []store.Contact {
	return views.SearchContacts(s.contacts.Contacts(), query)
}

func (s *Service) UpdateContact(id string, updates store.ContactUpdate) (store.Contact, error) {
	if _, err := s.Contact(id); err != nil {
		return store.Contact{}, err
	}
	if updates.Name != nil {
		name := strings.TrimSpace(*updates.Name)
		if name == "" {
			return store.Contact{}, invalid("Name and email are required")
		}
		updates.Name = &name
	}
	if updates.Email != nil {
		email := strings.TrimSpace(*updates.Email)
		if !ValidEmail(email) {
			return store.Contact{}, invalid("Please enter a valid email address")
		}
		updates.Email = &email
	}
	for _, campaignID := range updates.Campaigns {
		if _, ok := s.campaigns.GetCampaign(campaignID); !ok {
			return store.Contact{}, invalid("Unknown campaign " + campaignID)
		}
	}

	if err := s.contacts.UpdateContact(id, updates); err != nil {
		return store.Contact{}, fmt.Errorf("update contact: %w", err)
	}
	return s.Contact(id)
}

func (s *Service) DeleteContact(id string) error {
	if _, err := s.Contact(id); err != nil {
		return err
	}
	if err := s.contacts.RemoveContact(id); err != nil {
		return fmt.Errorf("remove contact: %w", err)
	}
	return nil
}

func (s *Service) CampaignContacts(campaignID string) ([]store.Contact, error) {
	if _, err := s.Campaign(campaignID); err != nil {
		return nil, err
	}
	return s.contacts.GetContactsByCampaign(campaignID), nil
}

func (s *Service) TagContact(campaignID, contactID string) error {
	if _, err := s.Campaign(campaignID); err != nil {
		return err
	}
	if _, err := s.Contact(contactID); err != nil {
		return err
	}
	if err := s.contacts.AddContactToCampaign(contactID, campaignID); err != nil {
		return fmt.Errorf("tag contact: %w", err)
	}
	return nil
}

func (s *Service) UntagContact(campaignID, contactID string) error {
	if _, err := s.Contact(contactID); err != nil {
		return err
	}
	if err := s.contacts.RemoveContactFromCampaign(contactID, campaignID); err != nil {
		return fmt.Errorf("untag contact: %w", err)
	}
	return nil
}

// ImportContacts appends every usable row of a pasted roster and reports
// how many were added.
func (s *Service) ImportContacts(text string) (int, error) {
	rows, err := csvfile.ParseContacts(text)
	if err != nil {
		return 0, invalid(err.Error())
	}

	for i, row := range rows {
		err := s.contacts.AddContact(store.Contact{
			ID:        s.newID(),
			Name:      row.Name,
			Email:     row.Email,
			Phone:     row.Phone,
			CreatedAt: s.timestamp(),
			Campaigns: []string{},
		})
		if err != nil {
			return i, fmt.Errorf("import contact %d: %w", i+1, err)
		}
	}
	return len(rows), nil
}

func (s *Service) ExportContacts(w io.Writer) error {
	return csvfile.ExportContacts(w, s.contacts.Contacts(), s.campaigns.Campaigns())
}

func (s *Service) ExportCampaignReport(w io.Writer, campaignID string) (store.Campaign, error) {
	campaign, err := s.Campaign(campaignID)
	if err != nil {
		return store.Campaign{}, err
	}
	return campaign, csvfile.ExportCampaignReport(w, s.tasks.GetTasksByCampaign(campaignID))
}
