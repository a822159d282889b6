package store

import (
	"slices"

	"github.com/Formula-SAE/signupspark/internal/db"
)

type contactState struct {
	Contacts []Contact `json:"contacts"`
}

func cloneContactState(s contactState) contactState {
	next := contactState{Contacts: make([]Contact, len(s.Contacts))}
	for i, contact := range s.Contacts {
		next.Contacts[i] = cloneContact(contact)
	}
	return next
}

type ContactStore struct {
	c *container[contactState]
}

func NewContactStore(p Persister) (*ContactStore, error) {
	c, err := newContainer("contact", db.CONTACT_SNAPSHOT, p, contactState{Contacts: []Contact{}}, cloneContactState)
	if err != nil {
		return nil, err
	}
	return &ContactStore{c: c}, nil
}

func (s *ContactStore) Subscribe(fn Listener) func() {
	return s.c.subscribe(fn)
}

// AddContact appends unconditionally; callers dedupe by email when needed.
func (s *ContactStore) AddContact(contact Contact) error {
	contact = cloneContact(contact)
	contact.Campaigns = dedupe(contact.Campaigns)
	return s.c.write("add", func(st *contactState) (bool, error) {
		st.Contacts = append(st.Contacts, contact)
		return true, nil
	})
}

func (s *ContactStore) RemoveContact(id string) error {
	return s.c.write("remove", func(st *contactState) (bool, error) {
		before := len(st.Contacts)
		st.Contacts = slices.DeleteFunc(st.Contacts, func(c Contact) bool {
			return c.ID == id
		})
		return len(st.Contacts) != before, nil
	})
}

func (s *ContactStore) UpdateContact(id string, updates ContactUpdate) error {
	return s.c.write("update", func(st *contactState) (bool, error) {
		changed := false
		for i := range st.Contacts {
			if st.Contacts[i].ID == id {
				updates.apply(&st.Contacts[i])
				changed = true
			}
		}
		return changed, nil
	})
}

// AddContactToCampaign tags the contact with campaignID. Adding an existing
// tag is a no-op.
func (s *ContactStore) AddContactToCampaign(contactID, campaignID string) error {
	return s.c.write("tag", func(st *contactState) (bool, error) {
		for i := range st.Contacts {
			if st.Contacts[i].ID != contactID {
				continue
			}
			if slices.Contains(st.Contacts[i].Campaigns, campaignID) {
				return false, nil
			}
			st.Contacts[i].Campaigns = append(st.Contacts[i].Campaigns, campaignID)
			return true, nil
		}
		return false, nil
	})
}

func (s *ContactStore) RemoveContactFromCampaign(contactID, campaignID string) error {
	return s.c.write("untag", func(st *contactState) (bool, error) {
		for i := range st.Contacts {
			if st.Contacts[i].ID != contactID {
				continue
			}
			before := len(st.Contacts[i].Campaigns)
			st.Contacts[i].Campaigns = slices.DeleteFunc(st.Contacts[i].Campaigns, func(id string) bool {
				return id == campaignID
			})
			return len(st.Contacts[i].Campaigns) != before, nil
		}
		return false, nil
	})
}

// RemoveCampaignFromAll drops campaignID from every contact's tags.
func (s *ContactStore) RemoveCampaignFromAll(campaignID string) error {
	return s.c.write("untag", func(st *contactState) (bool, error) {
		changed := false
		for i := range st.Contacts {
			before := len(st.Contacts[i].Campaigns)
			st.Contacts[i].Campaigns = slices.DeleteFunc(st.Contacts[i].Campaigns, func(id string) bool {
				return id == campaignID
			})
			if len(st.Contacts[i].Campaigns) != before {
				changed = true
			}
		}
		return changed, nil
	})
}

func (s *ContactStore) GetContactsByCampaign(campaignID string) []Contact {
	contacts := []Contact{}
	s.c.read(func(st contactState) {
		for _, contact := range st.Contacts {
			if slices.Contains(contact.Campaigns, campaignID) {
				contacts = append(contacts, cloneContact(contact))
			}
		}
	})
	return contacts
}

// FindContactByEmail matches on exact email equality.
func (s *ContactStore) FindContactByEmail(email string) (Contact, bool) {
	var (
		found Contact
		ok    bool
	)
	s.c.read(func(st contactState) {
		for _, contact := range st.Contacts {
			if contact.Email == email {
				found, ok = cloneContact(contact), true
				return
			}
		}
	})
	return found, ok
}

func (s *ContactStore) GetContact(id string) (Contact, bool) {
	var (
		found Contact
		ok    bool
	)
	s.c.read(func(st contactState) {
		for _, contact := range st.Contacts {
			if contact.ID == id {
				found, ok = cloneContact(contact), true
				return
			}
		}
	})
	return found, ok
}

func (s *ContactStore) Contacts() []Contact {
	contacts := []Contact{}
	s.c.read(func(st contactState) {
		for _, contact := range st.Contacts {
			contacts = append(contacts, cloneContact(contact))
		}
	})
	return contacts
}

func (s *ContactStore) ClearContacts() error {
	return s.c.write("clear", func(st *contactState) (bool, error) {
		st.Contacts = []Contact{}
		return true, nil
	})
}
