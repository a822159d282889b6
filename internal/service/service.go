package service

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Formula-SAE/signupspark/internal/messages"
	"github.com/Formula-SAE/signupspark/internal/store"
	"github.com/google/uuid"
)

// Matches the millisecond ISO form the stored timestamps use.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type Notifier interface {
	Notify(ctx context.Context, notice messages.Notice) error
}

type Stores struct {
	Campaigns *store.CampaignStore
	Tasks     *store.TaskStore
	Contacts  *store.ContactStore
	Auth      *store.AuthStore
}

// Service coordinates writes that touch more than one store.
type Service struct {
	campaigns *store.CampaignStore
	tasks     *store.TaskStore
	contacts  *store.ContactStore
	auth      *store.AuthStore

	notifier      Notifier
	notifyTimeout time.Duration
	pending       sync.WaitGroup

	// serializes the read-check-write of a signup
	signupMu sync.Mutex

	// lower-cased emails allowed to sign in; empty allows any account
	organizers map[string]struct{}

	now   func() time.Time
	newID func() string
}

func NewService(stores Stores, notifier Notifier, notifyTimeout time.Duration) *Service {
	if notifyTimeout <= 0 {
		notifyTimeout = 10 * time.Second
	}
	return &Service{
		campaigns:     stores.Campaigns,
		tasks:         stores.Tasks,
		contacts:      stores.Contacts,
		auth:          stores.Auth,
		notifier:      notifier,
		notifyTimeout: notifyTimeout,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// AllowOrganizers restricts sign-in to the given email addresses.
func (s *Service) AllowOrganizers(emails []string) {
	s.organizers = make(map[string]struct{}, len(emails))
	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			s.organizers[email] = struct{}{}
		}
	}
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(timestampLayout)
}

// Wait blocks until every dispatched notification has finished.
func (s *Service) Wait() {
	s.pending.Wait()
}

func (s *Service) dispatch(notice messages.Notice) {
	if s.notifier == nil {
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()

		if err := s.notifier.Notify(ctx, notice); err != nil {
			log.Printf("[signup] notification for task %s failed: %v", notice.Task.ID, err)
		}
	}()
}
