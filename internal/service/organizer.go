package service

import (
	"fmt"
	"strings"

	"github.com/Formula-SAE/signupspark/internal/store"
	"github.com/Formula-SAE/signupspark/internal/views"
)

func (s *Service) Activity() []views.ActivityItem {
	return views.ActivityFeed(s.campaigns.Campaigns(), s.tasks.GetTasksByCampaign, s.now())
}

// SignIn stores the organizer returned by the identity provider. While an
// organizer is signed in, another account is refused until they sign out.
func (s *Service) SignIn(profile store.UserProfile) error {
	if profile.Sub == "" {
		return invalid("Identity provider returned no subject")
	}
	if len(s.organizers) > 0 {
		if _, ok := s.organizers[strings.ToLower(strings.TrimSpace(profile.Email))]; !ok {
			return forbidden("This account is not allowed to organize campaigns")
		}
	}

	if current, ok := s.auth.User(); ok {
		if current.Sub != profile.Sub {
			return forbidden("Another organizer is signed in")
		}
		// Keep locally edited fields across sign-ins of the same organizer.
		profile.FullName = current.FullName
		profile.Phone = current.Phone
		profile.EmailPreferences = current.EmailPreferences
	}

	if err := s.auth.SetUser(&profile); err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	return nil
}

func (s *Service) SignOut() error {
	if err := s.auth.SetUser(nil); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

func (s *Service) Profile() (store.UserProfile, error) {
	user, ok := s.auth.User()
	if !ok {
		return store.UserProfile{}, notFound("profile")
	}
	return user, nil
}

func (s *Service) UpdateProfile(updates store.ProfileUpdate) (store.UserProfile, error) {
	if _, err := s.Profile(); err != nil {
		return store.UserProfile{}, err
	}
	if updates.FullName != nil {
		name := strings.TrimSpace(*updates.FullName)
		updates.FullName = &name
	}
	if updates.Phone != nil {
		phone := strings.TrimSpace(*updates.Phone)
		updates.Phone = &phone
	}

	if err := s.auth.UpdateProfile(updates); err != nil {
		return store.UserProfile{}, fmt.Errorf("update profile: %w", err)
	}
	return s.Profile()
}
