package store

import (
	"github.com/Formula-SAE/signupspark/internal/db"
)

type authState struct {
	User            *UserProfile `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

func cloneAuthState(s authState) authState {
	next := authState{IsAuthenticated: s.IsAuthenticated}
	if s.User != nil {
		user := *s.User
		if user.EmailPreferences != nil {
			prefs := *user.EmailPreferences
			user.EmailPreferences = &prefs
		}
		next.User = &user
	}
	return next
}

// AuthStore holds the signed-in organizer.
type AuthStore struct {
	c *container[authState]
}

func NewAuthStore(p Persister) (*AuthStore, error) {
	c, err := newContainer("auth", db.AUTH_SNAPSHOT, p, authState{}, cloneAuthState)
	if err != nil {
		return nil, err
	}
	return &AuthStore{c: c}, nil
}

func (s *AuthStore) Subscribe(fn Listener) func() {
	return s.c.subscribe(fn)
}

// SetUser replaces the organizer; nil signs out.
func (s *AuthStore) SetUser(user *UserProfile) error {
	return s.c.write("set-user", func(st *authState) (bool, error) {
		if user == nil {
			st.User = nil
			st.IsAuthenticated = false
			return true, nil
		}
		*st = cloneAuthState(authState{User: user, IsAuthenticated: true})
		return true, nil
	})
}

func (s *AuthStore) User() (UserProfile, bool) {
	var (
		user UserProfile
		ok   bool
	)
	s.c.read(func(st authState) {
		if st.User != nil {
			user, ok = *cloneAuthState(st).User, true
		}
	})
	return user, ok
}

func (s *AuthStore) IsAuthenticated() bool {
	authenticated := false
	s.c.read(func(st authState) {
		authenticated = st.IsAuthenticated
	})
	return authenticated
}

// UpdateProfile edits the organizer's own profile fields. It is a no-op when
// nobody is signed in.
func (s *AuthStore) UpdateProfile(updates ProfileUpdate) error {
	return s.c.write("update-profile", func(st *authState) (bool, error) {
		if st.User == nil {
			return false, nil
		}
		if updates.FullName != nil {
			st.User.FullName = *updates.FullName
		}
		if updates.Phone != nil {
			st.User.Phone = *updates.Phone
		}
		if updates.EmailPreferences != nil {
			prefs := *updates.EmailPreferences
			st.User.EmailPreferences = &prefs
		}
		return true, nil
	})
}
