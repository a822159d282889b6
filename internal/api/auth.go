package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Formula-SAE/signupspark/internal/auth"
	"github.com/Formula-SAE/signupspark/internal/store"
)

const stateCookie = "signupspark_oauth_state"

type tokenRequestBody struct {
	AccessToken string `json:"access_token"`
}

type sessionResponse struct {
	Token string            `json:"token"`
	User  store.UserProfile `json:"user"`
}

func (a *API) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if a.identity == nil {
		writeMessage(w, http.StatusServiceUnavailable, "Google sign-in is not configured")
		return
	}

	state, err := auth.NewState()
	if err != nil {
		log.Printf("[auth] %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth/google",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, a.identity.AuthCodeURL(state), http.StatusFound)
}

func (a *API) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if a.identity == nil {
		writeMessage(w, http.StatusServiceUnavailable, "Google sign-in is not configured")
		return
	}

	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		writeMessage(w, http.StatusBadRequest, "invalid oauth state")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Path: "/auth/google", MaxAge: -1})

	code := r.URL.Query().Get("code")
	if code == "" {
		writeMessage(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	a.signIn(r.Context(), w, func(ctx context.Context) (store.UserProfile, error) {
		return a.identity.ExchangeCode(ctx, code)
	})
}

// handleGoogleToken accepts an access token obtained by the browser.
func (a *API) handleGoogleToken(w http.ResponseWriter, r *http.Request) {
	if a.identity == nil {
		writeMessage(w, http.StatusServiceUnavailable, "Google sign-in is not configured")
		return
	}

	body := tokenRequestBody{}
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.AccessToken == "" {
		writeMessage(w, http.StatusBadRequest, "access_token is required")
		return
	}

	a.signIn(r.Context(), w, func(ctx context.Context) (store.UserProfile, error) {
		return a.identity.ProfileFromAccessToken(ctx, body.AccessToken)
	})
}

func (a *API) signIn(ctx context.Context, w http.ResponseWriter, resolve func(context.Context) (store.UserProfile, error)) {
	profile, err := resolve(ctx)
	if err != nil {
		log.Printf("[auth] sign-in failed: %v", err)
		writeMessage(w, http.StatusBadGateway, "Sign-in with Google failed")
		return
	}

	if err := a.service.SignIn(profile); err != nil {
		writeServiceError(w, "auth", err)
		return
	}

	token, err := a.sessions.GenerateToken(profile.Sub, profile.Email)
	if err != nil {
		log.Printf("[auth] sign token: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	stored, err := a.service.Profile()
	if err != nil {
		writeServiceError(w, "auth", err)
		return
	}
	log.Printf("[auth] organizer %s signed in", stored.Email)
	writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: stored})
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := a.service.SignOut(); err != nil {
		writeServiceError(w, "auth", err)
		return
	}
	if sub, ok := auth.SubjectFromContext(r.Context()); ok {
		log.Printf("[auth] organizer %s signed out", sub)
	}
	writeMessage(w, http.StatusOK, "Signed out")
}
