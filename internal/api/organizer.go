package api

import (
	"net/http"

	"github.com/Formula-SAE/signupspark/internal/store"
)

func (a *API) handleActivity(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.service.Activity())
}

func (a *API) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := a.service.Profile()
	if err != nil {
		writeServiceError(w, "profile", err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (a *API) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	body := store.ProfileUpdate{}
	if !decodeJSON(w, r, &body) {
		return
	}

	profile, err := a.service.UpdateProfile(body)
	if err != nil {
		writeServiceError(w, "profile", err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
