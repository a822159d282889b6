package api

import (
	"net/http"

	"github.com/Formula-SAE/signupspark/internal/service"
	"github.com/Formula-SAE/signupspark/internal/store"
	"github.com/Formula-SAE/signupspark/internal/views"
	"github.com/gorilla/mux"
)

type publicCampaignResponse struct {
	Campaign store.Campaign `json:"campaign"`
	Tasks    []store.Task   `json:"tasks"`
	Progress int            `json:"progress"`
}

type commentRequestBody struct {
	Text string `json:"text"`
}

func (a *API) handlePublicCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, tasks, err := a.service.PublicCampaign(mux.Vars(r)["code"])
	if err != nil {
		writeServiceError(w, "public-campaign", err)
		return
	}

	writeJSON(w, http.StatusOK, publicCampaignResponse{
		Campaign: campaign,
		Tasks:    tasks,
		Progress: views.Progress(tasks),
	})
}

func (a *API) handleSignup(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	body := service.SignupForm{}
	if !decodeJSON(w, r, &body) {
		return
	}

	task, err := a.service.Signup(vars["code"], vars["taskID"], body)
	if err != nil {
		writeServiceError(w, "signup", err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (a *API) handleAddComment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	body := commentRequestBody{}
	if !decodeJSON(w, r, &body) {
		return
	}

	comment, err := a.service.AddComment(vars["code"], vars["taskID"], body.Text)
	if err != nil {
		writeServiceError(w, "comment", err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}
