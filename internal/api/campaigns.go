package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Formula-SAE/signupspark/internal/store"
	"github.com/gorilla/mux"
)

type createCampaignRequestBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type setCurrentRequestBody struct {
	ID string `json:"id"`
}

func (a *API) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.service.Campaigns())
}

func (a *API) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	body := createCampaignRequestBody{}
	if !decodeJSON(w, r, &body) {
		return
	}

	campaign, err := a.service.CreateCampaign(body.Name, body.Description)
	if err != nil {
		writeServiceError(w, "create-campaign", err)
		return
	}
	writeJSON(w, http.StatusCreated, campaign)
}

func (a *API) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := a.service.Campaign(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, "get-campaign", err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

func (a *API) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	body := store.CampaignUpdate{}
	if !decodeJSON(w, r, &body) {
		return
	}

	campaign, err := a.service.UpdateCampaign(mux.Vars(r)["id"], body)
	if err != nil {
		writeServiceError(w, "update-campaign", err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

func (a *API) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := a.service.DeleteCampaign(mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, "delete-campaign", err)
		return
	}
	writeMessage(w, http.StatusOK, "Campaign deleted")
}

func (a *API) handleGetCurrentCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := a.service.CurrentCampaign()
	if err != nil {
		writeServiceError(w, "current-campaign", err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

func (a *API) handleSetCurrentCampaign(w http.ResponseWriter, r *http.Request) {
	body := setCurrentRequestBody{}
	if !decodeJSON(w, r, &body) {
		return
	}

	campaign, err := a.service.SetCurrentCampaign(body.ID)
	if err != nil {
		writeServiceError(w, "current-campaign", err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

func (a *API) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := a.service.CampaignReport(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, "report", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (a *API) handleReportCSV(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	campaign, err := a.service.Campaign(id)
	if err != nil {
		writeServiceError(w, "report-csv", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", campaign.Name+"-report.csv"))
	if _, err := a.service.ExportCampaignReport(w, id); err != nil {
		log.Printf("[report-csv] %v", err)
	}
}

func (a *API) handleCampaignContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := a.service.CampaignContacts(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, "campaign-contacts", err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (a *API) handleTagContact(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := a.service.TagContact(vars["id"], vars["contactID"]); err != nil {
		writeServiceError(w, "tag-contact", err)
		return
	}
	writeMessage(w, http.StatusOK, "Contact added to campaign")
}

func (a *API) handleUntagContact(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := a.service.UntagContact(vars["id"], vars["contactID"]); err != nil {
		writeServiceError(w, "untag-contact", err)
		return
	}
	writeMessage(w, http.StatusOK, "Contact removed from campaign")
}
