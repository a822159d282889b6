package api

import (
	"log"
	"net/http"

	"github.com/Formula-SAE/signupspark/internal/service"
	"github.com/Formula-SAE/signupspark/internal/store"
	"github.com/gorilla/mux"
)

type createContactRequestBody struct {
	service.ContactForm
	CampaignID string `json:"campaignId,omitempty"`
}

type importRequestBody struct {
	CSV string `json:"csv"`
}

type importResponse struct {
	Imported int `json:"imported"`
}

func (a *API) handleListContacts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.service.SearchContacts(r.URL.Query().Get("q")))
}

func (a *API) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	body := createContactRequestBody{}
	if !decodeJSON(w, r, &body) {
		return
	}

	contact, err := a.service.AddContact(body.ContactForm, body.CampaignID)
	if err != nil {
		writeServiceError(w, "create-contact", err)
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

func (a *API) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	body := store.ContactUpdate{}
	if !decodeJSON(w, r, &body) {
		return
	}

	contact, err := a.service.UpdateContact(mux.Vars(r)["id"], body)
	if err != nil {
		writeServiceError(w, "update-contact", err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (a *API) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := a.service.DeleteContact(mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, "delete-contact", err)
		return
	}
	writeMessage(w, http.StatusOK, "Contact deleted")
}

func (a *API) handleImportContacts(w http.ResponseWriter, r *http.Request) {
	body := importRequestBody{}
	if !decodeJSON(w, r, &body) {
		return
	}

	count, err := a.service.ImportContacts(body.CSV)
	if err != nil {
		writeServiceError(w, "import-contacts", err)
		return
	}
	log.Printf("[import-contacts] imported %d contacts", count)
	writeJSON(w, http.StatusOK, importResponse{Imported: count})
}

func (a *API) handleExportContacts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="contacts.csv"`)
	if err := a.service.ExportContacts(w); err != nil {
		log.Printf("[export-contacts] %v", err)
	}
}
