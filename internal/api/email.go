package api

import (
	"log"
	"net/http"

	"github.com/Formula-SAE/signupspark/internal/mail"
)

type sendEmailRequestBody struct {
	Emails []mail.Email `json:"emails"`
}

func (a *API) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	body := sendEmailRequestBody{}
	if !decodeJSON(w, r, &body) {
		return
	}

	if err := a.relay.Send(r.Context(), body.Emails); err != nil {
		log.Printf("[send-email] %v", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to send emails")
		return
	}

	writeMessage(w, http.StatusOK, "Emails sent successfully")
}
