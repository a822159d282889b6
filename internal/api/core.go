package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Formula-SAE/signupspark/internal/auth"
	"github.com/Formula-SAE/signupspark/internal/mail"
	"github.com/Formula-SAE/signupspark/internal/service"
	"github.com/Formula-SAE/signupspark/internal/store"
	"github.com/gorilla/mux"
)

// IdentityProvider resolves organizer profiles from OAuth credentials.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (store.UserProfile, error)
	ProfileFromAccessToken(ctx context.Context, accessToken string) (store.UserProfile, error)
}

type API struct {
	address string
	router  *mux.Router
	server  *http.Server

	service  *service.Service
	sessions *auth.Manager
	identity IdentityProvider
	relay    mail.Relay
	events   *Hub
}

// NewAPI wires the routes. identity may be nil when Google sign-in is not
// configured.
func NewAPI(
	address string,
	router *mux.Router,
	svc *service.Service,
	sessions *auth.Manager,
	identity IdentityProvider,
	relay mail.Relay,
	events *Hub,
) *API {
	a := &API{
		address:  address,
		router:   router,
		service:  svc,
		sessions: sessions,
		identity: identity,
		relay:    relay,
		events:   events,
	}
	a.server = &http.Server{
		Addr:              address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.initRoutes()
	return a
}

func (a *API) initRoutes() {
	a.router.Use(logRequests)

	a.router.HandleFunc("/health", a.handleHealth).Methods(http.MethodGet)

	a.router.HandleFunc("/campaign/{code}", a.handlePublicCampaign).Methods(http.MethodGet)
	a.router.HandleFunc("/campaign/{code}/tasks/{taskID}/signup", a.handleSignup).Methods(http.MethodPost)
	a.router.HandleFunc("/campaign/{code}/tasks/{taskID}/comments", a.handleAddComment).Methods(http.MethodPost)

	a.router.HandleFunc("/auth/google/login", a.handleGoogleLogin).Methods(http.MethodGet)
	a.router.HandleFunc("/auth/google/callback", a.handleGoogleCallback).Methods(http.MethodGet)
	a.router.HandleFunc("/auth/google/token", a.handleGoogleToken).Methods(http.MethodPost)
	a.router.Handle("/auth/logout", a.requireOrganizer(http.HandlerFunc(a.handleLogout))).Methods(http.MethodPost)

	// Method is checked by the handler so that other verbs get a JSON 405.
	a.router.HandleFunc("/api/send-email", a.handleSendEmail)
	a.router.HandleFunc("/api/events", a.events.ServeHTTP).Methods(http.MethodGet)

	organizer := a.router.PathPrefix("/api").Subrouter()
	organizer.Use(a.requireOrganizer)

	organizer.HandleFunc("/campaigns", a.handleListCampaigns).Methods(http.MethodGet)
	organizer.HandleFunc("/campaigns", a.handleCreateCampaign).Methods(http.MethodPost)
	organizer.HandleFunc("/campaigns/current", a.handleGetCurrentCampaign).Methods(http.MethodGet)
	organizer.HandleFunc("/campaigns/current", a.handleSetCurrentCampaign).Methods(http.MethodPut)
	organizer.HandleFunc("/campaigns/{id}", a.handleGetCampaign).Methods(http.MethodGet)
	organizer.HandleFunc("/campaigns/{id}", a.handleUpdateCampaign).Methods(http.MethodPut)
	organizer.HandleFunc("/campaigns/{id}", a.handleDeleteCampaign).Methods(http.MethodDelete)

	organizer.HandleFunc("/campaigns/{id}/tasks", a.handleListTasks).Methods(http.MethodGet)
	organizer.HandleFunc("/campaigns/{id}/tasks", a.handleCreateTask).Methods(http.MethodPost)
	organizer.HandleFunc("/campaigns/{id}/tasks", a.handleClearTasks).Methods(http.MethodDelete)
	organizer.HandleFunc("/campaigns/{id}/tasks/{taskID}", a.handleUpdateTask).Methods(http.MethodPut)
	organizer.HandleFunc("/campaigns/{id}/tasks/{taskID}", a.handleDeleteTask).Methods(http.MethodDelete)

	organizer.HandleFunc("/campaigns/{id}/report", a.handleReport).Methods(http.MethodGet)
	organizer.HandleFunc("/campaigns/{id}/report.csv", a.handleReportCSV).Methods(http.MethodGet)

	organizer.HandleFunc("/campaigns/{id}/contacts", a.handleCampaignContacts).Methods(http.MethodGet)
	organizer.HandleFunc("/campaigns/{id}/contacts/{contactID}", a.handleTagContact).Methods(http.MethodPut)
	organizer.HandleFunc("/campaigns/{id}/contacts/{contactID}", a.handleUntagContact).Methods(http.MethodDelete)

	organizer.HandleFunc("/contacts", a.handleListContacts).Methods(http.MethodGet)
	organizer.HandleFunc("/contacts", a.handleCreateContact).Methods(http.MethodPost)
	organizer.HandleFunc("/contacts/import", a.handleImportContacts).Methods(http.MethodPost)
	organizer.HandleFunc("/contacts/export.csv", a.handleExportContacts).Methods(http.MethodGet)
	organizer.HandleFunc("/contacts/{id}", a.handleUpdateContact).Methods(http.MethodPut)
	organizer.HandleFunc("/contacts/{id}", a.handleDeleteContact).Methods(http.MethodDelete)

	organizer.HandleFunc("/activity", a.handleActivity).Methods(http.MethodGet)
	organizer.HandleFunc("/profile", a.handleGetProfile).Methods(http.MethodGet)
	organizer.HandleFunc("/profile", a.handleUpdateProfile).Methods(http.MethodPut)
}

func (a *API) Handler() http.Handler {
	return a.router
}

// Start blocks until the server stops. A clean Shutdown returns nil.
func (a *API) Start() error {
	log.Printf("Listening on %s", a.address)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *API) Shutdown(ctx context.Context) error {
	a.events.Close()
	return a.server.Shutdown(ctx)
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
