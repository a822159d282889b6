package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Formula-SAE/signupspark/internal/auth"
	"github.com/Formula-SAE/signupspark/internal/db"
	"github.com/Formula-SAE/signupspark/internal/mail"
	"github.com/Formula-SAE/signupspark/internal/service"
	"github.com/Formula-SAE/signupspark/internal/store"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentity struct{}

func (fakeIdentity) AuthCodeURL(state string) string {
	return "https://accounts.test/auth?state=" + state
}

func (fakeIdentity) ExchangeCode(_ context.Context, code string) (store.UserProfile, error) {
	if code != "good-code" {
		return store.UserProfile{}, errors.New("invalid_grant")
	}
	return organizerProfile(), nil
}

func (fakeIdentity) ProfileFromAccessToken(_ context.Context, token string) (store.UserProfile, error) {
	switch token {
	case "browser-token":
		return organizerProfile(), nil
	case "stranger-token":
		return store.UserProfile{Email: "stranger@x.com", Name: "Stranger", Sub: "stranger-999"}, nil
	}
	return store.UserProfile{}, errors.New("status 401")
}

func organizerProfile() store.UserProfile {
	return store.UserProfile{Email: "org@x.com", Name: "Org", Picture: "https://pic.test/1", Sub: "google-123"}
}

type fakeRelay struct {
	sent [][]mail.Email
	err  error
}

func (f *fakeRelay) Send(_ context.Context, emails []mail.Email) error {
	f.sent = append(f.sent, emails)
	return f.err
}

type testServer struct {
	api    *API
	svc    *service.Service
	relay  *fakeRelay
	hub    *Hub
	stores service.Stores
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	persister := db.NewDB(db.CreateTestDB())
	campaigns, err := store.NewCampaignStore(persister)
	require.NoError(t, err)
	tasks, err := store.NewTaskStore(persister)
	require.NoError(t, err)
	contacts, err := store.NewContactStore(persister)
	require.NoError(t, err)
	authStore, err := store.NewAuthStore(persister)
	require.NoError(t, err)
	stores := service.Stores{Campaigns: campaigns, Tasks: tasks, Contacts: contacts, Auth: authStore}

	svc := service.NewService(stores, nil, time.Second)
	relay := &fakeRelay{}
	hub := NewHub()
	a := NewAPI(":0", mux.NewRouter(), svc, auth.NewManager("test-secret", time.Hour), fakeIdentity{}, relay, hub)

	return &testServer{api: a, svc: svc, relay: relay, hub: hub, stores: stores}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.api.Handler().ServeHTTP(rec, req)
	return rec
}

func (s *testServer) signIn(t *testing.T) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/auth/google/token", map[string]string{"access_token": "browser-token"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	session := sessionResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	s.token = session.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[messageResponse](t, rec).Message
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestOrganizerRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/campaigns", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	s.token = "garbage"
	rec = s.do(t, http.MethodGet, "/api/campaigns", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	s.signIn(t)
	rec = s.do(t, http.MethodGet, "/api/campaigns", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/campaigns", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "session is no longer active", messageOf(t, rec))
}

func TestGoogleAuthFlow(t *testing.T) {
	t.Run("login sets state and redirects", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do(t, http.MethodGet, "/auth/google/login", nil)

		assert.Equal(t, http.StatusFound, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, stateCookie, cookies[0].Name)
		assert.Equal(t, "https://accounts.test/auth?state="+cookies[0].Value, rec.Header().Get("Location"))
	})

	t.Run("callback checks state", func(t *testing.T) {
		s := newTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=abc&code=good-code", nil)
		req.AddCookie(&http.Cookie{Name: stateCookie, Value: "other"})
		rec := httptest.NewRecorder()
		s.api.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		req = httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=abc&code=good-code", nil)
		req.AddCookie(&http.Cookie{Name: stateCookie, Value: "abc"})
		rec = httptest.NewRecorder()
		s.api.Handler().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		session := decode[sessionResponse](t, rec)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, "google-123", session.User.Sub)
	})

	t.Run("rejected token", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do(t, http.MethodPost, "/auth/google/token", map[string]string{"access_token": "stale"})
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.False(t, s.stores.Auth.IsAuthenticated())
	})

	t.Run("second account cannot take over", func(t *testing.T) {
		s := newTestServer(t)
		s.signIn(t)
		_, err := s.svc.CreateCampaign("Private", "")
		require.NoError(t, err)

		rec := s.do(t, http.MethodPost, "/auth/google/token", map[string]string{"access_token": "stranger-token"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Another organizer is signed in", messageOf(t, rec))
		assert.NotContains(t, rec.Body.String(), "token\"")

		rec = s.do(t, http.MethodGet, "/api/campaigns", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]store.Campaign](t, rec), 1)
	})

	t.Run("not configured", func(t *testing.T) {
		s := newTestServer(t)
		s.api.identity = nil
		rec := s.do(t, http.MethodGet, "/auth/google/login", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestCampaignLifecycle(t *testing.T) {
	s := newTestServer(t)
	s.signIn(t)

	rec := s.do(t, http.MethodPost, "/api/campaigns", map[string]string{"name": "Bake Sale", "description": "Fundraiser"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	campaign := decode[store.Campaign](t, rec)
	assert.Regexp(t, `^[A-Z0-9]{4}-[A-Z0-9]{4}$`, campaign.Code)
	assert.Equal(t, "google-123", campaign.CreatedBy)

	rec = s.do(t, http.MethodGet, "/api/campaigns/current", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, campaign.ID, decode[store.Campaign](t, rec).ID)

	rec = s.do(t, http.MethodPost, "/api/campaigns/"+campaign.ID+"/tasks", map[string]any{"name": "Bake Cookies", "quantity": 24})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	task := decode[store.Task](t, rec)
	assert.Equal(t, store.TASK_OPEN, task.Status)

	rec = s.do(t, http.MethodPut, "/api/campaigns/"+campaign.ID+"/tasks/"+task.ID, map[string]string{"dueDate": "2024-06-15"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[store.Task](t, rec)
	assert.Equal(t, 24, updated.Quantity)
	assert.Equal(t, "2024-06-15", updated.DueDate)

	rec = s.do(t, http.MethodPut, "/api/campaigns/"+campaign.ID+"/tasks/"+task.ID, map[string]string{"status": "DONE"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/campaigns/"+campaign.ID+"/tasks/"+task.ID, map[string]int{"quantity": -5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, err := s.svc.AddComment(campaign.Code, task.ID, "Bringing chocolate chip")
	require.NoError(t, err)
	rec = s.do(t, http.MethodPut, "/api/campaigns/"+campaign.ID+"/tasks/"+task.ID, map[string]any{"comments": []any{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Comments cannot be edited", messageOf(t, rec))
	stored, _ := s.stores.Tasks.GetTask(campaign.ID, task.ID)
	require.Len(t, stored.Comments, 1)
	assert.Equal(t, 24, stored.Quantity)

	rec = s.do(t, http.MethodPut, "/api/campaigns/"+campaign.ID, map[string]string{"name": "Spring Bake Sale"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Spring Bake Sale", decode[store.Campaign](t, rec).Name)

	rec = s.do(t, http.MethodGet, "/api/campaigns/"+campaign.ID+"/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode[service.Report](t, rec)
	assert.Equal(t, 0, report.Progress)
	assert.Equal(t, 1, report.Summary.Open)

	rec = s.do(t, http.MethodGet, "/api/campaigns/"+campaign.ID+"/report.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Spring Bake Sale-report.csv")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Task Name,Status,"))

	rec = s.do(t, http.MethodDelete, "/api/campaigns/"+campaign.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Campaign deleted", messageOf(t, rec))

	rec = s.do(t, http.MethodGet, "/api/campaigns/"+campaign.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Campaign not found", messageOf(t, rec))
	assert.Empty(t, s.stores.Tasks.GetTasksByCampaign(campaign.ID))
}

func TestPublicSignup(t *testing.T) {
	s := newTestServer(t)
	campaign, err := s.svc.CreateCampaign("Bake Sale", "")
	require.NoError(t, err)
	task, err := s.svc.CreateTask(campaign.ID, service.TaskDraft{Name: "Bake Cookies"})
	require.NoError(t, err)

	code := strings.ToLower(campaign.Code)

	rec := s.do(t, http.MethodGet, "/campaign/"+code, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[publicCampaignResponse](t, rec)
	assert.Equal(t, campaign.ID, view.Campaign.ID)
	require.Len(t, view.Tasks, 1)

	rec = s.do(t, http.MethodGet, "/campaign/NOPE-NOPE", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	path := "/campaign/" + code + "/tasks/" + task.ID + "/signup"

	rec = s.do(t, http.MethodPost, path, map[string]string{"name": "Sam", "email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please enter a valid email address", messageOf(t, rec))

	rec = s.do(t, http.MethodPost, path, "{broken")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, path, map[string]string{"name": "Sam", "email": "sam@example.com"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	claimed := decode[store.Task](t, rec)
	assert.Equal(t, store.TASK_TAKEN, claimed.Status)
	assert.Equal(t, "Sam", claimed.AssignedTo)

	rec = s.do(t, http.MethodPost, path, map[string]string{"name": "Bob", "email": "bob@example.com"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/campaign/"+code, nil)
	assert.Equal(t, 100, decode[publicCampaignResponse](t, rec).Progress)

	rec = s.do(t, http.MethodPost, "/campaign/"+code+"/tasks/"+task.ID+"/comments", map[string]string{"text": "On it!"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Sam", decode[store.Comment](t, rec).UserName)

	_, ok := s.stores.Contacts.FindContactByEmail("sam@example.com")
	assert.True(t, ok)
}

func TestContactRoutes(t *testing.T) {
	s := newTestServer(t)
	s.signIn(t)
	campaign, err := s.svc.CreateCampaign("Bake Sale", "")
	require.NoError(t, err)

	rec := s.do(t, http.MethodPost, "/api/contacts", map[string]string{"name": "Ada", "email": "ada@x.com", "campaignId": campaign.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ada := decode[store.Contact](t, rec)
	assert.Equal(t, []string{campaign.ID}, ada.Campaigns)

	rec = s.do(t, http.MethodPost, "/api/contacts", map[string]string{"name": "Ada"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/contacts/import", map[string]string{"csv": "name,email\nBob,bob@y.com\n,bad"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[importResponse](t, rec).Imported)

	rec = s.do(t, http.MethodPost, "/api/contacts/import", map[string]string{"csv": "first,last"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `CSV must contain "name" and "email" columns`, messageOf(t, rec))

	rec = s.do(t, http.MethodGet, "/api/contacts?q=BOB", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	found := decode[[]store.Contact](t, rec)
	require.Len(t, found, 1)
	bob := found[0]

	rec = s.do(t, http.MethodPut, "/api/campaigns/"+campaign.ID+"/contacts/"+bob.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/campaigns/"+campaign.ID+"/contacts", nil)
	assert.Len(t, decode[[]store.Contact](t, rec), 2)

	rec = s.do(t, http.MethodDelete, "/api/campaigns/"+campaign.ID+"/contacts/"+ada.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/contacts/"+bob.ID, map[string]string{"phone": "555"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "555", decode[store.Contact](t, rec).Phone)

	rec = s.do(t, http.MethodGet, "/api/contacts/export.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Name,Email,Phone,Campaigns\nAda,ada@x.com,,\nBob,bob@y.com,555,Bake Sale\n", rec.Body.String())

	rec = s.do(t, http.MethodDelete, "/api/contacts/"+ada.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodDelete, "/api/contacts/"+ada.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestActivityAndProfile(t *testing.T) {
	s := newTestServer(t)
	s.signIn(t)

	campaign, err := s.svc.CreateCampaign("Bake Sale", "")
	require.NoError(t, err)
	task, err := s.svc.CreateTask(campaign.ID, service.TaskDraft{Name: "Cookies"})
	require.NoError(t, err)
	_, err = s.svc.Signup(campaign.Code, task.ID, service.SignupForm{Name: "Sam", Email: "sam@example.com"})
	require.NoError(t, err)

	rec := s.do(t, http.MethodGet, "/api/activity", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"type":"signup"`)

	rec = s.do(t, http.MethodPut, "/api/profile", map[string]any{
		"fullName":         "Jane Organizer",
		"emailPreferences": map[string]bool{"taskSignups": false, "comments": true, "campaignUpdates": true},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode[store.UserProfile](t, rec)
	assert.Equal(t, "Jane Organizer", profile.FullName)
	require.NotNil(t, profile.EmailPreferences)
	assert.False(t, profile.EmailPreferences.TaskSignups)

	rec = s.do(t, http.MethodGet, "/api/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "org@x.com", decode[store.UserProfile](t, rec).Email)
}

func TestSendEmail(t *testing.T) {
	t.Run("relays the batch", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do(t, http.MethodPost, "/api/send-email", map[string]any{
			"emails": []map[string]string{{"to": "a@x.com", "subject": "Hi", "body": "Hello\nthere"}},
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Emails sent successfully"}`, rec.Body.String())
		require.Len(t, s.relay.sent, 1)
		assert.Equal(t, mail.Email{To: "a@x.com", Subject: "Hi", Body: "Hello\nthere"}, s.relay.sent[0][0])
	})

	t.Run("wrong method", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do(t, http.MethodGet, "/api/send-email", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.JSONEq(t, `{"message":"Method not allowed"}`, rec.Body.String())
	})

	t.Run("relay failure hides detail", func(t *testing.T) {
		s := newTestServer(t)
		s.relay.err = errors.New("smtp: 535 bad credentials")
		rec := s.do(t, http.MethodPost, "/api/send-email", map[string]any{
			"emails": []map[string]string{{"to": "a@x.com", "subject": "Hi", "body": "x"}},
		})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"message":"Failed to send emails"}`, rec.Body.String())
	})
}
