package api

import (
	"bufio"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/Formula-SAE/signupspark/internal/auth"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Hijack lets the websocket upgrade reach the underlying connection.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Printf("[http] %s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}

// requireOrganizer accepts a session token only while its subject is the
// signed-in organizer, so signing out revokes outstanding tokens.
func (a *API) requireOrganizer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := auth.TokenFromRequest(r)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := a.sessions.ParseToken(token)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "invalid token")
			return
		}

		profile, err := a.service.Profile()
		if err != nil || profile.Sub != claims.Subject {
			writeMessage(w, http.StatusUnauthorized, "session is no longer active")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithSubject(r.Context(), claims.Subject)))
	})
}
