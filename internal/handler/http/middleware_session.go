// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
)

// withSession loads the session named by the access token, places it in the
// request context and writes it back if the handler changed it.
//
// A token whose session was closed by logout, has expired or belongs to
// another user is rejected with 401.
//
// The session is persisted right before the response header goes out, so a
// client that reacts to the response (e.g. follows a redirect) always sees
// the updated pagination cursor and flash messages.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		ctx := r.Context()

		sessionID, ok := utils.GetSessionIDFromContext(ctx)
		if !ok {
			log.Error().Str("func", "withSession").Msg("no session id in request context")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		session, err := h.services.SessionService.Load(ctx, sessionID)
		switch {
		case errors.Is(err, service.ErrSessionClosed):
			log.Debug().Err(err).Str("func", "withSession").Msg("session is closed")
			http.Error(w, service.ErrTokenIsExpiredOrInvalid.Error(), http.StatusUnauthorized)
			return
		case err != nil:
			log.Err(err).Str("func", "withSession").Msg("failed to load session")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		userID, _ := utils.GetUserIDFromContext(ctx)
		if owner, _ := session.Owner(); owner != userID {
			log.Warn().Str("func", "withSession").Int64("owner_id", owner).Msg("session belongs to another user")
			http.Error(w, service.ErrTokenIsExpiredOrInvalid.Error(), http.StatusUnauthorized)
			return
		}

		sw := &sessionWriter{
			ResponseWriter: w,
			save: func() {
				if err := h.services.SessionService.Save(ctx, session); err != nil {
					log.Err(err).Str("func", "withSession").Str("session", session.ID).Msg("failed to save session")
				}
			},
		}

		next.ServeHTTP(sw, r.WithContext(context.WithValue(ctx, utils.SessionCtxKey, session)))

		sw.flush()
	})
}

// sessionWriter saves the session once, before the first header or body
// byte reaches the client.
type sessionWriter struct {
	http.ResponseWriter

	save  func()
	saved bool
}

func (w *sessionWriter) flush() {
	if w.saved {
		return
	}
	w.saved = true
	w.save()
}

func (w *sessionWriter) WriteHeader(statusCode int) {
	w.flush()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.flush()
	return w.ResponseWriter.Write(b)
}

// sessionFrom returns the request session, or nil outside withSession.
func sessionFrom(r *http.Request) *models.Session {
	session, _ := utils.GetSessionFromContext(r.Context())
	return session
}
