package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/models"
)

type sessionService struct {
	sessions store.SessionStore

	logger *logger.Logger
}

func NewSessionService(sessions store.SessionStore, logger *logger.Logger) SessionService {
	return &sessionService{
		sessions: sessions,
		logger:   logger,
	}
}

// Open stores a new session owned by userID under id.
func (s *sessionService) Open(ctx context.Context, id string, userID int64) error {
	session := models.NewSession(id)
	session.SetOwner(userID)

	if err := s.sessions.Save(ctx, session); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sessionService.Open").Str("session_id", id).Msg("error opening session")
		return fmt.Errorf("error opening session: %w", err)
	}
	return nil
}

// Load returns the session stored under id. The store hands out an empty
// session for unknown ids, which is reported as [ErrSessionClosed].
func (s *sessionService) Load(ctx context.Context, id string) (*models.Session, error) {
	session, err := s.sessions.Load(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sessionService.Load").Str("session_id", id).Msg("error loading session")
		return nil, fmt.Errorf("error loading session: %w", err)
	}
	if _, ok := session.Owner(); !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionClosed, id)
	}
	return session, nil
}

// Save persists session if it changed since it was loaded.
func (s *sessionService) Save(ctx context.Context, session *models.Session) error {
	if session == nil || !session.Dirty() {
		return nil
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sessionService.Save").Str("session_id", session.ID).Msg("error saving session")
		return fmt.Errorf("error saving session: %w", err)
	}
	return nil
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}
