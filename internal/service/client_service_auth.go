package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-accounts/internal/adapter"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/models"
)

type clientAuthService struct {
	sessions store.LocalSessionStore
	adapter  adapter.ServerAdapter
	logger   *logger.Logger
}

func NewClientAuthService(sessions store.LocalSessionStore, serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{sessions: sessions, adapter: serverAdapter, logger: logger}
}

func (a *clientAuthService) Register(ctx context.Context, user models.User) (models.User, error) {
	if user.Login == "" || user.Password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	registered, err := a.adapter.Register(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrRegisterOnServer, mapAdapterError(err))
	}

	return registered, a.remember(registered)
}

func (a *clientAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	if user.Login == "" || user.Password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	found, err := a.adapter.Login(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	return found, a.remember(found)
}

func (a *clientAuthService) remember(user models.User) error {
	err := a.sessions.Save(store.LocalSession{
		UserID: user.UserID,
		Login:  user.Login,
		Token:  a.adapter.Token(),
		At:     time.Now(),
	})
	if err != nil {
		a.logger.Err(err).Str("func", "clientAuthService.remember").Msg("failed to save local session")
		return fmt.Errorf("save local session: %w", err)
	}
	return nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	serverErr := a.adapter.Logout(ctx)
	if serverErr != nil {
		a.logger.Err(serverErr).Str("func", "clientAuthService.Logout").Msg("server logout failed")
		a.adapter.SetToken("")
	}

	return errors.Join(mapAdapterError(serverErr), a.sessions.Clear())
}

func (a *clientAuthService) RestoreSession(_ context.Context) (models.User, error) {
	session, err := a.sessions.Load()
	if errors.Is(err, store.ErrLocalSessionNotFound) {
		return models.User{}, ErrNotLoggedIn
	}
	if err != nil {
		return models.User{}, fmt.Errorf("restore session: %w", err)
	}

	a.adapter.SetToken(session.Token)
	return models.User{UserID: session.UserID, Login: session.Login}, nil
}
