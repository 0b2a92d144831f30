package service

import (
	"context"

	"github.com/MKhiriev/go-accounts/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientAuthService registers and logs in the command-line client user and
// remembers the login between runs.
type ClientAuthService interface {
	// Register creates the user on the server and saves the local session.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates against the server and saves the local session.
	Login(ctx context.Context, user models.User) (models.User, error)

	// Logout ends the server session and clears the local one. The local
	// session is cleared even when the server call fails.
	Logout(ctx context.Context) error

	// RestoreSession loads the saved session and hands its token to the
	// adapter. Returns ErrNotLoggedIn when there is none.
	RestoreSession(ctx context.Context) (models.User, error)
}

// ClientAccountService runs account operations against the server's export
// representation.
type ClientAccountService interface {
	List(ctx context.Context) ([]models.Account, error)
	Search(ctx context.Context, query string) ([]models.Account, error)
	Show(ctx context.Context, id int64) (models.Account, error)
	Create(ctx context.Context, request models.AccountRequest) (models.Account, error)
	Update(ctx context.Context, id int64, request models.AccountRequest) (models.Account, error)
	Delete(ctx context.Context, id int64) error
	ServerVersion(ctx context.Context) (string, error)
}
