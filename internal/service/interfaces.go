package service

import (
	"context"

	"github.com/MKhiriev/go-accounts/models"
)

// ResourceAccounts names the account listing in preference and session keys.
const ResourceAccounts = "accounts"

// AccountService is the request boundary of the account listing. Every
// operation runs in a RequestScope carrying the user, the session that holds
// the listing cursors and the output mode.
type AccountService interface {
	List(ctx context.Context, scope models.RequestScope, params models.ListParams) (models.Listing, error)
	Search(ctx context.Context, scope models.RequestScope, query string) (models.Listing, error)
	Show(ctx context.Context, scope models.RequestScope, id int64) (models.Account, error)

	New(ctx context.Context, scope models.RequestScope, related string) (AccountForm, error)
	Edit(ctx context.Context, scope models.RequestScope, id int64, previous *int64) (AccountForm, error)

	Create(ctx context.Context, scope models.RequestScope, request models.AccountRequest) (AccountResult, error)
	Update(ctx context.Context, scope models.RequestScope, id int64, request models.AccountRequest) (AccountResult, error)
	Delete(ctx context.Context, scope models.RequestScope, id int64) (DeleteResult, error)

	AutoComplete(ctx context.Context, scope models.RequestScope, query string) ([]models.Account, error)

	Options(ctx context.Context, scope models.RequestScope) (models.ViewPreferences, error)
	Redraw(ctx context.Context, scope models.RequestScope, request models.RedrawRequest) (models.Listing, error)
}

// PreferenceResolver resolves and stores the view preferences of a listing.
type PreferenceResolver interface {
	Resolve(ctx context.Context, userID int64, resource string) (models.ViewPreferences, error)
	Save(ctx context.Context, userID int64, resource string, request models.RedrawRequest) (models.ViewPreferences, error)
}

// NavigationResolver resolves a possibly stale "previous account" hint.
type NavigationResolver interface {
	Previous(ctx context.Context, userID, currentID int64, hint *int64) (ResolvedPrevious, error)
}

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// SessionService loads and persists the per-login session.
type SessionService interface {
	// Open starts the session of a freshly issued token.
	Open(ctx context.Context, id string, userID int64) error
	// Load returns [ErrSessionClosed] if the session was never opened or
	// has been deleted.
	Load(ctx context.Context, id string) (*models.Session, error)
	// Save writes the session only if it changed.
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// AccountForm is what the new and edit views need.
type AccountForm struct {
	Account models.Account
	// Users are the other users an account can be shared with.
	Users []models.User
	// Related is the contact named by the related hint of new, if found.
	Related *models.Contact
	// Previous is the resolved previous hint of edit.
	Previous ResolvedPrevious
}

// AccountResult is the outcome of create and update. On validation failure
// Account holds the rejected new account, or the unchanged stored one for an
// update, and Listing is empty.
type AccountResult struct {
	Account models.Account
	Users   []models.User
	Listing models.Listing
}

// DeleteResult is the outcome of delete. ShowIndex reports that the page
// rolled back or ended empty and the index view must replace the destroy
// view.
type DeleteResult struct {
	Account   models.Account
	Listing   models.Listing
	ShowIndex bool
}
