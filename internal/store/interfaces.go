package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-accounts/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AccountRepository is the persistence collaborator of the listing engine.
type AccountRepository interface {
	Candidates(ctx context.Context, userID int64) ([]models.Account, error)
	GetAccount(ctx context.Context, id int64) (models.Account, error)
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
	UpdateAccount(ctx context.Context, update models.AccountUpdate) error
	DeleteAccount(ctx context.Context, id int64) error
	TouchLastViewed(ctx context.Context, id int64, at time.Time) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, user models.User) (models.User, error)
	ListUsersExcept(ctx context.Context, userID int64) ([]models.User, error)
}

// PreferenceRepository is a per-user key to encoded-value mapping.
type PreferenceRepository interface {
	GetPreferences(ctx context.Context, userID int64, names ...string) (map[string]string, error)
	SavePreferences(ctx context.Context, userID int64, values map[string]string) error
}

type ActivityRepository interface {
	LogActivity(ctx context.Context, activity models.Activity) error
}

type ContactRepository interface {
	GetContact(ctx context.Context, id int64) (models.Contact, error)
}

// SessionStore persists request sessions between requests.
type SessionStore interface {
	Load(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
	// Collect reclaims space held by expired sessions.
	Collect() error
	Close() error
}
