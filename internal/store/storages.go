package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
)

// Storages bundles every repository the services depend on.
type Storages struct {
	AccountRepository    AccountRepository
	UserRepository       UserRepository
	PreferenceRepository PreferenceRepository
	ActivityRepository   ActivityRepository
	ContactRepository    ContactRepository
	SessionStore         SessionStore

	db *DB
}

// NewStorages connects the configured database, applies migrations and opens
// the session store.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting database: %w", err)
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error migrating database")
		db.Close()
		return nil, err
	}

	sessions, err := NewSessionStore(cfg.Sessions, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storages{
		AccountRepository:    NewAccountRepository(db, log),
		UserRepository:       NewUserRepository(db, log),
		PreferenceRepository: NewPreferenceRepository(db, log),
		ActivityRepository:   NewActivityRepository(db, log),
		ContactRepository:    NewContactRepository(db, log),
		SessionStore:         sessions,
		db:                   db,
	}, nil
}

// Close releases the session store and the database connection.
func (s *Storages) Close() error {
	var err error
	if s.SessionStore != nil {
		err = errors.Join(err, s.SessionStore.Close())
	}
	if s.db != nil {
		err = errors.Join(err, s.db.Close())
	}
	return err
}
