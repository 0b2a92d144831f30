package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v3"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

const (
	sessionKeyPrefix = "session:"
	gcDiscardRatio   = 0.5
)

// badgerSessionStore keeps sessions in a badger key/value database. Every
// save refreshes the entry TTL, so idle sessions expire on their own.
type badgerSessionStore struct {
	db     *badger.DB
	ttl    time.Duration
	logger *logger.Logger
}

// NewSessionStore opens the badger database described by cfg.
func NewSessionStore(cfg config.Sessions, log *logger.Logger) (SessionStore, error) {
	opts := badger.DefaultOptions(cfg.Dir)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpeningSessionStore, err)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Err(err).Str("func", "NewSessionStore").Msg("error opening session store")
		return nil, fmt.Errorf("%w: %w", ErrOpeningSessionStore, err)
	}

	log.Debug().
		Str("func", "NewSessionStore").
		Bool("in_memory", cfg.InMemory).
		Dur("ttl", cfg.TTL).
		Msg("session store opened")

	return &badgerSessionStore{
		db:     db,
		ttl:    cfg.TTL,
		logger: log,
	}, nil
}

func sessionKey(id string) []byte {
	return []byte(sessionKeyPrefix + id)
}

// Load returns the session stored under id, or a fresh empty session if
// none exists or it has expired.
func (s *badgerSessionStore) Load(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		return nil, ErrEmptySessionID
	}

	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(id))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return models.NewSession(id), nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "badgerSessionStore.Load").
			Str("session_id", id).
			Msg("failed to read session")
		return nil, fmt.Errorf("error reading session: %w", err)
	}

	session := models.NewSession(id)
	if err = json.Unmarshal(raw, &session.Values); err != nil {
		// an unreadable session is replaced, not fatal
		logger.FromContext(ctx).Warn().Err(err).
			Str("session_id", id).
			Msg("discarding undecodable session")
		return models.NewSession(id), nil
	}
	if session.Values == nil {
		session.Values = make(map[string]string)
	}

	return session, nil
}

// Save writes the session and resets its TTL.
func (s *badgerSessionStore) Save(ctx context.Context, session *models.Session) error {
	if session == nil || session.ID == "" {
		return ErrEmptySessionID
	}

	raw, err := json.Marshal(session.Values)
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(sessionKey(session.ID), raw)
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "badgerSessionStore.Save").
			Str("session_id", session.ID).
			Msg("failed to write session")
		return fmt.Errorf("error writing session: %w", err)
	}

	session.MarkClean()
	return nil
}

// Delete removes the session. Deleting an unknown session is not an error.
func (s *badgerSessionStore) Delete(ctx context.Context, id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(sessionKey(id))
	})
	if err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// Collect runs one round of value log garbage collection. Having nothing to
// rewrite, or running in memory, is not an error.
func (s *badgerSessionStore) Collect() error {
	err := s.db.RunValueLogGC(gcDiscardRatio)
	if err == nil || errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
		return nil
	}
	return fmt.Errorf("error collecting session store garbage: %w", err)
}

func (s *badgerSessionStore) Close() error {
	return s.db.Close()
}
