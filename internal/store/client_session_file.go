package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrLocalSessionNotFound is returned when the client has never logged in
// or has logged out.
var ErrLocalSessionNotFound = errors.New("local session not found")

// LocalSession is what the client remembers about its login.
type LocalSession struct {
	UserID int64     `json:"user_id"`
	Login  string    `json:"login"`
	Token  string    `json:"token"`
	At     time.Time `json:"at"`
}

type fileSessionStore struct {
	path string
	mu   sync.Mutex
}

// NewFileSessionStore stores the session as JSON at path, readable by the
// owner only.
func NewFileSessionStore(path string) LocalSessionStore {
	return &fileSessionStore{path: path}
}

func (s *fileSessionStore) Load() (LocalSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return LocalSession{}, ErrLocalSessionNotFound
		}
		return LocalSession{}, fmt.Errorf("read local session file: %w", err)
	}

	var session LocalSession
	if err = json.Unmarshal(data, &session); err != nil {
		return LocalSession{}, fmt.Errorf("decode local session file: %w", err)
	}
	if session.Token == "" {
		return LocalSession{}, ErrLocalSessionNotFound
	}

	return session, nil
}

func (s *fileSessionStore) Save(session LocalSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create local session dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local session: %w", err)
	}

	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write local session file: %w", err)
	}

	return nil
}

func (s *fileSessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove local session file: %w", err)
	}
	return nil
}
