// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"maps"
	"strconv"
)

// Session is the per-login key/value state that survives between requests:
// pagination cursors, flash messages and small UI markers.
//
// It is loaded once per request, mutated in memory and written back by the
// HTTP layer only when Dirty reports a change.
type Session struct {
	ID     string            `json:"id"`
	Values map[string]string `json:"values"`

	dirty bool
}

// NewSession returns an empty session with the given id.
func NewSession(id string) *Session {
	return &Session{ID: id, Values: make(map[string]string)}
}

// Get returns the value stored under key.
func (s *Session) Get(key string) (string, bool) {
	v, ok := s.Values[key]
	return v, ok
}

// Set stores value under key and marks the session dirty.
func (s *Session) Set(key, value string) {
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	if old, ok := s.Values[key]; ok && old == value {
		return
	}
	s.Values[key] = value
	s.dirty = true
}

// Delete removes key from the session.
func (s *Session) Delete(key string) {
	if _, ok := s.Values[key]; !ok {
		return
	}
	delete(s.Values, key)
	s.dirty = true
}

// Take returns the value under key and removes it. Used for flash messages.
func (s *Session) Take(key string) (string, bool) {
	v, ok := s.Get(key)
	if ok {
		s.Delete(key)
	}
	return v, ok
}

// Dirty reports whether the session changed since it was loaded.
func (s *Session) Dirty() bool {
	return s.dirty
}

// MarkClean resets the dirty flag after the session has been persisted.
func (s *Session) MarkClean() {
	s.dirty = false
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	return &Session{ID: s.ID, Values: maps.Clone(s.Values), dirty: s.dirty}
}

// Owner returns the user the session was opened for. A session without an
// owner was never opened by a login or has been closed.
func (s *Session) Owner() (int64, bool) {
	raw, ok := s.Get(SessionOwnerKey)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return userID, true
}

// SetOwner binds the session to userID.
func (s *Session) SetOwner(userID int64) {
	s.Set(SessionOwnerKey, strconv.FormatInt(userID, 10))
}

// SessionOwnerKey holds the id of the user a session was opened for.
const SessionOwnerKey = "owner_id"

// Flash keys stored in the session.
const (
	FlashWarning = "flash_warning"
	FlashNotice  = "flash_notice"
)
