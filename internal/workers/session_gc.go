// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/store"
)

// SessionGC periodically reclaims space held by expired sessions.
type SessionGC struct {
	sessions store.SessionStore
	interval time.Duration
	logger   *logger.Logger
}

func NewSessionGC(sessions store.SessionStore, interval time.Duration, logger *logger.Logger) *SessionGC {
	return &SessionGC{sessions: sessions, interval: interval, logger: logger}
}

func (s *SessionGC) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("session gc started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("session gc stopped")
			return
		case <-ticker.C:
			if err := s.sessions.Collect(); err != nil {
				s.logger.Err(err).Str("func", "SessionGC.Run").Msg("session gc failed")
			}
		}
	}
}
