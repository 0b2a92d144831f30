package store

import (
	"fmt"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/adrg/xdg"
)

const localSessionFile = "go-accounts/session.json"

// ClientStorages groups the command-line client's local state.
type ClientStorages struct {
	LocalSessionStore LocalSessionStore
}

// NewClientStorages opens the client state under the XDG state directory.
func NewClientStorages(logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new client storages...")

	path, err := xdg.StateFile(localSessionFile)
	if err != nil {
		return nil, fmt.Errorf("resolve local session path: %w", err)
	}

	return &ClientStorages{
		LocalSessionStore: NewFileSessionStore(path),
	}, nil
}
