package store

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalSessionStore keeps the command-line client logged in between runs.
type LocalSessionStore interface {
	// Load returns the saved session or ErrLocalSessionNotFound.
	Load() (LocalSession, error)
	Save(session LocalSession) error
	Clear() error
}
