package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrSessionClosed is returned for a token whose server-side session
	// was closed by logout, expired or never opened.
	ErrSessionClosed = errors.New("session is closed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrAccountUnavailable is returned for an account that does not exist,
	// was destroyed or is hidden from the requesting user. The cause is
	// wrapped for logging but callers must not tell the cases apart.
	ErrAccountUnavailable = errors.New("account is unavailable")

	// ErrAccessDenied marks an existing account the user may not read.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidAccount is returned when create or update input fails
	// validation. The validation errors are wrapped alongside.
	ErrInvalidAccount = errors.New("invalid account")
)

// Command-line client errors.
var (
	ErrRegisterOnServer = errors.New("registration on server failed")
	ErrLoginOnServer    = errors.New("login on server failed")

	// ErrNotLoggedIn is returned when the client has no usable token.
	ErrNotLoggedIn = errors.New("not logged in")
)
