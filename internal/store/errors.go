package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same login already exists in the database.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrAccountNotFound is returned when an account id matches no row, or
	// when a write targets an account that has already been destroyed.
	ErrAccountNotFound = errors.New("account was not found")

	// ErrAccountNotSaved is returned when an INSERT of an account completes
	// without error but yields no identifier.
	ErrAccountNotSaved = errors.New("account was not saved")

	// ErrContactNotFound is returned when a contact id matches no row.
	ErrContactNotFound = errors.New("contact was not found")

	// ErrUnknownDriver is returned when the configured database driver is
	// neither PostgreSQL nor SQLite.
	ErrUnknownDriver = errors.New("unknown database driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)

// Session store errors.
var (
	// ErrOpeningSessionStore is returned when the badger database backing the
	// session store cannot be opened.
	ErrOpeningSessionStore = errors.New("failed to open session store")

	// ErrEmptySessionID is returned when a session without an id is saved.
	ErrEmptySessionID = errors.New("session id is empty")
)
