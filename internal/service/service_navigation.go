package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/store"
)

// PreviousKind classifies a navigation hint.
type PreviousKind int

const (
	// PreviousNone means no hint was given.
	PreviousNone PreviousKind = iota
	// PreviousAvailable means the hinted account is visible.
	PreviousAvailable
	// PreviousRemoved means the hinted account is gone or destroyed.
	PreviousRemoved
	// PreviousHidden means the hinted account exists but is no longer
	// visible to the user.
	PreviousHidden
)

func (k PreviousKind) String() string {
	switch k {
	case PreviousNone:
		return "none"
	case PreviousAvailable:
		return "available"
	case PreviousRemoved:
		return "removed"
	case PreviousHidden:
		return "hidden"
	}
	return fmt.Sprintf("previous(%d)", int(k))
}

// ResolvedPrevious is the outcome of a navigation hint. ID always carries
// the hinted id, even when the account can no longer be shown.
type ResolvedPrevious struct {
	Kind PreviousKind
	ID   int64
}

// Available reports whether the previous account may be shown.
func (p ResolvedPrevious) Available() bool {
	return p.Kind == PreviousAvailable
}

type navigationResolver struct {
	accounts store.AccountRepository

	logger *logger.Logger
}

func NewNavigationResolver(accounts store.AccountRepository, logger *logger.Logger) NavigationResolver {
	return &navigationResolver{
		accounts: accounts,
		logger:   logger,
	}
}

// Previous resolves the hinted predecessor of currentID. Stale hints are
// never an error; only storage failures are.
func (n *navigationResolver) Previous(ctx context.Context, userID, currentID int64, hint *int64) (ResolvedPrevious, error) {
	if hint == nil {
		return ResolvedPrevious{Kind: PreviousNone}, nil
	}

	log := logger.FromContext(ctx)

	previous := ResolvedPrevious{ID: *hint}

	account, err := n.accounts.GetAccount(ctx, *hint)
	switch {
	case errors.Is(err, store.ErrAccountNotFound):
		previous.Kind = PreviousRemoved
		return previous, nil
	case err != nil:
		log.Err(err).Str("func", "navigationResolver.Previous").
			Int64("current_id", currentID).
			Int64("previous_id", *hint).
			Msg("error loading previous account")
		return ResolvedPrevious{}, fmt.Errorf("error loading previous account: %w", err)
	}

	switch ResolveVisibility(userID, &account) {
	case Unavailable:
		previous.Kind = PreviousRemoved
	case Denied:
		previous.Kind = PreviousHidden
	default:
		previous.Kind = PreviousAvailable
	}

	log.Debug().Int64("current_id", currentID).Int64("previous_id", *hint).Stringer("previous", previous.Kind).Msg("previous account resolved")

	return previous, nil
}
