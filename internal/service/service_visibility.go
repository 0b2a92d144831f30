// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/models"
)

// Visibility is the outcome of a read-access check.
type Visibility int

const (
	// Visible means the user may read the account.
	Visible Visibility = iota
	// Unavailable means the account is absent or destroyed.
	Unavailable
	// Denied means the account exists but its access mode excludes the user.
	Denied
)

func (v Visibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case Unavailable:
		return "unavailable"
	case Denied:
		return "denied"
	}
	return fmt.Sprintf("visibility(%d)", int(v))
}

// ResolveVisibility decides whether userID may read account. The rules are
// applied in order: absent or destroyed, private to someone else, shared
// without userID, visible.
func ResolveVisibility(userID int64, account *models.Account) Visibility {
	if account == nil || account.Destroyed() {
		return Unavailable
	}

	if account.UserID == userID {
		return Visible
	}

	switch account.Access {
	case models.AccessPrivate:
		return Denied
	case models.AccessShared:
		if !account.SharedWithUser(userID) {
			return Denied
		}
	}

	return Visible
}

// CanView reports whether ResolveVisibility yields Visible.
func CanView(userID int64, account *models.Account) bool {
	return ResolveVisibility(userID, account) == Visible
}

// visibilityError folds both non-visible outcomes into ErrAccountUnavailable
// while keeping the cause in the chain.
func visibilityError(v Visibility) error {
	switch v {
	case Unavailable:
		return fmt.Errorf("%w: %w", ErrAccountUnavailable, store.ErrAccountNotFound)
	case Denied:
		return fmt.Errorf("%w: %w", ErrAccountUnavailable, ErrAccessDenied)
	}
	return nil
}
