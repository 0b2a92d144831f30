// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/xml"
	"slices"
	"time"
)

// AccessMode describes who besides the owner may read an account.
type AccessMode string

const (
	// AccessPublic makes the account readable by every user.
	AccessPublic AccessMode = "Public"
	// AccessPrivate restricts the account to its owner.
	AccessPrivate AccessMode = "Private"
	// AccessShared restricts the account to its owner and the users listed
	// in [Account.SharedWith].
	AccessShared AccessMode = "Shared"
)

// Valid reports whether m is one of the known access modes.
func (m AccessMode) Valid() bool {
	switch m {
	case AccessPublic, AccessPrivate, AccessShared:
		return true
	}
	return false
}

// Account is the shared record the listing engine filters, orders and pages.
//
// Accounts are soft-deleted: a destroyed account keeps its row with DeletedAt
// set and never becomes visible again.
type Account struct {
	XMLName xml.Name `json:"-" xml:"account"`

	// ID is the database identifier of the account.
	ID int64 `json:"id" xml:"id"`

	// UserID is the identifier of the owning user.
	UserID int64 `json:"user_id" xml:"user-id"`

	// Name is the display name used for searching and default ordering.
	Name string `json:"name" xml:"name"`

	// Access is the visibility mode of the account.
	Access AccessMode `json:"access" xml:"access"`

	// SharedWith lists the users granted read access when Access is Shared.
	SharedWith []int64 `json:"shared_with,omitempty" xml:"shared-with>user-id,omitempty"`

	Website string `json:"website,omitempty" xml:"website,omitempty"`
	Phone   string `json:"phone,omitempty" xml:"phone,omitempty"`
	Email   string `json:"email,omitempty" xml:"email,omitempty"`
	Notes   string `json:"notes,omitempty" xml:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at" xml:"created-at"`
	UpdatedAt time.Time `json:"updated_at" xml:"updated-at"`

	// LastViewedAt is refreshed every time the account is shown to a user.
	LastViewedAt *time.Time `json:"last_viewed_at,omitempty" xml:"last-viewed-at,omitempty"`

	// DeletedAt is set once the account is destroyed.
	DeletedAt *time.Time `json:"-" xml:"-"`
}

// Destroyed reports whether the account has been deleted.
func (a *Account) Destroyed() bool {
	return a.DeletedAt != nil
}

// SharedWithUser reports whether userID is explicitly granted access.
func (a *Account) SharedWithUser(userID int64) bool {
	return slices.Contains(a.SharedWith, userID)
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}

// AccountRequest is the inbound payload of create and update operations.
// Users is only honoured when Access is Shared.
type AccountRequest struct {
	Name    *string     `json:"name,omitempty"`
	Access  *AccessMode `json:"access,omitempty"`
	Website *string     `json:"website,omitempty"`
	Phone   *string     `json:"phone,omitempty"`
	Email   *string     `json:"email,omitempty"`
	Notes   *string     `json:"notes,omitempty"`
	Users   []int64     `json:"users,omitempty"`
}

// AccountUpdate describes a partial update of one account.
// Only non-nil fields are written.
type AccountUpdate struct {
	ID int64

	Name    *string
	Access  *AccessMode
	Website *string
	Phone   *string
	Email   *string
	Notes   *string

	// SharedWith replaces the permission list when non-nil.
	SharedWith *[]int64
}

// AccountList wraps a slice of accounts for the XML export representation.
type AccountList struct {
	XMLName  xml.Name  `json:"-" xml:"accounts"`
	Accounts []Account `json:"accounts" xml:"account"`
}
