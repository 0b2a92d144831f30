// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// OutputMode selects between a rendered page and a complete data export.
type OutputMode int

const (
	// Paged returns one page of the listing for the default representation.
	Paged OutputMode = iota
	// Export returns the whole filtered and ordered set.
	Export
)

// Listing is one assembled view over the accounts a user may see.
type Listing struct {
	Accounts    []Account       `json:"accounts"`
	Page        int             `json:"page"`
	PerPage     int             `json:"per_page"`
	Total       int             `json:"total"`
	TotalPages  int             `json:"total_pages"`
	Query       string          `json:"query,omitempty"`
	Preferences ViewPreferences `json:"preferences"`
	Mode        OutputMode      `json:"-"`
}

// Empty reports whether the listing carries no accounts.
func (l Listing) Empty() bool {
	return len(l.Accounts) == 0
}

// ListParams are the optional request parameters of a listing operation.
// Nil means "not supplied in this request".
type ListParams struct {
	Page  *int
	Query *string
}

// RequestScope is the per-request context the account operations run in.
type RequestScope struct {
	UserID  int64
	Session *Session
	Mode    OutputMode
}
