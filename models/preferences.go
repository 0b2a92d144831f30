// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// Preference is a single stored user preference. Value holds the encoded
// form produced by the preference resolver, never the raw value.
type Preference struct {
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ViewPreferences are the resolved display parameters of one resource listing.
type ViewPreferences struct {
	// PerPage is the page size.
	PerPage int `json:"per_page"`

	// Outline is the display density, "brief" or "long".
	Outline string `json:"outline"`

	// SortBy is the qualified ordering key, e.g. "accounts.name ASC".
	SortBy string `json:"sort_by"`
}

// SortField returns the bare column of SortBy, e.g. "name" for
// "accounts.name ASC".
func (p ViewPreferences) SortField() string {
	column, _ := p.SortColumn()
	return column
}

// SortColumn splits SortBy into its bare column and direction.
func (p ViewPreferences) SortColumn() (column string, desc bool) {
	fields := strings.Fields(p.SortBy)
	if len(fields) == 0 {
		return "", false
	}

	column = fields[0]
	if i := strings.LastIndex(column, "."); i >= 0 {
		column = column[i+1:]
	}
	if len(fields) > 1 && strings.EqualFold(fields[1], "DESC") {
		desc = true
	}
	return column, desc
}

// RedrawRequest carries the preferences chosen in the options form.
// Zero values mean "keep what is stored".
type RedrawRequest struct {
	PerPage int    `json:"per_page"`
	Outline string `json:"outline"`
	SortBy  string `json:"sort_by"`
}
