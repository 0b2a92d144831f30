// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-accounts/models"
)

// ListRequest is the resolved input of AssembleListing.
type ListRequest struct {
	UserID      int64
	Page        int
	Query       string
	Preferences models.ViewPreferences
	Mode        models.OutputMode
}

// AssembleListing filters candidates by visibility and query, orders them by
// the preferred sort key and cuts out the requested page. In Export mode the
// whole ordered set is returned. A page past the end is empty.
func AssembleListing(candidates []models.Account, req ListRequest) models.Listing {
	tokens := queryTokens(req.Query)

	visible := make([]models.Account, 0, len(candidates))
	for i := range candidates {
		if !CanView(req.UserID, &candidates[i]) {
			continue
		}
		if !matchesTokens(candidates[i].Name, tokens) {
			continue
		}
		visible = append(visible, candidates[i])
	}

	column, desc := req.Preferences.SortColumn()
	slices.SortStableFunc(visible, func(a, b models.Account) int {
		c := compareBy(column, &a, &b)
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	page := max(req.Page, 1)
	perPage := req.Preferences.PerPage
	if perPage < 1 {
		perPage = max(len(visible), 1)
	}

	listing := models.Listing{
		Page:        page,
		PerPage:     perPage,
		Total:       len(visible),
		TotalPages:  (len(visible) + perPage - 1) / perPage,
		Query:       req.Query,
		Preferences: req.Preferences,
		Mode:        req.Mode,
	}

	if req.Mode == models.Export {
		listing.Accounts = visible
		return listing
	}

	start := (page - 1) * perPage
	if start >= len(visible) {
		listing.Accounts = []models.Account{}
		return listing
	}
	listing.Accounts = visible[start:min(start+perPage, len(visible))]

	return listing
}

// queryTokens splits a search query into lower-cased words of letters and
// digits. Punctuation never has to match.
func queryTokens(query string) []string {
	return strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func matchesTokens(name string, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	name = strings.ToLower(name)
	for _, token := range tokens {
		if !strings.Contains(name, token) {
			return false
		}
	}
	return true
}

// compareBy orders a and b ascending by one of the sortDirections columns.
// Anything else orders by name.
func compareBy(column string, a, b *models.Account) int {
	switch column {
	case "created_at":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "updated_at":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
}
