// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/models"
)

const (
	perPageSuffix = "_per_page"
	outlineSuffix = "_outline"
	sortBySuffix  = "_sort_by"

	preferenceVersion = "v1:"
)

var errUnknownPreferenceVersion = errors.New("unknown preference encoding version")

// sortDirections lists the sortable columns and the direction each one is
// stored with.
var sortDirections = map[string]string{
	"name":       "ASC",
	"created_at": "DESC",
	"updated_at": "DESC",
}

// preferenceResolver reads and writes the three view preferences of a
// resource listing. Stored values that are missing, undecodable or out of
// range are replaced by the configured defaults.
type preferenceResolver struct {
	preferences store.PreferenceRepository
	defaults    config.Listing

	logger *logger.Logger
}

func NewPreferenceResolver(preferences store.PreferenceRepository, defaults config.Listing, logger *logger.Logger) PreferenceResolver {
	return &preferenceResolver{
		preferences: preferences,
		defaults:    defaults,
		logger:      logger,
	}
}

// Resolve returns the view preferences userID has stored for resource,
// falling back to system defaults per key.
func (p *preferenceResolver) Resolve(ctx context.Context, userID int64, resource string) (models.ViewPreferences, error) {
	log := logger.FromContext(ctx)

	stored, err := p.preferences.GetPreferences(ctx, userID, preferenceNames(resource)...)
	if err != nil {
		log.Err(err).Str("func", "preferenceResolver.Resolve").Int64("user_id", userID).Msg("error loading preferences")
		return models.ViewPreferences{}, fmt.Errorf("error loading preferences: %w", err)
	}

	prefs := p.defaultsFor(resource)

	var perPage int
	if ok := decodeStored(stored, resource+perPageSuffix, &perPage, log); ok && perPage > 0 {
		prefs.PerPage = perPage
	}

	var outline string
	if ok := decodeStored(stored, resource+outlineSuffix, &outline, log); ok && validOutline(outline) {
		prefs.Outline = outline
	}

	var sortBy string
	if ok := decodeStored(stored, resource+sortBySuffix, &sortBy, log); ok {
		if qualified, known := qualifySortKey(resource, sortBy); known {
			prefs.SortBy = qualified
		}
	}

	return prefs, nil
}

// Save applies req on top of the currently resolved preferences and writes
// all three values back. Unknown sort fields, unknown outlines and
// non-positive page sizes keep the value already in effect.
func (p *preferenceResolver) Save(ctx context.Context, userID int64, resource string, req models.RedrawRequest) (models.ViewPreferences, error) {
	log := logger.FromContext(ctx)

	prefs, err := p.Resolve(ctx, userID, resource)
	if err != nil {
		return models.ViewPreferences{}, err
	}

	if req.PerPage > 0 {
		prefs.PerPage = req.PerPage
	}
	if validOutline(req.Outline) {
		prefs.Outline = req.Outline
	}
	if qualified, known := qualifySortKey(resource, req.SortBy); known {
		prefs.SortBy = qualified
	}

	values := make(map[string]string, 3)
	for name, value := range map[string]any{
		resource + perPageSuffix: prefs.PerPage,
		resource + outlineSuffix: prefs.Outline,
		resource + sortBySuffix:  prefs.SortBy,
	} {
		encoded, err := encodePreference(value)
		if err != nil {
			log.Err(err).Str("func", "preferenceResolver.Save").Str("name", name).Msg("error encoding preference")
			return models.ViewPreferences{}, fmt.Errorf("error encoding preference %s: %w", name, err)
		}
		values[name] = encoded
	}

	if err = p.preferences.SavePreferences(ctx, userID, values); err != nil {
		log.Err(err).Str("func", "preferenceResolver.Save").Int64("user_id", userID).Msg("error saving preferences")
		return models.ViewPreferences{}, fmt.Errorf("error saving preferences: %w", err)
	}

	return prefs, nil
}

func (p *preferenceResolver) defaultsFor(resource string) models.ViewPreferences {
	return models.ViewPreferences{
		PerPage: p.defaults.PerPage,
		Outline: p.defaults.Outline,
		SortBy:  resource + ".name ASC",
	}
}

func preferenceNames(resource string) []string {
	return []string{resource + perPageSuffix, resource + outlineSuffix, resource + sortBySuffix}
}

// decodeStored decodes stored[name] into dst. A value that is present but
// cannot be decoded is logged and reported as absent.
func decodeStored(stored map[string]string, name string, dst any, log *logger.Logger) bool {
	raw, ok := stored[name]
	if !ok {
		return false
	}
	if err := decodePreference(raw, dst); err != nil {
		log.Warn().Err(err).Str("name", name).Msg("ignoring undecodable preference")
		return false
	}
	return true
}

// encodePreference serializes value as "v1:" followed by base64 of its JSON.
func encodePreference(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return preferenceVersion + base64.StdEncoding.EncodeToString(data), nil
}

func decodePreference(raw string, dst any) error {
	payload, ok := strings.CutPrefix(raw, preferenceVersion)
	if !ok {
		return errUnknownPreferenceVersion
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

// qualifySortKey turns a bare or qualified sort field into the stored form,
// e.g. "name" into "accounts.name ASC". Only the column is taken from field:
// the table is always resource and the direction always comes from
// sortDirections, so "accounts.name DESC" is stored as "accounts.name ASC".
func qualifySortKey(resource, field string) (string, bool) {
	column := models.ViewPreferences{SortBy: field}.SortField()
	direction, ok := sortDirections[column]
	if !ok {
		return "", false
	}
	return resource + "." + column + " " + direction, true
}

func validOutline(outline string) bool {
	return outline == config.OutlineBrief || outline == config.OutlineLong
}
