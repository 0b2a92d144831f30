// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/internal/validators"
	"github.com/MKhiriev/go-accounts/models"
)

const (
	// AutoCompleteKey marks in the session which listing the last
	// auto-complete request was served from.
	AutoCompleteKey = "auto_complete"

	relatedContactPrefix = "contact_"
	activitySubject      = "Account"
)

// accountService composes the listing engine with the repositories.
// Every operation that produces a listing goes through AssembleListing.
type accountService struct {
	accounts   store.AccountRepository
	users      store.UserRepository
	activities store.ActivityRepository
	contacts   store.ContactRepository

	preferences PreferenceResolver
	navigation  NavigationResolver
	validator   validators.Validator

	autoCompleteLimit int

	logger *logger.Logger
}

// NewAccountService wires an AccountService to the repositories in storages.
// Listing defaults and the auto-complete limit come from cfg.
func NewAccountService(storages *store.Storages, cfg config.Listing, logger *logger.Logger) AccountService {
	logger.Debug().Msg("creating account service")

	return &accountService{
		accounts:          storages.AccountRepository,
		users:             storages.UserRepository,
		activities:        storages.ActivityRepository,
		contacts:          storages.ContactRepository,
		preferences:       NewPreferenceResolver(storages.PreferenceRepository, cfg, logger),
		navigation:        NewNavigationResolver(storages.AccountRepository, logger),
		validator:         validators.NewAccountValidator(),
		autoCompleteLimit: cfg.AutoCompleteLimit,
		logger:            logger,
	}
}

// List returns one page of the accounts visible to the user. Page and query
// fall back to the session cursors and are written back to them.
func (s *accountService) List(ctx context.Context, scope models.RequestScope, params models.ListParams) (models.Listing, error) {
	page := ResolvePage(scope.Session, ResourceAccounts, params.Page)
	query := ResolveQuery(scope.Session, ResourceAccounts, params.Query)

	return s.listAt(ctx, scope, page, query)
}

// Search stores query as the current query and lists its first page.
func (s *accountService) Search(ctx context.Context, scope models.RequestScope, query string) (models.Listing, error) {
	first := 1
	return s.List(ctx, scope, models.ListParams{Page: &first, Query: &query})
}

// Show returns a visible account, refreshes its last viewed time and logs
// the view. Absent, destroyed and hidden accounts are ErrAccountUnavailable.
func (s *accountService) Show(ctx context.Context, scope models.RequestScope, id int64) (models.Account, error) {
	log := logger.FromContext(ctx)

	account, err := s.visibleAccount(ctx, scope.UserID, id)
	if err != nil {
		return models.Account{}, err
	}

	now := time.Now().UTC()
	if err = s.accounts.TouchLastViewed(ctx, account.ID, now); err != nil {
		log.Warn().Err(err).Int64("account_id", account.ID).Msg("error touching last viewed time")
	} else {
		account.LastViewedAt = &now
	}

	s.logActivity(ctx, scope.UserID, account.ID, models.ActionViewed)

	return account, nil
}

// New prepares an unsaved account owned by the user. related may name a
// contact as "contact_<id>"; an unknown contact is ignored.
func (s *accountService) New(ctx context.Context, scope models.RequestScope, related string) (AccountForm, error) {
	log := logger.FromContext(ctx)

	users, err := s.otherUsers(ctx, scope.UserID)
	if err != nil {
		return AccountForm{}, err
	}

	form := AccountForm{
		Account: models.Account{UserID: scope.UserID, Access: models.AccessPublic},
		Users:   users,
	}

	contactID, ok := parseRelatedContact(related)
	if !ok {
		return form, nil
	}

	contact, err := s.contacts.GetContact(ctx, contactID)
	switch {
	case errors.Is(err, store.ErrContactNotFound):
		log.Debug().Int64("contact_id", contactID).Msg("related contact not found")
	case err != nil:
		log.Err(err).Str("func", "accountService.New").Int64("contact_id", contactID).Msg("error loading related contact")
		return AccountForm{}, fmt.Errorf("error loading related contact: %w", err)
	default:
		form.Related = &contact
	}

	return form, nil
}

// Edit loads a visible account for editing together with the users it can
// be shared with and the resolved previous hint.
func (s *accountService) Edit(ctx context.Context, scope models.RequestScope, id int64, previous *int64) (AccountForm, error) {
	account, err := s.visibleAccount(ctx, scope.UserID, id)
	if err != nil {
		return AccountForm{}, err
	}

	users, err := s.otherUsers(ctx, scope.UserID)
	if err != nil {
		return AccountForm{}, err
	}

	resolved, err := s.navigation.Previous(ctx, scope.UserID, id, previous)
	if err != nil {
		return AccountForm{}, err
	}

	return AccountForm{Account: account, Users: users, Previous: resolved}, nil
}

// Create validates and stores a new account owned by the user, then relists
// the current page so the caller can refresh pagination.
func (s *accountService) Create(ctx context.Context, scope models.RequestScope, request models.AccountRequest) (AccountResult, error) {
	log := logger.FromContext(ctx)

	users, err := s.otherUsers(ctx, scope.UserID)
	if err != nil {
		return AccountResult{}, err
	}

	account := applyRequest(models.Account{UserID: scope.UserID, Access: models.AccessPublic}, request)

	if err = s.validator.Validate(ctx, account); err != nil {
		log.Debug().Err(err).Msg("rejected account on create")
		return AccountResult{Account: account, Users: users}, fmt.Errorf("%w: %w", ErrInvalidAccount, err)
	}

	created, err := s.accounts.CreateAccount(ctx, account)
	if err != nil {
		log.Err(err).Str("func", "accountService.Create").Msg("error creating account")
		return AccountResult{}, fmt.Errorf("error creating account: %w", err)
	}

	s.logActivity(ctx, scope.UserID, created.ID, models.ActionCreated)

	result := AccountResult{Account: created, Users: users}
	if scope.Mode == models.Export {
		return result, nil
	}

	result.Listing, err = s.listAt(ctx, scope, CurrentPage(scope.Session, ResourceAccounts), CurrentQuery(scope.Session, ResourceAccounts))
	if err != nil {
		return AccountResult{}, err
	}

	return result, nil
}

// Update applies a partial update to a visible account. Setting access to
// Shared replaces the permission list with request.Users when they are
// given and keeps it otherwise; any other access mode clears it.
func (s *accountService) Update(ctx context.Context, scope models.RequestScope, id int64, request models.AccountRequest) (AccountResult, error) {
	log := logger.FromContext(ctx)

	current, err := s.visibleAccount(ctx, scope.UserID, id)
	if err != nil {
		return AccountResult{}, err
	}

	users, err := s.otherUsers(ctx, scope.UserID)
	if err != nil {
		return AccountResult{}, err
	}

	if err = s.validator.Validate(ctx, request); err != nil {
		log.Debug().Err(err).Int64("account_id", id).Msg("rejected account on update")
		return AccountResult{Account: current, Users: users}, fmt.Errorf("%w: %w", ErrInvalidAccount, err)
	}

	err = s.accounts.UpdateAccount(ctx, updateFromRequest(current, request))
	switch {
	case errors.Is(err, store.ErrAccountNotFound):
		return AccountResult{}, fmt.Errorf("%w: %w", ErrAccountUnavailable, err)
	case err != nil:
		log.Err(err).Str("func", "accountService.Update").Int64("account_id", id).Msg("error updating account")
		return AccountResult{}, fmt.Errorf("error updating account: %w", err)
	}

	updated, err := s.accounts.GetAccount(ctx, id)
	if err != nil {
		log.Err(err).Str("func", "accountService.Update").Int64("account_id", id).Msg("error reloading account")
		return AccountResult{}, fmt.Errorf("error reloading account: %w", err)
	}

	s.logActivity(ctx, scope.UserID, id, models.ActionUpdated)

	result := AccountResult{Account: updated, Users: users}
	if scope.Mode == models.Export {
		return result, nil
	}

	result.Listing, err = s.listAt(ctx, scope, CurrentPage(scope.Session, ResourceAccounts), CurrentQuery(scope.Session, ResourceAccounts))
	if err != nil {
		return AccountResult{}, err
	}

	return result, nil
}

// Delete destroys a visible account and relists the stored page, stepping
// the page back once if it came out empty.
func (s *accountService) Delete(ctx context.Context, scope models.RequestScope, id int64) (DeleteResult, error) {
	log := logger.FromContext(ctx)

	account, err := s.visibleAccount(ctx, scope.UserID, id)
	if err != nil {
		return DeleteResult{}, err
	}

	err = s.accounts.DeleteAccount(ctx, id)
	switch {
	case errors.Is(err, store.ErrAccountNotFound):
		return DeleteResult{}, fmt.Errorf("%w: %w", ErrAccountUnavailable, err)
	case err != nil:
		log.Err(err).Str("func", "accountService.Delete").Int64("account_id", id).Msg("error deleting account")
		return DeleteResult{}, fmt.Errorf("error deleting account: %w", err)
	}

	s.logActivity(ctx, scope.UserID, id, models.ActionDeleted)

	result := DeleteResult{Account: account}
	if scope.Mode == models.Export {
		return result, nil
	}

	prefs, candidates, err := s.listingSource(ctx, scope.UserID)
	if err != nil {
		return DeleteResult{}, err
	}

	query := CurrentQuery(scope.Session, ResourceAccounts)
	result.Listing, result.ShowIndex, err = RollbackAfterDelete(scope.Session, ResourceAccounts, func(page int) (models.Listing, error) {
		return AssembleListing(candidates, ListRequest{
			UserID:      scope.UserID,
			Page:        page,
			Query:       query,
			Preferences: prefs,
			Mode:        scope.Mode,
		}), nil
	})
	if err != nil {
		return DeleteResult{}, err
	}

	return result, nil
}

// AutoComplete returns up to the configured number of visible accounts
// whose name matches query, ordered by name.
func (s *accountService) AutoComplete(ctx context.Context, scope models.RequestScope, query string) ([]models.Account, error) {
	if scope.Session != nil {
		scope.Session.Set(AutoCompleteKey, ResourceAccounts)
	}

	if len(queryTokens(query)) == 0 {
		return []models.Account{}, nil
	}

	candidates, err := s.candidates(ctx, scope.UserID)
	if err != nil {
		return nil, err
	}

	listing := AssembleListing(candidates, ListRequest{
		UserID:      scope.UserID,
		Query:       query,
		Preferences: models.ViewPreferences{SortBy: ResourceAccounts + ".name ASC"},
		Mode:        models.Export,
	})

	matches := listing.Accounts
	if s.autoCompleteLimit > 0 && len(matches) > s.autoCompleteLimit {
		matches = matches[:s.autoCompleteLimit]
	}

	return matches, nil
}

// Options returns the preferences shown in the options form.
func (s *accountService) Options(ctx context.Context, scope models.RequestScope) (models.ViewPreferences, error) {
	return s.preferences.Resolve(ctx, scope.UserID, ResourceAccounts)
}

// Redraw stores new view preferences, resets the page cursor to 1 and lists
// the first page under the new preferences.
func (s *accountService) Redraw(ctx context.Context, scope models.RequestScope, request models.RedrawRequest) (models.Listing, error) {
	if _, err := s.preferences.Save(ctx, scope.UserID, ResourceAccounts, request); err != nil {
		return models.Listing{}, err
	}

	SetPage(scope.Session, ResourceAccounts, 1)

	return s.listAt(ctx, scope, 1, CurrentQuery(scope.Session, ResourceAccounts))
}

func (s *accountService) listAt(ctx context.Context, scope models.RequestScope, page int, query string) (models.Listing, error) {
	prefs, candidates, err := s.listingSource(ctx, scope.UserID)
	if err != nil {
		return models.Listing{}, err
	}

	return AssembleListing(candidates, ListRequest{
		UserID:      scope.UserID,
		Page:        page,
		Query:       query,
		Preferences: prefs,
		Mode:        scope.Mode,
	}), nil
}

func (s *accountService) listingSource(ctx context.Context, userID int64) (models.ViewPreferences, []models.Account, error) {
	prefs, err := s.preferences.Resolve(ctx, userID, ResourceAccounts)
	if err != nil {
		return models.ViewPreferences{}, nil, err
	}

	candidates, err := s.candidates(ctx, userID)
	if err != nil {
		return models.ViewPreferences{}, nil, err
	}

	return prefs, candidates, nil
}

func (s *accountService) candidates(ctx context.Context, userID int64) ([]models.Account, error) {
	candidates, err := s.accounts.Candidates(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "accountService.candidates").Int64("user_id", userID).Msg("error loading accounts")
		return nil, fmt.Errorf("error loading accounts: %w", err)
	}
	return candidates, nil
}

// visibleAccount loads id and checks that userID may read it.
func (s *accountService) visibleAccount(ctx context.Context, userID, id int64) (models.Account, error) {
	log := logger.FromContext(ctx)

	account, err := s.accounts.GetAccount(ctx, id)
	switch {
	case errors.Is(err, store.ErrAccountNotFound):
		log.Debug().Int64("account_id", id).Msg("account not found")
		return models.Account{}, fmt.Errorf("%w: %w", ErrAccountUnavailable, err)
	case err != nil:
		log.Err(err).Str("func", "accountService.visibleAccount").Int64("account_id", id).Msg("error loading account")
		return models.Account{}, fmt.Errorf("error loading account: %w", err)
	}

	if v := ResolveVisibility(userID, &account); v != Visible {
		log.Debug().Int64("account_id", id).Int64("user_id", userID).Stringer("visibility", v).Msg("account not visible")
		return models.Account{}, visibilityError(v)
	}

	return account, nil
}

func (s *accountService) otherUsers(ctx context.Context, userID int64) ([]models.User, error) {
	users, err := s.users.ListUsersExcept(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "accountService.otherUsers").Msg("error listing users")
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

// logActivity records an activity entry. Failures are logged and dropped.
func (s *accountService) logActivity(ctx context.Context, userID, accountID int64, action models.ActivityAction) {
	err := s.activities.LogActivity(ctx, models.Activity{
		UserID:      userID,
		SubjectType: activitySubject,
		SubjectID:   accountID,
		Action:      action,
	})
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Int64("account_id", accountID).
			Str("action", string(action)).
			Msg("error logging activity")
	}
}

func parseRelatedContact(related string) (int64, bool) {
	raw, ok := strings.CutPrefix(related, relatedContactPrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// applyRequest copies the fields present in request onto account.
func applyRequest(account models.Account, request models.AccountRequest) models.Account {
	if request.Name != nil {
		account.Name = *request.Name
	}
	if request.Access != nil {
		account.Access = *request.Access
	}
	if request.Website != nil {
		account.Website = *request.Website
	}
	if request.Phone != nil {
		account.Phone = *request.Phone
	}
	if request.Email != nil {
		account.Email = *request.Email
	}
	if request.Notes != nil {
		account.Notes = *request.Notes
	}

	if account.Access == models.AccessShared {
		if request.Users != nil {
			account.SharedWith = request.Users
		}
	} else {
		account.SharedWith = nil
	}

	return account
}

// updateFromRequest builds the partial update of current described by
// request, including the permission change implied by the access mode.
func updateFromRequest(current models.Account, request models.AccountRequest) models.AccountUpdate {
	update := models.AccountUpdate{
		ID:      current.ID,
		Name:    request.Name,
		Access:  request.Access,
		Website: request.Website,
		Phone:   request.Phone,
		Email:   request.Email,
		Notes:   request.Notes,
	}

	access := current.Access
	if request.Access != nil {
		access = *request.Access
	}

	switch {
	case access == models.AccessShared && request.Users != nil:
		shared := request.Users
		update.SharedWith = &shared
	case access == models.AccessShared && current.Access != models.AccessShared:
		update.SharedWith = &[]int64{}
	case access != models.AccessShared && current.Access == models.AccessShared:
		update.SharedWith = &[]int64{}
	}

	return update
}
