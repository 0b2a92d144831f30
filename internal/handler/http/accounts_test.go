// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/MKhiriev/go-accounts/internal/app"
	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/internal/validators"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unavailable() error {
	return fmt.Errorf("%w: %w", service.ErrAccountUnavailable, store.ErrAccountNotFound)
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// ─────────────────────────────────────────────
// list
// ─────────────────────────────────────────────

func TestListAccounts_HTML(t *testing.T) {
	ts := newTestServer(t)

	var got models.ListParams
	ts.accounts.listFn = func(_ context.Context, scope models.RequestScope, params models.ListParams) (models.Listing, error) {
		assert.Equal(t, testUserID, scope.UserID)
		assert.Equal(t, models.Paged, scope.Mode)
		require.NotNil(t, scope.Session)
		assert.Equal(t, testSessionID, scope.Session.ID)
		got = params
		return listingFixture(42), nil
	}

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/accounts?page=42&query=acme", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Acme")
	assert.Contains(t, rec.Body.String(), "Globex")
	assert.Contains(t, rec.Body.String(), `data-page="42"`)

	require.NotNil(t, got.Page)
	assert.Equal(t, 42, *got.Page)
	require.NotNil(t, got.Query)
	assert.Equal(t, "acme", *got.Query)
}

func TestListAccounts_AbsentAndInvalidParams(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantPage  bool
		wantQuery bool
	}{
		{name: "no params", target: "/accounts"},
		{name: "page is not a number", target: "/accounts?page=abc"},
		{name: "empty query is supplied", target: "/accounts?query=", wantQuery: true},
		{name: "page supplied", target: "/accounts?page=2", wantPage: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)

			var got models.ListParams
			ts.accounts.listFn = func(_ context.Context, _ models.RequestScope, params models.ListParams) (models.Listing, error) {
				got = params
				return listingFixture(1), nil
			}

			rec := ts.do(httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantPage, got.Page != nil)
			assert.Equal(t, tt.wantQuery, got.Query != nil)
		})
	}
}

func TestListAccounts_ExportJSON(t *testing.T) {
	ts := newTestServer(t)
	ts.accounts.listFn = func(_ context.Context, scope models.RequestScope, _ models.ListParams) (models.Listing, error) {
		assert.Equal(t, models.Export, scope.Mode)
		return listingFixture(1), nil
	}

	rec := ts.do(exportRequest(http.MethodGet, "/accounts", "application/json"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body models.AccountList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Accounts, 2)
	assert.Equal(t, "Acme", body.Accounts[0].Name)
}

func TestListAccounts_ExportXML(t *testing.T) {
	ts := newTestServer(t)
	ts.accounts.listFn = func(_ context.Context, _ models.RequestScope, _ models.ListParams) (models.Listing, error) {
		return listingFixture(1), nil
	}

	rec := ts.do(exportRequest(http.MethodGet, "/accounts", "application/xml"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")

	var body models.AccountList
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Accounts, 2)
	assert.Equal(t, "Globex", body.Accounts[1].Name)
}

func TestListAccounts_ServiceError(t *testing.T) {
	ts := newTestServer(t)
	ts.accounts.listFn = func(_ context.Context, _ models.RequestScope, _ models.ListParams) (models.Listing, error) {
		return models.Listing{}, store.ErrExecutingQuery
	}

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/accounts", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ─────────────────────────────────────────────
// search
// ─────────────────────────────────────────────

func TestSearchAccounts_XMLWithPunctuation(t *testing.T) {
	ts := newTestServer(t)

	var gotQuery string
	ts.accounts.searchFn = func(_ context.Context, _ models.RequestScope, query string) (models.Listing, error) {
		gotQuery = query
		listing := listingFixture(1)
		listing.Accounts = listing.Accounts[:1]
		return listing, nil
	}

	rec := ts.do(exportRequest(http.MethodGet, "/accounts/search?query="+url.QueryEscape("second?!"), "application/xml"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "second?!", gotQuery)
	assert.Contains(t, rec.Body.String(), "<accounts>")
}

// ─────────────────────────────────────────────
// show
// ─────────────────────────────────────────────

func TestShowAccount_HTML(t *testing.T) {
	ts := newTestServer(t)
	ts.accounts.showFn = func(_ context.Context, _ models.RequestScope, id int64) (models.Account, error) {
		assert.Equal(t, int64(7), id)
		return models.Account{ID: 7, Name: "Initech", Access: models.AccessPublic, Website: "https://initech.example"}, nil
	}

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/accounts/7", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Initech")
	assert.Contains(t, rec.Body.String(), "https://initech.example")
	assert.Contains(t, rec.Body.String(), "never", "unviewed accounts show no last view time")
}

func TestShowAccount_Unavailable(t *testing.T) {
	tests := []struct {
		name         string
		request      *http.Request
		wantStatus   int
		wantBody     string
		wantFlash    bool
		wantRedirect bool
	}{
		{
			name:         "html redirects with warning",
			request:      httptest.NewRequest(http.MethodGet, "/accounts/7", nil),
			wantStatus:   http.StatusSeeOther,
			wantFlash:    true,
			wantRedirect: true,
		},
		{
			name:       "xhr reloads with warning",
			request:    xhrRequest(http.MethodGet, "/accounts/7"),
			wantStatus: http.StatusOK,
			wantBody:   "window.location.reload();",
			wantFlash:  true,
		},
		{
			name:       "export is not found",
			request:    exportRequest(http.MethodGet, "/accounts/7", "application/xml"),
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.accounts.showFn = func(_ context.Context, _ models.RequestScope, _ int64) (models.Account, error) {
				return models.Account{}, unavailable()
			}

			rec := ts.do(tt.request)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
				assert.Contains(t, rec.Header().Get("Content-Type"), "text/javascript")
			}
			if tt.wantRedirect {
				assert.Equal(t, "/accounts", rec.Header().Get("Location"))
			}

			warning, ok := ts.sessions.stored().Get(models.FlashWarning)
			assert.Equal(t, tt.wantFlash, ok)
			if tt.wantFlash {
				assert.Equal(t, app.MsgAccountUnavailable, warning)
			}
		})
	}
}

func TestShowAccount_WarningShownOnNextPageOnce(t *testing.T) {
	ts := newTestServer(t)
	ts.accounts.showFn = func(_ context.Context, _ models.RequestScope, _ int64) (models.Account, error) {
		return models.Account{}, unavailable()
	}
	ts.accounts.listFn = func(_ context.Context, _ models.RequestScope, _ models.ListParams) (models.Listing, error) {
		return listingFixture(1), nil
	}

	redirect := ts.do(httptest.NewRequest(http.MethodGet, "/accounts/7", nil))
	require.Equal(t, http.StatusSeeOther, redirect.Code)

	index := ts.do(httptest.NewRequest(http.MethodGet, redirect.Header().Get("Location"), nil))
	require.Equal(t, http.StatusOK, index.Code)
	assert.Contains(t, index.Body.String(), app.MsgAccountUnavailable)

	again := ts.do(httptest.NewRequest(http.MethodGet, "/accounts", nil))
	assert.NotContains(t, again.Body.String(), app.MsgAccountUnavailable)
}

func TestShowAccount_InvalidID(t *testing.T) {
	ts := newTestServer(t)

	for _, target := range []string{"/accounts/abc", "/accounts/0", "/accounts/-3"} {
		rec := ts.do(httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}
}

// ─────────────────────────────────────────────
// new / edit
// ─────────────────────────────────────────────

func TestNewAccount_RelatedContactAndUsers(t *testing.T) {
	ts := newTestServer(t)
	ts.accounts.newFn = func(_ context.Context, _ models.RequestScope, related string) (service.AccountForm, error) {
		assert.Equal(t, "contact_42", related)
		return service.AccountForm{
			Account: models.Account{UserID: testUserID, Access: models.AccessPublic},
			Users:   []models.User{{UserID: 2, Name: "Bob"}, {UserID: 3, Name: "Carol"}},
			Related: &models.Contact{ID: 42, FirstName: "Jane", LastName: "Doe"},
		}, nil
	}

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/accounts/new?related=contact_42", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Jane Doe")
	assert.Contains(t, body, "Bob")
	assert.Contains(t, body, "Carol")
	assert.Contains(t, body, `value="Public" checked`)
}

func TestEditAccount_Previous(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		previous     service.ResolvedPrevious
		wantHint     *int64
		wantPrevLink bool
	}{
		{
			name:         "available previous is linked",
			target:       "/accounts/42/edit?previous=41",
			previous:     service.ResolvedPrevious{Kind: service.PreviousAvailable, ID: 41},
			wantHint:     func() *int64 { v := int64(41); return &v }(),
			wantPrevLink: true,
		},
		{
			name:     "removed previous is silent",
			target:   "/accounts/42/edit?previous=41",
			previous: service.ResolvedPrevious{Kind: service.PreviousRemoved, ID: 41},
			wantHint: func() *int64 { v := int64(41); return &v }(),
		},
		{
			name:     "no hint",
			target:   "/accounts/42/edit",
			previous: service.ResolvedPrevious{Kind: service.PreviousNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.accounts.editFn = func(_ context.Context, _ models.RequestScope, id int64, previous *int64) (service.AccountForm, error) {
				assert.Equal(t, int64(42), id)
				assert.Equal(t, tt.wantHint, previous)
				return service.AccountForm{
					Account:  models.Account{ID: 42, Name: "Acme", Access: models.AccessShared, SharedWith: []int64{2}},
					Users:    []models.User{{UserID: 2, Name: "Bob"}},
					Previous: tt.previous,
				}, nil
			}

			rec := ts.do(httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantPrevLink, strings.Contains(rec.Body.String(), "/accounts/41/edit"))
			assert.Contains(t, rec.Body.String(), `value="2" checked`)
			_, warned := ts.sessions.stored().Get(models.FlashWarning)
			assert.False(t, warned)
		})
	}
}

// ─────────────────────────────────────────────
// create / update
// ─────────────────────────────────────────────

func TestCreateAccount_FormSharedWithUsers(t *testing.T) {
	ts := newTestServer(t)

	var got models.AccountRequest
	ts.accounts.createFn = func(_ context.Context, _ models.RequestScope, request models.AccountRequest) (service.AccountResult, error) {
		got = request
		return service.AccountResult{
			Account: models.Account{ID: 9, Name: *request.Name, Access: models.AccessShared, SharedWith: request.Users},
			Listing: listingFixture(1),
		}, nil
	}

	rec := ts.do(formRequest(http.MethodPost, "/accounts", url.Values{
		"name":   {"Hello"},
		"access": {"Shared"},
		"users":  {"7", "8"},
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Created")
	assert.Contains(t, rec.Body.String(), "Acme", "the relisted page is rendered")

	require.NotNil(t, got.Name)
	assert.Equal(t, "Hello", *got.Name)
	require.NotNil(t, got.Access)
	assert.Equal(t, models.AccessShared, *got.Access)
	assert.Equal(t, []int64{7, 8}, got.Users)
	assert.Nil(t, got.Website, "absent fields stay nil")
}

func TestCreateAccount_Invalid(t *testing.T) {
	invalid := func(_ context.Context, _ models.RequestScope, _ models.AccountRequest) (service.AccountResult, error) {
		rejected := models.Account{Name: "", Access: models.AccessPublic, Notes: "unsaved notes"}
		return service.AccountResult{Account: rejected}, fmt.Errorf("%w: %w", service.ErrInvalidAccount, validators.ErrEmptyName)
	}

	t.Run("html re-renders the form", func(t *testing.T) {
		ts := newTestServer(t)
		ts.accounts.createFn = invalid

		rec := ts.do(formRequest(http.MethodPost, "/accounts", url.Values{"name": {""}, "notes": {"unsaved notes"}}))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Name can&#39;t be blank")
		assert.Contains(t, rec.Body.String(), "unsaved notes")
		assert.Contains(t, rec.Body.String(), `id="new_account"`)
	})

	t.Run("export lists errors", func(t *testing.T) {
		ts := newTestServer(t)
		ts.accounts.createFn = invalid

		req := httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader(`{"name":""}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		rec := ts.do(req)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.JSONEq(t, `{"errors":["Name can't be blank"]}`, rec.Body.String())
	})
}

func TestCreateAccount_ExportCreated(t *testing.T) {
	ts := newTestServer(t)
	ts.accounts.createFn = func(_ context.Context, scope models.RequestScope, request models.AccountRequest) (service.AccountResult, error) {
		assert.Equal(t, models.Export, scope.Mode)
		return service.AccountResult{Account: models.Account{ID: 9, Name: *request.Name, Access: models.AccessPublic}}, nil
	}

	req := httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader(`{"name":"Hello","access":"Public"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/xml")
	rec := ts.do(req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var account models.Account
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &account))
	assert.Equal(t, int64(9), account.ID)
	assert.Equal(t, "Hello", account.Name)
}

func TestCreateAccount_BadBody(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(formRequest(http.MethodPost, "/accounts", url.Values{"users": {"seven"}}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	rec = ts.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateAccount_MethodOverride(t *testing.T) {
	ts := newTestServer(t)

	var gotID int64
	var got models.AccountRequest
	ts.accounts.updateFn = func(_ context.Context, _ models.RequestScope, id int64, request models.AccountRequest) (service.AccountResult, error) {
		gotID, got = id, request
		return service.AccountResult{Account: models.Account{ID: id, Name: "Renamed", Access: models.AccessShared}}, nil
	}

	rec := ts.do(formRequest(http.MethodPost, "/accounts/5", url.Values{
		"_method": {"put"},
		"name":    {"Renamed"},
		"access":  {"Shared"},
		"users":   {"7", "8"},
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Saved")
	assert.Equal(t, int64(5), gotID)
	assert.Equal(t, []int64{7, 8}, got.Users)
}

func TestAccountRequest_UsersPresence(t *testing.T) {
	tests := []struct {
		name      string
		req       *http.Request
		wantUsers []int64
	}{
		{
			name:      "form with access and no users shares with nobody",
			req:       formRequest(http.MethodPut, "/accounts/5", url.Values{"name": {"Team"}, "access": {"Shared"}}),
			wantUsers: []int64{},
		},
		{
			name:      "form without access leaves users out",
			req:       formRequest(http.MethodPut, "/accounts/5", url.Values{"name": {"Team"}}),
			wantUsers: nil,
		},
		{
			name:      "json without users leaves users out",
			req:       jsonRequest(http.MethodPut, "/accounts/5", `{"name":"Renamed","access":"Shared"}`),
			wantUsers: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accountRequest(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantUsers, got.Users)
		})
	}
}

func TestUpdateAccount_InvalidKeepsStoredAccount(t *testing.T) {
	ts := newTestServer(t)
	ts.accounts.updateFn = func(_ context.Context, _ models.RequestScope, id int64, _ models.AccountRequest) (service.AccountResult, error) {
		return service.AccountResult{Account: models.Account{ID: id, Name: "Stored name", Access: models.AccessPublic}},
			fmt.Errorf("%w: %w", service.ErrInvalidAccount, validators.ErrEmptyName)
	}

	req := formRequest(http.MethodPut, "/accounts/5", url.Values{"name": {""}})
	rec := ts.do(req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Stored name")
	assert.Contains(t, rec.Body.String(), `id="edit_account_5"`)
}

func TestUpdateAccount_Unavailable(t *testing.T) {
	ts := newTestServer(t)
	ts.accounts.updateFn = func(_ context.Context, _ models.RequestScope, _ int64, _ models.AccountRequest) (service.AccountResult, error) {
		return service.AccountResult{}, unavailable()
	}

	req := formRequest(http.MethodPut, "/accounts/5", url.Values{"name": {"x"}})
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	rec := ts.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, reloadScript, rec.Body.String())
}

// ─────────────────────────────────────────────
// delete
// ─────────────────────────────────────────────

func TestDeleteAccount(t *testing.T) {
	deleted := models.Account{ID: 5, Name: "Acme"}

	tests := []struct {
		name       string
		request    *http.Request
		showIndex  bool
		wantStatus int
		wantBody   string
		wantNotice bool
	}{
		{
			name:       "html redirects with notice",
			request:    httptest.NewRequest(http.MethodDelete, "/accounts/5", nil),
			wantStatus: http.StatusSeeOther,
			wantNotice: true,
		},
		{
			name:       "xhr with rows left renders destroy view",
			request:    xhrRequest(http.MethodDelete, "/accounts/5"),
			wantStatus: http.StatusOK,
			wantBody:   `class="destroyed"`,
		},
		{
			name:       "xhr after rollback renders index view",
			request:    xhrRequest(http.MethodDelete, "/accounts/5"),
			showIndex:  true,
			wantStatus: http.StatusOK,
			wantBody:   `action="/accounts/search"`,
		},
		{
			name:       "export",
			request:    exportRequest(http.MethodDelete, "/accounts/5", "application/xml"),
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.accounts.deleteFn = func(_ context.Context, _ models.RequestScope, id int64) (service.DeleteResult, error) {
				assert.Equal(t, int64(5), id)
				listing := listingFixture(41)
				return service.DeleteResult{Account: deleted, Listing: listing, ShowIndex: tt.showIndex}, nil
			}

			rec := ts.do(tt.request)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
				assert.Contains(t, rec.Body.String(), `data-page="41"`)
			}

			notice, ok := ts.sessions.stored().Get(models.FlashNotice)
			assert.Equal(t, tt.wantNotice, ok)
			if tt.wantNotice {
				assert.Equal(t, "/accounts", rec.Header().Get("Location"))
				assert.Equal(t, "Acme has been deleted.", notice)
			}
		})
	}
}

func TestDeleteAccount_Unavailable(t *testing.T) {
	ts := newTestServer(t)
	ts.accounts.deleteFn = func(_ context.Context, _ models.RequestScope, _ int64) (service.DeleteResult, error) {
		return service.DeleteResult{}, unavailable()
	}

	rec := ts.do(httptest.NewRequest(http.MethodDelete, "/accounts/5", nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	_, warned := ts.sessions.stored().Get(models.FlashWarning)
	assert.True(t, warned)
}

// ─────────────────────────────────────────────
// auto complete / options / redraw
// ─────────────────────────────────────────────

func TestAutoCompleteAccounts(t *testing.T) {
	ts := newTestServer(t)
	ts.accounts.autoCompleteFn = func(_ context.Context, _ models.RequestScope, query string) ([]models.Account, error) {
		if query == "zzz" {
			return []models.Account{}, nil
		}
		assert.Equal(t, "ac", query)
		return accountsFixture()[:1], nil
	}

	rec := ts.do(formRequest(http.MethodPost, "/accounts/auto_complete", url.Values{"query": {"ac"}}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<li id="1">Acme</li>`)

	rec = ts.do(formRequest(http.MethodPost, "/accounts/auto_complete", url.Values{"query": {"zzz"}}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No match")
}

func TestAccountOptions(t *testing.T) {
	ts := newTestServer(t)
	ts.accounts.optionsFn = func(_ context.Context, _ models.RequestScope) (models.ViewPreferences, error) {
		return models.ViewPreferences{PerPage: 50, Outline: "long", SortBy: "accounts.created_at DESC"}, nil
	}

	rec := ts.do(xhrRequest(http.MethodGet, "/accounts/options"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<option value="50" selected>`)
	assert.Contains(t, body, `<option value="long" selected>`)
	assert.Contains(t, body, `<option value="created_at" selected>`)
}

func TestAccountOptions_CancelSkipsPreferences(t *testing.T) {
	ts := newTestServer(t)
	ts.accounts.optionsFn = func(_ context.Context, _ models.RequestScope) (models.ViewPreferences, error) {
		t.Fatal("preferences must not be loaded on cancel")
		return models.ViewPreferences{}, nil
	}

	rec := ts.do(xhrRequest(http.MethodGet, "/accounts/options?cancel=true"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<form")
}

func TestRedrawAccounts(t *testing.T) {
	ts := newTestServer(t)

	var got models.RedrawRequest
	ts.accounts.redrawFn = func(_ context.Context, _ models.RequestScope, request models.RedrawRequest) (models.Listing, error) {
		got = request
		listing := listingFixture(1)
		listing.Accounts = listing.Accounts[:1]
		return listing, nil
	}

	rec := ts.do(formRequest(http.MethodPost, "/accounts/redraw", url.Values{
		"per_page": {"1"},
		"outline":  {"long"},
		"sort_by":  {"name"},
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.RedrawRequest{PerPage: 1, Outline: "long", SortBy: "name"}, got)
	assert.Contains(t, rec.Body.String(), "Acme")
	assert.NotContains(t, rec.Body.String(), "Globex")
}

func TestRedrawAccounts_BadPerPage(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(formRequest(http.MethodPost, "/accounts/redraw", url.Values{"per_page": {"many"}}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// routing
// ─────────────────────────────────────────────

func TestAccountsRequireAuthentication(t *testing.T) {
	ts := newTestServer(t)

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/accounts", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnsupportedMethodIsNotFound(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(httptest.NewRequest(http.MethodPatch, "/accounts/5", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/api/user/login", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFail_MapsErrors(t *testing.T) {
	ts := newTestServer(t)
	ts.accounts.showFn = func(_ context.Context, _ models.RequestScope, _ int64) (models.Account, error) {
		return models.Account{}, errors.New("unexpected")
	}

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/accounts/5", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
