// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-accounts/internal/app"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/go-chi/chi/v5"
)

const accountsPath = "/accounts"

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	scope := requestScope(r)

	listing, err := h.services.AccountService.List(r.Context(), scope, listParams(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respondListing(w, r, scope, listing)
}

func (h *Handler) searchAccounts(w http.ResponseWriter, r *http.Request) {
	scope := requestScope(r)

	listing, err := h.services.AccountService.Search(r.Context(), scope, r.URL.Query().Get("query"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respondListing(w, r, scope, listing)
}

func (h *Handler) showAccount(w http.ResponseWriter, r *http.Request) {
	scope := requestScope(r)

	id, err := accountID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	account, err := h.services.AccountService.Show(r.Context(), scope, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if scope.Mode == models.Export {
		h.renderer.Export(w, r, http.StatusOK, account)
		return
	}
	h.renderer.Page(w, r, http.StatusOK, View{Name: "accounts/show", Data: account})
}

func (h *Handler) newAccount(w http.ResponseWriter, r *http.Request) {
	scope := requestScope(r)

	form, err := h.services.AccountService.New(r.Context(), scope, r.URL.Query().Get("related"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if scope.Mode == models.Export {
		h.renderer.Export(w, r, http.StatusOK, form.Account)
		return
	}
	h.renderer.Page(w, r, http.StatusOK, View{Name: "accounts/new", Data: formView{
		Account: form.Account,
		Users:   form.Users,
		Related: form.Related,
	}})
}

func (h *Handler) editAccount(w http.ResponseWriter, r *http.Request) {
	scope := requestScope(r)

	id, err := accountID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	form, err := h.services.AccountService.Edit(r.Context(), scope, id, previousHint(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if scope.Mode == models.Export {
		h.renderer.Export(w, r, http.StatusOK, form.Account)
		return
	}
	h.renderer.Page(w, r, http.StatusOK, View{Name: "accounts/edit", Data: formView{
		Account:  form.Account,
		Users:    form.Users,
		Previous: form.Previous,
	}})
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	scope := requestScope(r)

	request, err := accountRequest(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.services.AccountService.Create(r.Context(), scope, request)
	h.respondSaved(w, r, scope, "accounts/create", http.StatusCreated, result, err)
}

func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	scope := requestScope(r)

	id, err := accountID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	request, err := accountRequest(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.services.AccountService.Update(r.Context(), scope, id, request)
	h.respondSaved(w, r, scope, "accounts/update", http.StatusOK, result, err)
}

// deleteAccount answers plain browser requests with a redirect to the index
// and a notice. XHR requests get the destroy view, or the index view when
// the current page rolled back.
func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	scope := requestScope(r)

	id, err := accountID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.services.AccountService.Delete(r.Context(), scope, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	switch {
	case scope.Mode == models.Export:
		w.WriteHeader(http.StatusOK)
	case !isXHR(r):
		if scope.Session != nil {
			scope.Session.Set(models.FlashNotice, fmt.Sprintf(app.MsgAccountDeleted, result.Account.Name))
		}
		http.Redirect(w, r, accountsPath, http.StatusSeeOther)
	case result.ShowIndex:
		h.renderer.Page(w, r, http.StatusOK, View{Name: "accounts/index", Data: newListingView(result.Listing)})
	default:
		h.renderer.Page(w, r, http.StatusOK, View{Name: "accounts/destroy", Data: destroyView{
			Account: result.Account,
			Listing: newListingView(result.Listing),
		}})
	}
}

func (h *Handler) autoCompleteAccounts(w http.ResponseWriter, r *http.Request) {
	scope := requestScope(r)

	if err := r.ParseForm(); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %w", ErrInvalidBody, err))
		return
	}
	query := r.Form.Get("query")

	accounts, err := h.services.AccountService.AutoComplete(r.Context(), scope, query)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if scope.Mode == models.Export {
		h.renderer.Export(w, r, http.StatusOK, accounts)
		return
	}
	h.renderer.Page(w, r, http.StatusOK, View{Name: "accounts/auto_complete", Data: autoCompleteView{
		Query:    query,
		Accounts: accounts,
	}})
}

// accountOptions renders the preferences form. With cancel=true it renders
// the view without preferences, which closes the form on the page.
func (h *Handler) accountOptions(w http.ResponseWriter, r *http.Request) {
	scope := requestScope(r)

	if cancel, _ := strconv.ParseBool(r.URL.Query().Get("cancel")); cancel {
		h.renderer.Page(w, r, http.StatusOK, View{Name: "accounts/options", Data: newOptionsView(nil)})
		return
	}

	preferences, err := h.services.AccountService.Options(r.Context(), scope)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if scope.Mode == models.Export {
		h.renderer.Export(w, r, http.StatusOK, preferences)
		return
	}
	h.renderer.Page(w, r, http.StatusOK, View{Name: "accounts/options", Data: newOptionsView(&preferences)})
}

func (h *Handler) redrawAccounts(w http.ResponseWriter, r *http.Request) {
	scope := requestScope(r)

	request, err := redrawRequest(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	listing, err := h.services.AccountService.Redraw(r.Context(), scope, request)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respondListing(w, r, scope, listing)
}

func (h *Handler) respondListing(w http.ResponseWriter, r *http.Request, scope models.RequestScope, listing models.Listing) {
	if scope.Mode == models.Export {
		h.renderer.Export(w, r, http.StatusOK, listing.Accounts)
		return
	}
	h.renderer.Page(w, r, http.StatusOK, View{Name: "accounts/index", Data: newListingView(listing)})
}

// respondSaved renders the outcome of create and update. Validation failures
// render the same view with the rejected account and 422.
func (h *Handler) respondSaved(w http.ResponseWriter, r *http.Request, scope models.RequestScope, name string, status int, result service.AccountResult, err error) {
	if err != nil && !errors.Is(err, service.ErrInvalidAccount) {
		h.fail(w, r, err)
		return
	}

	if err != nil {
		logger.FromRequest(r).Debug().Err(err).Str("view", name).Msg("account rejected")

		messages := messagesFor(err)
		if scope.Mode == models.Export {
			h.renderer.Export(w, r, http.StatusUnprocessableEntity, validationErrors{Errors: messages})
			return
		}
		h.renderer.Page(w, r, http.StatusUnprocessableEntity, View{Name: name, Data: formView{
			Account: result.Account,
			Users:   result.Users,
			Errors:  messages,
		}})
		return
	}

	if scope.Mode == models.Export {
		h.renderer.Export(w, r, status, result.Account)
		return
	}

	listing := newListingView(result.Listing)
	h.renderer.Page(w, r, http.StatusOK, View{Name: name, Data: formView{
		Account: result.Account,
		Users:   result.Users,
		Listing: &listing,
	}})
}

// fail writes the response for a failed operation. An unavailable account
// never produces an error page: browsers are sent back to the index with a
// warning, XHR callers are told to reload, export callers get 404.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	if errors.Is(err, service.ErrAccountUnavailable) {
		log.Warn().Err(err).Str("uri", r.RequestURI).Msg("account unavailable")

		if isExport(r) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		if session := sessionFrom(r); session != nil {
			session.Set(models.FlashWarning, app.MsgAccountUnavailable)
		}
		if isXHR(r) {
			writeScript(w, reloadScript)
			return
		}
		http.Redirect(w, r, accountsPath, http.StatusSeeOther)
		return
	}

	status := statusFromError(err)
	log.Err(err).Int("status", status).Str("uri", r.RequestURI).Msg("request failed")
	http.Error(w, http.StatusText(status), status)
}

func requestScope(r *http.Request) models.RequestScope {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	scope := models.RequestScope{
		UserID:  userID,
		Session: sessionFrom(r),
		Mode:    models.Paged,
	}
	if isExport(r) {
		scope.Mode = models.Export
	}
	return scope
}

// listParams reads page and query. A page that is not a number counts as
// not supplied.
func listParams(r *http.Request) models.ListParams {
	values := r.URL.Query()

	var params models.ListParams
	if values.Has("page") {
		if page, err := strconv.Atoi(values.Get("page")); err == nil {
			params.Page = &page
		}
	}
	if values.Has("query") {
		query := values.Get("query")
		params.Query = &query
	}
	return params
}

func accountID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, ErrInvalidAccountID
	}
	return id, nil
}

func previousHint(r *http.Request) *int64 {
	raw := r.URL.Query().Get("previous")
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

func isJSONBody(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// accountRequest decodes a create or update body. Form fields that are
// absent stay nil so that updates only touch what was submitted.
func accountRequest(r *http.Request) (models.AccountRequest, error) {
	var request models.AccountRequest

	if isJSONBody(r) {
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			return models.AccountRequest{}, fmt.Errorf("%w: %w", ErrInvalidBody, err)
		}
		return request, nil
	}

	if err := r.ParseForm(); err != nil {
		return models.AccountRequest{}, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	form := r.PostForm

	fields := map[string]**string{
		"name":    &request.Name,
		"website": &request.Website,
		"phone":   &request.Phone,
		"email":   &request.Email,
		"notes":   &request.Notes,
	}
	for key, field := range fields {
		if form.Has(key) {
			value := form.Get(key)
			*field = &value
		}
	}

	if form.Has("access") {
		access := models.AccessMode(form.Get("access"))
		request.Access = &access
	}

	for _, raw := range form["users"] {
		if raw == "" {
			continue
		}
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return models.AccountRequest{}, fmt.Errorf("%w: user %q: %w", ErrInvalidBody, raw, err)
		}
		request.Users = append(request.Users, userID)
	}

	// The account form always posts the access mode, and unchecked user
	// boxes post nothing, so a form with access but no users shares with
	// nobody.
	if request.Access != nil && request.Users == nil {
		request.Users = []int64{}
	}

	return request, nil
}

func redrawRequest(r *http.Request) (models.RedrawRequest, error) {
	var request models.RedrawRequest

	if isJSONBody(r) {
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			return models.RedrawRequest{}, fmt.Errorf("%w: %w", ErrInvalidBody, err)
		}
		return request, nil
	}

	if err := r.ParseForm(); err != nil {
		return models.RedrawRequest{}, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}

	if raw := r.Form.Get("per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil {
			return models.RedrawRequest{}, fmt.Errorf("%w: per_page: %w", ErrInvalidBody, err)
		}
		request.PerPage = perPage
	}
	request.Outline = r.Form.Get("outline")
	request.SortBy = r.Form.Get("sort_by")

	return request, nil
}
