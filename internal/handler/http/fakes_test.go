package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/models"
)

const (
	testUserID    int64 = 1
	testSessionID       = "session-1"
	testToken           = "valid.jwt.token"
)

// ─────────────────────────────────────────────
// fake AccountService
// ─────────────────────────────────────────────

// fakeAccountService implements service.AccountService. Each method field can
// be overridden per test case; an unset field panics when called.
type fakeAccountService struct {
	listFn         func(ctx context.Context, scope models.RequestScope, params models.ListParams) (models.Listing, error)
	searchFn       func(ctx context.Context, scope models.RequestScope, query string) (models.Listing, error)
	showFn         func(ctx context.Context, scope models.RequestScope, id int64) (models.Account, error)
	newFn          func(ctx context.Context, scope models.RequestScope, related string) (service.AccountForm, error)
	editFn         func(ctx context.Context, scope models.RequestScope, id int64, previous *int64) (service.AccountForm, error)
	createFn       func(ctx context.Context, scope models.RequestScope, request models.AccountRequest) (service.AccountResult, error)
	updateFn       func(ctx context.Context, scope models.RequestScope, id int64, request models.AccountRequest) (service.AccountResult, error)
	deleteFn       func(ctx context.Context, scope models.RequestScope, id int64) (service.DeleteResult, error)
	autoCompleteFn func(ctx context.Context, scope models.RequestScope, query string) ([]models.Account, error)
	optionsFn      func(ctx context.Context, scope models.RequestScope) (models.ViewPreferences, error)
	redrawFn       func(ctx context.Context, scope models.RequestScope, request models.RedrawRequest) (models.Listing, error)
}

func (f *fakeAccountService) List(ctx context.Context, scope models.RequestScope, params models.ListParams) (models.Listing, error) {
	return f.listFn(ctx, scope, params)
}

func (f *fakeAccountService) Search(ctx context.Context, scope models.RequestScope, query string) (models.Listing, error) {
	return f.searchFn(ctx, scope, query)
}

func (f *fakeAccountService) Show(ctx context.Context, scope models.RequestScope, id int64) (models.Account, error) {
	return f.showFn(ctx, scope, id)
}

func (f *fakeAccountService) New(ctx context.Context, scope models.RequestScope, related string) (service.AccountForm, error) {
	return f.newFn(ctx, scope, related)
}

func (f *fakeAccountService) Edit(ctx context.Context, scope models.RequestScope, id int64, previous *int64) (service.AccountForm, error) {
	return f.editFn(ctx, scope, id, previous)
}

func (f *fakeAccountService) Create(ctx context.Context, scope models.RequestScope, request models.AccountRequest) (service.AccountResult, error) {
	return f.createFn(ctx, scope, request)
}

func (f *fakeAccountService) Update(ctx context.Context, scope models.RequestScope, id int64, request models.AccountRequest) (service.AccountResult, error) {
	return f.updateFn(ctx, scope, id, request)
}

func (f *fakeAccountService) Delete(ctx context.Context, scope models.RequestScope, id int64) (service.DeleteResult, error) {
	return f.deleteFn(ctx, scope, id)
}

func (f *fakeAccountService) AutoComplete(ctx context.Context, scope models.RequestScope, query string) ([]models.Account, error) {
	return f.autoCompleteFn(ctx, scope, query)
}

func (f *fakeAccountService) Options(ctx context.Context, scope models.RequestScope) (models.ViewPreferences, error) {
	return f.optionsFn(ctx, scope)
}

func (f *fakeAccountService) Redraw(ctx context.Context, scope models.RequestScope, request models.RedrawRequest) (models.Listing, error) {
	return f.redrawFn(ctx, scope, request)
}

// ─────────────────────────────────────────────
// fake AuthService
// ─────────────────────────────────────────────

type fakeAuthService struct {
	registerUserFn func(ctx context.Context, user models.User) (models.User, error)
	loginFn        func(ctx context.Context, user models.User) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (f *fakeAuthService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	return f.registerUserFn(ctx, user)
}

func (f *fakeAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	return f.loginFn(ctx, user)
}

func (f *fakeAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return f.createTokenFn(ctx, user)
}

func (f *fakeAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if f.parseTokenFn != nil {
		return f.parseTokenFn(ctx, tokenString)
	}
	if tokenString != testToken {
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}
	return models.Token{UserID: testUserID, SessionID: testSessionID}, nil
}

// ─────────────────────────────────────────────
// fake SessionService
// ─────────────────────────────────────────────

// memorySessions keeps sessions in a map and counts writes, the way the
// session service behaves over badger for a single process. The test
// session starts out opened for the test user.
type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
	saves    int
	deleted  []string
	openErr  error
}

func newMemorySessions() *memorySessions {
	opened := models.NewSession(testSessionID)
	opened.SetOwner(testUserID)
	opened.MarkClean()

	return &memorySessions{sessions: map[string]*models.Session{testSessionID: opened}}
}

func (m *memorySessions) Open(_ context.Context, id string, userID int64) error {
	if m.openErr != nil {
		return m.openErr
	}

	session := models.NewSession(id)
	session.SetOwner(userID)
	session.MarkClean()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = session
	return nil
}

func (m *memorySessions) Load(_ context.Context, id string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", service.ErrSessionClosed, id)
	}
	loaded := session.Clone()
	loaded.MarkClean()
	return loaded, nil
}

// get returns the stored session under id, or nil.
func (m *memorySessions) get(id string) *models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[id]; ok {
		return session.Clone()
	}
	return nil
}

func (m *memorySessions) Save(_ context.Context, session *models.Session) error {
	if session == nil || !session.Dirty() {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	session.MarkClean()
	m.sessions[session.ID] = session.Clone()
	m.saves++
	return nil
}

func (m *memorySessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// stored returns the persisted copy of the test session.
func (m *memorySessions) stored() *models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[testSessionID]; ok {
		return session.Clone()
	}
	return models.NewSession(testSessionID)
}

func (m *memorySessions) seed(key, value string) {
	session := m.stored()
	session.Set(key, value)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[testSessionID] = session
}

// ─────────────────────────────────────────────
// fake AppInfoService
// ─────────────────────────────────────────────

type fakeAppInfoService struct {
	version string
}

func (f *fakeAppInfoService) GetAppVersion(_ context.Context) string {
	return f.version
}

func (f *fakeAppInfoService) GetBuildInfo(_ context.Context) models.AppBuildInfo {
	return models.NewAppBuildInfo(f.version, "", "", "")
}

// ─────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────

type testServer struct {
	handler  *Handler
	router   http.Handler
	accounts *fakeAccountService
	auth     *fakeAuthService
	sessions *memorySessions
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{
		accounts: &fakeAccountService{},
		auth:     &fakeAuthService{},
		sessions: newMemorySessions(),
	}

	ts.handler = NewHandler(&service.Services{
		AccountService: ts.accounts,
		AuthService:    ts.auth,
		SessionService: ts.sessions,
		AppInfoService: &fakeAppInfoService{version: "test-version"},
	}, config.Server{}, logger.Nop())
	ts.router = ts.handler.Init()

	return ts
}

// do serves req as the authenticated test user.
func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	if req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func exportRequest(method, target, accept string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Accept", accept)
	return req
}

func xhrRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	return req
}

func accountsFixture() []models.Account {
	return []models.Account{
		{ID: 1, UserID: testUserID, Name: "Acme", Access: models.AccessPublic},
		{ID: 2, UserID: testUserID, Name: "Globex", Access: models.AccessPrivate},
	}
}

func listingFixture(page int) models.Listing {
	accounts := accountsFixture()
	return models.Listing{
		Accounts:    accounts,
		Page:        page,
		PerPage:     20,
		Total:       len(accounts),
		TotalPages:  1,
		Preferences: models.ViewPreferences{PerPage: 20, Outline: config.OutlineBrief, SortBy: "accounts.name ASC"},
	}
}
