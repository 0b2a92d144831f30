// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJ1c2VyX2lkIjoxfQ.signature"

// newTestAdapter returns an httpServerAdapter pointed at serverURL.
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()

	a, err := NewHTTPServerAdapter(config.Adapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── constructor ─────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "localhost:8080", want: "http://localhost:8080"},
		{raw: " https://accounts.example.com/ ", want: "https://accounts.example.com"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPServerAdapter_EmptyAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.Adapter{}, logger.Nop())
	assert.ErrorIs(t, err, ErrEmptyAddress)
}

// ── auth ────────────────────────────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/user/register", r.URL.Path)

		var got models.User
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "alice", got.Login)

		w.Header().Set("Authorization", "Bearer "+testToken)
		writeJSON(t, w, http.StatusOK, models.User{UserID: 7, Login: "alice", Name: "Alice"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Register(context.Background(), models.User{Login: "alice", Name: "Alice", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, testToken, a.Token())
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "login already exists", http.StatusConflict)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.User{Login: "alice"})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Empty(t, a.Token())
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantErr   error
		wantToken string
	}{
		{
			name: "success",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/user/login", r.URL.Path)
				w.Header().Set("Authorization", "Bearer "+testToken)
				writeJSON(t, w, http.StatusOK, models.User{UserID: 7, Login: "alice"})
			},
			wantToken: testToken,
		},
		{
			name: "wrong password",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "invalid login/password", http.StatusUnauthorized)
			},
			wantErr: ErrUnauthorized,
		},
		{
			name: "missing token header",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusOK, models.User{UserID: 7})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			_, err := a.Login(context.Background(), models.User{Login: "alice", Password: "secret"})

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantToken == "":
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, a.Token())
			}
		})
	}
}

func TestLogout_ForgetsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user/logout", r.URL.Path)
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(testToken)

	require.NoError(t, a.Logout(context.Background()))
	assert.Empty(t, a.Token())
}

// ── accounts ────────────────────────────────────────────────────────────────

func TestListAccounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/accounts", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))

		writeJSON(t, w, http.StatusOK, models.AccountList{Accounts: []models.Account{{ID: 1, Name: "Acme"}, {ID: 2, Name: "Globex"}}})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(testToken)

	accounts, err := a.ListAccounts(context.Background())

	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "Globex", accounts[1].Name)
}

func TestSearchAccounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/search", r.URL.Path)
		assert.Equal(t, "second?!", r.URL.Query().Get("query"))

		writeJSON(t, w, http.StatusOK, models.AccountList{Accounts: []models.Account{}})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	accounts, err := a.SearchAccounts(context.Background(), "second?!")

	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestShowAccount(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "visible", status: http.StatusOK},
		{name: "unavailable", status: http.StatusNotFound, wantErr: ErrNotFound},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "server error", status: http.StatusInternalServerError, wantErr: ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/accounts/42", r.URL.Path)
				if tt.status != http.StatusOK {
					http.Error(w, http.StatusText(tt.status), tt.status)
					return
				}
				writeJSON(t, w, http.StatusOK, models.Account{ID: 42, Name: "Acme", Access: models.AccessPublic})
			}))
			defer srv.Close()

			got, err := newTestAdapter(t, srv.URL).ShowAccount(context.Background(), 42)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Acme", got.Name)
		})
	}
}

func TestCreateAccount(t *testing.T) {
	name := "Acme"
	access := models.AccessShared

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/accounts", r.URL.Path)

		var got models.AccountRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, []int64{2, 3}, got.Users)

		writeJSON(t, w, http.StatusCreated, models.Account{ID: 9, Name: *got.Name, Access: *got.Access, SharedWith: got.Users})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).CreateAccount(context.Background(), models.AccountRequest{Name: &name, Access: &access, Users: []int64{2, 3}})

	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)
	assert.Equal(t, []int64{2, 3}, got.SharedWith)
}

func TestCreateAccount_Invalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, map[string][]string{"errors": {"Name can't be blank"}})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).CreateAccount(context.Background(), models.AccountRequest{})

	require.ErrorIs(t, err, ErrUnprocessableEntity)
	assert.Contains(t, err.Error(), "Name can't be blank")
}

func TestUpdateAccount(t *testing.T) {
	notes := "call back"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/accounts/5", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.Account{ID: 5, Notes: notes})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).UpdateAccount(context.Background(), 5, models.AccountRequest{Notes: &notes})

	require.NoError(t, err)
	assert.Equal(t, notes, got.Notes)
}

func TestDeleteAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/accounts/5", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.NoError(t, newTestAdapter(t, srv.URL).DeleteAccount(context.Background(), 5))
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("1.4.0"))
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.4.0", got)
}

func TestMapHTTPError_UnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).DeleteAccount(context.Background(), 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}
