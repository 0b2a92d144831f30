// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the go-accounts server on behalf of the
// command-line client.
//
// [ServerAdapter] decouples the client services from the protocol. The HTTP
// implementation asks for the export representation of every account
// operation, so responses are plain JSON documents.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrNotFound] for
// 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-accounts/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter is the client's view of the server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" if there is none.
	Token() string

	// Register creates the user and stores the issued token.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates the user and stores the issued token.
	Login(ctx context.Context, user models.User) (models.User, error)

	// Logout ends the server session and forgets the token.
	Logout(ctx context.Context) error

	// ListAccounts returns every account the user may see, in the user's
	// preferred order, narrowed by the query remembered in the session.
	ListAccounts(ctx context.Context) ([]models.Account, error)

	// SearchAccounts stores query in the session and returns the matches.
	SearchAccounts(ctx context.Context, query string) ([]models.Account, error)

	ShowAccount(ctx context.Context, id int64) (models.Account, error)
	CreateAccount(ctx context.Context, request models.AccountRequest) (models.Account, error)
	UpdateAccount(ctx context.Context, id int64, request models.AccountRequest) (models.Account, error)
	DeleteAccount(ctx context.Context, id int64) error

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}
