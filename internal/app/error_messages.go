// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-accounts server handlers and the command-line client.
//
// All Msg* constants are human-readable strings written into HTTP response
// bodies, flash messages or log entries. Keeping them in one place keeps the
// wording consistent between the server and the client that prints them.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the supplied login/password
	// combination does not match any existing user record.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgRegistrationFailed is returned when the registration handler
	// encounters an unexpected error.
	MsgRegistrationFailed = "registration failed"

	// MsgLoginFailed is returned when the login handler encounters an
	// unexpected error that prevents issuing a token.
	MsgLoginFailed = "login failed"

	// MsgLoginAlreadyExists is returned when a registration attempt is
	// rejected because the requested login is already in use.
	MsgLoginAlreadyExists = "login already exists"

	// MsgAccountUnavailable is the warning flashed when the requested account
	// was deleted or is no longer visible to the user.
	MsgAccountUnavailable = "This account is no longer available."

	// MsgAccountDeleted is the notice flashed after an account is deleted
	// from its own page. It takes the account name.
	MsgAccountDeleted = "%s has been deleted."

	// MsgAccountInvalid is returned when create or update input is rejected.
	MsgAccountInvalid = "account is invalid"
)
