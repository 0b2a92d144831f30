// Package http implements the HTTP transport layer of go-accounts.
//
// It exposes the account listing routes, the register/login endpoints and the
// middleware stack around them. Authentication, per-login sessions, request
// tracing, access logging and response compression are handled in this
// package before requests reach the service layer. Responses are rendered as
// HTML pages from embedded templates, or as JSON/XML when the client asks for
// an export representation.
package http
