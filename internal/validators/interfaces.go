// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds input validation for the account operations.
//
// A Validator accepts any model and an optional list of field names. With
// no fields a default set is checked; with fields only those are checked,
// which lets partial updates validate just what they carry.
package validators

import "context"

// Validator validates arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
