// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-accounts/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldUserID targets the owner of an account.
	FieldUserID = "user_id"

	// FieldName targets the display name of an account.
	FieldName = "name"

	// FieldAccess targets the access mode of an account.
	FieldAccess = "access"

	// FieldAnyField requires an update request to carry at least one field.
	FieldAnyField = "any_field"
)

// AccountValidator implements Validator for models.Account and
// models.AccountRequest. It checks only that an account has a name and a
// known access mode; everything else is free-form.
type AccountValidator struct {
}

// NewAccountValidator constructs a new AccountValidator and returns it as
// the Validator interface.
func NewAccountValidator() Validator {
	return &AccountValidator{}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer
// forms are accepted.
//
// Returns ErrUnsupportedType for any other type.
func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Account:
		return v.validateAccount(ctx, value, fields...)
	case *models.Account:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateAccount(ctx, *value, fields...)
	case models.AccountRequest:
		return v.validateRequest(ctx, value, fields...)
	case *models.AccountRequest:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateRequest(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *AccountValidator) validateAccount(ctx context.Context, account models.Account, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldName, FieldAccess}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if account.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldName:
			if strings.TrimSpace(account.Name) == "" {
				return ErrEmptyName
			}
		case FieldAccess:
			if !account.Access.Valid() {
				return ErrInvalidAccess
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateRequest checks only the fields present in the request, so a
// partial update leaves the missing ones untouched.
func (v *AccountValidator) validateRequest(ctx context.Context, request models.AccountRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldAccess}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if request.Name != nil && strings.TrimSpace(*request.Name) == "" {
				return ErrEmptyName
			}
		case FieldAccess:
			if request.Access != nil && !request.Access.Valid() {
				return ErrInvalidAccess
			}
		case FieldAnyField:
			if request.Name == nil && request.Access == nil && request.Website == nil &&
				request.Phone == nil && request.Email == nil && request.Notes == nil && request.Users == nil {
				return ErrNoFieldsToSave
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
