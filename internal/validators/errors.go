package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID  = errors.New("invalid user ID")
	ErrEmptyName      = errors.New("name is required")
	ErrInvalidAccess  = errors.New("invalid access mode")
	ErrNoFieldsToSave = errors.New("at least one field must be provided for update")
)
