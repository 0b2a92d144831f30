package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/internal/validators"
)

var errorStatusMap = map[error]int{
	ErrInvalidAccountID: http.StatusNotFound,
	ErrInvalidBody:      http.StatusBadRequest,

	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrVersionIsNotSpecified:   http.StatusBadRequest,
	service.ErrAccountUnavailable:      http.StatusNotFound,
	service.ErrAccessDenied:            http.StatusNotFound,
	service.ErrInvalidAccount:          http.StatusUnprocessableEntity,

	validators.ErrUnsupportedType: http.StatusBadRequest,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusUnauthorized,
	store.ErrAccountNotFound:    http.StatusNotFound,
	store.ErrContactNotFound:    http.StatusNotFound,
	store.ErrAccountNotSaved:    http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// statusFromError maps err to a response status. ErrInvalidAccount is checked
// first because validation failures wrap the validator's own sentinel.
func statusFromError(err error) int {
	if errors.Is(err, service.ErrInvalidAccount) {
		return http.StatusUnprocessableEntity
	}
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
