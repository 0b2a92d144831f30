package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

type contactRepository struct {
	*DB
	logger *logger.Logger
}

func NewContactRepository(db *DB, logger *logger.Logger) ContactRepository {
	return &contactRepository{
		DB:     db,
		logger: logger,
	}
}

// GetContact loads one contact. Returns [ErrContactNotFound] if no row
// matches.
func (r *contactRepository) GetContact(ctx context.Context, id int64) (models.Contact, error) {
	query, args, err := buildGetContactQuery(r.builder, id)
	if err != nil {
		return models.Contact{}, wrapBuildError(err)
	}

	var contact models.Contact
	err = r.DB.QueryRowContext(ctx, query, args...).
		Scan(&contact.ID, &contact.UserID, &contact.FirstName, &contact.LastName)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Contact{}, ErrContactNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "contactRepository.GetContact").
			Int64("contact_id", id).
			Msg("failed to get contact")
		return models.Contact{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return contact, nil
}
