package store

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

// preferenceRepository stores encoded user preferences in the
// "preferences" table, one row per (user_id, name).
type preferenceRepository struct {
	*DB
	logger *logger.Logger
}

func NewPreferenceRepository(db *DB, logger *logger.Logger) PreferenceRepository {
	logger.Debug().Msg("creating preference repository")
	return &preferenceRepository{
		DB:     db,
		logger: logger,
	}
}

// GetPreferences returns the stored values of the named preferences.
// Names without a row are absent from the result.
func (r *preferenceRepository) GetPreferences(ctx context.Context, userID int64, names ...string) (map[string]string, error) {
	log := logger.FromContext(ctx)

	values := make(map[string]string, len(names))
	if len(names) == 0 {
		return values, nil
	}

	query, args, err := buildGetPreferencesQuery(r.builder, userID, names)
	if err != nil {
		return nil, wrapBuildError(err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "preferenceRepository.GetPreferences").
			Int64("user_id", userID).
			Msg("failed to select preferences")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var pref models.Preference
		if err = rows.Scan(&pref.Name, &pref.Value); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		values[pref.Name] = pref.Value
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return values, nil
}

// SavePreferences upserts every entry of values in one transaction.
func (r *preferenceRepository) SavePreferences(ctx context.Context, userID int64, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	now := time.Now().UTC()
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		for _, name := range slices.Sorted(maps.Keys(values)) {
			query, args, err := buildUpsertPreferenceQuery(r.builder, userID, name, values[name], now)
			if err != nil {
				return wrapBuildError(err)
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "preferenceRepository.SavePreferences").
			Int64("user_id", userID).
			Msg("failed to save preferences")
		return err
	}

	return nil
}
