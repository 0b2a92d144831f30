package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

type activityRepository struct {
	*DB
	logger *logger.Logger
}

func NewActivityRepository(db *DB, logger *logger.Logger) ActivityRepository {
	return &activityRepository{
		DB:     db,
		logger: logger,
	}
}

// LogActivity appends one entry to the activity log.
func (r *activityRepository) LogActivity(ctx context.Context, activity models.Activity) error {
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}

	query, args, err := buildInsertActivityQuery(r.builder, activity)
	if err != nil {
		return wrapBuildError(err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "activityRepository.LogActivity").
			Int64("user_id", activity.UserID).
			Str("action", string(activity.Action)).
			Msg("failed to log activity")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
