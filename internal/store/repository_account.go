package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

// accountRepository is the SQL implementation of [AccountRepository] over the
// "accounts" and "account_permissions" tables.
type accountRepository struct {
	*DB
	logger *logger.Logger
}

func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		DB:     db,
		logger: logger,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var (
		account models.Account
		access  string
	)

	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.Name,
		&access,
		&account.Website,
		&account.Phone,
		&account.Email,
		&account.Notes,
		&account.CreatedAt,
		&account.UpdatedAt,
		&account.LastViewedAt,
		&account.DeletedAt,
	)
	account.Access = models.AccessMode(access)

	return account, err
}

// Candidates returns every live account the user owns or that is not
// private, with their permission lists loaded.
func (r *accountRepository) Candidates(ctx context.Context, userID int64) ([]models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCandidatesQuery(r.builder, userID)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.Candidates").Msg("failed to build query")
		return nil, wrapBuildError(err)
	}

	var accounts []models.Account
	err = r.withRetry(ctx, func() error {
		accounts, err = r.queryAccounts(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "accountRepository.Candidates").
			Int64("user_id", userID).
			Msg("failed to select candidate accounts")
		return nil, err
	}

	query, args, err = buildCandidatePermissionsQuery(r.builder, userID)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.Candidates").Msg("failed to build query")
		return nil, wrapBuildError(err)
	}
	if err = r.attachPermissions(ctx, accounts, query, args...); err != nil {
		log.Err(err).
			Str("func", "accountRepository.Candidates").
			Int64("user_id", userID).
			Msg("failed to load account permissions")
		return nil, err
	}

	return accounts, nil
}

func (r *accountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]models.Account, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	accounts := make([]models.Account, 0, 32)
	for rows.Next() {
		account, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return accounts, nil
}

// attachPermissions runs query, which yields (account_id, user_id) rows,
// and fills SharedWith of the matching accounts in place. Rows of accounts
// not in the slice are skipped.
func (r *accountRepository) attachPermissions(ctx context.Context, accounts []models.Account, query string, args ...any) error {
	if len(accounts) == 0 {
		return nil
	}

	index := make(map[int64]int, len(accounts))
	for i, account := range accounts {
		index[account.ID] = i
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var accountID, userID int64
		if err = rows.Scan(&accountID, &userID); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if i, ok := index[accountID]; ok {
			accounts[i].SharedWith = append(accounts[i].SharedWith, userID)
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return nil
}

// GetAccount loads one account by id, including destroyed ones.
// Returns [ErrAccountNotFound] if no row matches.
func (r *accountRepository) GetAccount(ctx context.Context, id int64) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetAccountQuery(r.builder, id)
	if err != nil {
		return models.Account{}, wrapBuildError(err)
	}

	var account models.Account
	err = r.withRetry(ctx, func() error {
		account, err = scanAccount(r.DB.QueryRowContext(ctx, query, args...))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "accountRepository.GetAccount").
			Int64("account_id", id).
			Msg("failed to get account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	query, args, err = buildAccountPermissionsQuery(r.builder, id)
	if err != nil {
		return models.Account{}, wrapBuildError(err)
	}

	accounts := []models.Account{account}
	if err = r.attachPermissions(ctx, accounts, query, args...); err != nil {
		log.Err(err).
			Str("func", "accountRepository.GetAccount").
			Int64("account_id", id).
			Msg("failed to load account permissions")
		return models.Account{}, err
	}

	return accounts[0], nil
}

// CreateAccount inserts the account and its permission list in one
// transaction and returns the stored account with its new id.
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	account.CreatedAt, account.UpdatedAt = now, now

	query, args, err := buildInsertAccountQuery(r.builder, account)
	if err != nil {
		return models.Account{}, wrapBuildError(err)
	}

	err = r.inTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&account.ID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if account.ID == 0 {
			return ErrAccountNotSaved
		}

		if account.Access != models.AccessShared {
			account.SharedWith = nil
			return nil
		}
		return r.insertPermissions(ctx, tx, account.ID, account.SharedWith)
	})
	if err != nil {
		log.Err(err).
			Str("func", "accountRepository.CreateAccount").
			Int64("user_id", account.UserID).
			Msg("failed to create account")
		return models.Account{}, err
	}

	return account, nil
}

func (r *accountRepository) insertPermissions(ctx context.Context, tx *sql.Tx, accountID int64, userIDs []int64) error {
	if len(userIDs) == 0 {
		return nil
	}

	query, args, err := buildInsertPermissionsQuery(r.builder, accountID, userIDs)
	if err != nil {
		return wrapBuildError(err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// UpdateAccount writes the non-nil fields of update. When SharedWith is set
// the permission list is replaced. Destroyed accounts are not updated and
// yield [ErrAccountNotFound].
func (r *accountRepository) UpdateAccount(ctx context.Context, update models.AccountUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateAccountQuery(r.builder, update, time.Now().UTC())
	if err != nil {
		return wrapBuildError(err)
	}

	err = r.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected, err := result.RowsAffected(); err == nil && affected == 0 {
			return ErrAccountNotFound
		}

		if update.SharedWith == nil {
			return nil
		}

		deleteQuery, deleteArgs, err := buildDeletePermissionsQuery(r.builder, update.ID)
		if err != nil {
			return wrapBuildError(err)
		}
		if _, err = tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		return r.insertPermissions(ctx, tx, update.ID, *update.SharedWith)
	})
	if err != nil {
		log.Err(err).
			Str("func", "accountRepository.UpdateAccount").
			Int64("account_id", update.ID).
			Msg("failed to update account")
		return err
	}

	return nil
}

// DeleteAccount marks the account destroyed. Deleting an already destroyed
// or unknown account yields [ErrAccountNotFound].
func (r *accountRepository) DeleteAccount(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSoftDeleteAccountQuery(r.builder, id, time.Now().UTC())
	if err != nil {
		return wrapBuildError(err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "accountRepository.DeleteAccount").
			Int64("account_id", id).
			Msg("failed to delete account")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// TouchLastViewed stores at as the account's last view time.
func (r *accountRepository) TouchLastViewed(ctx context.Context, id int64, at time.Time) error {
	query, args, err := buildTouchLastViewedQuery(r.builder, id, at)
	if err != nil {
		return wrapBuildError(err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "accountRepository.TouchLastViewed").
			Int64("account_id", id).
			Msg("failed to touch account")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
