// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accountRow(id, owner int64, name string, access models.AccessMode, deletedAt *time.Time) []driver.Value {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var deleted driver.Value
	if deletedAt != nil {
		deleted = *deletedAt
	}
	return []driver.Value{id, owner, name, string(access), "", "", "", "", now, now, nil, deleted}
}

func newTestAccountRepo(t *testing.T) (*accountRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	repo := NewAccountRepository(newDBFromSQL(db), logger.Nop()).(*accountRepository)
	return repo, mock
}

func TestAccountRepository_Candidates(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	rows := sqlmock.NewRows(accountColumns).
		AddRow(accountRow(1, 7, "Public one", models.AccessPublic, nil)...).
		AddRow(accountRow(2, 8, "Shared one", models.AccessShared, nil)...)
	mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE deleted_at IS NULL AND \(user_id = \$1 OR access <> \$2\)`).
		WithArgs(int64(7), "Private").
		WillReturnRows(rows)

	mock.ExpectQuery(`SELECT account_id, user_id FROM account_permissions WHERE account_id IN \(SELECT id FROM accounts WHERE deleted_at IS NULL AND \(user_id = \$1 OR access <> \$2\)\)`).
		WithArgs(int64(7), "Private").
		WillReturnRows(sqlmock.NewRows([]string{"account_id", "user_id"}).
			AddRow(int64(2), int64(7)).
			AddRow(int64(2), int64(9)))

	accounts, err := repo.Candidates(testContext(), 7)
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	assert.Equal(t, "Public one", accounts[0].Name)
	assert.Equal(t, models.AccessPublic, accounts[0].Access)
	assert.Empty(t, accounts[0].SharedWith)
	assert.Equal(t, []int64{7, 9}, accounts[1].SharedWith)
	assert.Nil(t, accounts[1].LastViewedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Candidates_Empty(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM accounts`).
		WillReturnRows(sqlmock.NewRows(accountColumns))

	accounts, err := repo.Candidates(testContext(), 1)
	require.NoError(t, err)
	assert.Empty(t, accounts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Candidates_RetriesTransientErrors(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM accounts`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	mock.ExpectQuery(`SELECT (.+) FROM accounts`).
		WillReturnRows(sqlmock.NewRows(accountColumns))

	_, err := repo.Candidates(testContext(), 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Candidates_QueryError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM accounts`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Candidates(testContext(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestAccountRepository_GetAccount(t *testing.T) {
	deletedAt := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		setup         func(mock sqlmock.Sqlmock)
		wantErr       error
		wantDestroyed bool
	}{
		{
			name: "live account",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE id = \$1`).
					WithArgs(int64(3)).
					WillReturnRows(sqlmock.NewRows(accountColumns).
						AddRow(accountRow(3, 1, "Acme", models.AccessPrivate, nil)...))
				mock.ExpectQuery(`FROM account_permissions`).
					WillReturnRows(sqlmock.NewRows([]string{"account_id", "user_id"}))
			},
		},
		{
			name: "destroyed account is returned",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE id = \$1`).
					WithArgs(int64(3)).
					WillReturnRows(sqlmock.NewRows(accountColumns).
						AddRow(accountRow(3, 1, "Acme", models.AccessPublic, &deletedAt)...))
				mock.ExpectQuery(`FROM account_permissions`).
					WillReturnRows(sqlmock.NewRows([]string{"account_id", "user_id"}))
			},
			wantDestroyed: true,
		},
		{
			name: "missing account",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE id = \$1`).
					WithArgs(int64(3)).
					WillReturnRows(sqlmock.NewRows(accountColumns))
			},
			wantErr: ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestAccountRepo(t)
			tt.setup(mock)

			account, err := repo.GetAccount(testContext(), 3)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(3), account.ID)
			assert.Equal(t, tt.wantDestroyed, account.Destroyed())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAccountRepository_CreateAccount_Shared(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO accounts \(user_id,name,access,website,phone,email,notes,created_at,updated_at\) VALUES (.+) RETURNING id`).
		WithArgs(int64(1), "Acme", "Shared", "", "", "", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectExec(`INSERT INTO account_permissions \(account_id,user_id\) VALUES \(\$1,\$2\),\(\$3,\$4\)`).
		WithArgs(int64(11), int64(2), int64(11), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	created, err := repo.CreateAccount(testContext(), models.Account{
		UserID:     1,
		Name:       "Acme",
		Access:     models.AccessShared,
		SharedWith: []int64{3, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_CreateAccount_PublicDropsPermissions(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO accounts`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))
	mock.ExpectCommit()

	created, err := repo.CreateAccount(testContext(), models.Account{
		UserID:     1,
		Name:       "Acme",
		Access:     models.AccessPublic,
		SharedWith: []int64{2},
	})
	require.NoError(t, err)
	assert.Nil(t, created.SharedWith)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_CreateAccount_RollsBackOnPermissionError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO accounts`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(13)))
	mock.ExpectExec(`INSERT INTO account_permissions`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
	mock.ExpectRollback()

	_, err := repo.CreateAccount(testContext(), models.Account{
		UserID: 1, Name: "Acme", Access: models.AccessShared, SharedWith: []int64{404},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_UpdateAccount_ReplacesPermissions(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	name := "Renamed"
	shared := []int64{4}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE accounts SET updated_at = \$1, name = \$2 WHERE deleted_at IS NULL AND id = \$3`).
		WithArgs(sqlmock.AnyArg(), "Renamed", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM account_permissions WHERE account_id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO account_permissions`).
		WithArgs(int64(5), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateAccount(testContext(), models.AccountUpdate{ID: 5, Name: &name, SharedWith: &shared})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_UpdateAccount_ClearsPermissions(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	empty := []int64{}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE accounts`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM account_permissions`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateAccount(testContext(), models.AccountUpdate{ID: 5, SharedWith: &empty})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_UpdateAccount_Destroyed(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE accounts`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.UpdateAccount(testContext(), models.AccountUpdate{ID: 5})
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_DeleteAccount(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		execErr  error
		wantErr  error
	}{
		{name: "soft deleted", affected: 1},
		{name: "already destroyed", affected: 0, wantErr: ErrAccountNotFound},
		{name: "driver failure", execErr: errors.New("boom"), wantErr: ErrExecutingStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestAccountRepo(t)

			exp := mock.ExpectExec(`UPDATE accounts SET deleted_at = \$1, updated_at = \$2 WHERE deleted_at IS NULL AND id = \$3`).
				WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), int64(9))
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			err := repo.DeleteAccount(testContext(), 9)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAccountRepository_TouchLastViewed(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	at := time.Now().UTC()

	mock.ExpectExec(`UPDATE accounts SET last_viewed_at = \$1 WHERE id = \$2`).
		WithArgs(at, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.TouchLastViewed(testContext(), 4, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}
