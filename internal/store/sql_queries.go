package store

import (
	"fmt"
	"slices"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-accounts/models"
)

const (
	accountsTable    = "accounts"
	permissionsTable = "account_permissions"
	usersTable       = "users"
	preferencesTable = "preferences"
	activitiesTable  = "activities"
	contactsTable    = "contacts"
)

var accountColumns = []string{
	"id", "user_id", "name", "access", "website", "phone", "email", "notes",
	"created_at", "updated_at", "last_viewed_at", "deleted_at",
}

var userColumns = []string{"user_id", "login", "password_hash", "name", "created_at"}

// buildCandidatesQuery selects the live accounts a user might see: their own
// and every non-private one. Shared accounts are narrowed later by the
// visibility rules, which need the permission list.
func buildCandidatesQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select(accountColumns...).
		From(accountsTable).
		Where(sq.Eq{"deleted_at": nil}).
		Where(candidateFilter(userID)).
		OrderBy("id").
		ToSql()
}

func candidateFilter(userID int64) sq.Or {
	return sq.Or{
		sq.Eq{"user_id": userID},
		sq.NotEq{"access": string(models.AccessPrivate)},
	}
}

// buildGetAccountQuery selects one account by id, destroyed or not.
func buildGetAccountQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Select(accountColumns...).
		From(accountsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// buildCandidatePermissionsQuery selects the permission rows of every
// candidate account. The candidate set is repeated as a subquery so the
// number of bound arguments does not grow with the number of accounts.
func buildCandidatePermissionsQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	candidates, candidateArgs, err := sq.Select("id").
		From(accountsTable).
		Where(sq.Eq{"deleted_at": nil}).
		Where(candidateFilter(userID)).
		ToSql()
	if err != nil {
		return "", nil, err
	}

	return b.Select("account_id", "user_id").
		From(permissionsTable).
		Where(sq.Expr("account_id IN ("+candidates+")", candidateArgs...)).
		OrderBy("account_id", "user_id").
		ToSql()
}

func buildAccountPermissionsQuery(b sq.StatementBuilderType, accountID int64) (string, []any, error) {
	return b.Select("account_id", "user_id").
		From(permissionsTable).
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("user_id").
		ToSql()
}

func buildInsertAccountQuery(b sq.StatementBuilderType, account models.Account) (string, []any, error) {
	return b.Insert(accountsTable).
		Columns("user_id", "name", "access", "website", "phone", "email", "notes", "created_at", "updated_at").
		Values(account.UserID, account.Name, string(account.Access), account.Website, account.Phone,
			account.Email, account.Notes, account.CreatedAt, account.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func buildInsertPermissionsQuery(b sq.StatementBuilderType, accountID int64, userIDs []int64) (string, []any, error) {
	ids := slices.Clone(userIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	insert := b.Insert(permissionsTable).Columns("account_id", "user_id")
	for _, userID := range ids {
		insert = insert.Values(accountID, userID)
	}
	return insert.ToSql()
}

func buildDeletePermissionsQuery(b sq.StatementBuilderType, accountID int64) (string, []any, error) {
	return b.Delete(permissionsTable).
		Where(sq.Eq{"account_id": accountID}).
		ToSql()
}

// buildUpdateAccountQuery builds an UPDATE touching only the fields set in
// update. updated_at is always refreshed.
func buildUpdateAccountQuery(b sq.StatementBuilderType, update models.AccountUpdate, now time.Time) (string, []any, error) {
	query := b.Update(accountsTable).Set("updated_at", now)

	if update.Name != nil {
		query = query.Set("name", *update.Name)
	}
	if update.Access != nil {
		query = query.Set("access", string(*update.Access))
	}
	if update.Website != nil {
		query = query.Set("website", *update.Website)
	}
	if update.Phone != nil {
		query = query.Set("phone", *update.Phone)
	}
	if update.Email != nil {
		query = query.Set("email", *update.Email)
	}
	if update.Notes != nil {
		query = query.Set("notes", *update.Notes)
	}

	return query.
		Where(sq.Eq{"id": update.ID, "deleted_at": nil}).
		ToSql()
}

func buildSoftDeleteAccountQuery(b sq.StatementBuilderType, id int64, now time.Time) (string, []any, error) {
	return b.Update(accountsTable).
		Set("deleted_at", now).
		Set("updated_at", now).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
}

func buildTouchLastViewedQuery(b sq.StatementBuilderType, id int64, at time.Time) (string, []any, error) {
	return b.Update(accountsTable).
		Set("last_viewed_at", at).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns("login", "password_hash", "name", "created_at").
		Values(user.Login, user.PasswordHash, user.Name, user.CreatedAt).
		Suffix("RETURNING user_id").
		ToSql()
}

func buildFindUserByLoginQuery(b sq.StatementBuilderType, login string) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"login": login}).
		ToSql()
}

func buildListUsersExceptQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(sq.NotEq{"user_id": userID}).
		OrderBy("name", "login").
		ToSql()
}

func buildGetPreferencesQuery(b sq.StatementBuilderType, userID int64, names []string) (string, []any, error) {
	return b.Select("name", "value").
		From(preferencesTable).
		Where(sq.Eq{"user_id": userID, "name": names}).
		ToSql()
}

// buildUpsertPreferenceQuery inserts or replaces one preference. The
// ON CONFLICT form is understood by both PostgreSQL and SQLite.
func buildUpsertPreferenceQuery(b sq.StatementBuilderType, userID int64, name, value string, now time.Time) (string, []any, error) {
	return b.Insert(preferencesTable).
		Columns("user_id", "name", "value", "updated_at").
		Values(userID, name, value, now).
		Suffix("ON CONFLICT (user_id, name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
}

func buildInsertActivityQuery(b sq.StatementBuilderType, activity models.Activity) (string, []any, error) {
	return b.Insert(activitiesTable).
		Columns("user_id", "subject_type", "subject_id", "action", "created_at").
		Values(activity.UserID, activity.SubjectType, activity.SubjectID, string(activity.Action), activity.CreatedAt).
		ToSql()
}

func buildGetContactQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Select("id", "user_id", "first_name", "last_name").
		From(contactsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func wrapBuildError(err error) error {
	return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
}
