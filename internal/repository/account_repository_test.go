package repository

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bank-service/internal/domain"
	"bank-service/internal/errors"
)

func newAccountRepoTest(t *testing.T) (domain.AccountRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAccountRepository(db, logger), mock
}

func accountRows(id int64, firstName, lastName, balance string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "first_name", "last_name", "balance", "notification_preference", "last_updated", "created_at",
	}).AddRow(id, firstName, lastName, balance, "email", now, now)
}

func TestAccountRepository_Create(t *testing.T) {
	repo, mock := newAccountRepoTest(t)

	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs("Ben", "Scott", "0", "email", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	account := &domain.Account{
		FirstName:              "Ben",
		LastName:               "Scott",
		Balance:                decimal.Zero,
		NotificationPreference: "email",
		LastUpdated:            time.Now(),
	}

	require.NoError(t, repo.Create(account))
	assert.Equal(t, int64(7), account.ID)
	assert.False(t, account.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Create_duplicateLastName(t *testing.T) {
	repo, mock := newAccountRepoTest(t)

	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(&pq.Error{Code: "23505"})

	account := &domain.Account{
		FirstName:              "Bill",
		LastName:               "Scott",
		Balance:                decimal.Zero,
		NotificationPreference: "email",
		LastUpdated:            time.Now(),
	}

	err := repo.Create(account)
	assert.True(t, errors.IsCode(err, errors.DuplicateLastName))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByID(t *testing.T) {
	repo, mock := newAccountRepoTest(t)

	mock.ExpectQuery("FROM accounts WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(accountRows(7, "Ben", "Scott", "1234.50"))

	account, err := repo.GetByID(7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), account.ID)
	assert.Equal(t, "Ben", account.FirstName)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("1234.50")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByID_notFound(t *testing.T) {
	repo, mock := newAccountRepoTest(t)

	mock.ExpectQuery("FROM accounts WHERE id").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(99)
	assert.True(t, errors.IsCode(err, errors.AccountNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByIDForUpdate_locksRow(t *testing.T) {
	repo, mock := newAccountRepoTest(t)

	mock.ExpectQuery("FOR UPDATE").
		WithArgs(int64(7)).
		WillReturnRows(accountRows(7, "Ben", "Scott", "100"))

	account, err := repo.GetByIDForUpdate(7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), account.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByName(t *testing.T) {
	repo, mock := newAccountRepoTest(t)

	mock.ExpectQuery("FROM accounts WHERE first_name").
		WithArgs("Ben").
		WillReturnRows(accountRows(7, "Ben", "Scott", "100"))

	account, err := repo.GetByFirstName("Ben")
	require.NoError(t, err)
	assert.Equal(t, "Scott", account.LastName)

	mock.ExpectQuery("FROM accounts WHERE last_name").
		WithArgs("Scott").
		WillReturnRows(accountRows(7, "Ben", "Scott", "100"))

	account, err = repo.GetByLastName("Scott")
	require.NoError(t, err)
	assert.Equal(t, "Ben", account.FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Update(t *testing.T) {
	repo, mock := newAccountRepoTest(t)

	mock.ExpectExec("UPDATE accounts").
		WithArgs("150", "email", sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	account := &domain.Account{
		ID:                     7,
		Balance:                decimal.NewFromInt(150),
		NotificationPreference: "email",
		LastUpdated:            time.Now(),
	}

	require.NoError(t, repo.Update(account))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Update_missingAccount(t *testing.T) {
	repo, mock := newAccountRepoTest(t)

	mock.ExpectExec("UPDATE accounts").
		WillReturnResult(sqlmock.NewResult(0, 0))

	account := &domain.Account{
		ID:      99,
		Balance: decimal.NewFromInt(10),
	}

	err := repo.Update(account)
	assert.True(t, errors.IsCode(err, errors.AccountNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Delete(t *testing.T) {
	repo, mock := newAccountRepoTest(t)

	mock.ExpectExec("DELETE FROM accounts").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(7))

	mock.ExpectExec("DELETE FROM accounts").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(99)
	assert.True(t, errors.IsCode(err, errors.AccountNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
