package repository

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"bank-service/internal/domain"
	"bank-service/internal/errors"
)

type accountRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewAccountRepository(db SQLExecutor, logger *slog.Logger) domain.AccountRepository {
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

func (r *accountRepository) Create(account *domain.Account) error {
	query := `
		INSERT INTO accounts (first_name, last_name, balance, notification_preference, last_updated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(
		query,
		account.FirstName,
		account.LastName,
		account.Balance.String(),
		account.NotificationPreference,
		account.LastUpdated,
		now,
	).Scan(&account.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				r.logger.Warn("Duplicate last name on account creation", "last_name", account.LastName)
				return errors.ErrDuplicateLastName
			}
		}
		r.logger.Error("Failed to create account", "last_name", account.LastName, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to create account").WithDetails(err.Error())
	}

	account.CreatedAt = now
	r.logger.Info("Account created successfully", "account_id", account.ID)
	return nil
}

const accountColumns = `id, first_name, last_name, balance, notification_preference, last_updated, created_at`

func (r *accountRepository) GetByID(id int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	return r.scanAccount(query, id)
}

func (r *accountRepository) GetByIDForUpdate(id int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`

	return r.scanAccount(query, id)
}

func (r *accountRepository) GetByFirstName(firstName string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE first_name = $1`

	return r.scanAccount(query, firstName)
}

func (r *accountRepository) GetByLastName(lastName string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE last_name = $1`

	return r.scanAccount(query, lastName)
}

func (r *accountRepository) scanAccount(query string, arg interface{}) (*domain.Account, error) {
	var account domain.Account
	var balanceStr string

	err := r.db.QueryRow(query, arg).Scan(
		&account.ID,
		&account.FirstName,
		&account.LastName,
		&balanceStr,
		&account.NotificationPreference,
		&account.LastUpdated,
		&account.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			r.logger.Warn("Account not found", "key", arg)
			return nil, errors.ErrAccountNotFound
		}
		r.logger.Error("Failed to get account", "key", arg, "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to get account").WithDetails(err.Error())
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		r.logger.Error("Failed to parse balance", "account_id", account.ID, "balance_str", balanceStr, "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to parse balance").WithDetails(err.Error())
	}

	account.Balance = balance
	return &account, nil
}

func (r *accountRepository) Update(account *domain.Account) error {
	query := `
		UPDATE accounts
		SET balance = $1, notification_preference = $2, last_updated = $3
		WHERE id = $4
	`

	result, err := r.db.Exec(
		query,
		account.Balance.String(),
		account.NotificationPreference,
		account.LastUpdated,
		account.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update account", "account_id", account.ID, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to update account").WithDetails(err.Error())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to get rows affected").WithDetails(err.Error())
	}

	if rowsAffected == 0 {
		r.logger.Warn("No account found to update", "account_id", account.ID)
		return errors.ErrAccountNotFound
	}

	r.logger.Info("Account updated", "account_id", account.ID, "balance", account.Balance)
	return nil
}

// Delete removes the account row; the schema cascades the delete to the
// account's transactions.
func (r *accountRepository) Delete(id int64) error {
	query := `DELETE FROM accounts WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		r.logger.Error("Failed to delete account", "account_id", id, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to delete account").WithDetails(err.Error())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to get rows affected").WithDetails(err.Error())
	}

	if rowsAffected == 0 {
		return errors.ErrAccountNotFound
	}

	r.logger.Info("Account deleted", "account_id", id)
	return nil
}
