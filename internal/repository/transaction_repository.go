package repository

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"bank-service/internal/domain"
	"bank-service/internal/errors"
)

type transactionRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewTransactionRepository(db SQLExecutor, logger *slog.Logger) domain.TransactionRepository {
	return &transactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *transactionRepository) Create(tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, account_id, description, amount, timestamp, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	now := time.Now()
	_, err := r.db.Exec(
		query,
		tx.ID,
		tx.AccountID,
		tx.Description,
		tx.Amount.String(),
		tx.Timestamp,
		now,
	)

	if err != nil {
		r.logger.Error("Failed to create transaction",
			"transaction_id", tx.ID,
			"account_id", tx.AccountID,
			"error", err)
		return errors.NewAppError(errors.InternalError, "failed to create transaction").WithDetails(err.Error())
	}

	tx.CreatedAt = now
	r.logger.Info("Transaction recorded", "transaction_id", tx.ID, "account_id", tx.AccountID)
	return nil
}

// ListByAccount returns the account's transactions in creation order, using
// the append sequence rather than the timestamp (deposits within the same
// instant must keep their insert order).
func (r *transactionRepository) ListByAccount(accountID int64) ([]domain.Transaction, error) {
	query := `
		SELECT id, account_id, description, amount, timestamp, created_at
		FROM transactions WHERE account_id = $1
		ORDER BY seq ASC
	`

	rows, err := r.db.Query(query, accountID)
	if err != nil {
		r.logger.Error("Failed to list transactions", "account_id", accountID, "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to list transactions").WithDetails(err.Error())
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var amountStr string

		if err := rows.Scan(
			&tx.ID,
			&tx.AccountID,
			&tx.Description,
			&amountStr,
			&tx.Timestamp,
			&tx.CreatedAt,
		); err != nil {
			r.logger.Error("Failed to scan transaction", "account_id", accountID, "error", err)
			return nil, errors.NewAppError(errors.InternalError, "failed to scan transaction").WithDetails(err.Error())
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, errors.NewAppError(errors.InternalError, "failed to parse amount").WithDetails(err.Error())
		}
		tx.Amount = amount

		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to read transactions").WithDetails(err.Error())
	}

	return transactions, nil
}
