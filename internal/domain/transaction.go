package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is an immutable record of a single balance-affecting event.
// It belongs to exactly one account for its lifetime and is removed with it.
// Description is display text ("Deposit of 50$"), not a machine-readable enum.
type Transaction struct {
	ID          uuid.UUID `json:"id"`
	AccountID   int64     `json:"account_id"`
	Description string    `json:"description"`
	// Amount is always the positive magnitude of the movement.
	Amount decimal.Decimal `json:"amount"`
	// Timestamp is copied from the account's LastUpdated at construction.
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTransaction builds a record for account, stamped with the account's
// last-updated time.
func NewTransaction(account *Account, description string, amount decimal.Decimal) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		AccountID:   account.ID,
		Description: description,
		Amount:      amount,
		Timestamp:   account.LastUpdated,
	}
}

type TransactionRepository interface {
	Create(tx *Transaction) error
	// ListByAccount returns the account's transactions in creation order.
	ListByAccount(accountID int64) ([]Transaction, error)
}
