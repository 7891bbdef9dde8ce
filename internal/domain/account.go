package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a named holder of a balance and its transaction history.
// The ID is assigned by the store on creation and immutable afterwards.
type Account struct {
	ID                     int64           `json:"account_id"`
	FirstName              string          `json:"first_name"`
	LastName               string          `json:"last_name"`
	Balance                decimal.Decimal `json:"balance"`
	NotificationPreference string          `json:"notification_preference"`
	// LastUpdated advances only on deposits. The deposit-window check reads
	// it as an account-local clock, so withdrawals leave it untouched.
	LastUpdated time.Time `json:"last_updated"`
	CreatedAt   time.Time `json:"created_at"`
}

type AccountRepository interface {
	// Create persists the account and assigns its ID.
	Create(account *Account) error
	GetByID(id int64) (*Account, error)
	// GetByIDForUpdate locks the account row for the duration of the
	// enclosing transaction.
	GetByIDForUpdate(id int64) (*Account, error)
	GetByFirstName(firstName string) (*Account, error)
	GetByLastName(lastName string) (*Account, error)
	// Update writes balance, notification preference and last-updated.
	Update(account *Account) error
	// Delete removes the account together with its transactions.
	Delete(id int64) error
}

// Store is the unit of work over all repositories. WithTransaction runs fn
// against a store whose repositories share a single database transaction;
// fn returning an error rolls everything back.
type Store interface {
	Account() AccountRepository
	Transaction() TransactionRepository
	WithTransaction(fn func(Store) error) error
}
