package service

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"bank-service/internal/domain"
)

// recentTransactionLimit caps how many transactions ListRecent returns.
const recentTransactionLimit = 10

type TransactionService struct {
	store  domain.Store
	logger *slog.Logger
}

func NewTransactionService(store domain.Store, logger *slog.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		logger: logger,
	}
}

// TransactionView is the display projection of a transaction.
type TransactionView struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ListRecent returns up to the 10 most recent transactions of the account,
// newest first.
func (s *TransactionService) ListRecent(accountID int64) ([]TransactionView, error) {
	s.logger.Info("Listing recent transactions", "account_id", accountID)

	account, err := s.store.Account().GetByID(accountID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.store.Transaction().ListByAccount(account.ID)
	if err != nil {
		return nil, err
	}

	views := make([]TransactionView, 0, recentTransactionLimit)
	for i := len(transactions) - 1; i >= 0 && len(views) < recentTransactionLimit; i-- {
		views = append(views, TransactionView{
			Description: transactions[i].Description,
			Amount:      transactions[i].Amount,
		})
	}

	return views, nil
}
