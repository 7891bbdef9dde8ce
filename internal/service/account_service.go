package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"bank-service/internal/domain"
	"bank-service/internal/errors"
	"bank-service/internal/notification"
)

// AccountService is the sole authority for balance mutation. Every mutating
// operation runs inside a store transaction with the affected rows locked,
// and the daily deposit cap is enforced through the shared limit tracker.
type AccountService struct {
	store    domain.Store
	notifier *notification.Registry
	limits   *DepositLimitTracker
	logger   *slog.Logger
	now      func() time.Time
}

func NewAccountService(
	store domain.Store,
	notifier *notification.Registry,
	limits *DepositLimitTracker,
	logger *slog.Logger,
) *AccountService {
	return &AccountService{
		store:    store,
		notifier: notifier,
		limits:   limits,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *AccountService) CreateAccount(firstName, lastName string) (*domain.Account, error) {
	s.logger.Info("Creating account", "first_name", firstName, "last_name", lastName)

	if firstName == "" || lastName == "" {
		return nil, errors.NewAppError(errors.InvalidInput, "first and last name are required")
	}

	// Last-name uniqueness is service-enforced; the unique index backs it
	// up against concurrent creations.
	if _, err := s.store.Account().GetByLastName(lastName); err == nil {
		return nil, errors.ErrDuplicateLastName
	} else if !errors.IsCode(err, errors.AccountNotFound) {
		return nil, err
	}

	account := &domain.Account{
		FirstName:              firstName,
		LastName:               lastName,
		Balance:                decimal.Zero,
		NotificationPreference: s.notifier.Default().Name(),
		LastUpdated:            s.now(),
	}

	if err := s.store.Account().Create(account); err != nil {
		return nil, err
	}

	// Best effort: a failed welcome message never rolls back the account.
	go s.sendWelcome(account)

	s.logger.Info("Account created successfully", "account_id", account.ID)
	return account, nil
}

func (s *AccountService) sendWelcome(account *domain.Account) {
	err := s.notifier.
		Preferred(account.NotificationPreference).
		Send("bank", account.LastName, "Account Created", "Welcome aboard!")
	if err != nil {
		s.logger.Warn("Failed to send welcome notification",
			"account_id", account.ID,
			"channel", account.NotificationPreference,
			"error", err)
	}
}

func (s *AccountService) GetAccountByID(id int64) (*domain.Account, error) {
	return s.store.Account().GetByID(id)
}

func (s *AccountService) GetAccountByFirstName(firstName string) (*domain.Account, error) {
	return s.store.Account().GetByFirstName(firstName)
}

func (s *AccountService) GetAccountByLastName(lastName string) (*domain.Account, error) {
	return s.store.Account().GetByLastName(lastName)
}

// Deposit credits amount to the account, subject to the daily deposit window
// and cap. The read-modify-write runs under a row lock so concurrent deposits
// to one account serialize.
func (s *AccountService) Deposit(id int64, amount decimal.Decimal) (*domain.Account, error) {
	s.logger.Info("Processing deposit", "account_id", id, "amount", amount)

	var account *domain.Account
	err := s.store.WithTransaction(func(tx domain.Store) error {
		var err error
		account, err = tx.Account().GetByIDForUpdate(id)
		if err != nil {
			return err
		}

		if err := s.limits.Authorize(account.LastUpdated, amount); err != nil {
			return err
		}

		account.Balance = account.Balance.Add(amount)
		account.LastUpdated = s.now()

		if err := tx.Account().Update(account); err != nil {
			return err
		}

		description := fmt.Sprintf("Deposit of %s$", amount)
		return tx.Transaction().Create(domain.NewTransaction(account, description, amount))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Deposit completed", "account_id", id, "balance", account.Balance)
	return account, nil
}

// Withdraw debits amount from the account. The funds check is on the
// pre-withdrawal balance being positive, not on it covering the amount, so a
// positive balance admits an overdraw. LastUpdated is left untouched; only
// deposits advance the account clock.
func (s *AccountService) Withdraw(id int64, amount decimal.Decimal) (*domain.Account, error) {
	s.logger.Info("Processing withdrawal", "account_id", id, "amount", amount)

	var account *domain.Account
	err := s.store.WithTransaction(func(tx domain.Store) error {
		var err error
		account, err = tx.Account().GetByIDForUpdate(id)
		if err != nil {
			return err
		}

		if amount.Sign() <= 0 {
			return errors.ErrInvalidAmount
		}
		if account.Balance.Sign() <= 0 {
			return errors.ErrInsufficientFunds
		}

		account.Balance = account.Balance.Sub(amount)

		if err := tx.Account().Update(account); err != nil {
			return err
		}

		description := fmt.Sprintf("Withdrawal of %s$", amount)
		return tx.Transaction().Create(domain.NewTransaction(account, description, amount))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Withdrawal completed", "account_id", id, "balance", account.Balance)
	return account, nil
}

// WireTransfer moves amount from one account to another. Both rows are locked
// in ascending id order inside one store transaction, so either both legs
// commit or neither does. The deposit leg is exempt from the daily cap.
func (s *AccountService) WireTransfer(fromID, toID int64, amount decimal.Decimal) error {
	s.logger.Info("Processing wire transfer",
		"from_account_id", fromID,
		"to_account_id", toID,
		"amount", amount)

	if fromID == toID {
		return errors.NewAppError(errors.InvalidInput, "cannot transfer to the same account")
	}

	err := s.store.WithTransaction(func(tx domain.Store) error {
		source, dest, err := lockTransferPair(tx, fromID, toID)
		if err != nil {
			return err
		}

		if amount.Sign() <= 0 {
			return errors.ErrInvalidAmount
		}
		if source.Balance.Sign() <= 0 {
			return errors.ErrInsufficientFunds
		}

		source.Balance = source.Balance.Sub(amount)
		dest.Balance = dest.Balance.Add(amount)

		if err := tx.Account().Update(source); err != nil {
			return err
		}
		if err := tx.Account().Update(dest); err != nil {
			return err
		}

		sent := fmt.Sprintf("Wire Transfer of %s$ was sent to %s", amount, dest.FirstName)
		if err := tx.Transaction().Create(domain.NewTransaction(source, sent, amount)); err != nil {
			return err
		}

		received := fmt.Sprintf("Wire Transfer of %s$ was received from %s", amount, source.FirstName)
		return tx.Transaction().Create(domain.NewTransaction(dest, received, amount))
	})
	if err != nil {
		return err
	}

	s.logger.Info("Wire transfer completed",
		"from_account_id", fromID,
		"to_account_id", toID,
		"amount", amount)
	return nil
}

// lockTransferPair locks both accounts in ascending id order to keep
// concurrent opposing transfers deadlock free.
func lockTransferPair(tx domain.Store, fromID, toID int64) (source, dest *domain.Account, err error) {
	firstID, secondID := fromID, toID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := tx.Account().GetByIDForUpdate(firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := tx.Account().GetByIDForUpdate(secondID)
	if err != nil {
		return nil, nil, err
	}

	if first.ID == fromID {
		return first, second, nil
	}
	return second, first, nil
}
